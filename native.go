//  Copyright (c) 2026 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package pdostmt

// NativeStmt is the capability set required from a wrapped driver statement.
// It follows the mysqli protocol: values are bound all at once against a
// string of type letters (TypeInt, TypeDouble, TypeString, TypeBlob).
type NativeStmt interface {
	BindParam(types string, values ...interface{}) error
	Execute() error

	// Result returns the cursor of the last execution, or nil when the
	// statement produced no result set. Ownership passes to the caller.
	Result() (NativeResult, error)

	AffectedRows() int64
	SQLState() string
	Errno() int
	ErrorMessage() string
	Close() error
}

// NativeResult is a forward-only cursor. Fetch methods report ok=false once
// the cursor is exhausted.
type NativeResult interface {
	FetchArray(shape ArrayShape) (row interface{}, ok bool, err error)
	FetchObject(class interface{}, ctorArgs []interface{}) (obj interface{}, ok bool, err error)
	FetchAll(shape ArrayShape) ([]interface{}, error)
	Free()
}

// Native bind type letters.
const (
	TypeInt    = 'i'
	TypeDouble = 'd'
	TypeString = 's'
	TypeBlob   = 'b'
)

type ArrayShape int

const (
	ArrayAssoc ArrayShape = iota + 1
	ArrayNum
	ArrayBoth
)

// Shape builds the requested row shape from a row's column names and values.
func Shape(shape ArrayShape, columns []string, values []interface{}) interface{} {
	switch shape {
	case ArrayAssoc:
		return assoc(columns, values)
	case ArrayNum:
		return Num(values)
	default:
		return Both{Num: Num(values), Assoc: assoc(columns, values)}
	}
}

func assoc(columns []string, values []interface{}) Assoc {
	row := make(Assoc, len(columns))
	for i, name := range columns {
		if i < len(values) {
			row[name] = values[i]
		}
	}
	return row
}
