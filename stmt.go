//  Copyright (c) 2026 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package pdostmt

import "iter"

// Stmt is the PDO-style statement contract. Implementations wrap a native
// prepared statement; see NewStmt.
type Stmt interface {
	// BindValue queues a value for the next Execute. parameter is a 1-based
	// position or a name; re-binding the same parameter replaces its value.
	BindValue(parameter interface{}, value interface{}, dataType ParamType) bool

	// Execute runs the statement. A false return means the native statement
	// failed; consult ErrorCode and ErrorInfo.
	Execute(inputParameters ...interface{}) bool

	// Fetch returns the next row shaped by mode. ok is false at end of data.
	Fetch(mode FetchMode, args ...interface{}) (row interface{}, ok bool, err error)
	FetchAll(mode FetchMode, args ...interface{}) ([]interface{}, error)
	FetchColumn(column int) (value interface{}, ok bool, err error)
	SetFetchMode(mode FetchMode, args ...interface{}) bool

	RowCount() int64
	ErrorCode() string
	ErrorInfo() ErrorInfo

	// All iterates the remaining rows under the current fetch mode.
	All() iter.Seq2[interface{}, error]

	Close() error
}

type ErrorInfo struct {
	SQLState string
	Code     int
	Message  string
}
