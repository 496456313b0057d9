//  Copyright (c) 2026 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package pdostmt

import (
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// StdClass names the generic Object type in the class registry.
const StdClass = "stdClass"

// Constructor creates an instance for FetchClass. It must return a pointer so
// the row can be decoded into it.
type Constructor func(args ...interface{}) (interface{}, error)

var (
	classesMu sync.RWMutex
	classes   = make(map[string]Constructor)
)

// RegisterClass makes a constructor available by name to FetchClass. The
// registry is optional: a Constructor can be passed to Fetch directly
// instead of a name. It panics if the name is empty, the constructor is nil
// or the name is taken.
func RegisterClass(name string, ctor Constructor) {
	classesMu.Lock()
	defer classesMu.Unlock()
	if name == "" || name == StdClass {
		panic("pdostmt: RegisterClass with reserved name " + name)
	}
	if ctor == nil {
		panic("pdostmt: RegisterClass constructor is nil")
	}
	if _, dup := classes[name]; dup {
		panic("pdostmt: RegisterClass called twice for class " + name)
	}
	classes[name] = ctor
}

func lookupClass(name string) (Constructor, bool) {
	classesMu.RLock()
	defer classesMu.RUnlock()
	ctor, ok := classes[name]
	return ctor, ok
}

// Instantiate builds an object of class from row. class is a registered name
// or a Constructor. The constructor runs first, then row columns are decoded
// onto the instance by field name (or `db` tag).
func Instantiate(class interface{}, row Assoc, ctorArgs []interface{}) (interface{}, error) {
	var ctor Constructor
	switch c := class.(type) {
	case nil:
		return newObject(row), nil
	case string:
		if c == "" || c == StdClass {
			return newObject(row), nil
		}
		var ok bool
		if ctor, ok = lookupClass(c); !ok {
			return nil, errors.Wrapf(ErrUnknownClass, "class %q", c)
		}
	case Constructor:
		ctor = c
	case func(args ...interface{}) (interface{}, error):
		ctor = c
	default:
		return nil, errors.Wrapf(ErrInvalidFetchArgument, "class argument of type %T", class)
	}

	obj, err := ctor(ctorArgs...)
	if err != nil {
		return nil, errors.Wrapf(err, "constructing %v", class)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           obj,
		TagName:          "db",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "populating %T", obj)
	}
	if err = decoder.Decode(map[string]interface{}(row)); err != nil {
		return nil, errors.Wrapf(err, "populating %T", obj)
	}
	return obj, nil
}

func newObject(row Assoc) Object {
	obj := make(Object, len(row))
	for k, v := range row {
		obj[k] = v
	}
	return obj
}
