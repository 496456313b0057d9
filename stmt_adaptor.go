package pdostmt

import (
	"iter"
	"reflect"

	log "github.com/couchbase/clog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// LogKey enables debug tracing of statement adaptors via clog.EnableKey.
const LogKey = "pdostmt"

// Wrap an instance of NativeStmt to present interface pdostmt.Stmt.
// id is a trace id: every log line of the adaptor carries it, so the lines of
// one statement can be picked out of a LogKey trace.
type stmtAdaptor struct {
	id     string
	native NativeStmt
	result NativeResult

	fetchMode     FetchMode
	fetchArgument interface{}
	ctorArgs      interface{}

	bindKeys   []interface{}
	bindTypes  []byte
	bindValues []interface{}

	closed bool
}

var _ Stmt = (*stmtAdaptor)(nil)

func NewStmt(native NativeStmt) Stmt {
	return &stmtAdaptor{
		id:        uuid.NewString(),
		native:    native,
		fetchMode: FetchBoth,
	}
}

// BindValue replaces the entry of a parameter bound earlier instead of
// appending a second one; new parameters are appended in call order.
func (adaptor *stmtAdaptor) BindValue(parameter interface{}, value interface{}, dataType ParamType) bool {
	var typ byte
	switch dataType {
	case ParamBool:
		typ = TypeInt
		if truthy(value) {
			value = 1
		} else {
			value = 0
		}
	case ParamNull:
		typ = TypeInt
		value = nil
	case ParamInt:
		typ = TypeInt
	default:
		switch value.(type) {
		case float32, float64:
			typ = TypeDouble
		default:
			typ = TypeString
		}
	}

	for i, key := range adaptor.bindKeys {
		if sameParameter(key, parameter) {
			adaptor.bindTypes[i] = typ
			adaptor.bindValues[i] = value
			return true
		}
	}
	adaptor.bindKeys = append(adaptor.bindKeys, parameter)
	adaptor.bindTypes = append(adaptor.bindTypes, typ)
	adaptor.bindValues = append(adaptor.bindValues, value)
	return true
}

// Positions and names identify a parameter; anything else always appends.
func sameParameter(bound, parameter interface{}) bool {
	switch bound.(type) {
	case int, int64, string:
		return bound == parameter
	}
	return false
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0"
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return !rv.IsZero()
}

func (adaptor *stmtAdaptor) Execute(inputParameters ...interface{}) bool {
	types := append([]byte(nil), adaptor.bindTypes...)
	values := append([]interface{}(nil), adaptor.bindValues...)
	// Input parameters follow the bound ones in both the type letters and the
	// values so each letter stays paired with its value.
	for _, param := range inputParameters {
		types = append(types, TypeString)
		values = append(values, param)
	}

	// A statement without placeholders never touches the native bind step.
	if len(types) > 0 {
		if err := adaptor.native.BindParam(string(types), values...); err != nil {
			log.Warnf("stmt %s: bind %q failed: %v", adaptor.id, types, err)
			return false
		}
	}

	if err := adaptor.native.Execute(); err != nil {
		log.To(LogKey, "stmt %s: execute failed: [%s] %v", adaptor.id, adaptor.native.SQLState(), err)
		return false
	}

	result, err := adaptor.native.Result()
	if err != nil {
		log.Warnf("stmt %s: obtaining result failed: %v", adaptor.id, err)
		return false
	}
	adaptor.release()
	adaptor.result = result
	log.To(LogKey, "stmt %s: executed with %d parameters, result set: %t", adaptor.id, len(values), result != nil)
	return true
}

func (adaptor *stmtAdaptor) release() {
	if adaptor.result != nil {
		adaptor.result.Free()
		adaptor.result = nil
	}
}

func (adaptor *stmtAdaptor) Fetch(mode FetchMode, args ...interface{}) (interface{}, bool, error) {
	if adaptor.result == nil {
		return nil, false, nil
	}
	if mode == FetchDefault {
		mode = adaptor.fetchMode
	}

	switch mode {
	case FetchBoth:
		return adaptor.result.FetchArray(ArrayBoth)
	case FetchAssoc:
		return adaptor.result.FetchArray(ArrayAssoc)
	case FetchNum:
		return adaptor.result.FetchArray(ArrayNum)
	case FetchClass:
		class := adaptor.className(args)
		ctorArgs, err := adaptor.constructorArgs(args)
		if err != nil {
			return nil, false, err
		}
		return adaptor.result.FetchObject(class, ctorArgs)
	case FetchColumn:
		column, err := adaptor.columnNumber(args)
		if err != nil {
			return nil, false, err
		}
		return adaptor.fetchColumn(column)
	}
	return nil, false, errors.Wrapf(ErrUnsupportedFetchMode, "got %v", mode)
}

func (adaptor *stmtAdaptor) FetchAll(mode FetchMode, args ...interface{}) ([]interface{}, error) {
	if adaptor.result == nil {
		return []interface{}{}, nil
	}
	if mode == FetchDefault {
		mode = adaptor.fetchMode
	}

	switch mode {
	case FetchBoth:
		return adaptor.result.FetchAll(ArrayBoth)
	case FetchAssoc:
		return adaptor.result.FetchAll(ArrayAssoc)
	case FetchNum:
		return adaptor.result.FetchAll(ArrayNum)
	case FetchClass:
		class := adaptor.className(args)
		ctorArgs, err := adaptor.constructorArgs(args)
		if err != nil {
			return nil, err
		}
		rows := []interface{}{}
		for {
			obj, ok, err := adaptor.result.FetchObject(class, ctorArgs)
			if err != nil {
				return nil, err
			}
			if !ok {
				return rows, nil
			}
			rows = append(rows, obj)
		}
	case FetchColumn:
		column, err := adaptor.columnNumber(args)
		if err != nil {
			return nil, err
		}
		columns := []interface{}{}
		for {
			row, ok, err := adaptor.result.FetchArray(ArrayNum)
			if err != nil {
				return nil, err
			}
			if !ok {
				return columns, nil
			}
			values, _ := row.(Num)
			// Every row must carry the column, unlike Fetch which treats a
			// short row as end of data.
			if column < 0 || column >= len(values) {
				return nil, errors.Wrapf(ErrInvalidColumnIndex, "column %d of %d", column, len(values))
			}
			columns = append(columns, values[column])
		}
	}
	return nil, errors.Wrapf(ErrUnsupportedFetchMode, "got %v", mode)
}

func (adaptor *stmtAdaptor) FetchColumn(column int) (interface{}, bool, error) {
	if adaptor.result == nil {
		return nil, false, nil
	}
	return adaptor.fetchColumn(column)
}

func (adaptor *stmtAdaptor) fetchColumn(column int) (interface{}, bool, error) {
	row, ok, err := adaptor.result.FetchArray(ArrayNum)
	if err != nil || !ok {
		return nil, false, err
	}
	values, _ := row.(Num)
	if column < 0 || column >= len(values) {
		return nil, false, nil
	}
	return values[column], true, nil
}

// className picks the explicit class argument, then the configured one, then
// the generic object type.
func (adaptor *stmtAdaptor) className(args []interface{}) interface{} {
	if len(args) > 0 && !isEmptyClass(args[0]) {
		return args[0]
	}
	if !isEmptyClass(adaptor.fetchArgument) {
		return adaptor.fetchArgument
	}
	return StdClass
}

func isEmptyClass(class interface{}) bool {
	return class == nil || class == ""
}

func (adaptor *stmtAdaptor) constructorArgs(args []interface{}) ([]interface{}, error) {
	params := adaptor.ctorArgs
	if len(args) > 1 && args[1] != nil {
		params = args[1]
	}
	switch p := params.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		return p, nil
	}
	return nil, errors.Wrapf(ErrInvalidFetchArgument, "constructor arguments of type %T", params)
}

func (adaptor *stmtAdaptor) columnNumber(args []interface{}) (int, error) {
	column := adaptor.fetchArgument
	if len(args) > 0 && args[0] != nil {
		column = args[0]
	}
	switch c := column.(type) {
	case nil:
		return 0, nil
	case int:
		return c, nil
	case int64:
		return int(c), nil
	}
	return 0, errors.Wrapf(ErrInvalidFetchArgument, "column number of type %T", column)
}

func (adaptor *stmtAdaptor) SetFetchMode(mode FetchMode, args ...interface{}) bool {
	adaptor.fetchMode = mode
	adaptor.fetchArgument = nil
	adaptor.ctorArgs = nil
	if len(args) > 0 {
		adaptor.fetchArgument = args[0]
	}
	if len(args) > 1 {
		adaptor.ctorArgs = args[1]
	}
	return true
}

func (adaptor *stmtAdaptor) RowCount() int64 {
	return adaptor.native.AffectedRows()
}

func (adaptor *stmtAdaptor) ErrorCode() string {
	return adaptor.native.SQLState()
}

func (adaptor *stmtAdaptor) ErrorInfo() ErrorInfo {
	return ErrorInfo{
		SQLState: adaptor.native.SQLState(),
		Code:     adaptor.native.Errno(),
		Message:  adaptor.native.ErrorMessage(),
	}
}

func (adaptor *stmtAdaptor) All() iter.Seq2[interface{}, error] {
	return func(yield func(interface{}, error) bool) {
		for {
			row, ok, err := adaptor.Fetch(FetchDefault)
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok || !yield(row, nil) {
				return
			}
		}
	}
}

// Close releases the active result before closing the native statement.
func (adaptor *stmtAdaptor) Close() error {
	if adaptor.closed {
		return nil
	}
	adaptor.closed = true
	adaptor.release()
	return adaptor.native.Close()
}
