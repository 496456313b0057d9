package pdostmt

import (
	"github.com/pkg/errors"
)

// fakeNative is an in-memory NativeStmt that records bind calls and counts
// the result handles it has handed out.
type fakeNative struct {
	columns     []string
	rows        [][]interface{}
	noResultSet bool
	affected    int64
	failExecute bool

	bindCalls   int
	boundTypes  string
	boundValues []interface{}
	executions  int

	openResults int
	frees       int
	doubleFrees int
	closed      int

	sqlState string
	errno    int
	message  string
}

func newFakeNative(columns []string, rows ...[]interface{}) *fakeNative {
	return &fakeNative{columns: columns, rows: rows, sqlState: "00000"}
}

func (f *fakeNative) BindParam(types string, values ...interface{}) error {
	f.bindCalls++
	if len(types) != len(values) {
		return errors.Errorf("%d types for %d values", len(types), len(values))
	}
	f.boundTypes = types
	f.boundValues = values
	return nil
}

func (f *fakeNative) Execute() error {
	f.executions++
	if f.failExecute {
		f.sqlState, f.errno, f.message = "42000", 1064, "You have an error in your SQL syntax"
		return errors.New(f.message)
	}
	f.sqlState, f.errno, f.message = "00000", 0, ""
	return nil
}

func (f *fakeNative) Result() (NativeResult, error) {
	if f.noResultSet {
		return nil, nil
	}
	f.openResults++
	return &fakeResult{owner: f, columns: f.columns, rows: f.rows}, nil
}

func (f *fakeNative) AffectedRows() int64  { return f.affected }
func (f *fakeNative) SQLState() string     { return f.sqlState }
func (f *fakeNative) Errno() int           { return f.errno }
func (f *fakeNative) ErrorMessage() string { return f.message }

func (f *fakeNative) Close() error {
	f.closed++
	return nil
}

type fakeResult struct {
	owner   *fakeNative
	columns []string
	rows    [][]interface{}
	pos     int
	freed   bool
}

func (r *fakeResult) next() ([]interface{}, bool) {
	if r.freed || r.pos >= len(r.rows) {
		return nil, false
	}
	row := r.rows[r.pos]
	r.pos++
	return append([]interface{}(nil), row...), true
}

func (r *fakeResult) FetchArray(shape ArrayShape) (interface{}, bool, error) {
	values, ok := r.next()
	if !ok {
		return nil, false, nil
	}
	return Shape(shape, r.columns, values), true, nil
}

func (r *fakeResult) FetchObject(class interface{}, ctorArgs []interface{}) (interface{}, bool, error) {
	values, ok := r.next()
	if !ok {
		return nil, false, nil
	}
	obj, err := Instantiate(class, Shape(ArrayAssoc, r.columns, values).(Assoc), ctorArgs)
	if err != nil {
		return nil, false, err
	}
	return obj, true, nil
}

func (r *fakeResult) FetchAll(shape ArrayShape) ([]interface{}, error) {
	all := []interface{}{}
	for {
		row, ok, _ := r.FetchArray(shape)
		if !ok {
			return all, nil
		}
		all = append(all, row)
	}
}

func (r *fakeResult) Free() {
	if r.freed {
		r.owner.doubleFrees++
		return
	}
	r.freed = true
	r.owner.openResults--
	r.owner.frees++
}
