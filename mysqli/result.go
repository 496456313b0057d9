package mysqli

import (
	"database/sql"

	"github.com/couchbaselabs/pdostmt"
	"github.com/pkg/errors"
)

// Implements pdostmt.NativeResult over a streaming *sql.Rows.
type Result struct {
	rows    *sql.Rows
	columns []string
	fetched int64
	freed   bool
}

var _ pdostmt.NativeResult = (*Result)(nil)

func (r *Result) next() ([]interface{}, bool, error) {
	if r.freed {
		return nil, false, nil
	}
	if !r.rows.Next() {
		return nil, false, r.rows.Err()
	}

	values := make([]interface{}, len(r.columns))
	dest := make([]interface{}, len(values))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := r.rows.Scan(dest...); err != nil {
		return nil, false, errors.Wrap(err, "scanning row")
	}
	for i, v := range values {
		// Text columns arrive as raw bytes.
		if b, ok := v.([]byte); ok {
			values[i] = string(b)
		}
	}
	r.fetched++
	return values, true, nil
}

func (r *Result) FetchArray(shape pdostmt.ArrayShape) (interface{}, bool, error) {
	values, ok, err := r.next()
	if !ok {
		return nil, false, err
	}
	return pdostmt.Shape(shape, r.columns, values), true, nil
}

func (r *Result) FetchObject(class interface{}, ctorArgs []interface{}) (interface{}, bool, error) {
	values, ok, err := r.next()
	if !ok {
		return nil, false, err
	}
	row := pdostmt.Shape(pdostmt.ArrayAssoc, r.columns, values).(pdostmt.Assoc)
	obj, err := pdostmt.Instantiate(class, row, ctorArgs)
	if err != nil {
		return nil, false, err
	}
	return obj, true, nil
}

func (r *Result) FetchAll(shape pdostmt.ArrayShape) ([]interface{}, error) {
	all := []interface{}{}
	for {
		row, ok, err := r.FetchArray(shape)
		if err != nil {
			return nil, err
		}
		if !ok {
			return all, nil
		}
		all = append(all, row)
	}
}

// Free closes the underlying rows. Later calls are no-ops.
func (r *Result) Free() {
	if r.freed {
		return
	}
	r.freed = true
	r.rows.Close()
}
