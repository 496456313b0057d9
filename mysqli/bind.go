package mysqli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/couchbaselabs/pdostmt"
	"github.com/pkg/errors"
)

// convertArgs checks the type letters against values and converts each value
// to the wire type of its letter. nil always binds as NULL.
func convertArgs(types string, values []interface{}) ([]interface{}, error) {
	if len(types) != len(values) {
		return nil, errors.Errorf("number of elements in type definition string (%d) doesn't match number of bind variables (%d)", len(types), len(values))
	}
	args := make([]interface{}, len(values))
	for i := 0; i < len(types); i++ {
		if values[i] == nil {
			continue
		}
		switch types[i] {
		case pdostmt.TypeInt:
			args[i] = toInt(values[i])
		case pdostmt.TypeDouble:
			args[i] = toDouble(values[i])
		case pdostmt.TypeString:
			args[i] = toString(values[i])
		case pdostmt.TypeBlob:
			args[i] = toBlob(values[i])
		default:
			return nil, errors.Errorf("undefined fieldtype %q (parameter %d)", types[i], i+1)
		}
	}
	return args, nil
}

func toInt(value interface{}) int64 {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return int64(v.Float())
	case reflect.Bool:
		if v.Bool() {
			return 1
		}
		return 0
	case reflect.String:
		return parseInt(v.String())
	}
	if b, ok := value.([]byte); ok {
		return parseInt(string(b))
	}
	return 0
}

func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

func toDouble(value interface{}) float64 {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Bool:
		if v.Bool() {
			return 1
		}
		return 0
	case reflect.String:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		return f
	}
	return 0
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		if v {
			return "1"
		}
		return ""
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

func toBlob(value interface{}) []byte {
	if b, ok := value.([]byte); ok {
		return b
	}
	return []byte(toString(value))
}
