package mysqli

import (
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

const (
	sqlStateOK      = "00000"
	sqlStateGeneral = "HY000"
	sqlStateBind    = "HY093"

	// Client error numbers (CR_UNKNOWN_ERROR, CR_PARAMS_NOT_BOUND).
	errnoUnknown        = 2000
	errnoParamsNotBound = 2031
)

// ErrorState splits err into the SQL state, error number and message the
// server reported. Errors that did not come from the server are reported
// as a general client error.
func ErrorState(err error) (sqlState string, errno int, message string) {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		sqlState = string(me.SQLState[:])
		if me.SQLState == [5]byte{} {
			sqlState = sqlStateGeneral
		}
		return sqlState, int(me.Number), me.Message
	}
	return sqlStateGeneral, errnoUnknown, err.Error()
}

func (s *Stmt) setError(err error) {
	s.sqlState, s.errno, s.message = ErrorState(err)
}

func (s *Stmt) clearError() {
	s.sqlState, s.errno, s.message = sqlStateOK, 0, ""
}
