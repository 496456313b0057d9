//  Copyright (c) 2026 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

// Package mysqli implements the native statement protocol on top of
// database/sql and the go-sql-driver/mysql driver.
package mysqli

import (
	"context"
	"database/sql"
	"strings"
	"unicode"

	"github.com/couchbaselabs/pdostmt"
)

// Preparer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Implements pdostmt.NativeStmt.
type Stmt struct {
	stmt        *sql.Stmt
	returnsRows bool

	args     []interface{}
	pending  *sql.Rows
	current  *Result
	affected int64

	sqlState string
	errno    int
	message  string
}

var _ pdostmt.NativeStmt = (*Stmt)(nil)

func Prepare(ctx context.Context, p Preparer, query string) (*Stmt, error) {
	stmt, err := p.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &Stmt{
		stmt:        stmt,
		returnsRows: producesResultSet(query),
		sqlState:    sqlStateOK,
	}, nil
}

// Open prepares query and wraps it in a pdostmt.Stmt.
func Open(ctx context.Context, p Preparer, query string) (pdostmt.Stmt, error) {
	stmt, err := Prepare(ctx, p, query)
	if err != nil {
		return nil, err
	}
	return pdostmt.NewStmt(stmt), nil
}

var resultSetKeywords = map[string]bool{
	"SELECT":   true,
	"SHOW":     true,
	"DESCRIBE": true,
	"DESC":     true,
	"EXPLAIN":  true,
	"WITH":     true,
	"VALUES":   true,
	"TABLE":    true,
	"CALL":     true,
}

// producesResultSet looks at the leading keyword only; database/sql does not
// expose the field count the server reports on prepare.
func producesResultSet(query string) bool {
	q := skipComments(query)
	q = strings.TrimLeft(q, "( \t\r\n")
	end := strings.IndexFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if end >= 0 {
		q = q[:end]
	}
	return resultSetKeywords[strings.ToUpper(q)]
}

func skipComments(query string) string {
	for {
		query = strings.TrimLeftFunc(query, unicode.IsSpace)
		switch {
		case strings.HasPrefix(query, "/*"):
			end := strings.Index(query, "*/")
			if end < 0 {
				return ""
			}
			query = query[end+2:]
		case strings.HasPrefix(query, "-- "), strings.HasPrefix(query, "#"):
			end := strings.IndexByte(query, '\n')
			if end < 0 {
				return ""
			}
			query = query[end+1:]
		default:
			return query
		}
	}
}

func (s *Stmt) BindParam(types string, values ...interface{}) error {
	args, err := convertArgs(types, values)
	if err != nil {
		s.sqlState = sqlStateBind
		s.errno = errnoParamsNotBound
		s.message = err.Error()
		return err
	}
	s.args = args
	return nil
}

// Execute closes the cursor of the previous execution before running the
// statement again; a pinned *sql.Conn or *sql.Tx cannot send a new command
// while unread rows are pending.
func (s *Stmt) Execute() error {
	s.closePending()
	if s.current != nil {
		s.current.Free()
		s.current = nil
	}

	if s.returnsRows {
		rows, err := s.stmt.Query(s.args...)
		if err != nil {
			s.setError(err)
			return err
		}
		s.pending = rows
		s.affected = 0
	} else {
		res, err := s.stmt.Exec(s.args...)
		if err != nil {
			s.setError(err)
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			n = -1
		}
		s.affected = n
	}
	s.clearError()
	return nil
}

func (s *Stmt) Result() (pdostmt.NativeResult, error) {
	if s.pending == nil {
		return nil, nil
	}
	rows := s.pending
	s.pending = nil
	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		s.setError(err)
		return nil, err
	}
	s.current = &Result{rows: rows, columns: columns}
	return s.current, nil
}

// AffectedRows reports RowsAffected for write statements and the number of
// rows read so far for statements with a result set.
func (s *Stmt) AffectedRows() int64 {
	if s.current != nil {
		return s.current.fetched
	}
	return s.affected
}

func (s *Stmt) SQLState() string {
	return s.sqlState
}

func (s *Stmt) Errno() int {
	return s.errno
}

func (s *Stmt) ErrorMessage() string {
	return s.message
}

func (s *Stmt) Close() error {
	s.closePending()
	return s.stmt.Close()
}

func (s *Stmt) closePending() {
	if s.pending != nil {
		s.pending.Close()
		s.pending = nil
	}
}
