package pdostmt

import "fmt"

// FetchMode values are fixed by the PDO contract and must not change.
type FetchMode int

const (
	FetchDefault FetchMode = 0
	FetchLazy    FetchMode = 1
	FetchAssoc   FetchMode = 2
	FetchNum     FetchMode = 3
	FetchBoth    FetchMode = 4
	FetchObj     FetchMode = 5
	FetchBound   FetchMode = 6
	FetchColumn  FetchMode = 7
	FetchClass   FetchMode = 8
)

var fetchModeNames = map[FetchMode]string{
	FetchDefault: "FETCH_DEFAULT",
	FetchLazy:    "FETCH_LAZY",
	FetchAssoc:   "FETCH_ASSOC",
	FetchNum:     "FETCH_NUM",
	FetchBoth:    "FETCH_BOTH",
	FetchObj:     "FETCH_OBJ",
	FetchBound:   "FETCH_BOUND",
	FetchColumn:  "FETCH_COLUMN",
	FetchClass:   "FETCH_CLASS",
}

func (m FetchMode) String() string {
	if name, ok := fetchModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("FetchMode(%d)", int(m))
}

// ParamType values are fixed by the PDO contract and must not change.
type ParamType int

const (
	ParamNull ParamType = 0
	ParamInt  ParamType = 1
	ParamStr  ParamType = 2
	ParamLOB  ParamType = 3
	ParamStmt ParamType = 4
	ParamBool ParamType = 5
)

// Row shapes.
type (
	Num   []interface{}
	Assoc map[string]interface{}

	// Both carries the positional and named views of the same row.
	Both struct {
		Num   Num
		Assoc Assoc
	}

	// Object is the generic empty-object type rows are fetched into when no
	// class is given.
	Object map[string]interface{}
)
