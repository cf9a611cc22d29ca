package sqlite

import (
	"database/sql/driver"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
)

// foldFunc lowercases its argument with Unicode rules. The built-in LOWER
// only folds ASCII, so search filters compare foldFunc(column) against a
// term folded the same way in Go.
const foldFunc = "taxi_fold"

func init() {
	msqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, fold)
}

func fold(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T", foldFunc, v)
	}
}

// searchClause is the WHERE clause matching column against a likeArg pattern.
func searchClause(column string) string {
	return ` WHERE ` + foldFunc + `(` + column + `) LIKE ? ESCAPE '\'`
}
