// internal/rules/operators.go
package rules

import (
	appErrors "github.com/segmently/segmently-backend/internal/errors"
)

// operatorTable maps the six public comparison symbols to their SQL
// comparators.
var operatorTable = map[string]string{
	">":  ">",
	">=": ">=",
	"<":  "<",
	"<=": "<=",
	"=":  "=",
	"!=": "<>",
}

func lookupOperator(symbol string) (string, error) {
	comparator, ok := operatorTable[symbol]
	if !ok {
		return "", appErrors.NewUnsupportedOperator(symbol)
	}
	return comparator, nil
}
