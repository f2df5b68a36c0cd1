// internal/rules/fields.go
package rules

import (
	"fmt"
	"math"
	"strconv"
	"time"

	appErrors "github.com/segmently/segmently-backend/internal/errors"
)

// FieldSpec ties a rule field to its customers column and value parser.
type FieldSpec struct {
	Column string
	Coerce func(value any) (any, error)
}

// fieldTable maps public rule field names to their column and coercion.
// Making another customer attribute filterable means adding a row here and
// a column to the customers table.
var fieldTable = map[string]FieldSpec{
	"totalSpend":    {Column: "total_spend", Coerce: coerceFloat},
	"numVisits":     {Column: "num_visits", Coerce: coerceInt},
	"lastVisitDate": {Column: "last_visit_date", Coerce: coerceDate},
}

func lookupField(name string) (FieldSpec, error) {
	spec, ok := fieldTable[name]
	if !ok {
		return FieldSpec{}, appErrors.NewUnsupportedField(name)
	}
	return spec, nil
}

func coerceFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		if !isFinite(v) {
			return nil, fmt.Errorf("not a finite number")
		}
		return v, nil
	case int:
		return float64(v), nil
	case string:
		// ParseFloat accepts "NaN" and "Inf" spellings; those must never
		// reach a store predicate, so reject anything non-finite.
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number")
		}
		if !isFinite(f) {
			return nil, fmt.Errorf("not a finite number")
		}
		return f, nil
	}
	return nil, fmt.Errorf("not a number")
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func coerceInt(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		// JSON numbers decode as float64; reject fractional ones.
		if v != float64(int64(v)) {
			return nil, fmt.Errorf("not an integer")
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an integer")
		}
		return n, nil
	}
	return nil, fmt.Errorf("not an integer")
}

// dateLayouts are tried in order for string rule values.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func coerceDate(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("not a date string")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("not a recognized date")
}
