package rules_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/segmently/segmently-backend/internal/errors"
	"github.com/segmently/segmently-backend/internal/rules"
)

func TestCompileBuildsConditions(t *testing.T) {
	set := rules.RuleSet{
		Rules: []rules.Rule{
			{Field: "totalSpend", Operator: ">", Value: "100"},
			{Field: "numVisits", Operator: "<=", Value: float64(3)},
			{Field: "lastVisitDate", Operator: "!=", Value: "2025-01-15"},
		},
		LogicalOperator: rules.And,
	}

	query, err := rules.Compile(set)
	require.NoError(t, err)
	require.Len(t, query.Conditions, 3)
	assert.Equal(t, rules.And, query.Operator)

	assert.Equal(t, "total_spend", query.Conditions[0].Column)
	assert.Equal(t, ">", query.Conditions[0].Comparator)
	assert.Equal(t, float64(100), query.Conditions[0].Value)

	assert.Equal(t, "num_visits", query.Conditions[1].Column)
	assert.Equal(t, "<=", query.Conditions[1].Comparator)
	assert.Equal(t, int64(3), query.Conditions[1].Value)

	assert.Equal(t, "last_visit_date", query.Conditions[2].Column)
	assert.Equal(t, "<>", query.Conditions[2].Comparator)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), query.Conditions[2].Value)
}

func TestCompileUnknownOperator(t *testing.T) {
	set := rules.RuleSet{
		Rules:           []rules.Rule{{Field: "totalSpend", Operator: "~=", Value: "100"}},
		LogicalOperator: rules.And,
	}

	_, err := rules.Compile(set)
	var opErr *appErrors.UnsupportedOperatorError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "~=", opErr.Operator)
}

func TestCompileUnknownField(t *testing.T) {
	set := rules.RuleSet{
		Rules:           []rules.Rule{{Field: "nickname", Operator: "=", Value: "Bob"}},
		LogicalOperator: rules.Or,
	}

	_, err := rules.Compile(set)
	var fieldErr *appErrors.UnsupportedFieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "nickname", fieldErr.Field)
}

func TestCompileCoercionFailures(t *testing.T) {
	cases := []struct {
		name string
		rule rules.Rule
	}{
		{"non-numeric spend", rules.Rule{Field: "totalSpend", Operator: ">", Value: "abc"}},
		{"fractional visits", rules.Rule{Field: "numVisits", Operator: "=", Value: float64(2.5)}},
		{"non-integer visits", rules.Rule{Field: "numVisits", Operator: "=", Value: "two"}},
		{"nan spend", rules.Rule{Field: "totalSpend", Operator: ">", Value: "NaN"}},
		{"inf spend", rules.Rule{Field: "totalSpend", Operator: ">", Value: "Inf"}},
		{"plus inf spend", rules.Rule{Field: "totalSpend", Operator: ">", Value: "+Inf"}},
		{"negative infinity spend", rules.Rule{Field: "totalSpend", Operator: ">", Value: "-infinity"}},
		{"nan float spend", rules.Rule{Field: "totalSpend", Operator: ">", Value: math.NaN()}},
		{"inf float spend", rules.Rule{Field: "totalSpend", Operator: ">", Value: math.Inf(1)}},
		{"garbage date", rules.Rule{Field: "lastVisitDate", Operator: "<", Value: "not-a-date"}},
		{"non-string date", rules.Rule{Field: "lastVisitDate", Operator: "<", Value: float64(42)}},
		{"bool spend", rules.Rule{Field: "totalSpend", Operator: "=", Value: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := rules.RuleSet{Rules: []rules.Rule{tc.rule}, LogicalOperator: rules.And}
			_, err := rules.Compile(set)
			var coercionErr *appErrors.CoercionError
			require.True(t, errors.As(err, &coercionErr), "expected CoercionError, got %v", err)
			assert.Equal(t, tc.rule.Field, coercionErr.Field)
		})
	}
}

func TestCompileAcceptsJSONNumbersAndStrings(t *testing.T) {
	// "100" and 100 must coerce to the same predicate value.
	fromString, err := rules.Compile(rules.RuleSet{
		Rules:           []rules.Rule{{Field: "totalSpend", Operator: ">", Value: "100"}},
		LogicalOperator: rules.And,
	})
	require.NoError(t, err)

	fromNumber, err := rules.Compile(rules.RuleSet{
		Rules:           []rules.Rule{{Field: "totalSpend", Operator: ">", Value: float64(100)}},
		LogicalOperator: rules.And,
	})
	require.NoError(t, err)

	assert.Equal(t, fromString.Conditions[0].Value, fromNumber.Conditions[0].Value)
}

func TestCompileDateLayouts(t *testing.T) {
	for _, value := range []string{"2025-06-01", "2025-06-01T12:30:00Z"} {
		set := rules.RuleSet{
			Rules:           []rules.Rule{{Field: "lastVisitDate", Operator: ">=", Value: value}},
			LogicalOperator: rules.And,
		}
		query, err := rules.Compile(set)
		require.NoError(t, err, "layout %q", value)
		_, ok := query.Conditions[0].Value.(time.Time)
		assert.True(t, ok)
	}
}

func TestCompileOrderIndependence(t *testing.T) {
	a := rules.Rule{Field: "totalSpend", Operator: ">", Value: "100"}
	b := rules.Rule{Field: "numVisits", Operator: ">=", Value: "5"}
	c := rules.Rule{Field: "lastVisitDate", Operator: "<", Value: "2025-08-01"}

	forward, err := rules.Compile(rules.RuleSet{Rules: []rules.Rule{a, b, c}, LogicalOperator: rules.Or})
	require.NoError(t, err)
	reversed, err := rules.Compile(rules.RuleSet{Rules: []rules.Rule{c, b, a}, LogicalOperator: rules.Or})
	require.NoError(t, err)

	assert.Equal(t, forward.Operator, reversed.Operator)
	assert.ElementsMatch(t, forward.Conditions, reversed.Conditions)
}
