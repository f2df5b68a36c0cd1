// internal/rules/compiler.go
package rules

import (
	appErrors "github.com/segmently/segmently-backend/internal/errors"
)

// Condition is one compiled predicate: column <comparator> value.
type Condition struct {
	Column     string
	Comparator string
	Value      any
}

// Query is a structured, store-agnostic filter: a flat list of conditions
// joined by one logical operator. Matching is a pure boolean combination,
// so condition order never affects the result set.
type Query struct {
	Conditions []Condition
	Operator   LogicalOperator
}

// Compile translates a rule set into a Query. Every rule must name a known
// field and operator, and its value must parse under the field's semantic
// type.
func Compile(set RuleSet) (Query, error) {
	conditions := make([]Condition, 0, len(set.Rules))
	for _, rule := range set.Rules {
		comparator, err := lookupOperator(rule.Operator)
		if err != nil {
			return Query{}, err
		}
		spec, err := lookupField(rule.Field)
		if err != nil {
			return Query{}, err
		}
		value, err := spec.Coerce(rule.Value)
		if err != nil {
			return Query{}, appErrors.NewCoercion(rule.Field, rule.Value, err)
		}
		conditions = append(conditions, Condition{
			Column:     spec.Column,
			Comparator: comparator,
			Value:      value,
		})
	}
	return Query{Conditions: conditions, Operator: set.LogicalOperator}, nil
}
