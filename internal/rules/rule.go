// internal/rules/rule.go
package rules

// LogicalOperator combines rule predicates into one query.
type LogicalOperator string

const (
	And LogicalOperator = "AND"
	Or  LogicalOperator = "OR"
)

// Rule is one field/operator/value comparison as received from the client.
// The value stays untyped until the field's coercion runs at compile time.
type Rule struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// RuleSet is a flat list of rules combined by a single logical operator.
// No nesting, no mixed precedence.
type RuleSet struct {
	Rules           []Rule
	LogicalOperator LogicalOperator
}
