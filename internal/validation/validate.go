// internal/validation/validate.go
package validation

import (
	"bytes"
	"encoding/json"

	appErrors "github.com/segmently/segmently-backend/internal/errors"
	"github.com/segmently/segmently-backend/internal/rules"
)

// CreateAudienceRequest is the normalized create-audience payload.
type CreateAudienceRequest struct {
	Rules           []rules.Rule
	Message         string
	LogicalOperator rules.LogicalOperator
}

// PreviewRequest is the normalized audience-size payload. The preview path
// never sends anything, so no message is required.
type PreviewRequest struct {
	Rules           []rules.Rule
	LogicalOperator rules.LogicalOperator
}

// rawPayload keeps every field undecoded so one pass can report all
// violations, wrong JSON types included.
type rawPayload struct {
	Rules           json.RawMessage `json:"rules"`
	Message         json.RawMessage `json:"message"`
	LogicalOperator json.RawMessage `json:"logicalOperator"`
}

type rawRule struct {
	Field    json.RawMessage `json:"field"`
	Operator json.RawMessage `json:"operator"`
	Value    json.RawMessage `json:"value"`
}

// ValidateCreateAudience checks the create-audience body and returns its
// normalized form. Every violated constraint is collected; the returned
// ValidationError joins them all.
func ValidateCreateAudience(body []byte) (*CreateAudienceRequest, error) {
	var raw rawPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, appErrors.NewValidation([]string{"Request body must be a JSON object"})
	}

	var violations []string
	ruleList := validateRules(raw.Rules, &violations)
	message := validateMessage(raw.Message, &violations)
	operator := validateLogicalOperator(raw.LogicalOperator, &violations)

	if len(violations) > 0 {
		return nil, appErrors.NewValidation(violations)
	}
	return &CreateAudienceRequest{
		Rules:           ruleList,
		Message:         message,
		LogicalOperator: operator,
	}, nil
}

// ValidatePreview checks the audience-size body: rules and logicalOperator
// only.
func ValidatePreview(body []byte) (*PreviewRequest, error) {
	var raw rawPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, appErrors.NewValidation([]string{"Request body must be a JSON object"})
	}

	var violations []string
	ruleList := validateRules(raw.Rules, &violations)
	operator := validateLogicalOperator(raw.LogicalOperator, &violations)

	if len(violations) > 0 {
		return nil, appErrors.NewValidation(violations)
	}
	return &PreviewRequest{Rules: ruleList, LogicalOperator: operator}, nil
}

func validateRules(raw json.RawMessage, violations *[]string) []rules.Rule {
	if isMissing(raw) {
		*violations = append(*violations, "Rules must be an array")
		return nil
	}
	var rawRules []json.RawMessage
	if err := json.Unmarshal(raw, &rawRules); err != nil {
		*violations = append(*violations, "Rules must be an array")
		return nil
	}
	if len(rawRules) == 0 {
		*violations = append(*violations, "Rules must not be empty")
		return nil
	}

	ruleList := make([]rules.Rule, 0, len(rawRules))
	for _, element := range rawRules {
		var elem rawRule
		if err := json.Unmarshal(element, &elem); err != nil {
			*violations = append(*violations, "Each rule must be an object")
			continue
		}

		var rule rules.Rule
		ok := true

		if isMissing(elem.Field) {
			*violations = append(*violations, "Each rule must have a field")
			ok = false
		} else if err := json.Unmarshal(elem.Field, &rule.Field); err != nil {
			*violations = append(*violations, "Field must be a string")
			ok = false
		}

		if isMissing(elem.Operator) {
			*violations = append(*violations, "Each rule must have an operator")
			ok = false
		} else if err := json.Unmarshal(elem.Operator, &rule.Operator); err != nil {
			*violations = append(*violations, "Operator must be a string")
			ok = false
		}

		if isMissing(elem.Value) {
			*violations = append(*violations, "Each rule must have a value")
			ok = false
		} else if err := json.Unmarshal(elem.Value, &rule.Value); err != nil {
			*violations = append(*violations, "Value must be valid JSON")
			ok = false
		}

		if ok {
			ruleList = append(ruleList, rule)
		}
	}
	return ruleList
}

func validateMessage(raw json.RawMessage, violations *[]string) string {
	if isMissing(raw) {
		*violations = append(*violations, "Message is required")
		return ""
	}
	var message string
	if err := json.Unmarshal(raw, &message); err != nil {
		*violations = append(*violations, "Message must be a string")
		return ""
	}
	return message
}

func validateLogicalOperator(raw json.RawMessage, violations *[]string) rules.LogicalOperator {
	if isMissing(raw) {
		*violations = append(*violations, "Logical operator is required")
		return ""
	}
	var operator string
	if err := json.Unmarshal(raw, &operator); err != nil {
		*violations = append(*violations, "Logical operator must be a string")
		return ""
	}
	if operator != string(rules.And) && operator != string(rules.Or) {
		*violations = append(*violations, "Logical operator must be either AND or OR")
		return ""
	}
	return rules.LogicalOperator(operator)
}

// isMissing treats absent and null fields the same way.
func isMissing(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
