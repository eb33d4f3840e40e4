package validator

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shandysiswandi/orgdesk/internal/pkg/schema"
)

// Input is a raw form submission: field name to string, boolean, number or nil.
type Input map[string]any

// Result is the verdict of ValidateInput.
//
// Valid is true exactly when Messages is empty; Messages is nil in that case.
type Result struct {
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages"`
}

// InputValidator checks form input against the rule set registered for an
// entity and operation.
type InputValidator interface {
	ValidateInput(in Input, entity string, op schema.Operation) Result
}

// RuleValidator implements InputValidator over a schema.Registry.
type RuleValidator struct {
	registry *schema.Registry
}

// NewInputValidator returns a RuleValidator. A nil registry uses schema.Default.
func NewInputValidator(registry *schema.Registry) *RuleValidator {
	if registry == nil {
		registry = schema.Default()
	}
	return &RuleValidator{registry: registry}
}

// ValidateInput checks in against the rule set for entity and op.
//
// Fields are checked in rule declaration order and every failure is
// collected. A missing rule set yields an invalid result with a single
// message instead of an error, so callers handle it like bad input.
func (v *RuleValidator) ValidateInput(in Input, entity string, op schema.Operation) Result {
	set, err := v.registry.Lookup(entity, op)
	if err != nil {
		return Result{
			Valid:    false,
			Messages: []string{fmt.Sprintf("No schema function found for table '%s'", entity)},
		}
	}

	var messages []string
	for _, rule := range set.Rules() {
		value := in[rule.Field]

		if schema.IsEmpty(value) {
			if rule.Required {
				messages = append(messages, rule.RequiredMessage)
			}
			continue
		}

		if rule.Check != nil && !rule.Check(value) {
			messages = append(messages, rule.Message)
		}
	}

	return Result{Valid: len(messages) == 0, Messages: messages}
}

var defaultInputValidator = NewInputValidator(nil)

// ValidateInput checks in with the default registry.
func ValidateInput(in Input, entity string, op schema.Operation) Result {
	return defaultInputValidator.ValidateInput(in, entity, op)
}

// FormValue renders a submitted or stored value the way a form field holds
// it, so values of different JSON types can be compared.
func FormValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
