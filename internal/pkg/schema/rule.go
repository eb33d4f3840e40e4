package schema

import "slices"

// Entity names a record kind managed through the backend.
type Entity string

const (
	// EntityDepartments is the organizational unit record.
	EntityDepartments Entity = "departments"
	// EntityEmployees is the member record.
	EntityEmployees Entity = "employees"
)

func (e Entity) String() string {
	return string(e)
}

// Operation is the kind of write a rule set guards.
//
// Any string is representable so callers can pass through what the client
// asked for; only INSERT and UPDATE are ever registered.
type Operation string

const (
	// OperationInsert guards record creation; every listed field is required.
	OperationInsert Operation = "INSERT"
	// OperationUpdate guards record modification; every field is optional.
	OperationUpdate Operation = "UPDATE"
)

func (o Operation) String() string {
	return string(o)
}

// Rule describes the constraint of one field.
type Rule struct {
	// Field is the key looked up in the input object.
	Field string
	// Required reports whether an absent or empty value is a failure.
	Required bool
	// RequiredMessage is reported when a required value is missing.
	RequiredMessage string
	// Check is applied to present values.
	Check Predicate
	// Message is reported when Check rejects a present value.
	Message string
}

// Optional returns a copy of the rule with requiredness relaxed.
func (r Rule) Optional() Rule {
	r.Required = false
	return r
}

// RuleSet is an ordered, immutable list of field rules for one
// (entity, operation) pair.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet builds a rule set keeping the declaration order of rules.
func NewRuleSet(rules ...Rule) RuleSet {
	return RuleSet{rules: slices.Clone(rules)}
}

// Len returns the number of field rules.
func (s RuleSet) Len() int {
	return len(s.rules)
}

// Rules returns a copy of the rules in declaration order.
func (s RuleSet) Rules() []Rule {
	return slices.Clone(s.rules)
}

// Rule returns the rule for field, if declared.
func (s RuleSet) Rule(field string) (Rule, bool) {
	for _, r := range s.rules {
		if r.Field == field {
			return r, true
		}
	}
	return Rule{}, false
}

// Fields returns the declared field names in order.
func (s RuleSet) Fields() []string {
	fields := make([]string, 0, len(s.rules))
	for _, r := range s.rules {
		fields = append(fields, r.Field)
	}
	return fields
}

// Partial returns the rule set with every field optional. Predicates and
// messages are kept as they are.
func (s RuleSet) Partial() RuleSet {
	rules := make([]Rule, 0, len(s.rules))
	for _, r := range s.rules {
		rules = append(rules, r.Optional())
	}
	return RuleSet{rules: rules}
}
