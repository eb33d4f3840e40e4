package schema

import "regexp"

// DepartmentLocations lists the locations a department may be placed in.
var DepartmentLocations = []string{"New York", "San Francisco", "London"}

var (
	reDepartmentName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 \-'",.]{0,98}[A-Za-z0-9]$`)
	reDepartmentCode = regexp.MustCompile(`^[A-Z][A-Z0-9]{0,19}$`)
)

// InsertDepartmentRules is the rule set for creating a department.
func InsertDepartmentRules() RuleSet {
	return NewRuleSet(
		Rule{
			Field:           "name",
			Required:        true,
			RequiredMessage: "Name required",
			Check:           Pattern(reDepartmentName),
			Message: "Name can be maximum 100 characters and can contain only letters, " +
				"numbers, spaces, hyphens, apostrophes and periods",
		},
		Rule{
			Field:           "code",
			Required:        true,
			RequiredMessage: "Code required",
			Check:           Pattern(reDepartmentCode),
			Message:         "Code can be maximum 20 characters and can contain only numbers and capital letters",
		},
		Rule{
			Field:           "location",
			Required:        true,
			RequiredMessage: "Location required",
			Check:           OneOf(DepartmentLocations...),
			Message:         "Location not currently valid",
		},
		Rule{
			Field:   "isActive",
			Check:   Boolean(),
			Message: "Active status must be true or false",
		},
	)
}
