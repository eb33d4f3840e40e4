package schema

import "regexp"

var (
	rePersonName  = regexp.MustCompile(`^\p{L}(?:[\p{L}'\- ]{0,98}\p{L})?$`)
	reEmail       = regexp.MustCompile(`^[\w.%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reCountryCode = regexp.MustCompile(`^\d{1,4}$`)
	rePhoneNumber = regexp.MustCompile(`^\d{7,15}$`)
)

const nameHint = " can be maximum 100 characters and can contain only letters, " +
	"apostrophes, hyphens and spaces between words"

// InsertEmployeeRules is the rule set for creating an employee.
func InsertEmployeeRules() RuleSet {
	return NewRuleSet(
		Rule{
			Field:           "firstName",
			Required:        true,
			RequiredMessage: "First name required",
			Check:           Pattern(rePersonName),
			Message:         "First name" + nameHint,
		},
		Rule{
			Field:           "lastName",
			Required:        true,
			RequiredMessage: "Last name required",
			Check:           Pattern(rePersonName),
			Message:         "Last name" + nameHint,
		},
		Rule{
			Field:           "title",
			Required:        true,
			RequiredMessage: "Job title required",
			Check:           Pattern(rePersonName),
			Message:         "Job title" + nameHint,
		},
		Rule{
			Field:           "departmentId",
			Required:        true,
			RequiredMessage: "Department required",
			Check:           Numeric(),
			Message:         "Department invalid",
		},
		Rule{
			Field:           "email",
			Required:        true,
			RequiredMessage: "Email address required",
			Check:           Pattern(reEmail),
			Message:         "Email address must have a valid format",
		},
		Rule{
			Field:           "countryCode",
			Required:        true,
			RequiredMessage: "Country code required",
			Check:           Pattern(reCountryCode),
			Message:         "Country code must be between 1 and 4 digits and contain only digits",
		},
		Rule{
			Field:           "phoneNumber",
			Required:        true,
			RequiredMessage: "Phone number required",
			Check:           Pattern(rePhoneNumber),
			Message:         "Phone number must be between 7 and 15 digits and contain only digits",
		},
		Rule{
			Field:   "isActive",
			Check:   Boolean(),
			Message: "Active status must be true or false",
		},
		Rule{
			Field:           "hireDate",
			Required:        true,
			RequiredMessage: "Hire date required",
			Check:           Date(),
			Message:         "Hire date required",
		},
	)
}
