package entity

import "time"

type Employee struct {
	ID           int64
	FirstName    string
	LastName     string
	Title        string
	DepartmentID int64
	Email        string
	CountryCode  string
	PhoneNumber  string
	IsActive     bool
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HireDay formats the hire date as YYYY-MM-DD in UTC, or "" when unknown.
func (e Employee) HireDay() string {
	if e.HireDate.IsZero() {
		return ""
	}
	return e.HireDate.UTC().Format(time.DateOnly)
}

// Field returns the current value of a form field, as the form would hold it.
func (e Employee) Field(name string) (any, bool) {
	switch name {
	case "firstName":
		return e.FirstName, true
	case "lastName":
		return e.LastName, true
	case "title":
		return e.Title, true
	case "departmentId":
		return e.DepartmentID, true
	case "email":
		return e.Email, true
	case "countryCode":
		return e.CountryCode, true
	case "phoneNumber":
		return e.PhoneNumber, true
	case "isActive":
		return e.IsActive, true
	case "hireDate":
		return e.HireDay(), true
	default:
		return nil, false
	}
}

// Department is the id and name of the department an employee can belong to.
type Department struct {
	ID   int64
	Name string
}
