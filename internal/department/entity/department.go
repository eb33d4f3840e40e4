package entity

import "time"

type Department struct {
	ID        int64
	Name      string
	Code      string
	Location  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Field returns the current value of a form field, as the form would hold it.
func (d Department) Field(name string) (any, bool) {
	switch name {
	case "name":
		return d.Name, true
	case "code":
		return d.Code, true
	case "location":
		return d.Location, true
	case "isActive":
		return d.IsActive, true
	default:
		return nil, false
	}
}

// Option is a department as offered by the employee form's department picker.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
