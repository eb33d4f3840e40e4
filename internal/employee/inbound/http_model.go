package inbound

import (
	"time"

	"github.com/shandysiswandi/orgdesk/internal/employee/entity"
)

type EmployeeResponse struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Title        string    `json:"title"`
	DepartmentID int64     `json:"departmentId"`
	Email        string    `json:"email"`
	CountryCode  string    `json:"countryCode"`
	PhoneNumber  string    `json:"phoneNumber"`
	IsActive     bool      `json:"isActive"`
	HireDate     string    `json:"hireDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toEmployeeResponse(e entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Title:        e.Title,
		DepartmentID: e.DepartmentID,
		Email:        e.Email,
		CountryCode:  e.CountryCode,
		PhoneNumber:  e.PhoneNumber,
		IsActive:     e.IsActive,
		HireDate:     e.HireDay(),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toDepartmentResponses(list []entity.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, DepartmentResponse{ID: d.ID, Name: d.Name})
	}
	return out
}

type EmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

func (r EmployeesResponse) Meta() map[string]any {
	return map[string]any{"total": len(r.Employees)}
}

type EmployeeDetailResponse struct {
	Employee   EmployeeResponse    `json:"employee"`
	Department *DepartmentResponse `json:"department"`
}

type EmployeeFormResponse struct {
	Employee    EmployeeResponse     `json:"employee"`
	Fields      map[string]any       `json:"fields"`
	Departments []DepartmentResponse `json:"departments"`
}

type EmployeeSavedResponse struct {
	Employee EmployeeResponse `json:"employee"`
	// meta
	message string
	status  int
}

func (r EmployeeSavedResponse) Message() string { return r.message }
func (r EmployeeSavedResponse) StatusCode() int { return r.status }

type EmployeeDeletedResponse struct {
	ID int64 `json:"id"`
	// meta
	message string
}

func (r EmployeeDeletedResponse) Message() string { return r.message }
