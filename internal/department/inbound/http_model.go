package inbound

import (
	"time"

	"github.com/shandysiswandi/orgdesk/internal/department/entity"
)

type DepartmentResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Location  string    `json:"location"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toDepartmentResponse(d entity.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        d.ID,
		Name:      d.Name,
		Code:      d.Code,
		Location:  d.Location,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type DepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}

func (r DepartmentsResponse) Meta() map[string]any {
	return map[string]any{"total": len(r.Departments)}
}

type DepartmentDetailResponse struct {
	Department DepartmentResponse `json:"department"`
}

type DepartmentSavedResponse struct {
	Department DepartmentResponse `json:"department"`
	// meta
	message string
	status  int
}

func (r DepartmentSavedResponse) Message() string { return r.message }
func (r DepartmentSavedResponse) StatusCode() int { return r.status }

type DepartmentDeletedResponse struct {
	ID int64 `json:"id"`
	// meta
	message string
}

func (r DepartmentDeletedResponse) Message() string { return r.message }

type OptionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type OptionsResponse struct {
	Options []OptionResponse `json:"options"`
}
