package inbound

import (
	"net/http"
	"strconv"

	"github.com/shandysiswandi/orgdesk/internal/employee/usecase"
	"github.com/shandysiswandi/orgdesk/internal/pkg/goerror"
	"github.com/shandysiswandi/orgdesk/internal/pkg/router"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
)

const headerIdempotencyKey = "Idempotency-Key"

type HTTPEndpoint struct {
	uc uc
}

// @Summary List employees
// @Description Returns employees ordered by last name, optionally for one department.
// @Tags Employees
// @Produce json
// @Param departmentId query int false "Department ID"
// @Success 200 {object} router.successResponse{data=EmployeesResponse} "Employee list"
// @Failure 400 {object} router.errorResponse "Invalid query parameter"
// @Failure 502 {object} router.errorResponse "Backend unavailable"
// @Router /api/v1/employees [get]
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	var departmentID int64
	if raw := r.GetQuery("departmentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return nil, goerror.NewInvalidFormat("departmentId must integer value")
		}
		departmentID = id
	}

	resp, err := h.uc.List(r.Context(), usecase.ListInput{DepartmentID: departmentID})
	if err != nil {
		return nil, err
	}

	employees := make([]EmployeeResponse, 0, len(resp.Employees))
	for _, item := range resp.Employees {
		employees = append(employees, toEmployeeResponse(item))
	}

	return EmployeesResponse{Employees: employees}, nil
}

// @Summary Get employee detail
// @Description Returns the employee with the name of its department when known.
// @Tags Employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} router.successResponse{data=EmployeeDetailResponse} "Employee detail"
// @Failure 404 {object} router.errorResponse "Employee not found"
// @Router /api/v1/employees/{id} [get]
func (h *HTTPEndpoint) Detail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Detail(r.Context(), usecase.DetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	out := EmployeeDetailResponse{Employee: toEmployeeResponse(resp.Employee)}
	if resp.Department != nil {
		out.Department = &DepartmentResponse{ID: resp.Department.ID, Name: resp.Department.Name}
	}

	return out, nil
}

// @Summary Get employee edit form
// @Description Returns the employee as form values with the department choices.
// @Tags Employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} router.successResponse{data=EmployeeFormResponse} "Employee form"
// @Failure 404 {object} router.errorResponse "Employee not found"
// @Failure 502 {object} router.errorResponse "Backend unavailable"
// @Router /api/v1/employees/{id}/form [get]
func (h *HTTPEndpoint) Form(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Form(r.Context(), usecase.FormInput{ID: id})
	if err != nil {
		return nil, err
	}

	return EmployeeFormResponse{
		Employee:    toEmployeeResponse(resp.Employee),
		Fields:      resp.Fields,
		Departments: toDepartmentResponses(resp.Departments),
	}, nil
}

// @Summary Create employee
// @Tags Employees
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param Idempotency-Key header string false "Client generated key guarding against double submission"
// @Success 201 {object} router.successResponse{data=EmployeeSavedResponse} "Employee added"
// @Failure 409 {object} router.errorResponse "Request already processed"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/employees [post]
func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	form, err := r.DecodeForm()
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Create(r.Context(), usecase.CreateInput{
		IdempotencyKey: r.GetHeader(headerIdempotencyKey),
		Fields:         validator.Input(form),
	})
	if err != nil {
		return nil, err
	}

	return EmployeeSavedResponse{
		Employee: toEmployeeResponse(resp.Employee),
		message:  resp.Message,
		status:   http.StatusCreated,
	}, nil
}

// @Summary Update employee
// @Tags Employees
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} router.successResponse{data=EmployeeSavedResponse} "Employee edited"
// @Failure 422 {object} router.errorResponse "Validation error or no changes detected"
// @Router /api/v1/employees/{id} [patch]
func (h *HTTPEndpoint) Update(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	form, err := r.DecodeForm()
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Update(r.Context(), usecase.UpdateInput{ID: id, Fields: validator.Input(form)})
	if err != nil {
		return nil, err
	}

	return EmployeeSavedResponse{
		Employee: toEmployeeResponse(resp.Employee),
		message:  resp.Message,
		status:   http.StatusOK,
	}, nil
}

// @Summary Delete employee
// @Tags Employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} router.successResponse{data=EmployeeDeletedResponse} "Employee deleted"
// @Router /api/v1/employees/{id} [delete]
func (h *HTTPEndpoint) Delete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Delete(r.Context(), usecase.DeleteInput{ID: id})
	if err != nil {
		return nil, err
	}

	return EmployeeDeletedResponse{ID: id, message: resp.Message}, nil
}
