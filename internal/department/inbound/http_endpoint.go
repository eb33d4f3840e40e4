package inbound

import (
	"net/http"

	"github.com/shandysiswandi/orgdesk/internal/department/usecase"
	"github.com/shandysiswandi/orgdesk/internal/pkg/router"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
)

const headerIdempotencyKey = "Idempotency-Key"

type HTTPEndpoint struct {
	uc uc
}

// @Summary List departments
// @Description Returns every department ordered by name.
// @Tags Departments
// @Produce json
// @Success 200 {object} router.successResponse{data=DepartmentsResponse} "Department list"
// @Failure 502 {object} router.errorResponse "Backend unavailable"
// @Router /api/v1/departments [get]
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	resp, err := h.uc.List(r.Context())
	if err != nil {
		return nil, err
	}

	departments := make([]DepartmentResponse, 0, len(resp.Departments))
	for _, item := range resp.Departments {
		departments = append(departments, toDepartmentResponse(item))
	}

	return DepartmentsResponse{Departments: departments}, nil
}

// @Summary Get department detail
// @Tags Departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} router.successResponse{data=DepartmentDetailResponse} "Department detail"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 404 {object} router.errorResponse "Department not found"
// @Router /api/v1/departments/{id} [get]
func (h *HTTPEndpoint) Detail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Detail(r.Context(), usecase.DetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return DepartmentDetailResponse{Department: toDepartmentResponse(resp.Department)}, nil
}

// @Summary Create department
// @Description Validates the department form and forwards it to the backend.
// @Tags Departments
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param Idempotency-Key header string false "Client generated key guarding against double submission"
// @Success 201 {object} router.successResponse{data=DepartmentSavedResponse} "Department added"
// @Failure 409 {object} router.errorResponse "Request already processed"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 502 {object} router.errorResponse "Backend unavailable"
// @Router /api/v1/departments [post]
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

	return DepartmentSavedResponse{
		Department: toDepartmentResponse(resp.Department),
		message:    resp.Message,
		status:     http.StatusCreated,
	}, nil
}

// @Summary Update department
// @Description Validates the submitted fields and forwards the changes to the backend.
// @Tags Departments
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} router.successResponse{data=DepartmentSavedResponse} "Department edited"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 422 {object} router.errorResponse "Validation error or no changes detected"
// @Router /api/v1/departments/{id} [patch]
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

	return DepartmentSavedResponse{
		Department: toDepartmentResponse(resp.Department),
		message:    resp.Message,
		status:     http.StatusOK,
	}, nil
}

// @Summary Delete department
// @Tags Departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} router.successResponse{data=DepartmentDeletedResponse} "Department deleted"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Router /api/v1/departments/{id} [delete]
func (h *HTTPEndpoint) Delete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Delete(r.Context(), usecase.DeleteInput{ID: id})
	if err != nil {
		return nil, err
	}

	return DepartmentDeletedResponse{ID: id, message: resp.Message}, nil
}

// @Summary List department options
// @Description Returns id and name pairs for department pickers.
// @Tags Departments
// @Produce json
// @Success 200 {object} router.successResponse{data=OptionsResponse} "Department options"
// @Router /api/v1/department-options [get]
func (h *HTTPEndpoint) Options(r *router.Request) (any, error) {
	resp, err := h.uc.Options(r.Context())
	if err != nil {
		return nil, err
	}

	options := make([]OptionResponse, 0, len(resp.Options))
	for _, item := range resp.Options {
		options = append(options, OptionResponse{ID: item.ID, Name: item.Name})
	}

	return OptionsResponse{Options: options}, nil
}
