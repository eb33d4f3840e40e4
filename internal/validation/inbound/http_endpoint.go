package inbound

import (
	"strings"

	"github.com/shandysiswandi/orgdesk/internal/pkg/router"
	"github.com/shandysiswandi/orgdesk/internal/pkg/schema"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
	"github.com/shandysiswandi/orgdesk/internal/validation/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

type ValidateResponse struct {
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages"`
}

func (r ValidateResponse) Message() string {
	if r.Valid {
		return "Input is valid"
	}
	return "Input is invalid"
}

// @Summary Validate a form
// @Description Checks a department or employee form against its rules without saving it.
// @Description A rejected form still answers 200; inspect data.valid.
// @Tags Validation
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param entity path string true "Record type" Enums(departments, employees)
// @Param operation path string true "Form operation" Enums(INSERT, UPDATE)
// @Success 200 {object} router.successResponse{data=ValidateResponse} "Validation result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Router /api/v1/validate/{entity}/{operation} [post]
func (h *HTTPEndpoint) Validate(r *router.Request) (any, error) {
	form, err := r.DecodeForm()
	if err != nil {
		return nil, err
	}

	res := h.uc.Validate(r.Context(), usecase.ValidateInput{
		Entity:    r.GetParam("entity"),
		Operation: schema.Operation(strings.ToUpper(r.GetParam("operation"))),
		Fields:    validator.Input(form),
	})

	messages := res.Messages
	if messages == nil {
		messages = []string{}
	}

	return ValidateResponse{Valid: res.Valid, Messages: messages}, nil
}
