package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/orgdesk/internal/employee/entity"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
	"github.com/shandysiswandi/orgdesk/internal/pkg/goerror"
	"github.com/shandysiswandi/orgdesk/internal/pkg/schema"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
	"github.com/shandysiswandi/orgdesk/internal/shared/event"
)

type UpdateInput struct {
	ID     int64
	Fields validator.Input
}

type UpdateOutput struct {
	Employee entity.Employee
	Message  string
}

func (s *Usecase) Update(ctx context.Context, in UpdateInput) (*UpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "Update")
	defer span.End()

	if err := s.validate(ctx, in.Fields, schema.OperationUpdate); err != nil {
		return nil, err
	}

	current, err := s.repoBackend.GetEmployee(ctx, in.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get employee", "id", in.ID, "error", err)
		return nil, backend.ToError(err, msgErrLoading)
	}

	payload := s.payload(in.Fields)
	if unchanged(*current, payload) {
		return nil, goerror.NewBusiness(msgNoChanges, goerror.CodeInvalidInput)
	}

	updated, err := s.repoBackend.UpdateEmployee(ctx, in.ID, payload)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update employee", "id", in.ID, "error", err)
		return nil, backend.ToError(err, msgErrEditing)
	}

	s.changed(ctx, updated.ID, event.OperationUpdated)

	return &UpdateOutput{Employee: *updated, Message: msgEdited}, nil
}

// unchanged reports whether every submitted field already holds its value.
// Hire dates compare by calendar day.
func unchanged(current entity.Employee, payload map[string]any) bool {
	for field, v := range payload {
		cur, ok := current.Field(field)
		if !ok {
			return false
		}

		submitted := validator.FormValue(v)
		if field == "hireDate" {
			if t, ok := schema.ParseDate(submitted); ok {
				submitted = t.UTC().Format(time.DateOnly)
			}
		}

		if validator.FormValue(cur) != submitted {
			return false
		}
	}
	return true
}
