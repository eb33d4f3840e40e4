package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/orgdesk/internal/department/entity"
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
	Department entity.Department
	Message    string
}

func (s *Usecase) Update(ctx context.Context, in UpdateInput) (*UpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "Update")
	defer span.End()

	if err := s.validate(ctx, in.Fields, schema.OperationUpdate); err != nil {
		return nil, err
	}

	current, err := s.repoBackend.GetDepartment(ctx, in.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get department", "id", in.ID, "error", err)
		return nil, backend.ToError(err, msgErrLoading)
	}

	payload := s.payload(in.Fields)
	if unchanged(*current, payload) {
		return nil, goerror.NewBusiness(msgNoChanges, goerror.CodeInvalidInput)
	}

	updated, err := s.repoBackend.UpdateDepartment(ctx, in.ID, payload)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update department", "id", in.ID, "payload", payload, "error", err)
		return nil, backend.ToError(err, msgErrEditing)
	}

	s.changed(ctx, updated.ID, event.OperationUpdated)

	return &UpdateOutput{Department: *updated, Message: msgEdited}, nil
}

// unchanged reports whether every submitted field already holds its value.
func unchanged(current entity.Department, payload map[string]any) bool {
	for field, v := range payload {
		cur, ok := current.Field(field)
		if !ok || validator.FormValue(cur) != validator.FormValue(v) {
			return false
		}
	}
	return true
}
