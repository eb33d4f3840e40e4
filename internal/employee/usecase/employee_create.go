package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/orgdesk/internal/employee/entity"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
	"github.com/shandysiswandi/orgdesk/internal/pkg/goerror"
	"github.com/shandysiswandi/orgdesk/internal/pkg/schema"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
	"github.com/shandysiswandi/orgdesk/internal/shared/event"
)

type CreateInput struct {
	IdempotencyKey string
	Fields         validator.Input
}

type CreateOutput struct {
	Employee entity.Employee
	Message  string
}

func (s *Usecase) Create(ctx context.Context, in CreateInput) (*CreateOutput, error) {
	ctx, span := s.startSpan(ctx, "Create")
	defer span.End()

	if err := s.validate(ctx, in.Fields, schema.OperationInsert); err != nil {
		return nil, err
	}

	payload := s.payload(in.Fields)

	var created *entity.Employee
	err := s.guard(ctx, in.IdempotencyKey, func(ctx context.Context) error {
		emp, err := s.repoBackend.CreateEmployee(ctx, payload)
		if err != nil {
			return err
		}
		created = emp
		return nil
	})
	if err != nil {
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			return nil, err
		}
		slog.ErrorContext(ctx, "failed to repo create employee", "error", err)
		return nil, backend.ToError(err, msgErrAdding)
	}

	s.changed(ctx, created.ID, event.OperationCreated)

	return &CreateOutput{Employee: *created, Message: msgAdded}, nil
}
