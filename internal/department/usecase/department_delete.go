package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
	"github.com/shandysiswandi/orgdesk/internal/shared/event"
)

type DeleteInput struct {
	ID int64
}

type DeleteOutput struct {
	Message string
}

func (s *Usecase) Delete(ctx context.Context, in DeleteInput) (*DeleteOutput, error) {
	ctx, span := s.startSpan(ctx, "Delete")
	defer span.End()

	if err := s.repoBackend.DeleteDepartment(ctx, in.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete department", "id", in.ID, "error", err)
		return nil, backend.ToError(err, msgErrDeleting)
	}

	s.changed(ctx, in.ID, event.OperationDeleted)

	return &DeleteOutput{Message: msgDeleted}, nil
}
