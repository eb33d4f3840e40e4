package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/orgdesk/internal/pkg/schema"
)

type ConsumeRecordChangedInput struct {
	Entity    string
	Operation string
	ID        string
}

// ConsumeRecordChanged keeps the options cache in step with department
// changes made by any instance.
func (s *Usecase) ConsumeRecordChanged(ctx context.Context, in ConsumeRecordChangedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeRecordChanged")
	defer span.End()

	if in.Entity != schema.EntityDepartments.String() {
		return nil
	}

	if err := s.InvalidateOptions(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to invalidate department options", "id", in.ID, "operation", in.Operation, "error", err)
		return err
	}

	return nil
}
