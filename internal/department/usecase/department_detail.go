package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/orgdesk/internal/department/entity"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
)

type DetailInput struct {
	ID int64
}

type DetailOutput struct {
	Department entity.Department
}

func (s *Usecase) Detail(ctx context.Context, in DetailInput) (*DetailOutput, error) {
	ctx, span := s.startSpan(ctx, "Detail")
	defer span.End()

	dept, err := s.repoBackend.GetDepartment(ctx, in.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get department", "id", in.ID, "error", err)
		return nil, backend.ToError(err, msgErrLoading)
	}

	return &DetailOutput{Department: *dept}, nil
}
