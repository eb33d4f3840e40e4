package usecase

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/shandysiswandi/orgdesk/internal/department/entity"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
)

type ListOutput struct {
	Departments []entity.Department
}

// List returns every department ordered by name.
func (s *Usecase) List(ctx context.Context) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	departments, err := s.repoBackend.ListDepartments(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list departments", "error", err)
		return nil, backend.ToError(err, msgErrListing)
	}

	slices.SortStableFunc(departments, func(a, b entity.Department) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	return &ListOutput{Departments: departments}, nil
}
