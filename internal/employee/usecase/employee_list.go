package usecase

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/shandysiswandi/orgdesk/internal/employee/entity"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
)

type ListInput struct {
	// DepartmentID limits the list to one department when non zero.
	DepartmentID int64
}

type ListOutput struct {
	Employees []entity.Employee
}

// List returns employees ordered by last name, then first name.
func (s *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	employees, err := s.repoBackend.ListEmployees(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list employees", "error", err)
		return nil, backend.ToError(err, msgErrListing)
	}

	if in.DepartmentID != 0 {
		employees = slices.DeleteFunc(employees, func(e entity.Employee) bool {
			return e.DepartmentID != in.DepartmentID
		})
	}

	slices.SortStableFunc(employees, func(a, b entity.Employee) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.LastName), strings.ToLower(b.LastName)),
			cmp.Compare(strings.ToLower(a.FirstName), strings.ToLower(b.FirstName)),
		)
	})

	return &ListOutput{Employees: employees}, nil
}
