package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/orgdesk/internal/employee/entity"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
)

type DetailInput struct {
	ID int64
}

type DetailOutput struct {
	Employee entity.Employee
	// Department is nil when the employee's department could not be resolved.
	Department *entity.Department
}

func (s *Usecase) Detail(ctx context.Context, in DetailInput) (*DetailOutput, error) {
	ctx, span := s.startSpan(ctx, "Detail")
	defer span.End()

	emp, err := s.repoBackend.GetEmployee(ctx, in.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get employee", "id", in.ID, "error", err)
		return nil, backend.ToError(err, msgErrLoading)
	}

	out := &DetailOutput{Employee: *emp}

	list, err := s.repoDepartment.ListDepartments(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to resolve employee department", "id", in.ID, "department_id", emp.DepartmentID, "error", err)
		return out, nil
	}

	for _, d := range list {
		if d.ID == emp.DepartmentID {
			out.Department = &d
			break
		}
	}

	return out, nil
}
