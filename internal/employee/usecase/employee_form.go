package usecase

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/shandysiswandi/orgdesk/internal/employee/entity"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
	"golang.org/x/sync/errgroup"
)

type FormInput struct {
	ID int64
}

type FormOutput struct {
	Employee entity.Employee
	// Fields holds the edit form values: ids as strings, hireDate as YYYY-MM-DD.
	Fields      map[string]any
	Departments []entity.Department
}

// Form loads an employee and the department choices for the edit form.
func (s *Usecase) Form(ctx context.Context, in FormInput) (*FormOutput, error) {
	ctx, span := s.startSpan(ctx, "Form")
	defer span.End()

	var (
		emp         *entity.Employee
		departments []entity.Department
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		emp, err = s.repoBackend.GetEmployee(gctx, in.ID)
		if err != nil {
			slog.ErrorContext(gctx, "failed to repo get employee", "id", in.ID, "error", err)
			return backend.ToError(err, msgErrLoading)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		departments, err = s.departments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &FormOutput{
		Employee:    *emp,
		Fields:      formFields(*emp),
		Departments: departments,
	}, nil
}

func formFields(e entity.Employee) map[string]any {
	departmentID := ""
	if e.DepartmentID != 0 {
		departmentID = strconv.FormatInt(e.DepartmentID, 10)
	}

	return map[string]any{
		"firstName":    e.FirstName,
		"lastName":     e.LastName,
		"title":        e.Title,
		"departmentId": departmentID,
		"email":        e.Email,
		"countryCode":  e.CountryCode,
		"phoneNumber":  e.PhoneNumber,
		"isActive":     e.IsActive,
		"hireDate":     e.HireDay(),
	}
}
