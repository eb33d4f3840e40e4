package departments

import (
	"context"

	"github.com/samber/lo"
	deptEntity "github.com/shandysiswandi/orgdesk/internal/department/entity"
	deptUsecase "github.com/shandysiswandi/orgdesk/internal/department/usecase"
	"github.com/shandysiswandi/orgdesk/internal/employee/entity"
)

type optioner interface {
	Options(ctx context.Context) (*deptUsecase.OptionsOutput, error)
}

// Departments reads department options through the department module, so
// employee forms share its cache.
type Departments struct {
	uc optioner
}

func NewDepartments(uc optioner) *Departments {
	return &Departments{uc: uc}
}

func (d *Departments) ListDepartments(ctx context.Context) ([]entity.Department, error) {
	out, err := d.uc.Options(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Map(out.Options, func(o deptEntity.Option, _ int) entity.Department {
		return entity.Department{ID: o.ID, Name: o.Name}
	}), nil
}
