package employee

import (
	deptUsecase "github.com/shandysiswandi/orgdesk/internal/department/usecase"
	"github.com/shandysiswandi/orgdesk/internal/employee/inbound"
	"github.com/shandysiswandi/orgdesk/internal/employee/outbound/api"
	"github.com/shandysiswandi/orgdesk/internal/employee/outbound/departments"
	"github.com/shandysiswandi/orgdesk/internal/employee/outbound/mq"
	"github.com/shandysiswandi/orgdesk/internal/employee/usecase"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
	"github.com/shandysiswandi/orgdesk/internal/pkg/clock"
	"github.com/shandysiswandi/orgdesk/internal/pkg/config"
	"github.com/shandysiswandi/orgdesk/internal/pkg/idempotency"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/messaging"
	"github.com/shandysiswandi/orgdesk/internal/pkg/router"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
)

type Dependency struct {
	Backend        *backend.Client            `validate:"required"`
	Departments    *deptUsecase.Usecase       `validate:"required"`
	Router         *router.Router             `validate:"required"`
	Idempotency    idempotency.Idempotency    `validate:"required"`
	Messaging      messaging.Publisher        `validate:"required"`
	Config         config.Config              `validate:"required"`
	Instrument     instrument.Instrumentation `validate:"required"`
	Clock          clock.Clocker              `validate:"required"`
	Validator      validator.Validator        `validate:"required"`
	InputValidator validator.InputValidator   `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoBackend:    api.NewAPI(dep.Backend, dep.Instrument),
		RepoDepartment: departments.NewDepartments(dep.Departments),
		RepoMessaging:  mq.NewMessaging(dep.Messaging, dep.Config.GetString("messaging.topics.record_changed"), dep.Instrument),
		Idempotency:    dep.Idempotency,
		InputValidator: dep.InputValidator,
		Clock:          dep.Clock,
		Instrument:     dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
