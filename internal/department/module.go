package department

import (
	"context"

	"github.com/shandysiswandi/orgdesk/internal/department/inbound"
	"github.com/shandysiswandi/orgdesk/internal/department/outbound/api"
	"github.com/shandysiswandi/orgdesk/internal/department/outbound/mq"
	"github.com/shandysiswandi/orgdesk/internal/department/usecase"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
	"github.com/shandysiswandi/orgdesk/internal/pkg/cache"
	"github.com/shandysiswandi/orgdesk/internal/pkg/clock"
	"github.com/shandysiswandi/orgdesk/internal/pkg/config"
	"github.com/shandysiswandi/orgdesk/internal/pkg/goroutine"
	"github.com/shandysiswandi/orgdesk/internal/pkg/idempotency"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/messaging"
	"github.com/shandysiswandi/orgdesk/internal/pkg/router"
	"github.com/shandysiswandi/orgdesk/internal/pkg/uid"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
)

type Dependency struct {
	Ctx            context.Context
	Backend        *backend.Client            `validate:"required"`
	Cache          cache.Cache                `validate:"required"`
	Goroutine      *goroutine.Manager         `validate:"required"`
	Router         *router.Router             `validate:"required"`
	Idempotency    idempotency.Idempotency    `validate:"required"`
	Messaging      messaging.Messaging        `validate:"required"`
	Config         config.Config              `validate:"required"`
	Instrument     instrument.Instrumentation `validate:"required"`
	UUID           uid.StringID               `validate:"required"`
	Clock          clock.Clocker              `validate:"required"`
	Validator      validator.Validator        `validate:"required"`
	InputValidator validator.InputValidator   `validate:"required"`
}

// New wires the department module and returns its usecase for other modules.
func New(dep Dependency) (*usecase.Usecase, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	repoAPI := api.NewAPI(dep.Backend, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Config.GetString("messaging.topics.record_changed"), dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoBackend:    repoAPI,
		RepoMessaging:  repoMsg,
		Idempotency:    dep.Idempotency,
		Cache:          dep.Cache,
		InputValidator: dep.InputValidator,
		Config:         dep.Config,
		Clock:          dep.Clock,
		Instrument:     dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, dep.Validator, uc, dep.Instrument)
	}

	return uc, nil
}
