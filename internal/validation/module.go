package validation

import (
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/router"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
	"github.com/shandysiswandi/orgdesk/internal/validation/inbound"
	"github.com/shandysiswandi/orgdesk/internal/validation/usecase"
)

type Dependency struct {
	Router         *router.Router             `validate:"required"`
	Instrument     instrument.Instrumentation `validate:"required"`
	Validator      validator.Validator        `validate:"required"`
	InputValidator validator.InputValidator   `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	inbound.RegisterHTTPEndpoint(dep.Router, usecase.New(usecase.Dependency{
		InputValidator: dep.InputValidator,
		Instrument:     dep.Instrument,
	}))

	return nil
}
