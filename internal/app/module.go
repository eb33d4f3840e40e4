package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/orgdesk/internal/department"
	"github.com/shandysiswandi/orgdesk/internal/employee"
	"github.com/shandysiswandi/orgdesk/internal/validation"
)

func (a *App) initModules() {
	departments, err := department.New(department.Dependency{
		Ctx:            a.ctx,
		Backend:        a.backend,
		Cache:          a.cache,
		Goroutine:      a.goroutine,
		Router:         a.router,
		Idempotency:    a.idemp,
		Messaging:      a.messaging,
		Config:         a.config,
		Instrument:     a.ins,
		UUID:           a.uuid,
		Clock:          a.clock,
		Validator:      a.validator,
		InputValidator: a.inputValidator,
	})
	if err != nil {
		slog.Error("failed to init module department", "error", err)
		os.Exit(1)
	}

	if a.config.GetBool("modules.employee.enabled") {
		if err := employee.New(employee.Dependency{
			Backend:        a.backend,
			Departments:    departments,
			Router:         a.router,
			Idempotency:    a.idemp,
			Messaging:      a.messaging,
			Config:         a.config,
			Instrument:     a.ins,
			Clock:          a.clock,
			Validator:      a.validator,
			InputValidator: a.inputValidator,
		}); err != nil {
			slog.Error("failed to init module employee", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.validation.enabled") {
		if err := validation.New(validation.Dependency{
			Router:         a.router,
			Instrument:     a.ins,
			Validator:      a.validator,
			InputValidator: a.inputValidator,
		}); err != nil {
			slog.Error("failed to init module validation", "error", err)
			os.Exit(1)
		}
	}
}
