package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/schema"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
)

type Dependency struct {
	InputValidator validator.InputValidator
	Instrument     instrument.Instrumentation
}

type Usecase struct {
	validator validator.InputValidator
	ins       instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{validator: dep.InputValidator, ins: dep.Instrument}
}

type ValidateInput struct {
	Entity    string
	Operation schema.Operation
	Fields    validator.Input
}

// Validate checks a form without submitting it. A rejected form is a normal
// result, not an error.
func (s *Usecase) Validate(ctx context.Context, in ValidateInput) validator.Result {
	ctx, span := s.ins.Tracer("validation.usecase").Start(ctx, "Validate")
	defer span.End()

	res := s.validator.ValidateInput(in.Fields, in.Entity, in.Operation)

	span.SetAttributes(
		attribute.String("entity", in.Entity),
		attribute.String("operation", in.Operation.String()),
		attribute.Bool("valid", res.Valid),
	)
	if !res.Valid {
		slog.DebugContext(ctx, "form pre-check rejected", "entity", in.Entity, "operation", in.Operation, "messages", res.Messages)
	}

	return res
}
