package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/orgdesk/internal/employee/entity"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
	"github.com/shandysiswandi/orgdesk/internal/pkg/clock"
	"github.com/shandysiswandi/orgdesk/internal/pkg/goerror"
	"github.com/shandysiswandi/orgdesk/internal/pkg/idempotency"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/schema"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const (
	msgAdded   = "Employee added successfully"
	msgEdited  = "Employee edited successfully"
	msgDeleted = "Employee deleted successfully"

	msgErrAdding      = "Error adding employee"
	msgErrEditing     = "Error editing employee"
	msgErrDeleting    = "Error deleting employee"
	msgErrLoading     = "Error loading employee"
	msgErrListing     = "Error loading employees"
	msgErrDepartments = "Error loading departments"

	msgNoChanges = "No changes detected"
	msgDuplicate = "Request already processed"
)

type EmployeeChangedEvent struct {
	ID         int64
	Operation  string
	OccurredAt time.Time
}

type repoBackend interface {
	ListEmployees(ctx context.Context) ([]entity.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*entity.Employee, error)
	CreateEmployee(ctx context.Context, payload map[string]any) (*entity.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, payload map[string]any) (*entity.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

type repoDepartment interface {
	ListDepartments(ctx context.Context) ([]entity.Department, error)
}

type repoMessaging interface {
	PublishEmployeeChanged(ctx context.Context, msg EmployeeChangedEvent) error
}

type Usecase struct {
	repoBackend    repoBackend
	repoDepartment repoDepartment
	repoMessaging  repoMessaging
	idemp          idempotency.Idempotency
	validator      validator.InputValidator
	clock          clock.Clocker
	ins            instrument.Instrumentation
	fields         []string
	rejections     metric.Int64Counter
}

type Dependency struct {
	RepoBackend    repoBackend
	RepoDepartment repoDepartment
	RepoMessaging  repoMessaging
	Idempotency    idempotency.Idempotency
	InputValidator validator.InputValidator
	Clock          clock.Clocker
	Instrument     instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	var fields []string
	if set, err := schema.Default().Lookup(schema.EntityEmployees.String(), schema.OperationInsert); err == nil {
		fields = set.Fields()
	}

	var rejections metric.Int64Counter = noop.Int64Counter{}
	if c, err := dep.Instrument.Meter("employee.usecase").Int64Counter(
		"validation.rejections",
		metric.WithDescription("Form submissions rejected by input validation"),
	); err == nil {
		rejections = c
	} else {
		slog.Warn("failed to create validation rejection counter", "error", err)
	}

	return &Usecase{
		repoBackend:    dep.RepoBackend,
		repoDepartment: dep.RepoDepartment,
		repoMessaging:  dep.RepoMessaging,
		idemp:          dep.Idempotency,
		validator:      dep.InputValidator,
		clock:          dep.Clock,
		ins:            dep.Instrument,
		fields:         fields,
		rejections:     rejections,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("employee.usecase").Start(ctx, name)
}

func (s *Usecase) validate(ctx context.Context, in validator.Input, op schema.Operation) error {
	res := s.validator.ValidateInput(in, schema.EntityEmployees.String(), op)
	if res.Valid {
		return nil
	}

	s.rejections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", schema.EntityEmployees.String()),
		attribute.String("operation", op.String()),
	))
	slog.InfoContext(ctx, "employee form rejected", "operation", op, "messages", res.Messages)

	return goerror.NewRejected(res.Messages)
}

// payload keeps the known, non-empty form fields. Boolean strings become
// booleans.
func (s *Usecase) payload(in validator.Input) map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, field := range s.fields {
		v, ok := in[field]
		if !ok || schema.IsEmpty(v) {
			continue
		}
		if str, ok := v.(string); ok && field == "isActive" {
			v = str == "true"
		}
		out[field] = v
	}
	return out
}

func (s *Usecase) guard(ctx context.Context, clientKey string, fn func(context.Context) error) error {
	if clientKey == "" {
		return fn(ctx)
	}

	err := s.idemp.Exec(ctx, idempotency.Key(schema.EntityEmployees.String(), clientKey), fn)
	if idempotency.IsDuplicate(err) {
		slog.WarnContext(ctx, "duplicate employee submission", "idempotency_key", clientKey, "error", err)
		return goerror.NewBusiness(msgDuplicate, goerror.CodeConflict)
	}

	return err
}

func (s *Usecase) changed(ctx context.Context, id int64, op string) {
	if err := s.repoMessaging.PublishEmployeeChanged(ctx, EmployeeChangedEvent{
		ID:         id,
		Operation:  op,
		OccurredAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish employee changed", "id", id, "operation", op, "error", err)
	}
}

// departments lists department choices. Errors already shaped for the client
// pass through.
func (s *Usecase) departments(ctx context.Context) ([]entity.Department, error) {
	list, err := s.repoDepartment.ListDepartments(ctx)
	if err == nil {
		return list, nil
	}

	slog.ErrorContext(ctx, "failed to repo list departments", "error", err)

	var gerr *goerror.Error
	if errors.As(err, &gerr) {
		return nil, err
	}
	return nil, backend.ToError(err, msgErrDepartments)
}
