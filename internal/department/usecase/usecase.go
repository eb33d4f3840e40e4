package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/orgdesk/internal/department/entity"
	"github.com/shandysiswandi/orgdesk/internal/pkg/cache"
	"github.com/shandysiswandi/orgdesk/internal/pkg/clock"
	"github.com/shandysiswandi/orgdesk/internal/pkg/config"
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
	msgAdded   = "Department added successfully"
	msgEdited  = "Department edited successfully"
	msgDeleted = "Department deleted successfully"

	msgErrAdding   = "Error adding department"
	msgErrEditing  = "Error editing department"
	msgErrDeleting = "Error deleting department"
	msgErrLoading  = "Error loading department"
	msgErrListing  = "Error loading departments"

	msgNoChanges = "No changes detected"
	msgDuplicate = "Request already processed"

	keyOptions        = "departments:options"
	defaultOptionsTTL = 5 * time.Minute
)

type DepartmentChangedEvent struct {
	ID         int64
	Operation  string
	OccurredAt time.Time
}

type repoBackend interface {
	ListDepartments(ctx context.Context) ([]entity.Department, error)
	GetDepartment(ctx context.Context, id int64) (*entity.Department, error)
	CreateDepartment(ctx context.Context, payload map[string]any) (*entity.Department, error)
	UpdateDepartment(ctx context.Context, id int64, payload map[string]any) (*entity.Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
}

type repoMessaging interface {
	PublishDepartmentChanged(ctx context.Context, msg DepartmentChangedEvent) error
}

type Usecase struct {
	repoBackend   repoBackend
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	cache         cache.Cache
	validator     validator.InputValidator
	cfg           config.Config
	clock         clock.Clocker
	ins           instrument.Instrumentation
	fields        []string
	rejections    metric.Int64Counter
}

type Dependency struct {
	RepoBackend    repoBackend
	RepoMessaging  repoMessaging
	Idempotency    idempotency.Idempotency
	Cache          cache.Cache
	InputValidator validator.InputValidator
	Config         config.Config
	Clock          clock.Clocker
	Instrument     instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	var fields []string
	if set, err := schema.Default().Lookup(schema.EntityDepartments.String(), schema.OperationInsert); err == nil {
		fields = set.Fields()
	}

	var rejections metric.Int64Counter = noop.Int64Counter{}
	if c, err := dep.Instrument.Meter("department.usecase").Int64Counter(
		"validation.rejections",
		metric.WithDescription("Form submissions rejected by input validation"),
	); err == nil {
		rejections = c
	} else {
		slog.Warn("failed to create validation rejection counter", "error", err)
	}

	return &Usecase{
		repoBackend:   dep.RepoBackend,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		cache:         dep.Cache,
		validator:     dep.InputValidator,
		cfg:           dep.Config,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		fields:        fields,
		rejections:    rejections,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("department.usecase").Start(ctx, name)
}

// validate runs the form rules and turns a rejection into a 422 error.
func (s *Usecase) validate(ctx context.Context, in validator.Input, op schema.Operation) error {
	res := s.validator.ValidateInput(in, schema.EntityDepartments.String(), op)
	if res.Valid {
		return nil
	}

	s.rejections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", schema.EntityDepartments.String()),
		attribute.String("operation", op.String()),
	))
	slog.InfoContext(ctx, "department form rejected", "operation", op, "messages", res.Messages)

	return goerror.NewRejected(res.Messages)
}

// payload keeps the submitted form fields the backend knows about. Empty
// values are dropped and boolean strings become booleans.
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

// guard runs fn at most once per client idempotency key. Without a key fn
// just runs.
func (s *Usecase) guard(ctx context.Context, clientKey string, fn func(context.Context) error) error {
	if clientKey == "" {
		return fn(ctx)
	}

	err := s.idemp.Exec(ctx, idempotency.Key(schema.EntityDepartments.String(), clientKey), fn)
	if idempotency.IsDuplicate(err) {
		slog.WarnContext(ctx, "duplicate department submission", "idempotency_key", clientKey, "error", err)
		return goerror.NewBusiness(msgDuplicate, goerror.CodeConflict)
	}

	return err
}

// changed publishes a change event and drops the cached options. Failures are
// logged only: the backend already holds the change.
func (s *Usecase) changed(ctx context.Context, id int64, op string) {
	if err := s.InvalidateOptions(ctx); err != nil {
		slog.WarnContext(ctx, "failed to invalidate department options", "error", err)
	}

	if err := s.repoMessaging.PublishDepartmentChanged(ctx, DepartmentChangedEvent{
		ID:         id,
		Operation:  op,
		OccurredAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish department changed", "id", id, "operation", op, "error", err)
	}
}
