package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shandysiswandi/orgdesk/internal/department/entity"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/valueobject"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const basePath = "/api/v1/departments"

type doer interface {
	Do(ctx context.Context, req backend.Request) backend.Result
}

type API struct {
	client doer
	ins    instrument.Instrumentation
}

func NewAPI(client doer, ins instrument.Instrumentation) *API {
	return &API{client: client, ins: ins}
}

func (a *API) ListDepartments(ctx context.Context) ([]entity.Department, error) {
	ctx, span := a.startSpan(ctx, "ListDepartments")
	defer span.End()

	res := a.client.Do(ctx, backend.Request{Method: http.MethodGet, Path: basePath})
	if err := res.Err(); err != nil {
		return nil, fail(span, err)
	}

	records, ok := valueobject.NewRecords(res.Data)
	if !ok {
		return nil, fail(span, backend.ErrUnexpectedBody)
	}

	departments := make([]entity.Department, 0, len(records))
	for _, rec := range records {
		departments = append(departments, toDepartment(rec))
	}

	return departments, nil
}

func (a *API) GetDepartment(ctx context.Context, id int64) (*entity.Department, error) {
	ctx, span := a.startSpan(ctx, "GetDepartment")
	defer span.End()

	return a.one(ctx, span, backend.Request{Method: http.MethodGet, Path: itemPath(id)})
}

func (a *API) CreateDepartment(ctx context.Context, payload map[string]any) (*entity.Department, error) {
	ctx, span := a.startSpan(ctx, "CreateDepartment")
	defer span.End()

	return a.one(ctx, span, backend.Request{
		Method:      http.MethodPost,
		Path:        basePath,
		ContentType: "application/json",
		Body:        payload,
	})
}

func (a *API) UpdateDepartment(ctx context.Context, id int64, payload map[string]any) (*entity.Department, error) {
	ctx, span := a.startSpan(ctx, "UpdateDepartment")
	defer span.End()

	return a.one(ctx, span, backend.Request{
		Method:      http.MethodPatch,
		Path:        itemPath(id),
		ContentType: "application/json",
		Body:        payload,
	})
}

func (a *API) DeleteDepartment(ctx context.Context, id int64) error {
	ctx, span := a.startSpan(ctx, "DeleteDepartment")
	defer span.End()

	res := a.client.Do(ctx, backend.Request{Method: http.MethodDelete, Path: itemPath(id)})
	if err := res.Err(); err != nil {
		return fail(span, err)
	}

	return nil
}

func (a *API) one(ctx context.Context, span trace.Span, req backend.Request) (*entity.Department, error) {
	res := a.client.Do(ctx, req)
	if err := res.Err(); err != nil {
		return nil, fail(span, err)
	}

	rec, ok := valueobject.NewRecord(res.Data)
	if !ok {
		return nil, fail(span, backend.ErrUnexpectedBody)
	}

	dept := toDepartment(rec)
	return &dept, nil
}

func (a *API) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return a.ins.Tracer("department.outbound.api").Start(ctx, name)
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func itemPath(id int64) string {
	return basePath + "/" + strconv.FormatInt(id, 10)
}

func toDepartment(rec valueobject.Record) entity.Department {
	return entity.Department{
		ID:        rec.GetInt64("id"),
		Name:      rec.GetString("name"),
		Code:      rec.GetString("code"),
		Location:  rec.GetString("location"),
		IsActive:  !rec.Has("isActive") || rec.GetBool("isActive"),
		CreatedAt: rec.GetTime("createdAt"),
		UpdatedAt: rec.GetTime("updatedAt"),
	}
}
