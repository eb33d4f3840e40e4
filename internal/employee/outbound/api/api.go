package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shandysiswandi/orgdesk/internal/employee/entity"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/valueobject"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const basePath = "/api/v1/employees"

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

func (a *API) ListEmployees(ctx context.Context) ([]entity.Employee, error) {
	ctx, span := a.startSpan(ctx, "ListEmployees")
	defer span.End()

	res := a.client.Do(ctx, backend.Request{Method: http.MethodGet, Path: basePath})
	if err := res.Err(); err != nil {
		return nil, fail(span, err)
	}

	records, ok := valueobject.NewRecords(res.Data)
	if !ok {
		return nil, fail(span, backend.ErrUnexpectedBody)
	}

	employees := make([]entity.Employee, 0, len(records))
	for _, rec := range records {
		employees = append(employees, toEmployee(rec))
	}

	return employees, nil
}

func (a *API) GetEmployee(ctx context.Context, id int64) (*entity.Employee, error) {
	ctx, span := a.startSpan(ctx, "GetEmployee")
	defer span.End()

	return a.one(ctx, span, backend.Request{Method: http.MethodGet, Path: itemPath(id)})
}

func (a *API) CreateEmployee(ctx context.Context, payload map[string]any) (*entity.Employee, error) {
	ctx, span := a.startSpan(ctx, "CreateEmployee")
	defer span.End()

	return a.one(ctx, span, backend.Request{
		Method:      http.MethodPost,
		Path:        basePath,
		ContentType: "application/json",
		Body:        payload,
	})
}

func (a *API) UpdateEmployee(ctx context.Context, id int64, payload map[string]any) (*entity.Employee, error) {
	ctx, span := a.startSpan(ctx, "UpdateEmployee")
	defer span.End()

	return a.one(ctx, span, backend.Request{
		Method:      http.MethodPatch,
		Path:        itemPath(id),
		ContentType: "application/json",
		Body:        payload,
	})
}

func (a *API) DeleteEmployee(ctx context.Context, id int64) error {
	ctx, span := a.startSpan(ctx, "DeleteEmployee")
	defer span.End()

	res := a.client.Do(ctx, backend.Request{Method: http.MethodDelete, Path: itemPath(id)})
	if err := res.Err(); err != nil {
		return fail(span, err)
	}

	return nil
}

func (a *API) one(ctx context.Context, span trace.Span, req backend.Request) (*entity.Employee, error) {
	res := a.client.Do(ctx, req)
	if err := res.Err(); err != nil {
		return nil, fail(span, err)
	}

	rec, ok := valueobject.NewRecord(res.Data)
	if !ok {
		return nil, fail(span, backend.ErrUnexpectedBody)
	}

	emp := toEmployee(rec)
	return &emp, nil
}

func (a *API) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return a.ins.Tracer("employee.outbound.api").Start(ctx, name)
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func itemPath(id int64) string {
	return basePath + "/" + strconv.FormatInt(id, 10)
}

func toEmployee(rec valueobject.Record) entity.Employee {
	return entity.Employee{
		ID:           rec.GetInt64("id"),
		FirstName:    rec.GetString("firstName"),
		LastName:     rec.GetString("lastName"),
		Title:        rec.GetString("title"),
		DepartmentID: rec.GetInt64("departmentId"),
		Email:        rec.GetString("email"),
		CountryCode:  rec.GetString("countryCode"),
		PhoneNumber:  rec.GetString("phoneNumber"),
		IsActive:     !rec.Has("isActive") || rec.GetBool("isActive"),
		HireDate:     rec.GetTime("hireDate"),
		CreatedAt:    rec.GetTime("createdAt"),
		UpdatedAt:    rec.GetTime("updatedAt"),
	}
}
