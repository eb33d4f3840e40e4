package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/orgdesk/internal/department/entity"
	"github.com/shandysiswandi/orgdesk/internal/department/usecase"
	"github.com/shandysiswandi/orgdesk/internal/pkg/config"
	"github.com/shandysiswandi/orgdesk/internal/pkg/goerror"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/router"
	"github.com/shandysiswandi/orgdesk/internal/pkg/uid"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsecase struct {
	createIn  usecase.CreateInput
	updateIn  usecase.UpdateInput
	consumed  []usecase.ConsumeRecordChangedInput
	err       error
	consumeFn func(in usecase.ConsumeRecordChangedInput) error
}

var research = entity.Department{
	ID:        4,
	Name:      "Research",
	Code:      "RES",
	Location:  "London",
	IsActive:  true,
	CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
}

func (s *stubUsecase) List(context.Context) (*usecase.ListOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.ListOutput{Departments: []entity.Department{research}}, nil
}

func (s *stubUsecase) Detail(_ context.Context, in usecase.DetailInput) (*usecase.DetailOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	d := research
	d.ID = in.ID
	return &usecase.DetailOutput{Department: d}, nil
}

func (s *stubUsecase) Create(_ context.Context, in usecase.CreateInput) (*usecase.CreateOutput, error) {
	s.createIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.CreateOutput{Department: research, Message: "Department added successfully"}, nil
}

func (s *stubUsecase) Update(_ context.Context, in usecase.UpdateInput) (*usecase.UpdateOutput, error) {
	s.updateIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.UpdateOutput{Department: research, Message: "Department edited successfully"}, nil
}

func (s *stubUsecase) Delete(context.Context, usecase.DeleteInput) (*usecase.DeleteOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.DeleteOutput{Message: "Department deleted successfully"}, nil
}

func (s *stubUsecase) Options(context.Context) (*usecase.OptionsOutput, error) {
	return &usecase.OptionsOutput{Options: []entity.Option{{ID: 4, Name: "Research"}}}, nil
}

func (s *stubUsecase) ConsumeRecordChanged(_ context.Context, in usecase.ConsumeRecordChangedInput) error {
	s.consumed = append(s.consumed, in)
	if s.consumeFn != nil {
		return s.consumeFn(in)
	}
	return nil
}

func newTestServer(t *testing.T, uc uc) *router.Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {name: test}"))
	require.NoError(t, err)

	ro := router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       uid.Static("cid"),
		Instrument: instrument.NewNoop(),
	})
	RegisterHTTPEndpoint(ro, uc)
	return ro
}

func do(ro *router.Router, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, req)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestHTTPEndpoint_List(t *testing.T) {
	ro := newTestServer(t, &stubUsecase{})

	rec, body := do(ro, httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"total": float64(1)}, body["meta"])
	data := body["data"].(map[string]any)
	list := data["departments"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "RES", list[0].(map[string]any)["code"])
	assert.Equal(t, true, list[0].(map[string]any)["isActive"])
}

func TestHTTPEndpoint_List_BackendDown(t *testing.T) {
	ro := newTestServer(t, &stubUsecase{
		err: goerror.NewBackend(http.StatusBadGateway, "Error loading departments", []string{"Error loading departments"}),
	})

	rec, body := do(ro, httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Error loading departments", body["message"])
	assert.Equal(t, []any{"Error loading departments"}, body["errors"])
}

func TestHTTPEndpoint_Detail(t *testing.T) {
	ro := newTestServer(t, &stubUsecase{})

	rec, body := do(ro, httptest.NewRequest(http.MethodGet, "/api/v1/departments/9", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	dept := body["data"].(map[string]any)["department"].(map[string]any)
	assert.Equal(t, float64(9), dept["id"])

	rec, _ = do(ro, httptest.NewRequest(http.MethodGet, "/api/v1/departments/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPEndpoint_Create(t *testing.T) {
	stub := &stubUsecase{}
	ro := newTestServer(t, stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/departments",
		strings.NewReader(`{"name":"Research","code":"RES","location":"London","isActive":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "abc-123")

	rec, body := do(ro, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Department added successfully", body["message"])
	assert.Equal(t, "abc-123", stub.createIn.IdempotencyKey)
	assert.Equal(t, validator.Input{
		"name": "Research", "code": "RES", "location": "London", "isActive": true,
	}, stub.createIn.Fields)
}

func TestHTTPEndpoint_Create_URLEncoded(t *testing.T) {
	stub := &stubUsecase{}
	ro := newTestServer(t, stub)

	form := url.Values{"name": {"Research"}, "code": {"RES"}, "location": {"London"}, "isActive": {"false"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/departments", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec, _ := do(ro, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "false", stub.createIn.Fields["isActive"])
	assert.Empty(t, stub.createIn.IdempotencyKey)
}

func TestHTTPEndpoint_Create_Rejected(t *testing.T) {
	ro := newTestServer(t, &stubUsecase{err: goerror.NewRejected([]string{"Name required"})})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/departments", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	rec, body := do(ro, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Validation error", body["message"])
	assert.Equal(t, []any{"Name required"}, body["errors"])
}

func TestHTTPEndpoint_Create_InvalidBody(t *testing.T) {
	ro := newTestServer(t, &stubUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/departments", strings.NewReader(`[1,2]`))
	req.Header.Set("Content-Type", "application/json")

	rec, _ := do(ro, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPEndpoint_Update(t *testing.T) {
	stub := &stubUsecase{}
	ro := newTestServer(t, stub)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/departments/4", strings.NewReader(`{"location":"New York"}`))
	req.Header.Set("Content-Type", "application/json")

	rec, body := do(ro, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Department edited successfully", body["message"])
	assert.Equal(t, usecase.UpdateInput{ID: 4, Fields: validator.Input{"location": "New York"}}, stub.updateIn)
}

func TestHTTPEndpoint_Update_NoChanges(t *testing.T) {
	ro := newTestServer(t, &stubUsecase{err: goerror.NewBusiness("No changes detected", goerror.CodeInvalidInput)})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/departments/4", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	rec, body := do(ro, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "No changes detected", body["message"])
}

func TestHTTPEndpoint_Delete(t *testing.T) {
	ro := newTestServer(t, &stubUsecase{})

	rec, body := do(ro, httptest.NewRequest(http.MethodDelete, "/api/v1/departments/4", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Department deleted successfully", body["message"])
	assert.Equal(t, map[string]any{"id": float64(4)}, body["data"])
}

func TestHTTPEndpoint_Options(t *testing.T) {
	ro := newTestServer(t, &stubUsecase{})

	rec, body := do(ro, httptest.NewRequest(http.MethodGet, "/api/v1/department-options", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{
		"options": []any{map[string]any{"id": float64(4), "name": "Research"}},
	}, body["data"])
}
