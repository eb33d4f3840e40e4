package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shandysiswandi/orgdesk/internal/pkg/config"
	"github.com/shandysiswandi/orgdesk/internal/pkg/goerror"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type created struct {
	ID int64 `json:"id"`
}

func (created) Message() string { return "Department added successfully" }
func (created) StatusCode() int { return http.StatusCreated }

func newTestRouter(t *testing.T, yaml string) *Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	return NewRouter(Config{
		Config:     cfg,
		UUID:       uid.Static("generated-cid"),
		Instrument: instrument.NewNoop(),
	})
}

func serve(ro *Router, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, req)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestRouter_SuccessEnvelope(t *testing.T) {
	ro := newTestRouter(t, "app: {name: test}")
	ro.POST("/things", func(r *Request) (any, error) {
		return created{ID: 7}, nil
	})

	rec, body := serve(ro, httptest.NewRequest(http.MethodPost, "/things", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Department added successfully", body["message"])
	assert.Equal(t, map[string]any{"id": float64(7)}, body["data"])
	assert.Equal(t, "generated-cid", rec.Header().Get(HeaderCorrelationID))
}

func TestRouter_NoContent(t *testing.T) {
	ro := newTestRouter(t, "app: {name: test}")
	ro.DELETE("/things/:id", func(r *Request) (any, error) {
		return nil, nil
	})

	rec, _ := serve(ro, httptest.NewRequest(http.MethodDelete, "/things/1", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	ro := newTestRouter(t, "app: {name: test}")
	ro.POST("/rejected", func(r *Request) (any, error) {
		return nil, goerror.NewRejected([]string{"Name required", "Code required"})
	})
	ro.POST("/upstream", func(r *Request) (any, error) {
		return nil, goerror.NewBackend(http.StatusServiceUnavailable, "Error adding department", nil)
	})
	ro.GET("/plain", func(r *Request) (any, error) {
		return nil, errors.New("boom")
	})

	rec, body := serve(ro, httptest.NewRequest(http.MethodPost, "/rejected", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Validation error", body["message"])
	assert.Equal(t, []any{"Name required", "Code required"}, body["errors"])

	rec, body = serve(ro, httptest.NewRequest(http.MethodPost, "/upstream", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Error adding department", body["message"])
	assert.NotContains(t, body, "errors")

	rec, body = serve(ro, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestRouter_CorrelationIDPassThrough(t *testing.T) {
	ro := newTestRouter(t, "app: {name: test}")
	var seen string
	ro.GET("/cid", func(r *Request) (any, error) {
		seen = instrument.GetCorrelationID(r.Context())
		return map[string]string{}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/cid", nil)
	req.Header.Set(HeaderRequestID, "  from-proxy ")
	rec, _ := serve(ro, req)

	assert.Equal(t, "from-proxy", seen)
	assert.Equal(t, "from-proxy", rec.Header().Get(HeaderCorrelationID))
}

func TestRouter_Maintenance(t *testing.T) {
	ro := newTestRouter(t, `
app:
  maintenance:
    endpoints: /blocked
`)
	ro.GET("/blocked", func(r *Request) (any, error) { return map[string]string{}, nil })
	ro.GET("/open", func(r *Request) (any, error) { return map[string]string{}, nil })

	rec, body := serve(ro, httptest.NewRequest(http.MethodGet, "/blocked", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "service is under maintenance", body["message"])

	rec, _ = serve(ro, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Recover(t *testing.T) {
	ro := newTestRouter(t, "app: {name: test}")
	ro.GET("/panic", func(r *Request) (any, error) {
		panic("unexpected")
	})

	rec, body := serve(ro, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestRouter_NotFound(t *testing.T) {
	ro := newTestRouter(t, "app: {name: test}")

	rec, body := serve(ro, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "endpoint not found", body["message"])
}

func TestRequest_DecodeForm(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        map[string]any
		wantErr     bool
	}{
		{
			name:        "Success json",
			contentType: "application/json; charset=utf-8",
			body:        `{"name":"Engineering","departmentId":3,"isActive":true}`,
			want:        map[string]any{"name": "Engineering", "departmentId": json.Number("3"), "isActive": true},
		},
		{
			name: "Success json without content type",
			body: `{"code":"ENG"}`,
			want: map[string]any{"code": "ENG"},
		},
		{
			name:        "Success urlencoded",
			contentType: "application/x-www-form-urlencoded",
			body:        url.Values{"name": {"Engineering", "ignored"}, "isActive": {"true"}}.Encode(),
			want:        map[string]any{"name": "Engineering", "isActive": "true"},
		},
		{
			name:        "Error json array",
			contentType: "application/json",
			body:        `[1,2]`,
			wantErr:     true,
		},
		{
			name:        "Error json null",
			contentType: "application/json",
			body:        `null`,
			wantErr:     true,
		},
		{
			name:        "Error trailing data",
			contentType: "application/json",
			body:        `{"a":"b"} {"c":"d"}`,
			wantErr:     true,
		},
		{
			name:        "Error unsupported content type",
			contentType: "text/plain",
			body:        `name=x`,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			got, err := (&Request{Request: req}).DecodeForm()

			if tt.wantErr {
				var gerr *goerror.Error
				require.ErrorAs(t, err, &gerr)
				assert.Equal(t, http.StatusBadRequest, gerr.StatusCode())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequest_GetParamInt64(t *testing.T) {
	ro := newTestRouter(t, "app: {name: test}")
	ro.GET("/things/:id", func(r *Request) (any, error) {
		id, err := r.GetParamInt64("id")
		if err != nil {
			return nil, err
		}
		return map[string]int64{"id": id}, nil
	})

	rec, body := serve(ro, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"id": float64(42)}, body["data"])

	rec, _ = serve(ro, httptest.NewRequest(http.MethodGet, "/things/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serve(ro, httptest.NewRequest(http.MethodGet, "/things/0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIncomingCID(t *testing.T) {
	long := strings.Repeat("a", 200)

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "none", want: ""},
		{name: "correlation header wins", headers: map[string]string{HeaderCorrelationID: "c-1", HeaderRequestID: "r-1"}, want: "c-1"},
		{name: "request id fallback", headers: map[string]string{HeaderCorrelationID: "  ", HeaderRequestID: "r-1"}, want: "r-1"},
		{name: "long value cut", headers: map[string]string{HeaderCorrelationID: long}, want: long[:128]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			assert.Equal(t, tt.want, incomingCID(h))
		})
	}
}
