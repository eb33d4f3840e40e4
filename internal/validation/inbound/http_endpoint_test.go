package inbound

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shandysiswandi/orgdesk/internal/pkg/config"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/router"
	"github.com/shandysiswandi/orgdesk/internal/pkg/uid"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
	"github.com/shandysiswandi/orgdesk/internal/validation/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *router.Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {name: test}"))
	require.NoError(t, err)

	ro := router.NewRouter(router.Config{Config: cfg, UUID: uid.Static("cid"), Instrument: instrument.NewNoop()})
	RegisterHTTPEndpoint(ro, usecase.New(usecase.Dependency{
		InputValidator: validator.NewInputValidator(nil),
		Instrument:     instrument.NewNoop(),
	}))
	return ro
}

func post(ro *router.Router, path, contentType, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, req)

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func TestHTTPEndpoint_Validate(t *testing.T) {
	ro := newTestServer(t)

	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
		want        map[string]any
	}{
		{
			name:        "Success valid department",
			path:        "/api/v1/validate/departments/INSERT",
			contentType: "application/json",
			body:        `{"name":"Engineering","code":"ENG","location":"London"}`,
			want:        map[string]any{"valid": true, "messages": []any{}},
		},
		{
			name:        "Success lower case operation",
			path:        "/api/v1/validate/departments/update",
			contentType: "application/json",
			body:        `{}`,
			want:        map[string]any{"valid": true, "messages": []any{}},
		},
		{
			name:        "Error rejected employee form",
			path:        "/api/v1/validate/employees/UPDATE",
			contentType: "application/x-www-form-urlencoded",
			body:        url.Values{"countryCode": {"+44"}, "isActive": {"maybe"}}.Encode(),
			want: map[string]any{"valid": false, "messages": []any{
				"Country code must be between 1 and 4 digits and contain only digits",
				"Active status must be true or false",
			}},
		},
		{
			name:        "Error unknown entity",
			path:        "/api/v1/validate/projects/INSERT",
			contentType: "application/json",
			body:        `{}`,
			want: map[string]any{"valid": false, "messages": []any{
				"No schema function found for table 'projects'",
			}},
		},
		{
			name:        "Error unsupported operation",
			path:        "/api/v1/validate/employees/DELETE",
			contentType: "application/json",
			body:        `{}`,
			want: map[string]any{"valid": false, "messages": []any{
				"No schema function found for table 'employees'",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := post(ro, tt.path, tt.contentType, tt.body)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, body["data"])
		})
	}
}

func TestHTTPEndpoint_Validate_BadBody(t *testing.T) {
	rec, _ := post(newTestServer(t), "/api/v1/validate/departments/INSERT", "application/json", `not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
