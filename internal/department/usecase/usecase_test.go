package usecase

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/orgdesk/internal/department/entity"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
	"github.com/shandysiswandi/orgdesk/internal/pkg/cache"
	"github.com/shandysiswandi/orgdesk/internal/pkg/clock"
	"github.com/shandysiswandi/orgdesk/internal/pkg/config"
	"github.com/shandysiswandi/orgdesk/internal/pkg/goerror"
	"github.com/shandysiswandi/orgdesk/internal/pkg/idempotency"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
	"github.com/shandysiswandi/orgdesk/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeBackend struct {
	mu          sync.Mutex
	departments map[int64]entity.Department
	nextID      int64
	err         error
	creates     int
	lastPayload map[string]any
	lists       int
}

func newFakeBackend(depts ...entity.Department) *fakeBackend {
	f := &fakeBackend{departments: map[int64]entity.Department{}, nextID: 100}
	for _, d := range depts {
		f.departments[d.ID] = d
	}
	return f
}

func (f *fakeBackend) ListDepartments(context.Context) ([]entity.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entity.Department, 0, len(f.departments))
	for _, d := range f.departments {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeBackend) GetDepartment(_ context.Context, id int64) (*entity.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.departments[id]
	if !ok {
		return nil, &backend.StatusError{Status: http.StatusNotFound, Message: "HTTP 404: Not Found"}
	}
	return &d, nil
}

func (f *fakeBackend) CreateDepartment(_ context.Context, payload map[string]any) (*entity.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.lastPayload = payload
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	d := entity.Department{
		ID:       f.nextID,
		Name:     payload["name"].(string),
		Code:     payload["code"].(string),
		Location: payload["location"].(string),
		IsActive: true,
	}
	f.departments[d.ID] = d
	return &d, nil
}

func (f *fakeBackend) UpdateDepartment(_ context.Context, id int64, payload map[string]any) (*entity.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPayload = payload
	if f.err != nil {
		return nil, f.err
	}
	d := f.departments[id]
	if v, ok := payload["name"].(string); ok {
		d.Name = v
	}
	if v, ok := payload["code"].(string); ok {
		d.Code = v
	}
	if v, ok := payload["location"].(string); ok {
		d.Location = v
	}
	if v, ok := payload["isActive"].(bool); ok {
		d.IsActive = v
	}
	f.departments[id] = d
	return &d, nil
}

func (f *fakeBackend) DeleteDepartment(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.departments[id]; !ok {
		return &backend.StatusError{Status: http.StatusNotFound}
	}
	delete(f.departments, id)
	return nil
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []DepartmentChangedEvent
	err    error
}

func (f *fakeMessaging) PublishDepartmentChanged(_ context.Context, msg DepartmentChangedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msg)
	return f.err
}

type memCache struct {
	mu      sync.Mutex
	entries map[string]any
	deletes int
}

func newMemCache() *memCache { return &memCache{entries: map[string]any{}} }

func (c *memCache) Get(_ context.Context, key string, dst any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return cache.ErrMiss
	}
	*(dst.(*[]entity.Option)) = v.([]entity.Option)
	return nil
}

func (c *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

type memIdempotency struct {
	mu   sync.Mutex
	done map[string]bool
}

func (m *memIdempotency) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (m *memIdempotency) MarkCompleted(context.Context, string, time.Duration) error {
	return nil
}

func (m *memIdempotency) Release(context.Context, string) error {
	return nil
}

func (m *memIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	m.mu.Lock()
	if m.done[key] {
		m.mu.Unlock()
		return idempotency.ErrAlreadyCompleted
	}
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.done[key] = true
	m.mu.Unlock()
	return nil
}

type fixture struct {
	uc    *Usecase
	repo  *fakeBackend
	msg   *fakeMessaging
	cache *memCache
}

func newFixture(t *testing.T, depts ...entity.Department) fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("cache:\n  departments:\n    ttl_seconds: 60\n"))
	require.NoError(t, err)

	f := fixture{repo: newFakeBackend(depts...), msg: &fakeMessaging{}, cache: newMemCache()}
	f.uc = New(Dependency{
		RepoBackend:    f.repo,
		RepoMessaging:  f.msg,
		Idempotency:    &memIdempotency{done: map[string]bool{}},
		Cache:          f.cache,
		InputValidator: validator.NewInputValidator(nil),
		Config:         cfg,
		Clock:          clock.NewFixed(fixedNow),
		Instrument:     instrument.NewNoop(),
	})
	return f
}

func engineering() entity.Department {
	return entity.Department{ID: 1, Name: "Engineering", Code: "ENG", Location: "London", IsActive: true}
}

func asGoError(t *testing.T, err error) *goerror.Error {
	t.Helper()
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	return gerr
}

func TestUsecase_Create(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), CreateInput{Fields: validator.Input{
		"name": "Research", "code": "RES1", "location": "New York", "isActive": "false", "ignored": "x",
	}})
	require.NoError(t, err)

	assert.Equal(t, "Department added successfully", out.Message)
	assert.Equal(t, "Research", out.Department.Name)
	assert.Equal(t, map[string]any{
		"name": "Research", "code": "RES1", "location": "New York", "isActive": false,
	}, f.repo.lastPayload)
	require.Len(t, f.msg.events, 1)
	assert.Equal(t, DepartmentChangedEvent{ID: out.Department.ID, Operation: event.OperationCreated, OccurredAt: fixedNow}, f.msg.events[0])
	assert.Equal(t, 1, f.cache.deletes)
}

func TestUsecase_Create_Rejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), CreateInput{Fields: validator.Input{
		"name": "", "code": "eng", "location": "Paris",
	}})

	gerr := asGoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, gerr.StatusCode())
	assert.Equal(t, []string{
		"Name required",
		"Code can be maximum 20 characters and can contain only numbers and capital letters",
		"Location not currently valid",
	}, gerr.Messages())
	assert.Zero(t, f.repo.creates)
	assert.Empty(t, f.msg.events)
}

func TestUsecase_Create_Idempotent(t *testing.T) {
	f := newFixture(t)
	in := CreateInput{
		IdempotencyKey: "k-1",
		Fields:         validator.Input{"name": "Research", "code": "RES", "location": "London"},
	}

	_, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), in)
	gerr := asGoError(t, err)
	assert.Equal(t, http.StatusConflict, gerr.StatusCode())
	assert.Equal(t, "Request already processed", gerr.Msg())
	assert.Equal(t, 1, f.repo.creates)
}

func TestUsecase_Create_BackendErrors(t *testing.T) {
	f := newFixture(t)
	f.repo.err = &backend.StatusError{Status: http.StatusConflict, Errors: []string{"Code already taken"}}

	_, err := f.uc.Create(context.Background(), CreateInput{
		IdempotencyKey: "k-2",
		Fields:         validator.Input{"name": "Research", "code": "RES", "location": "London"},
	})

	gerr := asGoError(t, err)
	assert.Equal(t, http.StatusConflict, gerr.StatusCode())
	assert.Equal(t, "Error adding department", gerr.Msg())
	assert.Equal(t, []string{"Code already taken"}, gerr.Messages())
	assert.Empty(t, f.msg.events)
}

func TestUsecase_Update(t *testing.T) {
	tests := []struct {
		name       string
		fields     validator.Input
		wantStatus int
		wantMsg    string
		wantMsgs   []string
	}{
		{
			name:   "Success partial change",
			fields: validator.Input{"location": "New York"},
		},
		{
			name:       "Error no changes",
			fields:     validator.Input{"name": "Engineering", "code": "ENG", "location": "London"},
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "No changes detected",
		},
		{
			name:       "Error nothing submitted",
			fields:     validator.Input{"name": ""},
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "No changes detected",
		},
		{
			name:       "Error invalid field",
			fields:     validator.Input{"location": "Tokyo"},
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "Validation error",
			wantMsgs:   []string{"Location not currently valid"},
		},
		{
			name:   "Success boolean string compared as boolean",
			fields: validator.Input{"isActive": "false"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, engineering())

			out, err := f.uc.Update(context.Background(), UpdateInput{ID: 1, Fields: tt.fields})
			if tt.wantStatus != 0 {
				gerr := asGoError(t, err)
				assert.Equal(t, tt.wantStatus, gerr.StatusCode())
				assert.Equal(t, tt.wantMsg, gerr.Msg())
				assert.Equal(t, tt.wantMsgs, gerr.Messages())
				assert.Empty(t, f.msg.events)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Department edited successfully", out.Message)
			require.Len(t, f.msg.events, 1)
			assert.Equal(t, event.OperationUpdated, f.msg.events[0].Operation)
		})
	}
}

func TestUsecase_Update_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Update(context.Background(), UpdateInput{ID: 9, Fields: validator.Input{"name": "Xy"}})

	gerr := asGoError(t, err)
	assert.Equal(t, http.StatusNotFound, gerr.StatusCode())
	assert.Equal(t, "Error loading department", gerr.Msg())
}

func TestUsecase_Delete(t *testing.T) {
	f := newFixture(t, engineering())

	out, err := f.uc.Delete(context.Background(), DeleteInput{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Department deleted successfully", out.Message)
	require.Len(t, f.msg.events, 1)
	assert.Equal(t, event.OperationDeleted, f.msg.events[0].Operation)

	_, err = f.uc.Delete(context.Background(), DeleteInput{ID: 1})
	gerr := asGoError(t, err)
	assert.Equal(t, "Error deleting department", gerr.Msg())
	assert.Equal(t, []string{"Error deleting department"}, gerr.Messages())
}

func TestUsecase_Delete_PublishFailureIgnored(t *testing.T) {
	f := newFixture(t, engineering())
	f.msg.err = errors.New("broker down")

	_, err := f.uc.Delete(context.Background(), DeleteInput{ID: 1})
	assert.NoError(t, err)
}

func TestUsecase_ListSortedByName(t *testing.T) {
	f := newFixture(t,
		entity.Department{ID: 1, Name: "sales"},
		entity.Department{ID: 2, Name: "Engineering"},
		entity.Department{ID: 3, Name: "Accounts"},
	)

	out, err := f.uc.List(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(out.Departments))
	for _, d := range out.Departments {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Accounts", "Engineering", "sales"}, names)
}

func TestUsecase_List_Error(t *testing.T) {
	f := newFixture(t)
	f.repo.err = &backend.StatusError{Status: http.StatusInternalServerError, Message: "dial tcp: refused"}

	_, err := f.uc.List(context.Background())

	gerr := asGoError(t, err)
	assert.Equal(t, http.StatusBadGateway, gerr.StatusCode())
	assert.Equal(t, "Error loading departments", gerr.Msg())
}

func TestUsecase_Detail(t *testing.T) {
	f := newFixture(t, engineering())

	out, err := f.uc.Detail(context.Background(), DetailInput{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, engineering(), out.Department)

	_, err = f.uc.Detail(context.Background(), DetailInput{ID: 2})
	assert.Equal(t, "Error loading department", asGoError(t, err).Msg())
}

func TestUsecase_OptionsCached(t *testing.T) {
	f := newFixture(t, engineering(), entity.Department{ID: 2, Name: "Accounts"})

	first, err := f.uc.Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Option{{ID: 2, Name: "Accounts"}, {ID: 1, Name: "Engineering"}}, first.Options)

	second, err := f.uc.Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Options, second.Options)
	assert.Equal(t, 1, f.repo.lists)
}

func TestUsecase_ConsumeRecordChanged(t *testing.T) {
	f := newFixture(t, engineering())

	_, err := f.uc.Options(context.Background())
	require.NoError(t, err)

	require.NoError(t, f.uc.ConsumeRecordChanged(context.Background(), ConsumeRecordChangedInput{Entity: "employees", ID: "4"}))
	_, err = f.uc.Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.lists)

	require.NoError(t, f.uc.ConsumeRecordChanged(context.Background(), ConsumeRecordChangedInput{Entity: "departments", ID: "1"}))
	_, err = f.uc.Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, f.repo.lists)
}
