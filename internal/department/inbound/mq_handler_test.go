package inbound

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/orgdesk/internal/department/usecase"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/messaging"
	"github.com/shandysiswandi/orgdesk/internal/pkg/uid"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMessage struct {
	body    []byte
	headers []messaging.Header
}

func (m testMessage) Body() []byte                { return m.body }
func (m testMessage) Key() []byte                 { return nil }
func (m testMessage) Headers() []messaging.Header { return m.headers }
func (m testMessage) ID() string                  { return "1" }
func (m testMessage) Topic() string               { return "record_changed" }
func (m testMessage) Timestamp() time.Time        { return time.Time{} }
func (m testMessage) Ack(context.Context) error   { return nil }
func (m testMessage) Nack(context.Context) error  { return nil }

func TestMQHandler_RecordChangedDepartmentCache(t *testing.T) {
	stub := &stubUsecase{}
	h := &MQHandler{uc: stub, uuid: uid.Static("generated"), validator: newV10(t), ins: instrument.NewNoop()}

	err := h.RecordChangedDepartmentCache(context.Background(), testMessage{
		body:    []byte(`{"entity":"departments","operation":"updated","id":"4","occurred_at":"2024-05-01T12:00:00Z"}`),
		headers: []messaging.Header{{Key: "cID", Value: []byte("from-publisher")}},
	})

	require.NoError(t, err)
	require.Len(t, stub.consumed, 1)
	assert.Equal(t, usecase.ConsumeRecordChangedInput{Entity: "departments", Operation: "updated", ID: "4"}, stub.consumed[0])
}

func TestMQHandler_CorrelationID(t *testing.T) {
	tests := []struct {
		name    string
		headers []messaging.Header
		want    string
	}{
		{name: "from header", headers: []messaging.Header{{Key: "cID", Value: []byte("from-publisher")}}, want: "from-publisher"},
		{name: "generated", want: "generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := &MQHandler{
				uc:        &cidCapture{stubUsecase: &stubUsecase{}, seen: &seen},
				uuid:      uid.Static("generated"),
				validator: newV10(t),
				ins:       instrument.NewNoop(),
			}

			err := h.RecordChangedDepartmentCache(context.Background(), testMessage{
				body:    []byte(`{"entity":"departments"}`),
				headers: tt.headers,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, seen)
		})
	}
}

func TestMQHandler_RecordChangedDepartmentCache_BadBody(t *testing.T) {
	stub := &stubUsecase{}
	h := &MQHandler{uc: stub, uuid: uid.Static("generated"), validator: newV10(t), ins: instrument.NewNoop()}

	err := h.RecordChangedDepartmentCache(context.Background(), testMessage{body: []byte(`not json`)})

	assert.NoError(t, err)
	assert.Empty(t, stub.consumed)
}

func TestMQHandler_RecordChangedDepartmentCache_InvalidMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown entity", body: `{"entity":"projects","operation":"created","id":"1"}`},
		{name: "missing entity", body: `{"operation":"created","id":"1"}`},
		{name: "unknown operation", body: `{"entity":"departments","operation":"archived","id":"1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubUsecase{}
			h := &MQHandler{uc: stub, uuid: uid.Static("generated"), validator: newV10(t), ins: instrument.NewNoop()}

			err := h.RecordChangedDepartmentCache(context.Background(), testMessage{body: []byte(tt.body)})

			assert.NoError(t, err)
			assert.Empty(t, stub.consumed)
		})
	}
}

func TestMQHandler_RecordChangedDepartmentCache_Error(t *testing.T) {
	stub := &stubUsecase{consumeFn: func(usecase.ConsumeRecordChangedInput) error { return errors.New("redis down") }}
	h := &MQHandler{uc: stub, uuid: uid.Static("generated"), validator: newV10(t), ins: instrument.NewNoop()}

	err := h.RecordChangedDepartmentCache(context.Background(), testMessage{body: []byte(`{"entity":"departments"}`)})

	assert.EqualError(t, err, "redis down")
}

type cidCapture struct {
	*stubUsecase
	seen *string
}

func (c *cidCapture) ConsumeRecordChanged(ctx context.Context, in usecase.ConsumeRecordChangedInput) error {
	*c.seen = instrument.GetCorrelationID(ctx)
	return c.stubUsecase.ConsumeRecordChanged(ctx, in)
}

func newV10(t *testing.T) *validator.V10Validator {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)
	return v
}
