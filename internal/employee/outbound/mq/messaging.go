package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/orgdesk/internal/employee/usecase"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/messaging"
	"github.com/shandysiswandi/orgdesk/internal/pkg/schema"
	"github.com/shandysiswandi/orgdesk/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Publisher
	topic  string
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, topic string, ins instrument.Instrumentation) *Messaging {
	if topic == "" {
		topic = event.RecordChangedDestination
	}
	return &Messaging{client: client, topic: topic, ins: ins}
}

func (m *Messaging) PublishEmployeeChanged(ctx context.Context, msg usecase.EmployeeChangedEvent) error {
	ctx, span := m.ins.Tracer("employee.outbound.mq").Start(ctx, "PublishEmployeeChanged")
	defer span.End()

	body, err := json.Marshal(event.RecordChangedMessage{
		Entity:     schema.EntityEmployees.String(),
		Operation:  msg.Operation,
		ID:         strconv.FormatInt(msg.ID, 10),
		OccurredAt: msg.OccurredAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if _, err := m.client.Publish(ctx, m.topic, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(schema.EntityEmployees.String()),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(instrument.GetCorrelationID(ctx))}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
