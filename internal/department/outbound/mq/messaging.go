package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/orgdesk/internal/department/usecase"
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

func (m *Messaging) PublishDepartmentChanged(ctx context.Context, msg usecase.DepartmentChangedEvent) error {
	ctx, span := m.ins.Tracer("department.outbound.mq").Start(ctx, "PublishDepartmentChanged")
	defer span.End()

	body, err := json.Marshal(event.RecordChangedMessage{
		Entity:     schema.EntityDepartments.String(),
		Operation:  msg.Operation,
		ID:         strconv.FormatInt(msg.ID, 10),
		OccurredAt: msg.OccurredAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, m.topic, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(schema.EntityDepartments.String()),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
