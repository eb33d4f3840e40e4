package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/orgdesk/internal/department/usecase"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/messaging"
	"github.com/shandysiswandi/orgdesk/internal/pkg/uid"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
	"github.com/shandysiswandi/orgdesk/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc        uc
	uuid      uid.StringID
	validator validator.Validator
	ins       instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	if cID := messaging.HeaderValue(headers, keyOfCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) RecordChangedDepartmentCache(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("department.inbound.mq").Start(ctx, "RecordChangedDepartmentCache")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: record changed for department cache", "msg_body", string(body))

	var payload event.RecordChangedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of record changed", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.validator.Validate(payload); err != nil {
		slog.WarnContext(ctx, "invalid record changed message dropped", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeRecordChanged(ctx, usecase.ConsumeRecordChangedInput{
		Entity:    payload.Entity,
		Operation: payload.Operation,
		ID:        payload.ID,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume record changed", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
