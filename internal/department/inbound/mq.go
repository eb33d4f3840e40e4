package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/orgdesk/internal/pkg/config"
	"github.com/shandysiswandi/orgdesk/internal/pkg/goroutine"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/messaging"
	"github.com/shandysiswandi/orgdesk/internal/pkg/uid"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
	"github.com/shandysiswandi/orgdesk/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Consumer,
	uuid uid.StringID,
	v validator.Validator,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, validator: v, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.department.consumer_names")

	topic := cfg.GetString("messaging.topics.record_changed")
	if topic == "" {
		topic = event.RecordChangedDestination
	}

	var consumers = []struct {
		name    string
		topic   string // destination where publisher sent message
		group   string
		handler messaging.Handler
	}{
		{
			name:    event.RecordChangedConsumerDepartmentCache,
			topic:   topic,
			group:   event.RecordChangedConsumerDepartmentCache,
			handler: mqHandler.RecordChangedDepartmentCache,
		},
	}

	for _, consumer := range consumers {
		if !slices.Contains(enableConsumerNames, consumer.name) {
			continue
		}

		routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name, "topic", consumer.topic)
			return messenger.Consume(pCtx,
				consumer.topic,
				consumer.handler,
				messaging.WithGroup(consumer.group),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(cfg.GetInt("messaging.concurrency")),
				messaging.WithMaxInFlight(cfg.GetInt("messaging.max_in_flight")),
			)
		})
	}
}
