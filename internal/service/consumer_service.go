package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"doc-analytics-be/internal/dto"
	"doc-analytics-be/pkg/events"
	pkgNats "doc-analytics-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process run-event topic and forwards each
// event to the NATS bus for downstream systems. Forwarding is best effort:
// a dead NATS connection never blocks the pipeline side.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	eventPublisher *pkgNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventPublisher *pkgNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.RunEventMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal run event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.eventPublisher == nil {
		msg.Ack()
		return
	}

	var evt events.BaseEvent
	if payload.Status == "completed" {
		evt = events.NewRunCompleted(payload.RunId, payload.UserId, payload.Action, payload.DurationMs)
	} else {
		evt = events.NewRunFailed(payload.RunId, payload.UserId, payload.Action, payload.Kind, payload.Reason)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cs.eventPublisher.Publish(pubCtx, evt); err != nil {
		log.Printf("[WARN] Failed to forward %s to NATS: %v", evt.EventType(), err)
		// Ack anyway, run events are advisory and must not pile up.
	}

	msg.Ack()
}
