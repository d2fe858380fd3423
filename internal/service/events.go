package service

import (
	"context"

	"github.com/Skotchmaster/ecommerce/internal/logging"
)

func publish(ctx context.Context, p EventPublisher, topic, key, eventType string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, key, eventType, payload); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "type", eventType, "error", err)
	}
}
