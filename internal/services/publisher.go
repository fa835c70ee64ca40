package services

import (
	"storefront/internal/events"

	"github.com/rs/zerolog/log"
)

// EventPublisher publishes domain events. A nil publisher disables events.
type EventPublisher interface {
	Publish(routingKey string, payload interface{}) error
}

// publishEvent sends env and only logs failures; events never fail a request.
func publishEvent(p EventPublisher, env events.Envelope, err error) {
	if p == nil {
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to build event")
		return
	}
	if err := p.Publish(env.EventName, env); err != nil {
		log.Warn().Err(err).Str("event", env.EventName).Msg("Failed to publish event")
	}
}
