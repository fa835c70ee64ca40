package events

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Handle decodes a consumed event and logs it. Malformed messages are
// reported as errors so the consumer can reject them.
func Handle(routingKey string, body []byte) error {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if env.EventName == "" {
		env.EventName = routingKey
	}

	switch env.EventName {
	case ProductCreated, ProductUpdated, ProductDeleted:
		var p ProductPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("decode %s payload: %w", env.EventName, err)
		}
		log.Info().
			Str("event", env.EventName).
			Str("event_id", env.EventID).
			Str("product_id", p.ProductID).
			Str("name", p.Name).
			Int("stock", p.Stock).
			Msg("Catalog event received")
	case UserRegistered:
		var u UserPayload
		if err := json.Unmarshal(env.Payload, &u); err != nil {
			return fmt.Errorf("decode %s payload: %w", env.EventName, err)
		}
		log.Info().
			Str("event", env.EventName).
			Str("event_id", env.EventID).
			Str("user_id", u.UserID).
			Msg("Account event received")
	default:
		return fmt.Errorf("unknown event %q", env.EventName)
	}
	return nil
}
