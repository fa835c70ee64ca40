// Package events defines the catalog and account events the server emits
// and the handler that consumes them.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// Routing keys of the emitted events.
const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
	UserRegistered = "user.registered"
)

// Producer identifies this service in the envelope.
const Producer = "storefront-api"

// Envelope wraps every published payload.
type Envelope struct {
	EventName  string          `json:"eventName"`
	EventID    string          `json:"eventId"`
	Producer   string          `json:"producer"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// ProductPayload is the body of the product.* events.
type ProductPayload struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name,omitempty"`
	Category  string  `json:"category,omitempty"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Featured  bool    `json:"featured"`
}

// UserPayload is the body of the user.registered event.
type UserPayload struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// NewEnvelope wraps payload for eventName.
func NewEnvelope(eventName string, payload interface{}) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", eventName, err)
	}
	return Envelope{
		EventName:  eventName,
		EventID:    uuid.NewString(),
		Producer:   Producer,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}, nil
}

// ProductEvent builds the envelope of a product.* event.
func ProductEvent(eventName string, p models.Product) (Envelope, error) {
	return NewEnvelope(eventName, ProductPayload{
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Stock:     p.Stock,
		Featured:  p.Featured,
	})
}

// UserEvent builds the envelope of the user.registered event.
func UserEvent(u models.User) (Envelope, error) {
	return NewEnvelope(UserRegistered, UserPayload{UserID: u.ID, Email: u.Email})
}
