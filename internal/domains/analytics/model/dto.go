package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type RecordEventRequest struct {
	EventType string     `json:"event_type"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Quantity  *int       `json:"quantity,omitempty"`
}

func (r RecordEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EventType, validation.Required, validation.By(validEventType)),
		validation.Field(&r.Quantity, validation.Min(1)),
	)
}

func validEventType(value interface{}) error {
	t, ok := value.(string)
	if !ok || !IsValidEventType(t) {
		return validation.NewError("validation_event_type", "must be a known event type")
	}
	return nil
}
