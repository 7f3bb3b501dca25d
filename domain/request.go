package domain

import (
	"batepapo/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RegisterRequest is the payload of a registration attempt.
type RegisterRequest struct {
	Name string `json:"name" validate:"required"`
}

// SendMessageRequest is the payload of a send or edit. Type is restricted to
// the participant-issued kinds: status notices are only built internally.
type SendMessageRequest struct {
	To   string `json:"to" validate:"required"`
	Text string `json:"text" validate:"required"`
	Type string `json:"type" validate:"required,oneof=message private_message"`
}

// ValidateRegister rejects empty or missing names.
func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return errors.ErrInvalidName
	}
	return nil
}

// ValidateSend rejects empty recipient/body and unknown message types.
func ValidateSend(req SendMessageRequest) error {
	if err := validate.Struct(req); err != nil {
		return errors.ErrInvalidMessage
	}
	return nil
}
