package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers unknown users and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for malformed, tampered or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError reports the fields of an input that failed validation.
type ValidationError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// Fields maps each invalid field to a readable message.
func (e *ValidationError) Fields() map[string]string {
	messages := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		messages[fe.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
	}
	return messages
}

var validate = validator.New()

// validateStruct runs the struct tags of v and wraps failures in a ValidationError.
func validateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return &ValidationError{Errors: verrs}
		}
		return fmt.Errorf("failed to validate input: %w", err)
	}
	return nil
}
