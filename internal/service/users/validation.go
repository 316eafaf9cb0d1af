package users

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
)

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if domain.TooLong(name, domain.MaxNameLength) {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !domain.IsValidEmail(email) {
		return fmt.Errorf("%w: email must contain @", ErrInvalidInput)
	}
	if domain.TooLong(email, domain.MaxEmailLength) {
		return fmt.Errorf("%w: email is too long", ErrInvalidInput)
	}
	return nil
}
