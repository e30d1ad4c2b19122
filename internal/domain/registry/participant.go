package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Field-shape rules used by the entry form. The persistence side only
// enforces id/locality presence; everything here belongs to the
// presentation boundary.

const (
	MaxIDLength     = 15
	PhoneLength     = 10
	EventDateLayout = "02/01/2006"
)

var (
	ErrIDRequired       = errors.New("la identificación es obligatoria")
	ErrLocalityRequired = errors.New("debe seleccionar una ciudad")
)

// ValidateID accepts only digit strings up to MaxIDLength characters.
func ValidateID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrIDRequired
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("la identificación no puede exceder %d caracteres", MaxIDLength)
	}
	if !isDigits(id) {
		return errors.New("la identificación solo admite dígitos")
	}
	return nil
}

// ValidatePhone accepts only a PhoneLength-digit string.
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	if !isDigits(phone) {
		return errors.New("el celular solo admite dígitos")
	}
	if len(phone) != PhoneLength {
		return fmt.Errorf("el celular debe tener %d dígitos", PhoneLength)
	}
	return nil
}

// ValidateName accepts letters (including accents and ñ) and spaces.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			continue
		}
		return errors.New("el nombre solo admite letras y espacios")
	}
	return nil
}

// ValidateEventDate parses a dd/mm/yyyy date and rejects dates before today.
// now is injected so the rule stays testable.
func ValidateEventDate(value string, now time.Time) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	parsed, err := time.Parse(EventDateLayout, value)
	if err != nil {
		return errors.New("ingrese una fecha válida en formato dd/mm/aaaa")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.Before(today) {
		return errors.New("la fecha no puede ser en el pasado")
	}
	return nil
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
