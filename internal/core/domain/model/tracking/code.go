package tracking

import (
	"errors"
	"fmt"
	"strings"

	"shipping/internal/pkg/guard"
)

var (
	ErrInvalidLength        = errors.New("tracking code has the wrong length for its service")
	ErrInvalidLeadingDigit  = errors.New("tracking code has the wrong leading digit for its service")
	ErrChecksumMismatch     = errors.New("tracking code check digit does not match")
	ErrCodeIsNotConstructed = errors.New("Code must be created via NewCode, Parse or Generate")
)

// Code is a validated tracking code bound to its service class.
type Code struct {
	digits  string
	service ServiceClass
	guard   guard.ConstructorGuard
}

// NewCode validates a bare digit string against the service table.
func NewCode(digits string, service ServiceClass) (Code, error) {
	if err := Validate(digits, service); err != nil {
		return Code{}, err
	}
	return Code{digits: digits, service: service, guard: guard.NewConstructorGuard()}, nil
}

// Validate checks the service, the length, the leading digit and the check digit.
func Validate(digits string, service ServiceClass) error {
	spec, err := service.spec()
	if err != nil {
		return err
	}
	if len(digits) != spec.digits {
		return fmt.Errorf("%w: %s codes have %d digits, got %d", ErrInvalidLength, service, spec.digits, len(digits))
	}
	if digits[0] != spec.leading {
		return fmt.Errorf("%w: %s codes start with %c, got %c", ErrInvalidLeadingDigit, service, spec.leading, digits[0])
	}

	payload, last := digits[:len(digits)-1], digits[len(digits)-1]
	check, err := Checksum(payload)
	if err != nil {
		return err
	}
	if last < '0' || last > '9' {
		return fmt.Errorf("%w: %q at position %d", ErrInvalidDigits, last, len(digits)-1)
	}
	if int(last-'0') != check {
		return fmt.Errorf("%w: expected %d, got %c", ErrChecksumMismatch, check, last)
	}
	return nil
}

func (c Code) Validate() error {
	return c.guard.Validate(ErrCodeIsNotConstructed)
}

// String returns the bare digits, the form used as the shipment primary key.
func (c Code) String() string {
	return c.digits
}

func (c Code) Service() ServiceClass {
	return c.service
}

func (c Code) IsEqual(other Code) bool {
	return c.digits == other.digits && c.service == other.service
}

// Formatted returns the space-grouped display form, e.g. "3123 4567 8901".
func (c Code) Formatted() string {
	s, _ := Format(c.digits, c.service)
	return s
}

// Dashed returns the product-prefixed form used in emails, e.g. "FDX-3123-4567-8901".
func (c Code) Dashed() string {
	groups, _ := split(c.digits, c.service)
	return ProductPrefix + "-" + strings.Join(groups, "-")
}
