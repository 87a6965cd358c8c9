package shipment

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

const (
	minNameLength    = 3
	minPhoneLength   = 10
	maxPhoneLength   = 15
	minAddressLength = 3
	maxAddressLength = 1000
)

var ErrContactIsNotConstructed = errors.New("Contact must be created via NewContact")

// Contact is the sender or the recipient of a shipment. The address is free
// text as typed by the user and may span several lines.
type Contact struct {
	name    string
	email   string
	phone   string
	address string
	guard   guard.ConstructorGuard
}

// NewContact trims every field and checks the lengths and the email syntax.
func NewContact(name, email, phone, address string) (Contact, error) {
	c := Contact{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		c.setName(name),
		c.setEmail(email),
		c.setPhone(phone),
		c.setAddress(address),
	); err != nil {
		return Contact{}, err
	}
	return c, nil
}

func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

func (c Contact) Name() string    { return c.name }
func (c Contact) Email() string   { return c.email }
func (c Contact) Phone() string   { return c.phone }
func (c Contact) Address() string { return c.address }

// FirstName is used to greet the contact in notifications.
func (c Contact) FirstName() string {
	first, _, _ := strings.Cut(c.name, " ")
	return first
}

func (c Contact) IsEqual(other Contact) bool {
	return c.name == other.name && c.email == other.email &&
		c.phone == other.phone && c.address == other.address
}

func (c *Contact) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n < minNameLength {
		return errs.NewValueIsInvalidErrorWithCause("name",
			fmt.Errorf("must be at least %d characters, got %d", minNameLength, n))
	}
	c.name = name
	return nil
}

func (c *Contact) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	if parsed.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", errors.New("display names are not allowed"))
	}
	c.email = email
	return nil
}

func (c *Contact) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	if n := utf8.RuneCountInString(phone); n < minPhoneLength || n > maxPhoneLength {
		return errs.NewValueIsOutOfRangeError("phone length", n, minPhoneLength, maxPhoneLength)
	}
	c.phone = phone
	return nil
}

func (c *Contact) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if n := utf8.RuneCountInString(address); n < minAddressLength || n > maxAddressLength {
		return errs.NewValueIsOutOfRangeError("address length", n, minAddressLength, maxAddressLength)
	}
	c.address = address
	return nil
}
