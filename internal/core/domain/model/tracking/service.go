package tracking

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedService is returned for any service class outside the service table.
var ErrUnsupportedService = errors.New("unsupported service class")

// ServiceClass is the delivery tier a tracking code is minted for.
type ServiceClass string

const (
	Standard ServiceClass = "standard"
	Express  ServiceClass = "express"
	SameDay  ServiceClass = "same-day"
)

type serviceSpec struct {
	digits      int
	leading     byte
	grouping    []int
	code        string
	mode        string
	description string
}

// serviceTable is the single source of truth for code shape and label wording.
// It returns a fresh map so callers can never alter it.
func serviceTable() map[ServiceClass]serviceSpec {
	return map[ServiceClass]serviceSpec{
		Standard: {digits: 15, leading: '6', grouping: []int{4, 4, 4, 3}, code: "S", mode: "Standard", description: "Standard Ground"},
		Express:  {digits: 12, leading: '3', grouping: []int{4, 4, 4}, code: "E", mode: "Express", description: "Overnight Express"},
		SameDay:  {digits: 12, leading: '7', grouping: []int{4, 4, 4}, code: "D", mode: "Same Day", description: "Same-Day Delivery"},
	}
}

// ServiceClasses lists the supported classes in a stable order.
func ServiceClasses() []ServiceClass {
	return []ServiceClass{Standard, Express, SameDay}
}

// ParseServiceClass accepts the wire names "standard", "express" and "same-day".
func ParseServiceClass(s string) (ServiceClass, error) {
	sc := ServiceClass(strings.ToLower(strings.TrimSpace(s)))
	if err := sc.Validate(); err != nil {
		return "", err
	}
	return sc, nil
}

// ServiceClassOf infers the service class from a bare digit string by its
// leading digit and length. Leading digits are unique across the table.
func ServiceClassOf(digits string) (ServiceClass, error) {
	if digits == "" {
		return "", fmt.Errorf("%w: empty code", ErrUnsupportedService)
	}
	for sc, spec := range serviceTable() {
		if digits[0] == spec.leading && len(digits) == spec.digits {
			return sc, nil
		}
	}
	return "", fmt.Errorf("%w: no service issues %d-digit codes starting with %q",
		ErrUnsupportedService, len(digits), digits[0])
}

func (s ServiceClass) spec() (serviceSpec, error) {
	spec, ok := serviceTable()[s]
	if !ok {
		return serviceSpec{}, fmt.Errorf("%w: %q", ErrUnsupportedService, string(s))
	}
	return spec, nil
}

func (s ServiceClass) Validate() error {
	_, err := s.spec()
	return err
}

func (s ServiceClass) String() string {
	return string(s)
}

// Digits is the total code length including the check digit.
func (s ServiceClass) Digits() int {
	spec, _ := s.spec()
	return spec.digits
}

// LeadingDigit is the fixed first digit of every code of this class.
func (s ServiceClass) LeadingDigit() byte {
	spec, _ := s.spec()
	return spec.leading
}

// Grouping returns the display group sizes, e.g. [4 4 4 3].
func (s ServiceClass) Grouping() []int {
	spec, _ := s.spec()
	return append([]int(nil), spec.grouping...)
}

// Code is the one-letter class code printed in the label corner.
func (s ServiceClass) Code() string {
	spec, _ := s.spec()
	return spec.code
}

// Mode is the short postage mode printed on labels.
func (s ServiceClass) Mode() string {
	spec, _ := s.spec()
	return spec.mode
}

// Description is the service banner printed on labels.
func (s ServiceClass) Description() string {
	spec, _ := s.spec()
	return spec.description
}
