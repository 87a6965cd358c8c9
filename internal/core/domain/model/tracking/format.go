package tracking

import (
	"fmt"
	"strings"
	"unicode"
)

// ProductPrefix is the brand prefix shown before dashed tracking numbers.
const ProductPrefix = "FDX"

// Format splits digits into the display groups of service and joins them with single spaces.
// It returns ErrUnsupportedService for an unknown service and ErrInvalidLength when
// the digit count does not fill the groups. Leading digit and check digit are not
// verified; use Parse for that.
func Format(digits string, service ServiceClass) (string, error) {
	groups, err := split(digits, service)
	if err != nil {
		return "", err
	}
	return strings.Join(groups, " "), nil
}

// Normalize removes whitespace, hyphens and a leading alphabetic product
// prefix, turning "FDX-3123-4567-8901" or "3123 4567 8901" into bare digits.
func Normalize(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, text)
	return strings.TrimLeftFunc(stripped, unicode.IsLetter)
}

// Parse normalizes text and validates it as a code of service.
func Parse(text string, service ServiceClass) (Code, error) {
	return NewCode(Normalize(text), service)
}

// ParseAny normalizes text and infers the service class from the digits.
// It is used by the public tracking lookup, where only the code is known.
func ParseAny(text string) (Code, error) {
	digits := Normalize(text)
	service, err := ServiceClassOf(digits)
	if err != nil {
		return Code{}, err
	}
	return NewCode(digits, service)
}

func split(digits string, service ServiceClass) ([]string, error) {
	spec, err := service.spec()
	if err != nil {
		return nil, err
	}
	if len(digits) != spec.digits {
		return nil, fmt.Errorf("%w: %s codes have %d digits, got %d", ErrInvalidLength, service, spec.digits, len(digits))
	}

	groups := make([]string, 0, len(spec.grouping))
	pos := 0
	for _, size := range spec.grouping {
		groups = append(groups, digits[pos:pos+size])
		pos += size
	}
	return groups, nil
}
