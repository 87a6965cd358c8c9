package tracking

import (
	"errors"
	"fmt"
)

// ErrInvalidDigits is returned when a payload or code contains anything but ASCII digits.
var ErrInvalidDigits = errors.New("tracking code must contain digits only")

// checksumWeights are applied cyclically starting from the rightmost payload digit.
var checksumWeights = [3]int{3, 1, 7}

// Checksum computes the mod-11 check digit of payload.
//
// Walking the payload from the last digit to the first, digits are multiplied by
// 3, 1, 7, 3, 1, 7, ... and summed. The check digit is (11 - sum mod 11) mod 11,
// with 10 folded to 0.
func Checksum(payload string) (int, error) {
	if payload == "" {
		return 0, fmt.Errorf("%w: empty payload", ErrInvalidDigits)
	}

	sum := 0
	w := 0
	for i := len(payload) - 1; i >= 0; i-- {
		c := payload[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q at position %d", ErrInvalidDigits, c, i)
		}
		sum += int(c-'0') * checksumWeights[w]
		w = (w + 1) % len(checksumWeights)
	}

	check := (11 - sum%11) % 11
	if check == 10 {
		check = 0
	}
	return check, nil
}
