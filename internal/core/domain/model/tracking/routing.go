package tracking

import (
	"fmt"
	"unicode/utf16"
)

// RoutingHash derives a stable cosmetic sort code such as "R042" or "C913" from
// an address. It hashes UTF-16 code units with h = h*31 + c wrapped to int32;
// an even hash gives prefix R (rural), an odd one C (city).
func RoutingHash(text string) string {
	var h int32
	for _, unit := range utf16.Encode([]rune(text)) {
		h = h*31 + int32(unit)
	}

	prefix := "C"
	if h&1 == 0 {
		prefix = "R"
	}

	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return fmt.Sprintf("%s%03d", prefix, abs%999+1)
}

var hubCodes = [...]string{"CLT", "ATL", "DFW", "LAX", "ORD", "JFK"}

const (
	hubBuildings = 5
	hubBelts     = 10
)

// InternalRoutingCode picks a random hub, building and belt, e.g. "ATL-HB3-BELT7".
func (g *Generator) InternalRoutingCode() (string, error) {
	hub, err := g.intn(len(hubCodes))
	if err != nil {
		return "", err
	}
	building, err := g.intn(hubBuildings)
	if err != nil {
		return "", err
	}
	belt, err := g.intn(hubBelts)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-HB%d-BELT%d", hubCodes[hub], building+1, belt+1), nil
}

// ShipmentReference returns "S-" followed by seven digits, the first non-zero.
func (g *Generator) ShipmentReference() (string, error) {
	n, err := g.intn(9_000_000)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("S-%d", 1_000_000+n), nil
}

// PackageNumber returns "0001" through "0009".
func (g *Generator) PackageNumber() (string, error) {
	n, err := g.intn(9)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("000%d", n+1), nil
}
