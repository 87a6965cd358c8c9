package route

import (
	"errors"
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"
)

// FlagWidth is the flag image width used on tracking pages.
const FlagWidth = 40

// Address is a reverse-geocoded postal address. Geocoding happens upstream;
// the route only requires the country and the ISO region code to be resolved.
type Address struct {
	Country     string
	CountryCode string
	// ISORegion is the most specific ISO 3166-2 subdivision code available.
	ISORegion string
	City      string
	Town      string
	Village   string
	Hamlet    string
	Suburb    string
	County    string
	State     string
	Postcode  string
}

// PickISORegion returns the first non-empty code, so callers pass levels from
// the most specific (lvl6) to the least specific (lvl3).
func PickISORegion(levels ...string) string {
	for _, level := range levels {
		if level = strings.TrimSpace(level); level != "" {
			return level
		}
	}
	return ""
}

func (a Address) Validate() error {
	var err error
	if strings.TrimSpace(a.Country) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("country"))
	}
	if code := strings.TrimSpace(a.CountryCode); code == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("country code"))
	} else if len(code) != 2 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"country code", fmt.Errorf("%q is not an ISO 3166-1 alpha-2 code", code)))
	}
	if strings.TrimSpace(a.ISORegion) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("iso region"))
	}
	return err
}

// Settlement is the most specific populated place name, without falling back to the state.
func (a Address) Settlement() string {
	return firstNonEmpty(a.City, a.Town, a.Village, a.Hamlet, a.Suburb)
}

// Locality is the settlement name, or the state when the stop is outside any settlement.
func (a Address) Locality() string {
	return firstNonEmpty(a.Settlement(), a.State)
}

// CityCountry renders "Locality, Country", used on dashboards and labels.
func (a Address) CityCountry() string {
	return joinNonEmpty(a.Locality(), a.Country)
}

// CityStateCountry renders "Settlement, State, Country", used on the tracking page.
func (a Address) CityStateCountry() string {
	return joinNonEmpty(a.Settlement(), a.State, a.Country)
}

// FlagURL returns the flagcdn.com image of the address country at the given width.
func (a Address) FlagURL(width int) string {
	return fmt.Sprintf("https://flagcdn.com/w%d/%s.png", width, strings.ToLower(a.CountryCode))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
