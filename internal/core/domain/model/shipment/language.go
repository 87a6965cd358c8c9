package shipment

import (
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"

	"golang.org/x/text/language"
)

// Language is the locale notifications and labels are produced in.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
	Spanish Language = "es"
)

// DefaultLanguage is used when a request states no usable preference.
const DefaultLanguage = English

var (
	supportedTags = []language.Tag{language.English, language.French, language.Spanish}
	tagLanguages  = []Language{English, French, Spanish}
	matcher       = language.NewMatcher(supportedTags)
)

// ParseLanguage accepts a BCP 47 tag whose base language is supported,
// so "fr", "fr-CA" and "FR" all map to French.
func ParseLanguage(s string) (Language, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("language", err)
	}
	base, _ := tag.Base()
	l := Language(base.String())
	if err = l.Validate(); err != nil {
		return "", err
	}
	return l, nil
}

// MatchLanguage picks the best supported language for an Accept-Language header.
func MatchLanguage(acceptLanguage string) Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLanguage
	}
	return tagLanguages[index]
}

func (l Language) Validate() error {
	for _, supported := range tagLanguages {
		if l == supported {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("language", fmt.Errorf("%q is not supported", string(l)))
}

func (l Language) String() string {
	return string(l)
}
