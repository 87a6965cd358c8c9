package tracking

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const accountLength = 9

// LabelParty is a name and free-text address as printed on the label.
type LabelParty struct {
	Name    string
	Address string
}

// LabelInput carries everything the label needs that the code itself does not.
type LabelInput struct {
	Code         Code
	ShipDate     time.Time
	OriginRegion string
	AccountID    string
	Weight       float64
	Origin       kernel.LatLng
	Destination  kernel.LatLng
	Sender       LabelParty
	Recipient    LabelParty
	// BaseURL is the public application URL the tracking link is built on.
	BaseURL string
}

// Label is the data record a renderer turns into a shipping label image.
type Label struct {
	ServiceClassCode     string
	ServiceMode          string
	ServiceDescription   string
	ShipDate             string
	OriginRegion         string
	Account              string
	Weight               string
	Zone                 int
	InternalRoutingCode  string
	RoutingCode          string
	StyleRoute           string
	PackageNumber        string
	ShipmentReference    string
	Sender               LabelParty
	Recipient            LabelParty
	TrackingNumber       string
	DashedTrackingNumber string
	TrackingLink         string
}

// NewLabel builds a label with the default crypto/rand generator.
func NewLabel(in LabelInput) (Label, error) {
	return defaultGenerator.NewLabel(in)
}

// NewLabel assembles the label record. Names are upper-cased, the account is
// the first nine characters of the account ID, the weight keeps one decimal
// and the routing code is derived from the recipient address.
func (g *Generator) NewLabel(in LabelInput) (Label, error) {
	if err := errors.Join(in.Code.Validate(), in.Origin.Validate(), in.Destination.Validate()); err != nil {
		return Label{}, err
	}
	link, err := TrackingLink(in.BaseURL, in.Code)
	if err != nil {
		return Label{}, err
	}

	internal, err := g.InternalRoutingCode()
	if err != nil {
		return Label{}, err
	}
	pkg, err := g.PackageNumber()
	if err != nil {
		return Label{}, err
	}
	ref, err := g.ShipmentReference()
	if err != nil {
		return Label{}, err
	}

	service := in.Code.Service()
	routing := RoutingHash(in.Recipient.Address)
	upper := cases.Upper(language.Und)

	return Label{
		ServiceClassCode:    service.Code(),
		ServiceMode:         service.Mode(),
		ServiceDescription:  service.Description(),
		ShipDate:            in.ShipDate.Format(time.DateOnly),
		OriginRegion:        in.OriginRegion,
		Account:             account(in.AccountID),
		Weight:              fmt.Sprintf("%.1f", in.Weight),
		Zone:                Zone(in.Origin, in.Destination),
		InternalRoutingCode: internal,
		RoutingCode:         routing,
		StyleRoute:          routing[:1],
		PackageNumber:       pkg,
		ShipmentReference:   ref,
		Sender: LabelParty{
			Name:    upper.String(in.Sender.Name),
			Address: in.Sender.Address,
		},
		Recipient: LabelParty{
			Name:    upper.String(in.Recipient.Name),
			Address: in.Recipient.Address,
		},
		TrackingNumber:       in.Code.Formatted(),
		DashedTrackingNumber: in.Code.Dashed(),
		TrackingLink:         link,
	}, nil
}

// TrackingLink returns "<base>/track/<digits>".
func TrackingLink(baseURL string, code Code) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", errs.NewValueIsInvalidErrorWithCause("base url", fmt.Errorf("%q is not an absolute URL", baseURL))
	}
	return base.JoinPath("track", code.String()).String(), nil
}

func account(id string) string {
	id = strings.ToUpper(id)
	if len(id) > accountLength {
		return id[:accountLength]
	}
	return id
}
