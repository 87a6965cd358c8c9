// Package notify renders shipment notices into localized messages and hands
// them to a Transport.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/core/ports"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var ErrTransportIsRequired = errors.New("notification transport is required")

var _ ports.Notifier = (*Notifier)(nil)

// Notifier tells both parties of a new shipment about it.
type Notifier struct {
	transport Transport
	catalog   catalog.Catalog
	logger    *slog.Logger
}

func NewNotifier(transport Transport, logger *slog.Logger) (*Notifier, error) {
	if transport == nil {
		return nil, ErrTransportIsRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	cat, err := newCatalog()
	if err != nil {
		return nil, err
	}
	return &Notifier{
		transport: transport,
		catalog:   cat,
		logger:    logger.With("component", "notify"),
	}, nil
}

// NotifyShipmentCreated sends the recipient and sender messages concurrently.
// The first delivery failure cancels the other and is returned.
func (n *Notifier) NotifyShipmentCreated(ctx context.Context, notice ports.ShipmentNotice) error {
	messages := n.Render(notice)

	g, gctx := errgroup.WithContext(ctx)
	for _, msg := range messages {
		g.Go(func() error {
			if err := n.transport.Send(gctx, msg); err != nil {
				return fmt.Errorf("send to %s: %w", msg.To, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		n.logger.ErrorContext(ctx, "shipment notification failed",
			"tracking_number", notice.Label.TrackingNumber,
			"error", err,
		)
		return err
	}

	n.logger.InfoContext(ctx, "shipment notification delivered",
		"tracking_number", notice.Label.TrackingNumber,
		"messages", len(messages),
	)
	return nil
}

// Render builds the recipient message followed by the sender message.
// A party without an email address is skipped.
func (n *Notifier) Render(notice ports.ShipmentNotice) []Message {
	tag := tagFor(notice.Language)
	p := newPrinter(n.catalog, tag)

	details := []string{
		p.Sprintf(keyTrackingNumber, notice.Label.DashedTrackingNumber),
		p.Sprintf(keyEstimated, formatDate(notice.PickupDate, tag)),
		p.Sprintf(keyMethod, serviceName(p, notice.Service)),
		p.Sprintf(keyDescription, kindName(p, notice.ParcelKind)),
	}

	var messages []Message
	if notice.Recipient.Email != "" {
		lines := []string{
			p.Sprintf(keyRecipientGreet, firstName(notice.Recipient)),
			"",
			p.Sprintf(keyRecipientNews, notice.Sender.Name),
			"",
		}
		lines = append(lines, details...)
		lines = append(lines,
			p.Sprintf(keyDeliveryAddress, flatten(notice.Recipient.Address)),
			p.Sprintf(keySenderAddress, flatten(notice.Sender.Address)),
			"",
			p.Sprintf(keyTrackLink, notice.Label.TrackingLink),
			"",
			p.Sprintf(keyDriver),
		)
		messages = append(messages, Message{
			To:       notice.Recipient.Email,
			Name:     notice.Recipient.Name,
			Language: tag.String(),
			Subject:  p.Sprintf(keyRecipientSubject),
			Body:     strings.Join(lines, "\n"),
		})
	}

	if notice.Sender.Email != "" {
		lines := []string{
			p.Sprintf(keySenderGreet, firstName(notice.Sender)),
			"",
			p.Sprintf(keySenderNews, notice.Recipient.Name),
			"",
		}
		lines = append(lines, details...)
		lines = append(lines,
			p.Sprintf(keyDeliveryAddress, flatten(notice.Recipient.Address)),
			"",
			p.Sprintf(keyTrackLink, notice.Label.TrackingLink),
		)
		messages = append(messages, Message{
			To:       notice.Sender.Email,
			Name:     notice.Sender.Name,
			Language: tag.String(),
			Subject:  p.Sprintf(keySenderSubject, notice.Label.DashedTrackingNumber),
			Body:     strings.Join(lines, "\n"),
		})
	}
	return messages
}

func firstName(party ports.NoticeParty) string {
	if party.FirstName != "" {
		return party.FirstName
	}
	if fields := strings.Fields(party.Name); len(fields) > 0 {
		return fields[0]
	}
	return party.Name
}

func serviceName(p *message.Printer, service tracking.ServiceClass) string {
	switch service {
	case tracking.Standard:
		return p.Sprintf(keyStandard)
	case tracking.Express:
		return p.Sprintf(keyExpress)
	default:
		return p.Sprintf(keySameDay)
	}
}

func kindName(p *message.Printer, kind string) string {
	switch kind {
	case "box":
		return p.Sprintf(keyBox)
	case "envelope":
		return p.Sprintf(keyEnvelope)
	default:
		return p.Sprintf(keyPackage)
	}
}
