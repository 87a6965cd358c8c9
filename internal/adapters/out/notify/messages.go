package notify

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	keyRecipientSubject = "recipient.subject"
	keyRecipientGreet   = "recipient.greeting"
	keyRecipientNews    = "recipient.news"
	keySenderSubject    = "sender.subject"
	keySenderGreet      = "sender.greeting"
	keySenderNews       = "sender.news"
	keyTrackingNumber   = "tracking.number"
	keyEstimated        = "estimated.delivery"
	keyMethod           = "delivery.method"
	keyDescription      = "description"
	keyDeliveryAddress  = "delivery.address"
	keySenderAddress    = "sender.address"
	keyTrackLink        = "track.link"
	keyDriver           = "driver.attempt"

	keyStandard = "service.standard"
	keyExpress  = "service.express"
	keySameDay  = "service.sameday"
	keyBox      = "kind.box"
	keyEnvelope = "kind.envelope"
	keyPackage  = "kind.package"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		keyRecipientSubject: "Your package is on its way",
		keyRecipientGreet:   "Hi %s,",
		keyRecipientNews:    "Great news! A package from %s is heading your way.",
		keySenderSubject:    "Shipment %s registered",
		keySenderGreet:      "Hi %s,",
		keySenderNews:       "Your package for %s has been registered and will be picked up soon.",
		keyTrackingNumber:   "Tracking number: %s",
		keyEstimated:        "Estimated delivery date: %s",
		keyMethod:           "Delivery method: %s",
		keyDescription:      "Description: %s",
		keyDeliveryAddress:  "Delivery address: %s",
		keySenderAddress:    "Sender address: %s",
		keyTrackLink:        "Track the package: %s",
		keyDriver:           "Our driver will attempt delivery during business hours. No signature required.",
		keyStandard:         "Standard",
		keyExpress:          "Express",
		keySameDay:          "Same day",
		keyBox:              "Box",
		keyEnvelope:         "Envelope",
		keyPackage:          "Package",
	},
	language.French: {
		keyRecipientSubject: "Votre colis est en route",
		keyRecipientGreet:   "Bonjour %s,",
		keyRecipientNews:    "Bonne nouvelle ! Un colis de %s est en route vers vous.",
		keySenderSubject:    "Envoi %s enregistré",
		keySenderGreet:      "Bonjour %s,",
		keySenderNews:       "Votre colis pour %s a été enregistré et sera bientôt pris en charge.",
		keyTrackingNumber:   "Numéro de suivi : %s",
		keyEstimated:        "Date de livraison estimée : %s",
		keyMethod:           "Mode de livraison : %s",
		keyDescription:      "Description : %s",
		keyDeliveryAddress:  "Adresse de livraison : %s",
		keySenderAddress:    "Adresse de l'expéditeur : %s",
		keyTrackLink:        "Suivre le colis : %s",
		keyDriver:           "Notre livreur tentera la livraison pendant les heures ouvrables. Aucune signature requise.",
		keyStandard:         "Standard",
		keyExpress:          "Express",
		keySameDay:          "Le jour même",
		keyBox:              "Boîte",
		keyEnvelope:         "Enveloppe",
		keyPackage:          "Colis",
	},
	language.Spanish: {
		keyRecipientSubject: "Su paquete está en camino",
		keyRecipientGreet:   "Hola %s,",
		keyRecipientNews:    "¡Buenas noticias! Un paquete de %s va en camino hacia usted.",
		keySenderSubject:    "Envío %s registrado",
		keySenderGreet:      "Hola %s,",
		keySenderNews:       "Su paquete para %s ha sido registrado y será recogido pronto.",
		keyTrackingNumber:   "Número de seguimiento: %s",
		keyEstimated:        "Fecha estimada de entrega: %s",
		keyMethod:           "Método de entrega: %s",
		keyDescription:      "Descripción: %s",
		keyDeliveryAddress:  "Dirección de entrega: %s",
		keySenderAddress:    "Dirección del remitente: %s",
		keyTrackLink:        "Rastrear el paquete: %s",
		keyDriver:           "Nuestro repartidor intentará la entrega en horario laboral. No se requiere firma.",
		keyStandard:         "Estándar",
		keyExpress:          "Exprés",
		keySameDay:          "Mismo día",
		keyBox:              "Caja",
		keyEnvelope:         "Sobre",
		keyPackage:          "Paquete",
	},
}

var months = map[language.Tag][12]string{
	language.English: {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	language.French: {"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	language.Spanish: {"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
}

func newCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("register %s message %q: %w", tag, key, err)
			}
		}
	}
	return b, nil
}

// tagFor maps a stored language code to a catalog tag, falling back to English.
func tagFor(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	base, _ := tag.Base()
	for supported := range translations {
		if sb, _ := supported.Base(); sb == base {
			return supported
		}
	}
	return language.English
}

func newPrinter(cat catalog.Catalog, tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// formatDate renders a long date ("March 4, 2025", "4 mars 2025", "4 de marzo de 2025").
func formatDate(t time.Time, tag language.Tag) string {
	names, ok := months[tag]
	if !ok {
		names = months[language.English]
	}
	month := names[t.Month()-1]
	switch tag {
	case language.French:
		return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
	case language.Spanish:
		return fmt.Sprintf("%d de %s de %d", t.Day(), month, t.Year())
	default:
		return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
	}
}

// flatten joins multi-line addresses into one line.
func flatten(address string) string {
	lines := strings.FieldsFunc(address, func(r rune) bool { return r == '\n' || r == '\r' })
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, ", ")
}
