// Package shipment holds the Shipment aggregate root and the value objects
// describing who sends what to whom: contacts, the parcel, the pickup slot and
// the display language.
//
// A Shipment is identified by its tracking code, owns exactly one route and is
// owned by one user. Only the route pointer and the descriptive details can
// change after creation; the code, and therefore the service class, cannot.
package shipment
