// Package services provides domain services that combine the route, tracking and
// shipment models into the operations no single aggregate owns.
//
// The package includes:
//   - ShipmentAssembler: mints a tracking code, initializes the route and builds a Shipment
//   - LabelComposer: derives the shipping label record of a stored Shipment
//
// Both are pure apart from the randomness of code and label identifiers.
package services
