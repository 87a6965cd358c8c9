// Package kernel provides the shared value objects of the shipping domain.
//
// The package includes:
//   - UUID: the opaque identifier of the authenticated shipment owner
//   - LatLng: a validated WGS 84 coordinate with great-circle distance
//
// Values are immutable and created through constructors; zero values fail Validate.
package kernel
