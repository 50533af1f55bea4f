// Package shipping contains the Shipping bounded context.
// This context integrates checkout and fulfillment with the Canada Post
// carrier API: rate quoting for shipments and delivery tracking refresh.
//
// Key concepts:
//   - APISettings: layered carrier credentials (store override, shipping
//     method override, sitewide default)
//   - CarrierGateway: port interface for the Canada Post web API
//   - ShippingRate: a priced service option returned for a shipment
//   - TrackingSummary: the carrier's latest delivery-lifecycle facts
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package shipping
