// Package services holds domain logic that does not belong to a single aggregate.
//
// The package includes:
//   - DriverResolver: turns a caller-supplied identifier (driver id or linked user id)
//     into one Driver
//   - StatusVocabulary: the fixed table translating client status tokens into the
//     internal stage sets used by the available-orders feed
package services
