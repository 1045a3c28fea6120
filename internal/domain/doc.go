// Package domain contains the core domain entities and value objects for probemon.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (serial devices, files, logging,
// terminals) and contains only pure business logic.
//
// # Entities
//
//   - [Reading]: A single timestamped temperature sample parsed from the probe stream
//
// # Errors
//
// Sentinel errors ([ErrParse], [ErrDurableWrite], [ErrByteSource], ...) classify
// failures so callers can use errors.Is. The typed errors [ParseError],
// [WriteError] and [SourceError] carry the detail and unwrap to their cause.
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
