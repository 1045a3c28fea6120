// Package ports defines the interfaces (ports) that connect the ingestion
// pipeline to its external collaborators.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// pipeline needs from external systems without specifying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [ByteSource]: Blocking byte stream from the probe (device, pipe, file)
//   - [DurableSink]: Append-only log receiving every reading
//   - [Surface]: Presentation surface receiving readings asynchronously
//   - [ThresholdSource]: Current alert threshold, possibly hot-reloaded
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// implementations (device node, CSV file, terminal UI, console).
package ports
