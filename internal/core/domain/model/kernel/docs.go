// Package kernel provides core domain primitives shared by every checkout aggregate.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Session: The externally supplied caller identity (user or anonymous session) and role
//   - Money helpers: rounding and validation of decimal currency amounts
//   - DomainEvent: The contract for events recorded by aggregates and published after commit
//   - Clock: An injectable time source
//
// These primitives are immutable and safe for concurrent use.
package kernel
