// Package domain defines the core business entities for trackbot.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Update: An inbound event from the chat transport
//   - Command: A normalized, typed user command
//   - State: A user's conversation state (tagged variant)
//   - Intent: A side effect requested by the state machine engine
//   - IssueDraft: The accumulated new-issue wizard result
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
