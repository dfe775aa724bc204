// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SessionStore: Per-user conversation state persistence
//   - TokenCodec: Correlation token encode/decode
//   - CredentialStore: Per-user tracker access tokens with TTL
//   - Tracker: Issue tracker REST operations
//   - Messenger: Chat transport send/edit
//   - Renderer: Presentation text rendering
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
