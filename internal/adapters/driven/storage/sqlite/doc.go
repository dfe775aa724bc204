// Package sqlite provides a durable SQLite-backed session store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. Conversation
// states are persisted under the key "state:{userId}" as the tagged JSON
// produced by domain.MarshalState, and round-trip byte for byte.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
