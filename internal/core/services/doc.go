// Package services implements the core application logic for trackbot.
//
// The dispatch pipeline is: the transport poller hands an inbound Update
// to the Dispatcher, the Normalizer turns it into a typed Command (using
// the token codec for callback data), the Engine computes the pure
// (State, Command) -> (State, []Intent) transition, the Executor performs
// the intents against the tracker and the messenger, and the session
// store records the next state only when execution succeeded.
//
// Services depend only on domain types and driven port interfaces; all
// I/O lives behind adapters.
package services
