// Package codec provides the two correlation token codecs.
//
// A correlation token binds an inline button's parameters to an opaque
// string the transport round-trips verbatim. Both codecs honor the same
// contract (driven.TokenCodec) and the 64-byte transport ceiling:
//
//   - CompactCodec serializes the payload straight into the token.
//     Stateless, restart-safe, decodes any number of times.
//   - HandleCodec keeps payloads in a bounded in-process cache and puts
//     a random handle on the wire. Each handle decodes at most once and
//     dies with the process or under cache pressure.
//
// A deployment picks one via codec.strategy in the configuration.
package codec
