// Package relay provides the HTTP client the chat client uses to reach the
// relay, and the in-memory relay server itself.
//
// The relay is a store-and-forward service for published public keys and
// signed, encrypted envelopes. It never sees plaintext, session keys or
// private exponents, and it is not trusted: every key exchange and message
// is verified by the receiver against keys it already holds.
//
// HTTP API
//
//	POST /register                  publish PublicKeys for a username
//	GET  /keys/{user}               fetch a user's PublicKeys
//	POST /msg/{user}                queue an Envelope; responds {"id": ...}
//	GET  /msg/{user}?limit=N        list up to N queued Envelopes
//	POST /msg/{user}/ack {"count"}  drop the first N queued Envelopes
//	GET  /metrics                   Prometheus metrics
//
// All requests are JSON over HTTP and the client accepts a context for
// cancellation and deadlines. Non-2xx statuses are returned as errors with
// the method, path and status text.
package relay
