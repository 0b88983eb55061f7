// Package main runs the in-memory HTTP relay used by hybridchat. It stores
// published public keys and queues signed, encrypted envelopes for
// recipients until they fetch them.
//
// HTTP API
//
//	POST /register
//	    Store a user's public keys (ElGamal y, DSA y, hex).
//
//	GET /keys/{username}
//	    Return the latest published keys for {username}.
//
//	POST /msg/{user}
//	    Enqueue an Envelope destined to {user}. The server assigns the
//	    envelope ID and fills a zero Timestamp with the current Unix time.
//
//	GET /msg/{user}?limit=N
//	    Return up to N queued Envelopes for {user}. If limit is absent or
//	    greater than the queue length, all queued envelopes are returned.
//
//	POST /msg/{user}/ack { "count": N }
//	    Drop the first N queued envelopes for {user}. If N exceeds the queue
//	    length, the queue is cleared.
//
//	GET /metrics
//	    Prometheus metrics.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Responses are JSON. Non-2xx statuses carry a short error message.
//   - Every request is access-logged with zerolog; --log-file adds a
//     rotated JSON log alongside the console.
//   - The default listen address is :8080.
//
// The relay never sees plaintext, session keys or private keys; it only
// stores ciphertext and public keys.
package main
