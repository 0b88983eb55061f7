// Package app wires application dependencies for the CLI.
//
// It builds the file stores, the relay client and the identity, session and
// message services from Options, exposing them via the Wire struct.
package app
