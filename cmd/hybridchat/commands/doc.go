// Package commands defines the hybridchat CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init           Create or rotate the local ElGamal/DSA identity
//   - fingerprint    Print the identity fingerprint
//   - register       Publish your public keys to a relay
//   - start-session  Send a signed, ElGamal-wrapped AES session key to a peer
//   - send           Encrypt, sign and send a message
//   - recv           Fetch, verify and decrypt queued messages
//   - forget         Drop a peer's cached keys and session key
//   - hash           Print the SHA-256 of a file
//
// # Implementation
//
// The root command loads configuration through viper (flags, HYBRIDCHAT_*
// environment, config.yaml in --home) and builds the dependency graph
// before any subcommand runs.
package commands
