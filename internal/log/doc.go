// Package log wraps zerolog with the console and file writers used by the
// client and relay binaries.
//
// A process-wide logger G is available through Debug, Info, Warn and Error.
// Binaries replace it at start-up with SetGlobalLogger once configuration
// has been read. Library code below the CLI never prints directly; it logs
// through G or through a Logger it was handed.
//
// # Notes
//
// Never log private exponents or session keys. Log fingerprints instead.
package log
