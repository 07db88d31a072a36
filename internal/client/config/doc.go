// Package config loads runtime configuration for the PetGuard CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. PETGUARD_* environment variables, after the optional -env dotenv file.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string    ledger gRPC address (host:port)
//	-m string    KMS base URL
//	-k string    keystore file
//	-i int       online check interval, seconds
//	-w duration  timeout of one decryption request, retries included
//	-r uint      retry attempts on transient decryption failures
//	-d uint      validity of decryption authorizations, days
package config
