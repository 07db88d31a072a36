// Package cli provides the interactive PetGuard command-line client.
//
// It wires configuration, the local keystore, the ledger and KMS clients and
// an interactive REPL. Typical flow: unlock the keystore, log in to the
// ledger, start a background connectivity watcher, and execute commands.
//
// Key features:
//   - init / login / address (principal key management and session)
//   - create records with an optional confidential value
//   - get / list / total
//   - decrypt a confidential value through the KMS
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
