// Package cryptox holds the principal-side cryptography: 20-byte
// addresses, secp256k1 recoverable signatures, typed-data digests for
// decryption authorizations, X25519 sealed boxes for re-encrypted results
// and the password-protected keystore used by the CLI.
package cryptox
