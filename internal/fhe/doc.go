// Package fhe is the encrypted-input boundary of the ledger: the 32-byte
// ciphertext handle, the proof blob that travels with it, and the schemes
// that produce, verify and (KMS side) open them.
//
// Two schemes exist. The mock scheme backs the local development network
// and is deterministic given its randomness source. The ECIES scheme
// encrypts to the decryption authority's edwards25519 key and proves
// knowledge of the encryption randomness with a Schnorr proof whose
// challenge covers the (chain, entity, submitter) binding.
package fhe
