// Package services contains application services for the PetGuard client:
// the local keystore and session login, client-side encryption of
// confidential fields, capability-gated decryption through the KMS, and the
// record operations the CLI exposes.
package services
