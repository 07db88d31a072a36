// Package client contains the transports the PetGuard CLI talks through.
//
// LedgerClient is the gRPC client of the ledger node. It signs in with a
// challenge signed by the principal key, injects the access token into
// every call and transparently refreshes it once when the ledger reports
// it expired. Status codes are mapped to sentinel errors.
//
// RelayerClient is the HTTP client of the decryption authority. A refusal
// maps to common.ErrDenied and any transport or 5xx failure to
// ErrUnavailable, so callers can retry the latter only.
package client
