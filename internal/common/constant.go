// Package common contains shared constants, sentinel errors and small helpers
// used across the ledger, KMS and client components.
package common

// AccessTokenHeaderName is the gRPC metadata key carrying the principal's
// access token on outbound ledger requests.
const AccessTokenHeaderName = "access_token"

// ServiceTokenHeaderName is the gRPC metadata key carrying the shared secret
// that authenticates the KMS when it looks up grants on the ledger.
const ServiceTokenHeaderName = "service_token"

// RequestIDHeaderName is propagated by both transports for log correlation.
const RequestIDHeaderName = "x-request-id"

// SecondsPerDay converts authorization token durations, which are expressed
// in whole days, to seconds.
const SecondsPerDay = 24 * 60 * 60
