package kms

import "github.com/dmitrijs2005/petguard/internal/authz"

// HandleContractPair names one ciphertext and the entity it is bound to.
type HandleContractPair struct {
	Handle          string `json:"handle"`
	ContractAddress string `json:"contractAddress"`
}

// UserDecryptRequest is the body of POST /v1/user-decrypt: the signed
// authorization token plus the handles to re-encrypt.
type UserDecryptRequest struct {
	authz.Wire
	HandleContractPairs []HandleContractPair `json:"handleContractPairs"`
}

// SealedResult carries one value sealed to the token's ephemeral key.
type SealedResult struct {
	Handle  string `json:"handle"`
	Payload string `json:"payload"`
}

type UserDecryptResponse struct {
	Results []SealedResult `json:"results"`
}

// KeysResponse is served by GET /v1/keys. PublicKey is empty on mock
// networks.
type KeysResponse struct {
	ChainID   uint64 `json:"chainId"`
	Network   string `json:"network"`
	Mock      bool   `json:"mock"`
	PublicKey string `json:"publicKey"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
