package authz

import (
	"fmt"

	"github.com/dmitrijs2005/petguard/internal/cryptox"
)

// LoginMessage is the text a principal signs, as a personal message, to
// open a session on the ledger serving chainID.
func LoginMessage(chainID uint64, principal cryptox.Address, nonce string) []byte {
	return fmt.Appendf(nil, "PetGuard ledger login\nchain: %d\naddress: %s\nnonce: %s", chainID, principal.Hex(), nonce)
}

// SignLogin signs LoginMessage with signer.
func SignLogin(signer cryptox.Signer, chainID uint64, nonce string) ([]byte, error) {
	digest := cryptox.PersonalMessageDigest(LoginMessage(chainID, signer.Address(), nonce))
	return signer.SignDigest(digest)
}
