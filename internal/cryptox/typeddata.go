package cryptox

import (
	"math/big"
)

const (
	domainTypeString      = "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"
	userDecryptTypeString = "UserDecryptRequestVerification(bytes publicKey,address[] contractAddresses,uint256 startTimestamp,uint256 durationDays)"

	DecryptionDomainName    = "Decryption"
	DecryptionDomainVersion = "1"
)

var (
	domainTypeHash      = Keccak256([]byte(domainTypeString))
	userDecryptTypeHash = Keccak256([]byte(userDecryptTypeString))
)

// Domain separates decryption authorizations per network and verifier.
type Domain struct {
	Name              string
	Version           string
	ChainID           uint64
	VerifyingContract Address
}

// DecryptionDomain returns the domain used for user decryption requests.
func DecryptionDomain(chainID uint64, verifier Address) Domain {
	return Domain{
		Name:              DecryptionDomainName,
		Version:           DecryptionDomainVersion,
		ChainID:           chainID,
		VerifyingContract: verifier,
	}
}

// Separator is hashStruct(EIP712Domain).
func (d Domain) Separator() [32]byte {
	name := Keccak256([]byte(d.Name))
	version := Keccak256([]byte(d.Version))
	chainID := uint256(new(big.Int).SetUint64(d.ChainID))
	contract := padAddress(d.VerifyingContract)
	return Keccak256(domainTypeHash[:], name[:], version[:], chainID[:], contract[:])
}

// UserDecryptRequest is the structured message a principal signs to
// authorize re-encryption of its values to PublicKey.
type UserDecryptRequest struct {
	PublicKey         []byte
	ContractAddresses []Address
	StartTimestamp    int64
	DurationDays      uint64
}

func (r UserDecryptRequest) structHash() [32]byte {
	pk := Keccak256(r.PublicKey)

	encoded := make([]byte, 0, 32*len(r.ContractAddresses))
	for _, a := range r.ContractAddresses {
		p := padAddress(a)
		encoded = append(encoded, p[:]...)
	}
	addrs := Keccak256(encoded)

	start := uint256(big.NewInt(r.StartTimestamp))
	days := uint256(new(big.Int).SetUint64(r.DurationDays))

	return Keccak256(userDecryptTypeHash[:], pk[:], addrs[:], start[:], days[:])
}

// TypedDataDigest is keccak256(0x19 0x01 || domainSeparator || hashStruct(r)).
func TypedDataDigest(d Domain, r UserDecryptRequest) [32]byte {
	sep := d.Separator()
	msg := r.structHash()
	return Keccak256([]byte{0x19, 0x01}, sep[:], msg[:])
}

func padAddress(a Address) [32]byte {
	var out [32]byte
	copy(out[12:], a[:])
	return out
}

// uint256 left-pads a non-negative integer to 32 bytes. Negative values
// are encoded as zero; start timestamps before the epoch are meaningless.
func uint256(v *big.Int) [32]byte {
	var out [32]byte
	if v.Sign() > 0 {
		v.FillBytes(out[:])
	}
	return out
}
