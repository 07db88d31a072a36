package authz

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	entity = cryptox.MustParseAddress("0x00000000000000000000000000000000000000e1")
	domain = cryptox.DecryptionDomain(31337, cryptox.MustParseAddress("0x5ffdaAB0373E62E2ea2944776209aEf29E631A64"))
	now    = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func issue(t *testing.T, days uint64) (*Token, *cryptox.KeySigner) {
	t.Helper()
	s, err := cryptox.GenerateKeySigner()
	require.NoError(t, err)
	tok, kp, err := Issue(s, domain, []cryptox.Address{entity}, now, days)
	require.NoError(t, err)
	assert.Equal(t, kp.Public[:], tok.PublicKey)
	return tok, s
}

func TestIssue_VerifySignature(t *testing.T) {
	tok, s := issue(t, DefaultDurationDays)

	assert.Equal(t, s.Address(), tok.Principal)
	require.NoError(t, tok.VerifySignature(domain))

	otherDomain := domain
	otherDomain.ChainID = 11155111
	assert.ErrorIs(t, tok.VerifySignature(otherDomain), ErrBadSignature)
}

func TestVerifySignature_ClaimedByAnotherPrincipal(t *testing.T) {
	tok, _ := issue(t, 1)
	mallory, err := cryptox.GenerateKeySigner()
	require.NoError(t, err)

	tok.Principal = mallory.Address()
	assert.ErrorIs(t, tok.VerifySignature(domain), ErrBadSignature)
}

func TestVerifySignature_TamperedFields(t *testing.T) {
	tok, _ := issue(t, 1)
	tok.DurationDays = 300
	assert.ErrorIs(t, tok.VerifySignature(domain), ErrBadSignature)

	tok, _ = issue(t, 1)
	tok.TargetEntities = []cryptox.Address{cryptox.ZeroAddress}
	assert.ErrorIs(t, tok.VerifySignature(domain), ErrBadSignature)

	tok, _ = issue(t, 1)
	tok.Signature = tok.Signature[:10]
	assert.ErrorIs(t, tok.VerifySignature(domain), ErrBadSignature)
}

func TestVerifyWindow(t *testing.T) {
	tok, _ := issue(t, 1)

	tests := []struct {
		name string
		at   time.Time
		want error
	}{
		{"at issue", now, nil},
		{"inside", now.Add(12 * time.Hour), nil},
		{"last second", now.Add(24 * time.Hour), nil},
		{"expired", now.Add(24*time.Hour + time.Second), ErrExpired},
		{"before issue", now.Add(-time.Second), ErrNotYetValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tok.VerifyWindow(tt.at)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIssue_BadArguments(t *testing.T) {
	s, err := cryptox.GenerateKeySigner()
	require.NoError(t, err)

	_, _, err = Issue(s, domain, nil, now, 1)
	assert.ErrorIs(t, err, ErrNoTargets)

	_, _, err = Issue(s, domain, []cryptox.Address{entity}, now, 0)
	assert.ErrorIs(t, err, ErrBadDuration)

	_, _, err = Issue(s, domain, []cryptox.Address{entity}, now, MaxDurationDays+1)
	assert.ErrorIs(t, err, ErrBadDuration)
}

func TestCovers(t *testing.T) {
	tok, _ := issue(t, 1)
	assert.NoError(t, tok.Covers(entity))
	assert.ErrorIs(t, tok.Covers(cryptox.ZeroAddress), ErrEntityNotNamed)
}

func TestWire_RoundTrip(t *testing.T) {
	tok, _ := issue(t, 10)

	w := tok.Wire()
	assert.Equal(t, "10", w.DurationDays)
	assert.Equal(t, "1714564800", w.StartTimestamp)

	parsed, err := ParseWire(w)
	require.NoError(t, err)
	assert.Equal(t, tok, parsed)
	assert.NoError(t, parsed.VerifySignature(domain))
}

func TestParseWire_Invalid(t *testing.T) {
	tok, _ := issue(t, 1)

	tests := map[string]func(w *Wire){
		"address":   func(w *Wire) { w.UserAddress = "0x12" },
		"publicKey": func(w *Wire) { w.PublicKey = "zz" },
		"signature": func(w *Wire) { w.Signature = "0xq" },
		"start":     func(w *Wire) { w.StartTimestamp = "yesterday" },
		"negative":  func(w *Wire) { w.StartTimestamp = "-86400" },
		"days":      func(w *Wire) { w.DurationDays = "-1" },
		"targets":   func(w *Wire) { w.ContractAddresses = nil },
		"target":    func(w *Wire) { w.ContractAddresses = []string{"0x01"} },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			w := tok.Wire()
			mutate(&w)
			_, err := ParseWire(w)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}
