package services

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/petguard/internal/authz"
	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/kms"
	"github.com/sethvargo/go-retry"
)

// Relayer forwards re-encryption requests to the decryption authority.
type Relayer interface {
	UserDecrypt(ctx context.Context, req *kms.UserDecryptRequest) (*kms.UserDecryptResponse, error)
}

type DecryptorOptions struct {
	Timeout      time.Duration
	Retries      uint64
	Backoff      time.Duration
	DurationDays uint64
}

type memoKey struct {
	principal cryptox.Address
	handle    fhe.Handle
}

// Decryptor recovers confidential values the caller has been granted. Results
// are memoized per principal and handle.
type Decryptor struct {
	network fhe.Network
	relayer Relayer
	opts    DecryptorOptions
	now     func() time.Time

	mu   sync.Mutex
	memo map[memoKey]uint32
}

func NewDecryptor(network fhe.Network, r Relayer, opts DecryptorOptions) *Decryptor {
	if opts.Backoff <= 0 {
		opts.Backoff = 200 * time.Millisecond
	}
	if opts.DurationDays == 0 {
		opts.DurationDays = authz.DefaultDurationDays
	}
	return &Decryptor{
		network: network,
		relayer: r,
		opts:    opts,
		now:     time.Now,
		memo:    make(map[memoKey]uint32),
	}
}

// UserDecrypt signs a fresh authorization for entity with signer and asks
// the KMS to re-encrypt handle to it. Refusals surface as common.ErrDenied
// and are not retried; common.ErrUnavailable is retried with exponential
// backoff until the retry budget or the timeout runs out.
func (d *Decryptor) UserDecrypt(ctx context.Context, handle fhe.Handle, entity cryptox.Address, signer cryptox.Signer) (uint32, error) {
	if handle.IsZero() {
		return 0, fmt.Errorf("%w: no confidential value", common.ErrValidation)
	}

	key := memoKey{principal: signer.Address(), handle: handle}
	if v, ok := d.cached(key); ok {
		return v, nil
	}

	if d.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.Timeout)
		defer cancel()
	}

	token, kp, err := authz.Issue(signer, d.network.DecryptionDomain(), []cryptox.Address{entity}, d.now(), d.opts.DurationDays)
	if err != nil {
		return 0, fmt.Errorf("issue authorization: %w", err)
	}
	defer kp.Wipe()

	req := &kms.UserDecryptRequest{
		Wire:                token.Wire(),
		HandleContractPairs: []kms.HandleContractPair{{Handle: handle.Hex(), ContractAddress: entity.Hex()}},
	}

	var resp *kms.UserDecryptResponse
	backoff := retry.WithMaxRetries(d.opts.Retries, retry.NewExponential(d.opts.Backoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := d.relayer.UserDecrypt(ctx, req)
		if errors.Is(err, common.ErrUnavailable) {
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return 0, err
	}

	v, err := openResult(resp, handle, kp)
	if err != nil {
		return 0, err
	}

	d.mu.Lock()
	d.memo[key] = v
	d.mu.Unlock()
	return v, nil
}

func (d *Decryptor) cached(k memoKey) (uint32, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.memo[k]
	return v, ok
}

func openResult(resp *kms.UserDecryptResponse, handle fhe.Handle, kp *cryptox.EphemeralKeyPair) (uint32, error) {
	for _, r := range resp.Results {
		h, err := fhe.ParseHandle(r.Handle)
		if err != nil || h != handle {
			continue
		}
		sealed, err := hex.DecodeString(strings.TrimPrefix(r.Payload, "0x"))
		if err != nil {
			return 0, fmt.Errorf("kms payload: %w", err)
		}
		plain, err := kp.Open(sealed, handle.Bytes())
		if err != nil {
			return 0, err
		}
		if len(plain) != 4 {
			return 0, fmt.Errorf("kms payload: %d bytes, want 4", len(plain))
		}
		return binary.BigEndian.Uint32(plain), nil
	}
	return 0, fmt.Errorf("kms response has no result for %s", handle)
}
