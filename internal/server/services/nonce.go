package services

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
)

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type challenge struct {
	principal cryptox.Address
	expires   time.Time
}

// ChallengeCache hands out single-use login nonces. A nonce is bound to the
// address it was issued for and dies after ttl. Expired entries are evicted
// inline on every call.
type ChallengeCache struct {
	mu      sync.Mutex
	entries map[string]challenge
	ttl     time.Duration
	clock   Clock
}

func NewChallengeCache(ttl time.Duration, clock Clock) *ChallengeCache {
	if clock == nil {
		clock = realClock{}
	}
	return &ChallengeCache{
		entries: make(map[string]challenge),
		ttl:     ttl,
		clock:   clock,
	}
}

// Issue returns a fresh nonce for principal and its expiry.
func (c *ChallengeCache) Issue(principal cryptox.Address) (string, time.Time, error) {
	nonce, err := common.MakeRandHexString(32)
	if err != nil {
		return "", time.Time{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanup()

	expires := c.clock.Now().Add(c.ttl)
	c.entries[nonce] = challenge{principal: principal, expires: expires}
	return nonce, expires, nil
}

// Consume removes nonce and reports whether it was live and issued to
// principal. A nonce presented for the wrong principal is burned too.
func (c *ChallengeCache) Consume(principal cryptox.Address, nonce string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanup()

	ch, ok := c.entries[nonce]
	if !ok {
		return false
	}
	delete(c.entries, nonce)
	return ch.principal == principal
}

// Len reports the number of live nonces.
func (c *ChallengeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanup()
	return len(c.entries)
}

// cleanup must be called with mu held.
func (c *ChallengeCache) cleanup() {
	now := c.clock.Now()
	for k, v := range c.entries {
		if now.After(v.expires) {
			delete(c.entries, k)
		}
	}
}
