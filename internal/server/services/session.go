// Package services holds the ledger's business logic: principal sessions,
// proof verification, the care log registry and the snapshot archive.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/petguard/internal/authz"
	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/dbx"
	"github.com/dmitrijs2005/petguard/internal/logging"
	"github.com/dmitrijs2005/petguard/internal/server/auth"
	"github.com/dmitrijs2005/petguard/internal/server/config"
	"github.com/dmitrijs2005/petguard/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SessionService authenticates principals by a signed challenge and
// manages their access and refresh tokens.
type SessionService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	challenges                   *ChallengeCache
	chainID                      uint64
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	logger                       logging.Logger
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, challenges *ChallengeCache,
	cfg *config.Config, logger logging.Logger) *SessionService {
	return &SessionService{
		db:                           db,
		repomanager:                  m,
		challenges:                   challenges,
		chainID:                      cfg.ChainID,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		logger:                       logger.With("module", "session"),
	}
}

// GetChallenge issues a login nonce for address.
func (s *SessionService) GetChallenge(ctx context.Context, address string) (string, time.Time, error) {
	principal, err := cryptox.ParseAddress(address)
	if err != nil || principal.IsZero() {
		return "", time.Time{}, fmt.Errorf("%w: bad address", common.ErrValidation)
	}
	nonce, expires, err := s.challenges.Issue(principal)
	if err != nil {
		return "", time.Time{}, common.ErrorInternal
	}
	return nonce, expires, nil
}

// Login checks that signature is address's signature over the login
// message for nonce, consumes the nonce and mints a TokenPair.
func (s *SessionService) Login(ctx context.Context, address, nonce string, signature []byte) (*TokenPair, error) {
	principal, err := cryptox.ParseAddress(address)
	if err != nil {
		return nil, fmt.Errorf("%w: bad address", common.ErrValidation)
	}
	if !s.challenges.Consume(principal, nonce) {
		s.logger.Warn(ctx, "login with unknown or expired nonce", "principal", principal)
		return nil, common.ErrorUnauthorized
	}

	digest := cryptox.PersonalMessageDigest(authz.LoginMessage(s.chainID, principal, nonce))
	signer, err := cryptox.RecoverAddress(digest, signature)
	if err != nil || signer != principal {
		s.logger.Warn(ctx, "login signature mismatch", "principal", principal)
		return nil, common.ErrorUnauthorized
	}

	return s.generateTokenPair(ctx, principal.Hex(), s.db)
}

// RefreshToken rotates a refresh token inside one transaction and returns
// a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *SessionService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.Principal, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Authenticate resolves an access token to its principal.
func (s *SessionService) Authenticate(accessToken string) (cryptox.Address, error) {
	p, err := auth.GetPrincipalFromToken(accessToken, s.jwtSecret)
	if err != nil {
		return cryptox.ZeroAddress, err
	}
	principal, err := cryptox.ParseAddress(p)
	if err != nil {
		return cryptox.ZeroAddress, common.ErrInvalidToken
	}
	return principal, nil
}

// PruneExpired drops refresh tokens that are past their expiry.
func (s *SessionService) PruneExpired(ctx context.Context) (int64, error) {
	n, err := s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("prune refresh tokens: %w", err)
	}
	return n, nil
}

func (s *SessionService) generateTokenPair(ctx context.Context, principal string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(principal, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, principal, refresh, s.refreshTokenValidityDuration); err != nil {
		s.logger.Error(ctx, "store refresh token", "error", err)
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
