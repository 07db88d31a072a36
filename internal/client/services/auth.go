package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/petguard/internal/client/client"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/dmitrijs2005/petguard/internal/filex"
)

var ErrNoKeystore = errors.New("keystore not initialized, run init first")

// AuthService manages the principal key and the ledger session.
//
// Contract:
//   - Init: generate a principal key and seal it to the keystore file.
//   - Unlock: open the keystore with a password and return the signer.
//   - Address: read the principal address without a password.
//   - Login: open a ledger session by signing a challenge.
//   - Ping: check ledger liveness.
type AuthService interface {
	Init(password []byte, force bool) (cryptox.Address, error)
	Unlock(password []byte) (*cryptox.KeySigner, error)
	Address() (cryptox.Address, error)
	Login(ctx context.Context, signer cryptox.Signer) error
	Ping(ctx context.Context) error
	Close() error
}

type authService struct {
	client       client.Client
	keystorePath string
}

func NewAuthService(c client.Client, keystorePath string) AuthService {
	return &authService{client: c, keystorePath: keystorePath}
}

// Init refuses to replace an existing keystore unless force is set.
func (a *authService) Init(password []byte, force bool) (cryptox.Address, error) {
	if len(password) == 0 {
		return cryptox.ZeroAddress, errors.New("empty password")
	}
	if err := filex.PrepareNew(a.keystorePath, force); err != nil {
		return cryptox.ZeroAddress, err
	}

	signer, err := cryptox.GenerateKeySigner()
	if err != nil {
		return cryptox.ZeroAddress, err
	}
	ks, err := cryptox.SealKey(signer, password)
	if err != nil {
		return cryptox.ZeroAddress, fmt.Errorf("seal key: %w", err)
	}
	if err := cryptox.WriteKeystore(a.keystorePath, ks); err != nil {
		return cryptox.ZeroAddress, fmt.Errorf("write keystore: %w", err)
	}
	return ks.Address, nil
}

func (a *authService) read() (*cryptox.Keystore, error) {
	ks, err := cryptox.ReadKeystore(a.keystorePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoKeystore
	}
	return ks, err
}

func (a *authService) Unlock(password []byte) (*cryptox.KeySigner, error) {
	ks, err := a.read()
	if err != nil {
		return nil, err
	}
	return ks.Open(password)
}

func (a *authService) Address() (cryptox.Address, error) {
	ks, err := a.read()
	if err != nil {
		return cryptox.ZeroAddress, err
	}
	return ks.Address, nil
}

func (a *authService) Login(ctx context.Context, signer cryptox.Signer) error {
	if err := a.client.Login(ctx, signer); err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close() error {
	return a.client.Close()
}
