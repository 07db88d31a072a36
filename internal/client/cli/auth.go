package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/petguard/internal/client/client"
	"github.com/dmitrijs2005/petguard/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errPasswordMismatch = errors.New("passwords do not match")

// Init creates the principal key and seals it into the keystore. An existing
// keystore is only replaced after explicit confirmation.
func (a *App) Init(ctx context.Context) error {
	force := false
	if _, err := a.authService.Address(); err == nil {
		answer, err := getSimpleText(a.reader, "A keystore already exists. Replace it? (yes/no)", a.out)
		if err != nil {
			return err
		}
		if answer != "yes" {
			return nil
		}
		force = true
	}

	password, err := getPassword("New keystore password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		return errPasswordMismatch
	}

	addr, err := a.authService.Init(password, force)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Keystore created for %s\n", addr.Hex())
	return nil
}

// Login unlocks the keystore and opens a ledger session. When the ledger is
// unreachable the key stays unlocked and the client runs offline.
func (a *App) Login(ctx context.Context) error {
	password, err := getPassword("Keystore password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	signer, err := a.authService.Unlock(password)
	if err != nil {
		return err
	}
	a.signer = signer

	if err := a.authService.Login(ctx, signer); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			log.Printf("Ledger unavailable, continuing offline")
			a.setMode(ModeOffline)
			return nil
		}
		a.signer = nil
		return err
	}

	log.Printf("Login successful")
	a.setMode(ModeOnline)
	return nil
}

// Logout drops the unlocked key.
func (a *App) Logout(ctx context.Context) error {
	a.signer = nil
	return nil
}

// Address prints the principal address, from the unlocked key or the
// keystore file.
func (a *App) Address(ctx context.Context) error {
	if a.signer != nil {
		fmt.Fprintln(a.out, a.signer.Address().Hex())
		return nil
	}
	addr, err := a.authService.Address()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, addr.Hex())
	return nil
}
