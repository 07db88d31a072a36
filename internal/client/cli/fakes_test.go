package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/petguard/internal/carelog"
	"github.com/dmitrijs2005/petguard/internal/client/models"
	"github.com/dmitrijs2005/petguard/internal/cryptox"
	"github.com/stretchr/testify/require"
)

func stubText(t *testing.T, answers ...string) {
	t.Helper()
	orig := getSimpleText
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		i++
		return answers[i-1], nil
	}
	t.Cleanup(func() { getSimpleText = orig })
}

func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if i >= len(pws) {
			return nil, io.EOF
		}
		i++
		return []byte(pws[i-1]), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

type fakeAuth struct {
	signer *cryptox.KeySigner

	initPass  []byte
	initForce bool
	initErr   error

	unlockPass []byte
	unlockErr  error

	addr    cryptox.Address
	addrErr error

	loginErr   error
	loginCalls int
	pingErr    error
}

func (f *fakeAuth) Init(password []byte, force bool) (cryptox.Address, error) {
	f.initPass, f.initForce = append([]byte(nil), password...), force
	if f.initErr != nil {
		return cryptox.ZeroAddress, f.initErr
	}
	return f.signer.Address(), nil
}

func (f *fakeAuth) Unlock(password []byte) (*cryptox.KeySigner, error) {
	f.unlockPass = append([]byte(nil), password...)
	if f.unlockErr != nil {
		return nil, f.unlockErr
	}
	return f.signer, nil
}

func (f *fakeAuth) Address() (cryptox.Address, error) { return f.addr, f.addrErr }

func (f *fakeAuth) Login(ctx context.Context, signer cryptox.Signer) error {
	f.loginCalls++
	return f.loginErr
}

func (f *fakeAuth) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeAuth) Close() error                   { return nil }

type fakeRecords struct {
	created     []string
	createCat   carelog.Category
	createDesc  string
	createValue *uint64
	createErr   error

	records map[uint64]*models.Record
	listed  cryptox.Address

	decryptVal uint32
	decryptErr error
	decryptID  uint64

	total uint64
}

func (f *fakeRecords) Create(ctx context.Context, signer cryptox.Signer, category carelog.Category, title, description string, value *uint64) (uint64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = append(f.created, title)
	f.createCat, f.createDesc, f.createValue = category, description, value
	return uint64(len(f.created) - 1), nil
}

func (f *fakeRecords) Get(ctx context.Context, id uint64) (*models.Record, error) {
	return f.records[id], nil
}

func (f *fakeRecords) List(ctx context.Context, owner cryptox.Address) ([]*models.Record, error) {
	f.listed = owner
	var out []*models.Record
	for i := uint64(0); i < uint64(len(f.records)); i++ {
		out = append(out, f.records[i])
	}
	return out, nil
}

func (f *fakeRecords) Total(ctx context.Context) (uint64, error) { return f.total, nil }

func (f *fakeRecords) Decrypt(ctx context.Context, id uint64, signer cryptox.Signer) (uint32, error) {
	f.decryptID = id
	return f.decryptVal, f.decryptErr
}

func newTestApp(t *testing.T) (*App, *fakeAuth, *fakeRecords, *bytes.Buffer) {
	t.Helper()
	signer, err := cryptox.GenerateKeySigner()
	require.NoError(t, err)

	fa := &fakeAuth{signer: signer}
	fr := &fakeRecords{records: map[uint64]*models.Record{}}
	out := &bytes.Buffer{}
	return &App{
		authService:   fa,
		recordService: fr,
		reader:        bufio.NewReader(strings.NewReader("")),
		out:           out,
	}, fa, fr, out
}
