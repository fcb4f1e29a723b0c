package wallet

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticChain struct{ id *big.Int }

func (s staticChain) ChainID(ctx context.Context) (*big.Int, error) { return s.id, nil }

func staticPassphrase(pw string) PassphraseFunc {
	return func(context.Context, accounts.Account) (string, error) { return pw, nil }
}

func newTestKeystore(t *testing.T) (*keystore.KeyStore, accounts.Account) {
	t.Helper()
	ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	acct, err := ks.NewAccount("correct horse")
	require.NoError(t, err)
	return ks, acct
}

func TestOpenKeystoreMissingDir(t *testing.T) {
	_, err := OpenKeystore(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Equal(t, trackererrors.CodeNoProvider, trackererrors.GetErrorCode(err))
}

func TestKeystoreRequestAccounts(t *testing.T) {
	ks, acct := newTestKeystore(t)
	p := NewKeystoreProvider(ks, staticChain{big.NewInt(5)}, KeystoreOptions{Passphrase: staticPassphrase("correct horse")}, nil)

	before, err := p.Accounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, before)

	got, err := p.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{acct.Address}, got)

	opts, err := p.Signer(context.Background(), acct.Address, big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, acct.Address, opts.From)
}

func TestKeystoreWrongPassphraseIsRejection(t *testing.T) {
	ks, _ := newTestKeystore(t)
	p := NewKeystoreProvider(ks, nil, KeystoreOptions{Passphrase: staticPassphrase("wrong")}, nil)

	_, err := p.RequestAccounts(context.Background())
	require.Error(t, err)
	assert.Equal(t, trackererrors.CodeUserRejected, trackererrors.GetErrorCode(err))
}

func TestKeystoreEmptyPassphraseIsRejection(t *testing.T) {
	ks, _ := newTestKeystore(t)
	p := NewKeystoreProvider(ks, nil, KeystoreOptions{Passphrase: ContextPassphrase()}, nil)

	_, err := p.RequestAccounts(context.Background())
	assert.Equal(t, trackererrors.CodeUserRejected, trackererrors.GetErrorCode(err))

	got, err := p.RequestAccounts(WithPassphrase(context.Background(), "correct horse"))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestKeystoreUnknownAccount(t *testing.T) {
	ks, _ := newTestKeystore(t)
	p := NewKeystoreProvider(ks, nil, KeystoreOptions{
		Account:    common.HexToAddress("0x3333333333333333333333333333333333333333"),
		Passphrase: staticPassphrase("correct horse"),
	}, nil)

	_, err := p.RequestAccounts(context.Background())
	assert.Equal(t, trackererrors.CodeNoProvider, trackererrors.GetErrorCode(err))
}

func TestKeystoreSignerRequiresUnlock(t *testing.T) {
	ks, acct := newTestKeystore(t)
	p := NewKeystoreProvider(ks, nil, KeystoreOptions{}, nil)

	_, err := p.Signer(context.Background(), acct.Address, big.NewInt(1))
	assert.Equal(t, trackererrors.CodeNotConnected, trackererrors.GetErrorCode(err))
}

func TestKeystoreDisconnectNotifies(t *testing.T) {
	ks, acct := newTestKeystore(t)
	p := NewKeystoreProvider(ks, staticChain{big.NewInt(5)}, KeystoreOptions{Passphrase: staticPassphrase("correct horse")}, nil)

	ch := make(chan []common.Address, 1)
	sub := p.SubscribeAccountsChanged(ch)
	defer sub.Unsubscribe()

	_, err := p.RequestAccounts(context.Background())
	require.NoError(t, err)

	p.Disconnect()
	select {
	case got := <-ch:
		assert.Empty(t, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no notification after disconnect")
	}

	_, err = p.Signer(context.Background(), acct.Address, big.NewInt(5))
	assert.Equal(t, trackererrors.CodeNotConnected, trackererrors.GetErrorCode(err))
}

func TestResolverOverKeystore(t *testing.T) {
	ks, acct := newTestKeystore(t)
	p := NewKeystoreProvider(ks, staticChain{big.NewInt(11155111)}, KeystoreOptions{Passphrase: staticPassphrase("correct horse")}, nil)
	r := NewResolver(p, big.NewInt(11155111), nil)

	got, err := r.RequestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, acct.Address, got)

	opts, err := r.Signer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, acct.Address, opts.From)
}

func TestFilePassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pw")
	require.NoError(t, os.WriteFile(path, []byte("s3cret\nignored\n"), 0600))

	pw, err := FilePassphrase(path)(context.Background(), accounts.Account{})
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
}

func TestFirstPassphrase(t *testing.T) {
	src := FirstPassphrase(ContextPassphrase(), staticPassphrase("fallback"))

	pw, err := src(context.Background(), accounts.Account{})
	require.NoError(t, err)
	assert.Equal(t, "fallback", pw)

	pw, err = src(WithPassphrase(context.Background(), "from-request"), accounts.Account{})
	require.NoError(t, err)
	assert.Equal(t, "from-request", pw)
}
