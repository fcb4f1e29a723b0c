package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DeBrosOfficial/assettracker/pkg/config"
	"github.com/DeBrosOfficial/assettracker/pkg/contracts"
	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/DeBrosOfficial/assettracker/pkg/tracker"
	"github.com/DeBrosOfficial/assettracker/pkg/tracker/trackertest"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin = common.HexToAddress(config.DefaultAdminAddress)
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

type fakeWallet struct {
	*trackertest.Accounts
	provider  bool
	reject    bool
	candidate common.Address
}

func (f *fakeWallet) HasProvider() bool { return f.provider }

func (f *fakeWallet) Current() (common.Address, bool) {
	a, ok, _ := f.ActiveAccount(context.Background())
	return a, ok
}

func (f *fakeWallet) RequestConnection(ctx context.Context) (common.Address, error) {
	if f.reject {
		return common.Address{}, trackererrors.NewUserRejectedError(nil)
	}
	f.Set(f.candidate)
	return f.candidate, nil
}

type fixture struct {
	ledger *trackertest.Ledger
	wallet *fakeWallet
	opens  int
	closes int
	cfg    string
}

// newFixture signs as account once connected; the wallet starts locked.
func newFixture(t *testing.T, account common.Address) *fixture {
	t.Helper()
	accounts := trackertest.NewAccounts(account)
	accounts.Clear()

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("logging:\n  level: debug\n"), 0o600))

	return &fixture{
		ledger: trackertest.NewLedger(account),
		wallet: &fakeWallet{Accounts: accounts, provider: true, candidate: account},
		cfg:    cfg,
	}
}

func (f *fixture) open(ctx context.Context, cfg *config.Config, logger *logging.ColoredLogger) (*Session, error) {
	f.opens++
	return &Session{
		Tracker:  tracker.New(f.ledger, f.wallet, common.HexToAddress(cfg.Chain.AdminAddress), logger),
		Wallet:   f.wallet,
		Keystore: []common.Address{admin, alice},
		Close:    func() { f.closes++ },
	}, nil
}

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := &App{Out: &out, Err: &errOut, Open: f.open}
	cmd := NewRootCmd(app)
	cmd.SetArgs(append([]string{"--config", f.cfg, "--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (f *fixture) seed() {
	f.ledger.SeedAsset(contracts.AssetRecord{Sender: admin, Recipient: bob, RecipientName: "Clinic A", Name: "Vaccines", Description: "cold chain", Type: "medical", Location: "Lagos", Status: "pending", Distance: "12km"})
	f.ledger.SeedAsset(contracts.AssetRecord{Sender: admin, Recipient: alice, Name: "Laptops", Type: "electronics", Location: "Accra", Status: "delivering", Distance: "400km"})
}

func TestVersionNeedsNoConfig(t *testing.T) {
	var out bytes.Buffer
	app := &App{Out: &out, Err: &out, Open: func(context.Context, *config.Config, *logging.ColoredLogger) (*Session, error) {
		t.Fatal("version must not open a session")
		return nil, nil
	}}
	cmd := NewRootCmd(app)
	cmd.SetArgs([]string{"--config", "/does/not/exist.yaml", "version"})
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "tracker dev"))
}

func TestInvalidConfigIsReported(t *testing.T) {
	f := newFixture(t, admin)
	require.NoError(t, os.WriteFile(f.cfg, []byte("chain:\n  chain_id: 0\n"), 0o600))

	_, err := f.run(t, "assets", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chain.chain_id")
	assert.Zero(t, f.opens)
}

func TestAssetsListAndSearch(t *testing.T) {
	f := newFixture(t, alice)
	f.seed()

	out, err := f.run(t, "assets", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Vaccines")
	assert.Contains(t, out, "Laptops")
	assert.Contains(t, out, "Total: 2")

	out, err = f.run(t, "assets", "list", "--search", "LAGOS")
	require.NoError(t, err)
	assert.Contains(t, out, "Vaccines")
	assert.NotContains(t, out, "Laptops")
	assert.Equal(t, f.opens, f.closes)
}

func TestAssetsGet(t *testing.T) {
	f := newFixture(t, alice)
	f.seed()

	out, err := f.run(t, "assets", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Asset #1: Vaccines")
	assert.Contains(t, out, "Clinic A")
	assert.Contains(t, out, "cold chain")

	_, err = f.run(t, "assets", "get", "99")
	assert.True(t, trackererrors.IsNotFound(err))

	_, err = f.run(t, "assets", "get", "x")
	assert.True(t, trackererrors.IsValidation(err))
}

func TestAssetsSummary(t *testing.T) {
	f := newFixture(t, alice)
	f.seed()

	out, err := f.run(t, "assets", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "Total: 2")
}

func TestCreateAndUpdateAsAuthorizedUser(t *testing.T) {
	f := newFixture(t, alice)
	f.ledger.SeedUser(alice, "Alice")

	out, err := f.run(t, "assets", "create",
		"--recipient", bob.Hex(), "--recipient-name", "Clinic A", "--name", "Vaccines",
		"--description", "cold chain", "--type", "medical", "--location", "Lagos", "--distance", "12km")
	require.NoError(t, err)
	assert.Contains(t, out, `Created asset #1 "Vaccines"`)
	assert.Contains(t, out, "tx 0x")

	out, err = f.run(t, "assets", "status", "1", "delivering")
	require.NoError(t, err)
	assert.Contains(t, out, "Asset #1 is now delivering")

	out, err = f.run(t, "assets", "transfer", "1", alice.Hex(), "Warehouse")
	require.NoError(t, err)
	assert.Contains(t, out, "transferred to Warehouse")
	assert.Equal(t, 3, f.ledger.Submissions)
}

func TestWritesRefusedForViewer(t *testing.T) {
	f := newFixture(t, alice)
	f.seed()

	_, err := f.run(t, "assets", "status", "1", "completed")
	assert.True(t, trackererrors.IsForbidden(err))
	_, err = f.run(t, "users", "authorize", bob.Hex(), "Bob")
	assert.True(t, trackererrors.IsForbidden(err))
	assert.Zero(t, f.ledger.Submissions)
	assert.Equal(t, f.opens, f.closes)
}

func TestCreateRequiresFlags(t *testing.T) {
	f := newFixture(t, admin)
	_, err := f.run(t, "assets", "create", "--name", "Vaccines")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
	assert.Zero(t, f.opens)
}

func TestUsersAuthorizeListRevoke(t *testing.T) {
	f := newFixture(t, admin)

	out, err := f.run(t, "users", "authorize", bob.Hex(), "Bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Authorized Bob")

	out, err = f.run(t, "users", "list", "--search", "bob")
	require.NoError(t, err)
	assert.Contains(t, out, bob.Hex())

	_, err = f.run(t, "users", "revoke", bob.Hex())
	require.NoError(t, err)

	out, err = f.run(t, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No authorized users")

	_, err = f.run(t, "users", "revoke", admin.Hex())
	assert.True(t, trackererrors.IsForbidden(err))
	assert.Equal(t, 2, f.ledger.Submissions)
}

func TestWalletConnectShowsRole(t *testing.T) {
	f := newFixture(t, admin)
	out, err := f.run(t, "wallet", "connect")
	require.NoError(t, err)
	assert.Contains(t, out, "Connected "+admin.Hex())
	assert.Contains(t, out, "Role: admin")

	f = newFixture(t, alice)
	out, err = f.run(t, "wallet", "connect")
	require.NoError(t, err)
	assert.Contains(t, out, "Role: viewer")
	assert.Contains(t, out, "can view assets but not create")
}

func TestWalletConnectRejected(t *testing.T) {
	f := newFixture(t, admin)
	f.wallet.reject = true

	_, err := f.run(t, "wallet", "connect")
	assert.Equal(t, trackererrors.CodeUserRejected, trackererrors.GetErrorCode(err))
	assert.Equal(t, f.opens, f.closes)
}

func TestWalletStatusDoesNotUnlock(t *testing.T) {
	f := newFixture(t, admin)

	out, err := f.run(t, "wallet", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "2 account(s)")
	assert.Contains(t, out, admin.Hex()+" (admin)")
	_, connected := f.wallet.Current()
	assert.False(t, connected)
}

func TestNoProvider(t *testing.T) {
	f := newFixture(t, admin)
	f.wallet.provider = false

	out, err := f.run(t, "wallet", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "no provider")

	_, err = f.run(t, "assets", "list")
	assert.Equal(t, trackererrors.CodeNoProvider, trackererrors.GetErrorCode(err))
}
