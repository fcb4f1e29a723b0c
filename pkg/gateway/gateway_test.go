package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DeBrosOfficial/assettracker/pkg/contracts"
	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/DeBrosOfficial/assettracker/pkg/tracker"
	"github.com/DeBrosOfficial/assettracker/pkg/tracker/trackertest"
	"github.com/DeBrosOfficial/assettracker/pkg/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin = common.HexToAddress("0x687D70b3E77889689951208F2DB2B2B4927DBf05")
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

// fakeWallet connects candidate when the request carries the right passphrase.
type fakeWallet struct {
	*trackertest.Accounts
	provider   bool
	passphrase string
	candidate  common.Address
	feed       event.Feed
}

func (f *fakeWallet) HasProvider() bool { return f.provider }

func (f *fakeWallet) Current() (common.Address, bool) {
	account, ok, _ := f.ActiveAccount(context.Background())
	return account, ok
}

func (f *fakeWallet) RequestConnection(ctx context.Context) (common.Address, error) {
	if !f.provider {
		return common.Address{}, trackererrors.NewNoProviderError("")
	}
	if pw, ok := wallet.PassphraseFromContext(ctx); !ok || pw != f.passphrase {
		return common.Address{}, trackererrors.NewUserRejectedError(nil)
	}
	f.Set(f.candidate)
	f.feed.Send(wallet.AccountChange{Account: f.candidate, Connected: true})
	return f.candidate, nil
}

func (f *fakeWallet) Disconnect() {
	f.Clear()
	f.feed.Send(wallet.AccountChange{})
}

func (f *fakeWallet) SubscribeAccountChange(ch chan<- wallet.AccountChange) event.Subscription {
	return f.feed.Subscribe(ch)
}

type harness struct {
	gw     *Gateway
	h      http.Handler
	ledger *trackertest.Ledger
	wallet *fakeWallet
}

// newHarness starts with active connected; the zero address starts disconnected.
func newHarness(t *testing.T, active common.Address) *harness {
	t.Helper()
	accounts := trackertest.NewAccounts(active)
	if active == (common.Address{}) {
		accounts.Clear()
	}
	fw := &fakeWallet{Accounts: accounts, provider: true, passphrase: "hunter22", candidate: admin}
	ledger := trackertest.NewLedger(active)
	tr := tracker.New(ledger, accounts, admin, nil)

	gw, err := New(nil, &Config{
		ReadTimeout:     time.Second,
		ConfirmTimeout:  5 * time.Second,
		ChainID:         11155111,
		ContractAddress: trackertest.Contract.Hex(),
		AdminAddress:    admin.Hex(),
	}, tr, fw)
	require.NoError(t, err)
	t.Cleanup(gw.Close)
	return &harness{gw: gw, h: gw.Routes(), ledger: ledger, wallet: fw}
}

func (h *harness) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return h.doContext(t, context.Background(), method, path, body)
}

func (h *harness) doContext(t *testing.T, ctx context.Context, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.h.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) trackererrors.HTTPError {
	t.Helper()
	return decode[trackererrors.HTTPError](t, rec)
}

const createBody = `{"recipient":"0x2222222222222222222222222222222222222222","recipientName":"Clinic A",
"name":"Vaccines","description":"cold chain","type":"medical","location":"Lagos","status":"pending","distance":"12km"}`

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(nil, nil, nil, &fakeWallet{})
	assert.Error(t, err)
	_, err = New(nil, nil, tracker.New(trackertest.NewLedger(admin), trackertest.NewAccounts(admin), admin, nil), nil)
	assert.Error(t, err)
}

func TestHealthAndStatus(t *testing.T) {
	h := newHarness(t, admin)

	rec := h.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[healthResponse](t, rec).Status)

	rec = h.do(t, http.MethodGet, "/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[statusResponse](t, rec)
	assert.Equal(t, int64(11155111), st.ChainID)
	assert.Equal(t, admin.Hex(), st.Admin)
	assert.Equal(t, admin.Hex(), st.Account)
	assert.True(t, st.Provider)
	assert.Empty(t, st.Inflight)
	assert.Zero(t, h.ledger.Reads)
}

func TestSessionReflectsRole(t *testing.T) {
	h := newHarness(t, alice)

	s := decode[sessionResponse](t, h.do(t, http.MethodGet, "/v1/wallet", ""))
	assert.True(t, s.Connected)
	assert.False(t, s.Admin)
	assert.False(t, s.CanManageAssets)

	h.ledger.SeedUser(alice, "Alice")
	s = decode[sessionResponse](t, h.do(t, http.MethodGet, "/v1/wallet", ""))
	assert.True(t, s.AuthorizedUser)
	assert.True(t, s.CanManageAssets)
}

func TestConnectAndDisconnect(t *testing.T) {
	h := newHarness(t, common.Address{})

	s := decode[sessionResponse](t, h.do(t, http.MethodGet, "/v1/wallet", ""))
	assert.False(t, s.Connected)
	assert.True(t, s.Provider)

	rec := h.do(t, http.MethodPost, "/v1/wallet/connect", `{"passphrase":"wrong"}`)
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	assert.Equal(t, trackererrors.CodeUserRejected, errorCode(t, rec).Code)

	rec = h.do(t, http.MethodPost, "/v1/wallet/connect", `{"passphrase":"hunter22"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	s = decode[sessionResponse](t, rec)
	assert.Equal(t, admin.Hex(), s.Account)
	assert.True(t, s.Admin)

	rec = h.do(t, http.MethodPost, "/v1/wallet/disconnect", "")
	require.Equal(t, http.StatusOK, rec.Code)
	_, connected := h.wallet.Current()
	assert.False(t, connected)
}

func TestConnectWithoutProvider(t *testing.T) {
	h := newHarness(t, common.Address{})
	h.wallet.provider = false

	rec := h.do(t, http.MethodPost, "/v1/wallet/connect", `{"passphrase":"hunter22"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, trackererrors.CodeNoProvider, errorCode(t, rec).Code)

	rec = h.do(t, http.MethodGet, "/v1/wallet/events", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func seedAssets(h *harness) (uint64, uint64) {
	a := h.ledger.SeedAsset(contracts.AssetRecord{Sender: admin, Recipient: bob, Name: "Vaccines", Type: "medical", Location: "Lagos", Status: "pending", Distance: "12km"})
	b := h.ledger.SeedAsset(contracts.AssetRecord{Sender: admin, Recipient: alice, Name: "Laptops", Type: "electronics", Location: "Accra", Status: "delivering", Distance: "400km"})
	return a, b
}

func TestListAssetsWithSearch(t *testing.T) {
	h := newHarness(t, alice)
	seedAssets(h)

	list := decode[assetListResponse](t, h.do(t, http.MethodGet, "/v1/assets", ""))
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "Vaccines", list.Assets[0].Name)

	list = decode[assetListResponse](t, h.do(t, http.MethodGet, "/v1/assets?q=accra", ""))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Laptops", list.Assets[0].Name)
	assert.Equal(t, "accra", list.Query)

	list = decode[assetListResponse](t, h.do(t, http.MethodGet, "/v1/assets?q=nothing", ""))
	assert.Equal(t, 0, list.Count)
	assert.NotNil(t, list.Assets)
}

func TestAssetSummary(t *testing.T) {
	h := newHarness(t, alice)
	seedAssets(h)

	stats := decode[tracker.AssetStats](t, h.do(t, http.MethodGet, "/v1/assets/summary", ""))
	assert.Equal(t, 2, stats.Total)
	require.Len(t, stats.ByStatus, 3)
	assert.Equal(t, tracker.StatusCount{Status: "pending", Tone: tracker.ToneYellow, Count: 1}, stats.ByStatus[0])
}

func TestGetAsset(t *testing.T) {
	h := newHarness(t, alice)
	id, _ := seedAssets(h)

	rec := h.do(t, http.MethodGet, "/v1/assets/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[tracker.AssetDetail](t, rec)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Vaccines", got.Name)

	rec = h.do(t, http.MethodGet, "/v1/assets/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "99", errorCode(t, rec).Details["id"])

	rec = h.do(t, http.MethodGet, "/v1/assets/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorsCarryRequestID(t *testing.T) {
	h := newHarness(t, alice)
	req := httptest.NewRequest(http.MethodGet, "/v1/assets/99", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	h.h.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", errorCode(t, rec).TraceID)
}

func TestCreateAssetAsAdmin(t *testing.T) {
	h := newHarness(t, admin)

	rec := h.do(t, http.MethodPost, "/v1/assets", createBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[writeResponse](t, rec)
	assert.NotEmpty(t, resp.OperationID)
	assert.Equal(t, resp.OperationID, rec.Header().Get("X-Operation-Id"))
	require.NotNil(t, resp.Tx)
	assert.NotEmpty(t, resp.Tx.Hash)
	require.NotNil(t, resp.Asset)
	assert.Equal(t, "Vaccines", resp.Asset.Name)
	assert.Equal(t, bob.Hex(), resp.Asset.Recipient)
	assert.Zero(t, h.gw.inflight.count())
}

func TestWritesRequireAuthorization(t *testing.T) {
	h := newHarness(t, alice)
	seedAssets(h)

	rec := h.do(t, http.MethodPost, "/v1/assets", createBody)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = h.do(t, http.MethodPost, "/v1/assets/1/status", `{"status":"completed"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, h.ledger.Submissions)

	// an authorized user may manage assets but not users
	h.ledger.SeedUser(alice, "Alice")
	rec = h.do(t, http.MethodPost, "/v1/assets/1/status", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = h.do(t, http.MethodPost, "/v1/users", `{"address":"0x2222222222222222222222222222222222222222","name":"Bob"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 1, h.ledger.Submissions)
}

func TestWritesRequireConnection(t *testing.T) {
	h := newHarness(t, common.Address{})

	rec := h.do(t, http.MethodPost, "/v1/assets", createBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, trackererrors.CodeNotConnected, errorCode(t, rec).Code)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
	assert.Zero(t, h.ledger.Submissions)
}

func TestCreateAssetValidation(t *testing.T) {
	h := newHarness(t, admin)

	rec := h.do(t, http.MethodPost, "/v1/assets", strings.Replace(createBody, `"Lagos"`, `"L"`, 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "location", errorCode(t, rec).Details["field"])

	rec = h.do(t, http.MethodPost, "/v1/assets", `{"name":"x","unknown":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, h.ledger.Submissions)
}

func TestTransferAndStatusUpdate(t *testing.T) {
	h := newHarness(t, admin)
	seedAssets(h)

	rec := h.do(t, http.MethodPost, "/v1/assets/1/transfer",
		`{"recipient":"0x1111111111111111111111111111111111111111","recipientName":"Warehouse"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodPost, "/v1/assets/1/status", `{"status":"lost in customs"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[tracker.AssetDetail](t, h.do(t, http.MethodGet, "/v1/assets/1", ""))
	assert.Equal(t, alice.Hex(), got.Recipient)
	assert.Equal(t, "Warehouse", got.RecipientName)
	assert.Equal(t, "lost in customs", got.Status)
}

func TestRevertedWriteIsUnprocessable(t *testing.T) {
	h := newHarness(t, admin)
	seedAssets(h)
	h.ledger.RevertNext = true

	rec := h.do(t, http.MethodPost, "/v1/assets/1/status", `{"status":"completed"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := errorCode(t, rec)
	assert.Equal(t, trackererrors.CodeTxReverted, body.Code)
	assert.NotEmpty(t, body.Details["tx_hash"])
}

func TestConcurrentSameActionConflicts(t *testing.T) {
	h := newHarness(t, admin)
	seedAssets(h)
	h.ledger.HoldReceipts = true

	ctx, cancel := context.WithCancel(context.Background())
	var first *httptest.ResponseRecorder
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = h.doContext(t, ctx, http.MethodPost, "/v1/assets/1/status", `{"status":"completed"}`)
	}()
	require.Eventually(t, func() bool { return h.gw.inflight.count() == 1 }, 2*time.Second, 5*time.Millisecond)

	rec := h.do(t, http.MethodPost, "/v1/assets/1/transfer",
		`{"recipient":"0x1111111111111111111111111111111111111111","recipientName":"Warehouse"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, trackererrors.CodeConflict, errorCode(t, rec).Code)

	st := decode[statusResponse](t, h.do(t, http.MethodGet, "/v1/status", ""))
	require.Len(t, st.Inflight, 1)
	assert.Equal(t, "update asset 1", st.Inflight[0].Action)

	cancel()
	wg.Wait()
	assert.Equal(t, http.StatusGatewayTimeout, first.Code)
	assert.NotEmpty(t, errorCode(t, first).Details["tx_hash"])
	assert.Zero(t, h.gw.inflight.count())
	assert.Equal(t, 1, h.ledger.Submissions)
}

func TestAuthorizeThenRevokeUser(t *testing.T) {
	h := newHarness(t, admin)

	rec := h.do(t, http.MethodPost, "/v1/users", `{"address":"0x2222222222222222222222222222222222222222","name":"Bob"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	users := decode[userListResponse](t, h.do(t, http.MethodGet, "/v1/users?q=bob", ""))
	require.Equal(t, 1, users.Count)
	assert.Equal(t, bob.Hex(), users.Users[0].WalletAddress)

	rec = h.do(t, http.MethodDelete, "/v1/users/0x2222222222222222222222222222222222222222", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	users = decode[userListResponse](t, h.do(t, http.MethodGet, "/v1/users", ""))
	assert.Equal(t, 0, users.Count)
}

func TestRevokeAdminIsRefusedLocally(t *testing.T) {
	h := newHarness(t, admin)

	rec := h.do(t, http.MethodDelete, "/v1/users/"+strings.ToLower(admin.Hex()), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, h.ledger.Submissions)
}

func TestCORS(t *testing.T) {
	h := newHarness(t, admin)
	h.gw.cfg.AllowedOrigins = []string{"https://dash.example.com"}

	req := httptest.NewRequest(http.MethodOptions, "/v1/assets", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	rec := httptest.NewRecorder()
	h.h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://dash.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestForeignOriginCannotWriteByDefault(t *testing.T) {
	h := newHarness(t, admin)
	const body = `{"address":"0x3333333333333333333333333333333333333333","name":"Mallory"}`

	req := httptest.NewRequest(http.MethodOptions, "/v1/users", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	h.h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	for _, method := range []string{http.MethodPost, http.MethodDelete} {
		path := "/v1/users"
		if method == http.MethodDelete {
			path += "/0x3333333333333333333333333333333333333333"
		}
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", "https://evil.example")
		rec = httptest.NewRecorder()
		h.h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, method)
		assert.Equal(t, trackererrors.CodeForbidden, errorCode(t, rec).Code, method)
	}
	assert.Zero(t, h.ledger.Submissions)

	// the gateway's own pages may still write
	req = httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://"+req.Host)
	rec = httptest.NewRecorder()
	h.h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, h.ledger.Submissions)
}

func TestListedOriginMayWrite(t *testing.T) {
	h := newHarness(t, admin)
	h.gw.cfg.AllowedOrigins = []string{"https://dash.example.com"}

	req := httptest.NewRequest(http.MethodPost, "/v1/users",
		strings.NewReader(`{"address":"0x3333333333333333333333333333333333333333","name":"Mallory"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://dash.example.com")
	rec := httptest.NewRecorder()
	h.h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "https://dash.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
