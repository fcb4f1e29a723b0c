package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DeBrosOfficial/assettracker/pkg/contracts"
	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssetInput() NewAsset {
	return NewAsset{
		Recipient:     bob.Hex(),
		RecipientName: "Clinic A",
		Name:          "Vaccines",
		Description:   "cold chain",
		Type:          "medical",
		Location:      "Lagos",
		Status:        StatusPending,
		Distance:      "12km",
	}
}

func TestCreateAssetThenUpdateStatus(t *testing.T) {
	a, ledger, _ := newAdapter(t, alice)
	ctx := context.Background()

	created, res, err := a.CreateAsset(ctx, newAssetInput())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, res.Hash)
	assert.NotZero(t, res.BlockNumber)
	assert.Equal(t, alice.Hex(), created.Sender)

	before, err := a.GetAsset(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, before.Status)

	ledger.Now = func() time.Time { return time.Unix(1800000000, 0) }
	_, err = a.UpdateAssetStatus(ctx, created.ID, StatusDelivering)
	require.NoError(t, err)

	after, err := a.GetAsset(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivering, after.Status)

	// every other field is unchanged
	after.Status = before.Status
	after.LastUpdated, after.LastUpdatedTimeStamp = before.LastUpdated, before.LastUpdatedTimeStamp
	assert.Equal(t, before, after)
}

func TestTransferOwnershipChangesOnlyCustody(t *testing.T) {
	a, ledger, _ := newAdapter(t, alice)
	ctx := context.Background()
	id := ledger.SeedAsset(contracts.AssetRecord{
		Sender: alice, Recipient: bob, RecipientName: "Clinic A", Name: "Vaccines",
		Description: "cold chain", Type: "medical", Location: "Lagos", Status: "pending", Distance: "12km",
	})

	before, err := a.GetAsset(ctx, id)
	require.NoError(t, err)

	_, err = a.TransferOwnership(ctx, id, carol.Hex(), "Clinic B")
	require.NoError(t, err)

	after, err := a.GetAsset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, carol.Hex(), after.Recipient)
	assert.Equal(t, "Clinic B", after.RecipientName)
	assert.Equal(t, before.Sender, after.Sender)

	after.Recipient, after.RecipientName = before.Recipient, before.RecipientName
	after.LastUpdated, after.LastUpdatedTimeStamp = before.LastUpdated, before.LastUpdatedTimeStamp
	assert.Equal(t, before, after)
}

func TestUpdateStatusAcceptsAnyValue(t *testing.T) {
	a, ledger, _ := newAdapter(t, alice)
	id := ledger.SeedAsset(contracts.AssetRecord{Sender: alice, Recipient: bob, Name: "Crate", Status: "pending"})

	_, err := a.UpdateAssetStatus(context.Background(), id, "held at customs")
	require.NoError(t, err)
	got, err := a.GetAsset(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "held at customs", got.Status)
	assert.Equal(t, ToneGray, StatusTone(got.Status))
}

func TestWritesStoreValuesAsEntered(t *testing.T) {
	a, _, _ := newAdapter(t, alice)
	ctx := context.Background()

	in := newAssetInput()
	in.Description = "  infusion pump\n"
	created, _, err := a.CreateAsset(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, created)

	_, err = a.UpdateAssetStatus(ctx, created.ID, " on hold ")
	require.NoError(t, err)

	got, err := a.GetAsset(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, " on hold ", got.Status)
	assert.Equal(t, "  infusion pump\n", got.Description)
}

func TestCreateAssetValidation(t *testing.T) {
	cases := map[string]func(*NewAsset){
		"recipient":     func(n *NewAsset) { n.Recipient = "0x1234" },
		"zero":          func(n *NewAsset) { n.Recipient = "0x0000000000000000000000000000000000000000" },
		"no prefix":     func(n *NewAsset) { n.Recipient = "2222222222222222222222222222222222222222" },
		"recipientName": func(n *NewAsset) { n.RecipientName = " A " },
		"name":          func(n *NewAsset) { n.Name = "V" },
		"description":   func(n *NewAsset) { n.Description = "  " },
		"type":          func(n *NewAsset) { n.Type = "" },
		"location":      func(n *NewAsset) { n.Location = "L" },
		"status":        func(n *NewAsset) { n.Status = "" },
		"distance":      func(n *NewAsset) { n.Distance = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			a, ledger, _ := newAdapter(t, alice)
			in := newAssetInput()
			mutate(&in)
			_, _, err := a.CreateAsset(context.Background(), in)
			require.Error(t, err)
			assert.True(t, trackererrors.IsValidation(err), "got %v", err)
			assert.Zero(t, ledger.Submissions)
		})
	}
}

func TestWriteValidationRejectsBeforeSubmit(t *testing.T) {
	a, ledger, _ := newAdapter(t, admin)
	ctx := context.Background()

	_, err := a.UpdateAssetStatus(ctx, 1, " ")
	assert.True(t, trackererrors.IsValidation(err))
	_, err = a.TransferOwnership(ctx, 1, "not-an-address", "Clinic B")
	assert.True(t, trackererrors.IsValidation(err))
	_, err = a.TransferOwnership(ctx, 1, carol.Hex(), "B")
	assert.True(t, trackererrors.IsValidation(err))
	_, err = a.AuthorizeUser(ctx, alice.Hex(), "A")
	assert.True(t, trackererrors.IsValidation(err))
	_, err = a.RevokeUser(ctx, "0xabc")
	assert.True(t, trackererrors.IsValidation(err))

	assert.Zero(t, ledger.Submissions)
}

func TestRevertedTransaction(t *testing.T) {
	a, ledger, _ := newAdapter(t, alice)
	id := ledger.SeedAsset(contracts.AssetRecord{Sender: alice, Recipient: bob, Name: "Crate", Status: "pending"})
	ledger.RevertNext = true

	_, err := a.UpdateAssetStatus(context.Background(), id, "completed")
	require.Error(t, err)
	assert.True(t, trackererrors.IsOnChainRejection(err))
	assert.Equal(t, trackererrors.CodeTxReverted, trackererrors.GetErrorCode(err))

	got, err := a.GetAsset(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status, "reverted write must not change state")
}

func TestSubmissionRejected(t *testing.T) {
	a, ledger, _ := newAdapter(t, alice)
	ledger.SubmitErr = errors.New("insufficient funds for gas")

	_, _, err := a.CreateAsset(context.Background(), newAssetInput())
	require.Error(t, err)
	assert.Equal(t, trackererrors.CodeTxRejected, trackererrors.GetErrorCode(err))
}

func TestConfirmationTimeoutNamesTransaction(t *testing.T) {
	a, ledger, _ := newAdapter(t, alice)
	id := ledger.SeedAsset(contracts.AssetRecord{Sender: alice, Recipient: bob, Name: "Crate", Status: "pending"})
	ledger.HoldReceipts = true

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := a.UpdateAssetStatus(ctx, id, "completed")
	require.Error(t, err)
	assert.True(t, trackererrors.IsTimeout(err))

	var timeout *trackererrors.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.NotEmpty(t, timeout.TxHash)
	assert.Equal(t, 1, ledger.Submissions)
}

func TestAuthorizeThenRevoke(t *testing.T) {
	a, ledger, _ := newAdapter(t, admin)
	ctx := context.Background()

	_, err := a.AuthorizeUser(ctx, bob.Hex(), "Alice")
	require.NoError(t, err)

	users, err := a.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, bob.Hex(), users[0].WalletAddress)
	assert.Equal(t, "Alice", users[0].UserName)

	_, err = a.RevokeUser(ctx, bob.Hex())
	require.NoError(t, err)

	users, err = a.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Equal(t, 2, ledger.Submissions)
}

func TestRevokeAdminNeverSubmits(t *testing.T) {
	a, ledger, _ := newAdapter(t, admin)
	ledger.SeedUser(admin, "Admin")

	_, err := a.RevokeUser(context.Background(), "0x687d70b3e77889689951208f2db2b2b4927dbf05")
	require.Error(t, err)
	assert.True(t, trackererrors.IsForbidden(err))
	assert.Zero(t, ledger.Submissions)
	assert.Zero(t, ledger.Reads, "admin is refused before any read")
}

func TestRevokeUnauthorizedNeverSubmits(t *testing.T) {
	a, ledger, _ := newAdapter(t, admin)

	_, err := a.RevokeUser(context.Background(), carol.Hex())
	require.Error(t, err)
	assert.True(t, trackererrors.IsForbidden(err))
	assert.Contains(t, err.Error(), "not an authorized user")
	assert.Zero(t, ledger.Submissions)
}
