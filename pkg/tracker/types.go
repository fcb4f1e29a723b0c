// Package tracker shapes contract calls into asset and user records, submits writes and
// derives the authorization of the active account.
package tracker

import (
	"time"
)

// AssetSummary is an asset as returned by the bulk list. It carries no recipient name,
// description or timestamp; fetch the AssetDetail for those.
type AssetSummary struct {
	ID        uint64 `json:"id"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Location  string `json:"location"`
	Status    string `json:"status"`
	Distance  string `json:"distance"`
}

// AssetDetail is a fully populated asset as returned by a fetch by id.
type AssetDetail struct {
	ID                   uint64    `json:"id"`
	Sender               string    `json:"sender"`
	Recipient            string    `json:"recipient"`
	RecipientName        string    `json:"recipientName"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Type                 string    `json:"type"`
	Location             string    `json:"location"`
	Status               string    `json:"status"`
	Distance             string    `json:"distance"`
	LastUpdatedTimeStamp uint64    `json:"lastUpdatedTimeStamp"`
	LastUpdated          time.Time `json:"lastUpdated"`
}

// Summary returns the list-shaped view of the detail.
func (d *AssetDetail) Summary() AssetSummary {
	return AssetSummary{
		ID:        d.ID,
		Sender:    d.Sender,
		Recipient: d.Recipient,
		Name:      d.Name,
		Type:      d.Type,
		Location:  d.Location,
		Status:    d.Status,
		Distance:  d.Distance,
	}
}

// User is an authorized account.
type User struct {
	ID            uint64    `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	UserName      string    `json:"userName"`
	DateAdded     uint64    `json:"dateAdded"`
	DateAddedTime time.Time `json:"dateAddedTime"`
}

// NewAsset holds the fields of an asset to create, in the contract's argument order.
type NewAsset struct {
	Recipient     string `json:"recipient"`
	RecipientName string `json:"recipientName"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Location      string `json:"location"`
	Status        string `json:"status"`
	Distance      string `json:"distance"`
}

// TxResult describes a confirmed transaction.
type TxResult struct {
	Hash        string `json:"hash"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
}

// Session is the authorization state of the active account.
type Session struct {
	Account        string `json:"account,omitempty"`
	Connected      bool   `json:"connected"`
	Admin          bool   `json:"admin"`
	AuthorizedUser bool   `json:"authorizedUser"`
}

// CanManageAssets reports whether the session may create or modify assets.
func (s Session) CanManageAssets() bool {
	return s.Connected && (s.Admin || s.AuthorizedUser)
}
