// Package binding is the typed go-ethereum binding of the deployed AssetTracker contract.
package binding

import (
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// AssetTrackerMetaData contains the ABI of the deployed AssetTracker contract.
var AssetTrackerMetaData = &bind.MetaData{
	ABI: `[{"inputs":[{"internalType":"string","name":"_userName","type":"string"}],"stateMutability":"nonpayable","type":"constructor"},{"inputs":[{"internalType":"uint256","name":"","type":"uint256"}],"name":"assetId","outputs":[{"internalType":"address","name":"assetSender","type":"address"},{"internalType":"address","name":"assetRecipient","type":"address"},{"internalType":"string","name":"assetRecipientName","type":"string"},{"internalType":"string","name":"assetName","type":"string"},{"internalType":"string","name":"assetDescription","type":"string"},{"internalType":"string","name":"assetType","type":"string"},{"internalType":"string","name":"assetLocation","type":"string"},{"internalType":"string","name":"assetStatus","type":"string"},{"internalType":"string","name":"assetDistanceTravel","type":"string"},{"internalType":"uint256","name":"lastUpdatedTimeStamp","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"address","name":"_userAddress","type":"address"},{"internalType":"string","name":"_userName","type":"string"}],"name":"authorizeAndCreateNewUser","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"address","name":"","type":"address"}],"name":"authorizedUser","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"address","name":"_assetRecipient","type":"address"},{"internalType":"string","name":"_assetRecipientName","type":"string"},{"internalType":"string","name":"_assetName","type":"string"},{"internalType":"string","name":"_assetDescription","type":"string"},{"internalType":"string","name":"_assetType","type":"string"},{"internalType":"string","name":"_assetLocation","type":"string"},{"internalType":"string","name":"_assetStatus","type":"string"},{"internalType":"string","name":"_assetDistanceTravel","type":"string"}],"name":"createAssetTracking","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[],"name":"getAllAssetDetails","outputs":[{"internalType":"uint256[]","name":"ids","type":"uint256[]"},{"internalType":"address[]","name":"senders","type":"address[]"},{"internalType":"address[]","name":"recipients","type":"address[]"},{"internalType":"string[]","name":"names","type":"string[]"},{"internalType":"string[]","name":"types","type":"string[]"},{"internalType":"string[]","name":"locations","type":"string[]"},{"internalType":"string[]","name":"statuses","type":"string[]"},{"internalType":"string[]","name":"distances","type":"string[]"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"getAllUserDetails","outputs":[{"internalType":"uint256[]","name":"userIds","type":"uint256[]"},{"internalType":"address[]","name":"walletAddresses","type":"address[]"},{"internalType":"string[]","name":"userNames","type":"string[]"},{"internalType":"uint256[]","name":"timestamps","type":"uint256[]"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"uint256","name":"_assetID","type":"uint256"}],"name":"getAssetSpecificDetails","outputs":[{"internalType":"address","name":"","type":"address"},{"internalType":"address","name":"","type":"address"},{"internalType":"string","name":"","type":"string"},{"internalType":"string","name":"","type":"string"},{"internalType":"string","name":"","type":"string"},{"internalType":"string","name":"","type":"string"},{"internalType":"string","name":"","type":"string"},{"internalType":"string","name":"","type":"string"},{"internalType":"string","name":"","type":"string"},{"internalType":"uint256","name":"","type":"uint256"},{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"address","name":"user","type":"address"}],"name":"revokeUserAuth","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"uint256","name":"_assetId","type":"uint256"},{"internalType":"address","name":"_newRecipient","type":"address"},{"internalType":"string","name":"_newRecipientName","type":"string"}],"name":"transferAssetTrackingOwnership","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"uint256","name":"_assetId","type":"uint256"},{"internalType":"string","name":"_newStatus","type":"string"}],"name":"updateAssetStatus","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"uint256","name":"","type":"uint256"}],"name":"userId","outputs":[{"internalType":"address","name":"userWalletAddress","type":"address"},{"internalType":"string","name":"userName","type":"string"},{"internalType":"uint256","name":"dateAddedTimeStamp","type":"uint256"}],"stateMutability":"view","type":"function"}]`,
}
