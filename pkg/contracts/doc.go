// Package contracts defines the interface contracts between the layers of the asset tracker.
//
// The tracker adapter depends only on these interfaces, never on the go-ethereum binding or the
// wallet provider directly, so either side can be replaced by a test double.
//
// Interfaces:
//   - AssetLedger: typed calls into the deployed AssetTracker contract
//   - SignerSource: call and transact options bound to the connected account
//   - AccountSource: the active wallet account
//
// The column and record types mirror the contract's return shapes before they are shaped into
// domain records.
package contracts
