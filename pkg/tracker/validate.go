package tracker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/ethereum/go-ethereum/common"
)

// Minimum lengths enforced before a write is submitted.
const (
	minNameLength = 2
	minTextLength = 1
)

// ParseAddress accepts a 0x-prefixed 20-byte hex address that is not the zero address.
func ParseAddress(field, value string) (common.Address, error) {
	value = strings.TrimSpace(value)
	if len(value) != 2+2*common.AddressLength || (!strings.HasPrefix(value, "0x") && !strings.HasPrefix(value, "0X")) {
		return common.Address{}, trackererrors.NewValidationError(field, "must be a 0x-prefixed 40 hex character address", value)
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, trackererrors.NewValidationError(field, "not a hex address", value)
	}
	addr := common.HexToAddress(value)
	if addr == (common.Address{}) {
		return common.Address{}, trackererrors.NewValidationError(field, "must not be the zero address", value)
	}
	return addr, nil
}

// requireLength checks the trimmed length but returns value unchanged: statuses and free
// text are stored exactly as entered.
func requireLength(field, value string, min int) (string, error) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
		if min == 1 {
			return "", trackererrors.NewValidationError(field, "is required", value)
		}
		return "", trackererrors.NewValidationError(field, fmt.Sprintf("must be at least %d characters", min), value)
	}
	return value, nil
}

// validated is a checked NewAsset with a parsed recipient.
type validated struct {
	recipient common.Address
	NewAsset
}

func validateNewAsset(in NewAsset) (*validated, error) {
	recipient, err := ParseAddress("recipient", in.Recipient)
	if err != nil {
		return nil, err
	}
	out := &validated{recipient: recipient}
	out.Recipient = recipient.Hex()

	checks := []struct {
		field string
		value string
		min   int
		dst   *string
	}{
		{"recipientName", in.RecipientName, minNameLength, &out.RecipientName},
		{"name", in.Name, minNameLength, &out.Name},
		{"description", in.Description, minTextLength, &out.Description},
		{"type", in.Type, minTextLength, &out.Type},
		{"location", in.Location, minNameLength, &out.Location},
		{"status", in.Status, minTextLength, &out.Status},
		{"distance", in.Distance, minTextLength, &out.Distance},
	}
	for _, c := range checks {
		v, err := requireLength(c.field, c.value, c.min)
		if err != nil {
			return nil, err
		}
		*c.dst = v
	}
	return out, nil
}
