package tracker

import "strings"

// Status values the dashboard recognizes. Status is an open string; anything else is valid.
const (
	StatusPending    = "pending"
	StatusDelivering = "delivering"
	StatusCompleted  = "completed"
)

// KnownStatuses lists the recognized statuses in lifecycle order.
var KnownStatuses = []string{StatusPending, StatusDelivering, StatusCompleted}

// Tone is the presentation colour of a status badge.
type Tone string

const (
	ToneYellow Tone = "yellow"
	ToneBlue   Tone = "blue"
	ToneGreen  Tone = "green"
	ToneGray   Tone = "gray"
)

// StatusTone maps a status to its badge colour; unknown statuses are neutral.
func StatusTone(status string) Tone {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusPending:
		return ToneYellow
	case StatusDelivering:
		return ToneBlue
	case StatusCompleted:
		return ToneGreen
	default:
		return ToneGray
	}
}
