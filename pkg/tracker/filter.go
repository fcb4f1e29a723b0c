package tracker

import (
	"sort"
	"strings"
)

// FilterAssets keeps assets whose name, type, sender, recipient or location contains query,
// ignoring case. An empty query keeps everything.
func FilterAssets(assets []AssetSummary, query string) []AssetSummary {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return assets
	}
	out := make([]AssetSummary, 0, len(assets))
	for _, as := range assets {
		for _, field := range []string{as.Name, as.Type, as.Sender, as.Recipient, as.Location} {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, as)
				break
			}
		}
	}
	return out
}

// FilterUsers keeps users whose name or address contains query, ignoring case.
func FilterUsers(users []User, query string) []User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return users
	}
	out := make([]User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.UserName), q) || strings.Contains(strings.ToLower(u.WalletAddress), q) {
			out = append(out, u)
		}
	}
	return out
}

// StatusCount is the number of assets in one status.
type StatusCount struct {
	Status string `json:"status"`
	Tone   Tone   `json:"tone"`
	Count  int    `json:"count"`
}

// AssetStats summarizes a list of assets by status.
type AssetStats struct {
	Total    int           `json:"total"`
	ByStatus []StatusCount `json:"byStatus"`
}

// Summarize counts assets per status. Known statuses come first in lifecycle order,
// then any other status alphabetically.
func Summarize(assets []AssetSummary) AssetStats {
	counts := make(map[string]int)
	for _, as := range assets {
		counts[as.Status]++
	}

	stats := AssetStats{Total: len(assets)}
	for _, s := range KnownStatuses {
		stats.ByStatus = append(stats.ByStatus, StatusCount{Status: s, Tone: StatusTone(s), Count: counts[s]})
		delete(counts, s)
	}
	others := make([]string, 0, len(counts))
	for s := range counts {
		others = append(others, s)
	}
	sort.Strings(others)
	for _, s := range others {
		stats.ByStatus = append(stats.ByStatus, StatusCount{Status: s, Tone: StatusTone(s), Count: counts[s]})
	}
	return stats
}
