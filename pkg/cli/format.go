package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/DeBrosOfficial/assettracker/pkg/tracker"
	"github.com/charmbracelet/lipgloss"
)

var toneColors = map[tracker.Tone]lipgloss.Color{
	tracker.ToneYellow: lipgloss.Color("#E5C07B"),
	tracker.ToneBlue:   lipgloss.Color("#61AFEF"),
	tracker.ToneGreen:  lipgloss.Color("#98C379"),
	tracker.ToneGray:   lipgloss.Color("#888888"),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// badge renders a status in the colour of its tone.
func (app *App) badge(status string) string {
	if app.noColor {
		return status
	}
	return lipgloss.NewStyle().
		Foreground(toneColors[tracker.StatusTone(status)]).
		Bold(true).
		Render(status)
}

func (app *App) title(s string) string {
	if app.noColor {
		return s
	}
	return titleStyle.Render(s)
}

func (app *App) dim(s string) string {
	if app.noColor {
		return s
	}
	return dimStyle.Render(s)
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
}

// status is the last column so colour codes do not disturb the alignment.
func (app *App) printAssets(assets []tracker.AssetSummary) {
	if len(assets) == 0 {
		fmt.Fprintln(app.Out, "No assets found")
		return
	}
	w := newTable(app.Out)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tLOCATION\tDISTANCE\tRECIPIENT\tSTATUS")
	for _, a := range assets {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Name, a.Type, a.Location, a.Distance, shortAddress(a.Recipient), app.badge(a.Status))
	}
	w.Flush()
	fmt.Fprintf(app.Out, "\nTotal: %d\n", len(assets))
}

func (app *App) printAsset(a *tracker.AssetDetail) {
	fmt.Fprintf(app.Out, "%s\n\n", app.title(fmt.Sprintf("Asset #%d: %s", a.ID, a.Name)))
	w := newTable(app.Out)
	fmt.Fprintf(w, "Status:\t%s\n", app.badge(a.Status))
	fmt.Fprintf(w, "Type:\t%s\n", a.Type)
	fmt.Fprintf(w, "Description:\t%s\n", a.Description)
	fmt.Fprintf(w, "Location:\t%s\n", a.Location)
	fmt.Fprintf(w, "Distance:\t%s\n", a.Distance)
	fmt.Fprintf(w, "Sender:\t%s\n", a.Sender)
	fmt.Fprintf(w, "Recipient:\t%s (%s)\n", a.RecipientName, a.Recipient)
	fmt.Fprintf(w, "Last updated:\t%s\n", formatTime(a.LastUpdated))
	w.Flush()
}

func (app *App) printUsers(users []tracker.User) {
	if len(users) == 0 {
		fmt.Fprintln(app.Out, "No authorized users")
		return
	}
	w := newTable(app.Out)
	fmt.Fprintln(w, "ID\tNAME\tADDRESS\tADDED")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.UserName, u.WalletAddress, formatTime(u.DateAddedTime))
	}
	w.Flush()
	fmt.Fprintf(app.Out, "\nTotal: %d\n", len(users))
}

func (app *App) printStats(stats tracker.AssetStats) {
	w := newTable(app.Out)
	fmt.Fprintln(w, "STATUS\tCOUNT")
	for _, s := range stats.ByStatus {
		fmt.Fprintf(w, "%s\t%d\n", app.badge(s.Status), s.Count)
	}
	w.Flush()
	fmt.Fprintf(app.Out, "\nTotal: %d\n", stats.Total)
}

func (app *App) printTx(action string, res *tracker.TxResult) {
	fmt.Fprintf(app.Out, "✅ %s\n", action)
	fmt.Fprintf(app.Out, "   %s\n", app.dim(fmt.Sprintf("tx %s (block %d, gas %d)", res.Hash, res.BlockNumber, res.GasUsed)))
}

func formatTime(t time.Time) string {
	if t.IsZero() || t.Unix() == 0 {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func shortAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}
