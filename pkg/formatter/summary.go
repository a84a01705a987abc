// Package formatter renders an extracted snapshot, as the JSON document
// written to disk and as the human-readable summary printed after a run.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kataras/gads-extractor/pkg/extractor"
)

// Summary returns the per-kind totals followed by one block per campaign.
func Summary(snap *extractor.Snapshot) string {
	var sb strings.Builder

	sb.WriteString("Summary:\n")
	sb.WriteString(fmt.Sprintf("  - %d campaigns\n", snap.Summary.TotalCampaigns))
	sb.WriteString(fmt.Sprintf("  - %d ad groups\n", snap.Summary.TotalAdGroups))
	sb.WriteString(fmt.Sprintf("  - %d ads\n", snap.Summary.TotalAds))
	sb.WriteString(fmt.Sprintf("  - %d keywords\n", snap.Summary.TotalKeywords))

	if len(snap.Campaigns) == 0 {
		return sb.String()
	}

	sb.WriteString("\nCampaigns:\n")
	for _, c := range snap.Campaigns {
		sb.WriteString(fmt.Sprintf("  %s %s (ID: %d)\n", statusIcon(c.Status), c.Name, c.ID))
		sb.WriteString(fmt.Sprintf("     Type: %s, Status: %s\n", c.Type, c.Status))
		sb.WriteString(fmt.Sprintf("     Impressions: %s\n", groupThousands(strconv.FormatInt(c.Metrics.Impressions, 10))))
		sb.WriteString(fmt.Sprintf("     Clicks: %s\n", groupThousands(strconv.FormatInt(c.Metrics.Clicks, 10))))
		sb.WriteString(fmt.Sprintf("     Cost: $%s\n", formatMoney(c.Metrics.Cost)))
		sb.WriteString(fmt.Sprintf("     CTR: %s%%\n", strconv.FormatFloat(c.Metrics.CTR, 'f', 2, 64)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func statusIcon(status string) string {
	if status == "ENABLED" {
		return "🟢"
	}
	return "🔴"
}

// formatMoney renders v with two decimals and grouped thousands.
func formatMoney(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")
	return groupThousands(whole) + "." + frac
}

// groupThousands inserts commas into a decimal integer string, keeping a leading sign.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var sb strings.Builder
	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sign + sb.String()
}
