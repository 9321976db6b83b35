package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"multibagger-scanner/internal/scanner/dto"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const maxMessageLen = 4090

// FormatScanMatches renders the matching records of a scan as Markdown messages, split so
// that no message exceeds the Telegram length limit. It returns nil when nothing matched.
func FormatScanMatches(resp *dto.ScanResponse) []string {
	if resp == nil || resp.Matches == 0 {
		return nil
	}

	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(fmt.Sprintf("🚀 *Multibagger Scan* 🚀\n%d of %d symbols matched\n\n", resp.Matches, resp.TotalScanned))
		} else {
			current.WriteString(fmt.Sprintf("---*Multibagger Scan Part %d*---\n\n", part))
		}
	}
	startNewPart()

	for i := range resp.Results {
		r := &resp.Results[i]
		if !r.MeetsCriteria {
			continue
		}
		entry := formatMatch(r)
		if current.Len()+len(entry) > maxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(entry)
	}
	messages = append(messages, current.String())
	return messages
}

func formatMatch(r *dto.ScanResultRecord) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 *%s* at $%.2f\n", tgbotapi.EscapeText(tgbotapi.ModeMarkdown, r.Symbol), r.Price))
	b.WriteString(fmt.Sprintf("Volume: %d | 7d: %s%% | 30d: %s%%\n", r.Volume, optional(r.PriceChange7d, 2), optional(r.PriceChange30d, 2)))
	b.WriteString(fmt.Sprintf("ROE: %s | ROCE: %s | D/E: %s\n", optional(r.ROE, 2), optional(r.ROCE, 2), optional(r.DebtEquity, 3)))
	b.WriteString(fmt.Sprintf("Rev growth: %s%% | P/E: %s | Mkt cap: %s\n\n", optional(r.RevenueGrowth, 2), optional(r.ForwardPE, 2), optional(r.MarketCap, 0)))
	return b.String()
}

func optional(v *float64, places int) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', places, 64)
}
