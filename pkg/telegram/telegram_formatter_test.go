package telegram

import (
	"fmt"
	"strings"
	"testing"

	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatScanMatches_NoMatches(t *testing.T) {
	assert.Nil(t, FormatScanMatches(nil))
	assert.Nil(t, FormatScanMatches(&dto.ScanResponse{TotalScanned: 3}))
}

func TestFormatScanMatches_OnlyMatchingRecords(t *testing.T) {
	resp := &dto.ScanResponse{
		TotalScanned: 2,
		Matches:      1,
		Results: []dto.ScanResultRecord{
			{Symbol: "BRK_B", Price: 410.5, Volume: 2_000_000, ROE: utils.ToPointer(18.2), MeetsCriteria: true},
			{Symbol: "MSFT", Price: 300, Volume: 900},
		},
	}

	messages := FormatScanMatches(resp)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "1 of 2 symbols matched")
	assert.Contains(t, messages[0], `*BRK\_B* at $410.50`)
	assert.Contains(t, messages[0], "ROE: 18.20")
	assert.Contains(t, messages[0], "P/E: n/a")
	assert.NotContains(t, messages[0], "MSFT")
}

func TestFormatScanMatches_SplitsLongMessages(t *testing.T) {
	resp := &dto.ScanResponse{}
	for i := 0; i < 60; i++ {
		resp.Results = append(resp.Results, dto.ScanResultRecord{
			Symbol:        fmt.Sprintf("SYM%d", i),
			Price:         10,
			Volume:        1_000_000,
			MeetsCriteria: true,
		})
	}
	resp.Matches = len(resp.Results)
	resp.TotalScanned = len(resp.Results)

	messages := FormatScanMatches(resp)
	require.Greater(t, len(messages), 1)
	for _, m := range messages {
		assert.LessOrEqual(t, len(m), maxMessageLen)
	}
	assert.True(t, strings.HasPrefix(messages[1], "---*Multibagger Scan Part 2*---"))
	assert.Contains(t, strings.Join(messages, ""), "SYM59")
}
