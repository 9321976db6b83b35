package main

import (
	"bytes"
	"testing"

	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/pkg/utils"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	for _, tf := range thresholdFlags {
		fs.Float64(tf.name, 0, tf.usage)
	}
	return fs
}

func TestBuildCriteria(t *testing.T) {
	t.Cleanup(func() { preset = "" })

	t.Run("only changed flags are applied", func(t *testing.T) {
		preset = ""
		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"--min-volume", "500000", "--max-forward-pe", "0"}))

		criteria, err := buildCriteria(fs)
		require.NoError(t, err)
		require.NotNil(t, criteria.MinVolume)
		assert.Equal(t, 500000.0, *criteria.MinVolume)
		require.NotNil(t, criteria.MaxForwardPE)
		assert.Equal(t, 0.0, *criteria.MaxForwardPE)
		assert.Nil(t, criteria.MinROE)
	})

	t.Run("flags override the preset", func(t *testing.T) {
		preset = presetMultibagger
		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"--min-roe", "25"}))

		criteria, err := buildCriteria(fs)
		require.NoError(t, err)
		assert.Equal(t, 25.0, *criteria.MinROE)
		assert.Equal(t, 1_000_000.0, *criteria.MinVolume)
		assert.Equal(t, 0.3, *criteria.MaxDebtToEquity)
	})

	t.Run("unknown preset", func(t *testing.T) {
		preset = "moonshot"
		_, err := buildCriteria(newFlagSet())
		assert.EqualError(t, err, `unknown preset "moonshot"`)
	})
}

func TestPrintResults(t *testing.T) {
	color.NoColor = true
	resp := &dto.ScanResponse{
		TotalScanned: 2,
		Matches:      1,
		Results: []dto.ScanResultRecord{
			{Symbol: "AAPL", Price: 109, Volume: 1500, PriceChange7d: utils.ToPointer(5.83), DebtEquity: utils.ToPointer(0.123), MeetsCriteria: true},
			{Symbol: "MSFT", Price: 300.5, Volume: 900},
		},
	}

	var buf bytes.Buffer
	printResults(&buf, resp, false)
	out := buf.String()
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "5.83")
	assert.Contains(t, out, "0.123")
	assert.Contains(t, out, "MSFT")
	assert.Contains(t, out, "2 scanned, 1 matched")

	buf.Reset()
	printResults(&buf, resp, true)
	assert.NotContains(t, buf.String(), "MSFT")
}

func TestThresholdFlags_PriceChangeIsSevenDay(t *testing.T) {
	for _, tf := range thresholdFlags {
		if tf.name != "min-price-change" {
			continue
		}
		assert.Contains(t, tf.usage, "7-day")

		var criteria dto.ScanCriteria
		v := 4.0
		*tf.field(&criteria) = &v
		require.NotNil(t, criteria.MinPriceChangePercent)
		return
	}
	t.Fatal("min-price-change flag is missing")
}
