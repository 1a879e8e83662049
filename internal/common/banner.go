package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 64
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` 8888888 888b    888  .d8888b.   .d88888b.  888b     d888 8888888888`,
		`   888   8888b   888 d88P  Y88b d88P" "Y88b 8888b   d8888 888`,
		`   888   88888b  888 888        888     888 88888b.d88888 888`,
		`   888   888Y88b 888 888        888     888 888Y88888P888 8888888`,
		`   888   888 Y88b888 888        888     888 888 Y888P 888 888`,
		`   888   888  Y88888 888    888 888     888 888  Y8P  888 888`,
		`   888   888   Y8888 Y88b  d88P Y88b. .d88P 888   "   888 888`,
		` 8888888 888    Y888  "Y8888P"   "Y88888P"  888       888 8888888888`,
	}

	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n%s  Income Investing Portfolio Snapshot%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)

	kvPad := 16
	kvLines := [][2]string{
		{"Version", GetVersion()},
		{"Build", GetBuild()},
		{"Commit", GetGitCommit()},
		{"Symbols", fmt.Sprintf("%d", len(config.Symbols))},
		{"Investment", FormatMoney(config.InvestmentPerSymbol)},
		{"Start Date", config.StartDate},
		{"Report", config.Report.OutputPath},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(os.Stderr, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n")
}
