package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

const bannerText = `
     ██╗ ██████╗ ██████╗ ███╗   ███╗ █████╗ ██████╗
     ██║██╔═══██╗██╔══██╗████╗ ████║██╔══██╗██╔══██╗
     ██║██║   ██║██████╔╝██╔████╔██║███████║██████╔╝
██   ██║██║   ██║██╔══██╗██║╚██╔╝██║██╔══██║██╔═══╝
╚█████╔╝╚██████╔╝██████╔╝██║ ╚═╝ ██║██║  ██║██║
 ╚════╝  ╚═════╝ ╚═════╝ ╚═╝     ╚═╝╚═╝  ╚═╝╚═╝
 @fr4nk3nst1ner
`

// ColorizeText fades the text between two random colors
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	endColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	chars := strings.Split(text, "")
	half := len(chars) / 2
	if half == 0 {
		half = 1
	}

	var b strings.Builder
	for i, ch := range chars {
		b.WriteString(startColor.Fade(0, float32(len(chars)), float32(i%half), endColor).Sprint(ch))
	}
	return b.String()
}

// PrintBanner displays the application banner
func PrintBanner(silence bool) {
	if !silence {
		fmt.Println(ColorizeText(bannerText))
	}
}

// Summary is what the server reports once the data file is loaded
type Summary struct {
	DataPath string
	Read     int
	Kept     int
	Dropped  int
	Cities   int
	Variant  string
	PageSize int
	Session  string
	Addr     string
	APIAuth  bool
}

// SummaryRows lays the summary out as label/value pairs
func SummaryRows(s Summary) [][]string {
	auth := "public"
	if s.APIAuth {
		auth = "basic auth"
	}
	return [][]string{
		{"Data file", s.DataPath},
		{"Rows read", humanize.Comma(int64(s.Read))},
		{"Listings", humanize.Comma(int64(s.Kept))},
		{"Dropped", humanize.Comma(int64(s.Dropped))},
		{"Cities", humanize.Comma(int64(s.Cities))},
		{"Layout", fmt.Sprintf("%s, %d per page", s.Variant, s.PageSize)},
		{"Sessions", s.Session},
		{"API", auth},
		{"Listening", s.Addr},
	}
}

// PrintSummary renders the startup summary as a table
func PrintSummary(s Summary) error {
	if s.Dropped > 0 {
		pterm.Warning.Printfln("%s incomplete rows were skipped", humanize.Comma(int64(s.Dropped)))
	}
	return pterm.DefaultTable.WithData(SummaryRows(s)).Render()
}
