package cmd

import (
	"fmt"
	"time"

	"logi-migrate/internal/engine"

	"github.com/gosuri/uiprogress"
	"github.com/pterm/pterm"
)

// startBar starts a progress display of its own with one bar. The caller stops it;
// every phase of a job gets a new one.
func startBar(total int, label string) (*uiprogress.Progress, *uiprogress.Bar) {
	if total <= 0 {
		total = 1
	}
	p := uiprogress.New()
	bar := p.AddBar(total).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return label + ": "
	})
	p.Start()
	return p, bar
}

func advance(bar *uiprogress.Bar, n int) {
	_ = bar.Set(bar.Current() + n)
}

func printSummary(title string, results []engine.Result, start time.Time) {
	fmt.Printf("\n📊 %s:\n", title)
	lines, total := engine.Summary(results)
	for _, l := range lines {
		fmt.Println(l)
	}
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Total Rows: %d\n", total)
	pterm.Success.Printfln("Done! Time Elapsed: %s", time.Since(start).Round(time.Millisecond))
}
