package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/jsclass/scenario"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fixturerunner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", "scenario/testdata", "directory of YAML fixtures")
	filter := fs.String("filter", "", "filter fixtures by path substring")
	limit := fs.Int("limit", 0, "maximum number of fixtures to run (0 = all)")
	verbose := fs.Bool("v", false, "verbose output (print each result as it completes)")
	timeout := fs.Duration("timeout", 5*time.Second, "per-fixture time limit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if _, err := os.Stat(*dir); os.IsNotExist(err) {
		fmt.Fprintf(stderr, "Error: fixture directory not found at %s\n", *dir)
		return 1
	}

	results, summary, err := scenario.Run(scenario.RunConfig{
		Dir:      *dir,
		Filter:   *filter,
		Limit:    *limit,
		Timeout:  *timeout,
		Verbose:  *verbose,
		Progress: stdout,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if !*verbose {
		for _, r := range results {
			line := fmt.Sprintf("%s %s", r.Result, r.Path)
			if r.Message != "" {
				line += " " + r.Message
			}
			fmt.Fprintln(stdout, styleFor(r.Result).Render(line))
		}
	}

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, titleStyle.Render("=== Fixture Summary ==="))
	fmt.Fprintf(stdout, "Total:   %d\n", summary.Total)
	fmt.Fprintf(stdout, "Passed:  %s\n", passStyle.Render(fmt.Sprint(summary.Passed)))
	fmt.Fprintf(stdout, "Failed:  %s\n", failStyle.Render(fmt.Sprint(summary.Failed)))
	fmt.Fprintf(stdout, "Skipped: %d\n", summary.Skipped)
	fmt.Fprintf(stdout, "Errors:  %s\n", failStyle.Render(fmt.Sprint(summary.Errors)))
	if ran := summary.Total - summary.Skipped; ran > 0 {
		fmt.Fprintf(stdout, "Pass rate: %.1f%% (%d/%d excluding skipped)\n",
			float64(summary.Passed)/float64(ran)*100, summary.Passed, ran)
	}
	fmt.Fprintln(stdout, mutedStyle.Render("Elapsed: "+summary.Elapsed.String()))

	if summary.Failed > 0 || summary.Errors > 0 {
		return 1
	}
	return 0
}

func styleFor(r scenario.Result) lipgloss.Style {
	switch r {
	case scenario.Pass:
		return passStyle
	case scenario.Skip:
		return mutedStyle
	}
	return failStyle
}
