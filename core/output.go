package core

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

type listOutput struct {
	Games      []*Game  `json:"games"`
	Count      int      `json:"count"`
	Libraries  []string `json:"libraries"`
	Errors     []string `json:"errors,omitempty"`
	Duplicates []*Game  `json:"duplicates,omitempty"`
}

func newListOutput(games []*Game, report *Report, withErrors bool) *listOutput {
	out := &listOutput{
		Games:     games,
		Count:     len(games),
		Libraries: report.Libraries,
	}
	if out.Games == nil {
		out.Games = []*Game{}
	}
	if withErrors {
		if report.RegistryErr != nil {
			out.Errors = append(out.Errors, report.RegistryErr.Error())
		}
		for _, e := range report.ManifestErrors {
			out.Errors = append(out.Errors, e.Error())
		}
		out.Duplicates = report.Catalog.Duplicates()
	}
	return out
}

// gameDetails is a Game plus what can be learned from its install folder.
type gameDetails struct {
	*Game
	Platform  Platform `json:"platform,omitempty"`
	Launchers []string `json:"launchers,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatSize(g *Game) string {
	if g.SizeOnDisk == nil {
		return "-"
	}
	return humanize.Bytes(*g.SizeOnDisk)
}

func writeGameTable(w io.Writer, games []*Game) error {
	if len(games) == 0 {
		_, err := fmt.Fprintln(w, "No games found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "APPID\tNAME\tSTATE\tSIZE\tLIBRARY")
	for _, g := range games {
		name := g.DisplayName()
		if r := []rune(name); len(r) > 48 {
			name = string(r[:45]) + "..."
		}
		fmt.Fprintf(tw, "%d\t%s\t%v\t%s\t%s\n", g.AppID, name, g.State, formatSize(g), g.Library)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nTotal: %d game(s)\n", len(games))
	return err
}

func writeGameDetails(w io.Writer, d *gameDetails) error {
	g := d.Game
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "App ID:\t%d\n", g.AppID)
	fmt.Fprintf(tw, "Name:\t%s\n", g.DisplayName())
	fmt.Fprintf(tw, "State:\t%v (flags %d)\n", g.State, g.StateFlags)
	fmt.Fprintf(tw, "Size:\t%s\n", formatSize(g))
	if g.BuildID != "" {
		fmt.Fprintf(tw, "Build:\t%s\n", g.BuildID)
	}
	if !g.LastUpdated.IsZero() {
		fmt.Fprintf(tw, "Updated:\t%s (%s)\n", g.LastUpdated.Format("2006-01-02 15:04"), humanize.Time(g.LastUpdated))
	}
	fmt.Fprintf(tw, "Library:\t%s\n", g.Library)
	fmt.Fprintf(tw, "Install path:\t%s\n", g.InstallPath())
	fmt.Fprintf(tw, "Manifest:\t%s\n", g.ManifestPath)
	if d.Platform != "" {
		fmt.Fprintf(tw, "Platform:\t%s\n", d.Platform)
	}
	for i, l := range d.Launchers {
		label := ""
		if i == 0 {
			label = "Launchers:"
		}
		fmt.Fprintf(tw, "%s\t%s\n", label, l)
	}
	if g.Launchable() {
		fmt.Fprintf(tw, "Launch:\t%s\n", g.LaunchURI())
	} else {
		fmt.Fprintf(tw, "Launch:\tnot available until the game is fully installed\n")
	}
	return tw.Flush()
}

func writeDiagnostics(w io.Writer, report *Report) error {
	dups := report.Catalog.Duplicates()
	if report.RegistryErr == nil && len(report.ManifestErrors) == 0 && len(dups) == 0 {
		_, err := fmt.Fprintln(w, "\nNo problems found")
		return err
	}

	fmt.Fprintln(w, "\nProblems:")
	if report.RegistryErr != nil {
		fmt.Fprintf(w, "  %v (only the root library was scanned)\n", report.RegistryErr)
	}
	for _, e := range report.ManifestErrors {
		fmt.Fprintf(w, "  skipped %v\n", e)
	}
	for _, g := range dups {
		fmt.Fprintf(w, "  duplicate of %v ignored in %s\n", g, g.Library)
	}
	return nil
}
