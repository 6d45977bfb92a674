package cmd

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"taskflow/config"
	"taskflow/editor"
	"taskflow/frame"
	"taskflow/logging"
	"taskflow/script"
)

func layoutCmd() *cobra.Command {
	var (
		scriptPath string
		maxTicks   int
		noColor    bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Settle the task graph headless and print the positions",
		Long: "Seeds the graph from config, optionally replays an edit script,\n" +
			"runs the simulation until it cools and prints where every task ended up.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := logging.Nop()
			if verbose {
				log = logging.New(cmd.ErrOrStderr())
			}

			var s *script.Script
			if scriptPath != "" {
				if s, err = script.Load(scriptPath); err != nil {
					return err
				}
			}

			res := settle(cfg, s, maxTicks, log)
			printLayout(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "Replay this edit script before settling")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", 1000, "Stop after this many ticks even if still moving")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log edits to stderr")
	return cmd
}

// layoutResult is what a headless run produced.
type layoutResult struct {
	Snapshot editor.Snapshot
	Ticks    int
	Settled  bool
}

func settle(cfg config.Config, s *script.Script, maxTicks int, log logging.Logger) layoutResult {
	loop := frame.NewLoop()
	ed := editor.New(cfg.SeedGraph(), loop, cfg.EditorOptions(log))
	defer ed.Close()

	if s != nil {
		script.NewPlayer(s, ed, loop, log).Play()
	}
	ticks := loop.RunUntilIdle(maxTicks)
	return layoutResult{
		Snapshot: ed.Snapshot(),
		Ticks:    ticks,
		Settled:  !ed.Running(),
	}
}

func printLayout(w io.Writer, res layoutResult) {
	snap := res.Snapshot

	status := Good.Sprint("settled")
	if !res.Settled {
		status = Bad.Sprint("still moving")
	}
	fmt.Fprintf(w, "%s %s after %d ticks (alpha %.4f)\n\n", Brand.Sprint("taskflow"), status, res.Ticks, snap.Alpha)

	var plain, styled [][]string
	for _, n := range snap.Nodes {
		x, y := fmt.Sprintf("%.1f", n.X), fmt.Sprintf("%.1f", n.Y)
		plain = append(plain, []string{"■", n.ID, n.Label, x, y})
		styled = append(styled, []string{swatch(n.Color), Brand.Sprint(n.ID), n.Label, x, y})
	}
	table(w, []string{"", "TASK", "LABEL", "X", "Y"}, plain, styled)

	if len(snap.Edges) == 0 {
		fmt.Fprintln(w)
		Subtle.Fprintln(w, "  no dependencies")
		return
	}

	plain, styled = nil, nil
	for _, e := range snap.Edges {
		length := fmt.Sprintf("%.1f", math.Hypot(e.X2-e.X1, e.Y2-e.Y1))
		plain = append(plain, []string{e.Source, "→", e.Target, length})
		styled = append(styled, []string{e.Source, Subtle.Sprint("→"), e.Target, length})
	}
	fmt.Fprintln(w)
	table(w, []string{"FROM", "", "TO", "LENGTH"}, plain, styled)
}
