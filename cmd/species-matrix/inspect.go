package main

import (
	"encoding/json"
	"fmt"

	toon "github.com/mateuszkardas/toon-go"
	"github.com/spf13/cobra"

	"species-matrix/internal/inspect"
	"species-matrix/internal/ui"
)

func (a *app) inspectCommand() *cobra.Command {
	var (
		rows int
		cols int
		as   string
	)

	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "Show how a survey sheet would be parsed, without converting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			ropts, err := cfg.ReaderOptions()
			if err != nil {
				return err
			}
			popts, err := cfg.ParserOptions()
			if err != nil {
				return err
			}

			report, err := inspect.Inspect(args[0], inspect.Options{
				Rows:   rows,
				Cols:   cols,
				Reader: ropts,
				Parser: popts,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch as {
			case "text":
				fmt.Fprintln(out, ui.RenderInspection(report))
			case "json":
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case "toon":
				data, err := toon.Marshal(report, nil)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			default:
				return fmt.Errorf("unknown report format %q (expected text, json or toon)", as)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", inspect.DefaultRows, "Preview rows")
	cmd.Flags().IntVar(&cols, "cols", inspect.DefaultCols, "Preview columns")
	cmd.Flags().StringVar(&as, "as", "text", "Report format: text, json or toon")

	return cmd
}
