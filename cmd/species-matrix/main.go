package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"species-matrix/internal/parser"
)

const (
	appName    = "Species Matrix"
	appVersion = "1.0.0"
	appDesc    = "Turns field survey spreadsheets into species x plot matrices"
)

// exitCancelled is returned when a run was interrupted or timed out
const exitCancelled = 130

// app carries the state shared by the commands of one invocation
type app struct {
	configPath  string
	pauseOnExit bool
	stdin       io.Reader
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Stdin))
}

// run executes the CLI and returns the process exit code.
// Pausing for Enter happens here so it also runs after a panic or error.
func run(args []string, stdout, stderr io.Writer, stdin io.Reader) (code int) {
	a := &app{stdin: stdin}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "\n❌ PANIC: %v\n", r)
			code = 1
		}
		if a.pauseOnExit {
			waitForEnter(stdout, a.stdin)
		}
	}()

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if parser.IsCancelled(err) {
			return exitCancelled
		}
		fmt.Fprintf(stderr, "❌ %v\n", err)
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "species-matrix",
		Short: appDesc,
		Long: `species-matrix reads a survey workbook (.xlsx, .xlsm or .csv) in either the
sequential plot-block layout or the side-by-side table layout and writes a
species x plot matrix with naturally sorted plot columns.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to configuration file (default: ./config.yaml if present)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging (DEBUG level)")
	root.PersistentFlags().String("log-file", "", "Also write the log to this file")
	root.PersistentFlags().String("engine", "excelize", "xlsx reader engine: excelize or stream")
	root.PersistentFlags().String("layout", "auto", "Input layout: auto, sequential or grid")

	root.AddCommand(a.convertCommand(), a.inspectCommand(), versionCommand())
	return root
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n%s\n", appName, appVersion, appDesc)
		},
	}
}

// waitForEnter pauses execution and waits for user to press Enter
// This prevents the console window from closing immediately when double-clicked
func waitForEnter(w io.Writer, r io.Reader) {
	fmt.Fprintln(w, "\n==========================================")
	fmt.Fprintln(w, "Execution Finished. Press 'Enter' to exit.")
	fmt.Fprintln(w, "==========================================")
	if r == nil {
		return
	}
	if _, err := bufio.NewReader(r).ReadBytes('\n'); err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintf(w, "failed to read stdin: %v\n", err)
	}
}

func printBanner(w io.Writer) {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                   SPECIES MATRIX v1.0.0                   ║
║          Survey Sheets to Species x Plot Matrices         ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Fprintln(w, banner)
}
