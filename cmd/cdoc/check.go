package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cdoc/internal/diag"
	"cdoc/internal/diagfmt"
	"cdoc/internal/driver"
	"cdoc/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] FILE|DIR...|-",
	Short: "Parse comment bodies and report diagnostics",
	Long: `Parse every comment body found in the given files and directories without
rendering it, and print the diagnostics. Exits with status 1 when any body
has an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("report-nodoc", false, "report comments marked @nodoc")
}

func runCheck(cmd *cobra.Command, args []string) (err error) {
	defer dumpTraceOnPanic()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	reportNoDoc, err := cmd.Flags().GetBool("report-nodoc")
	if err != nil {
		return fmt.Errorf("failed to get report-nodoc flag: %w", err)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	session, err := setupTracing(cmd, s.cfg.Trace)
	if err != nil {
		return err
	}
	defer func() { session.Close(cmd, err != nil) }()

	opts := driver.RenderOptions{
		Jobs:           s.jobs,
		MaxDiagnostics: s.maxDiagnostics,
		ParseOnly:      true,
		BaseDir:        s.root,
		ReportNoDoc:    reportNoDoc,
	}

	var (
		fs      *source.FileSet
		results []driver.RenderResult
	)
	if isStdin(args) {
		fs = source.NewFileSetWithBase(s.root)
		id, loadErr := loadBody(cmd, fs, "-")
		if loadErr != nil {
			return loadErr
		}
		results = []driver.RenderResult{driver.RenderFile(cmd.Context(), fs, id, opts)}
	} else {
		files, collectErr := driver.CollectInputs(args, s.cfg.Input.Extensions)
		if collectErr != nil {
			return collectErr
		}
		fs, results, err = driver.RenderFiles(cmd.Context(), files, opts)
		if err != nil {
			return err
		}
	}

	bag := driver.MergeDiagnostics(results)
	if noWarnings {
		bag = withoutWarnings(bag)
	}
	if s.timings {
		driver.AppendTimings(bag, fs.AddVirtual("<timings>", nil), driver.BatchTimings(results))
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			Context:   2,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
	case "short":
		if _, err := io.WriteString(out, diag.FormatShort(bag.Items(), fs, withNotes)); err != nil {
			return err
		}
	case "json":
		if err := diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		}); err != nil {
			return err
		}
	}

	if !s.quiet && format != "json" {
		fmt.Fprintf(os.Stderr, "checked %d file(s): %d error(s), %d warning(s)\n",
			len(results), bag.Count(diag.SevError), bag.Count(diag.SevWarning)-bag.Count(diag.SevError))
	}
	if bag.HasErrors() {
		return errFailed
	}
	return nil
}

func withoutWarnings(bag *diag.Bag) *diag.Bag {
	filtered := diag.NewBag(max(bag.Len(), 1))
	for _, d := range bag.Items() {
		if d.Severity != diag.SevWarning {
			filtered.Add(d)
		}
	}
	return filtered
}
