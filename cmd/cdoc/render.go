package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cdoc/internal/diagfmt"
	"cdoc/internal/driver"
	"cdoc/internal/observ"
	"cdoc/internal/source"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] FILE|DIR...|-",
	Short: "Render comment bodies into documentation text",
	Long: `Render every comment body found in the given files and directories.
Files are processed in parallel and independently: a malformed comment is
reported and skipped without affecting the others. Output files mirror the
input layout under the output directory. "-" renders stdin to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("out", "", "output directory (default: [render].out_dir of cdoc.toml)")
	renderCmd.Flags().String("suffix", "", "output file suffix (default: [render].suffix of cdoc.toml)")
	renderCmd.Flags().Bool("stdout", false, "print rendered text instead of writing files")
	renderCmd.Flags().Bool("skip-nodoc", false, "do not write comments marked @nodoc")
	renderCmd.Flags().Bool("report-nodoc", false, "report comments marked @nodoc")
	renderCmd.Flags().Bool("fullpath", false, "emit absolute file paths in diagnostics")
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	defer dumpTraceOnPanic()

	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}
	skipNoDoc, err := cmd.Flags().GetBool("skip-nodoc")
	if err != nil {
		return fmt.Errorf("failed to get skip-nodoc flag: %w", err)
	}
	reportNoDoc, err := cmd.Flags().GetBool("report-nodoc")
	if err != nil {
		return fmt.Errorf("failed to get report-nodoc flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	uiFlag, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	outDir := s.resolve(s.cfg.Render.OutDir)
	if cmd.Flags().Changed("out") {
		outDir, _ = cmd.Flags().GetString("out")
	}
	suffix := s.cfg.Render.Suffix
	if cmd.Flags().Changed("suffix") {
		suffix, _ = cmd.Flags().GetString("suffix")
	}

	session, err := setupTracing(cmd, s.cfg.Trace)
	if err != nil {
		return err
	}
	defer func() { session.Close(cmd, err != nil) }()

	prettyOpts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   2,
		ShowNotes: true,
	}
	if fullPath {
		prettyOpts.PathMode = diagfmt.PathModeAbsolute
	}

	opts := driver.RenderOptions{
		Jobs:           s.jobs,
		MaxDiagnostics: s.maxDiagnostics,
		OutDir:         outDir,
		Suffix:         suffix,
		BaseDir:        s.root,
		ReportNoDoc:    reportNoDoc,
		SkipNoDoc:      skipNoDoc,
	}
	if toStdout {
		opts.OutDir = ""
	}

	if isStdin(args) {
		return renderStdin(cmd, s, opts, prettyOpts)
	}

	timer := observ.NewTimer()
	idx := timer.Begin("collect")
	files, err := driver.CollectInputs(args, s.cfg.Input.Extensions)
	timer.End(idx, fmt.Sprintf("%d file(s)", len(files)))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !s.quiet {
			fmt.Fprintln(os.Stderr, "no comment files found")
		}
		return nil
	}

	cache, cacheErr := s.openCache()
	if cacheErr != nil && !s.quiet {
		fmt.Fprintf(os.Stderr, "warning: render cache disabled: %v\n", cacheErr)
	}
	opts.Cache = cache

	ctx := cmd.Context()
	idx = timer.Begin("render")
	var (
		fs      *source.FileSet
		results []driver.RenderResult
	)
	if shouldUseTUI(mode) && !toStdout && !s.quiet {
		fs, results, err = runRenderWithUI(ctx, "render", files, opts)
	} else {
		fs, results, err = driver.RenderFiles(ctx, files, opts)
	}
	timer.End(idx, "")
	if err != nil {
		return err
	}

	if toStdout {
		if err := writeTexts(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	}

	idx = timer.Begin("report")
	if bag := driver.MergeDiagnostics(results); bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, fs, prettyOpts)
	}
	timer.End(idx, "")

	if !s.quiet {
		printRenderSummary(os.Stderr, results)
	}
	if s.timings {
		if err := printStageTimings(os.Stderr, driver.BatchTimings(results), timer); err != nil {
			return err
		}
	}
	if driver.AnyFailed(results) {
		return errFailed
	}
	return nil
}

func renderStdin(cmd *cobra.Command, s *settings, opts driver.RenderOptions, prettyOpts diagfmt.PrettyOpts) error {
	fs := source.NewFileSetWithBase(s.root)
	id, err := loadBody(cmd, fs, "-")
	if err != nil {
		return err
	}
	opts.OutDir = ""
	res := driver.RenderFile(cmd.Context(), fs, id, opts)
	if res.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, res.Bag, fs, prettyOpts)
	}
	if res.Failed {
		return errFailed
	}
	_, err = io.WriteString(cmd.OutOrStdout(), res.Text)
	return err
}

// writeTexts prints rendered texts in input order; several files are
// separated by "==> path <==" headers.
func writeTexts(w io.Writer, results []driver.RenderResult) error {
	for i := range results {
		r := &results[i]
		if r.Failed {
			continue
		}
		if len(results) > 1 {
			if _, err := fmt.Fprintf(w, "==> %s <==\n", r.Path); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, r.Text); err != nil {
			return err
		}
	}
	return nil
}

func printRenderSummary(w io.Writer, results []driver.RenderResult) {
	var failed, cached, written int
	for i := range results {
		switch {
		case results[i].Failed:
			failed++
		case results[i].Cached:
			cached++
		}
		if results[i].OutPath != "" {
			written++
		}
	}
	fmt.Fprintf(w, "rendered %d file(s): %d written, %d cached, %d failed\n", len(results), written, cached, failed)
}
