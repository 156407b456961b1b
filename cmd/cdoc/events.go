package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cdoc/internal/cdocfmt"
	"cdoc/internal/diagfmt"
	"cdoc/internal/driver"
	"cdoc/internal/source"
	"cdoc/internal/trace"
)

var eventsCmd = &cobra.Command{
	Use:   "events [flags] FILE|-",
	Short: "Dump the event stream of one comment body",
	Long: `Parse one comment body (delimiters already stripped) and print the
produced events. Use "-" to read the body from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

func runEvents(cmd *cobra.Command, args []string) (err error) {
	defer dumpTraceOnPanic()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
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

	fs := source.NewFileSetWithBase(s.root)
	id, err := loadBody(cmd, fs, args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	res := driver.ParseComment(fs, id, driver.ParseOptions{
		MaxDiagnostics: s.maxDiagnostics,
		Tracer:         trace.FromContext(ctx),
		Parent:         trace.CurrentSpan(ctx),
	})

	// Диагностика идёт в stderr, события в stdout
	if res.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, res.Bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   2,
			ShowNotes: true,
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		if err := cdocfmt.FormatEventsPretty(out, res.Events, fs, id); err != nil {
			return err
		}
		if res.Tail != "" {
			if _, err := fmt.Fprintf(out, "tail: %q\n", res.Tail); err != nil {
				return err
			}
		}
	case "json":
		if err := cdocfmt.FormatEventsJSON(out, cdocfmt.BuildEventsOutput(res.Events, id, res.Tail, res.Err)); err != nil {
			return err
		}
	case "yaml":
		if err := cdocfmt.FormatEventsYAML(out, cdocfmt.BuildEventsOutput(res.Events, id, res.Tail, res.Err)); err != nil {
			return err
		}
	}

	if res.Failed() {
		return errFailed
	}
	return nil
}
