package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cdoc/internal/project"
	"cdoc/internal/trace"
)

// traceSession owns the tracer of one command run.
type traceSession struct {
	tracer trace.Tracer
	root   *trace.Span
	mode   trace.StorageMode
	format trace.Format
}

// activeTrace используется dumpTraceOnPanic.
var activeTrace *traceSession

// setupTracing inspects trace-related flags (falling back to the [trace]
// section of cdoc.toml) and attaches the tracer and a driver span to the
// command context.
func setupTracing(cmd *cobra.Command, tc project.TraceConfig) (*traceSession, error) {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	if !flags.Changed("trace") {
		traceOutput = tc.Output
	}

	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	if !flags.Changed("trace-level") {
		levelStr = tc.Level
	}

	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}

	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" && !flags.Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return &traceSession{tracer: trace.Nop}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	root := trace.Begin(tracer, trace.ScopeDriver, "cdoc "+cmd.Name(), 0)
	ctx := trace.WithTracer(cmd.Context(), tracer)
	ctx = trace.WithSpan(ctx, root)
	cmd.SetContext(ctx)

	s := &traceSession{tracer: tracer, root: root, mode: mode, format: format}
	activeTrace = s
	return s, nil
}

// Close ends the driver span and releases the tracer. In ring mode the
// buffered events are dumped to stderr when the command failed.
func (s *traceSession) Close(cmd *cobra.Command, failed bool) {
	if s == nil || !s.tracer.Enabled() {
		return
	}
	s.root.WithExtra("failed", fmt.Sprint(failed))
	s.root.End("")
	if failed && s.mode == trace.ModeRing {
		s.dump(cmd)
	}
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
	}
	if err := s.tracer.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
	}
	activeTrace = nil
}

func (s *traceSession) dump(cmd *cobra.Command) {
	ring, ok := trace.Ring(s.tracer)
	if !ok {
		return
	}
	format := s.format
	if format == trace.FormatAuto {
		format = trace.FormatText
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "trace: last events before failure:")
	if err := ring.Dump(cmd.ErrOrStderr(), format); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
	}
}

// dumpTraceOnPanic выгружает кольцевой буфер в stderr и продолжает панику.
func dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	if s := activeTrace; s != nil {
		if ring, ok := trace.Ring(s.tracer); ok {
			fmt.Fprintln(os.Stderr, "trace: panic, last events:")
			_ = ring.Dump(os.Stderr, trace.FormatText)
		}
	}
	panic(r)
}
