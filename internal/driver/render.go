package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cdoc/internal/cdocfmt"
	"cdoc/internal/diag"
	"cdoc/internal/pipeline"
	"cdoc/internal/source"
	"cdoc/internal/trace"
)

// RenderOptions configures RenderFiles and RenderFile.
type RenderOptions struct {
	Jobs           int
	MaxDiagnostics int

	// ParseOnly stops after parsing: nothing is rendered or written.
	ParseOnly bool
	// OutDir is the root for rendered files. Empty means "do not write".
	OutDir  string
	Suffix  string
	BaseDir string

	ReportNoDoc bool
	// SkipNoDoc не записывает файлы комментариев, помеченных @nodoc.
	SkipNoDoc bool

	Cache *DiskCache
	Sink  pipeline.Sink
}

// RenderResult is the outcome for one comment file.
type RenderResult struct {
	Path    string
	OutPath string // пусто, если файл не записывался
	FileID  source.FileID
	Text    string
	Bag     *diag.Bag
	Comment *CommentResult // nil для попаданий в кэш и ошибок загрузки

	Failed     bool
	Deprecated bool
	NoDoc      bool
	Cached     bool
	Timings    pipeline.Timings
}

// RenderFiles loads paths and renders every comment body in parallel. Each
// file is independent: a fatal parse error in one body is reported in its own
// result and never stops the others. The returned error is non-nil only when
// the context is cancelled.
func RenderFiles(ctx context.Context, paths []string, opts RenderOptions) (*source.FileSet, []RenderResult, error) {
	fileSet := source.NewFileSetWithBase(opts.BaseDir)
	if len(paths) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	passSpan := trace.Begin(tracer, trace.ScopePass, "render", trace.CurrentSpan(ctx))
	passSpan.WithExtra("files", fmt.Sprint(len(paths)))
	defer passSpan.End("")

	for _, p := range paths {
		pipeline.Emit(opts.Sink, pipeline.Event{File: p, Stage: pipeline.StageLoad, Status: pipeline.StatusQueued})
	}

	// FileSet не потокобезопасен на запись, поэтому загрузка последовательная
	fileIDs := make([]source.FileID, len(paths))
	loadErrors := make(map[int]error)
	loadDur := make([]time.Duration, len(paths))
	for i, p := range paths {
		start := time.Now()
		id, err := fileSet.Load(p)
		loadDur[i] = time.Since(start)
		if err != nil {
			// виртуальный файл, чтобы диагностике было к чему привязаться
			id = fileSet.AddVirtual(p, nil)
			loadErrors[i] = err
		}
		fileIDs[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]RenderResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, p := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[i]; failed {
				results[i] = loadFailure(p, fileIDs[i], loadErr, opts)
				results[i].Timings.Add(pipeline.StageLoad, loadDur[i])
				return nil
			}
			fileCtx := trace.WithSpan(gctx, passSpan)
			res := RenderFile(fileCtx, fileSet, fileIDs[i], opts)
			res.Timings.Add(pipeline.StageLoad, loadDur[i])
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func loadFailure(path string, id source.FileID, err error, opts RenderOptions) RenderResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, source.Span{File: id},
		"failed to load file: "+err.Error()).Emit()
	pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: err})
	return RenderResult{Path: path, FileID: id, Bag: bag, Failed: true}
}

// RenderFile parses, renders and (when opts.OutDir is set) writes one comment
// body that is already loaded into fs.
func RenderFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts RenderOptions) (res RenderResult) {
	file := fs.Get(id)
	res = RenderResult{Path: file.Path, FileID: id}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+file.Path, trace.CurrentSpan(ctx))
	defer func() {
		span.WithExtra("failed", fmt.Sprint(res.Failed))
		span.End("")
	}()

	emit := func(stage pipeline.Stage, status pipeline.Status, err error, dur time.Duration) {
		pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: stage, Status: status, Err: err, Elapsed: dur})
	}

	key := CacheKey(file, opts.ReportNoDoc)
	if !opts.ParseOnly && opts.Cache != nil {
		var payload CachePayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			res.Bag = diag.NewBag(opts.MaxDiagnostics)
			restoreDiagnostics(&payload, id, res.Bag)
			res.Text = payload.Text
			res.Failed = payload.Failed
			res.Deprecated = payload.Deprecated
			res.NoDoc = payload.NoDoc
			res.Cached = true
			span.WithExtra("cache", "hit")
			emit(pipeline.StageRender, pipeline.StatusCached, nil, 0)
			return writeStage(res, opts, emit)
		}
	}

	emit(pipeline.StageParse, pipeline.StatusWorking, nil, 0)
	start := time.Now()
	comment := ParseComment(fs, id, ParseOptions{
		MaxDiagnostics: opts.MaxDiagnostics,
		Tracer:         tracer,
		Parent:         span.ID(),
		ReportNoDoc:    opts.ReportNoDoc,
	})
	res.Timings.Add(pipeline.StageParse, time.Since(start))
	res.Comment = comment
	res.Bag = comment.Bag
	res.Failed = comment.Failed()
	res.Deprecated = comment.Deprecated
	res.NoDoc = comment.NoDoc

	if opts.ParseOnly {
		status := pipeline.StatusDone
		if res.Failed {
			status = pipeline.StatusError
		}
		emit(pipeline.StageParse, status, comment.Err, res.Timings.Duration(pipeline.StageParse))
		return res
	}

	emit(pipeline.StageRender, pipeline.StatusWorking, nil, 0)
	start = time.Now()
	var sb strings.Builder
	// strings.Builder не возвращает ошибок записи
	_ = cdocfmt.Render(&sb, slices.Values(comment.Events))
	res.Text = sb.String()
	res.Timings.Add(pipeline.StageRender, time.Since(start))

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, payloadFromResult(res.Text, comment)); err != nil {
			diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, source.Span{File: id},
				"render cache write failed: "+err.Error()).Emit()
		}
	}
	return writeStage(res, opts, emit)
}

func writeStage(res RenderResult, opts RenderOptions, emit func(pipeline.Stage, pipeline.Status, error, time.Duration)) RenderResult {
	switch {
	case res.Failed:
		emit(pipeline.StageRender, pipeline.StatusError, nil, res.Timings.Duration(pipeline.StageRender))
		return res
	case opts.OutDir == "" || (opts.SkipNoDoc && res.NoDoc):
		emit(pipeline.StageWrite, doneStatus(res), nil, 0)
		return res
	}

	start := time.Now()
	out, err := writeRendered(res.Path, res.Text, opts)
	res.Timings.Add(pipeline.StageWrite, time.Since(start))
	if err != nil {
		diag.ReportError(diag.BagReporter{Bag: res.Bag}, diag.IOWriteFileError, source.Span{File: res.FileID},
			"failed to write rendered text: "+err.Error()).Emit()
		res.Failed = true
		emit(pipeline.StageWrite, pipeline.StatusError, err, res.Timings.Duration(pipeline.StageWrite))
		return res
	}
	res.OutPath = out
	emit(pipeline.StageWrite, doneStatus(res), nil, res.Timings.Duration(pipeline.StageWrite))
	return res
}

func doneStatus(res RenderResult) pipeline.Status {
	if res.Cached {
		return pipeline.StatusCached
	}
	return pipeline.StatusDone
}

func writeRendered(path, text string, opts RenderOptions) (string, error) {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = ".md"
	}
	out, err := OutputPath(path, opts.BaseDir, opts.OutDir, suffix)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil { //nolint:gosec // документация, не секреты
		return "", err
	}
	return out, nil
}

// BatchTimings sums the stage durations of all results.
func BatchTimings(results []RenderResult) pipeline.Timings {
	var total pipeline.Timings
	for i := range results {
		total.Merge(results[i].Timings)
	}
	return total
}

// MergeDiagnostics collects all per-file diagnostics into one sorted bag.
func MergeDiagnostics(results []RenderResult) *diag.Bag {
	bag := diag.NewBag(1)
	for i := range results {
		bag.Merge(results[i].Bag)
	}
	bag.Sort()
	return bag
}

// AnyFailed reports whether some file ended with a fatal error.
func AnyFailed(results []RenderResult) bool {
	for i := range results {
		if results[i].Failed {
			return true
		}
	}
	return false
}
