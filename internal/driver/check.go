package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"vischeck/internal/diag"
	"vischeck/internal/observ"
	"vischeck/internal/pipeline"
	"vischeck/internal/privacy"
	"vischeck/internal/project"
	"vischeck/internal/snapshot"
	"vischeck/internal/source"
	"vischeck/internal/trace"
)

type Options struct {
	MaxDiagnostics int // <= 0 means unlimited
	Jobs           int // <= 0 means GOMAXPROCS
	ForeignUnions  privacy.ForeignUnionPolicy
	Progress       pipeline.ProgressSink
}

// UnitResult is the outcome of checking one snapshot.
type UnitResult struct {
	Path     string
	Unit     string
	Digest   project.Digest
	Files    *source.FileSet
	Bag      *diag.Bag
	Internal *privacy.InternalError
	Stats    privacy.Result
	Timer    *observ.Timer
	Timings  pipeline.Timings
}

// Failed reports whether the unit has errors or crashed.
func (r *UnitResult) Failed() bool {
	return r.Internal != nil || r.Bag.HasErrors()
}

// Check runs the pass on every snapshot found under paths. The returned
// error covers only problems with the run itself (cancellation, unreadable
// directories); per-unit failures live in the results.
func Check(ctx context.Context, paths []string, opts Options) ([]UnitResult, error) {
	files, err := ListSnapshots(paths)
	if err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", trace.ParentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	for _, f := range files {
		pipeline.Emit(opts.Progress, pipeline.Event{File: f, Stage: pipeline.StageLoad, Status: pipeline.StatusQueued})
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]UnitResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = CheckUnit(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	span.WithExtra("units", strconv.Itoa(len(results)))
	return results, nil
}

// CheckUnit loads and checks a single snapshot file.
func CheckUnit(ctx context.Context, path string, opts Options) UnitResult {
	res := UnitResult{
		Path:  path,
		Bag:   diag.NewBag(opts.MaxDiagnostics),
		Timer: observ.NewTimer(),
		Files: source.NewFileSet(),
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeUnit, path, trace.ParentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	emit := func(stage pipeline.Stage, status pipeline.Status, err error, elapsed time.Duration) {
		pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	}

	emit(pipeline.StageLoad, pipeline.StatusWorking, nil, 0)
	idx := res.Timer.Begin(string(pipeline.StageLoad))
	snap, err := load(path, &res)
	res.Timings.Set(pipeline.StageLoad, res.Timer.End(idx, ""))
	if err != nil {
		code := diag.IOLoadSnapshot
		if errors.Is(err, snapshot.ErrSchema) {
			code = diag.IOSchemaVersion
		}
		res.Bag.Add(diag.NewError(code, source.Span{}, err.Error()))
		span.WithExtra("error", err.Error())
		emit(pipeline.StageLoad, pipeline.StatusError, err, res.Timings.Duration(pipeline.StageLoad))
		return res
	}
	res.Unit = snap.Unit
	res.Files = snap.FileSet()

	emit(pipeline.StagePrivacy, pipeline.StatusWorking, nil, 0)
	idx = res.Timer.Begin(string(pipeline.StagePrivacy))
	counting := &diag.CountingReporter{Next: diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})}
	stats, err := privacy.Check(ctx, snap.AST, privacy.Options{
		Reporter:      counting,
		Symbols:       snap.Symbols,
		Types:         snap.Types,
		LegacyExports: snap.LegacyExports(),
		ForeignUnions: opts.ForeignUnions,
	})
	res.Stats = stats
	elapsed := res.Timer.End(idx, strconv.Itoa(counting.Errors)+" violations")
	res.Timings.Set(pipeline.StagePrivacy, elapsed)

	var ice *privacy.InternalError
	switch {
	case errors.As(err, &ice):
		res.Internal = ice
		emit(pipeline.StagePrivacy, pipeline.StatusCrashed, err, elapsed)
	case err != nil:
		res.Internal = &privacy.InternalError{Msg: err.Error()}
		emit(pipeline.StagePrivacy, pipeline.StatusCrashed, err, elapsed)
	case res.Bag.HasErrors():
		emit(pipeline.StagePrivacy, pipeline.StatusError, nil, elapsed)
	default:
		emit(pipeline.StagePrivacy, pipeline.StatusDone, nil, elapsed)
	}
	return res
}

func load(path string, res *UnitResult) (*snapshot.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res.Digest = project.HashBytes(data)
	snap, err := snapshot.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Summary aggregates results for the exit status.
type Summary struct {
	Units    int
	Failed   int
	Errors   int // diagnostics of every unit, dropped ones included
	Internal int
}

func Summarize(results []UnitResult) Summary {
	var s Summary
	for i := range results {
		r := &results[i]
		s.Units++
		if r.Failed() {
			s.Failed++
		}
		s.Errors += r.Bag.Len() + r.Bag.Dropped()
		if r.Internal != nil {
			s.Internal++
		}
	}
	return s
}
