package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vischeck/internal/ast"
	"vischeck/internal/diag"
	"vischeck/internal/pipeline"
	"vischeck/internal/snapshot"
	"vischeck/internal/symbols"
	"vischeck/internal/testkit"
)

func writeUnit(t *testing.T, dir, name string, p *testkit.Program) string {
	t.Helper()
	path := filepath.Join(dir, name+snapshot.Ext)
	s := snapshot.New(name, []snapshot.File{{Path: name + ".src", Content: []byte("\n")}}, p.B, p.Syms, p.Types)
	if err := snapshot.WriteFile(path, s); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func clean() *testkit.Program {
	p := testkit.NewProgram("clean")
	r := p.Record(p.Root, "R", ast.VisPublic, testkit.Field("x", ast.VisPrivate))
	p.Fn(p.Root, "f", p.Block(p.Read(p.Local("r", p.RecordType(r.Def)), "x", p.Int())))
	return p
}

func violating() *testkit.Program {
	p := testkit.NewProgram("bad")
	a := p.Module(p.Root, "a")
	r := p.Record(a, "R", ast.VisPublic, testkit.Field("x", ast.VisPrivate))
	p.Fn(p.Root, "f", p.Block(p.Read(p.Local("r", p.RecordType(r.Def)), "x", p.Int())))
	return p
}

func crashing() *testkit.Program {
	p := testkit.NewProgram("ice")
	iface := p.Interface(p.Module(p.Root, "a"), "T", ast.VisPublic, testkit.Method("g", ast.VisPrivate))
	call, _ := p.Call(p.Local("t", p.InterfaceType(iface.Def)), "g",
		symbols.InterfaceOrigin{Interface: iface.Def, Index: 9})
	p.Fn(p.Root, "f", p.Block(call))
	return p
}

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeUnit(t, dir, "c_clean", clean())
	writeUnit(t, nested, "b_bad", violating())
	writeUnit(t, dir, "a_ice", crashing())
	if err := os.WriteFile(filepath.Join(dir, "d_broken"+snapshot.Ext), []byte("not msgpack"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	events := make(chan pipeline.Event, 64)
	results, err := Check(context.Background(), []string{dir}, Options{
		Jobs:     2,
		Progress: pipeline.ChannelSink{Ch: events},
	})
	close(events)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Path > results[i].Path {
			t.Fatalf("results not sorted: %s before %s", results[i-1].Path, results[i].Path)
		}
	}

	byName := make(map[string]*UnitResult)
	for i := range results {
		byName[filepath.Base(results[i].Path)] = &results[i]
	}
	if r := byName["c_clean.vsnap"]; r.Failed() || r.Unit != "c_clean" || r.Digest.IsZero() {
		t.Fatalf("clean unit: failed=%v unit=%q", r.Failed(), r.Unit)
	}
	if r := byName["b_bad.vsnap"]; r.Bag.Len() != 1 || r.Internal != nil {
		t.Fatalf("violating unit: %d diagnostics, internal %v", r.Bag.Len(), r.Internal)
	}
	if r := byName["a_ice.vsnap"]; r.Internal == nil {
		t.Fatalf("expected internal error")
	}
	broken := byName["d_broken.vsnap"]
	if broken.Bag.Len() != 1 || broken.Bag.Items()[0].Code != diag.IOLoadSnapshot {
		t.Fatalf("broken unit diagnostics: %+v", broken.Bag.Items())
	}

	final := make(map[string]pipeline.Status)
	for ev := range events {
		final[filepath.Base(ev.File)] = ev.Status
	}
	want := map[string]pipeline.Status{
		"c_clean.vsnap":  pipeline.StatusDone,
		"b_bad.vsnap":    pipeline.StatusError,
		"a_ice.vsnap":    pipeline.StatusCrashed,
		"d_broken.vsnap": pipeline.StatusError,
	}
	for name, status := range want {
		if final[name] != status {
			t.Fatalf("%s: last status %q, want %q", name, final[name], status)
		}
	}

	sum := Summarize(results)
	if sum.Units != 4 || sum.Failed != 3 || sum.Internal != 1 || sum.Errors != 2 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestCheckExplicitFileAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := writeUnit(t, dir, "one", violating())
	results, err := Check(context.Background(), []string{path, dir, path}, Options{MaxDiagnostics: 1})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("duplicates not collapsed: %d results", len(results))
	}
	if phases := results[0].Timer.Phases(); len(phases) != 2 || phases[1].Name != string(pipeline.StagePrivacy) {
		t.Fatalf("timer phases = %+v", phases)
	}
}

func TestCheckMissingPath(t *testing.T) {
	if _, err := Check(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, Options{}); err == nil {
		t.Fatalf("expected error for missing path")
	}
}

func TestCheckCancelled(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "one", clean())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Check(ctx, []string{dir}, Options{}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
