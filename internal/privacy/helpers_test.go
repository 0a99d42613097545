package privacy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vischeck/internal/diag"
	"vischeck/internal/testkit"
)

func options(p *testkit.Program, bag *diag.Bag) Options {
	return Options{
		Reporter:      diag.BagReporter{Bag: bag},
		Symbols:       p.Syms,
		Types:         p.Types,
		LegacyExports: p.B.Crate.HasLegacyExports(),
	}
}

// check runs the pass over p and fails the test on an internal error.
func check(t *testing.T, p *testkit.Program, tweak ...func(*Options)) (Result, []diag.Diagnostic) {
	t.Helper()
	bag := diag.NewBag(0)
	opts := options(p, bag)
	for _, f := range tweak {
		f(&opts)
	}
	res, err := Check(context.Background(), p.B, opts)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Violations != bag.Len() {
		t.Fatalf("Result.Violations = %d, bag has %d", res.Violations, bag.Len())
	}
	return res, bag.Items()
}

// checkInternal runs the pass expecting an internal error mentioning want.
func checkInternal(t *testing.T, p *testkit.Program, want string) *InternalError {
	t.Helper()
	bag := diag.NewBag(0)
	c, err := newChecker(context.Background(), p.B, options(p, bag))
	if err != nil {
		t.Fatalf("newChecker: %v", err)
	}
	_, err = c.run()
	var ice *InternalError
	if !errors.As(err, &ice) {
		t.Fatalf("expected *InternalError, got %v", err)
	}
	if !strings.Contains(ice.Msg, want) {
		t.Fatalf("internal error %q does not mention %q", ice.Msg, want)
	}
	if d := c.scope.Depth(); d != 0 {
		t.Fatalf("privilege stack not unwound after internal error: depth %d", d)
	}
	return ice
}

func wantMessages(t *testing.T, got []diag.Diagnostic, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		msgs := make([]string, 0, len(got))
		for _, d := range got {
			msgs = append(msgs, d.Message)
		}
		t.Fatalf("got %d diagnostics %q, want %q", len(got), msgs, want)
	}
	for i := range want {
		if got[i].Message != want[i] {
			t.Fatalf("diagnostic %d = %q, want %q", i, got[i].Message, want[i])
		}
		if got[i].Severity != diag.SevError {
			t.Fatalf("diagnostic %d severity = %s", i, got[i].Severity)
		}
	}
}
