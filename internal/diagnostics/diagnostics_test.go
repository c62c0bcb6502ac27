package diagnostics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/sid"
)

func TestRenderSeparatesWarningsAndErrorsByVector(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	result := errors.Result[any]{
		Errors:   []*errors.Report{errors.New("TYP001", "typecheck", "mismatched types", nil, nil)},
		Warnings: []*errors.Report{errors.New("STY001", "style", "unused import", nil, nil)},
	}
	r.Render(result, nil)

	out := buf.String()
	if !strings.Contains(out, "error[TYP001]") {
		t.Fatalf("expected the error-vector report rendered with severity \"error\", got: %s", out)
	}
	if !strings.Contains(out, "warning[STY001]") {
		t.Fatalf("expected the warning-vector report rendered with severity \"warning\", got: %s", out)
	}
}

func TestRenderGroupsBySourceAndSortsBySpanStart(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	later := errors.New("TYP001", "typecheck", "second", &ast.Span{Start: ast.Pos{SourceID: "a.sw", Line: 5, Column: 1, Offset: 50}}, nil)
	earlier := errors.New("TYP002", "typecheck", "first", &ast.Span{Start: ast.Pos{SourceID: "a.sw", Line: 1, Column: 1, Offset: 0}}, nil)

	r.Render(errors.Result[any]{Errors: []*errors.Report{later, earlier}}, nil)

	out := buf.String()
	firstIdx := strings.Index(out, "TYP002")
	secondIdx := strings.Index(out, "TYP001")
	if firstIdx == -1 || secondIdx == -1 || firstIdx > secondIdx {
		t.Fatalf("expected TYP002 (earlier span) rendered before TYP001, got: %s", out)
	}
	if !strings.Contains(out, "a.sw") {
		t.Fatalf("expected the source id header to print once, got: %s", out)
	}
}

func TestRenderDrawsCaretUnderSpan(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	span := &ast.Span{
		Start: ast.Pos{SourceID: "a.sw", Line: 1, Column: 5, Offset: 4},
		End:   ast.Pos{SourceID: "a.sw", Line: 1, Column: 8, Offset: 7},
	}
	rep := errors.New("TYP001", "typecheck", "bad", span, nil)
	r.Render(errors.Result[any]{Errors: []*errors.Report{rep}}, map[string]string{"a.sw": "let xyz = 1;"})

	out := buf.String()
	if !strings.Contains(out, "let xyz = 1;") {
		t.Fatalf("expected the source line to be printed, got: %s", out)
	}
	if !strings.Contains(out, "^^^") {
		t.Fatalf("expected a 3-wide caret under the 3-byte span, got: %s", out)
	}
}

func TestRenderPrintsFixSuggestion(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	rep := errors.New("RES001", "resolve", "unknown identifier `lenght`", nil, nil).WithFix("did you mean `length`?", 0.9)
	r.Render(errors.Result[any]{Errors: []*errors.Report{rep}}, nil)

	if !strings.Contains(buf.String(), "did you mean `length`?") {
		t.Fatalf("expected the fix suggestion to be printed, got: %s", buf.String())
	}
}

func TestNewRendererDisablesColorForNonTTYWriter(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	rep := errors.New("TYP001", "typecheck", "plain", nil, nil)
	r.Render(errors.Result[any]{Errors: []*errors.Report{rep}}, nil)

	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected no ANSI escapes when writing to a plain bytes.Buffer, got: %q", buf.String())
	}
}

func TestSuggestFindsCloseMatch(t *testing.T) {
	known := []string{"length", "push", "pop"}
	got := Suggest("lenght", known)
	if len(got) == 0 || got[0] != "length" {
		t.Fatalf("expected \"length\" to be the top suggestion for \"lenght\", got %v", got)
	}
}

func TestSuggestExcludesDissimilarNames(t *testing.T) {
	known := []string{"completely_unrelated_identifier"}
	got := Suggest("x", known)
	if len(got) != 0 {
		t.Fatalf("expected no suggestions for a wildly dissimilar name, got %v", got)
	}
}

func TestSuggestCapsAtMaxSuggestions(t *testing.T) {
	known := []string{"value1", "value2", "value3", "value4", "value5"}
	got := Suggest("value0", known)
	if len(got) > maxSuggestions {
		t.Fatalf("expected at most %d suggestions, got %d: %v", maxSuggestions, len(got), got)
	}
}

func TestSuggestHelpPhrasesMultipleCandidates(t *testing.T) {
	help := SuggestHelp("valu", []string{"value", "values"})
	if !strings.HasPrefix(help, "did you mean ") {
		t.Fatalf("expected help text to start with \"did you mean \", got %q", help)
	}
	if len(Suggest("valu", []string{"value", "values"})) >= 2 && !strings.Contains(help, " or ") {
		t.Fatalf("expected two-or-more candidates joined with \" or \", got %q", help)
	}
}

func TestSuggestHelpEmptyWhenNoCandidates(t *testing.T) {
	if got := SuggestHelp("zzz", []string{"totally_different"}); got != "" {
		t.Fatalf("expected empty help string when nothing is similar enough, got %q", got)
	}
}

func TestLevenshteinIdenticalStringsAreZero(t *testing.T) {
	if d := levenshtein("abc", "abc"); d != 0 {
		t.Fatalf("levenshtein(abc, abc) = %d, want 0", d)
	}
}

func TestLevenshteinKnownDistance(t *testing.T) {
	if d := levenshtein("kitten", "sitting"); d != 3 {
		t.Fatalf("levenshtein(kitten, sitting) = %d, want 3", d)
	}
}

func TestTracerNilLoggerIsSilent(t *testing.T) {
	tr := NewTracer(nil, sid.NewUnitID())
	done := tr.StageTimer("S1")
	done()
	tr.Done(time.Millisecond, true)
}

func TestTracerEmitsStageAndUnitFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	unit := sid.NewUnitID()
	tr := NewTracer(logger, unit)
	done := tr.StageTimer("S2")
	done()
	tr.Done(5*time.Millisecond, true)

	out := buf.String()
	if !strings.Contains(out, `"stage":"S2"`) {
		t.Fatalf("expected stage field S2 in trace output, got: %s", out)
	}
	if !strings.Contains(out, string(unit)) {
		t.Fatalf("expected unit id in trace output, got: %s", out)
	}
	if !strings.Contains(out, "unit complete") {
		t.Fatalf("expected the whole-unit completion record, got: %s", out)
	}
}
