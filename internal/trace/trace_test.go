package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug", "PHASE"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	if !LevelPhase.ShouldEmit(ScopeStage) || LevelPhase.ShouldEmit(ScopeSection) {
		t.Fatalf("phase level must stop at stages")
	}
	if !LevelDebug.ShouldEmit(ScopeStatement) || LevelOff.ShouldEmit(ScopeDriver) {
		t.Fatalf("debug emits all, off emits nothing")
	}
}

func TestStartSpanNestsUnderParent(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := StartSpan(ctx, ScopeStage, "parse")
	_, inner := StartSpan(ctx, ScopeSection, "data")
	inner.WithExtra("items", "2").End("")
	outer.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev struct {
		Kind     string            `json:"kind"`
		Name     string            `json:"name"`
		ParentID uint64            `json:"parent_id"`
		Extra    map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "data" || ev.ParentID != outer.ID() || ev.Extra["items"] != "2" {
		t.Fatalf("unexpected inner end event: %+v", ev)
	}
}

func TestDisabledTracerIsSilent(t *testing.T) {
	ctx, span := StartSpan(context.Background(), ScopeDriver, "translate")
	if span.ID() != 0 || CurrentSpan(ctx) != 0 {
		t.Fatalf("nop tracer must not allocate span ids")
	}
	if span.End("") != 0 {
		t.Fatalf("nop span has no duration")
	}
}

func TestTextFormatSortsExtra(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	Begin(tr, ScopeStage, "emit", 0).WithExtra("b", "2").WithExtra("a", "1").End("done")
	out := buf.String()
	if !strings.Contains(out, "\u2190 emit (done) {a=1, b=2}") {
		t.Fatalf("unexpected text output:\n%s", out)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off level must produce a disabled tracer")
	}
}
