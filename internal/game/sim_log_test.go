package game

import (
	"strings"
	"testing"
)

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

func TestSimLog_VerboseGate(t *testing.T) {
	quiet := NewSimLog(false)
	quiet.AddVerbose(1, "A", "align", "wait", "", 0)
	quiet.Add(1, "A", "plan", "replan", "", 3)
	if len(quiet.Entries()) != 1 {
		t.Fatalf("entries = %d, want 1", len(quiet.Entries()))
	}

	loud := NewSimLog(true)
	loud.AddVerbose(1, "A", "align", "wait", "", 0)
	if len(loud.Entries()) != 1 {
		t.Fatal("verbose log should record polling entries")
	}
}

func TestSimLog_LimitKeepsNewest(t *testing.T) {
	sl := NewSimLog(false)
	sl.SetLimit(3)
	for i := 1; i <= 5; i++ {
		sl.Add(i, "A", "plan", "replan", "", float64(i))
	}
	got := sl.Entries()
	if len(got) != 3 || got[0].Tick != 3 || got[2].Tick != 5 {
		t.Fatalf("entries = %+v", got)
	}
	if sl.Dropped() != 2 {
		t.Fatalf("dropped = %d, want 2", sl.Dropped())
	}
	if r := sl.Recent(2); len(r) != 2 || r[0].Tick != 4 {
		t.Fatalf("recent = %+v", r)
	}
	sl.Reset()
	if len(sl.Entries()) != 0 || sl.Dropped() != 0 {
		t.Fatal("reset should clear entries and the dropped count")
	}
}

func TestSimLog_Queries(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "A", "plan", "replan", "(0,0) -> (4,4) via (1,0)", 8)
	sl.Add(2, "A", "turn", "left", "diff=-4.712", -4.712)
	sl.Add(3, "B", "threat", "fire", "", 0)
	sl.Add(4, "A", "plan", "replan", "(1,0) -> (4,4) via (2,0)", 7)

	if n := sl.CountCategory("plan", "replan"); n != 2 {
		t.Fatalf("replans = %d, want 2", n)
	}
	if last, ok := sl.LastOf("plan", "replan"); !ok || last.Tick != 4 {
		t.Fatalf("LastOf = %+v", last)
	}
	if _, ok := sl.LastOf("plan", "no_path"); ok {
		t.Fatal("LastOf should miss")
	}
	if !sl.HasEntry("plan", "", "via (2,0)") {
		t.Fatal("HasEntry substring miss")
	}
	if len(sl.FilterAgent("B")) != 1 {
		t.Fatal("FilterAgent(B) should find one entry")
	}
	if len(sl.FilterTickRange(2, 3)) != 2 {
		t.Fatal("FilterTickRange(2,3) should find two entries")
	}
	if out := sl.FormatRange(3, 3); !strings.Contains(out, "threat") || strings.Contains(out, "plan") {
		t.Fatalf("FormatRange = %q", out)
	}
}

func TestSimLog_Summary(t *testing.T) {
	sl := NewSimLog(false)
	if !strings.Contains(sl.Summary(0), "no agent activity") {
		t.Fatal("empty summary")
	}
	sl.Add(1, "A", "plan", "replan", "", 8)
	sl.Add(2, "A", "turn", "left", "", 0)
	sl.Add(3, "A", "align", "commit", "", 0)
	sl.Add(3, "A", "threat", "fire", "", 0)
	s := sl.Summary(3)
	if !strings.Contains(s, "replan=1") || !strings.Contains(s, "turns=1/0") || !strings.Contains(s, "shots=1") {
		t.Fatalf("summary = %q", s)
	}
}

func TestSimLogEntry_String(t *testing.T) {
	e := SimLogEntry{Tick: 42, Agent: "P2", Category: "plan", Key: "replan", Value: "x"}
	if got := e.String(); !strings.HasPrefix(got, "[T=042] P2   plan") {
		t.Fatalf("String = %q", got)
	}
}
