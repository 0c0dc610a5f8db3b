package game

import (
	"fmt"
	"sort"
	"strings"
)

// SimLogEntry is one recorded agent event.
type SimLogEntry struct {
	Tick     int
	Agent    string  // label e.g. "P3", or "--" for global events
	Category string  // plan, turn, align, threat, round
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] P2   plan      replan           (1,1) -> (4,4) via (1,2)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Agent, e.Category, e.Key, e.Value)
}

// SimLog collects structured agent events. It is unbounded unless a limit
// is set, in which case only the newest entries are kept.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
	limit   int
	dropped int
}

// NewSimLog creates a SimLog. If verbose is true, per-tick polling entries
// (heading checks, repeated search failures) are recorded as well.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// SetLimit caps the number of retained entries; 0 means unbounded.
func (sl *SimLog) SetLimit(n int) {
	sl.limit = n
	sl.trim()
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, agent, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Agent:    agent,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
	sl.trim()
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, agent, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, agent, category, key, value, numVal)
}

func (sl *SimLog) trim() {
	if sl.limit <= 0 || len(sl.entries) <= sl.limit {
		return
	}
	cut := len(sl.entries) - sl.limit
	sl.dropped += cut
	sl.entries = append(sl.entries[:0], sl.entries[cut:]...)
}

// Dropped returns how many entries were discarded by the limit.
func (sl *SimLog) Dropped() int { return sl.dropped }

// Entries returns all retained entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Recent returns up to n of the newest entries, oldest first.
func (sl *SimLog) Recent(n int) []SimLogEntry {
	if n <= 0 {
		return nil
	}
	start := max(0, len(sl.entries)-n)
	out := make([]SimLogEntry, len(sl.entries)-start)
	copy(out, sl.entries[start:])
	return out
}

// Reset discards every entry.
func (sl *SimLog) Reset() {
	sl.entries = sl.entries[:0]
	sl.dropped = 0
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterAgent returns entries for a specific agent label.
func (sl *SimLog) FilterAgent(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Agent == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		e := sl.entries[i]
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns per-agent event counts, one line per agent.
func (sl *SimLog) Summary(tick int) string {
	type counts struct{ replan, noPath, fire, left, right, commit int }
	per := map[string]*counts{}
	for _, e := range sl.entries {
		c, ok := per[e.Agent]
		if !ok {
			c = &counts{}
			per[e.Agent] = c
		}
		switch {
		case e.Category == "plan" && e.Key == "replan":
			c.replan++
		case e.Category == "plan" && e.Key == "no_path":
			c.noPath++
		case e.Category == "threat" && e.Key == "fire":
			c.fire++
		case e.Category == "turn" && e.Key == "left":
			c.left++
		case e.Category == "turn" && e.Key == "right":
			c.right++
		case e.Category == "align" && e.Key == "commit":
			c.commit++
		}
	}
	labels := make([]string, 0, len(per))
	for l := range per {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)
	for _, l := range labels {
		c := per[l]
		fmt.Fprintf(&sb, "%-4s replan=%d no_path=%d turns=%d/%d commits=%d shots=%d\n",
			l, c.replan, c.noPath, c.left, c.right, c.commit, c.fire)
	}
	if len(labels) == 0 {
		sb.WriteString("no agent activity\n")
	}
	return sb.String()
}
