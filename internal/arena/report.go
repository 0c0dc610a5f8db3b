package arena

import (
	"fmt"
	"strings"
)

// Report renders the scoreboard, one line per finished round and the
// per-agent decision summary.
func (m *Match) Report() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Map %s, %s\n", m.Def.Name, m.Settings.Win)
	sb.WriteString(m.Scoreboard())
	for _, r := range m.history {
		winner := "none"
		if r.Winner >= 0 {
			winner = fmt.Sprintf("Player %d", r.Winner+1)
		}
		fmt.Fprintf(&sb, "round %d: winner=%s frames=%d shots=%d boxes=%d tanks=%d\n",
			r.Round, winner, r.Frames, r.Shots, r.BoxesDestroyed, r.TanksDestroyed)
	}
	sb.WriteString(m.SimLog.Summary(m.frame))
	return sb.String()
}
