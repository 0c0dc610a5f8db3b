// Package arena runs capture-the-flag matches: it owns the round objects,
// applies the flag and scoring rules and steps the physics world.
package arena

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/tank-ctf/internal/config"
	"github.com/Garsondee/tank-ctf/internal/game"
	"github.com/Garsondee/tank-ctf/internal/physics"
)

// updateEvery is how many frames pass between tank acceleration updates.
const updateEvery = 3

// RoundResult summarises one finished round.
type RoundResult struct {
	Round          int
	Winner         int // player index, -1 when the match ended mid-round
	Frames         int
	Shots          int
	BoxesDestroyed int
	TanksDestroyed int
}

// Match is a sequence of rounds on one map.
type Match struct {
	Def      *config.MapDef
	Settings config.Settings
	SimLog   *game.SimLog

	Map   *game.TileMap
	World *physics.World
	Flag  *Flag
	Bases []*Base

	log    *log.Logger
	tanks  []*physics.Tank
	ais    []*game.AI
	scores []int

	round      int // rounds completed
	frame      int
	roundFrame int
	skipUpdate int
	done       bool
	current    RoundResult
	history    []RoundResult
}

// NewMatch sets up the first round. A nil logger discards operator logs.
func NewMatch(def *config.MapDef, settings config.Settings, logger *log.Logger) (*Match, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Match{
		Def:      def,
		Settings: settings,
		SimLog:   game.NewSimLog(false),
		log:      logger.With("map", def.Name),
		scores:   make([]int, len(def.StartPositions)),
	}
	m.SimLog.SetLimit(4096)
	m.setupRound()
	m.log.Info("match started", "players", len(m.tanks), "humans", settings.Humans, "win", settings.Win.String())
	return m, nil
}

// setupRound rebuilds every round object from the map definition.
func (m *Match) setupRound() {
	m.Map = m.Def.TileMap()
	m.World = physics.NewWorld(m.Def.Width, m.Def.Height)
	m.roundFrame = 0
	m.skipUpdate = 0
	m.current = RoundResult{Round: m.round + 1, Winner: -1}

	for _, cell := range m.Map.Boxes() {
		m.World.AddBox(cell, m.Map.Classify(cell.X, cell.Y))
	}

	starts := m.Def.Starts()
	m.Bases = make([]*Base, len(starts))
	m.tanks = make([]*physics.Tank, len(starts))
	m.ais = make([]*game.AI, len(starts))
	for i, sp := range starts {
		m.Bases[i] = &Base{Player: i, Pos: sp.Pos}
		m.tanks[i] = m.World.AddTank(i, sp.Pos, sp.Angle)
	}
	m.Flag = &Flag{Pos: m.Def.Flag(), Start: m.Def.Flag()}
	for i := range m.tanks {
		m.attachAI(i)
	}
}

func (m *Match) env() game.Env {
	return game.Env{
		Map:      m.Map,
		World:    m.World,
		Registry: m,
		Log:      m.SimLog,
		Clock:    m.Frame,
	}
}

// attachAI gives player i a fresh controller unless a human drives it.
func (m *Match) attachAI(i int) {
	if i < m.Settings.Humans {
		return
	}
	m.ais[i] = game.NewAI(PlayerLabel(i), m.tanks[i], m.env())
}

// PlayerLabel is the short label used in agent logs.
func PlayerLabel(i int) string { return fmt.Sprintf("P%d", i+1) }

// Objects implements game.Registry.
func (m *Match) Objects() []game.Object {
	out := make([]game.Object, 0, 1+len(m.Bases)+len(m.tanks)+len(m.World.Boxes())+len(m.World.Bullets()))
	out = append(out, m.Flag)
	for _, b := range m.Bases {
		out = append(out, b)
	}
	for _, b := range m.World.Boxes() {
		out = append(out, b)
	}
	for _, t := range m.tanks {
		out = append(out, t)
	}
	for _, b := range m.World.Bullets() {
		out = append(out, b)
	}
	return out
}

// Step advances the match by one frame.
func (m *Match) Step() {
	if m.done {
		return
	}
	m.frame++
	m.roundFrame++

	for _, ai := range m.ais {
		if ai != nil {
			ai.Decide()
		}
	}

	for i, t := range m.tanks {
		if hasWon(t) {
			m.capture(i)
			return
		}
		if m.Flag.tryGrab(t) {
			m.log.Info("flag grabbed", "player", i+1, "round", m.current.Round)
			m.SimLog.Add(m.frame, PlayerLabel(i), "round", "flag_grab", "", 0)
		}
	}

	if m.Settings.Win.Mode == config.WinTime && m.TimeLeft() <= 0 {
		m.finish()
		return
	}

	if m.skipUpdate == 0 {
		for _, t := range m.tanks {
			t.Update()
		}
		m.skipUpdate = updateEvery - 1
	} else {
		m.skipUpdate--
	}

	contacts := m.World.Step(1 / float64(m.Settings.Framerate))
	m.handleContacts(contacts)
	m.Flag.follow()
}

func (m *Match) capture(player int) {
	m.scores[player]++
	m.round++
	m.current.Winner = player
	m.closeRound()
	m.log.Info("flag captured", "player", player+1, "round", m.round, "frames", m.roundFrame, "score", m.scores[player])
	m.SimLog.Add(m.frame, PlayerLabel(player), "round", "capture", "", float64(m.scores[player]))

	switch m.Settings.Win.Mode {
	case config.WinFirstTo:
		if m.scores[player] >= m.Settings.Win.Limit {
			m.finish()
			return
		}
	case config.WinBestOf:
		if m.round >= m.Settings.Win.Limit {
			m.finish()
			return
		}
	}
	m.setupRound()
}

// closeRound records the running round in the history.
func (m *Match) closeRound() {
	m.current.Frames = m.roundFrame
	m.current.Shots = m.World.Fired()
	m.history = append(m.history, m.current)
}

func (m *Match) finish() {
	if m.current.Winner < 0 {
		m.closeRound()
	}
	m.done = true
	m.log.Info("match over", "winners", m.winnerLabels(), "rounds", m.round, "frames", m.frame)
}

func (m *Match) handleContacts(contacts []physics.Contact) {
	for _, c := range contacts {
		bullet, other, ok := c.Involves(physics.KindBullet)
		if !ok || bullet.Bullet.Removed() {
			continue
		}
		switch other.Kind {
		case physics.KindTank:
			if !other.Tank.Removed() {
				m.destroyTank(other.Tank)
			}
		case physics.KindBox:
			if other.Box.Destructible() && !other.Box.Removed() {
				m.destroyBox(other.Box)
			}
		case physics.KindBullet:
			m.World.RemoveBullet(other.Bullet)
		}
		m.World.RemoveBullet(bullet.Bullet)
	}
}

// destroyTank drops the flag, removes the tank and respawns the player at
// its start position with a fresh controller.
func (m *Match) destroyTank(t *physics.Tank) {
	if m.Flag.Carrier == t {
		m.Flag.drop()
		m.log.Info("flag dropped", "player", t.Index+1, "x", m.Flag.Pos.X, "y", m.Flag.Pos.Y)
	}
	m.World.RemoveTank(t)
	m.current.TanksDestroyed++

	nt := m.World.AddTank(t.Index, t.Home, t.StartAngle)
	m.tanks[t.Index] = nt
	if m.ais[t.Index] != nil {
		m.attachAI(t.Index)
	}
	m.log.Debug("tank respawned", "player", t.Index+1)
	m.SimLog.Add(m.frame, PlayerLabel(t.Index), "round", "respawn", "", 0)
}

// destroyBox removes a wooden box and frees its tile for path searches.
func (m *Match) destroyBox(b *physics.Box) {
	m.World.RemoveBox(b)
	m.Map.Clear(b.Cell.X, b.Cell.Y)
	m.current.BoxesDestroyed++
	m.log.Debug("box destroyed", "cell", b.Cell.String())
	m.SimLog.Add(m.frame, "--", "round", "box_destroyed", b.Cell.String(), 0)
}

// Frame is the number of frames stepped since the match started.
func (m *Match) Frame() int { return m.frame }

// RoundFrame is the number of frames stepped in the current round.
func (m *Match) RoundFrame() int { return m.roundFrame }

// Rounds is the number of completed rounds.
func (m *Match) Rounds() int { return m.round }

// Done reports whether the win condition has been met.
func (m *Match) Done() bool { return m.done }

// Tanks returns the live tank of every player, by player index.
func (m *Match) Tanks() []*physics.Tank { return m.tanks }

// Tank returns player i's tank.
func (m *Match) Tank(i int) *physics.Tank { return m.tanks[i] }

// AI returns player i's controller, or nil for a human player.
func (m *Match) AI(i int) *game.AI { return m.ais[i] }

// Scores returns a copy of the points per player.
func (m *Match) Scores() []int {
	out := make([]int, len(m.scores))
	copy(out, m.scores)
	return out
}

// History returns the finished rounds.
func (m *Match) History() []RoundResult { return m.history }

// Winners returns every player holding the top score.
func (m *Match) Winners() []int {
	best := 0
	for _, s := range m.scores {
		best = max(best, s)
	}
	var out []int
	for i, s := range m.scores {
		if s == best {
			out = append(out, i)
		}
	}
	return out
}

// Winner returns the top-scoring player; ties go to the lowest index.
func (m *Match) Winner() int { return m.Winners()[0] }

func (m *Match) winnerLabels() string {
	var labels []string
	for _, i := range m.Winners() {
		labels = append(labels, fmt.Sprintf("Player %d", i+1))
	}
	return strings.Join(labels, ", ")
}

// TimeLeft is the number of whole seconds left in a timed match.
func (m *Match) TimeLeft() int {
	return m.Settings.Win.Limit - m.frame/m.Settings.Framerate
}

// Status describes progress toward the win condition.
func (m *Match) Status() string {
	switch m.Settings.Win.Mode {
	case config.WinFirstTo:
		return fmt.Sprintf("First to %d points wins!", m.Settings.Win.Limit)
	case config.WinBestOf:
		return fmt.Sprintf("Rounds left: %d", m.Settings.Win.Limit-m.round)
	case config.WinTime:
		return fmt.Sprintf("Time left: %02d", max(0, m.TimeLeft()))
	default:
		return ""
	}
}

// Scoreboard renders the score table, one player per line.
func (m *Match) Scoreboard() string {
	var sb strings.Builder
	sb.WriteString("____SCORE____\n")
	for i, s := range m.scores {
		fmt.Fprintf(&sb, "Player %d : %d\n", i+1, s)
	}
	if m.done {
		sb.WriteString("____WINNER____\n")
		sb.WriteString(m.winnerLabels())
		sb.WriteByte('\n')
	}
	return sb.String()
}
