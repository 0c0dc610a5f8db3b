package arena

import (
	"strings"
	"testing"

	"github.com/Garsondee/tank-ctf/internal/config"
	"github.com/Garsondee/tank-ctf/internal/game"
)

func TestMatch_DriveHumanTank(t *testing.T) {
	md := testDef([]string{
		"......",
		"......",
		"......",
	}, game.V(3.5, 2.5), []float64{0.5, 0.5, -90}, []float64{5.5, 2.5, 90})
	m := newTestMatch(t, md, func(s *config.Settings) { s.Humans = 2 })

	for i := 0; i < 30; i++ {
		m.Drive(0, Controls{Forward: true})
		m.Step()
	}
	if x := m.Tank(0).Position().X; x < 0.6 {
		t.Fatalf("tank did not drive along its heading, x=%.3f", x)
	}

	m.Drive(0, Controls{Left: true})
	if m.Tank(0).Turning() != -1 || m.Tank(0).Speed() != 0 {
		t.Fatalf("turning=%d speed=%.2f", m.Tank(0).Turning(), m.Tank(0).Speed())
	}
	m.Drive(0, Controls{Left: true, Right: true})
	if m.Tank(0).Turning() != 0 {
		t.Fatal("opposite turn keys should cancel")
	}

	m.Drive(1, Controls{Fire: true})
	if m.Tank(1).Shots() != 1 {
		t.Fatalf("shots = %d", m.Tank(1).Shots())
	}
}

func TestMatch_DriveIgnoresAITanks(t *testing.T) {
	md := testDef([]string{"...."}, game.V(3.5, 0.5), []float64{0.5, 0.5, -90}, []float64{1.5, 0.5, 0})
	m := newTestMatch(t, md, func(s *config.Settings) { s.Humans = 1 })

	m.Drive(1, Controls{Fire: true})
	m.Drive(7, Controls{Fire: true})
	if m.Tank(1).Shots() != 0 {
		t.Fatal("AI tank must not take keyboard input")
	}
}

func TestMatch_Report(t *testing.T) {
	md := testDef([]string{
		"......",
		"......",
		"......",
	}, game.V(5.5, 1.5), []float64{0.5, 1.5, -90})
	m := newTestMatch(t, md, func(s *config.Settings) { s.Win.Limit = 1 })
	for i := 0; i < 3000 && !m.Done(); i++ {
		m.Step()
	}
	r := m.Report()
	for _, want := range []string{"Map test, first to 1 points", "Player 1 : 1", "round 1: winner=Player 1", "P1   replan="} {
		if !strings.Contains(r, want) {
			t.Fatalf("report missing %q:\n%s", want, r)
		}
	}
}
