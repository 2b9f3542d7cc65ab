package game

import (
	"errors"
	"log/slog"
	"time"

	"github.com/udisondev/essence/internal/module"
)

// Planner picks the loadout to use at a level.
type Planner interface {
	Loadout(level int) (module.Loadout, bool)
}

// PlannerFunc adapts a function to Planner.
type PlannerFunc func(level int) (module.Loadout, bool)

func (f PlannerFunc) Loadout(level int) (module.Loadout, bool) { return f(level) }

// Autopilot plays a player without input: it levels up whenever essence
// allows, spends tree points in module order and switches to the planner's
// loadout after each level up.
type Autopilot struct {
	player  *Player
	planner Planner
	applied int
}

// NewAutopilot creates an autopilot. planner may be nil.
func NewAutopilot(p *Player, planner Planner) *Autopilot {
	return &Autopilot{player: p, planner: planner}
}

func (a *Autopilot) Tick(time.Duration) {
	p := a.player
	for p.LevelUp() == nil {
	}

	for p.TreePoints() > 0 && a.allocateNext() {
	}

	if a.planner == nil || a.applied == p.Level() {
		return
	}
	a.applied = p.Level()
	l, ok := a.planner.Loadout(p.Level())
	if !ok {
		return
	}
	if err := p.ApplyLoadout(l); err != nil {
		slog.Warn("planned loadout rejected", "level", p.Level(), "error", err)
		return
	}
	slog.Info("loadout applied", "level", p.Level(), "attack", l.AttackSkill, "supports", l.Supports)
}

func (a *Autopilot) allocateNext() bool {
	for _, n := range a.player.Module().TreeNodes {
		err := a.player.Allocate(n.ID)
		if err == nil {
			return true
		}
		if errors.Is(err, ErrNoTreePoints) {
			return false
		}
	}
	return false
}
