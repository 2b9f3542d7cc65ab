package game

import (
	"log/slog"
	"time"

	"github.com/udisondev/essence/internal/calc"
)

// Kill is reported when a battle's enemy dies.
type Kill struct {
	Level   int
	Essence float64
}

type bleed struct {
	dps       float64
	remaining float64
}

// Battle fights an endless stream of enemies. Each tick regenerates mana,
// applies bleed damage and performs as many attacks as attack speed allows.
// An attack that cannot be paid for waits until enough mana regenerates.
type Battle struct {
	player *Player
	rng    calc.Rand

	// ZoneLevel fixes the enemy level. Zero follows the player level.
	ZoneLevel int

	enemy  *Enemy
	mana   float64
	swing  float64
	bleeds []bleed
	kills  int

	stats     calc.Stats
	statsFrom *calc.Calculator

	onKill func(Kill)
}

// NewBattle starts a battle with full mana against a fresh enemy.
func NewBattle(p *Player, rng calc.Rand) *Battle {
	b := &Battle{player: p, rng: rng}
	b.mana = b.currentStats().MaxMana
	b.spawn()
	return b
}

// SetKillFunc registers fn to be called after each kill.
func (b *Battle) SetKillFunc(fn func(Kill)) {
	b.onKill = fn
}

func (b *Battle) Enemy() *Enemy { return b.enemy }
func (b *Battle) Mana() float64 { return b.mana }
func (b *Battle) Kills() int { return b.kills }

func (b *Battle) currentStats() calc.Stats {
	if c := b.player.Calculator(); c != b.statsFrom {
		b.stats = c.Stats()
		b.statsFrom = c
	}
	return b.stats
}

func (b *Battle) spawn() {
	level := b.ZoneLevel
	if level <= 0 {
		level = b.player.Level()
	}
	b.enemy = NewEnemy(b.player.Module().Enemy, level)
	b.bleeds = b.bleeds[:0]
}

// Tick advances the battle by dt.
func (b *Battle) Tick(dt time.Duration) {
	sec := dt.Seconds()
	if sec <= 0 {
		return
	}
	st := b.currentStats()

	b.mana = min(b.mana+st.ManaRegen*sec, st.MaxMana)

	if b.tickBleeds(sec) {
		b.killed()
	}

	b.swing += st.AttackSpeed * sec
	for b.swing >= 1 {
		if b.mana < st.AttackCost {
			b.swing = 1
			break
		}
		b.mana -= st.AttackCost
		b.swing--

		out := b.player.Attack(b.rng)
		if !out.WasHit {
			continue
		}
		for _, a := range out.Ailments {
			if a.Type == calc.AilmentBleed && a.Duration > 0 {
				b.bleeds = append(b.bleeds, bleed{dps: a.Damage / a.Duration, remaining: a.Duration})
			}
		}
		if b.enemy.TakeDamage(out.TotalDamage) {
			b.killed()
		}
	}
}

func (b *Battle) tickBleeds(sec float64) bool {
	var dmg float64
	alive := b.bleeds[:0]
	for _, bl := range b.bleeds {
		step := min(sec, bl.remaining)
		dmg += bl.dps * step
		bl.remaining -= step
		if bl.remaining > 0 {
			alive = append(alive, bl)
		}
	}
	b.bleeds = alive
	return dmg > 0 && b.enemy.TakeDamage(dmg)
}

func (b *Battle) killed() {
	k := Kill{Level: b.enemy.Level, Essence: b.enemy.Essence}
	b.kills++
	b.player.AddEssence(k.Essence)

	slog.Debug("enemy killed", "level", k.Level, "essence", k.Essence, "kills", b.kills)
	if b.onKill != nil {
		b.onKill(k)
	}
	b.spawn()
}
