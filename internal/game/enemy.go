package game

import "github.com/udisondev/essence/internal/module"

// Enemy is the current opponent of a Battle.
type Enemy struct {
	Level     int
	MaxHealth float64
	Health    float64
	Essence   float64
}

// NewEnemy spawns an enemy at level using the module's scaling.
func NewEnemy(s module.EnemyScaling, level int) *Enemy {
	level = max(level, 1)
	hp := s.Health(level)
	return &Enemy{
		Level:     level,
		MaxHealth: hp,
		Health:    hp,
		Essence:   s.Essence(level),
	}
}

// TakeDamage subtracts v from health and reports whether the enemy died.
func (e *Enemy) TakeDamage(v float64) bool {
	if v > 0 {
		e.Health -= v
	}
	return e.Dead()
}

func (e *Enemy) Dead() bool {
	return e.Health <= 0
}
