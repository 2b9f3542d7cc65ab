package game

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/essence/internal/calc"
	"github.com/udisondev/essence/internal/moddb"
	"github.com/udisondev/essence/internal/module"
)

const (
	DefaultMaxSupports = 3
	DefaultMaxItemMods = 4
)

// Change identifies which part of the player changed.
type Change uint8

const (
	ChangeLevel Change = iota
	ChangeEssence
	ChangeSkills
	ChangeEquipment
	ChangeTree
)

func (c Change) String() string {
	switch c {
	case ChangeLevel:
		return "level"
	case ChangeEssence:
		return "essence"
	case ChangeSkills:
		return "skills"
	case ChangeEquipment:
		return "equipment"
	case ChangeTree:
		return "tree"
	default:
		return fmt.Sprintf("Change(%d)", uint8(c))
	}
}

// PlayerOptions limits a player's loadout. Zero fields take defaults.
type PlayerOptions struct {
	MaxSupports int
	MaxItemMods int
}

// Player is the live gameplay context. It owns a mod database in which
// every system (defaults, skills, each item slot, each tree node) keeps its
// contribution under its own source, so a system replaces its mods without
// touching anyone else's.
//
// Player is not safe for concurrent use. Drive it from a single goroutine,
// usually the Loop's.
type Player struct {
	module *module.Module
	opts   PlayerOptions
	mods   *moddb.DB

	level      int
	essence    float64
	treePoints int

	defaultsSrc moddb.Source
	attackSrc   moddb.Source
	supportSrc  moddb.Source
	slotSrc     map[string]moddb.Source
	nodeSrc     map[string]moddb.Source

	attack   string
	supports []string
	items    map[string][]string
	nodes    []string

	calc        *calc.Calculator
	calcVersion uint64

	onChange func(Change)
}

// NewPlayer creates a level 1 player for m with its base stats attached.
func NewPlayer(m *module.Module, opts PlayerOptions) *Player {
	if opts.MaxSupports <= 0 {
		opts.MaxSupports = DefaultMaxSupports
	}
	if opts.MaxItemMods <= 0 {
		opts.MaxItemMods = DefaultMaxItemMods
	}

	p := &Player{
		module:      m,
		opts:        opts,
		mods:        moddb.New(),
		level:       1,
		defaultsSrc: moddb.NewSource("defaults"),
		attackSrc:   moddb.NewSource("attackSkill"),
		supportSrc:  moddb.NewSource("supportSkills"),
		slotSrc:     make(map[string]moddb.Source),
		nodeSrc:     make(map[string]moddb.Source),
		items:       make(map[string][]string),
	}
	p.mods.Add(p.defaultsSrc, m.DefaultMods(p.level)...)
	return p
}

// SetChangeFunc registers fn to be called after every state change.
func (p *Player) SetChangeFunc(fn func(Change)) {
	p.onChange = fn
}

func (p *Player) changed(c Change) {
	if p.onChange != nil {
		p.onChange(c)
	}
}

func (p *Player) Module() *module.Module { return p.module }
func (p *Player) Mods() *moddb.DB { return p.mods }
func (p *Player) Level() int { return p.level }
func (p *Player) Essence() float64 { return p.essence }
func (p *Player) TreePoints() int { return p.treePoints }

// AddEssence credits v essence.
func (p *Player) AddEssence(v float64) {
	if v <= 0 {
		return
	}
	p.essence += v
	p.changed(ChangeEssence)
}

// LevelUpCost returns the essence needed for the next level.
func (p *Player) LevelUpCost() float64 {
	return p.module.Progression.LevelCost(p.level)
}

// LevelUp spends essence to gain a level. Base stats are re-derived for
// the new level and a tree point is granted.
func (p *Player) LevelUp() error {
	if p.level >= p.module.Progression.MaxLevel {
		return ErrMaxLevel
	}
	cost := p.LevelUpCost()
	if p.essence < cost {
		return fmt.Errorf("level %d costs %.1f, have %.1f: %w", p.level+1, cost, p.essence, ErrNotEnoughEssence)
	}

	p.essence -= cost
	p.level++
	p.treePoints += p.module.Progression.TreePointsPerLevel
	p.mods.Replace(p.defaultsSrc, p.module.DefaultMods(p.level)...)

	slog.Debug("player levelled up", "level", p.level, "essence", p.essence)
	p.changed(ChangeLevel)
	return nil
}

// AttackSkill returns the selected attack skill id.
func (p *Player) AttackSkill() string { return p.attack }

// Supports returns the selected support skill ids.
func (p *Player) Supports() []string { return slices.Clone(p.supports) }

// SetAttackSkill selects the attack skill. An empty id clears it.
func (p *Player) SetAttackSkill(id string) error {
	s, err := p.checkAttackSkill(id)
	if err != nil {
		return err
	}
	p.applyAttackSkill(id, s)
	return nil
}

func (p *Player) checkAttackSkill(id string) (*module.Skill, error) {
	if id == "" {
		return nil, nil
	}
	s, ok := p.module.AttackSkill(id)
	if !ok {
		return nil, fmt.Errorf("attack skill %q: %w", id, ErrUnknownSkill)
	}
	if s.LevelReq > p.level {
		return nil, fmt.Errorf("attack skill %q needs level %d: %w", id, s.LevelReq, ErrLevelTooLow)
	}
	return s, nil
}

// applyAttackSkill installs a checked attack skill; s is nil when clearing.
func (p *Player) applyAttackSkill(id string, s *module.Skill) {
	p.attack = id
	if s == nil {
		p.mods.RemoveBySource(p.attackSrc)
	} else {
		p.mods.Replace(p.attackSrc, s.Mods...)
	}
	p.changed(ChangeSkills)
}

// SetSupportSkills replaces the selected support skills.
func (p *Player) SetSupportSkills(ids ...string) error {
	skills, err := p.checkSupportSkills(ids)
	if err != nil {
		return err
	}
	p.applySupportSkills(ids, skills)
	return nil
}

func (p *Player) checkSupportSkills(ids []string) ([]*module.Skill, error) {
	if len(ids) > p.opts.MaxSupports {
		return nil, fmt.Errorf("%d supports, limit %d: %w", len(ids), p.opts.MaxSupports, ErrTooManySupports)
	}
	var skills []*module.Skill
	for i, id := range ids {
		if slices.Contains(ids[:i], id) {
			return nil, fmt.Errorf("support skill %q: %w", id, ErrDuplicate)
		}
		s, ok := p.module.SupportSkill(id)
		if !ok {
			return nil, fmt.Errorf("support skill %q: %w", id, ErrUnknownSkill)
		}
		if s.LevelReq > p.level {
			return nil, fmt.Errorf("support skill %q needs level %d: %w", id, s.LevelReq, ErrLevelTooLow)
		}
		skills = append(skills, s)
	}
	return skills, nil
}

func (p *Player) applySupportSkills(ids []string, skills []*module.Skill) {
	p.mods.RemoveBySource(p.supportSrc)
	for _, s := range skills {
		p.mods.Add(p.supportSrc, s.Mods...)
	}
	p.supports = slices.Clone(ids)
	p.changed(ChangeSkills)
}

// Items returns the equipped item mod ids of slot.
func (p *Player) Items(slot string) []string { return slices.Clone(p.items[slot]) }

// Equip puts an item with the given mods into slot, replacing whatever was
// there. An item carries at most one mod per template.
func (p *Player) Equip(slot string, modIDs ...string) error {
	rows, err := p.checkItem(slot, modIDs)
	if err != nil {
		return err
	}
	p.applyItem(slot, modIDs, rows)
	return nil
}

func (p *Player) checkItem(slot string, modIDs []string) ([]*module.ItemMod, error) {
	s, ok := p.module.Slot(slot)
	if !ok {
		return nil, fmt.Errorf("slot %q: %w", slot, ErrUnknownSlot)
	}
	if len(modIDs) > p.opts.MaxItemMods {
		return nil, fmt.Errorf("%d item mods, limit %d: %w", len(modIDs), p.opts.MaxItemMods, ErrTooManyItemMods)
	}
	var rows []*module.ItemMod
	for i, id := range modIDs {
		if slices.Contains(modIDs[:i], id) {
			return nil, fmt.Errorf("item mod %q: %w", id, ErrDuplicate)
		}
		im, ok := s.ItemMod(id)
		if !ok {
			return nil, fmt.Errorf("item mod %q in slot %q: %w", id, slot, ErrUnknownItemMod)
		}
		if im.LevelReq > p.level {
			return nil, fmt.Errorf("item mod %q needs level %d: %w", id, im.LevelReq, ErrLevelTooLow)
		}
		for _, prev := range rows {
			if prev.Template() == im.Template() {
				return nil, fmt.Errorf("item mods %q and %q share template %q: %w", prev.ID, id, im.Template(), ErrSameTemplate)
			}
		}
		rows = append(rows, im)
	}
	return rows, nil
}

func (p *Player) applyItem(slot string, modIDs []string, rows []*module.ItemMod) {
	src, ok := p.slotSrc[slot]
	if !ok {
		src = moddb.NewSource("item:" + slot)
		p.slotSrc[slot] = src
	}
	p.mods.RemoveBySource(src)
	for _, im := range rows {
		p.mods.Add(src, im.Mods...)
	}
	p.items[slot] = slices.Clone(modIDs)
	p.changed(ChangeEquipment)
}

// Unequip empties slot. Unequipping an empty slot is a no-op.
func (p *Player) Unequip(slot string) {
	src, ok := p.slotSrc[slot]
	if !ok {
		return
	}
	p.mods.RemoveBySource(src)
	delete(p.slotSrc, slot)
	delete(p.items, slot)
	p.changed(ChangeEquipment)
}

// ApplyLoadout selects l's skills and equips its items. Slots missing from
// l are left as they are. The whole loadout is checked first; on error the
// player is unchanged.
func (p *Player) ApplyLoadout(l module.Loadout) error {
	attack, err := p.checkAttackSkill(l.AttackSkill)
	if err != nil {
		return err
	}
	supports, err := p.checkSupportSkills(l.Supports)
	if err != nil {
		return err
	}
	slots := l.Slots()
	items := make([][]*module.ItemMod, len(slots))
	for i, slot := range slots {
		if items[i], err = p.checkItem(slot, l.Items[slot]); err != nil {
			return err
		}
	}

	p.applyAttackSkill(l.AttackSkill, attack)
	p.applySupportSkills(l.Supports, supports)
	for i, slot := range slots {
		p.applyItem(slot, l.Items[slot], items[i])
	}
	return nil
}

// Loadout returns the current selection.
func (p *Player) Loadout() module.Loadout {
	l := module.Loadout{
		AttackSkill: p.attack,
		Supports:    slices.Clone(p.supports),
	}
	if len(p.items) > 0 {
		l.Items = make(map[string][]string, len(p.items))
		for slot, ids := range p.items {
			l.Items[slot] = slices.Clone(ids)
		}
	}
	return l
}

// Calculator returns a calculator over the player's current mods. It is
// rebuilt only when the mod database changed since the last call.
func (p *Player) Calculator() *calc.Calculator {
	if v := p.mods.Version(); p.calc == nil || v != p.calcVersion {
		p.calc = calc.NewCalculator(p.mods.ModList())
		p.calcVersion = v
	}
	return p.calc
}

// Stats returns the expected-value stats of the current mods.
func (p *Player) Stats() calc.Stats {
	return p.Calculator().Stats()
}

// Attack resolves one attack with the current mods.
func (p *Player) Attack(rng calc.Rand) calc.AttackOutput {
	return p.Calculator().Attack(rng)
}
