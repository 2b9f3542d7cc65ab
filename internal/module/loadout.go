package module

import (
	"fmt"
	"slices"

	"github.com/udisondev/essence/internal/stat"
)

// Loadout names a choice of attack skill, support skills and item mods.
type Loadout struct {
	AttackSkill string              `json:"attackSkill,omitempty"`
	Supports    []string            `json:"supports,omitempty"`
	Items       map[string][]string `json:"items,omitempty"` // slot -> item mod ids
}

// Slots returns the loadout's item slots in sorted order.
func (l Loadout) Slots() []string {
	slots := make([]string, 0, len(l.Items))
	for s := range l.Items {
		slots = append(slots, s)
	}
	slices.Sort(slots)
	return slots
}

// Mods resolves the loadout against m. Slots are visited in sorted order so
// the result is stable.
func (l Loadout) Mods(m *Module) ([]stat.Mod, error) {
	var mods []stat.Mod
	if l.AttackSkill != "" {
		s, ok := m.AttackSkill(l.AttackSkill)
		if !ok {
			return nil, fmt.Errorf("unknown attack skill %q", l.AttackSkill)
		}
		mods = append(mods, s.Mods...)
	}
	for _, id := range l.Supports {
		s, ok := m.SupportSkill(id)
		if !ok {
			return nil, fmt.Errorf("unknown support skill %q", id)
		}
		mods = append(mods, s.Mods...)
	}
	for _, name := range l.Slots() {
		slot, ok := m.Slot(name)
		if !ok {
			return nil, fmt.Errorf("unknown item slot %q", name)
		}
		for _, id := range l.Items[name] {
			im, ok := slot.ItemMod(id)
			if !ok {
				return nil, fmt.Errorf("unknown item mod %q in slot %q", id, name)
			}
			mods = append(mods, im.Mods...)
		}
	}
	return mods, nil
}
