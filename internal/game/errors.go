package game

import "errors"

var (
	ErrUnknownSkill       = errors.New("unknown skill")
	ErrUnknownSlot        = errors.New("unknown item slot")
	ErrUnknownItemMod     = errors.New("unknown item mod")
	ErrUnknownNode        = errors.New("unknown tree node")
	ErrLevelTooLow        = errors.New("level too low")
	ErrMaxLevel           = errors.New("max level reached")
	ErrNotEnoughEssence   = errors.New("not enough essence")
	ErrNoTreePoints       = errors.New("no tree points left")
	ErrAlreadyAllocated   = errors.New("node already allocated")
	ErrNotAllocated       = errors.New("node not allocated")
	ErrRequirementMissing = errors.New("node requirement not allocated")
	ErrNodeRequired       = errors.New("node required by another allocated node")
	ErrTooManySupports    = errors.New("too many support skills")
	ErrTooManyItemMods    = errors.New("too many item mods")
	ErrDuplicate          = errors.New("duplicate selection")
	ErrSameTemplate       = errors.New("item already has a mod of this template")
)
