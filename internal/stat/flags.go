package stat

import (
	"fmt"
	"math/bits"
	"strings"
)

// Flags is a bitmask over the semantic categories a modifier is scoped to.
// A mod with non-zero flags only contributes to queries whose flags are a
// superset of its own.
type Flags uint32

const (
	FlagAttack Flags = 1 << iota
	FlagAilment
	FlagBleed
	FlagIgnite
	FlagPoison
	FlagDamageOverTime
)

// Common query scopes.
const (
	ScopeAttack = FlagAttack
	ScopeBleed  = FlagAilment | FlagBleed | FlagDamageOverTime
	ScopeIgnite = FlagAilment | FlagIgnite | FlagDamageOverTime
	ScopePoison = FlagAilment | FlagPoison | FlagDamageOverTime
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagAttack, "attack"},
	{FlagAilment, "ailment"},
	{FlagBleed, "bleed"},
	{FlagIgnite, "ignite"},
	{FlagPoison, "poison"},
	{FlagDamageOverTime, "dot"},
}

// Matches reports whether a mod carrying f may contribute to a query scoped
// to query. Flagless mods always match.
func (f Flags) Matches(query Flags) bool {
	return f&query == f
}

// Has reports whether all bits of o are set in f.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

func (f Flags) String() string {
	if f == 0 {
		return ""
	}
	parts := make([]string, 0, bits.OnesCount32(uint32(f)))
	rest := f
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseFlags parses a "|" or "," separated list of flag names.
// "damageOverTime" is accepted as an alias of "dot".
func ParseFlags(s string) (Flags, error) {
	var f Flags
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' || r == ' ' }) {
		name := strings.ToLower(part)
		if name == "damageovertime" {
			name = "dot"
		}
		found := false
		for _, fn := range flagNames {
			if fn.name == name {
				f |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown flag %q", part)
		}
	}
	return f, nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Flags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Flags) UnmarshalText(b []byte) error {
	parsed, err := ParseFlags(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
