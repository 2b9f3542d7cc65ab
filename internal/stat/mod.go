package stat

import (
	"fmt"
	"strings"
)

// ValueType defines how a stat modifier is combined with other modifiers
// of the same stat.
type ValueType int8

const (
	Base      ValueType = iota // Flat value, summed
	Increased                  // Additive percent, summed before applying
	More                       // Multiplicative percent, each one applied separately
)

var valueTypeNames = [...]string{
	Base:      "base",
	Increased: "inc",
	More:      "more",
}

func (v ValueType) String() string {
	if v < 0 || int(v) >= len(valueTypeNames) {
		return fmt.Sprintf("ValueType(%d)", v)
	}
	return valueTypeNames[v]
}

// ParseValueType converts "base", "inc"/"increased" or "more" to a ValueType.
func ParseValueType(s string) (ValueType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "base", "":
		return Base, nil
	case "inc", "increased":
		return Increased, nil
	case "more":
		return More, nil
	}
	return Base, fmt.Errorf("unknown value type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v ValueType) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *ValueType) UnmarshalText(b []byte) error {
	parsed, err := ParseValueType(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// KeywordKind tags the expression carried by a Keyword.
type KeywordKind int8

const (
	KeywordFlat    KeywordKind = iota // Value is used as is
	KeywordPerStat                    // Value scales with another stat's total
)

// Keyword makes a modifier's value a function of another stat.
// For KeywordPerStat the effective value is Value × Total(Stat) / Divisor,
// resolved at aggregation time.
type Keyword struct {
	Kind    KeywordKind `json:"kind"`
	Stat    string      `json:"stat"`
	Divisor float64     `json:"divisor"`
}

// PerStat builds a perStat keyword: "per <divisor> <stat>".
func PerStat(stat string, divisor float64) *Keyword {
	return &Keyword{Kind: KeywordPerStat, Stat: stat, Divisor: divisor}
}

// Mod is a single stat modifier. Mods are values: they are never mutated
// after construction, copies are cheap.
type Mod struct {
	Name      string    `json:"name"`
	ValueType ValueType `json:"valueType"`
	Value     float64   `json:"value"`
	Flags     Flags     `json:"flags,omitempty"`
	Keyword   *Keyword  `json:"keyword,omitempty"`
}

// NewBase returns a flagless base mod.
func NewBase(name string, value float64) Mod {
	return Mod{Name: name, ValueType: Base, Value: value}
}

// NewInc returns a flagless increased mod.
func NewInc(name string, value float64) Mod {
	return Mod{Name: name, ValueType: Increased, Value: value}
}

// NewMore returns a flagless more mod.
func NewMore(name string, value float64) Mod {
	return Mod{Name: name, ValueType: More, Value: value}
}

// WithFlags returns a copy of m scoped to flags.
func (m Mod) WithFlags(flags Flags) Mod {
	m.Flags = flags
	return m
}

// WithKeyword returns a copy of m whose value is derived through kw.
func (m Mod) WithKeyword(kw *Keyword) Mod {
	if kw != nil {
		k := *kw
		kw = &k
	}
	m.Keyword = kw
	return m
}

func (m Mod) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %g", m.Name, m.ValueType, m.Value)
	if m.Flags != 0 {
		fmt.Fprintf(&b, " [%s]", m.Flags)
	}
	if m.Keyword != nil && m.Keyword.Kind == KeywordPerStat {
		fmt.Fprintf(&b, " per %g %s", m.Keyword.Divisor, m.Keyword.Stat)
	}
	return b.String()
}
