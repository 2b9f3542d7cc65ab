package stat

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Placeholder is the marker for a number inside a template description.
const Placeholder = "#"

var (
	ErrUnknownTemplate     = errors.New("unknown mod template")
	ErrPlaceholderMismatch = errors.New("placeholder count mismatch")
	ErrMalformedRawMod     = errors.New("malformed raw mod")
	ErrDuplicateTemplate   = errors.New("duplicate mod template")
)

var numberPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

const numberGroup = `([-+]?\d+(?:\.\d+)?)`

// TemplateStat describes one stat slot of a template.
type TemplateStat struct {
	Name      string    `json:"name"`
	ValueType ValueType `json:"valueType"`
	Flags     Flags     `json:"flags,omitempty"`

	// Placeholder is the 1-based index of the description placeholder that
	// feeds Value. Zero keeps Value fixed.
	Placeholder int     `json:"placeholder,omitempty"`
	Value       float64 `json:"value,omitempty"`
	Negate      bool    `json:"negate,omitempty"` // "reduced" wording stored as a negative inc

	// PerStat, when set, turns the mod into a perStat keyword mod. The divisor
	// comes from DivisorPlaceholder if non-zero, otherwise from Divisor.
	PerStat            string  `json:"perStat,omitempty"`
	Divisor            float64 `json:"divisor,omitempty"`
	DivisorPlaceholder int     `json:"divisorPlaceholder,omitempty"`
}

// Template is a static catalog entry: a description with "#" placeholders
// and the stat slots the placeholders feed.
type Template struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Stats       []TemplateStat `json:"stats"`

	pattern      *regexp.Regexp
	placeholders int
}

// Placeholders returns the number of "#" markers in the description.
func (t *Template) Placeholders() int {
	return t.placeholders
}

func (t *Template) compile() error {
	parts := strings.Split(t.Description, Placeholder)
	t.placeholders = len(parts) - 1

	for i := range parts {
		parts[i] = regexp.QuoteMeta(parts[i])
	}
	pattern, err := regexp.Compile(`(?i)^\s*` + strings.Join(parts, numberGroup) + `\s*$`)
	if err != nil {
		return fmt.Errorf("compiling template %q: %w", t.ID, err)
	}
	t.pattern = pattern

	for _, s := range t.Stats {
		if s.Name == "" {
			return fmt.Errorf("template %q: stat without name", t.ID)
		}
		if s.Placeholder < 0 || s.Placeholder > t.placeholders {
			return fmt.Errorf("template %q: stat %q uses placeholder %d of %d", t.ID, s.Name, s.Placeholder, t.placeholders)
		}
		if s.DivisorPlaceholder < 0 || s.DivisorPlaceholder > t.placeholders {
			return fmt.Errorf("template %q: stat %q uses divisor placeholder %d of %d", t.ID, s.Name, s.DivisorPlaceholder, t.placeholders)
		}
	}
	return nil
}

// extract pulls the placeholder numbers out of a concrete description.
func (t *Template) extract(desc string) ([]float64, error) {
	m := t.pattern.FindStringSubmatch(desc)
	if m == nil {
		got := len(numberPattern.FindAllString(desc, -1))
		return nil, fmt.Errorf("%w: template %q expects %d, %q has %d",
			ErrPlaceholderMismatch, t.ID, t.placeholders, desc, got)
	}
	values := make([]float64, 0, len(m)-1)
	for _, s := range m[1:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q in %q", ErrMalformedRawMod, s, desc)
		}
		values = append(values, v)
	}
	return values, nil
}

// Build makes concrete mods from positional placeholder values.
func (t *Template) Build(values []float64) ([]Mod, error) {
	if len(values) != t.placeholders {
		return nil, fmt.Errorf("%w: template %q expects %d, got %d",
			ErrPlaceholderMismatch, t.ID, t.placeholders, len(values))
	}

	mods := make([]Mod, 0, len(t.Stats))
	for _, s := range t.Stats {
		v := s.Value
		if s.Placeholder > 0 {
			v = values[s.Placeholder-1]
		}
		if s.Negate {
			v = -v
		}
		mod := Mod{Name: s.Name, ValueType: s.ValueType, Value: v, Flags: s.Flags}
		if s.PerStat != "" {
			div := s.Divisor
			if s.DivisorPlaceholder > 0 {
				div = values[s.DivisorPlaceholder-1]
			}
			if div == 0 {
				div = 1
			}
			mod.Keyword = PerStat(s.PerStat, div)
		}
		mods = append(mods, mod)
	}
	return mods, nil
}

// Catalog indexes templates by id.
type Catalog struct {
	templates map[string]*Template
}

// NewCatalog compiles templates into a catalog.
func NewCatalog(templates ...Template) (*Catalog, error) {
	c := &Catalog{templates: make(map[string]*Template, len(templates))}
	if err := c.Add(templates...); err != nil {
		return nil, err
	}
	return c, nil
}

// Add compiles and registers more templates. Ids must be unique. Nothing is
// registered unless every template compiles.
func (c *Catalog) Add(templates ...Template) error {
	compiled := make([]*Template, 0, len(templates))
	for i := range templates {
		t := templates[i]
		if t.ID == "" {
			return fmt.Errorf("template with empty id: %q", t.Description)
		}
		_, exists := c.templates[t.ID]
		if exists || slices.ContainsFunc(compiled, func(o *Template) bool { return o.ID == t.ID }) {
			return fmt.Errorf("%w: %q", ErrDuplicateTemplate, t.ID)
		}
		if err := t.compile(); err != nil {
			return err
		}
		compiled = append(compiled, &t)
	}
	for _, t := range compiled {
		c.templates[t.ID] = t
	}
	return nil
}

// Get returns the template with the given id, or nil.
func (c *Catalog) Get(id string) *Template {
	return c.templates[id]
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// Resolve converts a raw mod ("<templateId>|<description>") into concrete mods.
func (c *Catalog) Resolve(raw string) ([]Mod, error) {
	id, desc, ok := strings.Cut(raw, "|")
	if !ok {
		return nil, fmt.Errorf("%w: %q has no template id", ErrMalformedRawMod, raw)
	}
	id = strings.TrimSpace(id)
	t := c.templates[id]
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	values, err := t.extract(desc)
	if err != nil {
		return nil, err
	}
	return t.Build(values)
}

// Mode selects what happens when a raw mod fails to resolve.
type Mode int8

const (
	ModeStrict  Mode = iota // Fail the whole conversion
	ModeLenient             // Log and drop the raw mod
)

// ParseMode converts "strict" or "lenient" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "strict", "":
		return ModeStrict, nil
	case "lenient":
		return ModeLenient, nil
	}
	return ModeStrict, fmt.Errorf("unknown resolve mode %q", s)
}

// Resolver resolves lists of raw mods under a Mode.
type Resolver struct {
	Catalog *Catalog
	Mode    Mode
}

// ResolveAll converts every raw mod. In lenient mode a failing raw mod is
// dropped with a warning; its values are never guessed.
func (r Resolver) ResolveAll(raws []string) ([]Mod, error) {
	mods := make([]Mod, 0, len(raws))
	for _, raw := range raws {
		resolved, err := r.Catalog.Resolve(raw)
		if err != nil {
			if r.Mode == ModeLenient {
				slog.Warn("dropping unresolvable raw mod", "raw", raw, "error", err)
				continue
			}
			return nil, fmt.Errorf("resolving %q: %w", raw, err)
		}
		mods = append(mods, resolved...)
	}
	return mods, nil
}
