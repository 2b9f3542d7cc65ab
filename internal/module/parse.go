package module

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tidwall/gjson"

	"github.com/udisondev/essence/internal/stat"
)

// Options controls module parsing.
type Options struct {
	// Mode decides whether an unresolvable raw mod or a duplicate name fails
	// the load or is logged and skipped.
	Mode stat.Mode
	// Catalog to resolve raw mods against. Module templates are added to it.
	// Defaults to stat.DefaultCatalog().
	Catalog *stat.Catalog
}

// Load reads and parses a module file.
func Load(path string, opts Options) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading module %s: %w", path, err)
	}
	m, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing module %s: %w", path, err)
	}
	return m, nil
}

// Parse builds a Module from its JSON source.
func Parse(data []byte, opts Options) (*Module, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidModule)
	}
	if opts.Catalog == nil {
		opts.Catalog = stat.DefaultCatalog()
	}
	root := gjson.ParseBytes(data)

	p := &parser{
		opts:     opts,
		resolver: stat.Resolver{Catalog: opts.Catalog, Mode: opts.Mode},
	}

	templates, err := parseTemplates(root.Get("templates"))
	if err != nil {
		return nil, err
	}
	if err := opts.Catalog.Add(templates...); err != nil {
		return nil, fmt.Errorf("adding module templates: %w", err)
	}

	m := &Module{
		Name:        root.Get("name").String(),
		Enemy:       parseEnemy(root.Get("enemy")),
		Progression: parseProgression(root.Get("progression")),
		catalog:     opts.Catalog,
		fingerprint: Fingerprint(data),
	}

	if m.Defaults, err = parseDefaults(root.Get("defaults")); err != nil {
		return nil, err
	}
	if m.AttackSkills, err = p.skills("attackSkills", root.Get("attackSkills")); err != nil {
		return nil, err
	}
	if m.SupportSkills, err = p.skills("supportSkills", root.Get("supportSkills")); err != nil {
		return nil, err
	}
	if m.ItemSlots, err = p.itemSlots(root.Get("items")); err != nil {
		return nil, err
	}
	if m.TreeNodes, err = p.treeNodes(root.Get("tree")); err != nil {
		return nil, err
	}

	slog.Info("loaded module",
		"name", m.Name,
		"attack_skills", len(m.AttackSkills),
		"support_skills", len(m.SupportSkills),
		"item_slots", len(m.ItemSlots),
		"tree_nodes", len(m.TreeNodes),
		"templates", opts.Catalog.Len())
	return m, nil
}

type parser struct {
	opts     Options
	resolver stat.Resolver
}

// duplicate reports a duplicate name. In lenient mode the entry is skipped.
func (p *parser) duplicate(section, name string) error {
	if p.opts.Mode == stat.ModeLenient {
		slog.Warn("skipping duplicate entry", "section", section, "name", name)
		return nil
	}
	return fmt.Errorf("%w: %s %q", ErrDuplicateName, section, name)
}

func stringList(r gjson.Result) []string {
	arr := r.Array()
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		out = append(out, v.String())
	}
	return out
}

func (p *parser) skills(section string, r gjson.Result) ([]Skill, error) {
	seen := make(map[string]bool)
	var skills []Skill
	for _, v := range r.Array() {
		id := v.Get("name").String()
		if id == "" {
			return nil, fmt.Errorf("%w: %s entry without name", ErrInvalidModule, section)
		}
		if seen[id] {
			if err := p.duplicate(section, id); err != nil {
				return nil, err
			}
			continue
		}
		seen[id] = true

		raws := stringList(v.Get("mods"))
		mods, err := p.resolver.ResolveAll(raws)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", section, id, err)
		}
		skills = append(skills, Skill{
			ID:       id,
			LevelReq: int(v.Get("levelReq").Int()),
			RawMods:  raws,
			Mods:     mods,
		})
	}
	return skills, nil
}

func (p *parser) itemSlots(r gjson.Result) ([]ItemSlot, error) {
	seenSlots := make(map[string]bool)
	var slots []ItemSlot
	for _, v := range r.Array() {
		name := v.Get("slot").String()
		if name == "" {
			return nil, fmt.Errorf("%w: item slot without name", ErrInvalidModule)
		}
		if seenSlots[name] {
			if err := p.duplicate("items", name); err != nil {
				return nil, err
			}
			continue
		}
		seenSlots[name] = true

		slot := ItemSlot{Slot: name}
		seenMods := make(map[string]bool)
		for _, mv := range v.Get("mods").Array() {
			id := mv.Get("id").String()
			if id == "" {
				return nil, fmt.Errorf("%w: slot %q mod without id", ErrInvalidModule, name)
			}
			if seenMods[id] {
				if err := p.duplicate("items."+name, id); err != nil {
					return nil, err
				}
				continue
			}
			seenMods[id] = true

			raw := mv.Get("mod").String()
			mods, err := p.resolver.ResolveAll([]string{raw})
			if err != nil {
				return nil, fmt.Errorf("slot %q mod %q: %w", name, id, err)
			}
			if len(mods) == 0 {
				continue // dropped in lenient mode
			}
			slot.Mods = append(slot.Mods, ItemMod{
				ID:       id,
				LevelReq: int(mv.Get("levelReq").Int()),
				Raw:      raw,
				Mods:     mods,
			})
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func (p *parser) treeNodes(r gjson.Result) ([]TreeNode, error) {
	seen := make(map[string]bool)
	var nodes []TreeNode
	for _, v := range r.Array() {
		id := v.Get("name").String()
		if id == "" {
			return nil, fmt.Errorf("%w: tree node without name", ErrInvalidModule)
		}
		if seen[id] {
			if err := p.duplicate("tree", id); err != nil {
				return nil, err
			}
			continue
		}
		seen[id] = true

		raws := stringList(v.Get("mods"))
		mods, err := p.resolver.ResolveAll(raws)
		if err != nil {
			return nil, fmt.Errorf("tree node %q: %w", id, err)
		}
		nodes = append(nodes, TreeNode{
			ID:       id,
			Requires: stringList(v.Get("requires")),
			RawMods:  raws,
			Mods:     mods,
		})
	}

	for _, n := range nodes {
		for _, req := range n.Requires {
			if !seen[req] {
				return nil, fmt.Errorf("%w: tree node %q requires unknown node %q", ErrInvalidModule, n.ID, req)
			}
		}
	}
	return nodes, nil
}

func parseDefaults(r gjson.Result) ([]DefaultStat, error) {
	var defaults []DefaultStat
	for _, v := range r.Array() {
		name := v.Get("name").String()
		if name == "" {
			return nil, fmt.Errorf("%w: default stat without name", ErrInvalidModule)
		}
		vt, err := stat.ParseValueType(v.Get("valueType").String())
		if err != nil {
			return nil, fmt.Errorf("default stat %q: %w", name, err)
		}
		flags, err := stat.ParseFlags(v.Get("flags").String())
		if err != nil {
			return nil, fmt.Errorf("default stat %q: %w", name, err)
		}
		defaults = append(defaults, DefaultStat{
			Name:      name,
			ValueType: vt,
			Flags:     flags,
			Value:     v.Get("value").Float(),
			PerLevel:  v.Get("perLevel").Float(),
		})
	}
	return defaults, nil
}

func parseTemplates(r gjson.Result) ([]stat.Template, error) {
	var templates []stat.Template
	for _, v := range r.Array() {
		t := stat.Template{
			ID:          v.Get("id").String(),
			Description: v.Get("description").String(),
		}
		for _, sv := range v.Get("stats").Array() {
			vt, err := stat.ParseValueType(sv.Get("valueType").String())
			if err != nil {
				return nil, fmt.Errorf("template %q: %w", t.ID, err)
			}
			flags, err := stat.ParseFlags(sv.Get("flags").String())
			if err != nil {
				return nil, fmt.Errorf("template %q: %w", t.ID, err)
			}
			t.Stats = append(t.Stats, stat.TemplateStat{
				Name:               sv.Get("name").String(),
				ValueType:          vt,
				Flags:              flags,
				Placeholder:        int(sv.Get("placeholder").Int()),
				Value:              sv.Get("value").Float(),
				Negate:             sv.Get("negate").Bool(),
				PerStat:            sv.Get("perStat").String(),
				Divisor:            sv.Get("divisor").Float(),
				DivisorPlaceholder: int(sv.Get("divisorPlaceholder").Int()),
			})
		}
		templates = append(templates, t)
	}
	return templates, nil
}

func floatOr(r gjson.Result, def float64) float64 {
	if !r.Exists() {
		return def
	}
	return r.Float()
}

func parseEnemy(r gjson.Result) EnemyScaling {
	return EnemyScaling{
		BaseHealth:    floatOr(r.Get("baseHealth"), 20),
		HealthGrowth:  floatOr(r.Get("healthGrowth"), 1.15),
		BaseEssence:   floatOr(r.Get("baseEssence"), 1),
		EssenceGrowth: floatOr(r.Get("essenceGrowth"), 1.1),
	}
}

func parseProgression(r gjson.Result) Progression {
	return Progression{
		LevelCostBase:      floatOr(r.Get("levelCostBase"), 10),
		LevelCostGrowth:    floatOr(r.Get("levelCostGrowth"), 1.2),
		TreePointsPerLevel: int(floatOr(r.Get("treePointsPerLevel"), 1)),
		MaxLevel:           int(floatOr(r.Get("maxLevel"), 100)),
	}
}
