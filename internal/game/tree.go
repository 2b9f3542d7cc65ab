package game

import (
	"fmt"
	"slices"

	"github.com/udisondev/essence/internal/moddb"
)

// Allocated returns the allocated tree node ids in allocation order.
func (p *Player) Allocated() []string { return slices.Clone(p.nodes) }

// IsAllocated reports whether node id is allocated.
func (p *Player) IsAllocated(id string) bool {
	_, ok := p.nodeSrc[id]
	return ok
}

// Allocate spends a tree point on node id. The node must have no
// requirements or at least one of them allocated.
func (p *Player) Allocate(id string) error {
	n, ok := p.module.TreeNode(id)
	if !ok {
		return fmt.Errorf("tree node %q: %w", id, ErrUnknownNode)
	}
	if p.IsAllocated(id) {
		return fmt.Errorf("tree node %q: %w", id, ErrAlreadyAllocated)
	}
	if p.treePoints <= 0 {
		return ErrNoTreePoints
	}
	if len(n.Requires) > 0 && !slices.ContainsFunc(n.Requires, p.IsAllocated) {
		return fmt.Errorf("tree node %q needs one of %v: %w", id, n.Requires, ErrRequirementMissing)
	}

	src := moddb.NewSource("tree:" + id)
	p.mods.Add(src, n.Mods...)
	p.nodeSrc[id] = src
	p.nodes = append(p.nodes, id)
	p.treePoints--
	p.changed(ChangeTree)
	return nil
}

// Deallocate refunds node id. A node cannot be refunded while an allocated
// node depends on it and has no other allocated requirement.
func (p *Player) Deallocate(id string) error {
	src, ok := p.nodeSrc[id]
	if !ok {
		return fmt.Errorf("tree node %q: %w", id, ErrNotAllocated)
	}
	for _, other := range p.nodes {
		if other == id {
			continue
		}
		n, _ := p.module.TreeNode(other)
		if n == nil || !slices.Contains(n.Requires, id) {
			continue
		}
		stillReached := slices.ContainsFunc(n.Requires, func(r string) bool {
			return r != id && p.IsAllocated(r)
		})
		if !stillReached {
			return fmt.Errorf("tree node %q is required by %q: %w", id, other, ErrNodeRequired)
		}
	}

	p.mods.RemoveBySource(src)
	delete(p.nodeSrc, id)
	p.nodes = slices.DeleteFunc(p.nodes, func(s string) bool { return s == id })
	p.treePoints++
	p.changed(ChangeTree)
	return nil
}
