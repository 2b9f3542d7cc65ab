package simulation

// Rand is the randomness a search draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// GetRandoms draws up to n elements from items without replacement.
// When eq is non-nil, every element equal to a drawn one is removed from
// the pool as well, so equal values are never drawn twice. items is not
// modified.
func GetRandoms[T any](rng Rand, items []T, n int, eq func(a, b T) bool) []T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	pool := make([]T, len(items))
	copy(pool, items)

	out := make([]T, 0, min(n, len(pool)))
	for len(out) < n && len(pool) > 0 {
		i := rng.IntN(len(pool))
		picked := pool[i]
		out = append(out, picked)

		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		if eq == nil {
			continue
		}
		kept := pool[:0]
		for _, v := range pool {
			if !eq(v, picked) {
				kept = append(kept, v)
			}
		}
		pool = kept
	}
	return out
}
