package analysis

// DominatorTree computes immediate dominators using the Cooper-Harvey-
// Kennedy iterative algorithm over reverse-post-order, per the original
// Dominators.hpp this package is grounded on.
type DominatorTree struct {
	cfg   *CFG
	idoms []int // block index -> idom block index; -1 if none (entry or unreachable)
}

// BuildDominators computes the dominator tree for the function underlying
// cfg. cfg must already be built.
func BuildDominators(cfg *CFG) *DominatorTree {
	n := len(cfg.preds)
	d := &DominatorTree{cfg: cfg, idoms: make([]int, n)}
	for i := range d.idoms {
		d.idoms[i] = -1
	}
	if n == 0 {
		return d
	}

	entry := 0
	d.idoms[entry] = entry

	rpo := cfg.ReversePostOrder()
	changed := true
	for changed {
		changed = false
		for _, b := range rpo {
			if b == entry {
				continue
			}
			if !cfg.Reachable(b) {
				continue
			}
			newIdom := -1
			for _, p := range cfg.preds[b] {
				if d.idoms[p] == -1 {
					continue
				}
				if newIdom == -1 {
					newIdom = p
					continue
				}
				newIdom = d.intersect(newIdom, p)
			}
			if newIdom != -1 && d.idoms[b] != newIdom {
				d.idoms[b] = newIdom
				changed = true
			}
		}
	}
	return d
}

func (d *DominatorTree) intersect(a, b int) int {
	for a != b {
		for d.cfg.postNum[a] < d.cfg.postNum[b] {
			a = d.idoms[a]
		}
		for d.cfg.postNum[b] < d.cfg.postNum[a] {
			b = d.idoms[b]
		}
	}
	return a
}

// Idom returns the immediate dominator block index of b, or -1 if b is the
// entry block or unreachable.
func (d *DominatorTree) Idom(b int) int {
	if b == 0 {
		return -1
	}
	return d.idoms[b]
}

// Dominates reports whether block a dominates block b (walking b's idom
// chain). Every block dominates itself.
func (d *DominatorTree) Dominates(a, b int) bool {
	if !d.cfg.Reachable(b) {
		return false
	}
	cur := b
	for {
		if cur == a {
			return true
		}
		if cur == 0 {
			return false
		}
		cur = d.idoms[cur]
	}
}
