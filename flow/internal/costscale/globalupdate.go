package costscale

// globalUpdate implements C6: a reverse, bucketed-rank shortest-path sweep
// over admissible residual arcs, seeded from every deficit vertex
// (excess < 0), that tightens every reachable vertex's potential towards
// eps-optimality in one pass instead of relying purely on per-relabel
// progress.
func (s *Solver) globalUpdate() {
	rankUpperBound := int64(Alpha * s.n)
	bq := newBucketQueue(s.n, int(rankUpperBound)+1)
	rank := make([]int64, s.n)
	inBucket := make([]bool, s.n)

	var excessSum int64
	for v := 0; v < s.n; v++ {
		rank[v] = rankUpperBound
		if s.excess[v] < 0 {
			rank[v] = 0
			bq.insert(0, v)
			inBucket[v] = true
		}
		if s.excess[v] > 0 {
			excessSum += s.excess[v]
		}
	}
	if excessSum <= 0 {
		return
	}

	var rStar int64
outer:
	for r := int64(0); r <= rankUpperBound; r++ {
		for {
			u, ok := bq.popFront(int(r))
			if !ok {
				break
			}
			inBucket[u] = false
			for _, e32 := range s.g.OutEdges(u) {
				e := int(e32)
				inArc := s.g.Twin(e)
				if s.g.Cap(inArc) <= 0 {
					continue
				}
				v := s.g.Head(e)
				if rank[v] <= r {
					continue
				}
				nrc := (s.g.Cost(inArc) + s.potential[v] - s.potential[u]) / s.eps
				if nrc >= rankUpperBound {
					continue
				}
				candidate := r + 1 + nrc
				if candidate < rank[v] {
					if inBucket[v] {
						bq.remove(int(rank[v]), v)
					}
					rank[v] = candidate
					if candidate <= rankUpperBound {
						bq.insert(int(candidate), v)
						inBucket[v] = true
					}
					s.g.ResetCursor(v)
				}
			}
			rStar = r
			if s.excess[u] > 0 {
				excessSum -= s.excess[u]
				if excessSum <= 0 {
					break outer
				}
			}
		}
	}

	for v := 0; v < s.n; v++ {
		r := rank[v]
		if r > rStar {
			r = rStar
		}
		if r > 0 {
			s.potential[v] -= s.eps * r
			s.g.ResetCursor(v)
		}
	}
}
