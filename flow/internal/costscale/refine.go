package costscale

import "math"

const (
	white = iota
	gray
	black
)

// frame is one stack entry of the iterative admissible-subgraph DFS: the
// vertex being explored and how far its out-edge scan has progressed.
// Modeled as explicit state rather than recursion so a discovered cycle can
// be canceled and the walk restarted without unwinding a call stack,
// adapted from the teacher's recursive White/Gray/Black topological sort
// (dfs/topological.go) to this iterative, index-keyed shape.
type frame struct {
	v      int
	arcIdx int
}

// refine implements C7. It tries to prove the current flow is already
// eps-optimal via a topological order of the admissible residual subgraph;
// if it isn't, it still tightens potentials along the way (a standard
// partial-progress heuristic) and reports failure so the caller falls back
// to saturate+discharge.
func (s *Solver) refine() bool {
	order := s.topoOrderCancelingCycles()

	rank := s.rankBuf
	for i := range rank {
		rank[i] = 0
	}
	var maxRank int64

	// order is DFS post-order, i.e. already reverse topological order: for
	// every admissible arc u->v, v finishes (and is appended) before u.
	for _, u := range order {
		for _, e32 := range s.g.OutEdges(u) {
			e := int(e32)
			if s.g.Cap(e) <= 0 {
				continue
			}
			rc := s.reducedCost(e)
			if rc >= 0 {
				continue
			}
			v := s.g.Head(e)
			k := floorBiasedQuotient(-rc, s.eps)
			candidate := rank[u] + k
			if candidate > rank[v] {
				rank[v] = candidate
			}
			if rank[v] > maxRank {
				maxRank = rank[v]
			}
		}
	}

	if maxRank == 0 {
		return true
	}

	bq := newBucketQueue(s.n, int(maxRank)+1)
	inBucket := make([]bool, s.n)
	for v := 0; v < s.n; v++ {
		if rank[v] > 0 {
			bq.insert(int(rank[v]), v)
			inBucket[v] = true
		}
	}

	for r := int(maxRank); r >= 1; r-- {
		for {
			u, ok := bq.popFront(r)
			if !ok {
				break
			}
			inBucket[u] = false
			for _, e32 := range s.g.OutEdges(u) {
				e := int(e32)
				if s.g.Cap(e) <= 0 {
					continue
				}
				rc := s.reducedCost(e)
				if rc >= 0 {
					continue
				}
				v := s.g.Head(e)
				k := floorBiasedQuotient(-rc, s.eps)
				candidate := int64(r) + k
				if candidate > maxRank {
					candidate = maxRank
				}
				if candidate > rank[v] {
					if inBucket[v] {
						bq.remove(int(rank[v]), v)
					}
					rank[v] = candidate
					if candidate >= 1 {
						bq.insert(int(candidate), v)
						inBucket[v] = true
					}
				}
			}
			s.potential[u] -= int64(r) * s.eps
			s.g.ResetCursor(u)
		}
	}

	return false
}

// floorBiasedQuotient computes k = floor((negRC - 0.5) / eps) in integer
// arithmetic (open-question decision (a)): negRC is -rc for an arc with
// rc < 0, so negRC > 0 and eps >= 1.
func floorBiasedQuotient(negRC, eps int64) int64 {
	numerator := 2*negRC - 1
	denominator := 2 * eps
	q := numerator / denominator
	if numerator%denominator != 0 && (numerator < 0) != (denominator < 0) {
		q--
	}
	return q
}

// topoOrderCancelingCycles performs an iterative DFS over the admissible
// residual subgraph (cap>0, reduced cost<0). Every time it closes a cycle
// (a back-edge to a gray vertex) it cancels the cycle in place and restarts
// the whole walk from scratch, since canceling a cycle can change which
// arcs are still admissible anywhere in the graph.
func (s *Solver) topoOrderCancelingCycles() []int {
	for {
		order, cyclic := s.topoAttempt()
		if !cyclic {
			return order
		}
	}
}

func (s *Solver) topoAttempt() (order []int, cyclic bool) {
	color := s.colorBuf
	for i := range color {
		color[i] = white
	}
	order = make([]int, 0, s.n)
	stack := s.frameBuf[:0]
	path := s.pathBuf2[:0]

	for root := 0; root < s.n; root++ {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack = append(stack, frame{v: root, arcIdx: 0})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			out := s.g.OutEdges(top.v)
			if top.arcIdx >= len(out) {
				color[top.v] = black
				order = append(order, top.v)
				stack = stack[:len(stack)-1]
				if len(path) > 0 {
					path = path[:len(path)-1]
				}
				continue
			}
			e := int(out[top.arcIdx])
			top.arcIdx++
			if s.g.Cap(e) <= 0 || s.reducedCost(e) >= 0 {
				continue
			}
			w := s.g.Head(e)
			switch color[w] {
			case gray:
				s.cancelCycle(path, e)
				s.frameBuf = stack[:0]
				s.pathBuf2 = path[:0]
				return nil, true
			case white:
				color[w] = gray
				path = append(path, e)
				stack = append(stack, frame{v: w, arcIdx: 0})
			}
		}
	}
	s.frameBuf = stack[:0]
	s.pathBuf2 = path[:0]
	return order, false
}

// cancelCycle augments the bottleneck amount of flow around the cycle
// formed by the suffix of path starting at the vertex closingArc points
// back into, plus closingArc itself.
func (s *Solver) cancelCycle(path []int, closingArc int) {
	w := s.g.Head(closingArc)
	start := 0
	for i, a := range path {
		if s.g.Tail(a) == w {
			start = i
			break
		}
	}

	delta := int64(math.MaxInt64)
	for _, a := range path[start:] {
		if c := s.g.Cap(a); c < delta {
			delta = c
		}
	}
	if c := s.g.Cap(closingArc); c < delta {
		delta = c
	}

	for _, a := range path[start:] {
		s.g.Push(a, delta)
	}
	s.g.Push(closingArc, delta)
}
