package bytediff

import (
	"container/heap"
	"sort"
)

// Stats summarises one MakeInplace conversion.
type Stats struct {
	NumCopies       int
	NumAdds         int
	Edges           int
	CyclesBroken    int
	CopiesConverted int
	BytesConverted  int
}

type copyNode struct {
	src, dst, length int
}

// keyedHeap orders vertex indices by (copies[i].length, i), the composite
// key used for both the Kahn ready queue and Localmin's cycle-victim
// tie-break so schedules are deterministic.
type keyedHeap struct {
	idx    []int32
	copies []copyNode
}

func (h keyedHeap) Len() int { return len(h.idx) }
func (h keyedHeap) Less(i, j int) bool {
	a, b := h.idx[i], h.idx[j]
	if h.copies[a].length != h.copies[b].length {
		return h.copies[a].length < h.copies[b].length
	}

	return a < b
}
func (h keyedHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }
func (h *keyedHeap) Push(x any)   { h.idx = append(h.idx, x.(int32)) }
func (h *keyedHeap) Pop() any {
	old := h.idx
	n := len(old)
	v := old[n-1]
	h.idx = old[:n-1]

	return v
}

// MakeInplace converts a relative Command sequence into an in-place
// executable PlacedCommand sequence (Burns, Long & Stockmeyer, IEEE TKDE
// 2003): it builds the CRWI (Copy-Read/Write-Intersection) digraph over
// the copy commands, pre-decomposes it into strongly connected components,
// and produces a topological schedule via Kahn's algorithm. Each time the
// schedule stalls on a cycle, one copy, chosen by the CyclePolicy, is
// converted into a literal add.
func MakeInplace(r []byte, commands []Command, policy CyclePolicy) ([]PlacedCommand, Stats) {
	var stats Stats

	if len(commands) == 0 {
		return nil, stats
	}

	// Phase 1: placement.
	copies := make([]copyNode, 0, len(commands))

	type addNode struct {
		dst  int
		data []byte
	}

	var adds []addNode

	writePos := 0

	for _, c := range commands {
		switch c.Kind {
		case KindCopy:
			copies = append(copies, copyNode{src: c.Offset, dst: writePos, length: c.Length})
			writePos += c.Length
		case KindAdd:
			adds = append(adds, addNode{dst: writePos, data: c.Data})
			writePos += len(c.Data)
		}
	}

	n := len(copies)
	if n == 0 {
		stats.NumAdds = len(adds)

		out := make([]PlacedCommand, len(adds))
		for i, a := range adds {
			out[i] = PlacedCommand{Kind: KindAdd, Dst: a.dst, Data: a.data}
		}

		return out, stats
	}

	// Phase 2: CRWI digraph via sorted-by-dst sweep. Write intervals are
	// pairwise disjoint, so for copy i's read interval every write starting
	// inside it overlaps it, plus at most one write starting before it.
	adj := make([][]int32, n)
	inDeg := make([]int, n)

	writeSorted := make([]int32, n)
	for i := range writeSorted {
		writeSorted[i] = int32(i)
	}

	sort.Slice(writeSorted, func(a, b int) bool {
		return copies[writeSorted[a]].dst < copies[writeSorted[b]].dst
	})

	writeStarts := make([]int, n)
	for i, j := range writeSorted {
		writeStarts[i] = copies[j].dst
	}

	addEdge := func(i, j int32) {
		adj[i] = append(adj[i], j)
		inDeg[j]++
		stats.Edges++
	}

	for i := 0; i < n; i++ {
		si, li := copies[i].src, copies[i].length
		readEnd := si + li

		lo := sort.SearchInts(writeStarts, si)
		hi := sort.SearchInts(writeStarts, readEnd)

		if lo > 0 {
			j := writeSorted[lo-1]
			if int(j) != i {
				dj, lj := copies[j].dst, copies[j].length
				if dj+lj > si {
					addEdge(int32(i), j)
				}
			}
		}

		for k := lo; k < hi; k++ {
			j := writeSorted[k]
			if int(j) != i {
				addEdge(int32(i), j)
			}
		}
	}

	// Phase 3: strongly connected component pre-decomposition, so cycle
	// search during Kahn stalls is restricted to the stalled vertex's own
	// component instead of rescanning the whole graph.
	sccID := tarjanSCC(adj)

	// Phase 4: Kahn schedule with a (length, index) min-heap and
	// scc-filtered cycle breaking.
	removed := make([]bool, n)
	topoOrder := make([]int32, 0, n)

	h := &keyedHeap{copies: copies}
	for i := 0; i < n; i++ {
		if inDeg[i] == 0 {
			h.idx = append(h.idx, int32(i))
		}
	}

	heap.Init(h)

	processed := 0

	release := func(v int32) {
		removed[v] = true
		processed++

		for _, w := range adj[v] {
			if removed[w] {
				continue
			}

			inDeg[w]--

			if inDeg[w] == 0 {
				heap.Push(h, w)
			}
		}
	}

	for processed < n {
		for h.Len() > 0 {
			v := heap.Pop(h).(int32)
			if removed[v] {
				continue
			}

			topoOrder = append(topoOrder, v)
			release(v)
		}

		if processed >= n {
			break
		}

		victim := chooseVictim(copies, adj, removed, sccID, policy)

		stats.CyclesBroken++
		stats.CopiesConverted++
		stats.BytesConverted += copies[victim].length

		cn := copies[victim]
		adds = append(adds, addNode{dst: cn.dst, data: cloneBytes(r[cn.src : cn.src+cn.length])})

		release(victim)
	}

	result := make([]PlacedCommand, 0, len(topoOrder)+len(adds))

	for _, i := range topoOrder {
		cn := copies[i]
		result = append(result, PlacedCommand{Kind: KindCopy, Src: cn.src, Dst: cn.dst, Length: cn.length})
	}

	stats.NumCopies = len(topoOrder)

	for _, a := range adds {
		result = append(result, PlacedCommand{Kind: KindAdd, Dst: a.dst, Data: a.data})
	}

	stats.NumAdds = len(result) - stats.NumCopies

	return result, stats
}

// chooseVictim picks the copy command whose conversion to an add breaks a
// stall. Constant takes the first not-yet-removed vertex. Localmin
// restricts the cycle search to the SCC of that same vertex — the
// component was computed once up front, so the DFS follows only edges
// inside that component — and picks the (length, index)-minimal vertex on
// the discovered cycle. If that component holds no remaining cycle, Localmin
// also takes the first not-yet-removed vertex; other components are not
// searched.
func chooseVictim(copies []copyNode, adj [][]int32, removed []bool, sccID []int32, policy CyclePolicy) int32 {
	var fallback int32 = -1

	for i := range removed {
		if !removed[i] {
			fallback = int32(i)
			break
		}
	}

	if policy == Constant {
		return fallback
	}

	cycle := findCycleInSCC(adj, removed, sccID[fallback], sccID)
	if cycle == nil {
		return fallback
	}

	best := cycle[0]
	for _, v := range cycle[1:] {
		if copies[v].length < copies[best].length || (copies[v].length == copies[best].length && v < best) {
			best = v
		}
	}

	return best
}

// findCycleInSCC runs the standard three-color iterative DFS cycle search,
// but only over vertices whose component id equals target — the graph
// outside that component cannot contribute to a cycle through it, since
// SCC membership is a mutual-reachability invariant unaffected by removing
// already-scheduled vertices.
func findCycleInSCC(adj [][]int32, removed []bool, target int32, sccID []int32) []int32 {
	n := len(adj)
	color := make([]byte, n) // 0 unvisited, 1 on-path, 2 done

	var path []int32

	type frame struct {
		v     int32
		child int
	}

	for start := 0; start < n; start++ {
		if sccID[start] != target || removed[start] || color[start] != 0 {
			continue
		}

		color[start] = 1
		path = append(path, int32(start))

		stack := []frame{{v: int32(start)}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			v := top.v
			advanced := false

			for top.child < len(adj[v]) {
				w := adj[v][top.child]
				top.child++

				if removed[w] || sccID[w] != target {
					continue
				}

				if color[w] == 1 {
					pos := -1

					for i, x := range path {
						if x == w {
							pos = i
							break
						}
					}

					return append([]int32(nil), path[pos:]...)
				}

				if color[w] == 0 {
					color[w] = 1
					path = append(path, w)
					stack = append(stack, frame{v: w})
					advanced = true

					break
				}
			}

			if !advanced {
				stack = stack[:len(stack)-1]
				color[v] = 2
				path = path[:len(path)-1]
			}
		}
	}

	return nil
}
