package bytediff

// tarjanSCC computes the strongly connected components of the CRWI
// digraph described by adj (adj[v] lists v's out-neighbours), using
// Tarjan's algorithm (1972) with an explicit call stack so arbitrarily
// deep chains of copy commands don't recurse.
//
// Returns, for each vertex, the id of the SCC it belongs to. A singleton
// vertex with no self-loop gets its own id; same id implies mutual
// reachability within the (possibly already partly removed) digraph this
// was built from.
func tarjanSCC(adj [][]int32) []int32 {
	n := len(adj)

	index := make([]int32, n)
	lowlink := make([]int32, n)
	onStack := make([]bool, n)
	sccID := make([]int32, n)

	for i := range index {
		index[i] = -1
	}

	var stack []int32

	var nextIndex, nextSCC int32

	type frame struct {
		v     int32
		child int
	}

	var call []frame

	for start := range adj {
		if index[start] != -1 {
			continue
		}

		call = call[:0]
		call = append(call, frame{v: int32(start)})
		index[start] = nextIndex
		lowlink[start] = nextIndex
		nextIndex++
		stack = append(stack, int32(start))
		onStack[start] = true

		for len(call) > 0 {
			top := &call[len(call)-1]
			v := top.v

			if top.child < len(adj[v]) {
				w := adj[v][top.child]
				top.child++

				switch {
				case index[w] == -1:
					index[w] = nextIndex
					lowlink[w] = nextIndex
					nextIndex++
					stack = append(stack, w)
					onStack[w] = true
					call = append(call, frame{v: w})
				case onStack[w] && index[w] < lowlink[v]:
					lowlink[v] = index[w]
				}

				continue
			}

			call = call[:len(call)-1]

			if len(call) > 0 {
				parent := &call[len(call)-1]
				if lowlink[v] < lowlink[parent.v] {
					lowlink[parent.v] = lowlink[v]
				}
			}

			if lowlink[v] == index[v] {
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					sccID[w] = nextSCC

					if w == v {
						break
					}
				}

				nextSCC++
			}
		}
	}

	return sccID
}
