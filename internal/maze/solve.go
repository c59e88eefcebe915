package maze

// Solve returns the shortest path from Start to Goal, both included, found by
// breadth-first search over open cells. It returns nil if Goal is unreachable.
func (m *Maze) Solve() []Point {
	return m.ShortestPath(m.Start, m.Goal)
}

// ShortestPath returns the shortest open path between from and to.
func (m *Maze) ShortestPath(from, to Point) []Point {
	if !m.IsOpen(from) || !m.IsOpen(to) {
		return nil
	}

	prev := make(map[Point]Point)
	seen := map[Point]bool{from: true}
	queue := []Point{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			break
		}
		for _, n := range m.Neighbors(cur) {
			if seen[n] {
				continue
			}
			seen[n] = true
			prev[n] = cur
			queue = append(queue, n)
		}
	}

	if !seen[to] {
		return nil
	}

	var path []Point
	for p := to; ; p = prev[p] {
		path = append(path, p)
		if p == from {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Reachable returns every open cell connected to from.
func (m *Maze) Reachable(from Point) map[Point]bool {
	seen := make(map[Point]bool)
	if !m.IsOpen(from) {
		return seen
	}
	seen[from] = true
	stack := []Point{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range m.Neighbors(cur) {
			if !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return seen
}
