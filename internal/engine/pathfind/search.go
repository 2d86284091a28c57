package pathfind

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/grid"
)

const unvisited = -1

// search holds the per-query scratch state. It is discarded after one query.
type search struct {
	grid    grid.Grid
	blocked []bool
	start   grid.Cell
	goal    grid.Cell
}

// passable reports whether a search may step onto c. The endpoints are never
// walls: the goal holds the attack target, the start holds the attacker.
func (s *search) passable(c grid.Cell) bool {
	if c == s.goal || c == s.start {
		return true
	}
	return !s.blocked[s.grid.Index(c)]
}

func (s *search) newLinks() ([]int, []int) {
	dist := make([]int, s.grid.Cells())
	prev := make([]int, s.grid.Cells())
	for i := range dist {
		dist[i] = unvisited
		prev[i] = unvisited
	}
	return dist, prev
}

// bfs runs a single-frontier breadth-first search and stops as soon as the
// goal is dequeued.
func (s *search) bfs() []grid.Cell {
	dist, prev := s.newLinks()

	startIdx := s.grid.Index(s.start)
	goalIdx := s.grid.Index(s.goal)
	dist[startIdx] = 0

	queue := []grid.Cell{s.start}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		curIdx := s.grid.Index(cur)
		if curIdx == goalIdx {
			break
		}

		for _, n := range s.grid.Neighbors(cur) {
			nIdx := s.grid.Index(n)
			if dist[nIdx] != unvisited || !s.passable(n) {
				continue
			}
			dist[nIdx] = dist[curIdx] + 1
			prev[nIdx] = curIdx
			queue = append(queue, n)
		}
	}

	if dist[goalIdx] == unvisited {
		return nil
	}

	path := make([]grid.Cell, dist[goalIdx]+1)
	idx := goalIdx
	for i := len(path) - 1; i >= 0; i-- {
		if idx == unvisited {
			// broken predecessor chain
			return nil
		}
		path[i] = s.grid.CellAt(idx)
		idx = prev[idx]
	}
	if path[0] != s.start {
		return nil
	}
	return path
}

// side is one half of a bidirectional search
type side struct {
	dist     []int
	link     []int
	frontier []grid.Cell
}

// bidirectional expands whole layers alternately from the start and the goal.
// It stops after the first layer in which the two visited sets touch; every
// meeting found in that layer has the same total length, and the first one
// in expansion order wins.
func (s *search) bidirectional() []grid.Cell {
	fwdDist, fwdLink := s.newLinks()
	bwdDist, bwdLink := s.newLinks()
	fwd := &side{dist: fwdDist, link: fwdLink, frontier: []grid.Cell{s.start}}
	bwd := &side{dist: bwdDist, link: bwdLink, frontier: []grid.Cell{s.goal}}
	fwd.dist[s.grid.Index(s.start)] = 0
	bwd.dist[s.grid.Index(s.goal)] = 0

	meet := unvisited
	forward := true
	for len(fwd.frontier) > 0 && len(bwd.frontier) > 0 {
		if forward {
			meet = s.expand(fwd, bwd)
		} else {
			meet = s.expand(bwd, fwd)
		}
		if meet != unvisited {
			break
		}
		forward = !forward
	}

	if meet == unvisited {
		return nil
	}
	return s.splice(meet, fwd, bwd)
}

// expand advances one full layer of this side and returns the best meeting
// cell found, or unvisited.
func (s *search) expand(this, other *side) int {
	meet := unvisited
	best := 0

	next := make([]grid.Cell, 0, len(this.frontier)*2)
	for _, cur := range this.frontier {
		curIdx := s.grid.Index(cur)
		for _, n := range s.grid.Neighbors(cur) {
			nIdx := s.grid.Index(n)
			if this.dist[nIdx] != unvisited || !s.passable(n) {
				continue
			}
			this.dist[nIdx] = this.dist[curIdx] + 1
			this.link[nIdx] = curIdx
			next = append(next, n)

			if other.dist[nIdx] == unvisited {
				continue
			}
			total := this.dist[nIdx] + other.dist[nIdx]
			if meet == unvisited || total < best {
				meet = nIdx
				best = total
			}
		}
	}

	this.frontier = next
	return meet
}

// splice joins start..meet and meet..goal, emitting the meeting cell once
func (s *search) splice(meet int, fwd, bwd *side) []grid.Cell {
	length := fwd.dist[meet] + bwd.dist[meet] + 1
	path := make([]grid.Cell, length)

	idx := meet
	for i := fwd.dist[meet]; i >= 0; i-- {
		if idx == unvisited {
			return nil
		}
		path[i] = s.grid.CellAt(idx)
		idx = fwd.link[idx]
	}

	idx = bwd.link[meet]
	for i := fwd.dist[meet] + 1; i < length; i++ {
		if idx == unvisited {
			return nil
		}
		path[i] = s.grid.CellAt(idx)
		idx = bwd.link[idx]
	}

	if path[0] != s.start || path[length-1] != s.goal {
		return nil
	}
	return path
}
