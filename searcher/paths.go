package searcher

import (
	"container/heap"

	"trains/game"
)

// bestRoutePath finds the cheapest set of unbuilt routes that would connect
// two cities for player p, treating p's clusters as already joined and
// opponents' routes as walls.
func bestRoutePath(s game.State, p game.Player, a, b game.City) ([]game.Route, bool) {
	return dijkstra(s, p, s.PlayerClusters(p), a, b)
}

// bestRoutePaths covers many city pairs with a greedy heuristic: repeatedly
// connect the pair with the shortest augmenting path, counting routes picked
// for earlier pairs as free. Finding the true minimum is NP-hard.
func bestRoutePaths(s game.State, p game.Player, pairs [][2]game.City) [][]game.Route {
	clusters := s.PlayerClusters(p)
	remaining := append([][2]game.City(nil), pairs...)
	var paths [][]game.Route
	for len(remaining) > 0 {
		bestIdx := -1
		var bestPath []game.Route
		bestCost := 0
		for i, pair := range remaining {
			if clusters.Joined(pair[0], pair[1]) {
				bestIdx, bestPath = i, nil
				break
			}
			path, ok := dijkstra(s, p, clusters, pair[0], pair[1])
			if !ok {
				continue
			}
			cost := 0
			for _, r := range path {
				cost += r.Length
			}
			if bestIdx == -1 || cost < bestCost {
				bestIdx, bestPath, bestCost = i, path, cost
			}
		}
		if bestIdx == -1 {
			// the rest cannot be connected at all
			break
		}
		if bestPath != nil {
			paths = append(paths, bestPath)
			for _, r := range bestPath {
				clusters = clusters.Connect(r.A, r.B)
			}
		}
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return paths
}

type pathNode struct {
	city game.City // cluster representative
	dist int
}

type pathQueue []pathNode

func (q pathQueue) Len() int            { return len(q) }
func (q pathQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q pathQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *pathQueue) Push(x any)         { *q = append(*q, x.(pathNode)) }
func (q *pathQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// dijkstra runs over the cluster-contracted board: nodes are the clusters,
// edges the unbuilt routes between different clusters, weighted by length.
func dijkstra(s game.State, p game.Player, clusters game.Clusters, a, b game.City) ([]game.Route, bool) {
	box := s.Box()
	if clusters.Joined(a, b) {
		return nil, true
	}

	// adjacency over representatives; keep only the cheapest usable route
	// between each pair of clusters
	type edge struct {
		to    game.City
		route game.Route
	}
	adj := make(map[game.City][]edge)
	for _, r := range box.Routes {
		if s.RouteOwner(r.ID) != game.NoPlayer {
			continue
		}
		ra, rb := clusters.Representative(r.A), clusters.Representative(r.B)
		if ra == rb {
			continue
		}
		adj[ra] = append(adj[ra], edge{to: rb, route: r})
		adj[rb] = append(adj[rb], edge{to: ra, route: r})
	}

	start, goal := clusters.Representative(a), clusters.Representative(b)
	dist := map[game.City]int{start: 0}
	prev := make(map[game.City]edge)
	done := make(map[game.City]bool)

	q := &pathQueue{{city: start, dist: 0}}
	for q.Len() > 0 {
		node := heap.Pop(q).(pathNode)
		if done[node.city] {
			continue
		}
		done[node.city] = true
		if node.city == goal {
			break
		}
		for _, e := range adj[node.city] {
			d := node.dist + e.route.Length
			if old, ok := dist[e.to]; !ok || d < old {
				dist[e.to] = d
				prev[e.to] = edge{to: node.city, route: e.route}
				heap.Push(q, pathNode{city: e.to, dist: d})
			}
		}
	}
	if !done[goal] {
		return nil, false
	}

	var path []game.Route
	for at := goal; at != start; {
		e := prev[at]
		path = append(path, e.route)
		at = e.to
	}
	return path, true
}

// cardsNeeded counts how many cards beyond the hand it takes to pay for all
// the routes in a path, spending matching colors first and wildcards as
// filler.
func cardsNeeded(hand game.CardSet, path []game.Route, box *game.Box) int {
	needed := 0
	for _, r := range path {
		color := r.Color
		if color == game.AnyColor {
			// gray routes take whichever color the hand has most of
			best := game.Color(0)
			for c := 1; c < box.NumColors(); c++ {
				if hand[c] > hand[best] {
					best = game.Color(c)
				}
			}
			color = best
		}
		spend := min(hand[color], r.Length)
		hand[color] -= spend
		short := r.Length - spend
		wild := min(hand[game.Wildcard], short)
		hand[game.Wildcard] -= wild
		needed += short - wild
	}
	return needed
}
