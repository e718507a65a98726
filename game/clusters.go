package game

import "fmt"

// Clusters tracks the connected components a player has formed with built
// routes, together with the shortest remaining distance between every pair of
// components. Distances start from the box's base table and shrink to zero as
// routes join cities.
//
// Values are persistent: Connect returns a new Clusters and never mutates the
// receiver, so states sharing history can share the backing slices.
type Clusters struct {
	box  *Box
	comp []int // city index -> representative city index
	dist []int // flattened table between representatives, len(Cities)^2
}

// NewClusters places every city in its own cluster.
func NewClusters(box *Box) Clusters {
	comp := make([]int, len(box.Cities))
	for i := range comp {
		comp[i] = i
	}
	return Clusters{box: box, comp: comp, dist: box.baseDistance}
}

// Representative returns the canonical city of a city's cluster.
func (cl Clusters) Representative(c City) City {
	return City(cl.comp[c])
}

// Joined reports whether two cities are in the same cluster.
func (cl Clusters) Joined(a, b City) bool {
	return cl.comp[a] == cl.comp[b]
}

// Distance returns the shortest remaining distance between the clusters of
// two cities, zero when they are already joined. Distances run over the full
// board, treating every joined pair as distance zero.
func (cl Clusters) Distance(a, b City) int {
	d := cl.dist[cl.comp[a]*len(cl.box.Cities)+cl.comp[b]]
	if d >= unreachable {
		panic(fmt.Sprintf("no path between %s and %s", cl.box.Cities[a], cl.box.Cities[b]))
	}
	return d
}

// Connect merges the clusters of two cities and returns the result. The
// merged cluster keeps the smaller representative, distances to it become the
// minimum over the two halves, and every other pair is relaxed through it.
func (cl Clusters) Connect(a, b City) Clusters {
	ra, rb := cl.comp[a], cl.comp[b]
	if ra == rb {
		return cl
	}
	if ra > rb {
		ra, rb = rb, ra
	}
	n := len(cl.box.Cities)

	comp := make([]int, n)
	copy(comp, cl.comp)
	for i, c := range comp {
		if c == rb {
			comp[i] = ra
		}
	}

	dist := make([]int, n*n)
	copy(dist, cl.dist)
	for x := 0; x < n; x++ {
		if d := dist[rb*n+x]; d < dist[ra*n+x] {
			dist[ra*n+x] = d
			dist[x*n+ra] = d
		}
	}
	dist[ra*n+ra] = 0
	for x := 0; x < n; x++ {
		xa := dist[x*n+ra]
		if xa >= unreachable {
			continue
		}
		for y := 0; y < n; y++ {
			if d := xa + dist[ra*n+y]; d < dist[x*n+y] {
				dist[x*n+y] = d
			}
		}
	}
	return Clusters{box: cl.box, comp: comp, dist: dist}
}
