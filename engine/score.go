package engine

import "trains/game"

// FinalScores totals each player's points and awards the longest path bonus
// to every player tied for the longest continuous path.
func FinalScores(s *game.KnownState) []int {
	box := s.Box()
	scores := make([]int, len(box.Players))
	longest := make([]int, len(box.Players))
	best := 0
	for p := range box.Players {
		scores[p] = s.FullHand(game.Player(p)).Points
		longest[p] = LongestPath(s, game.Player(p))
		best = max(best, longest[p])
	}
	for p := range box.Players {
		if longest[p] == best && best > 0 {
			scores[p] += box.LongestPathBonus
		}
	}
	return scores
}

// LongestPath is the length of the player's longest continuous path: the
// longest walk over their routes that uses no route twice.
func LongestPath(s game.State, p game.Player) int {
	box := s.Box()
	var owned []game.Route
	for _, r := range box.Routes {
		if s.RouteOwner(r.ID) == p {
			owned = append(owned, r)
		}
	}
	if len(owned) == 0 {
		return 0
	}

	used := make([]bool, len(owned))
	var walk func(at game.City) int
	walk = func(at game.City) int {
		best := 0
		for i, r := range owned {
			if used[i] || (r.A != at && r.B != at) {
				continue
			}
			next := r.A
			if r.A == at {
				next = r.B
			}
			used[i] = true
			best = max(best, r.Length+walk(next))
			used[i] = false
		}
		return best
	}

	best := 0
	for _, r := range owned {
		best = max(best, walk(r.A), walk(r.B))
	}
	return best
}
