package searcher

import "trains/game"

// RbpcFactory builds the route building probability oracle used to reweight
// assumed hands: given candidate destination cards, how likely the player
// would have built the routes they visibly built.
type RbpcFactory func(s game.State, p game.Player) game.RouteBuildProbability

// DummyRbpc weights every destination hand equally.
func DummyRbpc(game.State, game.Player) game.RouteBuildProbability {
	return game.UnitRouteBuildProbability
}

// offPathPenalty is the likelihood factor for a built route that serves none
// of the assumed destination cards.
const offPathPenalty = 0.5

// PathRbpc scores destination hands by how well they explain the player's
// built routes: a route on a shortest path between some card's cities is
// expected, any other route is penalized.
func PathRbpc(s game.State, p game.Player) game.RouteBuildProbability {
	box := s.Box()
	var built []game.Route
	for _, r := range box.Routes {
		if s.RouteOwner(r.ID) == p {
			built = append(built, r)
		}
	}
	return func(cards game.DestinationCardSet, ok bool) float64 {
		if !ok || len(built) == 0 {
			return 1
		}
		prob := 1.0
		for _, r := range built {
			explained := false
			for _, id := range cards.IDs() {
				card := box.DestinationCards[id]
				if onShortestPath(box, r, card.A, card.B) {
					explained = true
					break
				}
			}
			if !explained {
				prob *= offPathPenalty
			}
		}
		return prob
	}
}

// onShortestPath reports whether a route lies on some shortest path between
// two cities on the empty board.
func onShortestPath(box *game.Box, r game.Route, a, b game.City) bool {
	direct := box.ShortestPath(a, b)
	return box.ShortestPath(a, r.A)+r.Length+box.ShortestPath(r.B, b) == direct ||
		box.ShortestPath(a, r.B)+r.Length+box.ShortestPath(r.A, b) == direct
}
