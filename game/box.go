package game

import "fmt"

// Player identifies a player by seat order. NoPlayer marks turns owned by the
// game itself (dealing, reveals).
type Player int

const NoPlayer Player = -1

// City indexes into Box.Cities.
type City int

// Color indexes into Box.Colors. Wildcard is the locomotive slot in a CardSet;
// AnyColor marks gray routes that can be built with any single color.
type Color int

const (
	MaxColors          = 8
	MaxPlayers         = 5
	Wildcard     Color = MaxColors
	AnyColor     Color = -1
	unreachable        = 1 << 20
)

// RouteID indexes into Box.Routes.
type RouteID int

// Route is a single buildable connection between two cities. Routes between
// the same city pair are distinct parallel routes with their own IDs.
type Route struct {
	ID     RouteID
	A, B   City
	Color  Color // AnyColor for gray routes
	Length int
}

// DestinationCardID indexes into Box.DestinationCards.
type DestinationCardID int

// DestinationCard awards Value points when its two cities end up connected by
// the holder's routes, and costs Value points otherwise.
type DestinationCard struct {
	ID    DestinationCardID
	A, B  City
	Value int
}

// Box is the immutable setup of a game: the board, the decks, and the numeric
// rules. It is created once per game and never mutated.
type Box struct {
	Cities           []string
	Colors           []string
	Routes           []Route
	Players          []string
	DestinationCards []DestinationCard
	TrainCardDeck    CardSet

	StartingTrains         int
	StartingDestCardsRange [2]int // min to keep, count dealt
	DealtDestCardsRange    [2]int
	StartingTrainCards     int
	LongestPathBonus       int
	StartingScore          int
	DoubleRoutesMinPlayers int
	TrainsToEnd            int
	WildcardsToClear       int
	FaceUpTrainCards       int
	RoutePoints            map[int]int // route length -> points

	parallels    [][]RouteID // other routes between the same city pair
	baseDistance []int       // Floyd-Warshall table, len(Cities)^2
}

// RouteSpec declares one route of a board: two city names, a color name
// (empty for gray), and a length.
type RouteSpec struct {
	A, B   string
	Color  string
	Length int
}

// BoxConfig is the declarative input to NewBox.
type BoxConfig struct {
	Routes                 []RouteSpec
	Colors                 []string
	DestinationCards       []struct {
		A, B  string
		Value int
	}
	TrainCardCounts        map[string]int // color name -> count, "" for wildcards
	Players                []string
	StartingTrains         int
	StartingDestCardsRange [2]int
	DealtDestCardsRange    [2]int
	StartingTrainCards     int
	LongestPathBonus       int
	StartingScore          int
	DoubleRoutesMinPlayers int
	TrainsToEnd            int
	WildcardsToClear       int
	FaceUpTrainCards       int
	RoutePoints            map[int]int
}

// NewBox builds a Box from a declarative config, assigning dense indexes to
// cities, colors and routes and precomputing the base shortest-path table.
func NewBox(cfg BoxConfig) *Box {
	if len(cfg.Colors) > MaxColors {
		panic(fmt.Sprintf("box supports at most %d colors, got %d", MaxColors, len(cfg.Colors)))
	}
	if len(cfg.Players) > MaxPlayers {
		panic(fmt.Sprintf("box supports at most %d players, got %d", MaxPlayers, len(cfg.Players)))
	}

	colorIndex := make(map[string]Color, len(cfg.Colors))
	for i, name := range cfg.Colors {
		colorIndex[name] = Color(i)
	}

	cityIndex := make(map[string]City)
	var cities []string
	cityOf := func(name string) City {
		if id, ok := cityIndex[name]; ok {
			return id
		}
		id := City(len(cities))
		cityIndex[name] = id
		cities = append(cities, name)
		return id
	}

	routes := make([]Route, 0, len(cfg.Routes))
	for i, spec := range cfg.Routes {
		color := AnyColor
		if spec.Color != "" {
			c, ok := colorIndex[spec.Color]
			if !ok {
				panic(fmt.Sprintf("route %s-%s uses unknown color %q", spec.A, spec.B, spec.Color))
			}
			color = c
		}
		routes = append(routes, Route{
			ID:     RouteID(i),
			A:      cityOf(spec.A),
			B:      cityOf(spec.B),
			Color:  color,
			Length: spec.Length,
		})
	}

	cards := make([]DestinationCard, 0, len(cfg.DestinationCards))
	for i, spec := range cfg.DestinationCards {
		cards = append(cards, DestinationCard{
			ID:    DestinationCardID(i),
			A:     cityOf(spec.A),
			B:     cityOf(spec.B),
			Value: spec.Value,
		})
	}
	if len(cards) > 64 {
		panic(fmt.Sprintf("box supports at most 64 destination cards, got %d", len(cards)))
	}

	var deck CardSet
	for name, count := range cfg.TrainCardCounts {
		if name == "" {
			deck[Wildcard] = count
			continue
		}
		c, ok := colorIndex[name]
		if !ok {
			panic(fmt.Sprintf("train card deck uses unknown color %q", name))
		}
		deck[c] = count
	}

	box := &Box{
		Cities:                 cities,
		Colors:                 cfg.Colors,
		Routes:                 routes,
		Players:                cfg.Players,
		DestinationCards:       cards,
		TrainCardDeck:          deck,
		StartingTrains:         cfg.StartingTrains,
		StartingDestCardsRange: cfg.StartingDestCardsRange,
		DealtDestCardsRange:    cfg.DealtDestCardsRange,
		StartingTrainCards:     cfg.StartingTrainCards,
		LongestPathBonus:       cfg.LongestPathBonus,
		StartingScore:          cfg.StartingScore,
		DoubleRoutesMinPlayers: cfg.DoubleRoutesMinPlayers,
		TrainsToEnd:            cfg.TrainsToEnd,
		WildcardsToClear:       cfg.WildcardsToClear,
		FaceUpTrainCards:       cfg.FaceUpTrainCards,
		RoutePoints:            cfg.RoutePoints,
	}
	box.indexParallels()
	box.computeBaseDistances()
	return box
}

func (b *Box) indexParallels() {
	byPair := make(map[[2]City][]RouteID)
	for _, r := range b.Routes {
		pair := cityPair(r.A, r.B)
		byPair[pair] = append(byPair[pair], r.ID)
	}
	b.parallels = make([][]RouteID, len(b.Routes))
	for _, r := range b.Routes {
		for _, other := range byPair[cityPair(r.A, r.B)] {
			if other != r.ID {
				b.parallels[r.ID] = append(b.parallels[r.ID], other)
			}
		}
	}
}

// computeBaseDistances runs Floyd-Warshall over route lengths. The table backs
// Clusters and must exist before any Clusters value is made from this box.
func (b *Box) computeBaseDistances() {
	n := len(b.Cities)
	dist := make([]int, n*n)
	for i := range dist {
		dist[i] = unreachable
	}
	for i := 0; i < n; i++ {
		dist[i*n+i] = 0
	}
	for _, r := range b.Routes {
		a, c := int(r.A), int(r.B)
		if r.Length < dist[a*n+c] {
			dist[a*n+c] = r.Length
			dist[c*n+a] = r.Length
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			ik := dist[i*n+k]
			if ik == unreachable {
				continue
			}
			for j := 0; j < n; j++ {
				if d := ik + dist[k*n+j]; d < dist[i*n+j] {
					dist[i*n+j] = d
				}
			}
		}
	}
	b.baseDistance = dist
}

// ShortestPath returns the length of the shortest path between two cities over
// the full board, ignoring ownership of routes.
func (b *Box) ShortestPath(a, c City) int {
	d := b.baseDistance[int(a)*len(b.Cities)+int(c)]
	if d == unreachable {
		panic(fmt.Sprintf("no path between %s and %s", b.Cities[a], b.Cities[c]))
	}
	return d
}

// ParallelRoutes returns the other routes sharing a route's city pair.
func (b *Box) ParallelRoutes(id RouteID) []RouteID {
	return b.parallels[id]
}

// NextPlayer returns the player after p in turn order.
func (b *Box) NextPlayer(p Player) Player {
	return Player((int(p) + 1) % len(b.Players))
}

// NumColors is the number of non-wildcard colors in this box.
func (b *Box) NumColors() int {
	return len(b.Colors)
}

// CityByName looks a city up by name, for tests and drivers.
func (b *Box) CityByName(name string) City {
	for i, n := range b.Cities {
		if n == name {
			return City(i)
		}
	}
	panic(fmt.Sprintf("unknown city %q", name))
}

// RouteBetween finds the route between two named cities with the given color
// name ("" for gray). Panics if absent; intended for tests and drivers.
func (b *Box) RouteBetween(a, c string, color string) Route {
	ca, cc := b.CityByName(a), b.CityByName(c)
	want := AnyColor
	if color != "" {
		for i, n := range b.Colors {
			if n == color {
				want = Color(i)
			}
		}
	}
	for _, r := range b.Routes {
		if cityPair(r.A, r.B) == cityPair(ca, cc) && r.Color == want {
			return r
		}
	}
	panic(fmt.Sprintf("no %s route between %q and %q", color, a, c))
}

// DestinationBetween finds the destination card between two named cities.
func (b *Box) DestinationBetween(a, c string) DestinationCard {
	ca, cc := b.CityByName(a), b.CityByName(c)
	for _, card := range b.DestinationCards {
		if cityPair(card.A, card.B) == cityPair(ca, cc) {
			return card
		}
	}
	panic(fmt.Sprintf("no destination card between %q and %q", a, c))
}

func cityPair(a, b City) [2]City {
	if a > b {
		a, b = b, a
	}
	return [2]City{a, b}
}
