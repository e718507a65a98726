package game

type destSpec = struct {
	A, B  string
	Value int
}

// StandardBox is the full USA map setup.
func StandardBox(players []string) *Box {
	return NewBox(BoxConfig{
		Routes: []RouteSpec{
			{"Vancouver", "Calgary", "", 3},
			{"Vancouver", "Seattle", "", 1},
			{"Vancouver", "Seattle", "", 1},
			{"Calgary", "Seattle", "", 4},
			{"Seattle", "Helena", "yellow", 6},
			{"Calgary", "Helena", "", 4},
			{"Seattle", "Portland", "", 1},
			{"Seattle", "Portland", "", 1},
			{"Portland", "San-Francisco", "green", 5},
			{"Portland", "San-Francisco", "pink", 5},
			{"Portland", "Salt-Lake-City", "blue", 6},
			{"San-Francisco", "Salt-Lake-City", "orange", 5},
			{"San-Francisco", "Salt-Lake-City", "white", 5},
			{"Helena", "Salt-Lake-City", "pink", 3},
			{"San-Francisco", "Los-Angeles", "yellow", 3},
			{"San-Francisco", "Los-Angeles", "pink", 3},
			{"Los-Angeles", "Las-Vegas", "", 2},
			{"Salt-Lake-City", "Las-Vegas", "orange", 3},
			{"Calgary", "Winnipeg", "white", 6},
			{"Helena", "Winnipeg", "blue", 4},
			{"Los-Angeles", "Phoenix", "", 3},
			{"Los-Angeles", "El-Paso", "black", 6},
			{"Phoenix", "El-Paso", "", 3},
			{"Salt-Lake-City", "Denver", "red", 3},
			{"Salt-Lake-City", "Denver", "yellow", 3},
			{"Phoenix", "Denver", "white", 5},
			{"Helena", "Denver", "green", 4},
			{"Phoenix", "Santa-Fe", "", 3},
			{"El-Paso", "Santa-Fe", "", 2},
			{"Denver", "Santa-Fe", "", 2},
			{"El-Paso", "Houston", "green", 6},
			{"El-Paso", "Dallas", "red", 4},
			{"El-Paso", "Oklahoma-City", "yellow", 5},
			{"Santa-Fe", "Oklahoma-City", "blue", 3},
			{"Denver", "Oklahoma-City", "red", 4},
			{"Denver", "Kansas-City", "black", 4},
			{"Denver", "Kansas-City", "orange", 4},
			{"Denver", "Omaha", "pink", 4},
			{"Helena", "Omaha", "red", 5},
			{"Helena", "Duluth", "orange", 5},
			{"Winnipeg", "Duluth", "black", 4},
			{"Winnipeg", "Sault-St.-Marie", "", 6},
			{"Duluth", "Sault-St.-Marie", "", 3},
			{"Duluth", "Omaha", "", 2},
			{"Duluth", "Omaha", "", 2},
			{"Kansas-City", "Omaha", "", 1},
			{"Kansas-City", "Omaha", "", 1},
			{"Kansas-City", "Oklahoma-City", "", 2},
			{"Kansas-City", "Oklahoma-City", "", 2},
			{"Dallas", "Oklahoma-City", "", 2},
			{"Dallas", "Oklahoma-City", "", 2},
			{"Dallas", "Houston", "", 2},
			{"Dallas", "Houston", "", 2},
			{"Oklahoma-City", "Little-Rock", "", 2},
			{"Dallas", "Little-Rock", "", 2},
			{"Houston", "New-Orleans", "", 2},
			{"Little-Rock", "New-Orleans", "green", 3},
			{"Kansas-City", "Saint-Louis", "blue", 2},
			{"Kansas-City", "Saint-Louis", "pink", 2},
			{"Little-Rock", "Saint-Louis", "", 2},
			{"Omaha", "Chicago", "blue", 4},
			{"Duluth", "Chicago", "red", 3},
			{"Duluth", "Toronto", "pink", 6},
			{"Sault-St.-Marie", "Toronto", "", 2},
			{"Sault-St.-Marie", "Montreal", "black", 5},
			{"Toronto", "Montreal", "", 3},
			{"New-Orleans", "Miami", "red", 6},
			{"New-Orleans", "Atlanta", "yellow", 4},
			{"New-Orleans", "Atlanta", "orange", 4},
			{"Little-Rock", "Nashville", "white", 3},
			{"Saint-Louis", "Nashville", "", 2},
			{"Nashville", "Atlanta", "", 1},
			{"Atlanta", "Miami", "blue", 5},
			{"Charleston", "Miami", "pink", 4},
			{"Atlanta", "Charleston", "", 2},
			{"Atlanta", "Raleigh", "", 2},
			{"Atlanta", "Raleigh", "", 2},
			{"Charleston", "Raleigh", "", 2},
			{"Nashville", "Raleigh", "black", 3},
			{"Chicago", "Saint-Louis", "green", 2},
			{"Chicago", "Saint-Louis", "white", 2},
			{"Chicago", "Pittsburgh", "orange", 3},
			{"Chicago", "Pittsburgh", "black", 3},
			{"Saint-Louis", "Pittsburgh", "green", 5},
			{"Nashville", "Pittsburgh", "yellow", 4},
			{"Chicago", "Toronto", "white", 4},
			{"Raleigh", "Pittsburgh", "", 2},
			{"Raleigh", "Washington", "", 2},
			{"Raleigh", "Washington", "", 2},
			{"Pittsburgh", "Washington", "", 2},
			{"Toronto", "Pittsburgh", "", 2},
			{"Pittsburgh", "New-York", "white", 2},
			{"Pittsburgh", "New-York", "green", 2},
			{"Washington", "New-York", "orange", 2},
			{"Washington", "New-York", "black", 2},
			{"Boston", "New-York", "yellow", 2},
			{"Boston", "New-York", "red", 2},
			{"New-York", "Montreal", "blue", 3},
			{"Montreal", "Boston", "", 2},
			{"Montreal", "Boston", "", 2},
		},
		Colors: []string{"pink", "white", "blue", "yellow", "orange", "black", "red", "green"},
		DestinationCards: []destSpec{
			{"Helena", "Los-Angeles", 8},
			{"Portland", "Nashville", 17},
			{"Portland", "Phoenix", 11},
			{"Montreal", "Atlanta", 9},
			{"Montreal", "New-Orleans", 13},
			{"Winnipeg", "Little-Rock", 11},
			{"Sault-St.-Marie", "Oklahoma-City", 9},
			{"Boston", "Miami", 12},
			{"San-Francisco", "Atlanta", 17},
			{"Toronto", "Miami", 10},
			{"Winnipeg", "Houston", 12},
			{"Chicago", "New-Orleans", 7},
			{"Los-Angeles", "Miami", 20},
			{"Sault-St.-Marie", "Nashville", 8},
			{"New-York", "Atlanta", 6},
			{"Duluth", "Houston", 8},
			{"Calgary", "Salt-Lake-City", 7},
			{"Denver", "El-Paso", 4},
			{"Duluth", "El-Paso", 10},
			{"Los-Angeles", "New-York", 21},
			{"Calgary", "Phoenix", 13},
			{"Chicago", "Santa-Fe", 9},
			{"Denver", "Pittsburgh", 11},
			{"Dallas", "New-York", 11},
			{"Vancouver", "Santa-Fe", 13},
			{"Los-Angeles", "Chicago", 16},
			{"Kansas-City", "Houston", 5},
			{"Seattle", "Los-Angeles", 9},
			{"Vancouver", "Montreal", 20},
			{"Seattle", "New-York", 22},
		},
		TrainCardCounts: map[string]int{
			"pink": 12, "white": 12, "blue": 12, "yellow": 12,
			"orange": 12, "black": 12, "red": 12, "green": 12,
			"": 14,
		},
		Players:                players,
		StartingTrains:         45,
		StartingDestCardsRange: [2]int{2, 3},
		DealtDestCardsRange:    [2]int{1, 3},
		StartingTrainCards:     4,
		LongestPathBonus:       10,
		StartingScore:          1,
		DoubleRoutesMinPlayers: 4,
		TrainsToEnd:            2,
		WildcardsToClear:       3,
		FaceUpTrainCards:       5,
		RoutePoints:            map[int]int{1: 1, 2: 2, 3: 4, 4: 7, 5: 10, 6: 15},
	})
}

// SmallBox is a six-city setup used by tests and fast experiments.
func SmallBox(players []string) *Box {
	return NewBox(BoxConfig{
		Routes: []RouteSpec{
			{"A", "C", "red", 1},
			{"A", "E", "", 2},
			{"B", "C", "blue", 1},
			{"C", "D", "blue", 1},
			{"C", "D", "", 1},
			{"D", "E", "", 1},
			{"D", "F", "red", 1},
		},
		Colors: []string{"red", "blue"},
		DestinationCards: []destSpec{
			{"A", "F", 6},
			{"A", "E", 3},
			{"B", "D", 4},
			{"C", "D", 1},
			{"C", "F", 2},
			{"E", "F", 2},
		},
		TrainCardCounts:        map[string]int{"red": 10, "blue": 10, "": 8},
		Players:                players,
		StartingTrains:         5,
		StartingDestCardsRange: [2]int{1, 2},
		DealtDestCardsRange:    [2]int{1, 2},
		StartingTrainCards:     1,
		LongestPathBonus:       5,
		StartingScore:          1,
		DoubleRoutesMinPlayers: 3,
		TrainsToEnd:            1,
		WildcardsToClear:       2,
		FaceUpTrainCards:       2,
		RoutePoints:            map[int]int{1: 1, 2: 3},
	})
}
