package game

// Action is a single move by a player or by the game. All variants are
// comparable values so actions can key maps in the searchers.
type Action interface {
	action()
}

// TrainCardDealAction is the deck producing train cards. Whether they go to a
// player's hand or the face-up display depends on the current turn. Count is
// always the number dealt; Cards is empty when the deal is into an opponent's
// hand and hidden from the observer.
type TrainCardDealAction struct {
	Cards CardSet
	Count int
}

// DestinationCardDealAction is the deck producing destination cards for the
// player the current turn names. Count is always the number dealt; Cards is
// empty when the deal is hidden from the observer.
type DestinationCardDealAction struct {
	Cards DestinationCardSet
	Count int
}

// TrainCardPickAction is a player drawing a train card, either face down from
// the deck or a named face-up card.
type TrainCardPickAction struct {
	DrawKnown bool
	Selected  Color // meaningful only when DrawKnown
}

// DestinationCardPickAction is a player asking for destination cards to be
// dealt.
type DestinationCardPickAction struct{}

// DestinationCardSelectionAction is a player keeping a subset of the
// destination cards just dealt to them. Count is the number kept; Selected is
// empty when the observer cannot see which, and Count is HiddenCount when the
// observer cannot even see how many, as with initial selections before the
// reveal.
type DestinationCardSelectionAction struct {
	Selected DestinationCardSet
	Count    int
}

// BuildAction is a player building a route with the given train cards.
type BuildAction struct {
	Route RouteID
	Cards CardSet
}

// RevealDestinationCardSelectionsAction is the game announcing how many
// destination cards each player kept from the initial deal.
type RevealDestinationCardSelectionsAction struct {
	Kept [MaxPlayers]int
}

// RevealFinalDestinationCardsAction is the game revealing every player's
// destination cards for scoring.
type RevealFinalDestinationCardsAction struct {
	Cards [MaxPlayers]DestinationCardSet
}

// InitialDealAction is the game dealing starting hands to every player plus
// the face-up display.
type InitialDealAction struct {
	TrainCards       [MaxPlayers]CardSet
	DestinationCards [MaxPlayers]DestinationCardSet
	FaceUp           CardSet
}

// PassAction is a player passing their turn.
type PassAction struct{}

func (TrainCardDealAction) action()                  {}
func (DestinationCardDealAction) action()            {}
func (TrainCardPickAction) action()                  {}
func (DestinationCardPickAction) action()            {}
func (DestinationCardSelectionAction) action()       {}
func (BuildAction) action()                          {}
func (RevealDestinationCardSelectionsAction) action() {}
func (RevealFinalDestinationCardsAction) action()    {}
func (InitialDealAction) action()                    {}
func (PassAction) action()                           {}
