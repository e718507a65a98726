package engine

import (
	"golang.org/x/exp/rand"

	"trains/game"
)

// dealer draws the random cards the game actor hands out. It samples from
// the authoritative state's piles, so it never holds card positions of its
// own that could drift out of step with the state.
type dealer struct {
	rng *rand.Rand
}

func newDealer(seed uint64) *dealer {
	return &dealer{rng: rand.New(rand.NewSource(seed))}
}

// initialDeal draws every player's starting train and destination cards plus
// the face-up display.
func (d *dealer) initialDeal(s *game.KnownState) game.InitialDealAction {
	box := s.Box()
	trainPile := s.TrainCardPileDistribution()
	destPile := destinationPile(s)

	var a game.InitialDealAction
	for p := range box.Players {
		cards := game.SampleCards(d.rng, trainPile, box.StartingTrainCards)
		trainPile, _ = game.Subtract(trainPile, cards)
		a.TrainCards[p] = cards

		dest := d.sampleDestinations(destPile, box.StartingDestCardsRange[1])
		destPile = destPile.Diff(dest)
		a.DestinationCards[p] = dest
	}
	a.FaceUp = game.SampleCards(d.rng, trainPile, box.FaceUpTrainCards)
	return a
}

// trainDeal draws the cards for a pending train card deal, folding the
// discard pile in when the draw pile cannot cover it.
func (d *dealer) trainDeal(s *game.KnownState, count int) game.TrainCardDealAction {
	pile := s.TrainCardPileDistribution()
	if s.TrainCardPileSize() < count {
		pile = game.Merge(pile, s.DiscardedTrainCards())
	}
	available := min(count, pile.Total())
	return game.TrainCardDealAction{
		Cards: game.SampleCards(d.rng, pile, available),
		Count: available,
	}
}

// destinationDeal draws the cards for a pending destination card deal,
// short when the pile is nearly empty.
func (d *dealer) destinationDeal(s *game.KnownState) game.DestinationCardDealAction {
	count := min(s.Box().DealtDestCardsRange[1], s.DestinationCardPileSize())
	cards := d.sampleDestinations(destinationPile(s), count)
	return game.DestinationCardDealAction{Cards: cards, Count: count}
}

func (d *dealer) sampleDestinations(pile game.DestinationCardSet, n int) game.DestinationCardSet {
	ids := pile.IDs()
	d.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	var drawn game.DestinationCardSet
	for _, id := range ids[:n] {
		drawn = drawn.Add(id)
	}
	return drawn
}

// destinationPile reconstructs the destination draw pile: every card the box
// has that no player holds, selected or not.
func destinationPile(s *game.KnownState) game.DestinationCardSet {
	var pile game.DestinationCardSet
	for _, card := range s.Box().DestinationCards {
		pile = pile.Add(card.ID)
	}
	for p := range s.Box().Players {
		hand := s.FullHand(game.Player(p))
		pile = pile.Diff(hand.DestinationCards).Diff(hand.UnselectedDestinationCards)
	}
	return pile
}
