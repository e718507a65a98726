package game

import "fmt"

// CardSet is a multiset of train cards, indexed by color with the wildcard
// count in the last slot. The fixed-size array keeps it comparable and cheap
// to copy, which the search algorithms lean on heavily.
type CardSet [MaxColors + 1]int

// SingleCard is a CardSet holding one card of the given color.
func SingleCard(c Color) CardSet {
	var s CardSet
	s[c] = 1
	return s
}

// Total is the number of cards in the set.
func (s CardSet) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// With returns a copy with the count of c adjusted by delta.
func (s CardSet) With(c Color, delta int) CardSet {
	s[c] += delta
	return s
}

// Merge sums any number of card sets elementwise.
func Merge(sets ...CardSet) CardSet {
	var out CardSet
	for _, s := range sets {
		for c, n := range s {
			out[c] += n
		}
	}
	return out
}

// Subtract removes minus from s elementwise, clamping at zero. Any shortfall
// is returned in leftover instead of going negative; callers use leftover to
// distinguish "cards missing" from a hard error.
func Subtract(s, minus CardSet) (result, leftover CardSet) {
	result = s
	for c, n := range minus {
		diff := result[c] - n
		if diff >= 0 {
			result[c] = diff
		} else {
			result[c] = 0
			leftover[c] = -diff
		}
	}
	return result, leftover
}

// Normalized returns the per-color share of the set, all zeros if empty.
func (s CardSet) Normalized() [MaxColors + 1]float64 {
	var out [MaxColors + 1]float64
	total := s.Total()
	if total == 0 {
		return out
	}
	for c, n := range s {
		out[c] = float64(n) / float64(total)
	}
	return out
}

// Format renders the set with color names for logs and error messages.
func (s CardSet) Format(box *Box) string {
	out := ""
	for c, n := range s {
		if n == 0 {
			continue
		}
		name := "wildcard"
		if Color(c) != Wildcard {
			name = box.Colors[c]
		}
		if out != "" {
			out += ", "
		}
		out += fmt.Sprintf("%d %s", n, name)
	}
	if out == "" {
		return "no cards"
	}
	return out
}

type probKey struct {
	needed CardSet
	draws  int
	pile   CardSet
}

// ProbabilityOfCards returns the exact probability that a hand of handSize
// cards drawn without replacement from a pile of the given composition
// contains at least the needed sub-multiset.
//
// Returns exactly 1 when nothing is needed and exactly 0 when any needed
// count exceeds the pile's supply, without touching the recursion.
func ProbabilityOfCards(needed CardSet, handSize int, pile CardSet) float64 {
	memo := make(map[probKey]float64)
	return drawProbability(needed, handSize, pile, memo)
}

func drawProbability(needed CardSet, draws int, pile CardSet, memo map[probKey]float64) float64 {
	neededTotal := needed.Total()
	if neededTotal == 0 {
		return 1
	}
	for c, n := range needed {
		if n > pile[c] {
			return 0
		}
	}
	if draws < neededTotal {
		return 0
	}

	key := probKey{needed, draws, pile}
	if p, ok := memo[key]; ok {
		return p
	}

	pileTotal := pile.Total()
	if pileTotal == 0 {
		return 0
	}

	p := 0.0
	for c, n := range pile {
		if n == 0 {
			continue
		}
		rest := needed
		if rest[c] > 0 {
			rest[c]--
		}
		p += float64(n) / float64(pileTotal) *
			drawProbability(rest, draws-1, pile.With(Color(c), -1), memo)
	}
	memo[key] = p
	return p
}

// DestinationCardSet is a set of destination cards as a bitmask over card IDs.
type DestinationCardSet uint64

// NewDestinationCardSet builds a set from card IDs.
func NewDestinationCardSet(ids ...DestinationCardID) DestinationCardSet {
	var s DestinationCardSet
	for _, id := range ids {
		s = s.Add(id)
	}
	return s
}

func (s DestinationCardSet) Add(id DestinationCardID) DestinationCardSet {
	return s | 1<<uint(id)
}

func (s DestinationCardSet) Remove(id DestinationCardID) DestinationCardSet {
	return s &^ (1 << uint(id))
}

func (s DestinationCardSet) Contains(id DestinationCardID) bool {
	return s&(1<<uint(id)) != 0
}

func (s DestinationCardSet) Union(other DestinationCardSet) DestinationCardSet {
	return s | other
}

func (s DestinationCardSet) Diff(other DestinationCardSet) DestinationCardSet {
	return s &^ other
}

func (s DestinationCardSet) Intersect(other DestinationCardSet) DestinationCardSet {
	return s & other
}

func (s DestinationCardSet) IsSubsetOf(other DestinationCardSet) bool {
	return s&^other == 0
}

// Count is the number of cards in the set.
func (s DestinationCardSet) Count() int {
	count := 0
	for ; s != 0; s &= s - 1 {
		count++
	}
	return count
}

// IDs lists the card IDs in the set in ascending order.
func (s DestinationCardSet) IDs() []DestinationCardID {
	ids := make([]DestinationCardID, 0, s.Count())
	for id := DestinationCardID(0); s != 0; id++ {
		if s&1 != 0 {
			ids = append(ids, id)
		}
		s >>= 1
	}
	return ids
}

// Combinations calls yield with every subset of s of the given size, stopping
// early if yield returns false. Backtracks over the card IDs lazily so callers
// can short-circuit large enumerations.
func (s DestinationCardSet) Combinations(size int, yield func(DestinationCardSet) bool) bool {
	ids := s.IDs()
	if size > len(ids) {
		return true
	}
	var pick func(start int, chosen DestinationCardSet, remaining int) bool
	pick = func(start int, chosen DestinationCardSet, remaining int) bool {
		if remaining == 0 {
			return yield(chosen)
		}
		for i := start; i <= len(ids)-remaining; i++ {
			if !pick(i+1, chosen.Add(ids[i]), remaining-1) {
				return false
			}
		}
		return true
	}
	return pick(0, 0, size)
}

// Binomial is the binomial coefficient C(n, k).
func Binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result = result * float64(n-i) / float64(i+1)
	}
	return result
}
