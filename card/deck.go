package card

import "math/rand"

// Deck composition for one round: six copies of each suited value plus
// two jokers, 20 cards in total. A fresh deck is built per round and
// never replenished mid-round.
const (
	CopiesPerSuit = 6
	JokerCopies   = 2
	DeckSize      = CopiesPerSuit*3 + JokerCopies
)

// RoundCards 一轮全部底牌（未洗）。
var RoundCards = func() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for i := 0; i < CopiesPerSuit; i++ {
			cards = append(cards, suit)
		}
	}
	for i := 0; i < JokerCopies; i++ {
		cards = append(cards, CardJoker)
	}
	return cards
}()

// NewDeck returns a freshly shuffled 20-card deck. The caller owns the
// rng so shuffles stay deterministic under a seeded source.
func NewDeck(rng *rand.Rand) CardList {
	cards := make([]Card, DeckSize)
	copy(cards, RoundCards)
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })

	var deck CardList
	deck.Init(cards)
	return deck
}
