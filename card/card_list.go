package card

type CardList []Card

func (ds *CardList) Init(cards []Card) {
	*ds = make([]Card, len(cards))
	copy(*ds, cards)
}

// Count 获取总牌数
func (ds CardList) Count() int {
	return len(ds)
}

func (ds *CardList) Add(cards ...Card) {
	*ds = append(*ds, cards...)
}

func (ds *CardList) PopCard() Card {
	totalCount := ds.Count()
	if totalCount == 0 {
		return CardInvalid
	}
	card := (*ds)[totalCount-1]
	*ds = (*ds)[:totalCount-1]
	return card
}

func (ds *CardList) PopCards(size int) ([]Card, bool) {
	if size > ds.Count() {
		return nil, false
	}
	cards := make([]Card, size)
	copy(cards, (*ds)[:size])
	*ds = (*ds)[size:]
	return cards, true
}

// RemoveAt 按索引移除一张牌，返回被移除的牌。
func (ds *CardList) RemoveAt(idx int) Card {
	if idx < 0 || idx >= ds.Count() {
		return CardInvalid
	}
	card := (*ds)[idx]
	*ds = append((*ds)[:idx], (*ds)[idx+1:]...)
	return card
}

// CountMatching 统计满足 req 的牌数（含小丑）。
func (ds CardList) CountMatching(req Card) int {
	n := 0
	for _, c := range ds {
		if c.Satisfies(req) {
			n++
		}
	}
	return n
}

func (ds CardList) Clone() CardList {
	out := make(CardList, len(ds))
	copy(out, ds)
	return out
}
