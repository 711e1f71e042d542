package card

import "fmt"

// Card 牌枚举
//
// 四种面值：三种花面（太阳/月亮/星星）加上小丑。
// 小丑视为万能牌，永远满足桌面要求。
type Card byte

const (
	CardInvalid Card = 0
	CardSun     Card = 1
	CardMoon    Card = 2
	CardStar    Card = 3
	CardJoker   Card = 4
)

// Suits 三种花面（不含小丑）。桌面要求只会从这里抽取。
var Suits = []Card{CardSun, CardMoon, CardStar}

func (c Card) String() string {
	switch c {
	case CardSun:
		return "sun"
	case CardMoon:
		return "moon"
	case CardStar:
		return "star"
	case CardJoker:
		return "joker"
	default:
		return "Invalid"
	}
}

// Suited reports whether c is one of the three suited values.
func (c Card) Suited() bool {
	return c == CardSun || c == CardMoon || c == CardStar
}

// Satisfies reports whether c counts as the required value. The joker
// satisfies everything.
func (c Card) Satisfies(req Card) bool {
	return c == req || c == CardJoker
}

// MarshalJSON emits the wire name ("sun", "moon", "star", "joker").
func (c Card) MarshalJSON() ([]byte, error) {
	if c == CardInvalid {
		return nil, fmt.Errorf("marshal invalid card")
	}
	return []byte(`"` + c.String() + `"`), nil
}

// ParseCard converts a wire name back to a Card constant.
func ParseCard(s string) (Card, error) {
	switch s {
	case "sun":
		return CardSun, nil
	case "moon":
		return CardMoon, nil
	case "star":
		return CardStar, nil
	case "joker":
		return CardJoker, nil
	default:
		return CardInvalid, fmt.Errorf("invalid card name: %s", s)
	}
}
