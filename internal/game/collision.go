package game

// Outcome classifies an item after a tick. Exactly one holds per item.
type Outcome int

const (
	Falling Outcome = iota
	Caught
	Missed
)

func (o Outcome) String() string {
	switch o {
	case Falling:
		return "falling"
	case Caught:
		return "caught"
	case Missed:
		return "missed"
	}
	return "unknown"
}

// Classify runs the catch test, then the miss test. An item is caught when
// its bottom edge is between the basket opening and the floor and its center
// is over the catcher; it is missed once its top edge reaches the floor.
func Classify(it Item, c Catcher, g Geometry, openingFraction float64) Outcome {
	bottom := it.Bottom(g.ItemSize)
	if bottom >= g.CatchZoneTop(openingFraction) &&
		bottom <= g.Height &&
		c.Contains(it.CenterX(g.ItemSize)) {
		return Caught
	}

	if it.Y >= g.Height {
		return Missed
	}

	return Falling
}
