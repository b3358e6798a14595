package engine

import (
	"hollowdeep/grid"
	"hollowdeep/races"
)

// ItemKind is the coarse classification the engine cares about: theft and
// destruction rules key off it, nothing else does.
type ItemKind int

const (
	KindGeneric ItemKind = iota
	KindGold
	KindFood
	KindLight
	KindStaff
	KindWand
)

// Item is the minimal object record the engine consumes. The surrounding
// simulation owns richer item data; only the fields the decision engine
// reads and mutates live here.
type Item struct {
	Name  string
	Kind  ItemKind
	Count int

	// Gold value for KindGold piles.
	Gold int

	// Charges and KindLevel drive the drain-charges handler for staves
	// and wands.
	Charges   int
	KindLevel int

	// Fuel and NoFuel drive the eat-light handler.
	Fuel   int
	NoFuel bool

	// Enchant is the magical bonus disenchantment erodes.
	Enchant int

	// Artifact items can never be stolen or picked up by monsters.
	Artifact bool

	// Fragile items can be destroyed by elemental inventory damage.
	Fragile bool

	// Slays marks the race capabilities this item is dangerous to; a
	// monster whose flags intersect refuses to pick it up.
	Slays races.FlagSet
}

// one returns a single-count copy of the item, splitting charges evenly the
// way stolen wands and staves divide their remaining power.
func (it *Item) one() *Item {
	copied := *it
	copied.Count = 1
	if it.Count > 1 && (it.Kind == KindStaff || it.Kind == KindWand) {
		copied.Charges = it.Charges / it.Count
	}
	return &copied
}

// goldItem builds a stolen-gold pile for a monster to carry.
func goldItem(amount int) *Item {
	return &Item{Name: "gold", Kind: KindGold, Count: 1, Gold: amount}
}

// PlaceItem drops an item on the floor at p and returns its object id, or 0
// when p is out of bounds.
func (w *World) PlaceItem(item *Item, p grid.Point) int {
	c := w.Grid.At(p)
	if c == nil || item == nil {
		return 0
	}
	w.objects = append(w.objects, item)
	id := len(w.objects)
	c.Objects = append(c.Objects, id)
	return id
}

// Object returns the item with the given id, or nil.
func (w *World) Object(id int) *Item {
	if id < 1 || id > len(w.objects) {
		return nil
	}
	return w.objects[id-1]
}

// removeObject detaches an object id from a cell and forgets the item.
func (w *World) removeObject(id int, c *grid.Cell) {
	if c == nil {
		return
	}
	for i, oid := range c.Objects {
		if oid == id {
			c.Objects = append(c.Objects[:i], c.Objects[i+1:]...)
			break
		}
	}
	if id >= 1 && id <= len(w.objects) {
		w.objects[id-1] = nil
	}
}
