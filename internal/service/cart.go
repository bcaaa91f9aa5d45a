package service

import (
	"fmt"

	"github.com/Skotchmaster/canteen/internal/transport"
)

// MaxLineQuantity bounds the quantity of one menu item in a cart, after merging.
const MaxLineQuantity = 1000

type CartLine struct {
	ItemID   uint
	Quantity uint
}

// Cart is the set of (menu item, quantity) pairs a client submits as one order.
// Lines keep first-seen order; adding an item twice sums the quantities.
type Cart struct {
	lines []CartLine
	index map[uint]int
}

func (c *Cart) Add(itemID uint, quantity int) error {
	if itemID == 0 || quantity <= 0 {
		return fmt.Errorf("%w: itemId and quantity > 0 required", ErrValidation)
	}
	if quantity > MaxLineQuantity {
		return fmt.Errorf("%w: quantity %d exceeds %d", ErrValidation, quantity, MaxLineQuantity)
	}
	if c.index == nil {
		c.index = make(map[uint]int)
	}

	if i, ok := c.index[itemID]; ok {
		merged := c.lines[i].Quantity + uint(quantity)
		if merged > MaxLineQuantity {
			return fmt.Errorf("%w: item %d quantity %d exceeds %d", ErrValidation, itemID, merged, MaxLineQuantity)
		}
		c.lines[i].Quantity = merged
		return nil
	}
	c.index[itemID] = len(c.lines)
	c.lines = append(c.lines, CartLine{ItemID: itemID, Quantity: uint(quantity)})
	return nil
}

func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) ItemIDs() []uint {
	ids := make([]uint, 0, len(c.lines))
	for _, l := range c.lines {
		ids = append(ids, l.ItemID)
	}
	return ids
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func CartFromRequest(items []transport.CreateOrderItem) (*Cart, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	cart := &Cart{}
	for i, it := range items {
		if err := cart.Add(it.ItemID, it.Quantity); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return cart, nil
}
