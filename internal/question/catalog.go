package question

import "sync"

// Catalog is the orchestrator's question bank: the ordered pool plus the
// card for each item. It is safe for concurrent use. Engines never see
// the catalog itself, only the Pool snapshots it hands out.
type Catalog struct {
	mu    sync.RWMutex
	pool  Pool
	cards map[ID]Card
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{cards: make(map[ID]Card)}
}

// Add appends an item and its card. Adding an ID that already exists
// replaces the item in place and keeps its position.
func (c *Catalog) Add(item Item, card Card) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cards[item.ID]; ok {
		for i := range c.pool {
			if c.pool[i].ID == item.ID {
				c.pool[i] = item
				break
			}
		}
	} else {
		c.pool = append(c.pool, item)
	}
	c.cards[item.ID] = card.WithDefaults()
}

// Pool returns a snapshot of the items in insertion order.
func (c *Catalog) Pool() Pool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pool.Clone()
}

// Card returns the card for id.
func (c *Catalog) Card(id ID) (Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	card, ok := c.cards[id]
	return card, ok
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pool)
}

// NextID returns one past the largest ID in the catalog, or 1 when empty.
func (c *Catalog) NextID() ID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	next := ID(1)
	for _, it := range c.pool {
		if it.ID >= next {
			next = it.ID + 1
		}
	}
	return next
}
