package fintrack

import "sort"

// Collection is an in-memory list of resources that mirrors what the server
// returned, updated in place from mutation results instead of re-fetching
type Collection[T any] struct {
	items []*T
	id    func(*T) int64
}

// NewCollection wraps items. id extracts the resource id.
func NewCollection[T any](items []*T, id func(*T) int64) *Collection[T] {
	c := &Collection[T]{id: id}
	c.Reset(items)
	return c
}

// NewTransactionCollection keeps transactions newest first
func NewTransactionCollection(txs []*Transaction) *Collection[Transaction] {
	c := NewCollection(txs, func(t *Transaction) int64 { return t.ID })
	SortTransactionsNewestFirst(c.items)
	return c
}

// NewAccountCollection wraps accounts
func NewAccountCollection(accounts []*Account) *Collection[Account] {
	return NewCollection(accounts, func(a *Account) int64 { return a.ID })
}

// NewCategoryCollection wraps categories
func NewCategoryCollection(categories []*Category) *Collection[Category] {
	return NewCollection(categories, func(c *Category) int64 { return c.ID })
}

// NewBudgetCollection wraps budgets
func NewBudgetCollection(budgets []*Budget) *Collection[Budget] {
	return NewCollection(budgets, func(b *Budget) int64 { return b.ID })
}

// Items returns the current list. The slice must not be modified.
func (c *Collection[T]) Items() []*T {
	return c.items
}

// Len returns the number of items
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Reset replaces the whole list, as after a full re-fetch
func (c *Collection[T]) Reset(items []*T) {
	c.items = append(make([]*T, 0, len(items)), items...)
}

// Get returns the item with id, or nil
func (c *Collection[T]) Get(id int64) *T {
	for _, it := range c.items {
		if c.id(it) == id {
			return it
		}
	}
	return nil
}

// Replace swaps in an updated item at the position of the item with the same
// id. It reports false when no such item exists.
func (c *Collection[T]) Replace(item *T) bool {
	id := c.id(item)
	for i, it := range c.items {
		if c.id(it) == id {
			c.items[i] = item
			return true
		}
	}
	return false
}

// Prepend puts a newly created item first
func (c *Collection[T]) Prepend(item *T) {
	c.items = append([]*T{item}, c.items...)
}

// Append puts a newly created item last
func (c *Collection[T]) Append(item *T) {
	c.items = append(c.items, item)
}

// Remove drops the item with id. It reports false when nothing was removed.
func (c *Collection[T]) Remove(id int64) bool {
	for i, it := range c.items {
		if c.id(it) == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// SortTransactionsNewestFirst orders by date descending, keeping the relative
// order of same-day transactions
func SortTransactionsNewestFirst(txs []*Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date.Time)
	})
}
