package booking

import (
	"context"
	"sync"

	"oasis/models"
)

// ListView is a guest's reservation list with optimistic deletes: a row disappears
// as soon as its delete starts and comes back if the delete fails.
type ListView struct {
	mu      sync.Mutex
	items   []models.GuestBooking
	pending map[string]bool
}

func NewListView(items []models.GuestBooking) *ListView {
	return &ListView{
		items:   append([]models.GuestBooking(nil), items...),
		pending: make(map[string]bool),
	}
}

// Items returns the visible rows in their original order.
func (v *ListView) Items() []models.GuestBooking {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.GuestBooking, 0, len(v.items))
	for _, b := range v.items {
		if !v.pending[b.ID] {
			out = append(out, b)
		}
	}
	return out
}

// Delete hides id, runs del and either drops the row for good or restores it.
// Deleting an id that is unknown or already in flight does nothing.
func (v *ListView) Delete(ctx context.Context, id string, del func(ctx context.Context, id string) error) error {
	v.mu.Lock()
	if v.pending[id] || v.index(id) < 0 {
		v.mu.Unlock()
		return nil
	}
	v.pending[id] = true
	v.mu.Unlock()

	err := del(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.pending, id)
	if err != nil {
		return err
	}
	if i := v.index(id); i >= 0 {
		v.items = append(v.items[:i], v.items[i+1:]...)
	}
	return nil
}

func (v *ListView) index(id string) int {
	for i, b := range v.items {
		if b.ID == id {
			return i
		}
	}
	return -1
}
