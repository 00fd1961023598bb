// Package store holds the in-memory vault item list and its search view.
// It only ever sees item summaries; secret material never enters here.
package store

import (
	"strings"

	"github.com/oranginaround/bw-tui/bitwarden"
)

// Store keeps items in their original load order and derives a visible
// subset from the active filter. Load and SetFilter are all-or-nothing;
// a failed listing upstream never touches previous contents.
type Store struct {
	items   []bitwarden.ItemSummary
	visible []int
	filter  string
}

func New() *Store {
	return &Store{}
}

// Load replaces the full item set and resets any active filter.
func (it *Store) Load(items []bitwarden.ItemSummary) {
	it.items = make([]bitwarden.ItemSummary, len(items))
	copy(it.items, items)
	it.filter = ""
	it.refresh()
}

// SetFilter recomputes the visible subset. An item is visible when text
// is a case-insensitive substring of its name or username; empty text
// makes every item visible, in load order.
func (it *Store) SetFilter(text string) {
	it.filter = text
	it.refresh()
}

func (it *Store) refresh() {
	it.visible = it.visible[:0]
	needle := strings.ToLower(it.filter)
	for at, item := range it.items {
		if len(needle) == 0 || matches(item, needle) {
			it.visible = append(it.visible, at)
		}
	}
}

func matches(item bitwarden.ItemSummary, needle string) bool {
	return strings.Contains(strings.ToLower(item.Name), needle) ||
		strings.Contains(strings.ToLower(item.Username), needle)
}

func (it *Store) Filter() string {
	return it.filter
}

// Len is the full item count regardless of filtering.
func (it *Store) Len() int {
	return len(it.items)
}

// VisibleLen is the count of items matching the active filter.
func (it *Store) VisibleLen() int {
	return len(it.visible)
}

// VisibleItems returns the matching items in stable load order. The
// returned slice is a fresh copy safe for the caller to keep.
func (it *Store) VisibleItems() []bitwarden.ItemSummary {
	result := make([]bitwarden.ItemSummary, 0, len(it.visible))
	for _, at := range it.visible {
		result = append(result, it.items[at])
	}
	return result
}

// At maps a selection index in the visible view to its item.
func (it *Store) At(index int) (bitwarden.ItemSummary, bool) {
	if index < 0 || index >= len(it.visible) {
		return bitwarden.ItemSummary{}, false
	}
	return it.items[it.visible[index]], true
}
