// Package stream derives filtered views of the item store for the side
// stream display.
package stream

import "github.com/echodeck/echodeck/internal/model"

// Filter holds the optional category and source selections. Zero values
// match everything.
type Filter struct {
	Category model.Category // "" = all categories
	Source   model.Source   // "" = all sources
}

// Apply returns the subsequence of items matching both selections (AND
// semantics). Category matching consults the classification list; items
// without a classification never match a category selection. Pure
// derivation, no mutation.
func Apply(items []model.InboxItem, classifications []model.ItemClassification, f Filter) []model.InboxItem {
	if f.Category == "" && f.Source == "" {
		return items
	}

	var categoryIDs map[string]struct{}
	if f.Category != "" {
		categoryIDs = make(map[string]struct{})
		for _, c := range classifications {
			if c.Category == f.Category {
				categoryIDs[c.ItemID] = struct{}{}
			}
		}
	}

	filtered := make([]model.InboxItem, 0, len(items))
	for _, item := range items {
		if f.Source != "" && item.Source != f.Source {
			continue
		}
		if categoryIDs != nil {
			if _, ok := categoryIDs[item.ID]; !ok {
				continue
			}
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// CategoryOf looks up the classified category for an item id.
func CategoryOf(classifications []model.ItemClassification, itemID string) (model.Category, bool) {
	for _, c := range classifications {
		if c.ItemID == itemID {
			return c.Category, true
		}
	}
	return "", false
}
