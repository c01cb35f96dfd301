package engine

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/silviuClosca/languageForge/internal/storage"
)

const resourcesFile = "resources.json"

// WellKnownResourceTypes are the type names the pickers offer. Anything
// else is accepted and rendered with a fallback icon.
var WellKnownResourceTypes = []string{"Book", "Podcast", "Video", "App", "Website"}

// Resources returns the stored list in display order. Entries that are
// not JSON objects are skipped; string fields are coerced and blank
// tags dropped, so one malformed entry never hides the rest.
func (s *Service) Resources() []storage.ResourceItem {
	raw := storage.Load(s.profiles.Store(), resourcesFile, []json.RawMessage{})
	items := make([]storage.ResourceItem, 0, len(raw))
	for _, entry := range raw {
		var m map[string]any
		if err := json.Unmarshal(entry, &m); err != nil || m == nil {
			continue
		}
		item := storage.ResourceItem{
			ID:       asString(m["id"], ""),
			Type:     asString(m["type"], ""),
			Name:     asString(m["name"], ""),
			Link:     asString(m["link"], ""),
			Notes:    asString(m["notes"], ""),
			DeckName: asString(m["deck_name"], ""),
			Tags:     []string{},
		}
		for _, t := range asList(m["tags"]) {
			if tag := asString(t, ""); strings.TrimSpace(tag) != "" {
				item.Tags = append(item.Tags, tag)
			}
		}
		items = append(items, item)
	}
	return items
}

// SaveResources replaces the whole stored list.
func (s *Service) SaveResources(items []storage.ResourceItem) {
	if items == nil {
		items = []storage.ResourceItem{}
	}
	s.profiles.Store().Save(resourcesFile, items)
}

// AddResource appends the item, generating an id when none is set, and
// returns the stored form.
func (s *Service) AddResource(item storage.ResourceItem) storage.ResourceItem {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	s.SaveResources(append(s.Resources(), item))
	return item
}

// UpdateResource replaces the item with the same id. It reports false
// when no stored item matches.
func (s *Service) UpdateResource(item storage.ResourceItem) bool {
	items := s.Resources()
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			s.SaveResources(items)
			return true
		}
	}
	return false
}

// RemoveResource deletes the item with the given id. It reports false
// when no stored item matches.
func (s *Service) RemoveResource(id string) bool {
	items := s.Resources()
	for i := range items {
		if items[i].ID == id {
			s.SaveResources(append(items[:i], items[i+1:]...))
			return true
		}
	}
	return false
}

// FilterResources narrows items by a free-text query over name, type,
// deck and tags, case-insensitive. A "tag:x" query restricts the match
// to tags; "tag:" with nothing after it matches nothing.
func FilterResources(items []storage.ResourceItem, query string) []storage.ResourceItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}

	tagQuery, tagOnly := strings.CutPrefix(query, "tag:")
	if tagOnly {
		tagQuery = strings.TrimSpace(tagQuery)
	}

	var filtered []storage.ResourceItem
	for _, item := range items {
		tags := strings.ToLower(strings.Join(item.Tags, ","))
		if tagOnly {
			if tagQuery != "" && strings.Contains(tags, tagQuery) {
				filtered = append(filtered, item)
			}
			continue
		}
		haystack := strings.Join([]string{
			strings.ToLower(item.Name),
			strings.ToLower(item.Type),
			strings.ToLower(item.DeckName),
			tags,
		}, " ")
		if strings.Contains(haystack, query) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
