// Package listing filters and pages the joined booking list.
package listing

import (
	"strconv"
	"strings"

	"hotel/internal/domains/booking/model"
)

// Page is one page of search results. Empty is set when nothing matched, and then
// Page and TotalPages are 0.
type Page struct {
	Items      []model.ListItem
	Page       int
	TotalPages int
	TotalItems int
	PageSize   int
	Empty      bool
}

// Search keeps the items whose customer name, phone or room number contains
// term, ignoring case and surrounding spaces. A blank term keeps everything.
// items is not modified.
func Search(items []model.ListItem, term string) []model.ListItem {
	needle := strings.ToLower(strings.TrimSpace(term))

	matched := make([]model.ListItem, 0, len(items))

	for _, item := range items {
		if needle == "" || matches(item, needle) {
			matched = append(matched, item)
		}
	}

	return matched
}

func matches(item model.ListItem, needle string) bool {
	return strings.Contains(strings.ToLower(item.CustomerName), needle) ||
		strings.Contains(strings.ToLower(item.CustomerPhone), needle) ||
		strings.Contains(strconv.Itoa(item.RoomNumber), needle)
}

// TotalPages is ceil(count / pageSize), and 0 when there is nothing to show.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}

	return (count + pageSize - 1) / pageSize
}

// Paginate returns the requested page, clamped to [1, TotalPages].
func Paginate(items []model.ListItem, pageSize, page int) Page {
	total := TotalPages(len(items), pageSize)

	if total == 0 {
		return Page{Items: []model.ListItem{}, PageSize: pageSize, Empty: true}
	}

	page = min(max(page, 1), total)

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))

	return Page{
		Items:      items[start:end],
		Page:       page,
		TotalPages: total,
		TotalItems: len(items),
		PageSize:   pageSize,
	}
}
