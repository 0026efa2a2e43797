package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Category filters a search by item kind
type Category int

const (
	CategoryAll Category = iota
	CategoryMusic
	CategorySoftware
	CategoryEbooks
)

// Categories lists all categories in segment order
var Categories = []Category{CategoryAll, CategoryMusic, CategorySoftware, CategoryEbooks}

// Entity returns the API entity parameter for the category
func (c Category) Entity() string {
	switch c {
	case CategoryMusic:
		return "musicTrack"
	case CategorySoftware:
		return "software"
	case CategoryEbooks:
		return "ebook"
	default:
		return ""
	}
}

// String returns the config/CLI name of the category
func (c Category) String() string {
	switch c {
	case CategoryAll:
		return "all"
	case CategoryMusic:
		return "music"
	case CategorySoftware:
		return "software"
	case CategoryEbooks:
		return "ebooks"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Label returns the tab label shown in the search bar
func (c Category) Label() string {
	switch c {
	case CategoryMusic:
		return "Music"
	case CategorySoftware:
		return "Software"
	case CategoryEbooks:
		return "E-Books"
	default:
		return "All"
	}
}

// Next returns the following category, wrapping around
func (c Category) Next() Category {
	return Categories[(int(c)+1)%len(Categories)]
}

// Prev returns the preceding category, wrapping around
func (c Category) Prev() Category {
	return Categories[(int(c)+len(Categories)-1)%len(Categories)]
}

// ParseCategory accepts a category name ("music", "ebooks", ...) or its
// segment index ("0".."3")
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if idx, err := strconv.Atoi(s); err == nil {
		if idx >= 0 && idx < len(Categories) {
			return Categories[idx], nil
		}
		return CategoryAll, fmt.Errorf("%w: index %d", ErrUnknownCategory, idx)
	}
	switch s {
	case "", "all":
		return CategoryAll, nil
	case "music":
		return CategoryMusic, nil
	case "software", "apps":
		return CategorySoftware, nil
	case "ebooks", "ebook", "books":
		return CategoryEbooks, nil
	}
	return CategoryAll, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
