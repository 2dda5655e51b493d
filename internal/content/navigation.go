package content

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

type NavItem struct {
	Title string `json:"title"`
	Href  string `json:"href"`
	Order int    `json:"order,omitempty"`
}

// Navigation is the header and footer menus.
type Navigation struct {
	Header []NavItem `json:"header"`
	Footer []NavItem `json:"footer"`
}

// DefaultNavigation is used when no navigation file exists.
func DefaultNavigation() *Navigation {
	return &Navigation{
		Header: []NavItem{
			{Title: "Health Insurance", Href: "/health-insurance/"},
			{Title: "Medicare", Href: "/medicare/"},
			{Title: "Contact", Href: "/contact/"},
		},
		Footer: []NavItem{},
	}
}

// LoadNavigation reads navigation.json. Items with an order are sorted by it; the rest keep
// file order after them.
func LoadNavigation(path string) (*Navigation, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultNavigation(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read navigation: %w", err)
	}

	var nav Navigation
	if err := json.Unmarshal(data, &nav); err != nil {
		return nil, fmt.Errorf("parse navigation: %w", err)
	}
	sortItems(nav.Header)
	sortItems(nav.Footer)
	return &nav, nil
}

func sortItems(items []NavItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Order, items[j].Order
		if a == 0 || b == 0 {
			return a != 0 && b == 0
		}
		return a < b
	})
}
