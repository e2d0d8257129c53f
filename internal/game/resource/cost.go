package resource

import (
	"fmt"
	"strings"
)

// Item is anything a player can buy.
type Item string

const (
	ItemRoad        Item = "road"
	ItemSettlement  Item = "settlement"
	ItemCity        Item = "city"
	ItemDevelopment Item = "development"
)

// Items lists every purchasable item.
var Items = []Item{ItemRoad, ItemSettlement, ItemCity, ItemDevelopment}

// ParseItem resolves an item name, case-insensitively.
func ParseItem(name string) (Item, error) {
	n := Item(strings.ToLower(strings.TrimSpace(name)))
	for _, item := range Items {
		if item == n {
			return item, nil
		}
	}
	return "", fmt.Errorf("unknown item %q", name)
}

// CostTable maps each item to its price.
type CostTable map[Item]Group

// DefaultCosts returns the standard price list.
func DefaultCosts() CostTable {
	return CostTable{
		ItemRoad:        New(0, 0, 0, 1, 1),
		ItemSettlement:  New(0, 1, 1, 1, 1),
		ItemCity:        New(3, 2, 0, 0, 0),
		ItemDevelopment: New(1, 1, 1, 0, 0),
	}
}

// Cost returns the price of item. Items missing from the table are free.
func (t CostTable) Cost(item Item) Group {
	if t == nil {
		return Empty()
	}
	return t[item]
}

// ParseCostTable builds a cost table from configuration, starting from the
// defaults so a partial override only replaces the items it names.
func ParseCostTable(raw map[string]map[string]int) (CostTable, error) {
	table := DefaultCosts()
	for name, costs := range raw {
		item, err := ParseItem(name)
		if err != nil {
			return nil, err
		}
		group, err := FromMap(costs)
		if err != nil {
			return nil, fmt.Errorf("cost of %s: %w", item, err)
		}
		if !group.IsNonNegative() {
			return nil, fmt.Errorf("cost of %s: negative amounts are not allowed", item)
		}
		table[item] = group
	}
	return table, nil
}
