package main

import (
	"encoding/json"
	"fmt"
)

// Order represents one order record, persisted as the hash order:{order_id}.
// Items holds one entry per unit reserved, so the same item id may appear
// more than once.
type Order struct {
	OrderID   string   `json:"order_id"`
	UserID    string   `json:"user_id"`
	Paid      bool     `json:"paid"`
	Items     []string `json:"items"`
	TotalCost int64    `json:"total_cost"`
}

const (
	fieldOrderID   = "order_id"
	fieldUserID    = "user_id"
	fieldPaid      = "paid"
	fieldItems     = "items"
	fieldTotalCost = "total_cost"
)

func orderKey(orderID string) string {
	return "order:" + orderID
}

// NewOrder cria uma nova instância de Order
func NewOrder(orderID, userID string) *Order {
	return &Order{
		OrderID:   orderID,
		UserID:    userID,
		Paid:      false,
		Items:     []string{},
		TotalCost: 0,
	}
}

// AddItem appends one unit of the item and adds its current price to the
// running total.
func (o *Order) AddItem(itemID string, price int64) {
	o.Items = append(o.Items, itemID)
	o.TotalCost += price
}

// RemoveItem removes one occurrence of the item and subtracts its current
// price from the running total.
func (o *Order) RemoveItem(itemID string, price int64) error {
	for i, id := range o.Items {
		if id == itemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.TotalCost -= price
			return nil
		}
	}
	return ErrItemNotInOrder
}

// encodeItems serializes the item list as a JSON array for the items field.
func encodeItems(items []string) (string, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode items: %w", err)
	}
	return string(b), nil
}

// decodeItems parses the items field. The list is decoded into a fixed
// schema; stored data is never evaluated.
func decodeItems(raw string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("malformed items field: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}
