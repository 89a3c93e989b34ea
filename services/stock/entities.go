package main

// Item represents one stock record, persisted as the hash item:{item_id}.
type Item struct {
	ItemID string `json:"item_id"`
	Stock  int64  `json:"stock"`
	Price  int64  `json:"price"`
}

const (
	fieldStock = "stock"
	fieldPrice = "price"
)

// itemIDCounter is the key holding the sequential item id allocator.
const itemIDCounter = "item_id"

func itemKey(itemID string) string {
	return "item:" + itemID
}
