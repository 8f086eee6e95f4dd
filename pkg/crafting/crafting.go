// Package crafting applies a narrator-ruled crafting outcome to the
// player's inventory.
package crafting

// Result is the narrator's ruling on a crafting attempt. It is a normal
// outcome, not an error: a failed attempt still consumes items and carries
// a flavor message for the player.
type Result struct {
	Success       bool     `json:"success"`
	NewItemName   string   `json:"new_item_name"`
	ConsumedItems []string `json:"consumed_items"`
	Message       string   `json:"message"`
}

// Apply removes every consumed item from the inventory and, on success,
// appends the newly created item. Removal is by name: all occurrences of a
// consumed name are dropped, mirroring a set filter. Source items are named
// uniquely in practice, so stacked duplicates are not a supported case.
// Unknown names are ignored. Apply never fails and never mutates its input.
func Apply(inventory []string, r Result) []string {
	consumed := make(map[string]bool, len(r.ConsumedItems))
	for _, name := range r.ConsumedItems {
		consumed[name] = true
	}

	out := make([]string, 0, len(inventory)+1)
	for _, item := range inventory {
		if !consumed[item] {
			out = append(out, item)
		}
	}

	if r.Success && r.NewItemName != "" {
		out = append(out, r.NewItemName)
	}
	return out
}
