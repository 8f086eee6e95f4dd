package crafting

import (
	"reflect"
	"testing"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		inventory []string
		result    Result
		want      []string
	}{
		{
			name:      "success consumes inputs and appends new item",
			inventory: []string{"Stick", "Rock"},
			result: Result{
				Success:       true,
				NewItemName:   "Axe",
				ConsumedItems: []string{"Stick", "Rock"},
			},
			want: []string{"Axe"},
		},
		{
			name:      "failure preserves uninvolved items",
			inventory: []string{"Stick", "Rock", "Shield"},
			result: Result{
				Success:       false,
				ConsumedItems: []string{"Stick", "Rock"},
			},
			want: []string{"Shield"},
		},
		{
			name:      "all occurrences of a consumed name are removed",
			inventory: []string{"Herb", "Herb", "Vial"},
			result: Result{
				Success:       true,
				NewItemName:   "Potion",
				ConsumedItems: []string{"Herb"},
			},
			want: []string{"Vial", "Potion"},
		},
		{
			name:      "unknown consumed names are ignored",
			inventory: []string{"Lantern"},
			result: Result{
				Success:       false,
				ConsumedItems: []string{"Ghost Item"},
			},
			want: []string{"Lantern"},
		},
		{
			name:      "success with empty item name appends nothing",
			inventory: []string{"Stick"},
			result: Result{
				Success:       true,
				NewItemName:   "",
				ConsumedItems: []string{"Stick"},
			},
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := make([]string, len(tc.inventory))
			copy(before, tc.inventory)

			got := Apply(tc.inventory, tc.result)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Apply() = %v, want %v", got, tc.want)
			}
			if !reflect.DeepEqual(tc.inventory, before) {
				t.Error("Apply mutated its input inventory")
			}
		})
	}
}
