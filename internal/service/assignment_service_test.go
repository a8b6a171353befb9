package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffSets(t *testing.T) {
	tests := []struct {
		name        string
		current     []uint
		desired     []uint
		wantAdded   []uint
		wantRemoved []uint
	}{
		{
			name:      "all new",
			current:   nil,
			desired:   []uint{1, 2, 3},
			wantAdded: []uint{1, 2, 3},
		},
		{
			name:        "all removed",
			current:     []uint{1, 2},
			desired:     nil,
			wantRemoved: []uint{1, 2},
		},
		{
			name:        "mixed",
			current:     []uint{1, 2, 3},
			desired:     []uint{2, 3, 4},
			wantAdded:   []uint{4},
			wantRemoved: []uint{1},
		},
		{
			name:    "no change",
			current: []uint{5, 6},
			desired: []uint{6, 5},
		},
		{
			name:      "duplicates in desired collapse",
			current:   []uint{1},
			desired:   []uint{1, 2, 2},
			wantAdded: []uint{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed := diffSets(tt.current, tt.desired)
			assert.ElementsMatch(t, tt.wantAdded, added)
			assert.ElementsMatch(t, tt.wantRemoved, removed)
		})
	}
}
