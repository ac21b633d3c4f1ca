// internal/basket/snapshot_test.go
package basket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTripKeepsOrderAndIdentity(t *testing.T) {
	b := New()
	hat, _ := b.AddItem("HAT", 2)
	scarf, _ := b.AddItem("SCARF", 1)

	data, err := marshalSnapshot(b)
	require.NoError(t, err)
	restored, err := unmarshalSnapshot(data)
	require.NoError(t, err)

	assert.Equal(t, b.ID(), restored.ID())
	items := restored.Items()
	require.Len(t, items, 2)
	assert.Equal(t, hat.ID(), items[0].ID())
	assert.Equal(t, scarf.ID(), items[1].ID())
	assert.Equal(t, 2, items[0].Quantity())
}

func TestSnapshot_RejectsCorruptState(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"basketId":`},
		{"nil basket id", `{"basketId":"00000000-0000-0000-0000-000000000000","items":[]}`},
		{"non-positive quantity", `{"basketId":"7d0c3b8e-6b5a-4f0e-9d3c-2d1f0a6b9c11","items":[{"itemId":"0f5b2c1a-3e4d-4c6b-8a9f-1b2c3d4e5f60","productId":"HAT","quantity":0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unmarshalSnapshot([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
