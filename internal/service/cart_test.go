package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/canteen/internal/transport"
)

func TestCart_AddMergesDuplicates(t *testing.T) {
	t.Parallel()

	var cart Cart
	require.NoError(t, cart.Add(1, 2))
	require.NoError(t, cart.Add(3, 1))
	require.NoError(t, cart.Add(1, 1))

	assert.Equal(t, []CartLine{{ItemID: 1, Quantity: 3}, {ItemID: 3, Quantity: 1}}, cart.Lines())
	assert.Equal(t, []uint{1, 3}, cart.ItemIDs())
	assert.False(t, cart.Empty())
}

func TestCart_AddRejectsInvalidLines(t *testing.T) {
	t.Parallel()

	var cart Cart
	assert.ErrorIs(t, cart.Add(0, 1), ErrValidation)
	assert.ErrorIs(t, cart.Add(1, 0), ErrValidation)
	assert.ErrorIs(t, cart.Add(1, -2), ErrValidation)
	assert.True(t, cart.Empty())
}

func TestCart_AddCapsQuantity(t *testing.T) {
	t.Parallel()

	var cart Cart
	assert.ErrorIs(t, cart.Add(1, math.MaxInt64), ErrValidation)
	assert.ErrorIs(t, cart.Add(1, MaxLineQuantity+1), ErrValidation)
	assert.True(t, cart.Empty())

	require.NoError(t, cart.Add(1, MaxLineQuantity-1))
	require.NoError(t, cart.Add(1, 1))
	assert.ErrorIs(t, cart.Add(1, 1), ErrValidation)
	assert.Equal(t, []CartLine{{ItemID: 1, Quantity: MaxLineQuantity}}, cart.Lines())
}

func TestCart_LinesIsACopy(t *testing.T) {
	t.Parallel()

	var cart Cart
	require.NoError(t, cart.Add(5, 1))

	lines := cart.Lines()
	lines[0].Quantity = 99
	assert.EqualValues(t, 1, cart.Lines()[0].Quantity)
}

func TestCartFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		items   []transport.CreateOrderItem
		wantErr bool
	}{
		{name: "valid", items: []transport.CreateOrderItem{{ItemID: 1, Quantity: 2}, {ItemID: 3, Quantity: 1}}},
		{name: "empty", items: nil, wantErr: true},
		{name: "missing item id", items: []transport.CreateOrderItem{{ItemID: 1, Quantity: 1}, {Quantity: 1}}, wantErr: true},
		{name: "missing quantity", items: []transport.CreateOrderItem{{ItemID: 1}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart, err := CartFromRequest(tt.items)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				assert.Nil(t, cart)
				return
			}
			require.NoError(t, err)
			assert.Len(t, cart.Lines(), len(tt.items))
		})
	}
}
