package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newItem(productID, variantID uuid.UUID, priceTRY, priceUSD string, desi string, qty int) CartItem {
	return CartItem{
		ProductID: productID,
		VariantID: variantID,
		Name:      "Sunset Over Bosphorus",
		Size:      "50x70",
		Material:  "canvas",
		PriceTRY:  decimal.RequireFromString(priceTRY),
		PriceUSD:  decimal.RequireFromString(priceUSD),
		Desi:      decimal.RequireFromString(desi),
		Quantity:  qty,
	}
}

func TestCartAddMergesSameVariant(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	variantID := uuid.New()

	cart := &Cart{}
	cart.Add(newItem(productID, variantID, "1500", "85", "2", 1))
	cart.Add(newItem(productID, variantID, "1500", "85", "2", 2))

	require.Len(t, cart.Items, 1, "same product+variant must merge into one line")
	require.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartAddDifferentVariantsAppend(t *testing.T) {
	t.Parallel()

	productID := uuid.New()

	cart := &Cart{}
	cart.Add(newItem(productID, uuid.New(), "1500", "85", "2", 1))
	cart.Add(newItem(productID, uuid.New(), "2200", "120", "3", 1))

	require.Len(t, cart.Items, 2)
}

func TestCartTotalsPerRegion(t *testing.T) {
	t.Parallel()

	cart := &Cart{}
	cart.Add(newItem(uuid.New(), uuid.New(), "1500", "85", "2", 2))

	tr := cart.Totals("TR")
	require.True(t, tr.Subtotal.Equal(decimal.RequireFromString("3000")), "got %s", tr.Subtotal)
	require.Equal(t, "TRY", tr.Currency)
	require.Equal(t, 2, tr.ItemCount)

	global := cart.Totals("GLOBAL")
	require.True(t, global.Subtotal.Equal(decimal.RequireFromString("170")), "got %s", global.Subtotal)
	require.Equal(t, "USD", global.Currency)
}

func TestCartTotalsSumsDesi(t *testing.T) {
	t.Parallel()

	cart := &Cart{}
	cart.Add(newItem(uuid.New(), uuid.New(), "100", "10", "2", 2))
	cart.Add(newItem(uuid.New(), uuid.New(), "200", "20", "1", 1))

	totals := cart.Totals("TR")
	require.True(t, totals.TotalDesi.Equal(decimal.RequireFromString("5")), "got %s", totals.TotalDesi)
}

func TestCartUpdateQuantityOverwrites(t *testing.T) {
	t.Parallel()

	item := newItem(uuid.New(), uuid.New(), "100", "10", "1", 2)
	cart := &Cart{}
	cart.Add(item)

	require.NoError(t, cart.UpdateQuantity(item.CartItemID(), 7))
	require.Equal(t, 7, cart.Items[0].Quantity)

	require.ErrorIs(t, cart.UpdateQuantity("missing:line", 1), ErrItemNotInCart)
}

func TestCartRemove(t *testing.T) {
	t.Parallel()

	item := newItem(uuid.New(), uuid.New(), "100", "10", "1", 1)
	cart := &Cart{}
	cart.Add(item)

	require.NoError(t, cart.Remove(item.CartItemID()))
	require.True(t, cart.IsEmpty())
	require.ErrorIs(t, cart.Remove(item.CartItemID()), ErrItemNotInCart)
}
