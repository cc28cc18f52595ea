package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItems_Scan(t *testing.T) {
	var items LineItems
	require.NoError(t, items.Scan([]byte(`[{"item":"Hotel","price":150000},{"item":"Guide","price":null}]`)))
	require.Len(t, items, 2)
	assert.Equal(t, "Hotel", items[0].Item)
	assert.Equal(t, int64(150000), *items[0].Price)
	assert.Nil(t, items[1].Price)

	require.NoError(t, items.Scan(nil))
	assert.Nil(t, items)
}

func TestLineItems_ScanRejectsBadShapes(t *testing.T) {
	tests := map[string]interface{}{
		"not json":       []byte(`not json`),
		"object":         `{"item":"Hotel"}`,
		"price string":   `[{"item":"Hotel","price":"cheap"}]`,
		"missing item":   `[{"price":100}]`,
		"negative price": `[{"item":"Hotel","price":-1}]`,
		"wrong type":     42,
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			var items LineItems
			assert.Error(t, items.Scan(value))
		})
	}
}

func TestLineItems_Value(t *testing.T) {
	price := int64(2500)
	value, err := LineItems{{Item: "Dinner", Price: &price}}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"item":"Dinner","price":2500}]`, string(value.([]byte)))

	_, err = LineItems{{Item: ""}}.Value()
	assert.Error(t, err)

	value, err = LineItems(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestIntSlice(t *testing.T) {
	var ages IntSlice
	require.NoError(t, ages.Scan(`[4,9]`))
	assert.Equal(t, IntSlice{4, 9}, ages)

	value, err := ages.Value()
	require.NoError(t, err)
	assert.Equal(t, "[4,9]", string(value.([]byte)))
}
