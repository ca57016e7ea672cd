package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	p, err := ParsePrice("45")
	require.NoError(t, err)
	assert.Equal(t, 45.0, p.Amount)
	assert.False(t, p.VolumeBased)

	p, err = ParsePrice("19.99")
	require.NoError(t, err)
	assert.Equal(t, 19.99, p.Amount)

	p, err = ParsePrice("volumeBased")
	require.NoError(t, err)
	assert.True(t, p.VolumeBased)
}

func TestParsePriceRejectsInvalid(t *testing.T) {
	for _, raw := range []string{"", "0", "-5", "abc", "VolumeBased", "volumebased"} {
		_, err := ParsePrice(raw)
		assert.ErrorIs(t, err, ErrInvalidPrice, "raw=%q", raw)
	}
}

func TestPriceJSON(t *testing.T) {
	data, err := json.Marshal(Price{Amount: 45})
	require.NoError(t, err)
	assert.Equal(t, "45", string(data))

	data, err = json.Marshal(Price{VolumeBased: true})
	require.NoError(t, err)
	assert.Equal(t, `"volumeBased"`, string(data))

	var p Price
	require.NoError(t, json.Unmarshal([]byte("19.5"), &p))
	assert.Equal(t, 19.5, p.Amount)

	require.NoError(t, json.Unmarshal([]byte(`"volumeBased"`), &p))
	assert.True(t, p.VolumeBased)

	assert.Error(t, json.Unmarshal([]byte(`"free"`), &p))
	assert.Error(t, json.Unmarshal([]byte("-1"), &p))
	assert.Error(t, json.Unmarshal([]byte("0"), &p))
}

func TestPriceSQLRoundTrip(t *testing.T) {
	for _, p := range []Price{{Amount: 45}, {Amount: 19.99}, {VolumeBased: true}} {
		value, err := p.Value()
		require.NoError(t, err)

		var scanned Price
		require.NoError(t, scanned.Scan(value))
		assert.Equal(t, p, scanned)
	}

	var p Price
	assert.NoError(t, p.Scan([]byte("volumeBased")))
	assert.True(t, p.VolumeBased)

	assert.Error(t, p.Scan(42))
}

func TestPriceTypeValid(t *testing.T) {
	assert.True(t, PricePerHour.Valid())
	assert.True(t, PricePerService.Valid())
	assert.False(t, PriceType("").Valid())
	assert.False(t, PriceType("perMonth").Valid())
}
