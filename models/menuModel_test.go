package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDefaultSize(t *testing.T) {
	item := MenuItem{Name: "Chai"}
	assert.Nil(t, item.DefaultSize())

	item.Sizes = datatypes.JSONSlice[Size]{
		{ID: "r", Name: "Regular"},
		{ID: "l", Name: "Large", PriceModifier: 50},
	}
	size := item.DefaultSize()
	require.NotNil(t, size)
	assert.Equal(t, "r", size.ID)
}

func TestFindSizeAndExtra(t *testing.T) {
	item := MenuItem{
		Name:   "Pizza",
		Sizes:  datatypes.JSONSlice[Size]{{ID: "s"}, {ID: "m"}, {ID: "l"}},
		Extras: datatypes.JSONSlice[Extra]{{ID: "olives", Price: 40}},
	}

	require.NotNil(t, item.FindSize("m"))
	assert.Nil(t, item.FindSize("xl"))

	extra := item.FindExtra("olives")
	require.NotNil(t, extra)
	assert.Equal(t, int64(40), extra.Price)
	assert.Nil(t, item.FindExtra("anchovies"))
}

func TestFindSizeReturnsCopy(t *testing.T) {
	item := MenuItem{Sizes: datatypes.JSONSlice[Size]{{ID: "r", PriceModifier: 10}}}

	size := item.FindSize("r")
	size.PriceModifier = 999

	assert.Equal(t, int64(10), item.Sizes[0].PriceModifier)
}
