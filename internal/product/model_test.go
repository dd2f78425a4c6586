package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	sale := decimal.NewFromInt(400)
	p := Product{Price: decimal.NewFromInt(500)}
	assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(500)))

	p.SalePrice = &sale
	assert.True(t, p.EffectivePrice().Equal(sale))

	zero := decimal.Zero
	p.SalePrice = &zero
	assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(500)))
}

func TestQueryNormalize(t *testing.T) {
	assert.Equal(t, Query{Limit: 20}, Query{Limit: 0, Offset: -3}.Normalize())
	assert.Equal(t, Query{Q: "saree", Limit: 50, Offset: 10}, Query{Q: " saree ", Limit: 50, Offset: 10}.Normalize())
	assert.Equal(t, 20, Query{Limit: 500}.Normalize().Limit)
}

func TestPriced(t *testing.T) {
	sale := decimal.NewFromInt(400)
	ps := Priced([]Product{
		{ID: 1, Price: decimal.NewFromInt(500), SalePrice: &sale},
		{ID: 2, Price: decimal.NewFromInt(90)},
	})
	assert.True(t, ps[0].CurrentPrice.Equal(sale))
	assert.True(t, ps[1].CurrentPrice.Equal(decimal.NewFromInt(90)))
}
