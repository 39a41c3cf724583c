package kucoin

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderBuilder_Build(t *testing.T) {
	tests := []struct {
		name       string
		build      func() (*OrderRequest, error)
		wantErr    bool
		errContain string
	}{
		{
			name: "valid limit buy order",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("BTC-USDT").
					Buy().
					Limit().
					Price("50000.00").
					Size("0.1").
					GTC().
					Build()
			},
			wantErr: false,
		},
		{
			name: "valid market sell order by size",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("ETH-USDT").
					Sell().
					Market().
					Size("1.5").
					Build()
			},
			wantErr: false,
		},
		{
			name: "valid market buy order by funds",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("BTC-USDT").
					Buy().
					Market().
					Funds("1000").
					Build()
			},
			wantErr: false,
		},
		{
			name: "valid order with client ID",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("BTC-USDT").
					Buy().
					Limit().
					Price("50000").
					Size("0.1").
					ClientOrderID("client-123").
					Build()
			},
			wantErr: false,
		},
		{
			name: "valid order with decimal price",
			build: func() (*OrderRequest, error) {
				var price apd.Decimal
				price.SetString("50000.50")
				return NewOrderBuilder("BTC-USDT").
					Buy().
					Limit().
					PriceDecimal(price).
					Size("0.1").
					Build()
			},
			wantErr: false,
		},
		{
			name: "valid stop limit order",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("BTC-USDT").
					Sell().
					Limit().
					Price("48000").
					Size("0.1").
					Stop(StopLoss, "48500").
					Build()
			},
			wantErr: false,
		},
		{
			name: "missing symbol",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("").
					Buy().
					Limit().
					Price("50000").
					Size("0.1").
					Build()
			},
			wantErr:    true,
			errContain: "symbol",
		},
		{
			name: "missing side",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("BTC-USDT").
					Limit().
					Price("50000").
					Size("0.1").
					Build()
			},
			wantErr:    true,
			errContain: "side",
		},
		{
			name: "limit order without price",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("BTC-USDT").
					Buy().
					Limit().
					Size("0.1").
					Build()
			},
			wantErr:    true,
			errContain: "price",
		},
		{
			name: "limit order without size",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("BTC-USDT").
					Buy().
					Limit().
					Price("50000").
					Build()
			},
			wantErr:    true,
			errContain: "size",
		},
		{
			name: "market order with both size and funds",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("BTC-USDT").
					Buy().
					Market().
					Size("0.1").
					Funds("1000").
					Build()
			},
			wantErr:    true,
			errContain: "exactly one",
		},
		{
			name: "market order with neither size nor funds",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("BTC-USDT").
					Buy().
					Market().
					Build()
			},
			wantErr:    true,
			errContain: "exactly one",
		},
		{
			name: "unparseable price",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("BTC-USDT").
					Buy().
					Limit().
					Price("not-a-number").
					Size("0.1").
					Build()
			},
			wantErr:    true,
			errContain: "parse price",
		},
		{
			name: "negative size",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("BTC-USDT").
					Buy().
					Limit().
					Price("50000").
					Size("-0.1").
					Build()
			},
			wantErr:    true,
			errContain: "size",
		},
		{
			name: "zero price on limit order",
			build: func() (*OrderRequest, error) {
				return NewOrderBuilder("BTC-USDT").
					Buy().
					Limit().
					Price("0").
					Size("0.1").
					Build()
			},
			wantErr:    true,
			errContain: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := tt.build()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, order)
				if tt.errContain != "" {
					assert.Contains(t, err.Error(), tt.errContain)
				}
				return
			}
			require.NoError(t, err)
			require.NotNil(t, order)
		})
	}
}

func TestOrderBuilder_WireFields(t *testing.T) {
	req, err := NewOrderBuilder("BTC-USDT").
		Buy().
		Limit().
		Price("50000.50").
		Size("0.001").
		PostOnly().
		ClientOrderID("oid-1").
		Remark("rebalance").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "BTC-USDT", req.Symbol)
	assert.Equal(t, "buy", req.Side)
	assert.Equal(t, "limit", req.Type)
	assert.Equal(t, "50000.50", req.Price)
	assert.Equal(t, "0.001", req.Size)
	assert.True(t, req.PostOnly)
	assert.Equal(t, "oid-1", req.ClientOID)
	assert.Equal(t, "rebalance", req.Remark)
}

func TestOrderBuilder_ErrorStopsChain(t *testing.T) {
	req, err := NewOrderBuilder("BTC-USDT").
		Price("bogus").
		Buy().
		Limit().
		Size("0.1").
		Build()
	require.Error(t, err)
	assert.Nil(t, req)
	assert.Contains(t, err.Error(), "parse price")
}

func TestOrderBuilder_StopDirection(t *testing.T) {
	req, err := NewOrderBuilder("BTC-USDT").
		Sell().
		Limit().
		Price("48000").
		Size("0.1").
		Stop(StopLoss, "48500").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "loss", req.Stop)
	assert.Equal(t, "48500", req.StopPrice)
}
