package kucoin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kugo/pkg/core"
)

func TestClient_PlaceOrderGeneratesClientOID(t *testing.T) {
	var sentBody []byte

	mux := newTestMux()
	mux.HandleFunc(ordersPath, func(w http.ResponseWriter, r *http.Request) {
		sentBody, _ = io.ReadAll(r.Body)
		fmt.Fprint(w, `{"code":"200000","data":{"orderId":"o-1"}}`)
	})

	client := newTestClient(t, mux)

	req, err := NewOrderBuilder("BTC-USDT").
		Buy().
		Limit().
		Price("50000").
		Size("0.001").
		Build()
	require.NoError(t, err)
	require.Empty(t, req.ClientOID)

	receipt, err := client.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "o-1", receipt.OrderID)

	assert.NotEmpty(t, req.ClientOID)
	assert.Contains(t, string(sentBody), req.ClientOID)
}

func TestClient_PlaceOrderNilRequest(t *testing.T) {
	client := newTestClient(t, newTestMux())

	receipt, err := client.PlaceOrder(context.Background(), nil)
	require.Error(t, err)
	assert.Nil(t, receipt)
	assert.True(t, core.IsConfigError(err))
}

func TestClient_PlaceStopOrder(t *testing.T) {
	mux := newTestMux()
	mux.HandleFunc(stopOrderPath, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"stop":"loss"`)
		assert.Contains(t, string(body), `"stopPrice":"48500"`)
		fmt.Fprint(w, `{"code":"200000","data":{"orderId":"so-1"}}`)
	})

	client := newTestClient(t, mux)

	req, err := NewOrderBuilder("BTC-USDT").
		Sell().
		Limit().
		Price("48000").
		Size("0.1").
		Stop(StopLoss, "48500").
		Build()
	require.NoError(t, err)

	receipt, err := client.PlaceStopOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "so-1", receipt.OrderID)
}

func TestClient_PlaceStopOrderWithoutTrigger(t *testing.T) {
	client := newTestClient(t, newTestMux())

	req, err := NewOrderBuilder("BTC-USDT").
		Sell().
		Limit().
		Price("48000").
		Size("0.1").
		Build()
	require.NoError(t, err)

	receipt, err := client.PlaceStopOrder(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, receipt)
	assert.True(t, core.IsConfigError(err))
}

func TestClient_PlaceOCOOrder(t *testing.T) {
	mux := newTestMux()
	mux.HandleFunc(ocoOrderPath, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"limitPrice":"47000"`)
		fmt.Fprint(w, `{"code":"200000","data":{"orderId":"oco-1"}}`)
	})

	client := newTestClient(t, mux)

	receipt, err := client.PlaceOCOOrder(context.Background(), &OCOOrderRequest{
		Symbol:     "BTC-USDT",
		Side:       "sell",
		Price:      "52000",
		Size:       "0.1",
		StopPrice:  "48000",
		LimitPrice: "47000",
	})
	require.NoError(t, err)
	assert.Equal(t, "oco-1", receipt.OrderID)
}

func TestClient_CancelOrder(t *testing.T) {
	mux := newTestMux()
	mux.HandleFunc(ordersPath+"/o-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		fmt.Fprint(w, `{"code":"200000","data":{"cancelledOrderIds":["o-1"]}}`)
	})

	client := newTestClient(t, mux)
	receipt, err := client.CancelOrder(context.Background(), "o-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"o-1"}, receipt.CancelledOrderIDs)
}

func TestClient_CancelAllOrdersBySymbol(t *testing.T) {
	mux := newTestMux()
	mux.HandleFunc(ordersPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "BTC-USDT", r.URL.Query().Get("symbol"))
		fmt.Fprint(w, `{"code":"200000","data":{"cancelledOrderIds":["o-1","o-2"]}}`)
	})

	client := newTestClient(t, mux)
	receipt, err := client.CancelAllOrders(context.Background(), "BTC-USDT")
	require.NoError(t, err)

	assert.Len(t, receipt.CancelledOrderIDs, 2)
}

func TestClient_GetOrder(t *testing.T) {
	mux := newTestMux()
	mux.HandleFunc(ordersPath+"/o-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"200000","data":{"id":"o-1","symbol":"BTC-USDT","side":"buy","type":"limit","price":"50000","size":"0.001","isActive":true}}`)
	})

	client := newTestClient(t, mux)
	order, err := client.GetOrder(context.Background(), "o-1")
	require.NoError(t, err)

	assert.Equal(t, "o-1", order.ID)
	assert.Equal(t, "buy", order.Side)
	assert.True(t, order.IsActive)
}

func TestClient_ListOrdersPaginates(t *testing.T) {
	mux := newTestMux()
	mux.HandleFunc(ordersPath, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "BTC-USDT", q.Get("symbol"))
		assert.Equal(t, "done", q.Get("status"))
		switch q.Get("currentPage") {
		case "1":
			fmt.Fprint(w, `{"code":"200000","data":{"currentPage":1,"pageSize":50,"totalNum":2,"totalPage":2,"items":[{"id":"o-1","symbol":"BTC-USDT"}]}}`)
		case "2":
			fmt.Fprint(w, `{"code":"200000","data":{"currentPage":2,"pageSize":50,"totalNum":2,"totalPage":2,"items":[{"id":"o-2","symbol":"BTC-USDT"}]}}`)
		}
	})

	client := newTestClient(t, mux)
	orders, pg, err := client.ListOrders(context.Background(), &OrderFilter{
		Symbol: "BTC-USDT",
		Status: "done",
	}, 0)
	require.NoError(t, err)

	require.Len(t, orders, 2)
	assert.Equal(t, "o-1", orders[0].ID)
	assert.Equal(t, "o-2", orders[1].ID)
	assert.Equal(t, 2, pg.Pages)
}

func TestClient_ListFills(t *testing.T) {
	mux := newTestMux()
	mux.HandleFunc(fillsPath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"200000","data":{"currentPage":1,"pageSize":50,"totalNum":1,"totalPage":1,"items":[{"tradeId":"t1","orderId":"o-1","liquidity":"taker","price":"50000","size":"0.001"}]}}`)
	})

	client := newTestClient(t, mux)
	fills, _, err := client.ListFills(context.Background(), nil, 0)
	require.NoError(t, err)

	require.Len(t, fills, 1)
	assert.Equal(t, "t1", fills[0].TradeID)
	assert.Equal(t, "taker", fills[0].Liquidity)
}

func TestClient_ListOCOOrders(t *testing.T) {
	mux := newTestMux()
	mux.HandleFunc(ocoOrdersPath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"200000","data":{"currentPage":1,"pageSize":50,"totalNum":1,"totalPage":1,"items":[{"orderId":"oco-1","symbol":"BTC-USDT","status":"NEW"}]}}`)
	})

	client := newTestClient(t, mux)
	ocos, _, err := client.ListOCOOrders(context.Background(), "", 0)
	require.NoError(t, err)

	require.Len(t, ocos, 1)
	assert.Equal(t, "oco-1", ocos[0].OrderID)
}

func TestNewClientOID(t *testing.T) {
	a := newClientOID()
	b := newClientOID()

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
