package kucoin

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"kugo/pkg/core"
)

const (
	ordersPath    = "/api/v1/orders"
	stopOrderPath = "/api/v1/stop-order"
	ocoOrderPath  = "/api/v3/oco/order"
	ocoOrdersPath = "/api/v3/oco/orders"
	fillsPath     = "/api/v1/fills"
)

// newClientOID produces a random client order id for requests that did not
// set one. The exchange rejects placements without a clientOid.
func newClientOID() string {
	var buf [16]byte
	rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}

// PlaceOrder submits an order built by OrderBuilder. A missing ClientOID is
// filled in with a random one before signing.
func (c *Client) PlaceOrder(ctx context.Context, req *OrderRequest) (*OrderReceipt, error) {
	if req == nil {
		return nil, core.NewConfigError("order request is nil")
	}
	if req.ClientOID == "" {
		req.ClientOID = newClientOID()
	}
	receipt, err := post[OrderReceipt](ctx, c, core.OpPlaceOrder, ordersPath, req)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// PlaceStopOrder submits a stop order. The request must carry a stop
// direction and trigger price from OrderBuilder.Stop.
func (c *Client) PlaceStopOrder(ctx context.Context, req *OrderRequest) (*OrderReceipt, error) {
	if req == nil {
		return nil, core.NewConfigError("order request is nil")
	}
	if req.Stop == "" {
		return nil, core.NewConfigError("stop order needs a stop direction and price")
	}
	if req.ClientOID == "" {
		req.ClientOID = newClientOID()
	}
	receipt, err := post[OrderReceipt](ctx, c, core.OpPlaceStopOrder, stopOrderPath, req)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// PlaceOCOOrder submits a one-cancels-other order pair.
func (c *Client) PlaceOCOOrder(ctx context.Context, req *OCOOrderRequest) (*OCOOrderReceipt, error) {
	if req == nil {
		return nil, core.NewConfigError("order request is nil")
	}
	if req.ClientOID == "" {
		req.ClientOID = newClientOID()
	}
	receipt, err := post[OCOOrderReceipt](ctx, c, core.OpPlaceOCOOrder, ocoOrderPath, req)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// CancelOrder cancels a single order by its exchange order id.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*CancelReceipt, error) {
	receipt, err := del[CancelReceipt](ctx, c, core.OpCancelOrder, ordersPath+"/"+orderID, nil)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// CancelAllOrders cancels every open order, optionally narrowed to one
// symbol.
func (c *Client) CancelAllOrders(ctx context.Context, symbol string) (*CancelReceipt, error) {
	params := core.Params{}
	if symbol != "" {
		params["symbol"] = symbol
	}
	receipt, err := del[CancelReceipt](ctx, c, core.OpCancelAllOrders, ordersPath, params)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// GetOrder returns a single order by its exchange order id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	order, err := get[Order](ctx, c, core.OpGetOrder, ordersPath+"/"+orderID, nil, true)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderFilter narrows an order or fill listing. Zero values are omitted
// from the request.
type OrderFilter struct {
	Symbol  string
	Status  string
	Side    string
	Type    string
	StartAt int64
	EndAt   int64
}

func (f *OrderFilter) params() core.Params {
	params := core.Params{}
	if f == nil {
		return params
	}
	if f.Symbol != "" {
		params["symbol"] = f.Symbol
	}
	if f.Status != "" {
		params["status"] = f.Status
	}
	if f.Side != "" {
		params["side"] = f.Side
	}
	if f.Type != "" {
		params["type"] = f.Type
	}
	if f.StartAt > 0 {
		params["startAt"] = f.StartAt
	}
	if f.EndAt > 0 {
		params["endAt"] = f.EndAt
	}
	return params
}

// ListOrders walks the order history pages.
func (c *Client) ListOrders(ctx context.Context, filter *OrderFilter, maxPages int) ([]Order, *Pagination, error) {
	return listPaged[Order](ctx, c, core.OpListOrders, ordersPath, filter.params(), maxPages)
}

// ListFills walks the trade fill pages.
func (c *Client) ListFills(ctx context.Context, filter *OrderFilter, maxPages int) ([]Fill, *Pagination, error) {
	return listPaged[Fill](ctx, c, core.OpListFills, fillsPath, filter.params(), maxPages)
}

// ListOCOOrders walks the open one-cancels-other order pages.
func (c *Client) ListOCOOrders(ctx context.Context, symbol string, maxPages int) ([]OCOOrder, *Pagination, error) {
	params := core.Params{}
	if symbol != "" {
		params["symbol"] = symbol
	}
	return listPaged[OCOOrder](ctx, c, core.OpListOCOOrders, ocoOrdersPath, params, maxPages)
}
