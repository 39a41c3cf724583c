package kucoin

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// OrderSide is the direction of an order.
type OrderSide string

const (
	SideBuy  OrderSide = "buy"
	SideSell OrderSide = "sell"
)

// OrderType selects how an order executes.
type OrderType string

const (
	TypeLimit  OrderType = "limit"
	TypeMarket OrderType = "market"
)

// TimeInForce is the lifetime policy of a limit order.
type TimeInForce string

const (
	GTC TimeInForce = "GTC"
	GTT TimeInForce = "GTT"
	IOC TimeInForce = "IOC"
	FOK TimeInForce = "FOK"
)

// StopDirection is the trigger direction of a stop order.
type StopDirection string

const (
	StopLoss  StopDirection = "loss"
	StopEntry StopDirection = "entry"
)

// OrderRequest is the wire body of an order placement. Numeric fields are
// decimal strings so the exchange receives exactly what was built.
type OrderRequest struct {
	ClientOID   string `json:"clientOid"`
	Symbol      string `json:"symbol"`
	Side        string `json:"side"`
	Type        string `json:"type,omitempty"`
	Price       string `json:"price,omitempty"`
	Size        string `json:"size,omitempty"`
	Funds       string `json:"funds,omitempty"`
	TimeInForce string `json:"timeInForce,omitempty"`
	CancelAfter int64  `json:"cancelAfter,omitempty"`
	PostOnly    bool   `json:"postOnly,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`
	Stop        string `json:"stop,omitempty"`
	StopPrice   string `json:"stopPrice,omitempty"`
	Remark      string `json:"remark,omitempty"`
	TradeType   string `json:"tradeType,omitempty"`
}

// OCOOrderRequest is the wire body of a one-cancels-other placement.
type OCOOrderRequest struct {
	ClientOID  string `json:"clientOid"`
	Symbol     string `json:"symbol"`
	Side       string `json:"side"`
	Price      string `json:"price"`
	Size       string `json:"size"`
	StopPrice  string `json:"stopPrice"`
	LimitPrice string `json:"limitPrice"`
	Remark     string `json:"remark,omitempty"`
}

// OrderBuilder provides a fluent interface for constructing order requests.
// It accumulates validation errors and reports them on Build.
//
// Example:
//
//	req, err := kucoin.NewOrderBuilder("BTC-USDT").
//	    Buy().
//	    Limit().
//	    Price("50000").
//	    Size("0.001").
//	    Build()
type OrderBuilder struct {
	req       OrderRequest
	price     apd.Decimal
	size      apd.Decimal
	funds     apd.Decimal
	stopPrice apd.Decimal
	hasPrice  bool
	hasSize   bool
	hasFunds  bool
	hasStop   bool
	err       error
}

// NewOrderBuilder creates a new order builder for the given trading symbol.
func NewOrderBuilder(symbol string) *OrderBuilder {
	return &OrderBuilder{req: OrderRequest{Symbol: symbol, Type: string(TypeLimit)}}
}

// Side sets the order side.
func (b *OrderBuilder) Side(side OrderSide) *OrderBuilder {
	if b.err != nil {
		return b
	}
	b.req.Side = string(side)
	return b
}

// Buy sets the order side to buy.
func (b *OrderBuilder) Buy() *OrderBuilder {
	return b.Side(SideBuy)
}

// Sell sets the order side to sell.
func (b *OrderBuilder) Sell() *OrderBuilder {
	return b.Side(SideSell)
}

// Type sets the order type.
func (b *OrderBuilder) Type(orderType OrderType) *OrderBuilder {
	if b.err != nil {
		return b
	}
	b.req.Type = string(orderType)
	return b
}

// Market sets the order type to market.
func (b *OrderBuilder) Market() *OrderBuilder {
	return b.Type(TypeMarket)
}

// Limit sets the order type to limit.
func (b *OrderBuilder) Limit() *OrderBuilder {
	return b.Type(TypeLimit)
}

// Price sets the order price from a decimal string.
func (b *OrderBuilder) Price(price string) *OrderBuilder {
	if b.err != nil {
		return b
	}
	if _, _, err := b.price.SetString(price); err != nil {
		b.err = fmt.Errorf("parse price: %w", err)
		return b
	}
	b.hasPrice = true
	return b
}

// PriceDecimal sets the order price from an apd.Decimal value.
func (b *OrderBuilder) PriceDecimal(price apd.Decimal) *OrderBuilder {
	if b.err != nil {
		return b
	}
	b.price.Set(&price)
	b.hasPrice = true
	return b
}

// Size sets the order size in base currency from a decimal string.
func (b *OrderBuilder) Size(size string) *OrderBuilder {
	if b.err != nil {
		return b
	}
	if _, _, err := b.size.SetString(size); err != nil {
		b.err = fmt.Errorf("parse size: %w", err)
		return b
	}
	b.hasSize = true
	return b
}

// SizeDecimal sets the order size from an apd.Decimal value.
func (b *OrderBuilder) SizeDecimal(size apd.Decimal) *OrderBuilder {
	if b.err != nil {
		return b
	}
	b.size.Set(&size)
	b.hasSize = true
	return b
}

// Funds sets the order funds in quote currency from a decimal string.
// Funds and size are mutually exclusive on market orders.
func (b *OrderBuilder) Funds(funds string) *OrderBuilder {
	if b.err != nil {
		return b
	}
	if _, _, err := b.funds.SetString(funds); err != nil {
		b.err = fmt.Errorf("parse funds: %w", err)
		return b
	}
	b.hasFunds = true
	return b
}

// Stop marks the order as a stop order with the given trigger direction and
// trigger price.
func (b *OrderBuilder) Stop(direction StopDirection, stopPrice string) *OrderBuilder {
	if b.err != nil {
		return b
	}
	if _, _, err := b.stopPrice.SetString(stopPrice); err != nil {
		b.err = fmt.Errorf("parse stop price: %w", err)
		return b
	}
	b.req.Stop = string(direction)
	b.hasStop = true
	return b
}

// TimeInForce sets the time-in-force policy for the order.
func (b *OrderBuilder) TimeInForce(tif TimeInForce) *OrderBuilder {
	if b.err != nil {
		return b
	}
	b.req.TimeInForce = string(tif)
	return b
}

// GTC sets the time-in-force to Good-Till-Cancelled.
func (b *OrderBuilder) GTC() *OrderBuilder {
	return b.TimeInForce(GTC)
}

// IOC sets the time-in-force to Immediate-Or-Cancel.
func (b *OrderBuilder) IOC() *OrderBuilder {
	return b.TimeInForce(IOC)
}

// FOK sets the time-in-force to Fill-Or-Kill.
func (b *OrderBuilder) FOK() *OrderBuilder {
	return b.TimeInForce(FOK)
}

// PostOnly marks a limit order as maker-only.
func (b *OrderBuilder) PostOnly() *OrderBuilder {
	if b.err != nil {
		return b
	}
	b.req.PostOnly = true
	return b
}

// Hidden hides the order from the public order book.
func (b *OrderBuilder) Hidden() *OrderBuilder {
	if b.err != nil {
		return b
	}
	b.req.Hidden = true
	return b
}

// ClientOrderID sets a client-assigned identifier for order tracking.
func (b *OrderBuilder) ClientOrderID(id string) *OrderBuilder {
	if b.err != nil {
		return b
	}
	b.req.ClientOID = id
	return b
}

// Remark attaches a free-form note to the order.
func (b *OrderBuilder) Remark(remark string) *OrderBuilder {
	if b.err != nil {
		return b
	}
	b.req.Remark = remark
	return b
}

// Build validates and returns the constructed order request.
// Returns an error if any required fields are missing or invalid.
func (b *OrderBuilder) Build() (*OrderRequest, error) {
	if b.err != nil {
		return nil, b.err
	}

	req := b.req
	if b.hasPrice {
		req.Price = b.price.Text('f')
	}
	if b.hasSize {
		req.Size = b.size.Text('f')
	}
	if b.hasFunds {
		req.Funds = b.funds.Text('f')
	}
	if b.hasStop {
		req.StopPrice = b.stopPrice.Text('f')
	}

	if err := validateOrderRequest(&req, b); err != nil {
		return nil, err
	}
	return &req, nil
}

func validateOrderRequest(req *OrderRequest, b *OrderBuilder) error {
	if req.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}

	if req.Side != string(SideBuy) && req.Side != string(SideSell) {
		return fmt.Errorf("invalid order side")
	}

	switch OrderType(req.Type) {
	case TypeLimit:
		if !b.hasPrice || b.price.IsZero() || b.price.Negative {
			return fmt.Errorf("price must be positive for limit orders")
		}
		if !b.hasSize || b.size.IsZero() || b.size.Negative {
			return fmt.Errorf("size must be positive")
		}
	case TypeMarket:
		if b.hasSize == b.hasFunds {
			return fmt.Errorf("market orders need exactly one of size or funds")
		}
		if b.hasSize && (b.size.IsZero() || b.size.Negative) {
			return fmt.Errorf("size must be positive")
		}
		if b.hasFunds && (b.funds.IsZero() || b.funds.Negative) {
			return fmt.Errorf("funds must be positive")
		}
	default:
		return fmt.Errorf("invalid order type %q", req.Type)
	}

	if b.hasStop && (b.stopPrice.IsZero() || b.stopPrice.Negative) {
		return fmt.Errorf("stop price must be positive")
	}

	return nil
}
