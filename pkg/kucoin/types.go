package kucoin

import (
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
)

// Account is one entry of the account list.
type Account struct {
	ID        string      `json:"id"`
	Currency  string      `json:"currency"`
	Type      string      `json:"type"`
	Balance   apd.Decimal `json:"balance"`
	Available apd.Decimal `json:"available"`
	Holds     apd.Decimal `json:"holds"`
}

// LedgerEntry is one account ledger record.
type LedgerEntry struct {
	ID          string      `json:"id"`
	Currency    string      `json:"currency"`
	Amount      apd.Decimal `json:"amount"`
	Fee         apd.Decimal `json:"fee"`
	Balance     apd.Decimal `json:"balance"`
	AccountType string      `json:"accountType"`
	BizType     string      `json:"bizType"`
	Direction   string      `json:"direction"`
	CreatedAt   int64       `json:"createdAt"`
	Context     string      `json:"context"`
}

// TransferableBalance is the transferable portion of one currency balance.
type TransferableBalance struct {
	Currency     string      `json:"currency"`
	Balance      apd.Decimal `json:"balance"`
	Available    apd.Decimal `json:"available"`
	Holds        apd.Decimal `json:"holds"`
	Transferable apd.Decimal `json:"transferable"`
}

// SubAccount is one sub-account summary.
type SubAccount struct {
	UserID    string `json:"userId"`
	UID       int64  `json:"uid"`
	SubName   string `json:"subName"`
	Type      int    `json:"type"`
	Remarks   string `json:"remarks"`
	Access    string `json:"access"`
	CreatedAt int64  `json:"createdAt"`
}

// DepositAddress is one chain address deposits can be sent to.
type DepositAddress struct {
	Address         string `json:"address"`
	Memo            string `json:"memo"`
	Chain           string `json:"chain"`
	ChainID         string `json:"chainId"`
	ContractAddress string `json:"contractAddress"`
	Currency        string `json:"currency"`
}

// Deposit is one deposit history record.
type Deposit struct {
	Currency   string      `json:"currency"`
	Chain      string      `json:"chain"`
	Status     string      `json:"status"`
	Address    string      `json:"address"`
	Memo       string      `json:"memo"`
	IsInner    bool        `json:"isInner"`
	Amount     apd.Decimal `json:"amount"`
	Fee        apd.Decimal `json:"fee"`
	WalletTxID string      `json:"walletTxId"`
	CreatedAt  int64       `json:"createdAt"`
	UpdatedAt  int64       `json:"updatedAt"`
	Remark     string      `json:"remark"`
}

// Withdrawal is one withdrawal history record.
type Withdrawal struct {
	ID         string      `json:"id"`
	Currency   string      `json:"currency"`
	Chain      string      `json:"chain"`
	Status     string      `json:"status"`
	Address    string      `json:"address"`
	Memo       string      `json:"memo"`
	IsInner    bool        `json:"isInner"`
	Amount     apd.Decimal `json:"amount"`
	Fee        apd.Decimal `json:"fee"`
	WalletTxID string      `json:"walletTxId"`
	CreatedAt  int64       `json:"createdAt"`
	UpdatedAt  int64       `json:"updatedAt"`
	Remark     string      `json:"remark"`
}

// OrderReceipt is the exchange's acknowledgement of a newly placed order.
type OrderReceipt struct {
	OrderID string `json:"orderId"`
}

// OCOOrderReceipt acknowledges a newly placed one-cancels-other order.
type OCOOrderReceipt struct {
	OrderID string `json:"orderId"`
}

// CancelReceipt lists the order ids cancelled by a cancel call.
type CancelReceipt struct {
	CancelledOrderIDs []string `json:"cancelledOrderIds"`
}

// Order is one order record.
type Order struct {
	ID          string `json:"id"`
	Symbol      string `json:"symbol"`
	OpType      string `json:"opType"`
	Type        string `json:"type"`
	Side        string `json:"side"`
	Price       string `json:"price"`
	Size        string `json:"size"`
	Funds       string `json:"funds"`
	DealFunds   string `json:"dealFunds"`
	DealSize    string `json:"dealSize"`
	Fee         string `json:"fee"`
	FeeCurrency string `json:"feeCurrency"`
	Stop        string `json:"stop"`
	StopPrice   string `json:"stopPrice"`
	TimeInForce string `json:"timeInForce"`
	PostOnly    bool   `json:"postOnly"`
	Hidden      bool   `json:"hidden"`
	IceBerg     bool   `json:"iceberg"`
	Channel     string `json:"channel"`
	ClientOID   string `json:"clientOid"`
	Remark      string `json:"remark"`
	IsActive    bool   `json:"isActive"`
	CancelExist bool   `json:"cancelExist"`
	CreatedAt   int64  `json:"createdAt"`
	TradeType   string `json:"tradeType"`
}

// OCOOrder is one one-cancels-other order record.
type OCOOrder struct {
	OrderID   string `json:"orderId"`
	Symbol    string `json:"symbol"`
	ClientOID string `json:"clientOid"`
	Status    string `json:"status"`
	OrderTime int64  `json:"orderTime"`
}

// Fill is one trade fill record.
type Fill struct {
	Symbol         string `json:"symbol"`
	TradeID        string `json:"tradeId"`
	OrderID        string `json:"orderId"`
	CounterOrderID string `json:"counterOrderId"`
	Side           string `json:"side"`
	Liquidity      string `json:"liquidity"`
	ForceTaker     bool   `json:"forceTaker"`
	Price          string `json:"price"`
	Size           string `json:"size"`
	Funds          string `json:"funds"`
	Fee            string `json:"fee"`
	FeeRate        string `json:"feeRate"`
	FeeCurrency    string `json:"feeCurrency"`
	Type           string `json:"type"`
	CreatedAt      int64  `json:"createdAt"`
	TradeType      string `json:"tradeType"`
}

// Symbol is one tradable symbol description.
type Symbol struct {
	Symbol          string `json:"symbol"`
	Name            string `json:"name"`
	BaseCurrency    string `json:"baseCurrency"`
	QuoteCurrency   string `json:"quoteCurrency"`
	Market          string `json:"market"`
	BaseMinSize     string `json:"baseMinSize"`
	QuoteMinSize    string `json:"quoteMinSize"`
	BaseMaxSize     string `json:"baseMaxSize"`
	QuoteMaxSize    string `json:"quoteMaxSize"`
	BaseIncrement   string `json:"baseIncrement"`
	QuoteIncrement  string `json:"quoteIncrement"`
	PriceIncrement  string `json:"priceIncrement"`
	FeeCurrency     string `json:"feeCurrency"`
	EnableTrading   bool   `json:"enableTrading"`
	IsMarginEnabled bool   `json:"isMarginEnabled"`
}

// Ticker is the level-1 ticker of one symbol.
type Ticker struct {
	Sequence    string `json:"sequence"`
	Price       string `json:"price"`
	Size        string `json:"size"`
	BestBid     string `json:"bestBid"`
	BestBidSize string `json:"bestBidSize"`
	BestAsk     string `json:"bestAsk"`
	BestAskSize string `json:"bestAskSize"`
	Time        int64  `json:"time"`
}

// Stats24h is the 24 hour market statistics of one symbol.
type Stats24h struct {
	Symbol       string `json:"symbol"`
	Buy          string `json:"buy"`
	Sell         string `json:"sell"`
	ChangeRate   string `json:"changeRate"`
	ChangePrice  string `json:"changePrice"`
	High         string `json:"high"`
	Low          string `json:"low"`
	Vol          string `json:"vol"`
	VolValue     string `json:"volValue"`
	Last         string `json:"last"`
	AveragePrice string `json:"averagePrice"`
	Time         int64  `json:"time"`
}

// Kline is one candlestick. The wire format is a positional string array:
// [time, open, close, high, low, volume, turnover].
type Kline struct {
	Time     int64
	Open     apd.Decimal
	Close    apd.Decimal
	High     apd.Decimal
	Low      apd.Decimal
	Volume   apd.Decimal
	Turnover apd.Decimal
}

// UnmarshalJSON decodes the positional candle array.
func (k *Kline) UnmarshalJSON(data []byte) error {
	var fields []string
	if err := sonic.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) < 7 {
		return fmt.Errorf("kline needs 7 fields, got %d", len(fields))
	}

	ts, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return fmt.Errorf("parse kline time: %w", err)
	}
	k.Time = ts

	for i, dst := range []*apd.Decimal{&k.Open, &k.Close, &k.High, &k.Low, &k.Volume, &k.Turnover} {
		if _, _, err := dst.SetString(fields[i+1]); err != nil {
			return fmt.Errorf("parse kline field %d: %w", i+1, err)
		}
	}
	return nil
}
