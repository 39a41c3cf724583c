package core

// Operation represents a type of call that can be made against the exchange.
type Operation int

// Operation constants define the supported endpoint operations.
const (
	// OpUnknown is the zero value for untagged requests.
	OpUnknown Operation = iota
	// OpGetServerTime retrieves the exchange server timestamp.
	OpGetServerTime
	// OpListSymbols retrieves the tradable symbol list.
	OpListSymbols
	// OpGetTicker retrieves the level-1 ticker for a symbol.
	OpGetTicker
	// OpGet24hStats retrieves 24 hour market statistics.
	OpGet24hStats
	// OpGetKlines retrieves candlestick data.
	OpGetKlines
	// OpListAccounts retrieves the account list.
	OpListAccounts
	// OpGetAccount retrieves a single account.
	OpGetAccount
	// OpListAccountLedgers retrieves paginated account ledger entries.
	OpListAccountLedgers
	// OpGetTransferable retrieves the transferable balance of a currency.
	OpGetTransferable
	// OpListSubAccounts retrieves the sub-account list.
	OpListSubAccounts
	// OpCreateDepositAddress creates a deposit address.
	OpCreateDepositAddress
	// OpListDepositAddresses retrieves existing deposit addresses.
	OpListDepositAddresses
	// OpListDeposits retrieves the paginated deposit history.
	OpListDeposits
	// OpListWithdrawals retrieves the paginated withdrawal history.
	OpListWithdrawals
	// OpPlaceOrder submits a new limit or market order.
	OpPlaceOrder
	// OpPlaceStopOrder submits a new stop order.
	OpPlaceStopOrder
	// OpPlaceOCOOrder submits a new one-cancels-other order.
	OpPlaceOCOOrder
	// OpCancelOrder cancels an existing order.
	OpCancelOrder
	// OpCancelAllOrders cancels all open orders.
	OpCancelAllOrders
	// OpGetOrder retrieves details of a specific order.
	OpGetOrder
	// OpListOrders retrieves the paginated order list.
	OpListOrders
	// OpListFills retrieves the paginated fill list.
	OpListFills
	// OpListOCOOrders retrieves the paginated OCO order list.
	OpListOCOOrders
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	return [...]string{
		"UNKNOWN",
		"GET_SERVER_TIME",
		"LIST_SYMBOLS",
		"GET_TICKER",
		"GET_24H_STATS",
		"GET_KLINES",
		"LIST_ACCOUNTS",
		"GET_ACCOUNT",
		"LIST_ACCOUNT_LEDGERS",
		"GET_TRANSFERABLE",
		"LIST_SUB_ACCOUNTS",
		"CREATE_DEPOSIT_ADDRESS",
		"LIST_DEPOSIT_ADDRESSES",
		"LIST_DEPOSITS",
		"LIST_WITHDRAWALS",
		"PLACE_ORDER",
		"PLACE_STOP_ORDER",
		"PLACE_OCO_ORDER",
		"CANCEL_ORDER",
		"CANCEL_ALL_ORDERS",
		"GET_ORDER",
		"LIST_ORDERS",
		"LIST_FILLS",
		"LIST_OCO_ORDERS",
	}[o]
}

// RateLimitBucket returns the request pool the operation draws from. KuCoin
// meters public market data, private account calls, and order placement
// against separate pools.
func (o Operation) RateLimitBucket() string {
	switch o {
	case OpPlaceOrder, OpPlaceStopOrder, OpPlaceOCOOrder, OpCancelOrder, OpCancelAllOrders:
		return "orders"
	case OpGetServerTime, OpListSymbols, OpGetTicker, OpGet24hStats, OpGetKlines:
		return "public"
	default:
		return "private"
	}
}
