package kucoin

import (
	"context"

	"kugo/pkg/core"
)

const (
	depositAddressPath   = "/api/v1/deposit-addresses"
	depositAddressesPath = "/api/v2/deposit-addresses"
	depositsPath         = "/api/v1/deposits"
	withdrawalsPath      = "/api/v1/withdrawals"
)

// CreateDepositAddress creates a new deposit address for a currency. The
// chain is optional; the exchange picks the default chain when it is empty.
func (c *Client) CreateDepositAddress(ctx context.Context, currency, chain string) (*DepositAddress, error) {
	body := map[string]string{"currency": currency}
	if chain != "" {
		body["chain"] = chain
	}
	addr, err := post[DepositAddress](ctx, c, core.OpCreateDepositAddress, depositAddressPath, body)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// ListDepositAddresses returns the existing deposit addresses of a currency.
func (c *Client) ListDepositAddresses(ctx context.Context, currency string) ([]DepositAddress, error) {
	params := core.Params{"currency": currency}
	return get[[]DepositAddress](ctx, c, core.OpListDepositAddresses, depositAddressesPath, params, true)
}

// HistoryFilter narrows a deposit or withdrawal listing. Zero values are
// omitted from the request.
type HistoryFilter struct {
	Currency string
	Status   string
	StartAt  int64
	EndAt    int64
}

func (f *HistoryFilter) params() core.Params {
	params := core.Params{}
	if f == nil {
		return params
	}
	if f.Currency != "" {
		params["currency"] = f.Currency
	}
	if f.Status != "" {
		params["status"] = f.Status
	}
	if f.StartAt > 0 {
		params["startAt"] = f.StartAt
	}
	if f.EndAt > 0 {
		params["endAt"] = f.EndAt
	}
	return params
}

// ListDeposits walks the deposit history pages.
func (c *Client) ListDeposits(ctx context.Context, filter *HistoryFilter, maxPages int) ([]Deposit, *Pagination, error) {
	return listPaged[Deposit](ctx, c, core.OpListDeposits, depositsPath, filter.params(), maxPages)
}

// ListWithdrawals walks the withdrawal history pages.
func (c *Client) ListWithdrawals(ctx context.Context, filter *HistoryFilter, maxPages int) ([]Withdrawal, *Pagination, error) {
	return listPaged[Withdrawal](ctx, c, core.OpListWithdrawals, withdrawalsPath, filter.params(), maxPages)
}
