package kucoin

import (
	"context"

	"kugo/pkg/core"
)

const (
	accountsPath     = "/api/v1/accounts"
	ledgersPath      = "/api/v1/accounts/ledgers"
	transferablePath = "/api/v1/accounts/transferable"
	subAccountsPath  = "/api/v2/sub/user"
)

// ListAccounts returns the accounts of the current user, optionally filtered
// by currency and account type ("main", "trade", "margin").
func (c *Client) ListAccounts(ctx context.Context, currency, accountType string) ([]Account, error) {
	params := core.Params{}
	if currency != "" {
		params["currency"] = currency
	}
	if accountType != "" {
		params["type"] = accountType
	}
	return get[[]Account](ctx, c, core.OpListAccounts, accountsPath, params, true)
}

// GetAccount returns a single account by id.
func (c *Client) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	acct, err := get[Account](ctx, c, core.OpGetAccount, accountsPath+"/"+accountID, nil, true)
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// LedgerFilter narrows a ledger listing. Zero values are omitted from the
// request.
type LedgerFilter struct {
	Currency  string
	Direction string
	BizType   string
	StartAt   int64
	EndAt     int64
}

func (f *LedgerFilter) params() core.Params {
	params := core.Params{}
	if f == nil {
		return params
	}
	if f.Currency != "" {
		params["currency"] = f.Currency
	}
	if f.Direction != "" {
		params["direction"] = f.Direction
	}
	if f.BizType != "" {
		params["bizType"] = f.BizType
	}
	if f.StartAt > 0 {
		params["startAt"] = f.StartAt
	}
	if f.EndAt > 0 {
		params["endAt"] = f.EndAt
	}
	return params
}

// ListAccountLedgers walks the account ledger pages and returns every entry
// up to maxPages pages. A maxPages of zero uses the config default.
func (c *Client) ListAccountLedgers(ctx context.Context, filter *LedgerFilter, maxPages int) ([]LedgerEntry, *Pagination, error) {
	return listPaged[LedgerEntry](ctx, c, core.OpListAccountLedgers, ledgersPath, filter.params(), maxPages)
}

// GetTransferable returns the transferable balance of a currency in the
// given account type.
func (c *Client) GetTransferable(ctx context.Context, currency, accountType string) (*TransferableBalance, error) {
	params := core.Params{
		"currency": currency,
		"type":     accountType,
	}
	bal, err := get[TransferableBalance](ctx, c, core.OpGetTransferable, transferablePath, params, true)
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

// ListSubAccounts walks the sub-account pages.
func (c *Client) ListSubAccounts(ctx context.Context, maxPages int) ([]SubAccount, *Pagination, error) {
	return listPaged[SubAccount](ctx, c, core.OpListSubAccounts, subAccountsPath, nil, maxPages)
}
