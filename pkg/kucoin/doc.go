// Package kucoin is a client for the KuCoin REST API.
//
// Every call goes through the same core: a request descriptor is built, the
// KC-API headers are derived from the credentials and fresh exchange server
// time, the call is executed over HTTP, and the {code, data, msg} response
// envelope is validated before the payload is decoded into typed results.
// List endpoints are driven through a shared auto-paginator that aggregates
// pages into one result set.
//
// Basic usage:
//
//	client, err := kucoin.New(
//	    core.DefaultConfig().WithCredentials(core.NewCredentials(key, secret, passphrase)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	accounts, err := client.ListAccounts(ctx, "", "")
package kucoin
