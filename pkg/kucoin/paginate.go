package kucoin

import (
	"context"

	"kugo/pkg/core"
)

// hardPageCeiling bounds every pagination loop regardless of what the server
// reports. A misbehaving server that keeps returning a non-advancing page or
// a repeating cursor must not be able to spin the client forever.
const hardPageCeiling = 1000

// Pagination carries the pagination facts of the last fetched page.
type Pagination struct {
	CurrentPage int64 `json:"currentPage"`
	PageSize    int64 `json:"pageSize"`
	TotalNum    int64 `json:"totalNum"`
	TotalPage   int64 `json:"totalPage"`
	// LastID is the next cursor for lastId-style endpoints; empty for
	// page-number endpoints.
	LastID string `json:"lastId,omitempty"`
	// Pages is the number of fetches the paginator performed.
	Pages int `json:"pages"`
}

// page is one fetch cycle's result as seen by the paginator.
type page[T any] struct {
	Items      []T
	Pagination Pagination
}

// pageFunc fetches one page for the current query state.
type pageFunc[T any] func(ctx context.Context, query core.Params) (*page[T], error)

// paginate drives repeated page fetches into one aggregated item list,
// returning it together with the last page's pagination metadata.
//
// The query must carry the endpoint's first-page marker (currentPage=1 for
// page-number endpoints, no cursor for lastId endpoints). cursorField names
// the query key to advance for cursor-style endpoints; empty selects
// page-number style. maxPages caps the fetch count, zero meaning uncapped up
// to the hard ceiling. Pages are fetched strictly in order since each
// advance depends on the previous response; cancellation is checked before
// every fetch. Any page failure aborts the whole aggregate: no partial
// results are returned.
func paginate[T any](ctx context.Context, fetch pageFunc[T], query core.Params, cursorField string, maxPages int) ([]T, *Pagination, error) {
	if query == nil {
		query = core.Params{}
	}

	items := make([]T, 0)
	var last Pagination
	prevPage := int64(-1)
	prevCursor := ""
	fetched := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		p, err := fetch(ctx, query)
		if err != nil {
			return nil, nil, err
		}
		fetched++

		items = append(items, p.Items...)
		last = p.Pagination
		last.Pages = fetched

		if len(p.Items) == 0 {
			break
		}
		if maxPages > 0 && fetched >= maxPages {
			break
		}
		if fetched >= hardPageCeiling {
			break
		}

		if cursorField != "" {
			// Cursor style: continue only on a fresh, non-repeating cursor.
			cursor := p.Pagination.LastID
			if cursor == "" || cursor == prevCursor {
				break
			}
			prevCursor = cursor
			query[cursorField] = cursor
			continue
		}

		// Page-number style. A page that did not advance past the previous
		// one means the server is stuck; stop rather than loop.
		if p.Pagination.CurrentPage >= p.Pagination.TotalPage {
			break
		}
		if p.Pagination.CurrentPage <= prevPage {
			break
		}
		prevPage = p.Pagination.CurrentPage
		query["currentPage"] = p.Pagination.CurrentPage + 1
	}

	return items, &last, nil
}
