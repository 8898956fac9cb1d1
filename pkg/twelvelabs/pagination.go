package twelvelabs

import (
	"context"
	"fmt"
)

// SearchPager fetches the result page identified by a continuation token.
type SearchPager interface {
	ByPageToken(ctx context.Context, pageToken string) (*SearchResultPage, error)
}

// SearchCursor walks a multi-page search result forward, fetching each page
// lazily from the continuation token of the previous one.
//
// A cursor cannot be rewound. It is not safe for concurrent use: callers must
// not invoke Next on the same cursor from several goroutines.
type SearchCursor struct {
	pager     SearchPager
	page      *SearchResultPage
	token     string
	exhausted bool
	fetched   int
}

// NewSearchCursor creates a cursor positioned on the first page of a search.
func NewSearchCursor(pager SearchPager, first *SearchResultPage) *SearchCursor {
	if first == nil {
		first = &SearchResultPage{}
	}

	cursor := &SearchCursor{
		pager:   pager,
		page:    first,
		fetched: 1,
	}
	cursor.advance(first)

	return cursor
}

// Page returns the page the cursor is positioned on.
func (c *SearchCursor) Page() *SearchResultPage {
	return c.page
}

// PagesFetched returns how many pages the cursor has received, the first included.
func (c *SearchCursor) PagesFetched() int {
	return c.fetched
}

// HasNext reports whether a further page may exist.
func (c *SearchCursor) HasNext() bool {
	return !c.exhausted
}

// Next fetches the following page. When the stream is exhausted it returns
// (nil, false, nil) without a network call, on this and every later call.
// A failed fetch leaves the cursor where it was, so Next may be called again.
func (c *SearchCursor) Next(ctx context.Context) (*SearchResultPage, bool, error) {
	if c.exhausted {
		return nil, false, nil
	}

	page, err := c.pager.ByPageToken(ctx, c.token)
	if err != nil {
		return nil, false, fmt.Errorf("fetching next search page: %w", err)
	}

	c.page = page
	c.fetched++
	c.advance(page)

	return page, true, nil
}

// All returns the clips of the current page followed by those of every
// remaining page.
func (c *SearchCursor) All(ctx context.Context) ([]Clip, error) {
	var clips []Clip

	err := c.ForEach(ctx, func(clip Clip) error {
		clips = append(clips, clip)

		return nil
	})
	if err != nil {
		return clips, err
	}

	return clips, nil
}

// ForEach calls fn for each clip of the current page and every remaining page.
// It stops at the first error returned by fn or by a page fetch.
func (c *SearchCursor) ForEach(ctx context.Context, fn func(Clip) error) error {
	page := c.page

	for {
		for _, clip := range page.Clips {
			err := fn(clip)
			if err != nil {
				return err
			}
		}

		next, ok, err := c.Next(ctx)
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}

		page = next
	}
}

// advance records the continuation state of a freshly received page. Once the
// token is absent the cursor stays exhausted.
func (c *SearchCursor) advance(page *SearchResultPage) {
	c.token = page.NextPageToken()
	if c.token == "" {
		c.exhausted = true
	}
}
