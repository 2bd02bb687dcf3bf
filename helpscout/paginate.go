package helpscout

import "context"

// Page is one page of a paged listing.  Next carries the page number to
// request next, or nil when this was the last page.
type Page[T any] struct {
	Items []T
	Next  *int
}

// FetchFunc fetches one page.  A nil cursor means the first page.
type FetchFunc[T any] func(ctx context.Context, cursor *int) (Page[T], error)

// Paginate returns a lazy, single-pass iterator over every item of a paged
// listing.  Pages are fetched on demand as the consumer advances, so memory
// stays bounded to one page no matter how large the listing is.
//
// Items come out in page order with pages in cursor order; nothing is
// reordered or deduplicated.
func Paginate[T any](ctx context.Context, fetch FetchFunc[T]) *Iter[T] {
	return &Iter[T]{
		ctx:   ctx,
		fetch: fetch,
	}
}

// Iter walks a paged listing.  Usage mirrors bufio.Scanner: call Next until
// it returns false, read each item with Item, then check Err.
type Iter[T any] struct {
	ctx   context.Context
	fetch FetchFunc[T]

	items []T
	pos   int
	item  T

	cursor  *int
	prev    *int
	started bool
	done    bool
	err     error
}

// Next advances the iterator, fetching further pages as needed.  It returns
// false once the listing is exhausted or a fetch failed.
func (it *Iter[T]) Next() bool {
	for {
		if it.err != nil {
			return false
		}

		if it.pos < len(it.items) {
			it.item = it.items[it.pos]
			it.pos++
			return true
		}

		if it.done {
			return false
		}

		// If the upstream hands us the cursor we just used, requesting
		// it again would loop forever.
		if it.started && it.prev != nil && it.cursor != nil && *it.prev == *it.cursor {
			it.err = &Error{
				Kind:    KindProtocol,
				Message: "pagination cursor repeated, refusing to loop",
			}
			return false
		}

		page, err := it.fetch(it.ctx, it.cursor)
		if err != nil {
			it.err = err
			return false
		}

		it.started = true
		it.prev = it.cursor
		it.cursor = page.Next
		it.done = page.Next == nil

		it.items = page.Items
		it.pos = 0
	}
}

// Item returns the item produced by the last successful call to Next.
func (it *Iter[T]) Item() T {
	return it.item
}

// Err returns the failure that stopped iteration, if any.
func (it *Iter[T]) Err() error {
	return it.err
}

// Collect drains the iterator into a slice.
func Collect[T any](it *Iter[T]) ([]T, error) {
	var items []T
	for it.Next() {
		items = append(items, it.Item())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
