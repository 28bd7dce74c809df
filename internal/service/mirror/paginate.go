package mirror

import "context"

// pageFetcher returns one page of results. Pages are numbered from 1.
type pageFetcher[T any] func(ctx context.Context, page int) ([]T, error)

// fetchAllPages requests successive pages until one comes back with fewer
// (or more) entries than pageSize.
func fetchAllPages[T any](ctx context.Context, pageSize int, fetchPage pageFetcher[T]) ([]T, error) {
	var result []T

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, err := fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}

		result = append(result, items...)

		if len(items) != pageSize {
			return result, nil
		}
	}
}
