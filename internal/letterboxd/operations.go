package letterboxd

import (
	"context"
	"fmt"

	"lbx/internal/shared"
)

// Operation identifies a registered film operation.
//
// The registry is a closed enum mapped to handler functions, so every
// name that parses has a real handler.
type Operation int

const (
	OpAddToDiary Operation = iota
	OpUpdateRating
	OpLike
	OpUnlike
	OpMarkWatched
	OpMarkUnwatched
	OpAddToWatchlist
	OpRemoveFromWatchlist
)

// OperationOptions carries the per-operation payload. Rating is only
// read by OpUpdateRating; Diary only by OpAddToDiary.
type OperationOptions struct {
	Rating int
	Diary  *DiaryPayload
}

type operationHandler func(ctx context.Context, c *AuthConnector, slug string, opts OperationOptions) error

// registryEntry binds a display name to a handler, optionally closing
// over a fixed status flag (e.g. "Remove from watchlist" → false).
type registryEntry struct {
	name  string
	apply operationHandler
}

var registry = map[Operation]registryEntry{
	OpAddToDiary: {
		name: "Add to diary",
		apply: func(ctx context.Context, c *AuthConnector, slug string, opts OperationOptions) error {
			if opts.Diary == nil {
				return fmt.Errorf("%w: diary payload required", shared.ErrMissingArgument)
			}
			return c.AddDiaryEntry(ctx, slug, *opts.Diary)
		},
	},
	OpUpdateRating: {
		name: "Update film rating",
		apply: func(ctx context.Context, c *AuthConnector, slug string, opts OperationOptions) error {
			return c.SetRating(ctx, slug, opts.Rating)
		},
	},
	OpLike: {
		name: "Add to liked films",
		apply: func(ctx context.Context, c *AuthConnector, slug string, _ OperationOptions) error {
			return c.SetLiked(ctx, slug, true)
		},
	},
	OpUnlike: {
		name: "Remove from liked films",
		apply: func(ctx context.Context, c *AuthConnector, slug string, _ OperationOptions) error {
			return c.SetLiked(ctx, slug, false)
		},
	},
	OpMarkWatched: {
		name: "Mark film as watched",
		apply: func(ctx context.Context, c *AuthConnector, slug string, _ OperationOptions) error {
			return c.SetWatched(ctx, slug, true)
		},
	},
	OpMarkUnwatched: {
		name: "Un-mark film as watched",
		apply: func(ctx context.Context, c *AuthConnector, slug string, _ OperationOptions) error {
			return c.SetWatched(ctx, slug, false)
		},
	},
	OpAddToWatchlist: {
		name: "Add to watchlist",
		apply: func(ctx context.Context, c *AuthConnector, slug string, _ OperationOptions) error {
			return c.SetWatchlisted(ctx, slug, true)
		},
	},
	OpRemoveFromWatchlist: {
		name: "Remove from watchlist",
		apply: func(ctx context.Context, c *AuthConnector, slug string, _ OperationOptions) error {
			return c.SetWatchlisted(ctx, slug, false)
		},
	},
}

// Operations returns all registered operations in display order.
func Operations() []Operation {
	return []Operation{
		OpAddToDiary,
		OpUpdateRating,
		OpLike,
		OpUnlike,
		OpMarkWatched,
		OpMarkUnwatched,
		OpAddToWatchlist,
		OpRemoveFromWatchlist,
	}
}

// String returns the operation's display name.
func (op Operation) String() string {
	entry, ok := registry[op]
	if !ok {
		return fmt.Sprintf("Operation(%d)", int(op))
	}
	return entry.name
}

// ParseOperation maps a display name to its Operation.
//
// Unregistered names fail with [shared.ErrUnknownOperation]; parsing
// never issues a network call.
func ParseOperation(name string) (Operation, error) {
	for _, op := range Operations() {
		if registry[op].name == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", shared.ErrUnknownOperation, name)
}

// Operation URL templates. rate/like/watch address films by internal
// id; the watchlist endpoints address them by title slug.

func operationURLByID(baseURL, filmID, action string) string {
	return fmt.Sprintf("%s/s/film:%s/%s/", baseURL, filmID, action)
}

func addWatchlistURL(baseURL, slug string) string {
	return fmt.Sprintf("%s/film/%s/add-to-watchlist/", baseURL, slug)
}

func removeWatchlistURL(baseURL, slug string) string {
	return fmt.Sprintf("%s/film/%s/remove-from-watchlist/", baseURL, slug)
}

func saveDiaryURL(baseURL string) string {
	return baseURL + "/s/save-diary-entry"
}

func metadataURL(baseURL string) string {
	return baseURL + "/ajax/letterboxd-metadata/"
}
