package matchlog

import "context"

type Repository interface {
	Append(ctx context.Context, entry Entry) error
	ListBySession(ctx context.Context, sessionID string) ([]Entry, error)
}
