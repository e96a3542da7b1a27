package club

import "context"

// Repository exposes the fixed club roster.
type Repository interface {
	List(ctx context.Context) ([]Club, error)
	GetByID(ctx context.Context, clubID string) (Club, bool, error)
}
