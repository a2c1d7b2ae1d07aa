package core

import (
	"context"

	"github.com/dkeye/webring/internal/domain"
)

// MemberSource supplies the authoritative, ordered member list.
// Implementations are queried on every request and must not reorder members.
type MemberSource interface {
	Members(ctx context.Context) ([]domain.Member, error)
}

// MemberSourceFunc adapts a plain function to MemberSource.
type MemberSourceFunc func(ctx context.Context) ([]domain.Member, error)

func (f MemberSourceFunc) Members(ctx context.Context) ([]domain.Member, error) {
	return f(ctx)
}
