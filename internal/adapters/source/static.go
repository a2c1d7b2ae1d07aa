package source

import (
	"context"
	"time"

	"github.com/dkeye/webring/internal/domain"
)

// Static serves a fixed list, usually the one from the config file.
type Static struct {
	members []domain.Member
}

func NewStatic(members []domain.Member) *Static {
	return &Static{members: append([]domain.Member(nil), members...)}
}

// Members returns a copy so handlers can't mutate the configured ring.
func (s *Static) Members(ctx context.Context) ([]domain.Member, error) {
	defer observe(KindStatic, time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Member(nil), s.members...), nil
}
