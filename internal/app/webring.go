package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/webring/internal/core"
	"github.com/dkeye/webring/internal/domain"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidOrigin  = errors.New("origin header missing or invalid")
	ErrSourceFailed   = errors.New("member source unavailable")
)

const devFallbackHost = "localhost"

// Webring answers ring queries against a MemberSource. It holds no state of
// its own; every call reloads the member list.
type Webring struct {
	Source core.MemberSource
	// Dev enables the localhost fallback in Embed. Must stay off in production.
	Dev bool
}

func NewWebring(src core.MemberSource, dev bool) *Webring {
	return &Webring{Source: src, Dev: dev}
}

func (w *Webring) Members(ctx context.Context) ([]domain.Member, error) {
	members, err := w.Source.Members(ctx)
	if err != nil {
		log.Error().Err(err).Str("module", "app.webring").Msg("load members")
		return nil, fmt.Errorf("%w: %w", ErrSourceFailed, err)
	}
	if members == nil {
		members = []domain.Member{}
	}
	return members, nil
}

func (w *Webring) Lookup(ctx context.Context, id string) (domain.MemberResponse, error) {
	members, err := w.Members(ctx)
	if err != nil {
		return domain.MemberResponse{}, err
	}
	current, ok := core.FindMember(members, id)
	if !ok {
		return domain.MemberResponse{}, ErrMemberNotFound
	}
	prev, next, ok := core.Adjacent(members, id)
	if !ok {
		return domain.MemberResponse{}, ErrMemberNotFound
	}
	return domain.MemberResponse{Current: current, Prev: prev, Next: next}, nil
}

// Embed identifies the calling member site by its Origin and returns its
// neighbors together with the full ring.
func (w *Webring) Embed(ctx context.Context, origin string) (domain.EmbedResponse, error) {
	host, ok := Hostname(origin)
	if !ok {
		return domain.EmbedResponse{}, ErrInvalidOrigin
	}

	members, err := w.Members(ctx)
	if err != nil {
		return domain.EmbedResponse{}, err
	}

	current, ok := matchHost(members, host)
	if !ok {
		if !w.Dev || host != devFallbackHost || len(members) == 0 {
			log.Debug().Str("module", "app.webring").Str("host", host).Msg("no member for origin")
			return domain.EmbedResponse{}, ErrMemberNotFound
		}
		current = members[0]
		log.Debug().Str("module", "app.webring").Str("id", current.ID).Msg("dev fallback to first member")
	}

	prev, next, ok := core.Adjacent(members, current.ID)
	if !ok {
		return domain.EmbedResponse{}, ErrMemberNotFound
	}
	return domain.EmbedResponse{
		Current: current,
		Prev:    prev,
		Next:    next,
		Members: members,
	}, nil
}

func matchHost(members []domain.Member, host string) (domain.Member, bool) {
	for _, m := range members {
		if h, ok := Hostname(m.URL); ok && h == host {
			return m, true
		}
	}
	return domain.Member{}, false
}

// Hostname parses raw as an absolute URL and returns its lowercased
// hostname with a leading "www." removed.
func Hostname(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	host := u.Hostname()
	if host == "" {
		return "", false
	}
	return strings.TrimPrefix(strings.ToLower(host), "www."), true
}
