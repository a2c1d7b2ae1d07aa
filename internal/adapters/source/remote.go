package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/dkeye/webring/internal/domain"
)

// maxBody caps how much of the upstream document is read.
const maxBody = 4 << 20

var ErrTooLarge = errors.New("members document too large")

// Remote fetches members from a JSON document over HTTP. path is a gjson
// path selecting the member array inside the document.
type Remote struct {
	url    string
	path   string
	client *http.Client
}

func NewRemote(url, path string, client *http.Client) *Remote {
	if path == "" {
		path = "@this"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{url: url, path: path, client: client}
}

func (r *Remote) Members(ctx context.Context) ([]domain.Member, error) {
	defer observe(KindRemote, time.Now())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch members: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch members: upstream status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read members: %w", err)
	}
	if len(body) > maxBody {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, maxBody)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("members document from %s is not valid JSON", r.url)
	}

	list := gjson.GetBytes(body, r.path)
	if !list.IsArray() {
		return nil, fmt.Errorf("path %q does not select an array", r.path)
	}

	var members []domain.Member
	if err := json.Unmarshal([]byte(list.Raw), &members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	log.Debug().Str("module", "source.remote").Int("count", len(members)).Msg("fetched members")
	return nonNil(members), nil
}
