package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/jtacoma/uritemplates"
	"golang.org/x/net/publicsuffix"
)

const (
	pathMembers = "/members"
	pathMember  = "/members/{id}"
	pathEmbed   = "/embed"
	pathStatus  = "/embed/status"
)

type Member struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	ButtonURL string `json:"buttonUrl"`
}

type MemberResponse struct {
	Current Member `json:"current"`
	Prev    Member `json:"prev"`
	Next    Member `json:"next"`
}

type EmbedResponse struct {
	Current Member   `json:"current"`
	Prev    Member   `json:"prev"`
	Next    Member   `json:"next"`
	Members []Member `json:"members"`
}

type Status struct {
	Enabled bool `json:"enabled"`
}

// StatusError reports a non-2xx answer from the API.
type StatusError struct {
	Op   string // "fetch" or "set"
	Path string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to %s %s: %d", e.Op, e.Path, e.Code)
}

// Client talks to one webring API, e.g. https://ring.example/api/v1.
type Client struct {
	base   *url.URL
	http   *http.Client
	origin string
}

type Option func(*Client)

// WithHTTPClient uses a shallow copy of hc for requests. If hc has no cookie
// jar the copy gets one, so preference calls stay credentialed without
// touching hc itself. A nil hc is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		cp := *hc
		c.http = &cp
	}
}

// WithOrigin sends Origin on every request, standing in for the browser
// when identifying the embedding site.
func WithOrigin(origin string) Option {
	return func(c *Client) {
		c.origin = origin
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{base: base, http: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, err
		}
		c.http.Jar = jar
	}
	return c, nil
}

// Cookies returns the cookies the client would send to the API, such as
// the webring-enabled preference.
func (c *Client) Cookies() []*http.Cookie {
	return c.http.Jar.Cookies(c.base)
}

// SetCookies seeds the jar, e.g. with cookies saved by an earlier run.
// Cookies without a path are scoped to "/".
func (c *Client) SetCookies(cookies []*http.Cookie) {
	for _, ck := range cookies {
		if ck.Path == "" {
			ck.Path = "/"
		}
	}
	c.http.Jar.SetCookies(c.base, cookies)
}

func (c *Client) Members(ctx context.Context) ([]Member, error) {
	var out []Member
	err := c.do(ctx, http.MethodGet, "fetch", pathMembers, nil, &out)
	return out, err
}

func (c *Client) Member(ctx context.Context, id string) (MemberResponse, error) {
	var out MemberResponse
	tmpl, err := uritemplates.Parse(pathMember)
	if err != nil {
		return out, err
	}
	path, err := tmpl.Expand(map[string]interface{}{"id": id})
	if err != nil {
		return out, err
	}
	err = c.do(ctx, http.MethodGet, "fetch", path, nil, &out)
	return out, err
}

// GetEmbed fetches the caller's ring position once.
func (c *Client) GetEmbed(ctx context.Context) (EmbedResponse, error) {
	var out EmbedResponse
	err := c.do(ctx, http.MethodGet, "fetch", pathEmbed, nil, &out)
	return out, err
}

func (c *Client) GetStatus(ctx context.Context) (Status, error) {
	var out Status
	err := c.do(ctx, http.MethodGet, "fetch", pathStatus, nil, &out)
	return out, err
}

func (c *Client) SetStatus(ctx context.Context, enabled bool) error {
	return c.do(ctx, http.MethodPost, "set", pathStatus, Status{Enabled: enabled}, nil)
}

func (c *Client) do(ctx context.Context, method, op, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Op: op, Path: path, Code: resp.StatusCode, Body: string(msg)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
