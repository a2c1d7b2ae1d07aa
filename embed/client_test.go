package embed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	router "github.com/dkeye/webring/internal/adapters/http"
	"github.com/dkeye/webring/internal/adapters/source"
	"github.com/dkeye/webring/internal/app"
	"github.com/dkeye/webring/internal/config"
	"github.com/dkeye/webring/internal/domain"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Mode: config.ModeRelease, BasePath: "/api/v1"}
	ring := app.NewWebring(source.NewStatic([]domain.Member{
		{ID: "a", Name: "Alpha", URL: "https://alpha.example"},
		{ID: "b", Name: "Beta", URL: "https://example.com"},
		{ID: "c", Name: "Gamma", URL: "https://gamma.example"},
	}), false)
	srv := httptest.NewServer(router.SetupRouter(cfg, ring))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, base string, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(base, opts...)
	require.NoError(t, err)
	return c
}

func TestNewClientRejectsRelative(t *testing.T) {
	_, err := NewClient("/api/v1")
	assert.Error(t, err)
}

func TestGetEmbed(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv.URL+"/api/v1/", WithOrigin("https://www.example.com"))

	resp, err := c.GetEmbed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", resp.Current.ID)
	assert.Equal(t, "a", resp.Prev.ID)
	assert.Equal(t, "c", resp.Next.ID)
	assert.Len(t, resp.Members, 3)
}

func TestGetEmbedStatusError(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv.URL+"/api/v1")

	_, err := c.GetEmbed(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "/embed", se.Path)
	assert.Equal(t, "failed to fetch /embed: 400", err.Error())
	assert.Equal(t, "Origin header missing or invalid", se.Body)
}

func TestMembers(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv.URL+"/api/v1")

	members, err := c.Members(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "a", members[0].ID)

	resp, err := c.Member(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, "b", resp.Prev.ID)
	assert.Equal(t, "a", resp.Next.ID)

	_, err = c.Member(context.Background(), "no such/member")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestStatusRoundTrip(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv.URL+"/api/v1")
	ctx := context.Background()

	st, err := c.GetStatus(ctx)
	require.NoError(t, err)
	assert.False(t, st.Enabled)

	require.NoError(t, c.SetStatus(ctx, true))
	st, err = c.GetStatus(ctx)
	require.NoError(t, err)
	assert.True(t, st.Enabled)

	require.NoError(t, c.SetStatus(ctx, false))
	st, err = c.GetStatus(ctx)
	require.NoError(t, err)
	assert.False(t, st.Enabled)
}

func TestSetStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newClient(t, srv.URL).SetStatus(context.Background(), true)
	assert.EqualError(t, err, "failed to set /embed/status: 500")
}

func TestWatchResolves(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"id":"a"},"prev":{"id":"b"},"next":{"id":"b"},"members":[{"id":"a"},{"id":"b"}]}`))
	}))
	defer srv.Close()

	s := Watch(context.Background(), newClient(t, srv.URL))
	defer s.Close()

	assert.Nil(t, s.Data())
	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	data, err := s.Wait(ctx)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "a", data.Current.ID)
	assert.Equal(t, data, s.Data())
}

func TestWatchFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := Watch(context.Background(), newClient(t, srv.URL))
	defer s.Close()

	<-s.Done()
	assert.Nil(t, s.Data())
	var se *StatusError
	require.True(t, errors.As(s.Err(), &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestWatchCloseDropsLateResponse(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{"current":{"id":"a"}}`))
	}))
	defer srv.Close()
	defer close(release)

	s := Watch(context.Background(), newClient(t, srv.URL))
	s.Close()

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not finish after Close")
	}
	assert.Nil(t, s.Data())
	assert.NoError(t, s.Err())
}

func TestWithHTTPClientLeavesCallerUntouched(t *testing.T) {
	srv := newServer(t)
	hc := &http.Client{Timeout: 3 * time.Second}

	c := newClient(t, srv.URL+"/api/v1", WithHTTPClient(hc))
	assert.Nil(t, hc.Jar)
	assert.NotNil(t, c.http.Jar)
	assert.Equal(t, 3*time.Second, c.http.Timeout)

	require.NoError(t, c.SetStatus(context.Background(), true))
	assert.Nil(t, hc.Jar)

	prev := http.DefaultClient.Jar
	_ = newClient(t, srv.URL, WithHTTPClient(http.DefaultClient))
	assert.Equal(t, prev, http.DefaultClient.Jar)
}

func TestWithHTTPClientNil(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv.URL+"/api/v1", WithHTTPClient(nil))

	_, err := c.Members(context.Background())
	assert.NoError(t, err)
}

func TestCookiesCarryAcrossClients(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	first := newClient(t, srv.URL+"/api/v1")
	require.NoError(t, first.SetStatus(ctx, true))
	saved := first.Cookies()
	require.Len(t, saved, 1)
	assert.Equal(t, domain.PreferenceCookie, saved[0].Name)

	second := newClient(t, srv.URL+"/api/v1")
	second.SetCookies(saved)
	st, err := second.GetStatus(ctx)
	require.NoError(t, err)
	assert.True(t, st.Enabled)
}

func TestWatchCloseClearsResolvedData(t *testing.T) {
	srv := newServer(t)
	s := Watch(context.Background(), newClient(t, srv.URL+"/api/v1", WithOrigin("https://alpha.example")))

	<-s.Done()
	require.NotNil(t, s.Data())
	s.Close()
	assert.Nil(t, s.Data())
}
