package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akshaytechonsy/postdeck/internal/feed"
	"github.com/akshaytechonsy/postdeck/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	m := store.NewMockStore()
	svc := feed.New(m, m, zap.NewNop())
	require.NoError(t, svc.Refresh(context.Background()))
	return New(svc, zap.NewNop())
}

func TestFeedEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/api/feed", nil), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var snap feed.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.NotEmpty(t, snap.Posts)
	assert.False(t, snap.IsGenerating)
	for _, p := range snap.Posts {
		assert.True(t, strings.HasSuffix(p.ID, ".txt"))
	}
}

func TestGenerateEndpointGrowsFeed(t *testing.T) {
	srv := newTestServer(t)

	before, err := srv.App().Test(httptest.NewRequest("GET", "/api/feed", nil), 5000)
	require.NoError(t, err)
	var snapBefore feed.Snapshot
	require.NoError(t, json.NewDecoder(before.Body).Decode(&snapBefore))
	before.Body.Close()

	resp, err := srv.App().Test(httptest.NewRequest("POST", "/api/generate", nil), 15000)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var snap feed.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Len(t, snap.Posts, len(snapBefore.Posts)+1)
	assert.NotEmpty(t, snap.Message)
	assert.False(t, snap.IsGenerating)
}

type blockingJob struct {
	started chan struct{}
	release chan struct{}
}

func (j *blockingJob) Invoke(ctx context.Context) error {
	select {
	case j.started <- struct{}{}:
	default:
	}
	<-j.release
	return nil
}

func TestGenerateEndpointConflictsWhileInFlight(t *testing.T) {
	m := store.NewMockStore()
	job := &blockingJob{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	srv := New(feed.New(m, job, zap.NewNop()), zap.NewNop())

	type result struct {
		resp *http.Response
		err  error
	}
	first := make(chan result, 1)
	go func() {
		resp, err := srv.App().Test(httptest.NewRequest("POST", "/api/generate", nil), 15000)
		first <- result{resp, err}
	}()
	<-job.started

	resp, err := srv.App().Test(httptest.NewRequest("POST", "/api/generate", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
	resp.Body.Close()

	close(job.release)
	got := <-first
	require.NoError(t, got.err)
	defer got.resp.Body.Close()
	assert.Equal(t, 200, got.resp.StatusCode)
}

func TestRefreshEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.App().Test(httptest.NewRequest("POST", "/api/refresh", nil), 15000)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}

func TestDashboardPageRenders(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/", nil), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Posts per Source")
	assert.Contains(t, string(page), "Hashtag Frequency")
}
