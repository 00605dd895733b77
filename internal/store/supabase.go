package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/akshaytechonsy/postdeck/internal/domain"
)

// listLimit bounds every listing query. The store sorts by creation time
// descending, so the limit keeps the newest artifacts.
const listLimit = 20

type SupabaseStore struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	bucket     string
}

type listRequest struct {
	Prefix string   `json:"prefix"`
	Limit  int      `json:"limit"`
	SortBy sortSpec `json:"sortBy"`
}

type sortSpec struct {
	Column string `json:"column"`
	Order  string `json:"order"`
}

type listEntry struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSupabaseStore builds a storage client for one bucket. Empty credentials
// are accepted; such a client fails every call with a normal error instead of
// refusing to construct.
func NewSupabaseStore(baseURL, apiKey, bucket string) *SupabaseStore {
	return &SupabaseStore{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		// Storage API burst ceiling: plenty for one listing plus a full
		// page of concurrent downloads.
		limiter: rate.NewLimiter(rate.Every(50*time.Millisecond), listLimit+1),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
	}
}

func (s *SupabaseStore) List(ctx context.Context) ([]domain.ArtifactDescriptor, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(listRequest{
		Prefix: "",
		Limit:  listLimit,
		SortBy: sortSpec{Column: "created_at", Order: "desc"},
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/list/%s", s.baseURL, s.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage list status: %d", resp.StatusCode)
	}

	var entries []listEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}

	descs := make([]domain.ArtifactDescriptor, 0, len(entries))
	for _, e := range entries {
		descs = append(descs, domain.ArtifactDescriptor{
			Name:      e.Name,
			CreatedAt: e.CreatedAt,
		})
	}
	return descs, nil
}

func (s *SupabaseStore) Download(ctx context.Context, name string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage download status: %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *SupabaseStore) authorize(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
}
