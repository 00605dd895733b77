package feed

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/akshaytechonsy/postdeck/internal/domain"
	"github.com/akshaytechonsy/postdeck/internal/parser"
)

// artifactExt marks text-post artifacts in the bucket. Anything else in the
// listing is silently excluded.
const artifactExt = ".txt"

const (
	msgGenerateSuccess = "New post generated and feed refreshed."
	msgGenerateFailed  = "Post generation failed. Please try again."
	msgRefreshStale    = "Post generated, but the feed could not be refreshed."
	msgLoadFailed      = "Could not load posts from storage."
)

// Service owns the feed state and runs the two user-triggered flows:
// Generate (invoke the remote job, then re-ingest) and Refresh (re-ingest
// only). State mutations go through the mutex; concurrent Generate calls are
// rejected and concurrent Refresh calls are collapsed into one flight.
type Service struct {
	store domain.Store
	job   domain.JobRunner
	log   *zap.Logger

	refreshes singleflight.Group

	mu         sync.Mutex
	posts      []domain.PostRecord
	message    string
	loading    bool
	generating bool
}

// Snapshot is the consumer-facing view of the feed state.
type Snapshot struct {
	Posts        []domain.PostRecord `json:"posts"`
	IsLoading    bool                `json:"is_loading"`
	IsGenerating bool                `json:"is_generating"`
	Message      string              `json:"message"`
}

func New(store domain.Store, job domain.JobRunner, log *zap.Logger) *Service {
	return &Service{store: store, job: job, log: log}
}

// Snapshot returns a copy of the current state. The posts slice is owned by
// the caller.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]domain.PostRecord, len(s.posts))
	copy(posts, s.posts)
	return Snapshot{
		Posts:        posts,
		IsLoading:    s.loading,
		IsGenerating: s.generating,
		Message:      s.message,
	}
}

// Generate runs one generation attempt: invoke the job, and only on success
// re-ingest the feed. A second call while one is in flight is rejected with
// domain.ErrGenerationInFlight rather than queued.
func (s *Service) Generate(ctx context.Context) error {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return domain.ErrGenerationInFlight
	}
	s.generating = true
	s.message = ""
	s.mu.Unlock()

	log := s.log.With(zap.String("attempt", uuid.NewString()))
	log.Info("generation started")

	if err := s.job.Invoke(ctx); err != nil {
		s.mu.Lock()
		s.generating = false
		s.message = msgGenerateFailed
		s.mu.Unlock()
		log.Error("generation job failed", zap.Error(err))
		return &domain.JobError{Err: err}
	}

	posts, err := s.ingest(ctx, log)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
	if err != nil {
		// The job ran; only the follow-up listing failed. Keep what we have.
		s.message = msgRefreshStale
		log.Error("post-generation refresh failed", zap.Error(err))
		return err
	}
	s.posts = posts
	s.message = msgGenerateSuccess
	log.Info("generation complete", zap.Int("posts", len(posts)))
	return nil
}

// Refresh re-ingests the feed. Overlapping calls share a single flight: late
// callers wait for and observe the in-progress result instead of issuing a
// second listing. The displayed message only persists until the next action,
// so the flight clears it on entry.
func (s *Service) Refresh(ctx context.Context) error {
	_, err, _ := s.refreshes.Do("refresh", func() (interface{}, error) {
		s.mu.Lock()
		s.loading = true
		s.message = ""
		s.mu.Unlock()

		posts, err := s.ingest(ctx, s.log)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.loading = false
		if err != nil {
			s.message = msgLoadFailed
			s.log.Error("refresh failed", zap.Error(err))
			return nil, err
		}
		s.posts = posts
		return nil, nil
	})
	return err
}

// ingest is the aggregation pipeline: list, filter to text artifacts, then
// fetch and parse every survivor concurrently. One bad artifact drops only
// itself; the join always waits for all siblings and the listed order is
// preserved in the result.
func (s *Service) ingest(ctx context.Context, log *zap.Logger) ([]domain.PostRecord, error) {
	descs, err := s.store.List(ctx)
	if err != nil {
		return nil, &domain.ListError{Err: err}
	}

	retained := descs[:0:0]
	for _, d := range descs {
		if strings.HasSuffix(d.Name, artifactExt) {
			retained = append(retained, d)
		}
	}

	results := make([]*domain.PostRecord, len(retained))
	var wg sync.WaitGroup
	for i, d := range retained {
		wg.Add(1)
		go func(i int, d domain.ArtifactDescriptor) {
			defer wg.Done()
			body, err := s.store.Download(ctx, d.Name)
			if err != nil {
				// Recovered locally: the artifact is dropped, nothing
				// surfaces to the user.
				log.Warn("artifact dropped", zap.String("name", d.Name),
					zap.Error(&domain.FetchError{Name: d.Name, Err: err}))
				return
			}
			rec := parser.Parse(body)
			rec.ID = d.Name
			rec.CreatedAt = d.CreatedAt
			results[i] = &rec
		}(i, d)
	}
	wg.Wait()

	posts := make([]domain.PostRecord, 0, len(retained))
	for _, r := range results {
		if r != nil {
			posts = append(posts, *r)
		}
	}
	return posts, nil
}
