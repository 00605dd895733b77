package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/akshaytechonsy/postdeck/internal/domain"
)

// MockStore serves canned artifacts from memory and doubles as a JobRunner:
// each Invoke appends a fresh artifact, so the full generate/refresh flow
// works without a real backend.
type MockStore struct {
	mu        sync.Mutex
	artifacts []mockArtifact
	generated int
}

type mockArtifact struct {
	name      string
	createdAt time.Time
	body      string
}

func NewMockStore() *MockStore {
	now := time.Now()
	m := &MockStore{}
	for i := 0; i < 3; i++ {
		m.artifacts = append(m.artifacts, mockArtifact{
			name:      fmt.Sprintf("seed_post_%d.txt", i),
			createdAt: now.Add(-time.Duration(i) * time.Hour),
			body:      mockBody(fmt.Sprintf("Seeded headline #%d", i)),
		})
	}
	// A stray non-text object, as real buckets tend to accumulate.
	m.artifacts = append(m.artifacts, mockArtifact{
		name:      "thumbnail.png",
		createdAt: now.Add(-24 * time.Hour),
		body:      "\x89PNG",
	})
	return m
}

func (m *MockStore) List(ctx context.Context) ([]domain.ArtifactDescriptor, error) {
	// Simulate network latency (nice for testing concurrency)
	time.Sleep(50 * time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()

	descs := make([]domain.ArtifactDescriptor, 0, len(m.artifacts))
	for _, a := range m.artifacts {
		descs = append(descs, domain.ArtifactDescriptor{Name: a.name, CreatedAt: a.createdAt})
	}
	// Newest first, like the store-side sort.
	sort.Slice(descs, func(i, j int) bool {
		return descs[i].CreatedAt.After(descs[j].CreatedAt)
	})
	if len(descs) > listLimit {
		descs = descs[:listLimit]
	}
	return descs, nil
}

func (m *MockStore) Download(ctx context.Context, name string) (string, error) {
	time.Sleep(50 * time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.artifacts {
		if a.name == name {
			return a.body, nil
		}
	}
	return "", fmt.Errorf("object %s not found", name)
}

func (m *MockStore) Invoke(ctx context.Context) error {
	time.Sleep(200 * time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.generated++
	m.artifacts = append(m.artifacts, mockArtifact{
		name:      fmt.Sprintf("generated_post_%d.txt", m.generated),
		createdAt: time.Now(),
		body:      mockBody(fmt.Sprintf("Generated headline #%d", m.generated)),
	})
	return nil
}

func mockBody(title string) string {
	return "Title: " + title + "\n" +
		"Caption: Simulated caption for local development.\n" +
		"Hashtags: #mock #localdev\n" +
		"Source: N/A\n" +
		"Image URL: N/A\n"
}
