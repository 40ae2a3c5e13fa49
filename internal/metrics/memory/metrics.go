package memory

import (
	"sync"
	"time"
)

// MetricsProvider is an in-memory counter set used as a test double.
type MetricsProvider struct {
	mu sync.Mutex

	HTTPRequests       int
	CacheHits          int
	CacheMisses        int
	PostOperations     map[string]int
	TagOperations      map[string]int
	FeedbackOperations map[string]int
	Healthy            bool
}

func NewMetricsProvider() *MetricsProvider {
	return &MetricsProvider{
		PostOperations:     make(map[string]int),
		TagOperations:      make(map[string]int),
		FeedbackOperations: make(map[string]int),
	}
}

func (m *MetricsProvider) IncrementHTTPRequests(method, path, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HTTPRequests++
}

func (m *MetricsProvider) RecordHTTPRequestDuration(method, path string, duration time.Duration) {}

func (m *MetricsProvider) IncrementCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MetricsProvider) IncrementCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MetricsProvider) RecordCacheOperationDuration(operation string, duration time.Duration) {}

func (m *MetricsProvider) IncrementPostOperations(operation string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PostOperations[operation]++
}

func (m *MetricsProvider) IncrementTagOperations(operation string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TagOperations[operation]++
}

func (m *MetricsProvider) IncrementFeedbackOperations(operation string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedbackOperations[operation]++
}

func (m *MetricsProvider) SetServiceHealth(healthy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Healthy = healthy
}
