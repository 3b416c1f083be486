// Package store keeps transient embedding-job state in memory.
package store

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type JobState string

const (
	JobQueued     JobState = "queued"
	JobProcessing JobState = "processing"
	JobCompleted  JobState = "completed"
	JobFailed     JobState = "failed"
)

// JobStatus tracks one embed-report job from publish to completion.
type JobStatus struct {
	JobID     string    `json:"jobId"`
	ReportID  string    `json:"reportId"`
	State     JobState  `json:"state"`
	Error     string    `json:"error,omitempty"`
	Chunks    int       `json:"chunks,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type JobStatusStore struct {
	cache *cache.Cache
}

func NewJobStatusStore() *JobStatusStore {
	// Jobs expire an hour after their last update; expired entries are
	// purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &JobStatusStore{
		cache: c,
	}
}

func (s *JobStatusStore) Set(status *JobStatus) {
	status.UpdatedAt = time.Now()
	s.cache.Set(status.JobID, status, cache.DefaultExpiration)
}

func (s *JobStatusStore) Get(jobID string) (*JobStatus, bool) {
	if x, found := s.cache.Get(jobID); found {
		return x.(*JobStatus), true
	}
	return nil, false
}

func (s *JobStatusStore) Delete(jobID string) {
	s.cache.Delete(jobID)
}
