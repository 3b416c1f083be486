package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatusStoreRoundTrip(t *testing.T) {
	s := NewJobStatusStore()

	s.Set(&JobStatus{JobID: "job-1", ReportID: "report-1", State: JobQueued})

	got, found := s.Get("job-1")
	require.True(t, found)
	assert.Equal(t, JobQueued, got.State)
	assert.Equal(t, "report-1", got.ReportID)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestJobStatusStoreOverwrite(t *testing.T) {
	s := NewJobStatusStore()

	s.Set(&JobStatus{JobID: "job-1", State: JobQueued})
	s.Set(&JobStatus{JobID: "job-1", State: JobCompleted, Chunks: 3})

	got, found := s.Get("job-1")
	require.True(t, found)
	assert.Equal(t, JobCompleted, got.State)
	assert.Equal(t, 3, got.Chunks)
}

func TestJobStatusStoreMissAndDelete(t *testing.T) {
	s := NewJobStatusStore()

	_, found := s.Get("missing")
	assert.False(t, found)

	s.Set(&JobStatus{JobID: "job-2", State: JobProcessing})
	s.Delete("job-2")

	_, found = s.Get("job-2")
	assert.False(t, found)
}
