package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/locvowork/report_engine_sample/reportsvc/internal/logger"
	"github.com/locvowork/report_engine_sample/reportsvc/pkg/chunkflow"
	"github.com/locvowork/report_engine_sample/reportsvc/pkg/reportgen"
)

// Job states.
const (
	JobPending   = "pending"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// Job tracks one asynchronous render.
type Job struct {
	ID        string
	Status    string
	Processed int
	Total     int // -1 while unknown
	Error     string
	Result    *reportgen.ExportResult
	CreatedAt time.Time
	DoneAt    time.Time
}

// JobService wraps render calls in async jobs with status and progress. The
// render engine itself stays synchronous; the job is just bookkeeping on
// top of it.
type JobService struct {
	registry *reportgen.Registry

	mu   sync.RWMutex
	jobs map[string]*Job
}

func NewJobService(registry *reportgen.Registry) *JobService {
	return &JobService{
		registry: registry,
		jobs:     map[string]*Job{},
	}
}

// Submit starts an export job that drains the fetcher and renders the
// collected rows in the requested format. Progress updates come from the
// chunk processor's callback.
func (s *JobService) Submit(ctx context.Context, format reportgen.Format, cols []reportgen.Column, opts reportgen.Options, fetch chunkflow.Fetcher, batchSize int) (*Job, error) {
	// Jobs only cover document exports. Reject anything else up front,
	// before spawning anything.
	if !s.registry.SupportsExport(format) {
		return nil, fmt.Errorf("%w: %q", reportgen.ErrUnsupportedFormat, format)
	}

	job := &Job{
		ID:        uuid.NewString(),
		Status:    JobPending,
		Total:     -1,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	go s.run(job.ID, format, cols, opts, fetch, batchSize)
	return job, nil
}

func (s *JobService) run(id string, format reportgen.Format, cols []reportgen.Column, opts reportgen.Options, fetch chunkflow.Fetcher, batchSize int) {
	ctx := context.Background()
	s.update(id, func(j *Job) { j.Status = JobRunning })

	processor := chunkflow.New(fetch,
		chunkflow.WithBatchSize(batchSize),
		chunkflow.WithProgress(func(processed, total int) {
			s.update(id, func(j *Job) {
				j.Processed = processed
				j.Total = total
			})
		}),
	)

	rows, err := processor.CollectAll(ctx)
	if err != nil {
		s.fail(id, err)
		return
	}

	res, err := s.registry.Export(ctx, format, rows, cols, opts)
	if err != nil {
		s.fail(id, err)
		return
	}

	s.update(id, func(j *Job) {
		j.Status = JobCompleted
		j.Result = res
		j.DoneAt = time.Now()
	})
}

func (s *JobService) fail(id string, err error) {
	logger.ErrorLog(context.Background(), fmt.Sprintf("export job %s failed: %v", id, err))
	s.update(id, func(j *Job) {
		j.Status = JobFailed
		j.Error = err.Error()
		j.DoneAt = time.Now()
	})
}

func (s *JobService) update(id string, fn func(*Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		fn(j)
	}
}

// Get returns a snapshot of the job, or nil if unknown.
func (s *JobService) Get(id string) *Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil
	}
	snapshot := *j
	return &snapshot
}
