// Package scheduler runs the periodic sync jobs on top of gocron.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// ErrJobNotFound is returned for operations on an unknown job id.
var ErrJobNotFound = errors.New("job not found")

// JobStatus represents the status of a job.
type JobStatus string

const (
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusScheduled JobStatus = "scheduled"
)

// JobInfo is a snapshot of a scheduled job.
type JobInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      JobStatus `json:"status"`
	Schedule    string    `json:"schedule"`
	LastRun     time.Time `json:"lastRun"`
	NextRun     time.Time `json:"nextRun"`
	RunCount    int       `json:"runCount"`
	ErrorCount  int       `json:"errorCount"`
	LastError   string    `json:"lastError,omitempty"`
	RunOnStart  bool      `json:"runOnStart,omitempty"`
}

// JobFunc is the body of a job.
type JobFunc func(ctx context.Context) error

type job struct {
	info JobInfo
	run  JobFunc
	cron gocron.Job
}

// Scheduler runs singleton cron jobs and keeps their run statistics.
type Scheduler struct {
	gocron gocron.Scheduler
	logger *log.Logger

	mu   sync.RWMutex
	jobs map[string]*job

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a scheduler whose jobs run in loc.
func New(loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	logger := log.Default().WithPrefix("scheduler")

	s, err := gocron.NewScheduler(
		gocron.WithLogger(gocronLogger{log: logger}),
		gocron.WithLocation(loc),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		gocron: s,
		logger: logger,
		jobs:   make(map[string]*job),
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// AddCronJob registers fn under id, running on the cron expression schedule.
// A run that is due while the previous one is still running is rescheduled.
// When runOnStart is set the job also runs once right after Start.
func (s *Scheduler) AddCronJob(id, name, description, schedule string, fn JobFunc, runOnStart bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job %s already exists", id)
	}

	j := &job{
		info: JobInfo{
			ID:          id,
			Name:        name,
			Description: description,
			Status:      JobStatusScheduled,
			Schedule:    schedule,
			RunOnStart:  runOnStart,
		},
		run: fn,
	}

	cj, err := s.gocron.NewJob(
		gocron.CronJob(schedule, false),
		gocron.NewTask(s.wrap(j)),
		gocron.WithName(id),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", id, err)
	}
	j.cron = cj
	s.jobs[id] = j

	s.logger.Debug("added job", "id", id, "schedule", schedule)
	return nil
}

// Start starts the scheduler and triggers the jobs marked to run on start.
func (s *Scheduler) Start() {
	s.gocron.Start()
	s.logger.Info("job scheduler started")

	s.mu.RLock()
	var instant []string
	for id, j := range s.jobs {
		if j.info.RunOnStart {
			instant = append(instant, id)
		}
	}
	s.mu.RUnlock()

	for _, id := range instant {
		if err := s.RunJobNow(id); err != nil {
			s.logger.Error("failed to run job after start", "id", id, "error", err)
		}
	}
}

// Stop cancels running jobs and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	s.logger.Info("stopping job scheduler")
	s.cancel()
	return s.gocron.Shutdown()
}

// RunJobNow triggers a job outside of its schedule.
func (s *Scheduler) RunJobNow(id string) error {
	s.mu.RLock()
	j, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}

	s.logger.Info("triggering job", "id", id)
	if err := j.cron.RunNow(); err != nil {
		return fmt.Errorf("failed to trigger job %s: %w", id, err)
	}
	return nil
}

// Jobs returns a snapshot of all jobs ordered by id.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		info := j.info
		if next, err := j.cron.NextRun(); err == nil {
			info.NextRun = next
		}
		out = append(out, info)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

// Job returns a snapshot of the job with id.
func (s *Scheduler) Job(id string) (JobInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return JobInfo{}, false
	}
	return j.info, true
}

func (s *Scheduler) wrap(j *job) func() {
	return func() {
		id := j.info.ID

		s.mu.Lock()
		j.info.Status = JobStatusRunning
		j.info.LastRun = time.Now()
		j.info.RunCount++
		s.mu.Unlock()

		s.logger.Info("starting job", "id", id)
		err := j.run(s.ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.logger.Error("job failed", "id", id, "error", err)
			j.info.Status = JobStatusFailed
			j.info.ErrorCount++
			j.info.LastError = err.Error()
			return
		}
		s.logger.Info("job completed", "id", id)
		j.info.Status = JobStatusCompleted
		j.info.LastError = ""
	}
}
