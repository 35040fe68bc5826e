package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/orgresolve/internal/extract"
	"github.com/ppiankov/orgresolve/internal/logging"
	"github.com/ppiankov/orgresolve/internal/metrics"
	"github.com/ppiankov/orgresolve/internal/model"
)

// SupplementFunc generates entries for query and writes them to the
// catalog, returning how many were added. It must return only after the
// catalog insert and rebuild have completed.
type SupplementFunc func(ctx context.Context, query string) (int, error)

// CountFunc returns how many search results query currently has
type CountFunc func(query string) int

// Scheduler runs supplementation tasks on a bounded pool, at most one
// running task per query string.
//
// Thread Safety: safe for concurrent use.
type Scheduler struct {
	cfg    model.SupplementConfig
	pool   *Pool
	work   SupplementFunc
	count  CountFunc
	now    func() time.Time
	mu     sync.Mutex
	tasks  map[string]*taskState
	drain  sync.WaitGroup
	closed bool
}

type taskState struct {
	task model.SupplementationTask
	done chan struct{}
}

// supplementJob is the pool job for one task
type supplementJob struct {
	s     *Scheduler
	id    string
	query string
}

// SupplementResult is emitted when a task completes
type SupplementResult struct {
	TaskID   string
	Query    string
	Added    int
	Duration time.Duration
	Err      error
}

// GetError returns the task error
func (r *SupplementResult) GetError() error {
	return r.Err
}

// NewScheduler creates and starts a scheduler
func NewScheduler(cfg model.SupplementConfig, work SupplementFunc, count CountFunc) *Scheduler {
	s := &Scheduler{
		cfg:   cfg,
		pool:  NewPoolSize(cfg.Workers, cfg.QueueSize),
		work:  work,
		count: count,
		now:   time.Now,
		tasks: make(map[string]*taskState),
	}
	s.pool.Start()

	s.drain.Add(1)
	go s.consume()
	return s
}

// consume logs completed tasks until the pool closes its results
func (s *Scheduler) consume() {
	defer s.drain.Done()
	for r := range s.pool.Results() {
		res := r.(*SupplementResult)
		ctx := logging.WithContext(context.Background(), logging.TaskIDKey, res.TaskID)
		if res.Err != nil {
			logging.Error(ctx, "supplementation failed", res.Err, "query", res.Query)
			continue
		}
		logging.Info(ctx, "supplementation done", "query", res.Query, "added", res.Added, "duration", res.Duration)
	}
}

// Trigger starts supplementation for query without blocking. When a task
// for the same query is already running it is returned instead of
// starting a duplicate.
func (s *Scheduler) Trigger(ctx context.Context, query string) (model.SupplementationTask, error) {
	query = extract.Normalize(query)
	if query == "" {
		return model.SupplementationTask{}, model.NewError(model.KindInvalidInput, "supplement.trigger", fmt.Errorf("empty query"))
	}

	baseline := s.count(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return model.SupplementationTask{}, model.NewError(model.KindQueueFull, "supplement.trigger", fmt.Errorf("scheduler closed"))
	}
	s.purgeLocked()

	if st, ok := s.tasks[query]; ok && !st.task.Done() {
		metrics.SupplementTasks.WithLabelValues("deduplicated").Inc()
		return st.task, nil
	}

	st := &taskState{
		task: model.SupplementationTask{
			ID:                uuid.NewString(),
			Query:             query,
			Status:            model.TaskRunning,
			StartedAt:         s.now(),
			EstimatedDuration: s.Estimate(query),
			BaselineCount:     baseline,
		},
		done: make(chan struct{}),
	}

	if err := s.pool.TrySubmit(&supplementJob{s: s, id: st.task.ID, query: query}); err != nil {
		metrics.SupplementTasks.WithLabelValues("rejected").Inc()
		return model.SupplementationTask{}, err
	}

	s.tasks[query] = st
	metrics.SupplementTasks.WithLabelValues("started").Inc()
	metrics.SupplementInFlight.Inc()
	logging.Info(logging.WithContext(ctx, logging.TaskIDKey, st.task.ID), "supplementation started",
		"query", query, "eta", st.task.EstimatedDuration, "baseline", baseline)
	return st.task, nil
}

// Execute runs the task: simulated source latency, then generation,
// catalog insert and rebuild, then the task is marked done.
func (j *supplementJob) Execute(ctx context.Context) Result {
	start := j.s.now()
	res := &SupplementResult{TaskID: j.id, Query: j.query}

	if d := j.s.cfg.WorkDelay; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
		}
	}

	res.Added, res.Err = j.s.work(ctx, j.query)
	res.Duration = j.s.now().Sub(start)
	j.s.finish(j.query, j.id, res)
	return res
}

func (s *Scheduler) finish(query, id string, res *SupplementResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.tasks[query]
	if !ok || st.task.ID != id {
		return
	}
	st.task.Status = model.TaskDone
	st.task.FinishedAt = s.now()
	st.task.Added = res.Added
	if res.Err != nil {
		st.task.Error = res.Err.Error()
		metrics.SupplementTasks.WithLabelValues("failed").Inc()
	} else {
		metrics.SupplementTasks.WithLabelValues("done").Inc()
	}
	metrics.SupplementInFlight.Dec()
	metrics.SupplementDuration.Observe(res.Duration.Seconds())
	close(st.done)
}

// Task returns the current or most recent task for query
func (s *Scheduler) Task(query string) (model.SupplementationTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.tasks[extract.Normalize(query)]
	if !ok {
		return model.SupplementationTask{}, false
	}
	return st.task, true
}

// Poll re-counts search results for query and compares them with the
// count captured when the task was triggered. Without a known task the
// baseline is zero.
func (s *Scheduler) Poll(query string) model.PollResult {
	query = extract.Normalize(query)
	count := s.count(query)

	s.mu.Lock()
	s.purgeLocked()
	st, ok := s.tasks[query]
	var task model.SupplementationTask
	if ok {
		task = st.task
	}
	s.mu.Unlock()

	res := model.PollResult{
		Query:         query,
		Count:         count,
		HasNewResults: count > task.BaselineCount,
	}
	if ok {
		res.Status = task.Status
	}
	res.Message = pollMessage(res, task, ok)
	return res
}

func pollMessage(res model.PollResult, task model.SupplementationTask, known bool) string {
	switch {
	case known && !task.Done():
		return "正在补充企业数据，请稍候..."
	case known && task.Error != "":
		return "数据补充失败，已返回本地结果"
	case res.HasNewResults:
		return fmt.Sprintf("数据补充完成，找到 %d 个相关企业", res.Count)
	case res.Count > 0:
		return fmt.Sprintf("找到 %d 个相关企业，暂无新增数据", res.Count)
	default:
		return "暂未找到相关企业数据"
	}
}

// Wait blocks until the task for query is done or ctx ends. A query with
// no task returns immediately.
func (s *Scheduler) Wait(ctx context.Context, query string) error {
	s.mu.Lock()
	st, ok := s.tasks[extract.Normalize(query)]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	select {
	case <-st.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Estimate returns the UX hint for how long supplementation of query
// takes: the base time, plus the simulated source latency, plus extra for
// long queries and for queries mixing scripts with Latin text.
func (s *Scheduler) Estimate(query string) time.Duration {
	eta := s.cfg.BaseETA + s.cfg.WorkDelay
	if n := extract.RuneLen(query); n > 4 {
		eta += time.Duration(n-4) * 200 * time.Millisecond
	}
	if extract.HasScript(query) && hasLatin(query) {
		eta += time.Second
	}
	return eta
}

func hasLatin(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// purgeLocked forgets finished tasks older than the TTL
func (s *Scheduler) purgeLocked() {
	if s.cfg.TaskTTL <= 0 {
		return
	}
	cutoff := s.now().Add(-s.cfg.TaskTTL)
	for q, st := range s.tasks {
		if st.task.Done() && st.task.FinishedAt.Before(cutoff) {
			delete(s.tasks, q)
		}
	}
}

// Running returns the number of tasks not yet done
func (s *Scheduler) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, st := range s.tasks {
		if !st.task.Done() {
			n++
		}
	}
	return n
}

// Close stops accepting tasks, cancels running ones and waits for the
// workers to exit
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.pool.Shutdown()
	s.drain.Wait()

	// Queued jobs that never ran still have waiters
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.tasks {
		if st.task.Done() {
			continue
		}
		st.task.Status = model.TaskDone
		st.task.FinishedAt = s.now()
		st.task.Error = "scheduler closed"
		metrics.SupplementInFlight.Dec()
		close(st.done)
	}
}
