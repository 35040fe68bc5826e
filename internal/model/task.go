package model

import (
	"math"
	"time"
)

// TaskStatus is the lifecycle state of a supplementation task
type TaskStatus string

const (
	TaskRunning TaskStatus = "running"
	TaskDone    TaskStatus = "done"
)

// SupplementationTask tracks background generation for one query
type SupplementationTask struct {
	ID                string        `json:"id"`
	Query             string        `json:"query"`
	Status            TaskStatus    `json:"status"`
	StartedAt         time.Time     `json:"started_at"`
	FinishedAt        time.Time     `json:"finished_at,omitempty"`
	EstimatedDuration time.Duration `json:"estimated_duration"`
	BaselineCount     int           `json:"baseline_count"` // Search result count when triggered
	Added             int           `json:"added"`          // Entries actually inserted
	Error             string        `json:"error,omitempty"`
}

// EstimatedSeconds returns the ETA rounded up to whole seconds
func (t SupplementationTask) EstimatedSeconds() int {
	return int(math.Ceil(t.EstimatedDuration.Seconds()))
}

// Done reports whether the task has finished
func (t SupplementationTask) Done() bool {
	return t.Status == TaskDone
}

// PollResult is the answer to a supplementation status poll
type PollResult struct {
	Query         string     `json:"query"`
	HasNewResults bool       `json:"has_new_results"`
	Count         int        `json:"results_count"`
	Status        TaskStatus `json:"status,omitempty"`
	Message       string     `json:"message"`
}
