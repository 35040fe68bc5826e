package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/orgresolve/internal/model"
)

// Resolver ranks catalog names for one query
type Resolver interface {
	Resolve(ctx context.Context, query string, limit int) ([]model.MatchResult, error)
}

// QueryJob resolves one query from a batch
type QueryJob struct {
	Index    int
	Query    string
	Limit    int
	Resolver Resolver
}

// Execute executes the query job
func (j *QueryJob) Execute(ctx context.Context) Result {
	results, err := j.Resolver.Resolve(ctx, j.Query, j.Limit)
	return &QueryResult{
		Index:   j.Index,
		Query:   j.Query,
		Results: results,
		Error:   err,
	}
}

// QueryResult represents the result of a query job
type QueryResult struct {
	Index   int                 `json:"-"`
	Query   string              `json:"query"`
	Results []model.MatchResult `json:"results"`
	Error   error               `json:"-"`
}

// GetError returns the error from the query result
func (r *QueryResult) GetError() error {
	return r.Error
}

// BatchProcessor resolves many queries concurrently
type BatchProcessor struct {
	resolver    Resolver
	concurrency int
	limit       int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(resolver Resolver, concurrency, limit int) *BatchProcessor {
	return &BatchProcessor{
		resolver:    resolver,
		concurrency: concurrency,
		limit:       limit,
	}
}

// ProcessQueries resolves queries concurrently and returns the results in
// input order. A cancelled ctx returns the results collected so far.
func (b *BatchProcessor) ProcessQueries(ctx context.Context, queries []string) []*QueryResult {
	if len(queries) == 0 {
		return []*QueryResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	go func() {
		for i, q := range queries {
			pool.Submit(&QueryJob{
				Index:    i,
				Query:    q,
				Limit:    b.limit,
				Resolver: b.resolver,
			})
		}
	}()

	out := make([]*QueryResult, 0, len(queries))
collect:
	for len(out) < len(queries) {
		select {
		case r, ok := <-pool.Results():
			if !ok {
				break collect
			}
			out = append(out, r.(*QueryResult))
		case <-ctx.Done():
			break collect
		}
	}
	pool.Shutdown()

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessFile reads queries from a file and resolves them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*QueryResult, error) {
	queries, err := ReadQueriesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}

	return b.ProcessQueries(ctx, queries), nil
}

// ReadQueriesFromFile reads queries from a file (one per line). Blank
// lines and # comments are skipped and duplicates dropped.
func ReadQueriesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var queries []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			queries = append(queries, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return queries, nil
}
