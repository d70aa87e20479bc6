// Package batch splits many workbooks concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrEmptySuffix indicates outputs would replace their own inputs.
var ErrEmptySuffix = errors.New("empty suffix with output directory equal to input directory")

// Job is one input/output pair.
type Job struct {
	Input  string
	Output string
}

// Result is the outcome of one job; exactly one of Summary and Err is set.
type Result struct {
	Job     Job
	Summary *models.SplitSummary
	Err     error
}

// SplitFunc performs one split.
type SplitFunc func(input, output string) (*models.SplitSummary, error)

// Plan lists every .xlsx file in inDir and maps it to
// outDir/<name><suffix>.xlsx. Office lock files ("~$...") and files already
// carrying the suffix are ignored. Jobs are sorted by input name.
func Plan(inDir, outDir, suffix string) ([]Job, error) {
	if suffix == "" && sameDir(inDir, outDir) {
		return nil, ErrEmptySuffix
	}
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", inDir, err)
	}

	var jobs []Job
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".xlsx") || strings.HasPrefix(name, "~$") {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if suffix != "" && strings.HasSuffix(stem, suffix) {
			continue
		}
		jobs = append(jobs, Job{
			Input:  filepath.Join(inDir, name),
			Output: filepath.Join(outDir, stem+suffix+".xlsx"),
		})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Input < jobs[j].Input })
	return jobs, nil
}

func sameDir(a, b string) bool {
	ai, errA := os.Stat(a)
	bi, errB := os.Stat(b)
	if errA == nil && errB == nil {
		return os.SameFile(ai, bi)
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// Runner executes jobs with bounded concurrency.
type Runner struct {
	// Jobs bounds concurrent splits; values below 1 mean 1.
	Jobs int
	// Split performs each job.
	Split SplitFunc
	// Logger may be nil.
	Logger *zap.Logger
}

// Run executes every job and returns results in job order. A failed job does
// not stop the others. Jobs not started before ctx is done carry ctx's error.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))
	limit := r.Jobs
	if limit < 1 {
		limit = 1
	}

	results := make([]Result, len(jobs))
	g := new(errgroup.Group)
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Job: job, Err: err}
				return nil
			}
			summary, err := r.Split(job.Input, job.Output)
			results[i] = Result{Job: job, Summary: summary, Err: err}
			if err != nil {
				logger.Warn("Split failed", zap.String("input", job.Input), zap.Error(err))
			} else {
				logger.Info("Split done", zap.String("input", job.Input), zap.Int("sheets_created", summary.SheetsCreated))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// Failed counts results carrying an error.
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
