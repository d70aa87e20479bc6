package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
}

func TestPlan(t *testing.T) {
	in := t.TempDir()
	touch(t, in, "b.xlsx")
	touch(t, in, "a.XLSX")
	touch(t, in, "~$a.xlsx")
	touch(t, in, "notes.txt")
	touch(t, in, "c_by_order.xlsx")
	require.NoError(t, os.Mkdir(filepath.Join(in, "sub.xlsx"), 0o755))

	jobs, err := Plan(in, "/out", "_by_order")
	require.NoError(t, err)
	assert.Equal(t, []Job{
		{Input: filepath.Join(in, "a.XLSX"), Output: filepath.Join("/out", "a_by_order.xlsx")},
		{Input: filepath.Join(in, "b.xlsx"), Output: filepath.Join("/out", "b_by_order.xlsx")},
	}, jobs)
}

func TestPlanRejectsEmptySuffixInPlace(t *testing.T) {
	in := t.TempDir()
	touch(t, in, "a.xlsx")

	_, err := Plan(in, in, "")
	require.ErrorIs(t, err, ErrEmptySuffix)

	_, err = Plan(in, filepath.Join(in, "."), "")
	require.ErrorIs(t, err, ErrEmptySuffix)

	jobs, err := Plan(in, t.TempDir(), "")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.NotEqual(t, jobs[0].Input, jobs[0].Output)
}

func TestPlanMissingDir(t *testing.T) {
	_, err := Plan(filepath.Join(t.TempDir(), "nope"), "/out", "_x")
	require.Error(t, err)
}

func TestRunCollectsResultsInOrder(t *testing.T) {
	jobs := []Job{{Input: "a", Output: "A"}, {Input: "bad", Output: "B"}, {Input: "c", Output: "C"}}
	var running, peak int32
	r := &Runner{
		Jobs: 2,
		Split: func(input, output string) (*models.SplitSummary, error) {
			n := atomic.AddInt32(&running, 1)
			defer atomic.AddInt32(&running, -1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			if input == "bad" {
				return nil, errors.New("boom")
			}
			return &models.SplitSummary{Status: models.StatusSuccess, OutputPath: output, SheetsCreated: 1}, nil
		},
	}

	results, err := r.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "A", results[0].Summary.OutputPath)
	assert.EqualError(t, results[1].Err, "boom")
	assert.Nil(t, results[1].Summary)
	assert.Equal(t, "C", results[2].Summary.OutputPath)
	assert.Equal(t, 1, Failed(results))
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	r := &Runner{Split: func(string, string) (*models.SplitSummary, error) {
		called = true
		return nil, nil
	}}
	results, err := r.Run(ctx, []Job{{Input: "a", Output: "b"}})
	require.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
	assert.False(t, called)
}
