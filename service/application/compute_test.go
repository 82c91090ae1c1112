package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"compute-service/service/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastSleep encurta a latência simulada mantendo a proporção entre subtarefas.
func fastSleep(ctx context.Context, d time.Duration) error {
	return SleepContext(ctx, d/50)
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []uint
}

func (o *recordingObserver) ObserveTask(res domain.ComputeResult, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, res.Index)
}

func indexSet(results []domain.ComputeResult) map[uint]uint64 {
	out := make(map[uint]uint64, len(results))
	for _, r := range results {
		out[r.Index] = r.Value
	}
	return out
}

func TestClampTasks(t *testing.T) {
	assert.Equal(t, 0, ClampTasks(-1))
	assert.Equal(t, 0, ClampTasks(0))
	assert.Equal(t, 5, ClampTasks(5))
	assert.Equal(t, 32, ClampTasks(32))
	assert.Equal(t, 32, ClampTasks(100))
}

func TestCompute_FiveTasks(t *testing.T) {
	eng := ComputeEngine{Sleep: fastSleep}

	results, err := eng.Compute(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, results, 5)

	assert.Equal(t, map[uint]uint64{0: 0, 1: 1, 2: 4, 3: 9, 4: 16}, indexSet(results))
	for _, r := range results {
		assert.Equal(t, uint64(50+r.Index*30), r.DurationMS, "index %d", r.Index)
	}
}

func TestCompute_ZeroAndNegativeAreEmpty(t *testing.T) {
	eng := ComputeEngine{Sleep: fastSleep}

	for _, n := range []int{0, -7} {
		results, err := eng.Compute(context.Background(), n)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}
}

func TestCompute_ClampsToMax(t *testing.T) {
	eng := ComputeEngine{Sleep: func(context.Context, time.Duration) error { return nil }}

	big, err := eng.Compute(context.Background(), 100)
	require.NoError(t, err)
	capped, err := eng.Compute(context.Background(), domain.MaxComputeTasks)
	require.NoError(t, err)

	assert.Len(t, big, domain.MaxComputeTasks)
	assert.Equal(t, indexSet(capped), indexSet(big))
}

func TestCompute_ResultsArriveInCompletionOrder(t *testing.T) {
	// inverte as latências: o maior índice termina primeiro
	eng := ComputeEngine{Sleep: func(ctx context.Context, d time.Duration) error {
		idx := (d - domain.ComputeBase) / domain.ComputeStep
		return SleepContext(ctx, time.Duration(4-idx)*40*time.Millisecond)
	}}

	results, err := eng.Compute(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, results, 5)

	order := make([]uint, 0, len(results))
	for _, r := range results {
		order = append(order, r.Index)
	}
	assert.Equal(t, []uint{4, 3, 2, 1, 0}, order)
}

func TestCompute_ConcurrentCallersKeepTriplesIntact(t *testing.T) {
	eng := ComputeEngine{Sleep: fastSleep}

	var wg sync.WaitGroup
	for c := 0; c < 8; c++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results, err := eng.Compute(context.Background(), n)
			if !assert.NoError(t, err) {
				return
			}
			assert.Len(t, results, ClampTasks(n))
			for _, r := range results {
				assert.Equal(t, domain.NewComputeResult(r.Index), r)
			}
		}(c * 5)
	}
	wg.Wait()
}

func TestCompute_PanickingTaskFailsWholeCall(t *testing.T) {
	eng := ComputeEngine{Sleep: func(ctx context.Context, d time.Duration) error {
		if d == domain.NewComputeResult(2).Duration() {
			panic("boom")
		}
		return nil
	}}

	results, err := eng.Compute(context.Background(), 5)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.True(t, domain.IsInternal(err))
	assert.Contains(t, errors.Unwrap(err).Error(), "compute task 2 aborted")
}

func TestCompute_CanceledContextIsInternal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := ComputeEngine{}.Compute(ctx, 3)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.True(t, domain.IsInternal(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompute_NotifiesObserver(t *testing.T) {
	obs := &recordingObserver{}
	eng := ComputeEngine{Sleep: fastSleep, Observer: obs}

	_, err := eng.Compute(context.Background(), 4)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{0, 1, 2, 3}, obs.seen)
}
