package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"compute-service/service/domain"

	"golang.org/x/sync/errgroup"
)

// SleepFunc simula a latência de uma subtarefa. Deve respeitar ctx.
type SleepFunc func(ctx context.Context, d time.Duration) error

// TaskObserver recebe cada subtarefa concluída (ex.: histograma Prometheus).
type TaskObserver interface {
	ObserveTask(res domain.ComputeResult, elapsed time.Duration)
}

// ComputeEngine dispara até domain.MaxComputeTasks subtarefas concorrentes e
// espera todas terminarem antes de devolver.
//
// Os resultados saem na ordem de conclusão, não de índice. Se qualquer
// subtarefa falhar, a chamada inteira falha com Internal: não há resultado parcial.
// Uma falha não cancela as demais subtarefas.
type ComputeEngine struct {
	Sleep    SleepFunc
	Observer TaskObserver
	Logger   *slog.Logger
}

// ClampTasks aplica o teto: min(n, MaxComputeTasks), e zero para negativos.
func ClampTasks(n int) int {
	if n <= 0 {
		return 0
	}
	return min(n, domain.MaxComputeTasks)
}

// Compute executa o fan-out/fan-in para n subtarefas.
func (e ComputeEngine) Compute(ctx context.Context, n int) ([]domain.ComputeResult, error) {
	n = ClampTasks(n)
	if n == 0 {
		return []domain.ComputeResult{}, nil
	}

	// buffer do tamanho de n: quem termina nunca bloqueia no envio,
	// e a ordem do canal é a ordem de conclusão.
	done := make(chan domain.ComputeResult, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		index := uint(i)
		g.Go(func() error {
			return e.runTask(ctx, index, done)
		})
	}

	if err := g.Wait(); err != nil {
		e.logger().Error("parallel computation failed", "tasks", n, "error", err)
		return nil, domain.WrapInternal(err, "parallel computation failed")
	}
	close(done)

	out := make([]domain.ComputeResult, 0, n)
	for res := range done {
		out = append(out, res)
	}
	return out, nil
}

func (e ComputeEngine) runTask(ctx context.Context, index uint, done chan<- domain.ComputeResult) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compute task %d aborted: %v", index, r)
		}
	}()

	start := time.Now()
	res := domain.NewComputeResult(index)
	if err := e.sleep()(ctx, res.Duration()); err != nil {
		return fmt.Errorf("compute task %d: %w", index, err)
	}
	if e.Observer != nil {
		e.Observer.ObserveTask(res, time.Since(start))
	}

	done <- res
	return nil
}

func (e ComputeEngine) sleep() SleepFunc {
	if e.Sleep != nil {
		return e.Sleep
	}
	return SleepContext
}

func (e ComputeEngine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// SleepContext espera d ou até ctx encerrar, o que vier primeiro.
func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
