package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	// successIdx возвращается, если все функции отработали до отмены контекста
	successIdx = -1

	defaultForcedTimeout = 2 * time.Second
)

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

// Closer закрывает зарегистрированные ресурсы в обратном порядке (LIFO).
// Безопасен для конкурентного Add; Close выполняется один раз.
type Closer struct {
	funcs         []Func
	mu            sync.Mutex
	once          sync.Once
	err           error
	forcedTimeout time.Duration
}

// NewCloser создаёт Closer. forcedTimeout — время на принудительное закрытие ресурсов,
// которые не успели закрыться до отмены контекста в Close. 0 означает значение по умолчанию.
func NewCloser(forcedTimeout time.Duration) *Closer {
	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{
		forcedTimeout: forcedTimeout,
	}
}

// Add добавляет функцию в список закрытия.
func (c *Closer) Add(f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, f)
}

// Close закрывает ресурсы по очереди, начиная с последнего добавленного.
// Если ctx отменяется раньше, оставшиеся ресурсы закрываются параллельно с forcedTimeout.
// Повторные вызовы возвращают результат первого.
func (c *Closer) Close(ctx context.Context) error {
	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.mu.Unlock()

		stopIdx, errs := c.gracefulClose(ctx, funcs)
		if stopIdx == successIdx {
			c.err = errors.Join(errs...)
			return
		}

		errs = append(errs, c.forcedClose(funcs[:stopIdx+1])...)
		c.err = fmt.Errorf("shutdown interrupted after %d/%d funcs: %w",
			len(funcs)-1-stopIdx, len(funcs), errors.Join(errs...))
	})

	return c.err
}

// gracefulClose возвращает индекс функции, на которой отменился ctx, либо successIdx.
func (c *Closer) gracefulClose(ctx context.Context, funcs []Func) (int, []error) {
	var errs []error
	for i := len(funcs) - 1; i >= 0; i-- {
		done := make(chan error, 1)
		go func(f Func) {
			done <- f(ctx)
		}(funcs[i])

		select {
		case err := <-done:
			if err != nil {
				errs = append(errs, err)
			}
		case <-ctx.Done():
			return i, errs
		}
	}

	return successIdx, errs
}

func (c *Closer) forcedClose(funcs []Func) []error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for _, f := range funcs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("forced: %w", err))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errs
}
