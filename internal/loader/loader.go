// Package loader реализует батчинг и мемоизацию выборок в рамках одного запроса.
//
// Экземпляр Loader живет ровно один входящий запрос: кэш результатов приватен
// и между запросами не переиспользуется, иначе данные одного пользователя
// утекли бы в контекст другого.
package loader

import (
	"context"
	"sync"
	"time"
)

// BatchFunc выполняет одну пакетную выборку для набора уникальных ключей.
// Результат — map по ключу, поэтому порядок строк из базы не важен;
// отсутствующий в map ключ означает "не найдено" и разрешается в нулевое
// значение V без ошибки. Ошибка BatchFunc роняет весь батч целиком.
type BatchFunc[K comparable, V any] func(ctx context.Context, keys []K) (map[K]V, error)

const (
	defaultWait     = 2 * time.Millisecond
	defaultMaxBatch = 100
)

type options struct {
	wait     time.Duration
	maxBatch int
}

// Option настраивает параметры батчинга.
type Option func(*options)

// WithWait задает окно ожидания перед отправкой батча.
func WithWait(d time.Duration) Option {
	return func(o *options) { o.wait = d }
}

// WithMaxBatch задает максимальный размер батча; при достижении лимита
// батч отправляется немедленно, не дожидаясь окна. 0 снимает лимит.
func WithMaxBatch(n int) Option {
	return func(o *options) { o.maxBatch = n }
}

// Loader группирует одиночные Load-вызовы в пакетные выборки и мемоизирует
// результаты на время своей жизни. Безопасен для конкурентного использования
// внутри одного запроса.
type Loader[K comparable, V any] struct {
	fetch    BatchFunc[K, V]
	wait     time.Duration
	maxBatch int

	mu    sync.Mutex
	cache map[K]*thunk[K, V]
	batch *batch[K, V]
}

// New создает новый Loader поверх пакетной выборки.
func New[K comparable, V any](fetch BatchFunc[K, V], opts ...Option) *Loader[K, V] {
	o := options{wait: defaultWait, maxBatch: defaultMaxBatch}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader[K, V]{
		fetch:    fetch,
		wait:     o.wait,
		maxBatch: o.maxBatch,
		cache:    make(map[K]*thunk[K, V]),
	}
}

// batch — один незавершенный пакет ключей. Отправляется ровно один раз:
// либо по истечении окна ожидания, либо при достижении maxBatch.
type batch[K comparable, V any] struct {
	loader  *Loader[K, V]
	ctx     context.Context
	keys    []K
	once    sync.Once
	done    chan struct{}
	results map[K]V
	err     error
}

// thunk — отложенный результат для одного ключа. Попадает в кэш при первом
// Load и остается там навсегда, включая случай ошибки батча.
type thunk[K comparable, V any] struct {
	key K
	b   *batch[K, V]
}

func (t *thunk[K, V]) wait(ctx context.Context) (V, error) {
	var zero V
	select {
	case <-t.b.done:
	case <-ctx.Done():
		return zero, ctx.Err()
	}
	if t.b.err != nil {
		return zero, t.b.err
	}
	return t.b.results[t.key], nil
}

// Load возвращает значение по ключу, дожидаясь отправки текущего батча.
// Повторный Load уже разрешенного ключа отдает мемоизированный результат
// без новой выборки.
func (l *Loader[K, V]) Load(ctx context.Context, key K) (V, error) {
	return l.loadThunk(ctx, key).wait(ctx)
}

// LoadMany возвращает значения в порядке исходных ключей; дубликаты
// допустимы и разрешаются в один и тот же результат. Первая же ошибка
// прерывает сборку результата.
func (l *Loader[K, V]) LoadMany(ctx context.Context, keys []K) ([]V, error) {
	thunks := make([]*thunk[K, V], len(keys))
	for i, key := range keys {
		thunks[i] = l.loadThunk(ctx, key)
	}

	values := make([]V, len(keys))
	for i, t := range thunks {
		v, err := t.wait(ctx)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (l *Loader[K, V]) loadThunk(ctx context.Context, key K) *thunk[K, V] {
	l.mu.Lock()
	if t, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return t
	}

	b := l.batch
	if b == nil {
		b = &batch[K, V]{loader: l, ctx: ctx, done: make(chan struct{})}
		l.batch = b
		go b.flushAfter(l.wait)
	}

	// Кэш гарантирует, что ключ попадает в батч не более одного раза.
	b.keys = append(b.keys, key)
	t := &thunk[K, V]{key: key, b: b}
	l.cache[key] = t

	full := l.maxBatch > 0 && len(b.keys) >= l.maxBatch
	if full {
		l.batch = nil
	}
	l.mu.Unlock()

	if full {
		b.flush()
	}
	return t
}

func (b *batch[K, V]) flushAfter(d time.Duration) {
	time.Sleep(d)
	b.loader.mu.Lock()
	if b.loader.batch == b {
		b.loader.batch = nil
	}
	b.loader.mu.Unlock()
	b.flush()
}

func (b *batch[K, V]) flush() {
	b.once.Do(func() {
		b.results, b.err = b.loader.fetch(b.ctx, b.keys)
		close(b.done)
	})
}
