package container

import (
	"github.com/rs/zerolog"
	"github.com/skybi/tally/internal/cell"
	"github.com/skybi/tally/internal/key"
	"io"
	"sort"
	"strings"
	"sync"
)

type entry[T cell.Number] struct {
	key   string
	value *cell.Cell[T]
}

// Entry represents a snapshot of a single key-value pair
type Entry[T cell.Number] struct {
	Key   string `json:"key"`
	Value T      `json:"value"`
}

// Container maps validated keys to atomically mutable numeric cells.
// Entries are kept ordered by key length first and lexicographically second; they are never removed.
// Every operation holds a single container-wide lock. The cells handed out by Access may be used without it.
type Container[T cell.Number] struct {
	mtx       sync.Mutex
	entries   []*entry[T]
	maxLength int
	logger    zerolog.Logger
}

// Option configures a Container
type Option func(*options)

type options struct {
	maxLength int
	logger    zerolog.Logger
}

// WithMaxKeyLength overrides the maximum amount of characters a key may consist of
func WithMaxKeyLength(n int) Option {
	return func(opts *options) {
		opts.maxLength = n
	}
}

// WithLogger sets the logger new entries are reported to at debug level
func WithLogger(logger zerolog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// New creates a new empty container
func New[T cell.Number](opts ...Option) *Container[T] {
	cfg := &options{
		maxLength: key.DefaultMaxLength,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Container[T]{
		maxLength: cfg.maxLength,
		logger:    cfg.logger,
	}
}

// Access returns the cell assigned to the given key, creating a zero-valued one if the key is new.
// Subsequent calls using the same key (in any case) return the same cell.
func (container *Container[T]) Access(raw string) (*cell.Cell[T], error) {
	container.mtx.Lock()
	defer container.mtx.Unlock()
	normalized, err := key.Validate(raw, container.maxLength)
	if err != nil {
		return nil, err
	}
	return container.findOrCreate(normalized), nil
}

// Increment increments the value assigned to the given key and returns the incremented value
func (container *Container[T]) Increment(raw string) (T, error) {
	container.mtx.Lock()
	defer container.mtx.Unlock()
	normalized, err := key.Validate(raw, container.maxLength)
	if err != nil {
		var zero T
		return zero, err
	}
	return container.findOrCreate(normalized).Increment(), nil
}

// Set sets the value assigned to the given key
func (container *Container[T]) Set(raw string, value T) error {
	container.mtx.Lock()
	defer container.mtx.Unlock()
	normalized, err := key.Validate(raw, container.maxLength)
	if err != nil {
		return err
	}
	container.findOrCreate(normalized).Assign(value)
	return nil
}

// Size returns the amount of stored entries
func (container *Container[T]) Size() int {
	container.mtx.Lock()
	defer container.mtx.Unlock()
	return len(container.entries)
}

// Entries returns a snapshot of all entries in their current order
func (container *Container[T]) Entries() []Entry[T] {
	container.mtx.Lock()
	defer container.mtx.Unlock()
	snapshot := make([]Entry[T], 0, len(container.entries))
	for _, ent := range container.entries {
		snapshot = append(snapshot, Entry[T]{
			Key:   ent.key,
			Value: ent.value.Read(),
		})
	}
	return snapshot
}

// Render renders one line per entry in the current order using the given presentation
func (container *Container[T]) Render(presentation Presentation) string {
	container.mtx.Lock()
	defer container.mtx.Unlock()
	builder := new(strings.Builder)
	for _, ent := range container.entries {
		presentation.line(builder, ent.key, ent.value.String())
	}
	return builder.String()
}

// String renders the container using PresentationPlain
func (container *Container[T]) String() string {
	return container.Render(PresentationPlain)
}

// WriteTo writes the PresentationPlain rendering of the container to the given writer
func (container *Container[T]) WriteTo(writer io.Writer) (int64, error) {
	n, err := io.WriteString(writer, container.String())
	return int64(n), err
}

// findOrCreate has to be called while holding the lock.
// A missing entry is appended and the whole collection re-sorted; the entry is then located again by its key.
func (container *Container[T]) findOrCreate(normalized string) *cell.Cell[T] {
	if found := container.find(normalized); found != nil {
		return found
	}

	container.entries = append(container.entries, &entry[T]{
		key:   normalized,
		value: cell.New[T](),
	})
	sort.SliceStable(container.entries, func(i, j int) bool {
		return key.Less(container.entries[i].key, container.entries[j].key)
	})
	container.logger.Debug().Str("key", normalized).Int("entries", len(container.entries)).Msg("created entry")

	return container.find(normalized)
}

func (container *Container[T]) find(normalized string) *cell.Cell[T] {
	for _, ent := range container.entries {
		if ent.key == normalized {
			return ent.value
		}
	}
	return nil
}
