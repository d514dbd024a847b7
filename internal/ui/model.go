// Package ui holds the client view state and the operations that drive it.
package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/alexivanou/cityweather/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	MsgEnterCity     = "Please enter a city"
	MsgFetchError    = "Error fetching weather data"
	MsgTopCitiesFail = "Error fetching top cities weather"
)

var (
	// ErrEmptyQuery is returned by Search when the trimmed input is empty
	ErrEmptyQuery = errors.New("empty city query")
	// ErrStale is returned by Search when a newer search was issued before
	// this one completed; its result was discarded.
	ErrStale = errors.New("search superseded by a newer one")
)

// Fetcher retrieves current weather for one city
type Fetcher interface {
	Weather(ctx context.Context, city string) (*model.WeatherResult, error)
}

// CityPanel is one entry of the top-cities panel. Exactly one of Weather and
// Err is set once loaded.
type CityPanel struct {
	City    string
	Weather *model.WeatherResult
	Err     error
}

// ViewState is the transient state the view renders from
type ViewState struct {
	Input       string
	Suggestions []string
	Weather     *model.WeatherResult
	Error       string
	Loading     bool
	TopCities   []CityPanel
}

// Model owns the ViewState and applies user actions to it. It is safe for
// concurrent use; fetches run without holding the lock.
type Model struct {
	fetcher      Fetcher
	cities       []string
	batchTimeout time.Duration
	logger       *zap.Logger

	mu    sync.Mutex
	state ViewState
	seq   uint64
}

// Option configures a Model
type Option func(*Model)

// WithBatchTimeout bounds the whole top-cities load
func WithBatchTimeout(d time.Duration) Option {
	return func(m *Model) { m.batchTimeout = d }
}

// WithLogger sets the logger used for failed fetches
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// NewModel creates a model over the ordered default city list. The list also
// serves as the suggestion reference.
func NewModel(fetcher Fetcher, cities []string, opts ...Option) *Model {
	m := &Model{
		fetcher: fetcher,
		cities:  append([]string(nil), cities...),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a copy of the current view state
func (m *Model) State() ViewState {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.state
	s.Suggestions = append([]string(nil), m.state.Suggestions...)
	s.TopCities = append([]CityPanel(nil), m.state.TopCities...)
	return s
}

// SetInput records a keystroke and recomputes suggestions
func (m *Model) SetInput(text string) []string {
	suggestions := Suggest(m.cities, text)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Input = text
	m.state.Suggestions = suggestions
	return append([]string(nil), suggestions...)
}

// SelectSuggestion puts suggestion into the input verbatim, clears the
// suggestion list and searches for it.
func (m *Model) SelectSuggestion(ctx context.Context, suggestion string) error {
	m.mu.Lock()
	m.state.Input = suggestion
	m.state.Suggestions = nil
	m.mu.Unlock()

	return m.Search(ctx)
}

// Search fetches weather for the current input. Only the most recently issued
// search may change the result: completions of older searches are dropped
// and reported as ErrStale.
func (m *Model) Search(ctx context.Context) error {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	city := strings.TrimSpace(m.state.Input)
	if city == "" {
		m.state.Error = MsgEnterCity
		m.state.Loading = false
		m.mu.Unlock()
		return ErrEmptyQuery
	}
	m.state.Loading = true
	m.state.Error = ""
	m.mu.Unlock()

	result, err := m.fetcher.Weather(ctx, city)

	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.seq {
		m.logger.Debug("Dropping stale search result", zap.String("city", city), zap.Uint64("seq", seq))
		return ErrStale
	}

	m.state.Loading = false
	if err != nil {
		m.logger.Warn("Search failed", zap.String("city", city), zap.Error(err))
		m.state.Weather = nil
		m.state.Error = MsgFetchError
		return err
	}
	m.state.Weather = result
	m.state.Error = ""
	return nil
}

// LoadTopCities fetches every default city concurrently and waits for all of
// them. Each city succeeds or fails on its own; the panel keeps configured
// order. It returns the number of cities that failed.
func (m *Model) LoadTopCities(ctx context.Context) int {
	if m.batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.batchTimeout)
		defer cancel()
	}

	panels := make([]CityPanel, len(m.cities))
	var g errgroup.Group
	for i, city := range m.cities {
		i, city := i, city
		g.Go(func() error {
			result, err := m.fetcher.Weather(ctx, city)
			panels[i] = CityPanel{City: city, Weather: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, p := range panels {
		if p.Err != nil {
			failed++
			m.logger.Warn("Top city fetch failed", zap.String("city", p.City), zap.Error(p.Err))
		}
	}

	m.mu.Lock()
	m.state.TopCities = panels
	m.mu.Unlock()

	return failed
}
