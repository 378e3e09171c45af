package screen

import (
	"context"
	"sync"

	"holdings/internal/loader"
	"holdings/internal/models"

	"github.com/sirupsen/logrus"
)

const FetchErrorMessage = "Some error occured while fetching the data"

type Loader interface {
	Load(ctx context.Context) loader.Result
}

// Notifier surfaces a message to the user, e.g. as an alert.
type Notifier interface {
	Notify(msg string)
}

type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// View is an immutable snapshot of what the screen shows.
type View struct {
	Holdings        []models.EnrichedHolding
	TotalInvestment string
	CurrentValue    string
	TotalProfit     string
	ShowDetails     bool
	Loading         bool
}

// Screen owns the holdings state and the details flag for one mounted
// holdings screen. Results from a load that completes after Deactivate (or
// after a newer Activate) are dropped.
type Screen struct {
	loader   Loader
	notifier Notifier
	log      *logrus.Logger

	mu          sync.Mutex
	active      bool
	loading     bool
	generation  uint64
	cancel      context.CancelFunc
	done        chan struct{}
	holdings    []models.EnrichedHolding
	totals      models.Totals
	showDetails bool
}

func New(l Loader, n Notifier, log *logrus.Logger) *Screen {
	done := make(chan struct{})
	close(done)
	return &Screen{loader: l, notifier: n, log: log, done: done, holdings: []models.EnrichedHolding{}}
}

// Activate starts the one load for this activation and returns immediately.
func (s *Screen) Activate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.loading = true
	s.generation++
	gen := s.generation
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	done := make(chan struct{})
	s.done = done

	go func() {
		defer close(done)
		res := s.loader.Load(ctx)
		s.apply(gen, res)
	}()
}

// Deactivate tears the screen down. Any in-flight load is cancelled and its
// result, should it still arrive, is discarded.
func (s *Screen) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.active = false
	s.loading = false
	s.generation++
	s.holdings = []models.EnrichedHolding{}
	s.totals = models.Totals{}
	s.showDetails = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Screen) apply(gen uint64, res loader.Result) {
	s.mu.Lock()
	if !s.active || gen != s.generation {
		s.mu.Unlock()
		s.log.Debug("discarding holdings result for inactive screen")
		return
	}
	s.loading = false
	notify := false
	switch r := res.(type) {
	case loader.Success:
		s.holdings = r.Holdings
		s.totals = r.Totals
	case loader.Failure:
		notify = true
	default:
		s.log.Errorf("unexpected load result %T", res)
		notify = true
	}
	s.mu.Unlock()

	if notify {
		s.notifier.Notify(FetchErrorMessage)
	}
}

// Done is closed once the current activation's load has been applied or
// discarded.
func (s *Screen) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Screen) ToggleDetails() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showDetails = !s.showDetails
	return s.showDetails
}

func (s *Screen) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.EnrichedHolding, len(s.holdings))
	copy(items, s.holdings)
	return View{
		Holdings:        items,
		TotalInvestment: s.totals.TotalInvestmentString(),
		CurrentValue:    s.totals.CurrentValueString(),
		TotalProfit:     s.totals.ProfitString(),
		ShowDetails:     s.showDetails,
		Loading:         s.loading,
	}
}
