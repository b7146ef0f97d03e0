package wheel

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/tripmitra/tripmitra/internal/app/models"
)

// SpinDuration is the fixed wall-clock length of one spin animation. The
// selector stays in its spinning state for exactly this long and ignores
// further spin requests until it returns to idle.
const SpinDuration = 3000 * time.Millisecond

// Category is one fixed slice of the wheel. Static configuration, never
// mutated at runtime.
type Category struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Categories returns the fixed wheel layout in segment order.
func Categories() []Category {
	return []Category{
		{Name: "Religious", Icon: "🕉️", Color: "#FF6B35"},
		{Name: "Historic", Icon: "🏛️", Color: "#4ECDC4"},
		{Name: "Reunion", Icon: "👥", Color: "#45B7D1"},
		{Name: "Concerts", Icon: "🎵", Color: "#96CEB4"},
		{Name: "Tournaments", Icon: "🏆", Color: "#FECA57"},
		{Name: "Adventure", Icon: "🏔️", Color: "#FF9FF3"},
	}
}

// SpinOutcome is the full record of one spin: the rotation it added, the
// cumulative total afterwards, and the category the pointer lands on once the
// animation settles.
type SpinOutcome struct {
	Delta              float64  `json:"delta_degrees"`
	CumulativeRotation float64  `json:"cumulative_rotation_degrees"`
	Category           Category `json:"category"`
	DurationMs         int64    `json:"duration_ms"`
}

// State is the selector's observable snapshot.
type State struct {
	Categories         []Category `json:"categories"`
	CumulativeRotation float64    `json:"cumulative_rotation_degrees"`
	Spinning           bool       `json:"spinning"`
}

// Selector maps an accumulating rotation angle to one of the fixed
// categories. The rotation only ever grows: the visual wheel keeps turning in
// one direction across repeated spins, and wrapping happens only inside the
// selection arithmetic, never in the stored value.
type Selector struct {
	mu         sync.Mutex
	categories []Category
	rotation   float64
	spinning   bool

	rng   *rand.Rand
	after func(time.Duration, func()) // injectable for tests
}

type Option func(*Selector)

// WithRand replaces the randomness source, making spins reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) { s.rng = rng }
}

// WithTimer replaces the settle timer, letting tests collapse the spin
// duration.
func WithTimer(after func(time.Duration, func())) Option {
	return func(s *Selector) { s.after = after }
}

func NewSelector(opts ...Option) *Selector {
	s := &Selector{
		categories: Categories(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Selector) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Categories:         s.categories,
		CumulativeRotation: s.rotation,
		Spinning:           s.spinning,
	}
}

// Spin draws a rotation delta, accumulates it and reports where the pointer
// will land. A spin requested while one is still settling is rejected, not
// queued. The selected category is fixed the moment the delta is drawn; the
// timer only governs when the selector accepts the next spin.
func (s *Selector) Spin() (*SpinOutcome, error) {
	s.mu.Lock()
	if s.spinning {
		s.mu.Unlock()
		return nil, models.ErrWheelSpinning
	}
	s.spinning = true

	spins := s.rng.Intn(6) + 5 // 5 to 10 full rotations
	extra := s.rng.Float64() * 360
	delta := float64(spins)*360 + extra
	s.rotation += delta

	outcome := &SpinOutcome{
		Delta:              delta,
		CumulativeRotation: s.rotation,
		Category:           s.categories[SelectIndex(s.rotation, len(s.categories))],
		DurationMs:         SpinDuration.Milliseconds(),
	}
	s.mu.Unlock()

	s.after(SpinDuration, func() {
		s.mu.Lock()
		s.spinning = false
		s.mu.Unlock()
	})
	return outcome, nil
}

// SelectIndex maps a cumulative rotation to a segment index. The wheel is
// rendered clockwise with the pointer at top, so index 0 occupies the segment
// ending at rotation 0/360; hence the inverse (360 - normalized) before the
// floor. Exact segment boundaries resolve to the earlier segment.
func SelectIndex(cumulativeRotation float64, categoryCount int) int {
	segment := 360.0 / float64(categoryCount)
	normalized := math.Mod(cumulativeRotation, 360)
	if normalized < 0 {
		normalized += 360
	}
	return int(math.Floor((360-normalized)/segment)) % categoryCount
}
