package swipe

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/YongERong/wth-caifan-lovers/models"
	"github.com/YongERong/wth-caifan-lovers/pkg/metrics"
)

const (
	// DefaultThreshold horizontal drag distance that commits a decision
	DefaultThreshold = 100.0
	// DefaultAnimation exit animation length
	DefaultAnimation = 300 * time.Millisecond
)

// ErrNoCard the deck is exhausted
var ErrNoCard = errors.New("no current card")

// Recorder persists committed decisions
type Recorder interface {
	Insert(ctx context.Context, decision *models.SwipeDecision) error
}

// Resolver returns the store identifier for a card
type Resolver func(card models.Activity) (string, error)

// Scheduler runs f once d has elapsed
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// State a snapshot of the controller
type State struct {
	Index     int       `json:"index"`
	Total     int       `json:"total"`
	Offset    Point     `json:"offset"`
	Dragging  bool      `json:"dragging"`
	Animating bool      `json:"animating"`
	Done      bool      `json:"done"`
	Transform Transform `json:"transform"`
}

// Option configures a Controller
type Option func(*Controller)

// WithThreshold overrides the commit distance
func WithThreshold(px float64) Option {
	return func(c *Controller) { c.threshold = px }
}

// WithAnimation overrides the exit animation length
func WithAnimation(d time.Duration) Option {
	return func(c *Controller) { c.animation = d }
}

// WithResolver overrides how cards map to store identifiers
func WithResolver(r Resolver) Option {
	return func(c *Controller) { c.resolve = r }
}

// WithScheduler overrides the animation timer
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithNotifier receives persistence failures
func WithNotifier(f func(error)) Option {
	return func(c *Controller) { c.notify = f }
}

// WithOnAdvance is called after every advance with the new state
func WithOnAdvance(f func(State)) Option {
	return func(c *Controller) { c.onAdvance = f }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller drives a deck of activity cards through drag and button gestures.
// isAnimating is the only exclusion between commits: a gesture that arrives while
// a card is leaving is dropped.
type Controller struct {
	mu sync.Mutex

	swiperID string
	cards    []models.Activity
	recorder Recorder

	threshold float64
	animation time.Duration
	resolve   Resolver
	scheduler Scheduler
	notify    func(error)
	onAdvance func(State)
	logger    *zap.Logger

	index       int
	start       Point
	offset      Point
	isDragging  bool
	isAnimating bool
	transform   Transform
	// generation is bumped by Restart so a pending advance from before it is dropped
	generation uint64
}

// NewController creates a controller over cards for one swiper
func NewController(swiperID string, cards []models.Activity, recorder Recorder, opts ...Option) *Controller {
	c := &Controller{
		swiperID:  swiperID,
		cards:     cards,
		recorder:  recorder,
		threshold: DefaultThreshold,
		animation: DefaultAnimation,
		resolve:   func(a models.Activity) (string, error) { return a.ID, nil },
		scheduler: timeScheduler{},
		notify:    func(error) {},
		onAdvance: func(State) {},
		logger:    zap.NewNop(),
		transform: Identity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Down starts a drag at p
func (c *Controller) Down(p Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isAnimating {
		return
	}
	c.isDragging = true
	c.start = p
}

// Move updates the drag offset
func (c *Controller) Move(p Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isDragging || c.isAnimating {
		return
	}
	c.offset = p.Sub(c.start)
	c.transform = DragTransform(c.offset)
}

// Up ends the drag, committing when the horizontal offset passes the threshold
// and springing back otherwise. A release while a card is leaving only ends the
// drag. It reports whether a decision was committed.
func (c *Controller) Up(ctx context.Context) bool {
	c.mu.Lock()
	if !c.isDragging || c.isAnimating {
		c.isDragging = false
		c.mu.Unlock()
		return false
	}
	c.isDragging = false

	dx := c.offset.X
	if math.Abs(dx) <= c.threshold {
		c.offset = Point{}
		c.transform = Identity
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()

	action := models.SwipePass
	if dx > 0 {
		action = models.SwipeLike
	}
	return c.Commit(ctx, action)
}

// Like commits a like on the current card
func (c *Controller) Like(ctx context.Context) bool {
	return c.Commit(ctx, models.SwipeLike)
}

// Pass commits a pass on the current card
func (c *Controller) Pass(ctx context.Context) bool {
	return c.Commit(ctx, models.SwipePass)
}

// Commit records action against the current card, plays the exit animation and
// advances once it finishes. It is a no-op while animating or when the deck is
// exhausted. A failed write is reported to the notifier and the deck advances anyway.
func (c *Controller) Commit(ctx context.Context, action models.SwipeAction) bool {
	c.mu.Lock()
	if c.isAnimating || c.index >= len(c.cards) {
		c.mu.Unlock()
		return false
	}
	c.isAnimating = true
	card := c.cards[c.index]
	generation := c.generation
	c.mu.Unlock()

	metrics.SwipeCommitted(string(action))
	if err := c.persist(ctx, card, action); err != nil {
		metrics.SwipePersistFailed()
		c.logger.Warn("failed to save swipe",
			zap.String("swiper_id", c.swiperID),
			zap.String("activity", card.Title),
			zap.Error(err))
		c.notify(err)
	}

	direction := -1
	if action == models.SwipeLike {
		direction = 1
	}

	c.mu.Lock()
	if generation == c.generation {
		c.transform = ExitTransform(direction)
	}
	c.mu.Unlock()

	c.scheduler.AfterFunc(c.animation, func() { c.advance(generation) })
	return true
}

func (c *Controller) persist(ctx context.Context, card models.Activity, action models.SwipeAction) error {
	activityID, err := c.resolve(card)
	if err != nil {
		return err
	}
	return c.recorder.Insert(ctx, &models.SwipeDecision{
		SwiperID:   c.swiperID,
		ActivityID: activityID,
		Action:     action,
	})
}

func (c *Controller) advance(generation uint64) {
	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		return
	}
	c.index++
	c.offset = Point{}
	c.transform = Identity
	c.isAnimating = false
	state := c.stateLocked()
	c.mu.Unlock()

	c.onAdvance(state)
}

// Restart returns to the first card and clears drag and animation state
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.index = 0
	c.start = Point{}
	c.offset = Point{}
	c.isDragging = false
	c.isAnimating = false
	c.transform = Identity
}

// Current the card on top of the deck
func (c *Controller) Current() (models.Activity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index >= len(c.cards) {
		return models.Activity{}, ErrNoCard
	}
	return c.cards[c.index], nil
}

// State snapshot
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{
		Index:     c.index,
		Total:     len(c.cards),
		Offset:    c.offset,
		Dragging:  c.isDragging,
		Animating: c.isAnimating,
		Done:      c.index >= len(c.cards),
		Transform: c.transform,
	}
}
