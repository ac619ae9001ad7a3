package systems

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/envtester/chaos-invaders/components"
	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/network"
	"github.com/envtester/chaos-invaders/shared/gamemath"
	"github.com/envtester/chaos-invaders/shared/leveldata"
	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/envtester/chaos-invaders/systems/factory"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// MatchServer is the remote authority a session talks to.
type MatchServer interface {
	QueryMatchState(ctx context.Context) (*messages.MatchState, error)
	RequestDestroy(ctx context.Context, id string) error
	NotifyPlayerHit(ctx context.Context) error
	StartMatch(ctx context.Context, req messages.StartRequest) error
}

// HUD is the status line forwarded to the presentation layer.
type HUD struct {
	HP            int
	Score         int
	MaxScore      int
	MaxScoreKnown bool
}

// Hooks are presentation callbacks. All of them run on the goroutine that
// calls Step, Pump or Tick. Nil hooks are skipped.
type Hooks struct {
	OnHUD         func(HUD)
	OnFinalizing  func()
	OnVictory     func(summary []messages.RecoveryData)
	OnDefeat      func()
	OnPlayerHit   func()
	OnDestroyed   func(name string, err error) // Reply to a destroy request
	OnNoTargets   func()                       // Running poll listed no targets
	OnStarted     func(req messages.StartRequest)
	OnStartFailed func(err error)
}

// Tuning holds the per-match numbers, resolved once from config and the arena.
type Tuning struct {
	PlayField   gamemath.Rect // Player clamp and projectile bounds
	SpawnBand   gamemath.Rect
	Padding     float64
	MaxAttempts int

	PlayerSpawnX, PlayerSpawnY float64
	PlayerSpeed                float64
	PlayerRotation             float64

	EnemyWidth, EnemyHeight float64

	ShotSpeed, ShotRadius       float64
	HostileSpeed, HostileRadius float64
	HostileFireChance           float64

	PollInterval  time.Duration
	ResultBuffer  int
	OutcomeBuffer int
}

// DefaultTuning builds a Tuning from the global config and an arena layout.
// A nil layout falls back to the whole window.
func DefaultTuning(layout *leveldata.ArenaLayout) Tuning {
	t := Tuning{
		PlayField:         gamemath.Rect{W: float64(cfg.C.Width), H: float64(cfg.C.Height)},
		SpawnBand:         gamemath.Rect{W: float64(cfg.C.Width), H: float64(cfg.C.Height) / 2},
		Padding:           cfg.Placement.Padding,
		MaxAttempts:       cfg.Placement.MaxAttempts,
		PlayerSpawnX:      float64(cfg.C.Width) / 2,
		PlayerSpawnY:      float64(cfg.C.Height) * 0.875,
		PlayerSpeed:       cfg.Player.Speed,
		PlayerRotation:    cfg.Player.Rotation,
		EnemyWidth:        cfg.Enemy.Width,
		EnemyHeight:       cfg.Enemy.Height,
		ShotSpeed:         cfg.Projectile.Speed,
		ShotRadius:        cfg.Projectile.Radius,
		HostileSpeed:      cfg.Projectile.HostileSpeed,
		HostileRadius:     cfg.Projectile.HostileRadius,
		HostileFireChance: cfg.Combat.HostileFireChance,
		PollInterval:      cfg.Sync.PollInterval,
		ResultBuffer:      cfg.Sync.ResultBuffer,
		OutcomeBuffer:     cfg.Sync.OutcomeBuffer,
	}
	if layout == nil {
		return t
	}

	t.PlayField = gamemath.Rect(layout.PlayField)
	t.SpawnBand = gamemath.Rect(layout.SpawnBand)
	if layout.SpawnMargin > 0 {
		t.Padding = layout.SpawnMargin
	}
	t.PlayerSpawnX = layout.PlayerSpawn.X
	t.PlayerSpawnY = layout.PlayerSpawn.Y
	return t
}

type pollResult struct {
	gen   uint64
	seq   uint32
	state *messages.MatchState
	err   error
}

type destroyOutcome struct {
	gen    uint64
	entity donburi.Entity
	id     string
	name   string
	err    error
}

type startResult struct {
	req messages.StartRequest
	err error
}

// MatchSession owns everything one match mutates: the world holding the player,
// enemies and both projectile kinds, the registry, and the poll timer.
//
// The world is only touched from the goroutine that calls Start, Stop, Step,
// Pump and Tick. Remote calls run through Exec and report back over channels
// that Pump drains, so completions never write to a collection directly.
type MatchSession struct {
	World    donburi.World
	Registry *Registry
	Polls    *network.PollLog

	// Exec runs remote calls. Defaults to one goroutine per call.
	Exec func(func())
	Rand *rand.Rand
	// AutoPoll starts the poll timer on Start. Tests drive Tick by hand.
	AutoPoll bool

	server MatchServer
	tuning Tuning
	hooks  Hooks

	match  *donburi.Entry
	hud    *donburi.Entry
	input  *donburi.Entry
	player *donburi.Entry
	space  *resolv.Space

	ctx        context.Context
	cancel     context.CancelFunc
	syncCancel context.CancelFunc
	gen        uint64
	lastStart  messages.StartRequest
	noTargets  bool // Last running poll listed no targets

	results  chan pollResult
	outcomes chan destroyOutcome
	starts   chan startResult
}

func NewMatchSession(server MatchServer, tuning Tuning, hooks Hooks) *MatchSession {
	seed := uint64(cfg.Debug.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if tuning.ResultBuffer <= 0 {
		tuning.ResultBuffer = 16
	}
	if tuning.OutcomeBuffer <= 0 {
		tuning.OutcomeBuffer = 64
	}

	s := &MatchSession{
		Polls:    network.NewPollLog(),
		Exec:     func(f func()) { go f() },
		Rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		AutoPoll: true,
		server:   server,
		tuning:   tuning,
		hooks:    hooks,
		results:  make(chan pollResult, tuning.ResultBuffer),
		outcomes: make(chan destroyOutcome, tuning.OutcomeBuffer),
		starts:   make(chan startResult, 1),
	}
	s.reset()
	return s
}

// SetHooks replaces the presentation callbacks, e.g. when a scene changes.
func (s *MatchSession) SetHooks(h Hooks) {
	s.hooks = h
}

func (s *MatchSession) Tuning() Tuning {
	return s.tuning
}

// reset builds a fresh world for the next match.
func (s *MatchSession) reset() {
	s.noTargets = false
	s.World = donburi.NewWorld()
	spaceEntry := factory.CreateSpace(s.World,
		int(s.tuning.PlayField.X+s.tuning.PlayField.W)+1,
		int(s.tuning.PlayField.Y+s.tuning.PlayField.H)+1,
		16, 16)
	s.space = components.Space.Get(spaceEntry)
	s.match = factory.CreateMatch(s.World)
	s.hud = factory.CreateHUD(s.World)
	s.input = factory.CreateInput(s.World)
	s.player = factory.CreatePlayer(s.World, s.tuning.PlayerSpawnX, s.tuning.PlayerSpawnY)

	s.Registry = NewRegistry(s.World, s.space, gamemath.Placement{
		Region:      s.tuning.SpawnBand,
		Padding:     s.tuning.Padding,
		MaxAttempts: s.tuning.MaxAttempts,
	}, s.Rand, s.tuning.EnemyWidth, s.tuning.EnemyHeight)
}

// Start begins a new match. Anything left from a previous match is discarded:
// registry, projectiles, hostile fire suppression and both loops.
func (s *MatchSession) Start() {
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	s.drain()
	s.reset()
	s.Polls.Reset()

	s.ctx, s.cancel = context.WithCancel(context.Background())
	if err := TransitionMatch(s.matchData(), cfg.MatchStateRunning); err != nil {
		log.Printf("[session] %v", err)
		return
	}
	log.Printf("[session] match %d started", s.gen)

	if s.AutoPoll {
		syncCtx, syncCancel := context.WithCancel(s.ctx)
		s.syncCancel = syncCancel
		go s.runSync(syncCtx, s.gen)
	}
}

// Stop cancels both loops and returns to Idle.
func (s *MatchSession) Stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.syncCancel = nil
	s.gen++
	s.drain()

	match := s.matchData()
	if match.State != cfg.MatchStateIdle {
		_ = TransitionMatch(match, cfg.MatchStateIdle)
		log.Printf("[session] match stopped")
	}
	s.Registry.Clear()
	s.clearProjectiles(components.Projectile)
	s.clearProjectiles(components.HostileProjectile)
}

// RequestStart asks the server to start a match without blocking. Pump
// applies the reply: Start on success, OnStartFailed otherwise.
func (s *MatchSession) RequestStart(req messages.StartRequest) error {
	if err := ValidateStartRequest(req); err != nil {
		return err
	}
	s.Exec(func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Network.RequestTimeout)
		defer cancel()
		err := s.server.StartMatch(ctx, req)
		select {
		case s.starts <- startResult{req: req, err: err}:
		default:
			log.Printf("[session] dropped start reply for %s x%d", req.Method, req.Iterations)
		}
	})
	return nil
}

// Pump applies every completion posted since the last call. Results from an
// earlier match are discarded.
func (s *MatchSession) Pump() {
	for {
		select {
		case r := <-s.results:
			s.Polls.End(r.seq, time.Now(), r.err != nil)
			if r.gen != s.gen {
				continue
			}
			s.applyPoll(r.state, r.err)
		case o := <-s.outcomes:
			if o.gen != s.gen {
				continue
			}
			s.applyOutcome(o)
		case st := <-s.starts:
			s.applyStart(st)
		default:
			return
		}
	}
}

func (s *MatchSession) applyStart(st startResult) {
	if st.err != nil {
		log.Printf("[session] start failed: %v", st.err)
		if s.hooks.OnStartFailed != nil {
			s.hooks.OnStartFailed(st.err)
		}
		return
	}
	s.lastStart = st.req
	s.Start()
	SaveLastMatchConfig(&SavedMatchConfig{Method: st.req.Method, Iterations: st.req.Iterations})
	if s.hooks.OnStarted != nil {
		s.hooks.OnStarted(st.req)
	}
}

func (s *MatchSession) drain() {
	for {
		select {
		case <-s.results:
		case <-s.outcomes:
		default:
			return
		}
	}
}

// post hands a completion to the main loop unless the match was cancelled.
func post[T any](ctx context.Context, ch chan<- T, v T) {
	select {
	case ch <- v:
	case <-ctx.Done():
	}
}

// LastStart is the setup of the most recent match the server accepted.
func (s *MatchSession) LastStart() messages.StartRequest {
	return s.lastStart
}

func (s *MatchSession) State() cfg.MatchStateID {
	return s.matchData().State
}

func (s *MatchSession) Active() bool {
	return s.matchData().Active()
}

// MatchData exposes the match singleton for rendering.
func (s *MatchSession) MatchData() *components.MatchData {
	return s.matchData()
}

func (s *MatchSession) HUDData() *components.HUDData {
	return components.HUD.Get(s.hud)
}

func (s *MatchSession) Player() *donburi.Entry {
	return s.player
}

func (s *MatchSession) HUD() HUD {
	m := s.matchData()
	return HUD{HP: m.HP, Score: m.Score, MaxScore: m.MaxScore, MaxScoreKnown: m.MaxScoreKnown}
}

// ResolvePlayerBounds fills in the player's size once its sprite is ready.
// Until then the player neither moves, fires nor gets hit.
func (s *MatchSession) ResolvePlayerBounds(w, h float64) {
	obj := components.Object.Get(s.player)
	player := components.Player.Get(s.player)
	if player.Ready {
		return
	}
	obj.W = w
	obj.H = h
	obj.X = gamemath.ClampFloat(obj.X-w/2, s.tuning.PlayField.X, s.tuning.PlayField.X+s.tuning.PlayField.W-w)
	player.Ready = true
}

func (s *MatchSession) matchData() *components.MatchData {
	return components.Match.Get(s.match)
}
