package record

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/razv0n/soakbot/internal/dispatcher"
	"github.com/razv0n/soakbot/internal/engine"
	"github.com/razv0n/soakbot/internal/model"
	"github.com/razv0n/soakbot/internal/queue"
)

// defaultRecentSize bounds the in-memory ring of recent turns.
const defaultRecentSize = 32

// Options configures a Recorder.
type Options struct {
	// RecentSize bounds the in-memory ring. Zero means the default.
	RecentSize int
	// DB enables the database sink when non-nil.
	DB *gorm.DB
}

// Recorder collects turn records. Writes to the database are queued and
// flushed in batches so recording never blocks a turn.
type Recorder struct {
	sessionID string
	log       *slog.Logger
	db        *gorm.DB
	pending   *queue.Queue[TurnRecord]

	mu         sync.Mutex
	recent     []TurnRecord
	recentSize int
}

// NewRecorder creates a recorder with a fresh session id.
func NewRecorder(log *slog.Logger, opts Options) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	size := opts.RecentSize
	if size <= 0 {
		size = defaultRecentSize
	}
	return &Recorder{
		sessionID:  uuid.NewString(),
		log:        log,
		db:         opts.DB,
		pending:    queue.New[TurnRecord](),
		recentSize: size,
	}
}

// SessionID returns the id stamped on every record of this process.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Subscribe registers the recorder on the event bus. Turn events are
// buffered so slow sinks never stall the pipeline.
func (r *Recorder) Subscribe(d *dispatcher.Dispatcher) {
	d.Register("turn.completed", func(e dispatcher.Event) (any, error) {
		ev, ok := e.Payload.(engine.TurnEvent)
		if !ok {
			return nil, fmt.Errorf("unexpected payload type %T", e.Payload)
		}
		r.Record(ev.State, ev.Result)
		return nil, nil
	}, dispatcher.Buffered(64), dispatcher.Logged())
}

// Record converts a finished turn into a TurnRecord, stores it, and returns
// it for further sinks.
func (r *Recorder) Record(s *model.GameState, res engine.Result) TurnRecord {
	rec := r.build(s, res)

	r.mu.Lock()
	r.recent = append(r.recent, rec)
	if len(r.recent) > r.recentSize {
		r.recent = r.recent[len(r.recent)-r.recentSize:]
	}
	r.mu.Unlock()

	if r.db != nil {
		r.pending.Push(rec)
	}

	r.log.Debug("turn recorded",
		"turn", rec.Turn,
		"mode", rec.Mode,
		"advantage", rec.Advantage,
		"pending", r.pending.Len())

	return rec
}

// Recent returns a copy of the in-memory ring, oldest first.
func (r *Recorder) Recent() []TurnRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TurnRecord, len(r.recent))
	copy(out, r.recent)
	return out
}

// Pending returns the number of records waiting for a database flush.
func (r *Recorder) Pending() int {
	return r.pending.Len()
}

// Flush drains queued records into the database in one batch.
func (r *Recorder) Flush() error {
	if r.db == nil {
		r.pending.Clear()
		return nil
	}

	var batch []TurnRecord
	for !r.pending.Empty() {
		batch = append(batch, r.pending.Pop())
	}
	if len(batch) == 0 {
		return nil
	}

	start := time.Now()
	if err := r.db.CreateInBatches(batch, 100).Error; err != nil {
		return fmt.Errorf("flushing %d turn records: %w", len(batch), err)
	}
	r.log.Debug("turn records flushed", "count", len(batch), "duration", time.Since(start))
	return nil
}

// WriteSession inserts the session row. Call once after database setup.
func (r *Recorder) WriteSession(playerID int) error {
	if r.db == nil {
		return nil
	}
	rec := SessionRecord{
		SessionID: r.sessionID,
		PlayerID:  playerID,
		StartedAt: time.Now().UTC(),
	}
	if err := r.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("writing session record: %w", err)
	}
	return nil
}

// build snapshots the state and result into a TurnRecord.
func (r *Recorder) build(s *model.GameState, res engine.Result) TurnRecord {
	myAlive, enemyAlive, myHealth, enemyHealth := s.TeamTotals()

	entries := make([]DecisionEntry, 0, len(res.Decisions))
	for _, d := range res.Decisions {
		entries = append(entries, DecisionEntry{
			AgentID:   d.AgentID,
			Action:    d.Action.Kind.String(),
			Value:     d.ExpectedValue,
			Damage:    d.ExpectedDamage,
			Kill:      d.KillProbability,
			Rationale: d.Rationale,
		})
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		r.log.Error("marshaling decision entries", "error", err)
		payload = []byte("[]")
	}

	return TurnRecord{
		SessionID:      r.sessionID,
		Turn:           s.Turn,
		Mode:           res.Mode,
		PriorityTarget: res.PriorityTargetID,
		Advantage:      res.Advantage,
		Iterations:     res.SearchStats.Iterations,
		ElapsedMicros:  res.Elapsed.Microseconds(),
		MyAlive:        myAlive,
		EnemyAlive:     enemyAlive,
		MyHealth:       myHealth,
		EnemyHealth:    enemyHealth,
		MySpread:       TeamSpread(teamPositions(s.Mine())),
		EnemySpread:    TeamSpread(teamPositions(s.Enemies())),
		Decisions:      payload,
	}
}

func teamPositions(agents []model.AgentState) []model.Position {
	out := make([]model.Position, 0, len(agents))
	for _, a := range agents {
		out = append(out, a.Pos)
	}
	return out
}
