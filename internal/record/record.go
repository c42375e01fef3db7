// Package record persists per-turn telemetry: what mode ran, what was
// decided, and how the match stood when the decisions were made. Records
// flow through an in-memory ring for quick inspection and an optional
// database sink for post-match analysis.
package record

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DatabaseModels lists every struct migrated into the database schema.
var DatabaseModels = []interface{}{
	&SessionRecord{},
	&TurnRecord{},
}

// SessionRecord is one bot process lifetime.
type SessionRecord struct {
	gorm.Model
	SessionID string    `json:"sessionId" gorm:"size:36;index:idx_session_id"`
	PlayerID  int       `json:"playerId"`
	StartedAt time.Time `json:"startedAt"`
}

// TurnRecord is one orchestrated turn.
type TurnRecord struct {
	gorm.Model
	SessionID      string  `json:"sessionId" gorm:"size:36;index:idx_turn_session_id"`
	Turn           int     `json:"turn"`
	Mode           string  `json:"mode" gorm:"size:16"`
	PriorityTarget int     `json:"priorityTarget"`
	Advantage      float64 `json:"advantage"`
	Iterations     int     `json:"iterations"`
	ElapsedMicros  int64   `json:"elapsedMicros"`

	MyAlive     int `json:"myAlive"`
	EnemyAlive  int `json:"enemyAlive"`
	MyHealth    int `json:"myHealth"`
	EnemyHealth int `json:"enemyHealth"`

	// Convex hull areas of each side's positions, a proxy for formation
	// tightness.
	MySpread    float64 `json:"mySpread"`
	EnemySpread float64 `json:"enemySpread"`

	Decisions datatypes.JSON `json:"decisions"`
}

// DecisionEntry is the JSON shape of one finalized decision inside a
// TurnRecord.
type DecisionEntry struct {
	AgentID   int     `json:"agentId"`
	Action    string  `json:"action"`
	Value     float64 `json:"value"`
	Damage    int     `json:"damage"`
	Kill      float64 `json:"kill"`
	Rationale string  `json:"rationale,omitempty"`
}
