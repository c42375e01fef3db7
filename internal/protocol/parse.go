// Package protocol parses the match init and per-turn state feeds and formats
// finalized decisions into action lines.
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/razv0n/soakbot/internal/model"
)

// Sentinel errors for the input taxonomy.
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrUnknownAgent   = errors.New("unknown agent")
)

// Reader scans whitespace-separated tokens from the state feed.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader wraps an input stream in a token reader.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	s.Split(bufio.ScanWords)
	return &Reader{scanner: s}
}

// Int reads the next integer token. A failed underlying stream surfaces its
// own error, distinct from ErrMalformedInput, so callers can tell a broken
// feed from a corrupt token.
func (r *Reader) Int() (int, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, fmt.Errorf("reading input stream: %w", err)
		}
		return 0, io.EOF
	}
	v, err := strconv.Atoi(r.scanner.Text())
	if err != nil {
		return 0, fmt.Errorf("%w: token %q is not an integer", ErrMalformedInput, r.scanner.Text())
	}
	return v, nil
}

// ParseInit reads the match configuration: owning side, agent profiles, and
// the full terrain grid. The returned state has no per-turn agent data yet.
func ParseInit(r *Reader) (*model.GameState, error) {
	myID, err := r.Int()
	if err != nil {
		return nil, fmt.Errorf("reading my id: %w", err)
	}

	agentCount, err := r.Int()
	if err != nil {
		return nil, fmt.Errorf("reading agent count: %w", err)
	}
	if agentCount < 0 || agentCount > 64 {
		return nil, fmt.Errorf("%w: agent count %d", ErrMalformedInput, agentCount)
	}

	profiles := make(map[int]model.AgentProfile, agentCount)
	for i := 0; i < agentCount; i++ {
		var p model.AgentProfile
		fields := []*int{&p.ID, &p.Owner, &p.ShootCooldown, &p.OptimalRange, &p.SoakingPower, &p.SplashBombs}
		for _, f := range fields {
			if *f, err = r.Int(); err != nil {
				return nil, fmt.Errorf("reading agent profile %d: %w", i, err)
			}
		}
		p.Class = model.ClassifyAgent(p.OptimalRange, p.SoakingPower, p.SplashBombs)
		profiles[p.ID] = p
	}

	width, err := r.Int()
	if err != nil {
		return nil, fmt.Errorf("reading board width: %w", err)
	}
	height, err := r.Int()
	if err != nil {
		return nil, fmt.Errorf("reading board height: %w", err)
	}
	if width <= 0 || height <= 0 || width > 100 || height > 100 {
		return nil, fmt.Errorf("%w: board %dx%d", ErrMalformedInput, width, height)
	}

	board := model.NewBoard(width, height)
	for i := 0; i < width*height; i++ {
		x, err := r.Int()
		if err != nil {
			return nil, fmt.Errorf("reading tile %d: %w", i, err)
		}
		y, err := r.Int()
		if err != nil {
			return nil, fmt.Errorf("reading tile %d: %w", i, err)
		}
		tileType, err := r.Int()
		if err != nil {
			return nil, fmt.Errorf("reading tile %d: %w", i, err)
		}
		if !board.InBounds(x, y) {
			return nil, fmt.Errorf("%w: tile (%d,%d) out of bounds", ErrMalformedInput, x, y)
		}
		board.Tiles[y][x] = tileType
	}

	return &model.GameState{
		Board:    board,
		MyID:     myID,
		Profiles: profiles,
	}, nil
}

// TurnInput is one turn's parsed state plus the number of expected output
// action lines.
type TurnInput struct {
	Agents        []model.AgentState
	RequiredLines int
}

// ParseTurn reads one turn's agent states. Ids absent from the profile table
// yield ErrUnknownAgent.
func ParseTurn(r *Reader, profiles map[int]model.AgentProfile) (TurnInput, error) {
	var in TurnInput

	count, err := r.Int()
	if err != nil {
		return in, fmt.Errorf("reading turn agent count: %w", err)
	}
	if count < 0 || count > 64 {
		return in, fmt.Errorf("%w: turn agent count %d", ErrMalformedInput, count)
	}

	for i := 0; i < count; i++ {
		var a model.AgentState
		fields := []*int{&a.ID, &a.Pos.X, &a.Pos.Y, &a.Cooldown, &a.Bombs, &a.Wetness}
		for _, f := range fields {
			if *f, err = r.Int(); err != nil {
				return in, fmt.Errorf("reading turn agent %d: %w", i, err)
			}
		}
		if _, ok := profiles[a.ID]; !ok {
			return in, fmt.Errorf("%w: id %d", ErrUnknownAgent, a.ID)
		}
		a.Alive = a.Wetness < 100
		in.Agents = append(in.Agents, a)
	}

	in.RequiredLines, err = r.Int()
	if err != nil {
		return in, fmt.Errorf("reading required line count: %w", err)
	}
	return in, nil
}
