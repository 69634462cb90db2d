// Package history records the positions of a game so front ends can
// undo moves and review a game after the fact.
package history

import (
	"errors"

	"github.com/nelhage/yotician/yote"
)

var ErrEmptyHistory = errors.New("history is empty")

// Snapshot is a frozen copy of a position together with its score for
// the side to move at the time it was taken.
type Snapshot struct {
	pos   yote.Position
	score float64
}

func NewSnapshot(p *yote.Position, score float64) Snapshot {
	return Snapshot{pos: *p, score: score}
}

// Position returns a fresh copy of the recorded position; mutating it
// does not affect the snapshot.
func (s Snapshot) Position() *yote.Position {
	p := s.pos
	return &p
}

func (s Snapshot) Score() float64 {
	return s.score
}

// Stack is a LIFO of snapshots. The zero value is an empty stack.
type Stack struct {
	snaps []Snapshot
}

func (s *Stack) Push(snap Snapshot) {
	s.snaps = append(s.snaps, snap)
}

func (s *Stack) Peek() (Snapshot, error) {
	if len(s.snaps) == 0 {
		return Snapshot{}, ErrEmptyHistory
	}
	return s.snaps[len(s.snaps)-1], nil
}

func (s *Stack) Pop() (Snapshot, error) {
	if len(s.snaps) == 0 {
		return Snapshot{}, ErrEmptyHistory
	}
	top := s.snaps[len(s.snaps)-1]
	s.snaps[len(s.snaps)-1] = Snapshot{}
	s.snaps = s.snaps[:len(s.snaps)-1]
	return top, nil
}

func (s *Stack) Len() int {
	return len(s.snaps)
}

// Snapshots returns the recorded snapshots, oldest first.
func (s *Stack) Snapshots() []Snapshot {
	out := make([]Snapshot, len(s.snaps))
	copy(out, s.snaps)
	return out
}

func (s *Stack) Reset() {
	s.snaps = nil
}
