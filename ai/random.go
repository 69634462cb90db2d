package ai

import (
	"math/rand"

	"github.com/nelhage/yotician/yote"
	"golang.org/x/net/context"
)

type RandomAI struct {
	r *rand.Rand
}

func (r *RandomAI) GetMove(ctx context.Context, p *yote.Position) (yote.Move, error) {
	moves := p.AllMoves(nil)
	if len(moves) == 0 {
		return yote.Move{}, ErrNoMoves
	}
	return moves[r.r.Intn(len(moves))], nil
}

func NewRandom(seed int64) YotePlayer {
	return &RandomAI{
		r: rand.New(rand.NewSource(seed)),
	}
}
