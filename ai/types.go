package ai

import (
	"github.com/nelhage/yotician/yote"
	"golang.org/x/net/context"
)

type YotePlayer interface {
	GetMove(ctx context.Context, p *yote.Position) (yote.Move, error)
}
