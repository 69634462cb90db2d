package yotetest

import (
	"strings"

	"github.com/nelhage/yotician/ynn"
	"github.com/nelhage/yotician/yote"
)

func Move(s string) yote.Move {
	m, e := ynn.ParseMove(s)
	if e != nil {
		panic(e)
	}
	return m
}

func Moves(s string) []yote.Move {
	if s == "" {
		return nil
	}
	var ms []yote.Move
	for _, b := range strings.Fields(s) {
		ms = append(ms, Move(b))
	}
	return ms
}

// Position plays the space-separated moves `ms` from the initial
// position.
func Position(ms string) *yote.Position {
	p := yote.New()
	for _, m := range Moves(ms) {
		if e := p.Apply(m); e != nil {
			panic(e)
		}
	}
	return p
}

func YPS(s string) *yote.Position {
	p, e := ynn.ParseYPS(s)
	if e != nil {
		panic(e)
	}
	return p
}
