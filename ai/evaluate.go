package ai

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nelhage/yotician/yote"
)

// Feature is one input to the evaluation function.
type Feature int

const (
	Captures Feature = iota
	CaptureMoves
	QuietMoves
	Placed
	InHand

	MaxFeature
)

func (f Feature) String() string {
	switch f {
	case Captures:
		return "captures"
	case CaptureMoves:
		return "capture_moves"
	case QuietMoves:
		return "quiet_moves"
	case Placed:
		return "placed"
	case InHand:
		return "in_hand"
	}
	return fmt.Sprintf("Feature(%d)", int(f))
}

type Weights [MaxFeature]float64

var DefaultWeights = Weights{
	Captures:     0.40,
	CaptureMoves: 0.25,
	QuietMoves:   0.15,
	Placed:       0.12,
	InHand:       0.08,
}

// EvaluationFunc scores a position for its side to move.
type EvaluationFunc func(p *yote.Position) float64

func MakeEvaluator(w *Weights) EvaluationFunc {
	return func(p *yote.Position) float64 {
		return Evaluate(w, p)
	}
}

var DefaultEvaluate = MakeEvaluator(&DefaultWeights)

// Features computes the raw feature values for the side to move.
func Features(p *yote.Position) [MaxFeature]float64 {
	var fs [MaxFeature]float64
	me := p.ToMove()
	fs[Captures] = float64(p.Captured(me))
	for _, m := range p.AllMoves(nil) {
		if m.IsCapture() {
			fs[CaptureMoves]++
		} else {
			fs[QuietMoves]++
		}
	}
	fs[Placed] = float64(yote.Stones - p.Hand(me))
	fs[InHand] = float64(p.Hand(me))
	return fs
}

// Evaluate is a weighted sum of Features. It does not special-case
// finished games; the search handles those.
func Evaluate(w *Weights, p *yote.Position) float64 {
	fs := Features(p)
	var sc float64
	for i, f := range fs {
		sc += w[i] * f
	}
	return sc
}

func ExplainScore(w *Weights, out io.Writer, p *yote.Position) {
	tw := tabwriter.NewWriter(out, 4, 8, 1, '\t', 0)
	fmt.Fprintf(tw, "[%s to move]\n", p.ToMove())
	fmt.Fprintf(tw, "feature\tvalue\tweight\tscore\n")
	fs := Features(p)
	var total float64
	for i, f := range fs {
		total += w[i] * f
		fmt.Fprintf(tw, "%s\t%g\t%.2f\t%.2f\n", Feature(i), f, w[i], w[i]*f)
	}
	fmt.Fprintf(tw, "total\t\t\t%.2f\n", total)
	tw.Flush()
}
