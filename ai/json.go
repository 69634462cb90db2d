package ai

import (
	"encoding/json"
	"fmt"
)

var _ interface {
	json.Marshaler
	json.Unmarshaler
} = &Weights{}

var featureNames map[string]Feature

func init() {
	featureNames = make(map[string]Feature)
	for i := Feature(0); i < MaxFeature; i++ {
		featureNames[i.String()] = i
	}
}

// Map returns the non-zero weights keyed by feature name.
func (ws *Weights) Map() map[string]float64 {
	h := make(map[string]float64)
	for i, v := range ws {
		if v != 0 {
			h[Feature(i).String()] = v
		}
	}
	return h
}

// SetMap overwrites the named weights, leaving the others untouched.
func (ws *Weights) SetMap(h map[string]float64) error {
	for k, v := range h {
		f, ok := featureNames[k]
		if !ok {
			return fmt.Errorf("unknown feature: %q", k)
		}
		ws[f] = v
	}
	return nil
}

func (ws *Weights) MarshalJSON() ([]byte, error) {
	return json.Marshal(ws.Map())
}

func (ws *Weights) UnmarshalJSON(bs []byte) error {
	h := make(map[string]float64)
	if e := json.Unmarshal(bs, &h); e != nil {
		return e
	}
	return ws.SetMap(h)
}
