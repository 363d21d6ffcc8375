package render

import (
	"encoding/json"
	"io"

	"github.com/luki/gputemp/internal/sensor"
)

// WriteJSON pretty-prints the snapshot with two-space indentation. The
// readings slice is normalized first so an empty result encodes as []
// rather than null.
func WriteJSON(w io.Writer, snap sensor.Snapshot) error {
	if snap.Readings == nil {
		snap.Readings = []sensor.Reading{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}
