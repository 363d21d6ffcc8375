package render

import (
	"fmt"
	"strings"

	"github.com/luki/gputemp/internal/sensor"
)

// ShortLine renders the one-line digest: compact per-device labels with
// their current temperatures, joined by pipes.
func ShortLine(snap sensor.Snapshot) string {
	if len(snap.Readings) == 0 {
		return "GPU: N/A"
	}

	parts := make([]string, 0, len(snap.Readings))
	for i, r := range snap.Readings {
		parts = append(parts, fmt.Sprintf("%s: %.1f°C", shortLabel(r.Label, i), r.Current))
	}
	return strings.Join(parts, " | ")
}

// shortLabel compresses a device label for the digest. Vendor branding in
// the label wins over the positional form.
func shortLabel(label string, index int) string {
	short := fmt.Sprintf("G%d", index+1)
	if strings.HasPrefix(label, "GPU ") {
		short = "G" + strings.TrimPrefix(label, "GPU ")
	}

	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "nvidia"):
		short = fmt.Sprintf("NV%d", index+1)
	case strings.Contains(lower, "amd"), strings.Contains(lower, "radeon"):
		short = fmt.Sprintf("AMD%d", index+1)
	}
	return short
}
