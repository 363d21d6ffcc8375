package sensor

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one row of the OS sensor table. Absent attributes are common
// (plenty of chips expose no label or thresholds), so presence is tracked
// explicitly rather than with zero values.
type Entry struct {
	Label      string
	Current    float64
	High       float64
	Crit       float64
	HasCurrent bool
	HasHigh    bool
	HasCrit    bool
}

// Table is the OS sensor table: chip/group key to the sensors under it.
type Table map[string][]Entry

// Keys returns every group key in the table, sorted.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Group keys that are GPU chips outright.
var gpuGroupKeys = map[string]bool{
	"amdgpu":  true,
	"nouveau": true,
	"gpu":     true,
	"radeon":  true,
}

// isGPUEntry decides whether a table entry belongs to a GPU. An entry with
// no current value never qualifies, whatever its key or label say.
func isGPUEntry(key string, e Entry) bool {
	if !e.HasCurrent {
		return false
	}
	if gpuGroupKeys[key] {
		return true
	}
	lowerKey := strings.ToLower(key)
	if strings.Contains(lowerKey, "gpu") || strings.Contains(lowerKey, "video") {
		return true
	}
	if strings.Contains(lowerKey, "temp") && strings.Contains(strings.ToLower(e.Label), "gpu") {
		return true
	}
	return false
}

// CollectGPU filters the table down to GPU-related readings. It also
// returns every group key seen, sorted, as a diagnostic aid for when the
// filter comes up empty. Finding nothing is not an error.
func CollectGPU(t Table) ([]Reading, []string) {
	keys := t.Keys()

	var readings []Reading
	ordinal := 0
	for _, key := range keys {
		for _, e := range t[key] {
			if !isGPUEntry(key, e) {
				continue
			}
			ordinal++

			label := strings.TrimSpace(e.Label)
			if label == "" {
				label = fmt.Sprintf("GPU %d", ordinal)
			}

			r := Reading{
				Label:    label,
				Current:  e.Current,
				High:     DefaultHigh,
				Critical: DefaultCritical,
				Source:   fmt.Sprintf("genericFallback (%s)", key),
			}
			if e.HasHigh {
				r.High = e.High
			}
			if e.HasCrit {
				r.Critical = e.Crit
			}
			readings = append(readings, r)
		}
	}

	return readings, keys
}
