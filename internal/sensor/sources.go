package sensor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/sensors"
)

// TableSource reads the OS sensor table.
type TableSource interface {
	Read() (Table, error)
}

// SystemTable is the default table source. On Linux it reads the hwmon
// sysfs tree directly, which preserves chip grouping and per-sensor labels;
// when that tree is absent it falls back to gopsutil, which knows the
// equivalent interfaces on other platforms.
type SystemTable struct {
	// HwmonRoot overrides the hwmon scan root. Empty means /sys/class/hwmon.
	HwmonRoot string
}

func (s SystemTable) Read() (Table, error) {
	root := s.HwmonRoot
	if root == "" {
		root = "/sys/class/hwmon"
	}
	if table, err := readHwmon(root); err == nil {
		return table, nil
	}
	return readGopsutil()
}

// readHwmon scans hwmon chip directories under root. The chip's name file
// is the group key; each tempN_input yields an entry, with label and
// thresholds filled in from the sibling attribute files when readable.
// Values are kernel millidegrees.
func readHwmon(root string) (Table, error) {
	dirs, _ := filepath.Glob(filepath.Join(root, "hwmon*"))
	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w: no hwmon tree at %s", ErrTableUnavailable, root)
	}

	table := make(Table)
	for _, dir := range dirs {
		nameBytes, err := os.ReadFile(filepath.Join(dir, "name"))
		if err != nil {
			continue
		}
		key := strings.TrimSpace(string(nameBytes))
		if key == "" {
			continue
		}

		inputs, _ := filepath.Glob(filepath.Join(dir, "temp*_input"))
		sortByTempIndex(inputs)

		for _, input := range inputs {
			current, ok := readMilli(input)
			if !ok {
				continue
			}
			entry := Entry{Current: current, HasCurrent: true}

			prefix := strings.TrimSuffix(input, "_input")
			if b, err := os.ReadFile(prefix + "_label"); err == nil {
				entry.Label = strings.TrimSpace(string(b))
			}
			if v, ok := readMilli(prefix + "_max"); ok {
				entry.High = v
				entry.HasHigh = true
			}
			if v, ok := readMilli(prefix + "_crit"); ok {
				entry.Crit = v
				entry.HasCrit = true
			}

			table[key] = append(table[key], entry)
		}
	}

	return table, nil
}

// sortByTempIndex orders hwmon attribute paths by numeric sensor index, so
// temp10_input sorts after temp2_input.
func sortByTempIndex(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return tempIndex(paths[i]) < tempIndex(paths[j])
	})
}

func tempIndex(path string) int {
	base := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), "temp"), "_input")
	n, err := strconv.Atoi(base)
	if err != nil {
		return 0
	}
	return n
}

func readMilli(path string) (float64, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, false
	}
	return v / 1000.0, true
}

func readGopsutil() (Table, error) {
	stats, err := sensors.TemperaturesWithContext(context.Background())
	if len(stats) == 0 && err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableUnavailable, err)
	}
	return tableFromStats(stats), nil
}

// tableFromStats regroups gopsutil's flat stat list by sensor key. gopsutil
// folds the sensor label into the key, so entries carry none. Partial read
// warnings are tolerated as long as any stats came back.
func tableFromStats(stats []sensors.TemperatureStat) Table {
	table := make(Table)
	for _, stat := range stats {
		entry := Entry{Current: stat.Temperature, HasCurrent: true}
		if stat.High > 0 {
			entry.High = stat.High
			entry.HasHigh = true
		}
		if stat.Critical > 0 {
			entry.Crit = stat.Critical
			entry.HasCrit = true
		}
		table[stat.SensorKey] = append(table[stat.SensorKey], entry)
	}
	return table
}
