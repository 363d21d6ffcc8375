package sensor

import (
	"errors"
	"fmt"
	"time"
)

// VendorSource collects per-device readings from a GPU vendor API.
type VendorSource interface {
	Collect() ([]Reading, error)
}

// Collector runs one poll across the configured sources and resolves the
// outcomes into a snapshot. Vendor data always wins; the generic table is
// only consulted when the vendor path produced nothing, and the two result
// sets are never merged.
type Collector struct {
	Vendor VendorSource // nil when no vendor library is present
	Tables TableSource
}

// NewCollector wires the default sources: the NVML vendor adapter when the
// library is present on this host, and the system sensor table.
func NewCollector() *Collector {
	c := &Collector{Tables: SystemTable{}}
	if src := DetectNVML(); src != nil {
		c.Vendor = src
	}
	return c
}

// vendorOutcome and genericOutcome capture what each stage did, so that
// snapshot resolution can be a pure function over them.
type vendorOutcome struct {
	readings []Reading
	err      error
	ran      bool
}

type genericOutcome struct {
	readings []Reading
	keys     []string
	err      error
	ran      bool
}

// Poll captures one snapshot. It never returns an error and never panics;
// every failure mode is encoded in the snapshot itself.
func (c *Collector) Poll() (snap Snapshot) {
	now := time.Now()
	defer func() {
		if r := recover(); r != nil {
			snap = Snapshot{
				Timestamp:  now,
				Readings:   []Reading{},
				Method:     MethodError,
				Diagnostic: fmt.Sprintf("sensor collection failed: %v", r),
			}
		}
	}()

	var vendor vendorOutcome
	if c.Vendor != nil {
		vendor.ran = true
		vendor.readings, vendor.err = c.Vendor.Collect()
	}

	var generic genericOutcome
	if !vendor.ran || vendor.err != nil || len(vendor.readings) == 0 {
		generic.ran = true
		table, err := c.Tables.Read()
		if err != nil {
			generic.err = err
		} else {
			generic.readings, generic.keys = CollectGPU(table)
		}
	}

	return resolve(now, vendor, generic)
}

// resolve turns the stage outcomes into the final snapshot. The method
// field moves through the transitional vendor-fallback states so the
// generic stage can tell a clean miss from a vendor failure, but a
// returned snapshot only ever carries none, vendorApi, genericFallback,
// or error.
func resolve(at time.Time, vendor vendorOutcome, generic genericOutcome) Snapshot {
	snap := Snapshot{
		Timestamp: at,
		Readings:  []Reading{},
		Method:    MethodNone,
	}

	if vendor.ran {
		switch {
		case vendor.err == nil && len(vendor.readings) > 0:
			snap.Readings = vendor.readings
			snap.Method = MethodVendorAPI
			return snap

		case vendor.err != nil:
			var lib *LibraryError
			if errors.As(vendor.err, &lib) {
				snap.Method = MethodVendorFailed
				snap.Diagnostic = fmt.Sprintf("nvml error: %v; falling back to generic sensors", vendor.err)
				if lib.NotFound() {
					snap.Diagnostic += " (NVIDIA driver not loaded or no NVIDIA GPUs found)"
				}
			} else {
				snap.Method = MethodVendorPanic
				snap.Diagnostic = fmt.Sprintf("unexpected nvml failure: %v; falling back to generic sensors", vendor.err)
			}
		}
		// err == nil with zero devices: no diagnostic, try the generic table.
	}

	if !generic.ran {
		return snap
	}

	if generic.err != nil {
		snap.Method = MethodError
		snap.Diagnostic = fmt.Sprintf("sensor collection failed: %v", generic.err)
		return snap
	}

	if len(generic.readings) > 0 {
		snap.Readings = generic.readings
		snap.Method = MethodGenericFallback
		return snap
	}

	snap.Method = MethodNone
	if snap.Diagnostic != "" {
		snap.Diagnostic += "; no GPU temperature data found via generic sensors either"
	} else {
		snap.Diagnostic = "no GPU temperature data found via generic sensors"
	}
	snap.SensorKeys = generic.keys
	return snap
}
