// Package sensor discovers GPU temperatures from the available sources.
// An NVML-backed vendor adapter is preferred; when the library is missing,
// fails, or reports no devices, a generic scan of the OS temperature sensor
// table (sysfs hwmon on Linux, gopsutil elsewhere) takes over.
package sensor

import "time"

// Threshold defaults applied when a source reports no limits of its own.
const (
	DefaultHigh     = 85.0
	DefaultCritical = 95.0
)

// Reading is a single GPU temperature reading.
type Reading struct {
	Label    string  `json:"label"`    // device or sensor display name
	Current  float64 `json:"current"`  // current temperature in Celsius
	High     float64 `json:"high"`     // warning threshold
	Critical float64 `json:"critical"` // critical threshold
	Source   string  `json:"source"`   // which source produced the reading
}

// Method records which detection path produced a snapshot.
type Method string

const (
	MethodNone            Method = "none"
	MethodVendorAPI       Method = "vendorApi"
	MethodGenericFallback Method = "genericFallback"

	// Transitional states while the vendor path has failed but the generic
	// fallback has not yet resolved. Final snapshots never carry these.
	MethodVendorFailed Method = "vendorFailedFallbackGeneric"
	MethodVendorPanic  Method = "vendorExceptionFallbackGeneric"

	MethodError Method = "error"
)

// Snapshot is one complete poll result. Every poll builds a fresh snapshot;
// nothing mutates one after it is returned.
type Snapshot struct {
	Timestamp  time.Time `json:"timestamp"`
	Readings   []Reading `json:"readings"`
	Method     Method    `json:"detectionMethod"`
	Diagnostic string    `json:"diagnostic,omitempty"`
	SensorKeys []string  `json:"availableSensorKeys,omitempty"`
}
