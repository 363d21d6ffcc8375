package sensor

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// vendorLib is the slice of the NVML surface the adapter touches, split out
// so the collection path can be exercised without the real library.
type vendorLib interface {
	Init() nvml.Return
	Shutdown() nvml.Return
	DeviceCount() (int, nvml.Return)
	DeviceName(index int) (string, nvml.Return)
	DeviceTemperature(index int) (float64, nvml.Return)
}

// systemNVML forwards to the real library bindings.
type systemNVML struct{}

func (systemNVML) Init() nvml.Return     { return nvml.Init() }
func (systemNVML) Shutdown() nvml.Return { return nvml.Shutdown() }

func (systemNVML) DeviceCount() (int, nvml.Return) {
	return nvml.DeviceGetCount()
}

func (systemNVML) DeviceName(index int) (string, nvml.Return) {
	dev, ret := nvml.DeviceGetHandleByIndex(index)
	if ret != nvml.SUCCESS {
		return "", ret
	}
	return dev.GetName()
}

func (systemNVML) DeviceTemperature(index int) (float64, nvml.Return) {
	dev, ret := nvml.DeviceGetHandleByIndex(index)
	if ret != nvml.SUCCESS {
		return 0, ret
	}
	temp, ret := dev.GetTemperature(nvml.TEMPERATURE_GPU)
	return float64(temp), ret
}

// NVMLSource reads GPU temperatures through the NVIDIA management library.
type NVMLSource struct {
	lib vendorLib
}

// DetectNVML probes once, at startup, for the NVIDIA management library.
// It returns nil when the library is not installed on this host. The probe
// is never repeated per poll; a present-but-failing library surfaces as a
// collection error instead.
func DetectNVML() *NVMLSource {
	ret := nvml.Init()
	if ret == nvml.ERROR_LIBRARY_NOT_FOUND {
		return nil
	}
	if ret == nvml.SUCCESS {
		nvml.Shutdown()
	}
	return &NVMLSource{lib: systemNVML{}}
}

// Collect reads one temperature per device. The library handle is released
// before returning on every path, failures included. On error no partial
// readings are returned.
func (s *NVMLSource) Collect() (readings []Reading, err error) {
	defer func() {
		if r := recover(); r != nil {
			readings = nil
			err = &UnexpectedError{Reason: fmt.Sprintf("nvml panicked: %v", r)}
		}
	}()

	if ret := s.lib.Init(); ret != nvml.SUCCESS {
		return nil, &LibraryError{Call: "nvmlInit", Code: ret}
	}
	defer s.lib.Shutdown()

	count, ret := s.lib.DeviceCount()
	if ret != nvml.SUCCESS {
		return nil, &LibraryError{Call: "nvmlDeviceGetCount", Code: ret}
	}

	for i := 0; i < count; i++ {
		name, ret := s.lib.DeviceName(i)
		if ret != nvml.SUCCESS {
			return nil, &LibraryError{Call: "nvmlDeviceGetName", Code: ret}
		}
		temp, ret := s.lib.DeviceTemperature(i)
		if ret != nvml.SUCCESS {
			return nil, &LibraryError{Call: "nvmlDeviceGetTemperature", Code: ret}
		}
		readings = append(readings, Reading{
			Label:    name,
			Current:  temp,
			High:     DefaultHigh,
			Critical: DefaultCritical,
			Source:   "nvml",
		})
	}

	return readings, nil
}
