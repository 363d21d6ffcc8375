package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/luki/gputemp/internal/sensor"
)

func TestWriteJSON(t *testing.T) {
	snap := sensor.Snapshot{
		Timestamp: time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		Readings: []sensor.Reading{
			{Label: "NVIDIA T4", Current: 63.2, High: 85, Critical: 95, Source: "nvml"},
		},
		Method: sensor.MethodVendorAPI,
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, snap); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "\n  \"timestamp\": \"2026-03-14T15:09:26Z\"") {
		t.Errorf("timestamp should be ISO-8601 under 2-space indent, got:\n%s", out)
	}
	if !strings.Contains(out, "\"detectionMethod\": \"vendorApi\"") {
		t.Errorf("missing detection method, got:\n%s", out)
	}
	if strings.Contains(out, "diagnostic") {
		t.Error("empty diagnostic must be omitted")
	}
	if strings.Contains(out, "availableSensorKeys") {
		t.Error("unpopulated sensor keys must be omitted")
	}

	var decoded sensor.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Readings) != 1 || decoded.Readings[0].Label != "NVIDIA T4" {
		t.Errorf("round trip lost readings: %+v", decoded.Readings)
	}
	if decoded.Readings[0].Current != 63.2 {
		t.Errorf("current: got %v, want 63.2", decoded.Readings[0].Current)
	}
}

func TestWriteJSONEmptyReadings(t *testing.T) {
	snap := sensor.Snapshot{
		Timestamp:  time.Now(),
		Method:     sensor.MethodNone,
		Diagnostic: "no GPU temperature data found via generic sensors",
		SensorKeys: []string{"coretemp"},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, snap); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "\"readings\": []") {
		t.Errorf("nil readings must encode as [], got:\n%s", out)
	}
	if !strings.Contains(out, "\"diagnostic\"") || !strings.Contains(out, "\"coretemp\"") {
		t.Errorf("diagnostic fields missing, got:\n%s", out)
	}
}
