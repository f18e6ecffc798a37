package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"respcheck/domain/survey"
	"respcheck/internal"
)

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"0:02:00", 120, true},
		{"0:02:00s", 120, true},
		{"1:00:30.5", 3630.5, true},
		{"0:00:45", 45, true},
		{"90", 90, true},
		{"90.5", 90.5, true},
		{"90,5", 90.5, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"1:xx:00", 0, false},
	}

	for _, test := range tests {
		sec, ok := ParseDurationSeconds(test.input)
		assert.Equal(t, test.ok, ok, "input %q", test.input)
		if test.ok {
			assert.InDelta(t, test.expected, sec, 1e-9, "input %q", test.input)
		}
	}
}

func speederDataset(durations map[string]string) *survey.Dataset {
	ds := &survey.Dataset{Columns: []string{"ExternalId", "duration"}}
	for id, dur := range durations {
		ds.Rows = append(ds.Rows, survey.Row{"ExternalId": id, "duration": dur})
	}
	return ds
}

func TestSpeederDetect(t *testing.T) {
	ds := &survey.Dataset{
		Columns: []string{"ExternalId", "duration"},
		Rows: []survey.Row{
			{"ExternalId": "r1", "duration": "30"},
			{"ExternalId": "r2", "duration": "60"},
			{"ExternalId": "r3", "duration": "90"},
			{"ExternalId": "r4", "duration": "120"},
			{"ExternalId": "r5", "duration": "600"},
			{"ExternalId": "r6", "duration": "6000"},
		},
	}

	d := NewSpeederDetector(DefaultConfig(), internal.NewDefaultLogger())
	result := d.Detect(ds, "ExternalId")

	// Median of [30 60 90 120 600 6000] is 105, threshold 35.
	assert.True(t, result.HasTiming)
	assert.InDelta(t, 35.0, result.ThresholdSec, 1e-9)
	assert.True(t, result.IDs.has("r1"))
	assert.Equal(t, 1, len(result.IDs))

	assert.NotNil(t, result.Profile)
	assert.Equal(t, 6, result.Profile.ValidCount)
	assert.InDelta(t, 105.0, result.Profile.MedianSec, 1e-9)
	assert.InDelta(t, 30.0, result.Profile.MinSec, 1e-9)
	assert.InDelta(t, 6000.0, result.Profile.MaxSec, 1e-9)
}

func TestSpeederThresholdIsThirdOfMedian(t *testing.T) {
	ds := &survey.Dataset{
		Columns: []string{"ExternalId", "duration"},
		Rows: []survey.Row{
			{"ExternalId": "r1", "duration": "60"},
			{"ExternalId": "r2", "duration": "90"},
			{"ExternalId": "r3", "duration": "120"},
			{"ExternalId": "r4", "duration": "600"},
			{"ExternalId": "r5", "duration": "6000"},
		},
	}

	d := NewSpeederDetector(DefaultConfig(), internal.NewDefaultLogger())
	result := d.Detect(ds, "ExternalId")

	// Median 120s, threshold 40s; 60s is above it, nobody is flagged.
	assert.InDelta(t, 40.0, result.ThresholdSec, 1e-9)
	assert.Empty(t, result.IDs)
}

func TestSpeederDetectNoDurationColumn(t *testing.T) {
	ds := &survey.Dataset{
		Columns: []string{"ExternalId", "Q1"},
		Rows:    []survey.Row{{"ExternalId": "r1", "Q1": "abc"}},
	}

	d := NewSpeederDetector(DefaultConfig(), internal.NewDefaultLogger())
	result := d.Detect(ds, "ExternalId")

	assert.False(t, result.HasTiming)
	assert.Empty(t, result.IDs)
	assert.NotEmpty(t, result.Warnings)
}

func TestSpeederDetectUnparsableValuesSkipped(t *testing.T) {
	ds := speederDataset(map[string]string{
		"r1": "bogus",
		"r2": "",
	})

	d := NewSpeederDetector(DefaultConfig(), internal.NewDefaultLogger())
	result := d.Detect(ds, "ExternalId")

	assert.False(t, result.HasTiming)
	assert.Empty(t, result.IDs)
	assert.NotEmpty(t, result.Warnings)
}

func TestSpeederClockFormatDurations(t *testing.T) {
	ds := &survey.Dataset{
		Columns: []string{"ExternalId", "duration"},
		Rows: []survey.Row{
			{"ExternalId": "r1", "duration": "0:00:30s"},
			{"ExternalId": "r2", "duration": "0:05:00s"},
			{"ExternalId": "r3", "duration": "0:05:00s"},
			{"ExternalId": "r4", "duration": "0:05:00s"},
			{"ExternalId": "r5", "duration": "0:06:00s"},
		},
	}

	d := NewSpeederDetector(DefaultConfig(), internal.NewDefaultLogger())
	result := d.Detect(ds, "ExternalId")

	// Median 300s, threshold 100s; only the 30s completion is below it.
	assert.True(t, result.HasTiming)
	assert.InDelta(t, 100.0, result.ThresholdSec, 1e-9)
	assert.True(t, result.IDs.has("r1"))
	assert.Equal(t, 1, len(result.IDs))
}
