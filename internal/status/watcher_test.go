package status

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEstimateWait(t *testing.T) {
	cases := []struct {
		name     string
		count    int
		capacity int
		want     int
	}{
		{"empty queue", 0, 1800, 0},
		{"negative count clamps to zero", -3, 1800, 0},
		{"exact multiple", 60, 1800, 2},
		{"rounds up", 61, 1800, 3},
		{"small queue never reports zero", 1, 1800, 1},
		{"tiny capacity clamps to one per minute", 10, 30, 10},
		{"zero capacity clamps to one per minute", 10, 0, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EstimateWait(tc.count, tc.capacity); got != tc.want {
				t.Fatalf("EstimateWait(%d, %d) = %d, want %d", tc.count, tc.capacity, got, tc.want)
			}
		})
	}
}

func TestIngestFeedDropsUnknownLifts(t *testing.T) {
	raw := `{"queues": [
		{"lift_id": "way-1", "count": 45},
		{"lift_id": "way-unknown", "count": 12},
		{"lift_id": "way-2", "count": 0}
	]}`

	var feed queueFeed
	if err := json.Unmarshal([]byte(raw), &feed); err != nil {
		t.Fatalf("decode feed: %v", err)
	}

	watcher := &StatusWatcher{buffer: make([]StatusSample, 0, 4)}
	capacities := map[string]int{"way-1": 1800, "way-2": 600}
	sampledAt := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)

	watcher.IngestFeed(&feed, capacities, sampledAt)

	if len(watcher.buffer) != 2 {
		t.Fatalf("buffered %d samples, want 2 (unknown lift dropped)", len(watcher.buffer))
	}

	first := watcher.buffer[0]
	if first.LiftID != "way-1" || first.QueueCount != 45 {
		t.Errorf("first sample = %+v", first)
	}
	if first.WaitMinutes != EstimateWait(45, 1800) {
		t.Errorf("wait = %d, want %d", first.WaitMinutes, EstimateWait(45, 1800))
	}
	if !first.SampledAt.Equal(sampledAt) {
		t.Errorf("sampled at %v, want %v", first.SampledAt, sampledAt)
	}

	if second := watcher.buffer[1]; second.WaitMinutes != 0 {
		t.Errorf("empty queue wait = %d, want 0", second.WaitMinutes)
	}
}

func TestStatusSampleColumnsMatchRow(t *testing.T) {
	sample := StatusSample{LiftID: "way-1", QueueCount: 5, WaitMinutes: 1, SampledAt: time.Now()}
	if got, want := len(sample.ToAnyArray()), len(StatusSampleColumns()); got != want {
		t.Fatalf("row width %d, column count %d", got, want)
	}
}
