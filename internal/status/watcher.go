package status

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"alpenworks.io/resort-services/internal/common"
	database "alpenworks.io/resort-services/internal/db"
	"alpenworks.io/resort-services/internal/log"
)

// StatusSample is one observed queue at one lift base station.
type StatusSample struct {
	LiftID      string
	QueueCount  int
	WaitMinutes int
	SampledAt   time.Time
}

func StatusSampleColumns() []string {
	return []string{"lift_id", "queue_count", "wait_minutes", "sampled_at"}
}

func (sample *StatusSample) ToAnyArray() []any {
	return []any{
		sample.LiftID,
		sample.QueueCount,
		sample.WaitMinutes,
		sample.SampledAt,
	}
}

// queueFeed is the JSON document the camera counting service publishes
// per resort: a count of people waiting at each lift base.
type queueFeed struct {
	Queues []queueCount `json:"queues"`
}

type queueCount struct {
	LiftID string `json:"lift_id"`
	Count  int    `json:"count"`
}

// EstimateWait converts a queue headcount into minutes, assuming the
// lift absorbs its rated hourly capacity evenly. Rounds up so a
// non-empty queue never reports zero.
func EstimateWait(queueCount, capacityPerHour int) int {
	if queueCount <= 0 {
		return 0
	}

	perMinute := capacityPerHour / 60
	if perMinute < 1 {
		perMinute = 1
	}
	return (queueCount + perMinute - 1) / perMinute
}

type StatusWatcher struct {
	Urls    []string
	Client  *http.Client
	Db      *database.Database
	Metrics *common.Metrics
	ticker  *time.Ticker

	buffer []StatusSample
}

func NewStatusWatcher(ctx context.Context, urls []string, domainStringName string, intervalSec float64, metrics *common.Metrics) (*StatusWatcher, error) {
	db, err := database.NewDatabaseConnection(ctx, domainStringName)
	if err != nil {
		return nil, err
	}

	return &StatusWatcher{
		Urls:    urls,
		Db:      db,
		Client:  &http.Client{Timeout: 15 * time.Second},
		Metrics: metrics,
		ticker:  time.NewTicker(time.Duration(intervalSec) * time.Second),
		buffer:  make([]StatusSample, 0, 256),
	}, nil
}

func (watcher *StatusWatcher) SampleEndpoint(ctx context.Context, url string) (*queueFeed, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := watcher.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	feed := &queueFeed{}
	if err := json.Unmarshal(body, feed); err != nil {
		return nil, err
	}
	return feed, nil
}

func (watcher *StatusWatcher) liftCapacities(ctx context.Context) (map[string]int, error) {
	rows, err := watcher.Db.QueryContext(ctx, "SELECT id, capacity FROM ski_lifts")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	capacities := map[string]int{}
	for rows.Next() {
		var id string
		var capacity int
		if err := rows.Scan(&id, &capacity); err != nil {
			return nil, err
		}
		capacities[id] = capacity
	}
	return capacities, rows.Err()
}

// IngestFeed turns a queue feed into samples. Counts for lift ids not
// present in ski_lifts are dropped.
func (watcher *StatusWatcher) IngestFeed(feed *queueFeed, capacities map[string]int, sampledAt time.Time) {
	for _, queue := range feed.Queues {
		capacity, ok := capacities[queue.LiftID]
		if !ok {
			log.Logger.Warn("queue count for unknown lift", zap.String("lift_id", queue.LiftID))
			continue
		}

		watcher.buffer = append(watcher.buffer, StatusSample{
			LiftID:      queue.LiftID,
			QueueCount:  queue.Count,
			WaitMinutes: EstimateWait(queue.Count, capacity),
			SampledAt:   sampledAt,
		})
	}
}

func (watcher *StatusWatcher) FlushSamples(ctx context.Context) error {
	if len(watcher.buffer) == 0 {
		return nil
	}

	_, err := watcher.Db.CopyFromSlice(
		ctx,
		"lift_status_samples",
		StatusSampleColumns(),
		len(watcher.buffer),
		func(i int) ([]any, error) {
			return watcher.buffer[i].ToAnyArray(), nil
		},
	)
	if err != nil {
		return err
	}

	// Push the freshest estimate onto the lift rows the map serves.
	for _, sample := range watcher.buffer {
		_, err := watcher.Db.ExecContext(ctx,
			"UPDATE ski_lifts SET wait_time = $1, current_load = $2 WHERE id = $3",
			sample.WaitMinutes, sample.QueueCount, sample.LiftID)
		if err != nil {
			return err
		}

		if watcher.Metrics != nil {
			watcher.Metrics.StatusSamplesTotal.WithLabelValues(sample.LiftID).Inc()
		}
	}

	watcher.buffer = watcher.buffer[:0]
	return nil
}

func (watcher *StatusWatcher) SampleEndpoints(ctx context.Context) {
	capacities, err := watcher.liftCapacities(ctx)
	if err != nil {
		log.Logger.Error("load lift capacities", zap.Error(err))
		return
	}

	sampledAt := time.Now().UTC()
	for _, url := range watcher.Urls {
		start := time.Now()
		feed, err := watcher.SampleEndpoint(ctx, url)
		if watcher.Metrics != nil {
			watcher.Metrics.FeedPollSeconds.WithLabelValues(url).Observe(time.Since(start).Seconds())
		}
		if err != nil {
			if watcher.Metrics != nil {
				watcher.Metrics.FeedErrorsTotal.WithLabelValues(url).Inc()
			}
			log.Logger.Warn("sample queue feed", zap.String("url", url), zap.Error(err))
			continue
		}

		watcher.IngestFeed(feed, capacities, sampledAt)
		log.Logger.Info("sampled queue feed",
			zap.String("url", url),
			zap.Int("queues", len(feed.Queues)))
	}

	if err := watcher.FlushSamples(ctx); err != nil {
		log.Logger.Error("flush status samples", zap.Error(err))
	}
}

func (watcher *StatusWatcher) Watch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-watcher.ticker.C:
			watcher.SampleEndpoints(ctx)
		}
	}
}

func (watcher *StatusWatcher) Close() error {
	watcher.ticker.Stop()
	return watcher.Db.Close()
}
