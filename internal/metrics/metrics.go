// Package metrics declares the opencensus measures of the index and exports them to prometheus.
package metrics

import (
	"context"
	"fmt"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const Namespace = "kdset"

var (
	OpKey, _ = tag.NewKey("op")

	PointsInserted = stats.Int64("kdset/points_inserted", "Number of new points added to the index", stats.UnitDimensionless)
	PointsRejected = stats.Int64("kdset/points_rejected", "Number of points rejected as out of range", stats.UnitDimensionless)
	IndexSize      = stats.Int64("kdset/index_size", "Number of distinct points stored in the index", stats.UnitDimensionless)
	OpLatency      = stats.Float64("kdset/op_latency", "Latency of index operations", stats.UnitMilliseconds)
)

var Views = []*view.View{
	{
		Name:        "kdset/points_inserted_total",
		Description: PointsInserted.Description(),
		Measure:     PointsInserted,
		Aggregation: view.Sum(),
	},
	{
		Name:        "kdset/points_rejected_total",
		Description: PointsRejected.Description(),
		Measure:     PointsRejected,
		Aggregation: view.Sum(),
	},
	{
		Name:        "kdset/index_size",
		Description: IndexSize.Description(),
		Measure:     IndexSize,
		Aggregation: view.LastValue(),
	},
	{
		Name:        "kdset/op_latency",
		Description: OpLatency.Description(),
		Measure:     OpLatency,
		TagKeys:     []tag.Key{OpKey},
		Aggregation: view.Distribution(0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100),
	},
}

func Register() error {
	if err := view.Register(Views...); err != nil {
		return fmt.Errorf("register views: %w", err)
	}
	return nil
}

func Unregister() {
	view.Unregister(Views...)
}

// NewExporter returns the prometheus exporter; it serves the registered views over HTTP.
func NewExporter() (*prometheus.Exporter, error) {
	pe, err := prometheus.NewExporter(prometheus.Options{Namespace: Namespace})
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	return pe, nil
}

func RecordLatency(ctx context.Context, op string, since time.Time) {
	ms := float64(time.Since(since)) / float64(time.Millisecond)
	_ = stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(OpKey, op)}, OpLatency.M(ms))
}

func RecordInsert(ctx context.Context, inserted, size int) {
	stats.Record(ctx, PointsInserted.M(int64(inserted)), IndexSize.M(int64(size)))
}

func RecordRejected(ctx context.Context, rejected int) {
	stats.Record(ctx, PointsRejected.M(int64(rejected)))
}
