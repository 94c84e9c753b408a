// Package observe - метрики сервера на OpenTelemetry.
//
// Инструменты создаются через [NewMetrics] с любым MeterProvider.
// В проде провайдер строит [InitProvider] с Prometheus-экспортером,
// в тестах используется ManualReader.
package observe

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/alexeagleson/goblin-boys"

// Metrics - инструменты игрового цикла. Реализует engine.Metrics.
type Metrics struct {
	// TickDuration - время одного тика в секундах
	TickDuration metric.Float64Histogram

	// Commands - принятые команды, атрибут kind
	Commands metric.Int64Counter

	ActiveUsers metric.Int64Gauge
	Entities    metric.Int64Gauge

	meter metric.Meter
}

// Тик при 20 Гц должен укладываться в 50мс
var tickBuckets = []float64{
	0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25,
}

func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{meter: m}

	if met.TickDuration, err = m.Float64Histogram("goblin_boys.tick.duration",
		metric.WithDescription("Wall time spent in one simulation tick."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(tickBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Commands, err = m.Int64Counter("goblin_boys.commands",
		metric.WithDescription("Client commands ingested by the game loop, by kind."),
	); err != nil {
		return nil, err
	}
	if met.ActiveUsers, err = m.Int64Gauge("goblin_boys.active_users",
		metric.WithDescription("Users currently placed in the world."),
	); err != nil {
		return nil, err
	}
	if met.Entities, err = m.Int64Gauge("goblin_boys.entities",
		metric.WithDescription("Live entities across all maps."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

func (m *Metrics) RecordTick(d time.Duration) {
	m.TickDuration.Record(context.Background(), d.Seconds())
}

func (m *Metrics) RecordCommand(kind string) {
	m.Commands.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("kind", kind)),
	)
}

func (m *Metrics) SetPopulation(users, entities int) {
	ctx := context.Background()
	m.ActiveUsers.Record(ctx, int64(users))
	m.Entities.Record(ctx, int64(entities))
}

// ObserveDrops публикует счетчики потерь (переполненные очереди).
// Ключ карты становится атрибутом source.
func (m *Metrics) ObserveDrops(sources map[string]func() int64) error {
	if len(sources) == 0 {
		return nil
	}
	_, err := m.meter.Int64ObservableCounter("goblin_boys.dropped",
		metric.WithDescription("Messages dropped because a queue was full, by source."),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			for name, fn := range sources {
				o.Observe(fn(), metric.WithAttributes(attribute.String("source", name)))
			}
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("register drop counter: %w", err)
	}
	return nil
}
