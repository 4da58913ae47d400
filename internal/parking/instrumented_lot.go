package parking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"zoned-parking/internal/logging"
)

const unknownClassLabel = "unknown"

type InstrumentedLot struct {
	*Lot
	telemetry *TelemetryProvider

	// Metrics
	admissions        metric.Int64Counter
	operationDuration metric.Float64Histogram
	zoneGauges        metric.Registration
}

func NewInstrumentedLot(big, medium, small int, telemetry *TelemetryProvider) (*InstrumentedLot, error) {
	lot, err := NewLot(big, medium, small)
	if err != nil {
		return nil, err
	}
	return Instrument(lot, telemetry)
}

// Instrument wraps lot with spans and metrics. Call Close once the lot is
// discarded so its zone gauges stop reporting.
func Instrument(lot *Lot, telemetry *TelemetryProvider) (*InstrumentedLot, error) {
	meter := telemetry.Meter()

	admissions, err := meter.Int64Counter("parking_admissions_total",
		metric.WithDescription("Total number of vehicle admission attempts"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of parking lot operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	capacityGauge, err := meter.Int64ObservableGauge("parking_zone_capacity",
		metric.WithDescription("Total spaces in each parking zone"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	availableGauge, err := meter.Int64ObservableGauge("parking_zone_available",
		metric.WithDescription("Remaining spaces in each parking zone"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	zoneGauges, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for _, st := range lot.Statuses() {
			attrs := metric.WithAttributes(attribute.String("vehicle_class", st.Class.String()))
			o.ObserveInt64(capacityGauge, int64(st.Capacity), attrs)
			o.ObserveInt64(availableGauge, int64(st.Available), attrs)
		}
		return nil
	}, capacityGauge, availableGauge)
	if err != nil {
		return nil, err
	}

	return &InstrumentedLot{
		Lot:               lot,
		telemetry:         telemetry,
		admissions:        admissions,
		operationDuration: operationDuration,
		zoneGauges:        zoneGauges,
	}, nil
}

func (il *InstrumentedLot) AddCar(ctx context.Context, class VehicleClass) bool {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.add_car",
		trace.WithAttributes(
			attribute.Int("vehicle.class_id", int(class)),
			attribute.String("vehicle.class", class.String()),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("routing_to_zone")

	admitted := il.Lot.AddCar(class)

	duration := time.Since(start).Seconds()

	// Unconfigured classes share one label to keep cardinality bounded.
	classLabel := unknownClassLabel
	st, known := il.Lot.Status(class)
	if known {
		classLabel = class.String()
		span.SetAttributes(
			attribute.Int("zone.capacity", st.Capacity),
			attribute.Int("zone.available", st.Available),
		)
	}

	labels := []attribute.KeyValue{
		attribute.String("operation", "add_car"),
		attribute.String("vehicle_class", classLabel),
	}

	if admitted {
		labels = append(labels, attribute.String("status", "admitted"))
		span.AddEvent("vehicle_admitted")
	} else {
		labels = append(labels, attribute.String("status", "rejected"))
		span.AddEvent("vehicle_rejected", trace.WithAttributes(
			attribute.Bool("zone.configured", known),
		))
		logging.Debug(ctx, "vehicle rejected",
			"vehicle_class", class.String(),
			"zone_configured", known,
		)
	}

	il.admissions.Add(ctx, 1, metric.WithAttributes(labels...))
	il.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return admitted
}

func (il *InstrumentedLot) Statuses(ctx context.Context) []ZoneStatus {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.get_status")
	defer span.End()

	start := time.Now()

	span.AddEvent("retrieving_status")

	statuses := il.Lot.Statuses()

	duration := time.Since(start).Seconds()

	var capacity, available int
	for _, st := range statuses {
		capacity += st.Capacity
		available += st.Available
	}

	span.SetAttributes(
		attribute.Int("zones_count", len(statuses)),
		attribute.Int("total_capacity", capacity),
		attribute.Int("total_available", available),
	)

	labels := []attribute.KeyValue{
		attribute.String("operation", "get_status"),
		attribute.String("status", "success"),
	}

	il.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return statuses
}

func (il *InstrumentedLot) Close() error {
	return il.zoneGauges.Unregister()
}
