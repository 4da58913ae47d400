package parking

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"zoned-parking/internal/logging"
)

type InstrumentedShell struct {
	instrumentedLot *InstrumentedLot
	scanner         *bufio.Scanner
	out             io.Writer
	telemetry       *TelemetryProvider
}

func NewInstrumentedShell(telemetry *TelemetryProvider, in io.Reader, out io.Writer) *InstrumentedShell {
	return &InstrumentedShell{
		scanner:   bufio.NewScanner(in),
		out:       out,
		telemetry: telemetry,
	}
}

// Run reads commands until the input ends or ctx is cancelled.
func (s *InstrumentedShell) Run(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	for ctx.Err() == nil {
		if !s.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))

		s.processCommand(cmdCtx, input)
		cmdSpan.End()
	}

	if s.instrumentedLot != nil {
		if err := s.instrumentedLot.Close(); err != nil {
			logging.Warn(ctx, "failed to release lot metrics", "error", err)
		}
	}

	span.AddEvent("shell_ended")
}

func (s *InstrumentedShell) processCommand(ctx context.Context, input string) {
	tracer := s.telemetry.Tracer()
	_, span := tracer.Start(ctx, "shell.parse_command")
	defer span.End()

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	command := parts[0]
	span.SetAttributes(attribute.String("command.name", command))

	switch command {
	case "create_parking_lot":
		s.handleCreateParkingLot(ctx, parts)
	case "add_car", "park":
		s.handleAddCar(ctx, parts)
	case "status":
		s.handleStatus(ctx)
	default:
		span.AddEvent("unknown_command", trace.WithAttributes(
			attribute.String("unknown_command", command),
		))
		fmt.Fprintf(s.out, "Unknown command: %s\n", command)
	}
}

func (s *InstrumentedShell) handleCreateParkingLot(ctx context.Context, parts []string) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.create_parking_lot")
	defer span.End()

	if len(parts) != 4 {
		span.AddEvent("invalid_arguments")
		fmt.Fprintln(s.out, "Usage: create_parking_lot <big> <medium> <small>")
		return
	}

	capacities := make([]int, 3)
	for i, arg := range parts[1:] {
		capacity, err := strconv.Atoi(arg)
		if err != nil {
			span.RecordError(fmt.Errorf("invalid capacity: %s", arg))
			span.AddEvent("invalid_capacity")
			fmt.Fprintln(s.out, "Invalid capacity")
			return
		}
		capacities[i] = capacity
	}

	span.SetAttributes(
		attribute.Int("parking_lot.big_capacity", capacities[0]),
		attribute.Int("parking_lot.medium_capacity", capacities[1]),
		attribute.Int("parking_lot.small_capacity", capacities[2]),
	)

	instrumentedLot, err := NewInstrumentedLot(capacities[0], capacities[1], capacities[2], s.telemetry)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrInvalidArgument) {
			span.AddEvent("invalid_capacity")
			fmt.Fprintln(s.out, "Invalid capacity")
			return
		}
		fmt.Fprintf(s.out, "Error creating parking lot: %s\n", err.Error())
		return
	}

	if s.instrumentedLot != nil {
		if err := s.instrumentedLot.Close(); err != nil {
			logging.Warn(ctx, "failed to release lot metrics", "error", err)
		}
	}

	s.instrumentedLot = instrumentedLot
	span.AddEvent("parking_lot_created")
	logging.Info(ctx, "parking lot created",
		"big", capacities[0],
		"medium", capacities[1],
		"small", capacities[2],
	)
	fmt.Fprintf(s.out, "Created a parking lot with zones big=%d medium=%d small=%d\n",
		capacities[0], capacities[1], capacities[2])
}

func (s *InstrumentedShell) handleAddCar(ctx context.Context, parts []string) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.add_car_command")
	defer span.End()

	if s.instrumentedLot == nil {
		span.AddEvent("parking_lot_not_created")
		fmt.Fprintln(s.out, "Parking lot not created")
		return
	}

	if len(parts) != 2 {
		span.AddEvent("invalid_arguments")
		fmt.Fprintln(s.out, "Usage: add_car <vehicle_class>")
		return
	}

	class, err := ParseVehicleClass(parts[1])
	if err != nil {
		span.RecordError(err)
		span.AddEvent("invalid_vehicle_class")
		fmt.Fprintln(s.out, "Invalid vehicle class")
		return
	}

	span.SetAttributes(attribute.String("vehicle.class", class.String()))

	if !s.instrumentedLot.AddCar(ctx, class) {
		span.AddEvent("add_car_rejected")
		fmt.Fprintf(s.out, "Sorry, no space for %s vehicle\n", class)
		return
	}

	span.AddEvent("add_car_admitted")
	fmt.Fprintf(s.out, "Parked %s vehicle\n", class)
}

func (s *InstrumentedShell) handleStatus(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.status_command")
	defer span.End()

	if s.instrumentedLot == nil {
		span.AddEvent("parking_lot_not_created")
		fmt.Fprintln(s.out, "Parking lot not created")
		return
	}

	statuses := s.instrumentedLot.Statuses(ctx)
	span.SetAttributes(attribute.Int("zones_count", len(statuses)))
	span.AddEvent("status_retrieved")

	fmt.Fprintln(s.out, "Zone\tCapacity\tAvailable")
	for _, st := range statuses {
		fmt.Fprintf(s.out, "%s\t%d\t%d\n", st.Class, st.Capacity, st.Available)
	}
}
