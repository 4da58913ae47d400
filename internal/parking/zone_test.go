package parking

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewZone(t *testing.T) {
	for _, capacity := range []int{0, 1, 7} {
		zone, err := NewZone(Medium, capacity)
		if err != nil {
			t.Fatalf("Unexpected error: %s", err.Error())
		}

		if zone.VehicleClass() != Medium {
			t.Errorf("Expected class medium, got %v", zone.VehicleClass())
		}
		if zone.Capacity() != capacity {
			t.Errorf("Expected capacity %d, got %d", capacity, zone.Capacity())
		}
		if zone.Available() != capacity {
			t.Errorf("Expected available %d, got %d", capacity, zone.Available())
		}
	}
}

func TestNewZoneNegativeCapacity(t *testing.T) {
	zone, err := NewZone(Big, -1)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
	if zone != nil {
		t.Error("Expected no zone for negative capacity")
	}
}

func TestZoneFactories(t *testing.T) {
	factories := map[VehicleClass]func(int) (*Zone, error){
		Big:    NewBigZone,
		Medium: NewMediumZone,
		Small:  NewSmallZone,
	}

	for class, factory := range factories {
		zone, err := factory(2)
		if err != nil {
			t.Fatalf("Unexpected error: %s", err.Error())
		}
		if zone.VehicleClass() != class {
			t.Errorf("Expected class %v, got %v", class, zone.VehicleClass())
		}
	}
}

func TestZoneTryAdmitUntilFull(t *testing.T) {
	const capacity = 3
	zone, _ := NewZone(Small, capacity)

	for i := 1; i <= capacity; i++ {
		if !zone.TryAdmit() {
			t.Fatalf("Expected admission %d to succeed", i)
		}
		if zone.Available() != capacity-i {
			t.Errorf("Expected available %d, got %d", capacity-i, zone.Available())
		}
	}

	for i := 0; i < 3; i++ {
		if zone.TryAdmit() {
			t.Error("Expected admission to fail when zone is full")
		}
		if zone.Available() != 0 {
			t.Errorf("Expected available 0, got %d", zone.Available())
		}
	}
}

func TestZoneZeroCapacity(t *testing.T) {
	zone, _ := NewZone(Big, 0)

	if zone.TryAdmit() {
		t.Error("Expected first admission to fail for zero capacity")
	}
	if zone.Available() != 0 {
		t.Errorf("Expected available 0, got %d", zone.Available())
	}
}

func TestZoneStatus(t *testing.T) {
	zone, _ := NewZone(Medium, 4)
	zone.TryAdmit()

	status := zone.Status()
	expected := ZoneStatus{Class: Medium, Capacity: 4, Available: 3}
	if status != expected {
		t.Errorf("Expected %+v, got %+v", expected, status)
	}
	if status.Occupied() != 1 {
		t.Errorf("Expected 1 occupied, got %d", status.Occupied())
	}
}

func TestZoneConcurrentAdmissions(t *testing.T) {
	const (
		capacity = 50
		callers  = 200
	)
	zone, _ := NewZone(Small, capacity)

	var admitted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if zone.TryAdmit() {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	if admitted.Load() != capacity {
		t.Errorf("Expected %d admissions, got %d", capacity, admitted.Load())
	}
	if zone.Available() != 0 {
		t.Errorf("Expected available 0, got %d", zone.Available())
	}
}

func TestZoneAsAdmitter(t *testing.T) {
	zone, _ := NewSmallZone(1)

	var admitter Admitter = zone
	if admitter.VehicleClass() != Small {
		t.Errorf("Expected small, got %v", admitter.VehicleClass())
	}
	if !admitter.TryAdmit() {
		t.Error("Expected first admission to succeed")
	}
	if admitter.TryAdmit() {
		t.Error("Expected second admission to fail")
	}
}
