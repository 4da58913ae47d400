package parking

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidArgument is returned when a zone or lot is configured with bad values.
var ErrInvalidArgument = errors.New("invalid argument")

// Admitter is anything that can report its vehicle class and try to admit one vehicle.
type Admitter interface {
	VehicleClass() VehicleClass
	TryAdmit() bool
}

// ZoneStatus is a point-in-time copy of a zone's counters.
type ZoneStatus struct {
	Class     VehicleClass
	Capacity  int
	Available int
}

func (s ZoneStatus) Occupied() int {
	return s.Capacity - s.Available
}

// Zone is a parking area reserved for a single vehicle class.
// available stays within [0, capacity] and only ever decreases.
type Zone struct {
	class    VehicleClass
	capacity int

	mu        sync.Mutex
	available int
}

var _ Admitter = (*Zone)(nil)

func NewZone(class VehicleClass, capacity int) (*Zone, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %s zone capacity must not be negative, got %d", ErrInvalidArgument, class, capacity)
	}

	return &Zone{
		class:     class,
		capacity:  capacity,
		available: capacity,
	}, nil
}

func NewBigZone(capacity int) (*Zone, error)    { return NewZone(Big, capacity) }
func NewMediumZone(capacity int) (*Zone, error) { return NewZone(Medium, capacity) }
func NewSmallZone(capacity int) (*Zone, error)  { return NewZone(Small, capacity) }

// TryAdmit takes one space if any is left. A full zone is left untouched.
func (z *Zone) TryAdmit() bool {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.available == 0 {
		return false
	}

	z.available--
	return true
}

func (z *Zone) VehicleClass() VehicleClass {
	return z.class
}

func (z *Zone) Capacity() int {
	return z.capacity
}

func (z *Zone) Available() int {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.available
}

func (z *Zone) Status() ZoneStatus {
	return ZoneStatus{
		Class:     z.class,
		Capacity:  z.capacity,
		Available: z.Available(),
	}
}
