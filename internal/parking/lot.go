package parking

import (
	"fmt"
	"sort"
)

// ZoneSpec describes one zone to build when creating a Lot.
type ZoneSpec struct {
	Class    VehicleClass
	Capacity int
}

// Lot routes admissions to the zone reserved for each vehicle class.
// The zone map is built once and never changes, so reads need no lock.
type Lot struct {
	zones map[VehicleClass]*Zone
}

// NewLot builds the reference configuration of big, medium and small zones.
func NewLot(big, medium, small int) (*Lot, error) {
	return NewLotFromZones(
		ZoneSpec{Class: Big, Capacity: big},
		ZoneSpec{Class: Medium, Capacity: medium},
		ZoneSpec{Class: Small, Capacity: small},
	)
}

// NewLotFromZones builds a lot with one zone per ZoneSpec. Nothing is returned
// unless every zone is valid and every class appears once.
func NewLotFromZones(specs ...ZoneSpec) (*Lot, error) {
	zones := make(map[VehicleClass]*Zone, len(specs))

	for _, zs := range specs {
		if _, exists := zones[zs.Class]; exists {
			return nil, fmt.Errorf("%w: duplicate zone for %s vehicles", ErrInvalidArgument, zs.Class)
		}

		zone, err := NewZone(zs.Class, zs.Capacity)
		if err != nil {
			return nil, err
		}
		zones[zone.VehicleClass()] = zone
	}

	return &Lot{zones: zones}, nil
}

// AddCar admits a vehicle into its class's zone. Unknown classes and full
// zones are both reported as false.
func (l *Lot) AddCar(class VehicleClass) bool {
	if l == nil {
		return false
	}

	zone, ok := l.zones[class]
	if !ok {
		return false
	}

	return zone.TryAdmit()
}

func (l *Lot) Status(class VehicleClass) (ZoneStatus, bool) {
	if l == nil {
		return ZoneStatus{}, false
	}

	zone, ok := l.zones[class]
	if !ok {
		return ZoneStatus{}, false
	}
	return zone.Status(), true
}

// Statuses returns a snapshot of every zone ordered by class.
func (l *Lot) Statuses() []ZoneStatus {
	classes := l.Classes()

	statuses := make([]ZoneStatus, 0, len(classes))
	for _, class := range classes {
		statuses = append(statuses, l.zones[class].Status())
	}
	return statuses
}

func (l *Lot) Classes() []VehicleClass {
	if l == nil {
		return nil
	}

	classes := make([]VehicleClass, 0, len(l.zones))
	for class := range l.zones {
		classes = append(classes, class)
	}

	sort.Slice(classes, func(i, j int) bool {
		return classes[i] < classes[j]
	})

	return classes
}
