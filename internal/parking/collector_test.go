package parking

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gatherGauges(t *testing.T, c prometheus.Collector) map[string]map[string]float64 {
	t.Helper()

	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("Failed to register collector: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	values := map[string]map[string]float64{}
	for _, mf := range families {
		byClass := map[string]float64{}
		for _, m := range mf.GetMetric() {
			byClass[vehicleClassLabel(m)] = m.GetGauge().GetValue()
		}
		values[mf.GetName()] = byClass
	}
	return values
}

func vehicleClassLabel(m *dto.Metric) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == "vehicle_class" {
			return lp.GetValue()
		}
	}
	return ""
}

func TestLotCollector(t *testing.T) {
	lot, _ := NewLot(2, 1, 0)
	lot.AddCar(Big)

	values := gatherGauges(t, NewLotCollector(func() *Lot { return lot }))

	available := values["parking_zone_available"]
	if available["big"] != 1 || available["medium"] != 1 || available["small"] != 0 {
		t.Errorf("Unexpected available gauges: %v", available)
	}

	capacity := values["parking_zone_capacity"]
	if capacity["big"] != 2 || capacity["medium"] != 1 || capacity["small"] != 0 {
		t.Errorf("Unexpected capacity gauges: %v", capacity)
	}
}

func TestLotCollectorWithoutLot(t *testing.T) {
	values := gatherGauges(t, NewLotCollector(func() *Lot { return nil }))

	if len(values) != 0 {
		t.Errorf("Expected no metrics without a lot, got %v", values)
	}
}
