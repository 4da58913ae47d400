package parking

import "github.com/prometheus/client_golang/prometheus"

// LotCollector exports the zones of whatever lot source returns at scrape
// time. A nil lot exports nothing.
type LotCollector struct {
	source    func() *Lot
	capacity  *prometheus.Desc
	available *prometheus.Desc
}

var _ prometheus.Collector = (*LotCollector)(nil)

func NewLotCollector(source func() *Lot) *LotCollector {
	return &LotCollector{
		source: source,
		capacity: prometheus.NewDesc(
			"parking_zone_capacity",
			"Total spaces in each parking zone.",
			[]string{"vehicle_class"}, nil,
		),
		available: prometheus.NewDesc(
			"parking_zone_available",
			"Remaining spaces in each parking zone.",
			[]string{"vehicle_class"}, nil,
		),
	}
}

func (c *LotCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacity
	ch <- c.available
}

func (c *LotCollector) Collect(ch chan<- prometheus.Metric) {
	lot := c.source()
	if lot == nil {
		return
	}

	for _, st := range lot.Statuses() {
		class := st.Class.String()
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(st.Capacity), class)
		ch <- prometheus.MustNewConstMetric(c.available, prometheus.GaugeValue, float64(st.Available), class)
	}
}
