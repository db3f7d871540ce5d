package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	recordsAppended = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "actlog",
		Subsystem: "store",
		Name:      "records_appended_total",
		Help:      "Number of activity records appended, by category.",
	}, []string{"category"})
	recordsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "actlog",
		Subsystem: "store",
		Name:      "records_deleted_total",
		Help:      "Number of activity records deleted.",
	})
	loadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "actlog",
		Subsystem: "store",
		Name:      "loads_total",
		Help:      "Number of successful full log loads.",
	})
	loadFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "actlog",
		Subsystem: "store",
		Name:      "load_failures_total",
		Help:      "Number of failed full log loads.",
	})
	recordsLoadedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "actlog",
		Subsystem: "store",
		Name:      "records_last_load",
		Help:      "Record count observed by the most recent load.",
	})
	mirrorRowsAppended = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "actlog",
		Subsystem: "mirror",
		Name:      "rows_appended_total",
		Help:      "Number of rows appended to the mirror sheet.",
	})
	mirrorFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "actlog",
		Subsystem: "mirror",
		Name:      "failures_total",
		Help:      "Number of failed mirror row appends.",
	})
)

func init() {
	prometheus.MustRegister(
		recordsAppended,
		recordsDeleted,
		loadsTotal,
		loadFailures,
		recordsLoadedGauge,
		mirrorRowsAppended,
		mirrorFailures,
	)
}

// RecordAppended increments the append counter for a category.
func RecordAppended(category string) {
	recordsAppended.WithLabelValues(category).Inc()
}

// RecordsDeleted adds the number of records removed by a delete.
func RecordsDeleted(n int) {
	if n <= 0 {
		return
	}
	recordsDeleted.Add(float64(n))
}

// RecordLoad marks a successful load and the record count it observed.
func RecordLoad(count int) {
	loadsTotal.Inc()
	recordsLoadedGauge.Set(float64(count))
}

// RecordLoadFailure marks a failed load.
func RecordLoadFailure() {
	loadFailures.Inc()
}

// RecordMirrorRowAppended marks a row successfully mirrored to the sheet.
func RecordMirrorRowAppended() {
	mirrorRowsAppended.Inc()
}

// RecordMirrorFailure marks a failed mirror append.
func RecordMirrorFailure() {
	mirrorFailures.Inc()
}
