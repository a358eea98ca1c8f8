package dem

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/robert-malhotra/go-dem/internal/record"
)

// Metrics holds the Prometheus metrics of the decoder.
type Metrics struct {
	RecordsDecoded *prometheus.CounterVec
	BytesDecoded   prometheus.Counter
	UnknownSamples prometheus.Counter
	ClippedSamples prometheus.Counter
	DecodeFailures *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics with the provided registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	recordsDecoded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dem_records_decoded_total",
		Help: "Total DEM records decoded",
	}, []string{"kind"})

	bytesDecoded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dem_bytes_decoded_total",
		Help: "Total bytes of DEM records decoded",
	})

	unknownSamples := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dem_unknown_samples_total",
		Help: "Total profile samples marked unknown",
	})

	clippedSamples := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dem_clipped_samples_total",
		Help: "Total profile samples dropped for falling outside the grid",
	})

	decodeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dem_decode_failures_total",
		Help: "Total failed decodes",
	}, []string{"reason"})

	reg.MustRegister(recordsDecoded, bytesDecoded, unknownSamples, clippedSamples, decodeFailures)

	return &Metrics{
		RecordsDecoded: recordsDecoded,
		BytesDecoded:   bytesDecoded,
		UnknownSamples: unknownSamples,
		ClippedSamples: clippedSamples,
		DecodeFailures: decodeFailures,
	}
}

func (m *Metrics) record(kind record.Kind, bytes int) {
	if m == nil {
		return
	}
	m.RecordsDecoded.WithLabelValues(kind.String()).Inc()
	m.BytesDecoded.Add(float64(bytes))
}

func (m *Metrics) failure(err error) {
	if m == nil {
		return
	}
	m.DecodeFailures.WithLabelValues(failureReason(err)).Inc()
}

func (m *Metrics) unknown(n int) {
	if m == nil || n == 0 {
		return
	}
	m.UnknownSamples.Add(float64(n))
}

func (m *Metrics) clipped(n int) {
	if m == nil || n == 0 {
		return
	}
	m.ClippedSamples.Add(float64(n))
}
