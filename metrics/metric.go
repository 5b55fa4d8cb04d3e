package metrics

import (
	grpcprometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Registry = prometheus.NewRegistry()

	// GRPCMetrics stays registered even though this core exposes no RPC
	// surface of its own: the registry is process-wide, and a deployment
	// that fronts the catalog with a gRPC gateway reuses this instance
	// rather than standing up a second one.
	GRPCMetrics = grpcprometheus.NewServerMetrics(
		func(c *prometheus.CounterOpts) {
			c.Namespace = "Coordinator"
		},
	)
)

func init() {
	Registry.MustRegister(
		GRPCMetrics,
	)
	GRPCMetrics.EnableHandlingTimeHistogram(
		func(h *prometheus.HistogramOpts) {
			h.Namespace = "Coordinator"
		},
	)
}
