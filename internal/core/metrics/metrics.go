package metrics

import (
	"errors"

	custom_error "inventory/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess     = "success"
	OutcomeNotFound    = "not_found"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

var storeOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "store_operations_total",
		Help:      "Asset store operations by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

func ObserveStoreOperation(operation string, err error) {
	storeOperations.WithLabelValues(operation, Outcome(err)).Inc()
}

func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, custom_error.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, custom_error.ErrInvalidInput):
		return OutcomeInvalid
	case custom_error.IsBackendError(err):
		return OutcomeUnavailable
	default:
		return OutcomeError
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
