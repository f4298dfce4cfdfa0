package database

import (
	"errors"

	"github.com/aws/smithy-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var storeOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "record_store_operations_total",
		Help: "Record store requests by table, operation and outcome.",
	},
	[]string{"table", "operation", "status"},
)

func observe(table, operation string, err error) {
	storeOperations.WithLabelValues(table, operation, statusLabel(err)).Inc()
}

func statusLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, ErrInvalidRecord) {
		return "invalid"
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return "error"
}
