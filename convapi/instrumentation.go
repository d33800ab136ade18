package convapi

import (
	"errors"

	"git.autistici.org/ai3/tools/masktr/mask"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	conversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "masktr_conversions_total",
			Help: "Successful conversions, by detected input format.",
		},
		[]string{"format"},
	)
	conversionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "masktr_conversion_errors_total",
			Help: "Failed conversions, by error reason.",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(conversionsTotal, conversionErrors)
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, mask.ErrRange):
		return "out-of-range"
	case errors.Is(err, mask.ErrFormat):
		return "bad-format"
	}
	return "other"
}
