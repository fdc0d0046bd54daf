// Package metrics defines all custom Prometheus metrics for the house price
// prediction API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry on import via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "housing"

// PredictionsTotal counts served price estimates.
// Label:
//   - locality: "known" when the locality activated a one-hot indicator,
//     "unknown" when the model predicted from area and rooms alone
var PredictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of price estimates served.",
	},
	[]string{"locality"},
)

// PredictionDuration measures the end-to-end time of one estimate, feature
// encoding through history persistence.
var PredictionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:      "prediction_duration_seconds",
		Namespace: namespace,
		Help:      "Duration of a prediction request from encoding to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// SignupsTotal counts created accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "invalid_credentials", "invalid_otp", "otp_expired",
//     "too_many_attempts", "no_session"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// OTPIssuedTotal counts one-time passcodes generated by login step one.
var OTPIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time passcodes issued.",
	},
)

// OTPVerifiedTotal counts verification outcomes of login step two.
// Label:
//   - result: "success" or "failure"
var OTPVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verified_total",
		Help:      "Total number of OTP verification attempts, by result.",
	},
	[]string{"result"},
)
