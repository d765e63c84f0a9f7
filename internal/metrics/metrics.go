package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "news_rating_login_attempts_total",
		Help: "Login attempts by resulting status.",
	}, []string{"status"})

	Logouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "news_rating_logouts_total",
		Help: "Sessions ended through logout.",
	})

	Predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "news_rating_predictions_total",
		Help: "Predictions served by tier label.",
	}, []string{"label"})

	PredictionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "news_rating_predictions_failed_total",
		Help: "Predictions that raised an error.",
	})

	PredictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "news_rating_prediction_duration_seconds",
		Help:    "Time spent in transform and predict.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})

	AuditAppends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "news_rating_audit_appends_total",
		Help: "Login audit row appends by result.",
	}, []string{"result"})
)
