package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Счетчики операций аутентификации и почтовой диспетчеризации
var (
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "propel_login_attempts_total",
		Help: "Login attempts by result (success, invalid_credentials, rate_limited).",
	}, []string{"result"})

	TokenRotations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propel_token_rotations_total",
		Help: "Successful refresh token rotations.",
	})

	TokenReuseDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propel_token_reuse_detected_total",
		Help: "Presentations of an already revoked refresh token.",
	})

	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propel_registrations_total",
		Help: "Completed account registrations.",
	})

	EmailsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "propel_emails_dispatched_total",
		Help: "Email jobs dispatched by kind.",
	}, []string{"kind"})

	PropertiesSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propel_properties_swept_total",
		Help: "Inspection records removed by the retention worker.",
	})
)

// Handler отдает /metrics в формате prometheus
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
