// Caminho: internal/metrics/metrics.go
// Resumo: Métricas Prometheus do serviço: contadores de autenticação e
// instrumentação HTTP (total e latência por rota/método/status).

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LoginCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "api_produtos_login_requests_total",
		Help: "Total de requisições de login.",
	})

	RegisterCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "api_produtos_register_requests_total",
		Help: "Total de requisições de registro.",
	})

	AuthErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "api_produtos_auth_errors_total",
		Help: "Total de falhas de autenticação por motivo.",
	}, []string{"reason"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "api_produtos_http_requests_total",
		Help: "Total de requisições HTTP.",
	}, []string{"method", "path", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "api_produtos_http_request_duration_seconds",
		Help:    "Duração das requisições HTTP em segundos.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// RecordAuthError incrementa o contador de erros de autenticação para um motivo.
func RecordAuthError(reason string) {
	AuthErrors.WithLabelValues(reason).Inc()
}

// Handler expõe o endpoint /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
