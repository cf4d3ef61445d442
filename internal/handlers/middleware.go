// Caminho: internal/handlers/middleware.go
// Resumo: Middlewares HTTP: request-id, log de acesso com métricas, CORS e
// autenticação JWT com claims no contexto da requisição.

package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/lfcontato/api_produtos/internal/logger"
	"github.com/lfcontato/api_produtos/internal/metrics"
	"github.com/lfcontato/api_produtos/internal/token"
)

type claimsKey struct{}

// ClaimsFromRequest recupera as claims do usuário autenticado, se presentes.
func ClaimsFromRequest(r *http.Request) (*token.Claims, bool) {
	c, ok := r.Context().Value(claimsKey{}).(*token.Claims)
	return c, ok
}

// RequestID garante um X-Request-ID por requisição e anexa um logger contextual.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		l := logger.Get().With(zap.String("request_id", requestID))
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), l)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// AccessLog registra método/rota/status/latência e alimenta as métricas HTTP.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		latency := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(latency.Seconds())
		logger.FromContext(r.Context()).Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("latency", latency),
			zap.String("ip", clientIP(r)),
		)
	})
}

// CORS libera as origens configuradas (cliente Angular em desenvolvimento).
func CORS(allowedOrigins string) mux.MiddlewareFunc {
	origins := strings.Split(allowedOrigins, ",")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			for _, o := range origins {
				if strings.TrimSpace(o) == origin && origin != "" {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					break
				}
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// JWTAuth valida o bearer token e injeta as claims no contexto.
func JWTAuth(issuer *token.Issuer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondError(w, http.StatusUnauthorized, "Token ausente")
				return
			}
			claims, err := issuer.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.FromContext(r.Context()).Info("token rejeitado", zap.Error(err))
				respondError(w, http.StatusUnauthorized, "Token inválido ou expirado")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// clientIP extrai o IP do cliente, preferindo X-Forwarded-For quando presente.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host := r.RemoteAddr
	if i := strings.LastIndexByte(host, ':'); i > 0 {
		host = host[:i]
	}
	return host
}
