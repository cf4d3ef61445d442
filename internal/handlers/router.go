// Caminho: internal/handlers/router.go
// Resumo: Agregado de dependências da camada HTTP e montagem das rotas.
// Rotas de catálogo e de perfil exigem bearer token; login/registro são públicas.

package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lfcontato/api_produtos/internal/config"
	"github.com/lfcontato/api_produtos/internal/kv"
	"github.com/lfcontato/api_produtos/internal/metrics"
	"github.com/lfcontato/api_produtos/internal/services/auth"
	"github.com/lfcontato/api_produtos/internal/services/departamentos"
	"github.com/lfcontato/api_produtos/internal/services/produtos"
	"github.com/lfcontato/api_produtos/internal/token"
)

// API agrega os serviços consumidos pelos handlers.
type API struct {
	Auth          *auth.Service
	Produtos      *produtos.Service
	Departamentos *departamentos.Service
	Issuer        *token.Issuer
	KV            *kv.Client
	Cfg           *config.Config
}

// NewRouter monta o roteador completo da aplicação.
func (a *API) NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, AccessLog, CORS(a.Cfg.CORSAllowedOrigins))

	r.HandleFunc("/health", a.Health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// Rotas públicas
	r.HandleFunc("/api/auth/login", a.Login).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/auth/registro", a.Registro).Methods(http.MethodPost, http.MethodOptions)

	// Rotas protegidas
	s := r.PathPrefix("/api").Subrouter()
	s.Use(JWTAuth(a.Issuer))

	s.HandleFunc("/auth/usuario/{id:[0-9]+}", a.GetUsuario).Methods(http.MethodGet, http.MethodOptions)

	s.HandleFunc("/produtos", a.ListProdutos).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/produtos", a.CreateProduto).Methods(http.MethodPost)
	s.HandleFunc("/produtos/{id:[0-9]+}", a.GetProduto).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/produtos/{id:[0-9]+}", a.UpdateProduto).Methods(http.MethodPut)
	s.HandleFunc("/produtos/{id:[0-9]+}", a.DeleteProduto).Methods(http.MethodDelete)

	s.HandleFunc("/departamentos", a.ListDepartamentos).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/departamentos", a.CreateDepartamento).Methods(http.MethodPost)
	s.HandleFunc("/departamentos/{id:[0-9]+}", a.GetDepartamento).Methods(http.MethodGet, http.MethodOptions)
	s.HandleFunc("/departamentos/{id:[0-9]+}", a.UpdateDepartamento).Methods(http.MethodPut)
	s.HandleFunc("/departamentos/{id:[0-9]+}", a.DeleteDepartamento).Methods(http.MethodDelete)

	return r
}

// Health responde o status básico do serviço.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": a.Cfg.ServiceName,
		"version": a.Cfg.Version,
	})
}
