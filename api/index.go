// Caminho: api/index.go
// Resumo: Ponto de entrada da API (compatível com serverless). Inicialização única de
// config, logger, banco, redis e roteador; requisições são delegadas ao gorilla/mux.

package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lfcontato/api_produtos/internal/config"
	"github.com/lfcontato/api_produtos/internal/db"
	"github.com/lfcontato/api_produtos/internal/handlers"
	"github.com/lfcontato/api_produtos/internal/kv"
	"github.com/lfcontato/api_produtos/internal/logger"
	"github.com/lfcontato/api_produtos/internal/password"
	authsvc "github.com/lfcontato/api_produtos/internal/services/auth"
	"github.com/lfcontato/api_produtos/internal/services/departamentos"
	"github.com/lfcontato/api_produtos/internal/services/produtos"
	"github.com/lfcontato/api_produtos/internal/services/usuarios"
	"github.com/lfcontato/api_produtos/internal/token"
)

var (
	routerInstance *mux.Router
	setupErr       error
	once           sync.Once
)

// setup configura todos os componentes da aplicação.
func setup() {
	_ = godotenv.Load()
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.DeploymentEnv, cfg.ServiceName); err != nil {
		setupErr = err
		return
	}

	sqldb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		setupErr = err
		return
	}
	if err := db.Migrate(context.Background(), sqldb); err != nil {
		setupErr = err
		return
	}

	kvClient, err := kv.Open(cfg.RedisURL, cfg.RedisHost, cfg.RedisPort, cfg.RedisPass)
	if err != nil {
		// Redis é opcional: sem ele o throttling de login vira no-op.
		logger.Get().Warn("redis indisponível, throttling de login desativado", zap.Error(err))
		kvClient = nil
	}

	issuer := token.NewIssuer(cfg.JWT)
	dir := usuarios.New(sqldb)
	api := &handlers.API{
		Auth:          authsvc.New(dir, password.NewCodec(cfg.PasswordScheme), issuer),
		Produtos:      produtos.New(sqldb),
		Departamentos: departamentos.New(sqldb),
		Issuer:        issuer,
		KV:            kvClient,
		Cfg:           cfg,
	}
	routerInstance = api.NewRouter()
	logger.Get().Info("API inicializada", zap.String("version", cfg.Version))
}

// Handler é o ponto de entrada principal. A configuração ocorre apenas na primeira
// requisição (cold start) e é reaproveitada nas seguintes.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)
	if setupErr != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	routerInstance.ServeHTTP(w, r)
}
