// Caminho: cmd/devseed/main.go
// Resumo: Utilitário de desenvolvimento: aplica migrações/seed, autentica com o
// usuário padrão (ou o definido via env) e exibe o token emitido.

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/lfcontato/api_produtos/internal/config"
	"github.com/lfcontato/api_produtos/internal/db"
	"github.com/lfcontato/api_produtos/internal/logger"
	"github.com/lfcontato/api_produtos/internal/password"
	authsvc "github.com/lfcontato/api_produtos/internal/services/auth"
	"github.com/lfcontato/api_produtos/internal/services/usuarios"
	"github.com/lfcontato/api_produtos/internal/token"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := logger.Init(cfg.LogLevel, cfg.DeploymentEnv, cfg.ServiceName); err != nil {
		log.Fatalf("logger: %v", err)
	}

	sqldb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	ctx := context.Background()
	if err := db.Migrate(ctx, sqldb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	email := os.Getenv("SEED_AUTH_EMAIL")
	senha := os.Getenv("SEED_AUTH_PASSWORD")
	if email == "" {
		email = "admin@produtos.com"
		senha = "123456"
	}

	svc := authsvc.New(usuarios.New(sqldb), password.NewCodec(cfg.PasswordScheme), token.NewIssuer(cfg.JWT))
	result, err := svc.Login(ctx, email, senha)
	if err != nil {
		log.Fatalf("login error: %v", err)
	}
	fmt.Println("TOKEN=", result.Token)
	fmt.Println("EXPIRA_EM=", result.ExpiraEm.Format("2006-01-02T15:04:05Z07:00"))
}
