// Caminho: internal/config/config.go
// Resumo: Carrega e expõe variáveis de configuração do sistema a partir de variáveis de ambiente.
// Inclui defaults seguros para desenvolvimento e centraliza chaves usadas no serviço.

package config

import (
	"os"
	"strconv"
	"time"
)

// JWT agrupa os parâmetros de emissão/validação de tokens. É injetado explicitamente
// no emissor e no middleware; nunca lido de estado global dentro da lógica central.
type JWT struct {
	SecretKey string
	Issuer    string
	Audience  string
	TTL       time.Duration
}

// Config representa as configurações necessárias do serviço.
type Config struct {
	DeploymentEnv string
	LogLevel      string

	// Banco de dados (Postgres/SQLite)
	DatabaseURL string

	// Redis (opcional; rate limit/lockout de login)
	RedisHost string
	RedisPort int
	RedisPass string
	RedisURL  string

	// Rate limit / Lockout (configuráveis por env)
	LoginIPLimit            int
	LoginIPWindowMinutes    int
	LoginEmailLimit         int
	LoginEmailWindowMinutes int
	LoginFailLockThreshold  int
	LoginFailLockTTLMinutes int

	// JWT / Segurança
	JWT JWT

	// Esquema de hash para novas senhas: "sha256" (legado, compatível) ou "bcrypt".
	PasswordScheme string

	// CORS: origens permitidas, separadas por vírgula.
	CORSAllowedOrigins string

	// Metadados
	ServiceName string
	Version     string
}

// getenv retorna o valor de uma variável de ambiente, ou o default se não definido.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt retorna uma variável de ambiente como inteiro, ou o default se ausente/inválido.
func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load carrega as variáveis de configuração a partir do ambiente e devolve uma instância de Config.
func Load() *Config {
	return &Config{
		DeploymentEnv: getenv("DEPLOYMENT_ENVIRONMENT", "development"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		DatabaseURL:   getenv("DATABASE_URL", ""),

		RedisHost: getenv("REDIS_HOST", ""),
		RedisPort: getenvInt("REDIS_PORT", 0),
		RedisPass: getenv("REDIS_PASSWORD", ""),
		RedisURL:  getenv("REDIS_URL", ""),

		// Defaults: login IP 20/5min; login email 20/5min; lock >=5 por 15min
		LoginIPLimit:            getenvInt("LOGIN_IP_LIMIT", 20),
		LoginIPWindowMinutes:    getenvInt("LOGIN_IP_WINDOW_MINUTES", 5),
		LoginEmailLimit:         getenvInt("LOGIN_EMAIL_LIMIT", 20),
		LoginEmailWindowMinutes: getenvInt("LOGIN_EMAIL_WINDOW_MINUTES", 5),
		LoginFailLockThreshold:  getenvInt("LOGIN_FAIL_LOCK_THRESHOLD", 5),
		LoginFailLockTTLMinutes: getenvInt("LOGIN_FAIL_LOCK_TTL_MINUTES", 15),

		JWT: JWT{
			SecretKey: getenv("JWT_KEY", "SuaChaveSecretaSuperSeguraParaJWT2024"),
			Issuer:    getenv("JWT_ISSUER", "API-Produtos"),
			Audience:  getenv("JWT_AUDIENCE", "Angular-Client"),
			TTL:       time.Duration(getenvInt("JWT_EXPIRE_HOURS", 24)) * time.Hour,
		},

		PasswordScheme: getenv("PASSWORD_SCHEME", "sha256"),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "http://localhost:4200"),

		ServiceName: getenv("OTEL_SERVICE_NAME", "api_produtos"),
		Version:     getenv("SERVICE_VERSION", "0.1.0"),
	}
}
