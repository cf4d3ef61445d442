// Caminho: internal/handlers/auth.go
// Resumo: Handlers de autenticação: login (com rate limit/lockout opcional via Redis),
// registro e consulta de usuário. Camada de apresentação; regras ficam nos serviços.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/lfcontato/api_produtos/internal/domain"
	"github.com/lfcontato/api_produtos/internal/logger"
	"github.com/lfcontato/api_produtos/internal/metrics"
)

// LoginRequest é o payload de login.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// RegistroRequest é o payload de registro de usuário.
type RegistroRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Login autentica o usuário e retorna token + dados básicos.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	metrics.LoginCounter.Inc()
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Senha == "" {
		metrics.RecordAuthError("invalid_request")
		respondError(w, http.StatusBadRequest, "Dados de login inválidos")
		return
	}

	ip := clientIP(r)
	lockKey := "login:lock:" + req.Email
	if locked, err := a.KV.IsLocked(ctx, lockKey); err == nil && locked {
		metrics.RecordAuthError("locked")
		respondError(w, http.StatusTooManyRequests, "Conta temporariamente bloqueada, tente novamente mais tarde")
		return
	}
	if ok, _, _ := a.KV.AllowRate(ctx, "login:ip:"+ip,
		int64(a.Cfg.LoginIPLimit), time.Duration(a.Cfg.LoginIPWindowMinutes)*time.Minute); !ok {
		metrics.RecordAuthError("rate_limited_ip")
		respondError(w, http.StatusTooManyRequests, "Muitas tentativas, tente novamente mais tarde")
		return
	}
	if ok, _, _ := a.KV.AllowRate(ctx, "login:email:"+req.Email,
		int64(a.Cfg.LoginEmailLimit), time.Duration(a.Cfg.LoginEmailWindowMinutes)*time.Minute); !ok {
		metrics.RecordAuthError("rate_limited_email")
		respondError(w, http.StatusTooManyRequests, "Muitas tentativas, tente novamente mais tarde")
		return
	}

	result, err := a.Auth.Login(ctx, req.Email, req.Senha)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.RecordAuthError("invalid_credentials")
			a.registerLoginFailure(r, req.Email)
		}
		respondDomainError(w, r, err, "", "")
		return
	}

	a.KV.Del(ctx, "login:fail:"+req.Email)
	respondJSON(w, http.StatusOK, result)
}

// registerLoginFailure contabiliza falhas por email e aplica lockout ao exceder o limite.
func (a *API) registerLoginFailure(r *http.Request, email string) {
	ctx := r.Context()
	window := time.Duration(a.Cfg.LoginFailLockTTLMinutes) * time.Minute
	ok, n, err := a.KV.AllowRate(ctx, "login:fail:"+email, int64(a.Cfg.LoginFailLockThreshold), window)
	if err != nil || ok {
		return
	}
	if err := a.KV.SetLock(ctx, "login:lock:"+email, window); err == nil {
		logger.FromContext(ctx).Warn("lockout de login aplicado",
			zap.String("email", email), zap.Int64("falhas", n))
	}
}

// Registro cria uma conta nova e retorna o mesmo formato do login.
func (a *API) Registro(w http.ResponseWriter, r *http.Request) {
	metrics.RegisterCounter.Inc()

	var req RegistroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nome == "" || req.Email == "" || req.Senha == "" {
		metrics.RecordAuthError("invalid_request")
		respondError(w, http.StatusBadRequest, "Dados de registro inválidos")
		return
	}

	result, err := a.Auth.Register(r.Context(), req.Nome, req.Email, req.Senha)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.RecordAuthError("email_already_exists")
			// Contrato original: email duplicado responde 400 sem detalhar a conta.
			respondError(w, http.StatusBadRequest, "Email já cadastrado")
			return
		}
		respondDomainError(w, r, err, "", "")
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// GetUsuario retorna o perfil público de um usuário ativo.
func (a *API) GetUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	perfil, err := a.Auth.GetProfile(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err, "Usuário não encontrado", "")
		return
	}
	respondJSON(w, http.StatusOK, perfil)
}

// pathID extrai o parâmetro {id} da rota.
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido: %q", raw)
	}
	return id, nil
}
