// Caminho: internal/handlers/respond.go
// Resumo: Helpers de resposta JSON e mapeamento da taxonomia de erros do domínio
// para status HTTP. Texto de erro de infraestrutura nunca chega ao cliente.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/lfcontato/api_produtos/internal/domain"
	"github.com/lfcontato/api_produtos/internal/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorBody{Error: msg})
}

// respondDomainError traduz os sentinelas de domínio para o contrato HTTP.
// Erros fora da taxonomia são logados e viram falha genérica de servidor.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg, conflictMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusBadRequest, conflictMsg)
	case errors.Is(err, domain.ErrInUse):
		respondError(w, http.StatusConflict, "Departamento possui produtos vinculados")
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Email ou senha inválidos")
	default:
		logger.FromContext(r.Context()).Error("erro interno", zap.Error(err),
			zap.String("method", r.Method), zap.String("path", r.URL.Path))
		respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}
