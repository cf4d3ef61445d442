// Caminho: internal/handlers/departamentos.go
// Resumo: Handlers CRUD de departamentos. A exclusão distingue "não encontrado"
// de "em uso" (departamento com produtos vinculados responde 409).

package handlers

import (
	"encoding/json"
	"net/http"
)

// DepartamentoRequest é o payload de criação/atualização de departamento.
type DepartamentoRequest struct {
	Nome string `json:"nome"`
}

// ListDepartamentos lista todos os departamentos ordenados por nome.
func (a *API) ListDepartamentos(w http.ResponseWriter, r *http.Request) {
	deps, err := a.Departamentos.List(r.Context())
	if err != nil {
		respondDomainError(w, r, err, "", "")
		return
	}
	respondJSON(w, http.StatusOK, deps)
}

// GetDepartamento busca um departamento pelo id.
func (a *API) GetDepartamento(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	d, err := a.Departamentos.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err, "Departamento não encontrado", "")
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// CreateDepartamento cria um departamento novo.
func (a *API) CreateDepartamento(w http.ResponseWriter, r *http.Request) {
	var req DepartamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nome == "" {
		respondError(w, http.StatusBadRequest, "Nome do departamento é obrigatório")
		return
	}
	d, err := a.Departamentos.Create(r.Context(), req.Nome)
	if err != nil {
		respondDomainError(w, r, err, "", "Departamento já existente")
		return
	}
	respondJSON(w, http.StatusCreated, d)
}

// UpdateDepartamento renomeia um departamento existente.
func (a *API) UpdateDepartamento(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	var req DepartamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nome == "" {
		respondError(w, http.StatusBadRequest, "Nome do departamento é obrigatório")
		return
	}
	d, err := a.Departamentos.Update(r.Context(), id, req.Nome)
	if err != nil {
		respondDomainError(w, r, err, "Departamento não encontrado", "Departamento já existente")
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// DeleteDepartamento remove um departamento sem produtos vinculados.
func (a *API) DeleteDepartamento(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	if err := a.Departamentos.Delete(r.Context(), id); err != nil {
		respondDomainError(w, r, err, "Departamento não encontrado", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
