// Caminho: internal/handlers/produtos.go
// Resumo: Handlers CRUD de produtos. Entrada/saída no contrato JSON do cliente
// (codigo, descricao, departamentoId, departamentoNome, preco, status).

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lfcontato/api_produtos/internal/domain"
)

// ListProdutos lista todos os produtos com o nome do departamento.
func (a *API) ListProdutos(w http.ResponseWriter, r *http.Request) {
	produtos, err := a.Produtos.List(r.Context())
	if err != nil {
		respondDomainError(w, r, err, "", "")
		return
	}
	respondJSON(w, http.StatusOK, produtos)
}

// GetProduto busca um produto pelo id.
func (a *API) GetProduto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	p, err := a.Produtos.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err, "Produto não encontrado", "")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// CreateProduto cria um produto novo.
func (a *API) CreateProduto(w http.ResponseWriter, r *http.Request) {
	var in domain.ProdutoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Codigo == "" || in.DepartamentoID == 0 {
		respondError(w, http.StatusBadRequest, "Dados do produto inválidos")
		return
	}
	p, err := a.Produtos.Create(r.Context(), in)
	if err != nil {
		respondDomainError(w, r, err, "", "Dados inválidos ou código já existente")
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// UpdateProduto sobrescreve todos os campos de um produto existente.
func (a *API) UpdateProduto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	var in domain.ProdutoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Codigo == "" || in.DepartamentoID == 0 {
		respondError(w, http.StatusBadRequest, "Dados do produto inválidos")
		return
	}
	p, err := a.Produtos.Update(r.Context(), id, in)
	if err != nil {
		respondDomainError(w, r, err, "Produto não encontrado", "Dados inválidos ou código já existente")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// DeleteProduto remove fisicamente um produto.
func (a *API) DeleteProduto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	if err := a.Produtos.Delete(r.Context(), id); err != nil {
		respondDomainError(w, r, err, "Produto não encontrado", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
