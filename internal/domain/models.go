// Caminho: internal/domain/models.go
// Resumo: Modelos de domínio e erros centrais do sistema (Usuario, Departamento, Produto)
// usados pelos serviços. Nenhum erro de infraestrutura deve vazar acima desta taxonomia.

package domain

import (
	"errors"
	"time"
)

// Usuario representa uma conta do sistema. SenhaHash nunca sai desta camada.
type Usuario struct {
	ID          int64
	Nome        string
	Email       string
	SenhaHash   string
	DataCriacao time.Time
	Ativo       bool
}

// Perfil é a projeção pública de um usuário (sem hash de senha).
type Perfil struct {
	ID          int64     `json:"id"`
	Nome        string    `json:"nome"`
	Email       string    `json:"email"`
	DataCriacao time.Time `json:"dataCriacao"`
	Ativo       bool      `json:"ativo"`
}

// Departamento agrupa produtos por área.
type Departamento struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// Produto é o registro persistido de um produto.
type Produto struct {
	ID             int64   `json:"id"`
	Codigo         string  `json:"codigo"`
	Descricao      string  `json:"descricao"`
	DepartamentoID int64   `json:"departamentoId"`
	Preco          float64 `json:"preco"`
	Status         bool    `json:"status"`
}

// ProdutoView é um produto decorado com o nome do departamento para leitura.
type ProdutoView struct {
	ID               int64   `json:"id"`
	Codigo           string  `json:"codigo"`
	Descricao        string  `json:"descricao"`
	DepartamentoID   int64   `json:"departamentoId"`
	DepartamentoNome string  `json:"departamentoNome"`
	Preco            float64 `json:"preco"`
	Status           bool    `json:"status"`
}

// ProdutoInput carrega os campos de entrada de criação/atualização de produto.
// Atualização não é parcial: todos os campos são autoritativos.
type ProdutoInput struct {
	Codigo         string  `json:"codigo"`
	Descricao      string  `json:"descricao"`
	DepartamentoID int64   `json:"departamentoId"`
	Preco          float64 `json:"preco"`
	Status         bool    `json:"status"`
}

// AuthResult é o resultado de login/registro: token e dados básicos do usuário.
type AuthResult struct {
	Token    string    `json:"token"`
	Nome     string    `json:"nome"`
	Email    string    `json:"email"`
	ExpiraEm time.Time `json:"expiraEm"`
}

// Erros comuns de domínio. Os handlers mapeiam estes sentinelas para status HTTP;
// qualquer outro erro é tratado como falha interna.
var (
	// ErrNotFound indica que a entidade pedida não existe.
	ErrNotFound = errors.New("not found")
	// ErrConflict indica violação de unicidade ou de restrição (email/código duplicado, preço inválido).
	ErrConflict = errors.New("conflict")
	// ErrInUse indica que a entidade ainda é referenciada por outra (departamento com produtos).
	ErrInUse = errors.New("in use")
	// ErrInvalidCredentials cobre email inexistente e senha incorreta, sem distinção externa.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
