// Caminho: internal/services/produtos/service.go
// Resumo: CRUD de produtos via SQL parametrizado. Leituras decoram o produto com o
// nome do departamento (INNER JOIN); violações de constraint viram sinal de conflito.

package produtos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lfcontato/api_produtos/internal/db"
	"github.com/lfcontato/api_produtos/internal/domain"
)

const viewColumns = `p.id, p.codigo, p.descricao, p.departamento_id, d.nome AS departamento_nome, p.preco, p.status`

// Service executa as operações de persistência de produtos.
type Service struct {
	DB *sql.DB
}

// New cria o serviço de produtos.
func New(sqldb *sql.DB) *Service {
	return &Service{DB: sqldb}
}

// List retorna todos os produtos com o nome do departamento, ordenados por id.
func (s *Service) List(ctx context.Context) ([]domain.ProdutoView, error) {
	q := `SELECT ` + viewColumns + `
		FROM produtos p
		INNER JOIN departamentos d ON p.departamento_id = d.id
		ORDER BY p.id`
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()

	produtos := []domain.ProdutoView{}
	for rows.Next() {
		var p domain.ProdutoView
		if err := rows.Scan(&p.ID, &p.Codigo, &p.Descricao, &p.DepartamentoID, &p.DepartamentoNome, &p.Preco, &p.Status); err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		produtos = append(produtos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	return produtos, nil
}

// GetByID retorna o produto decorado com o id dado, ou domain.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.ProdutoView, error) {
	q := db.Rebind(`SELECT ` + viewColumns + `
		FROM produtos p
		INNER JOIN departamentos d ON p.departamento_id = d.id
		WHERE p.id = ?`)
	var p domain.ProdutoView
	err := s.DB.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Codigo, &p.Descricao, &p.DepartamentoID, &p.DepartamentoNome, &p.Preco, &p.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return &p, nil
}

// Create insere um produto e retorna a view decorada. Código duplicado, departamento
// inexistente ou preço não positivo resultam em domain.ErrConflict.
func (s *Service) Create(ctx context.Context, in domain.ProdutoInput) (*domain.ProdutoView, error) {
	if in.Preco <= 0 {
		return nil, domain.ErrConflict
	}
	var id int64
	q := db.Rebind(`INSERT INTO produtos (codigo, descricao, departamento_id, preco, status) VALUES (?,?,?,?,?) RETURNING id`)
	err := s.DB.QueryRowContext(ctx, q, in.Codigo, in.Descricao, in.DepartamentoID, in.Preco, in.Status).Scan(&id)
	if err != nil {
		if db.IsConstraintViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert produto: %w", err)
	}
	return s.decorate(ctx, id, in)
}

// Update sobrescreve todos os campos do produto; retorna domain.ErrNotFound se o id
// não existe. Atualização parcial não é suportada.
func (s *Service) Update(ctx context.Context, id int64, in domain.ProdutoInput) (*domain.ProdutoView, error) {
	if in.Preco <= 0 {
		return nil, domain.ErrConflict
	}
	q := db.Rebind(`UPDATE produtos SET codigo = ?, descricao = ?, departamento_id = ?, preco = ?, status = ? WHERE id = ?`)
	res, err := s.DB.ExecContext(ctx, q, in.Codigo, in.Descricao, in.DepartamentoID, in.Preco, in.Status, id)
	if err != nil {
		if db.IsConstraintViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("update produto: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update produto: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	return s.decorate(ctx, id, in)
}

// Delete remove fisicamente um produto; retorna domain.ErrNotFound se nada foi removido.
func (s *Service) Delete(ctx context.Context, id int64) error {
	q := db.Rebind(`DELETE FROM produtos WHERE id = ?`)
	res, err := s.DB.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete produto: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete produto: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// decorate resolve o nome do departamento com uma segunda consulta e monta a view.
func (s *Service) decorate(ctx context.Context, id int64, in domain.ProdutoInput) (*domain.ProdutoView, error) {
	var nome string
	q := db.Rebind(`SELECT nome FROM departamentos WHERE id = ?`)
	if err := s.DB.QueryRowContext(ctx, q, in.DepartamentoID).Scan(&nome); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			nome = "N/A"
		} else {
			return nil, fmt.Errorf("get departamento nome: %w", err)
		}
	}
	return &domain.ProdutoView{
		ID:               id,
		Codigo:           in.Codigo,
		Descricao:        in.Descricao,
		DepartamentoID:   in.DepartamentoID,
		DepartamentoNome: nome,
		Preco:            in.Preco,
		Status:           in.Status,
	}, nil
}
