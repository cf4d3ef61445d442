// Caminho: internal/services/departamentos/service.go
// Resumo: CRUD de departamentos via SQL parametrizado. Exclusão é guardada por
// contagem de produtos referenciando o departamento (sinal "em uso", sem cascata).

package departamentos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lfcontato/api_produtos/internal/db"
	"github.com/lfcontato/api_produtos/internal/domain"
)

// Service executa as operações de persistência de departamentos.
type Service struct {
	DB *sql.DB
}

// New cria o serviço de departamentos.
func New(sqldb *sql.DB) *Service {
	return &Service{DB: sqldb}
}

// List retorna todos os departamentos ordenados por nome.
func (s *Service) List(ctx context.Context) ([]domain.Departamento, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, nome FROM departamentos ORDER BY nome`)
	if err != nil {
		return nil, fmt.Errorf("list departamentos: %w", err)
	}
	defer rows.Close()

	deps := []domain.Departamento{}
	for rows.Next() {
		var d domain.Departamento
		if err := rows.Scan(&d.ID, &d.Nome); err != nil {
			return nil, fmt.Errorf("scan departamento: %w", err)
		}
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list departamentos: %w", err)
	}
	return deps, nil
}

// GetByID retorna o departamento com o id dado, ou domain.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Departamento, error) {
	var d domain.Departamento
	q := db.Rebind(`SELECT id, nome FROM departamentos WHERE id = ?`)
	if err := s.DB.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Nome); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get departamento: %w", err)
	}
	return &d, nil
}

// Create insere um departamento; nome duplicado resulta em domain.ErrConflict.
func (s *Service) Create(ctx context.Context, nome string) (*domain.Departamento, error) {
	var id int64
	q := db.Rebind(`INSERT INTO departamentos (nome) VALUES (?) RETURNING id`)
	if err := s.DB.QueryRowContext(ctx, q, nome).Scan(&id); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert departamento: %w", err)
	}
	return &domain.Departamento{ID: id, Nome: nome}, nil
}

// Update renomeia o departamento; retorna domain.ErrNotFound se o id não existe.
func (s *Service) Update(ctx context.Context, id int64, nome string) (*domain.Departamento, error) {
	q := db.Rebind(`UPDATE departamentos SET nome = ? WHERE id = ?`)
	res, err := s.DB.ExecContext(ctx, q, nome, id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("update departamento: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update departamento: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	return &domain.Departamento{ID: id, Nome: nome}, nil
}

// Delete remove fisicamente um departamento sem produtos vinculados.
// Com produtos vinculados retorna domain.ErrInUse e nada é removido;
// id inexistente retorna domain.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	var count int
	check := db.Rebind(`SELECT COUNT(*) FROM produtos WHERE departamento_id = ?`)
	if err := s.DB.QueryRowContext(ctx, check, id).Scan(&count); err != nil {
		return fmt.Errorf("check departamento em uso: %w", err)
	}
	if count > 0 {
		return domain.ErrInUse
	}

	del := db.Rebind(`DELETE FROM departamentos WHERE id = ?`)
	res, err := s.DB.ExecContext(ctx, del, id)
	if err != nil {
		// Corrida entre a checagem e o DELETE: a FK do banco é o ponto final de aplicação.
		if db.IsForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete departamento: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete departamento: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
