// Caminho: internal/services/usuarios/service.go
// Resumo: Diretório de contas: consultas e inserção sobre a tabela usuarios via SQL
// parametrizado. A unicidade de email é garantida pelo índice UNIQUE do banco.

package usuarios

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lfcontato/api_produtos/internal/db"
	"github.com/lfcontato/api_produtos/internal/domain"
)

// Service executa as operações de persistência de usuários.
type Service struct {
	DB *sql.DB
}

// New cria o serviço de usuários.
func New(sqldb *sql.DB) *Service {
	return &Service{DB: sqldb}
}

// FindActiveByEmail retorna o usuário ativo com o email dado, ou domain.ErrNotFound.
func (s *Service) FindActiveByEmail(ctx context.Context, email string) (*domain.Usuario, error) {
	q := db.Rebind(`SELECT id, nome, email, senha, data_criacao, ativo FROM usuarios WHERE email = ? AND ativo = true`)
	return s.scanOne(s.DB.QueryRowContext(ctx, q, email))
}

// FindActiveByID retorna o usuário ativo com o id dado, ou domain.ErrNotFound.
func (s *Service) FindActiveByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	q := db.Rebind(`SELECT id, nome, email, senha, data_criacao, ativo FROM usuarios WHERE id = ? AND ativo = true`)
	return s.scanOne(s.DB.QueryRowContext(ctx, q, id))
}

// EmailExists verifica se o email já está cadastrado, ignorando o flag ativo.
func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	q := db.Rebind(`SELECT COUNT(*) FROM usuarios WHERE email = ?`)
	if err := s.DB.QueryRowContext(ctx, q, email).Scan(&count); err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return count > 0, nil
}

// Insert cria um usuário ativo com data de criação UTC corrente e retorna o id gerado.
// Email duplicado resulta em domain.ErrConflict, sinalizado pelo próprio banco.
func (s *Service) Insert(ctx context.Context, nome, email, senhaHash string) (int64, error) {
	var id int64
	q := db.Rebind(`INSERT INTO usuarios (nome, email, senha, data_criacao, ativo) VALUES (?,?,?,?,?) RETURNING id`)
	err := s.DB.QueryRowContext(ctx, q, nome, email, senhaHash, time.Now().UTC(), true).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, domain.ErrConflict
		}
		return 0, fmt.Errorf("insert usuario: %w", err)
	}
	return id, nil
}

func (s *Service) scanOne(row *sql.Row) (*domain.Usuario, error) {
	var u domain.Usuario
	if err := row.Scan(&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.DataCriacao, &u.Ativo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan usuario: %w", err)
	}
	return &u, nil
}
