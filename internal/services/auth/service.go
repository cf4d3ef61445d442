// Caminho: internal/services/auth/service.go
// Resumo: Orquestração de autenticação: login, registro e perfil, compondo o codec de
// senha, o emissor de tokens e o diretório de usuários. Falha de email inexistente e
// de senha incorreta colapsam no mesmo sinal para evitar enumeração de contas.

package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lfcontato/api_produtos/internal/domain"
	"github.com/lfcontato/api_produtos/internal/logger"
	"github.com/lfcontato/api_produtos/internal/password"
	"github.com/lfcontato/api_produtos/internal/services/usuarios"
	"github.com/lfcontato/api_produtos/internal/token"
)

// Service agrega as dependências dos casos de uso de autenticação.
type Service struct {
	Usuarios *usuarios.Service
	Codec    password.Codec
	Issuer   *token.Issuer
}

// New cria o serviço de autenticação.
func New(dir *usuarios.Service, codec password.Codec, issuer *token.Issuer) *Service {
	return &Service{Usuarios: dir, Codec: codec, Issuer: issuer}
}

// Login autentica por email/senha e emite um token de 24h.
// Retorna domain.ErrInvalidCredentials tanto para email desconhecido quanto para
// senha incorreta; o motivo real fica apenas no log.
func (s *Service) Login(ctx context.Context, email, senha string) (*domain.AuthResult, error) {
	u, err := s.Usuarios.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.FromContext(ctx).Info("login recusado", zap.String("motivo", "email desconhecido"))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !s.Codec.Matches(senha, u.SenhaHash) {
		logger.FromContext(ctx).Info("login recusado", zap.String("motivo", "senha incorreta"), zap.Int64("usuario_id", u.ID))
		return nil, domain.ErrInvalidCredentials
	}
	return s.issue(u.ID, u.Nome, u.Email)
}

// Register cria uma conta nova e emite o token da mesma forma que o login.
// Email já cadastrado (ativo ou não) retorna domain.ErrConflict; a checagem prévia é
// só atalho — o índice UNIQUE do banco é quem decide em caso de corrida.
func (s *Service) Register(ctx context.Context, nome, email, senha string) (*domain.AuthResult, error) {
	exists, err := s.Usuarios.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		return nil, domain.ErrConflict
	}

	hash, err := s.Codec.Digest(senha)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	id, err := s.Usuarios.Insert(ctx, nome, email, hash)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	logger.FromContext(ctx).Info("usuário registrado", zap.Int64("usuario_id", id))
	return s.issue(id, nome, email)
}

// GetProfile retorna os campos públicos de uma conta ativa, ou domain.ErrNotFound.
func (s *Service) GetProfile(ctx context.Context, id int64) (*domain.Perfil, error) {
	u, err := s.Usuarios.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &domain.Perfil{
		ID:          u.ID,
		Nome:        u.Nome,
		Email:       u.Email,
		DataCriacao: u.DataCriacao,
		Ativo:       u.Ativo,
	}, nil
}

func (s *Service) issue(id int64, nome, email string) (*domain.AuthResult, error) {
	tok, expiraEm, err := s.Issuer.Issue(id, nome, email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &domain.AuthResult{Token: tok, Nome: nome, Email: email, ExpiraEm: expiraEm}, nil
}
