// Caminho: internal/token/token.go
// Resumo: Emissão e verificação de JWTs de identidade (HS256). Issuer e audience vêm
// da configuração injetada na construção e são validados por qualquer verificador.

package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lfcontato/api_produtos/internal/config"
)

// Claims é o conjunto de claims emitido para um usuário autenticado.
type Claims struct {
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Issuer emite e verifica tokens assinados com o segredo compartilhado.
type Issuer struct {
	cfg config.JWT
}

// NewIssuer cria um emissor a partir da configuração JWT.
func NewIssuer(cfg config.JWT) *Issuer {
	return &Issuer{cfg: cfg}
}

// Issue assina um token para o usuário e retorna o token e o instante de expiração.
func (i *Issuer) Issue(id int64, nome, email string) (string, time.Time, error) {
	now := time.Now()
	expiraEm := now.Add(i.cfg.TTL)
	claims := Claims{
		Nome:   nome,
		Email:  email,
		UserID: strconv.FormatInt(id, 10),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id, 10),
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiraEm),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(i.cfg.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiraEm, nil
}

// Verify valida assinatura, expiração (sem tolerância de relógio), issuer e audience,
// retornando as claims decodificadas.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(i.cfg.SecretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.cfg.Issuer),
		jwt.WithAudience(i.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !t.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// SubjectID converte o subject das claims para o id numérico do usuário.
func (c *Claims) SubjectID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}
