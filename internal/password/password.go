// Caminho: internal/password/password.go
// Resumo: Codec de credenciais. O formato legado é SHA-256 sem sal (base64), mantido
// por compatibilidade com os hashes já gravados; bcrypt fica disponível como esquema
// endurecido e é reconhecido pelo prefixo do digest, sem reescrever os existentes.

package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Esquemas suportados para novos digests.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// Digest aplica a transformação legada: SHA-256 do texto puro, codificado em base64.
// Determinística por construção — mesmo texto, mesmo digest.
func Digest(senha string) string {
	sum := sha256.Sum256([]byte(senha))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Matches verifica senha contra um digest armazenado. Digests bcrypt são
// reconhecidos pelo prefixo "$2"; o restante é tratado como formato legado,
// comparado em tempo constante.
func Matches(senha, digest string) bool {
	if strings.HasPrefix(digest, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(senha)) == nil
	}
	calc := Digest(senha)
	return subtle.ConstantTimeCompare([]byte(calc), []byte(digest)) == 1
}

// Codec escolhe o esquema usado para digests de contas novas.
type Codec struct {
	scheme string
}

// NewCodec cria um codec para o esquema dado; esquemas desconhecidos caem no legado.
func NewCodec(scheme string) Codec {
	if scheme != SchemeBcrypt {
		scheme = SchemeSHA256
	}
	return Codec{scheme: scheme}
}

// Digest produz o digest de uma senha nova conforme o esquema configurado.
func (c Codec) Digest(senha string) (string, error) {
	if c.scheme == SchemeBcrypt {
		h, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		return string(h), nil
	}
	return Digest(senha), nil
}

// Matches delega para a verificação por formato, independente do esquema configurado.
func (c Codec) Matches(senha, digest string) bool {
	return Matches(senha, digest)
}
