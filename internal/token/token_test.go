package token

import (
	"testing"
	"time"

	"github.com/lfcontato/api_produtos/internal/config"
)

func testJWT() config.JWT {
	return config.JWT{
		SecretKey: "segredo-de-teste",
		Issuer:    "API-Produtos",
		Audience:  "Angular-Client",
		TTL:       24 * time.Hour,
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer := NewIssuer(testJWT())

	antes := time.Now()
	tok, expiraEm, err := issuer.Issue(42, "Administrador", "admin@produtos.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if d := expiraEm.Sub(antes); d < 23*time.Hour+59*time.Minute || d > 24*time.Hour+time.Minute {
		t.Errorf("expiração fora de ~24h: %v", d)
	}

	claims, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Nome != "Administrador" || claims.Email != "admin@produtos.com" {
		t.Errorf("claims inesperadas: %+v", claims)
	}
	id, err := claims.SubjectID()
	if err != nil || id != 42 {
		t.Errorf("SubjectID = %d, %v; esperado 42", id, err)
	}
	if claims.UserID != "42" {
		t.Errorf("userId = %q, esperado \"42\"", claims.UserID)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewIssuer(testJWT())
	tok, _, err := issuer.Issue(1, "A", "a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	outro := testJWT()
	outro.SecretKey = "outro-segredo"
	if _, err := NewIssuer(outro).Verify(tok); err == nil {
		t.Error("token aceito com segredo errado")
	}
}

func TestVerifyExpired(t *testing.T) {
	cfg := testJWT()
	cfg.TTL = -time.Second
	tok, _, err := NewIssuer(cfg).Issue(1, "A", "a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewIssuer(testJWT()).Verify(tok); err == nil {
		t.Error("token expirado foi aceito")
	}
}

func TestVerifyIssuerAudienceMismatch(t *testing.T) {
	issuer := NewIssuer(testJWT())
	tok, _, err := issuer.Issue(1, "A", "a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	casos := map[string]config.JWT{}
	iss := testJWT()
	iss.Issuer = "Outra-API"
	casos["issuer divergente"] = iss
	aud := testJWT()
	aud.Audience = "Outro-Cliente"
	casos["audience divergente"] = aud

	for nome, cfg := range casos {
		if _, err := NewIssuer(cfg).Verify(tok); err == nil {
			t.Errorf("%s: token aceito indevidamente", nome)
		}
	}
}

func TestVerifyGarbage(t *testing.T) {
	issuer := NewIssuer(testJWT())
	for _, tok := range []string{"", "abc", "a.b.c"} {
		if _, err := issuer.Verify(tok); err == nil {
			t.Errorf("Verify(%q) deveria falhar", tok)
		}
	}
}
