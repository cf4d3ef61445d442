package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lfcontato/api_produtos/internal/config"
	"github.com/lfcontato/api_produtos/internal/db"
	"github.com/lfcontato/api_produtos/internal/handlers"
	"github.com/lfcontato/api_produtos/internal/password"
	authsvc "github.com/lfcontato/api_produtos/internal/services/auth"
	"github.com/lfcontato/api_produtos/internal/services/departamentos"
	"github.com/lfcontato/api_produtos/internal/services/produtos"
	"github.com/lfcontato/api_produtos/internal/services/usuarios"
	"github.com/lfcontato/api_produtos/internal/token"
)

var seq int

func newTestAPI(t *testing.T) (*handlers.API, *sql.DB) {
	t.Helper()
	seq++
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", seq)
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)
	t.Cleanup(func() { sqldb.Close() })
	if err := db.CreateSchema(context.Background(), sqldb); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}

	cfg := &config.Config{
		LoginIPLimit:            100,
		LoginIPWindowMinutes:    5,
		LoginEmailLimit:         100,
		LoginEmailWindowMinutes: 5,
		LoginFailLockThreshold:  5,
		LoginFailLockTTLMinutes: 15,
		JWT: config.JWT{
			SecretKey: "segredo-de-teste",
			Issuer:    "API-Produtos",
			Audience:  "Angular-Client",
			TTL:       24 * time.Hour,
		},
		PasswordScheme:     password.SchemeSHA256,
		CORSAllowedOrigins: "http://localhost:4200",
		ServiceName:        "api_produtos",
		Version:            "test",
	}
	issuer := token.NewIssuer(cfg.JWT)
	api := &handlers.API{
		Auth:          authsvc.New(usuarios.New(sqldb), password.NewCodec(cfg.PasswordScheme), issuer),
		Produtos:      produtos.New(sqldb),
		Departamentos: departamentos.New(sqldb),
		Issuer:        issuer,
		KV:            nil, // throttling desativado nos testes
		Cfg:           cfg,
	}
	return api, sqldb
}

func seedUsuario(t *testing.T, sqldb *sql.DB, email, senha string) {
	t.Helper()
	_, err := sqldb.Exec(
		`INSERT INTO usuarios (nome, email, senha, data_criacao, ativo) VALUES ('Administrador',?,?,?,true)`,
		email, password.Digest(senha), time.Now().UTC())
	if err != nil {
		t.Fatalf("seed usuario: %v", err)
	}
}

func doJSON(t *testing.T, h http.Handler, method, path, tok string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler, email, senha string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "senha": senha})
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || out.Token == "" {
		t.Fatalf("resposta de login sem token: %s", rec.Body.String())
	}
	return out.Token
}

func TestLoginERotasProtegidas(t *testing.T) {
	api, sqldb := newTestAPI(t)
	router := api.NewRouter()
	seedUsuario(t, sqldb, "admin@produtos.com", "123456")

	// Sem token o catálogo é inacessível.
	if rec := doJSON(t, router, http.MethodGet, "/api/produtos", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("sem token: status %d, esperado 401", rec.Code)
	}

	tok := login(t, router, "admin@produtos.com", "123456")
	if rec := doJSON(t, router, http.MethodGet, "/api/produtos", tok, nil); rec.Code != http.StatusOK {
		t.Errorf("com token: status %d, esperado 200", rec.Code)
	}

	// Token adulterado é rejeitado.
	if rec := doJSON(t, router, http.MethodGet, "/api/produtos", tok+"x", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("token adulterado: status %d, esperado 401", rec.Code)
	}
}

func TestLoginCredenciaisInvalidas(t *testing.T) {
	api, sqldb := newTestAPI(t)
	router := api.NewRouter()
	seedUsuario(t, sqldb, "admin@produtos.com", "123456")

	casos := []map[string]string{
		{"email": "admin@produtos.com", "senha": "errada"},
		{"email": "outro@produtos.com", "senha": "123456"},
	}
	for _, body := range casos {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", body)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("login %v: status %d, esperado 401", body, rec.Code)
		}
	}
}

func TestRegistroEConflito(t *testing.T) {
	api, _ := newTestAPI(t)
	router := api.NewRouter()

	body := map[string]string{"nome": "Maria", "email": "maria@produtos.com", "senha": "s123"}
	if rec := doJSON(t, router, http.MethodPost, "/api/auth/registro", "", body); rec.Code != http.StatusCreated {
		t.Fatalf("registro: status %d: %s", rec.Code, rec.Body.String())
	}
	if rec := doJSON(t, router, http.MethodPost, "/api/auth/registro", "", body); rec.Code != http.StatusBadRequest {
		t.Errorf("registro duplicado: status %d, esperado 400", rec.Code)
	}
}

func TestCatalogoCRUD(t *testing.T) {
	api, sqldb := newTestAPI(t)
	router := api.NewRouter()
	seedUsuario(t, sqldb, "admin@produtos.com", "123456")
	tok := login(t, router, "admin@produtos.com", "123456")

	// Departamento
	rec := doJSON(t, router, http.MethodPost, "/api/departamentos", tok, map[string]string{"nome": "Eletrônicos"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create departamento: %d: %s", rec.Code, rec.Body.String())
	}
	var dep struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &dep); err != nil {
		t.Fatalf("decode departamento: %v", err)
	}

	// Produto com preço inválido é recusado.
	rec = doJSON(t, router, http.MethodPost, "/api/produtos", tok, map[string]interface{}{
		"codigo": "A1", "descricao": "Produto", "departamentoId": dep.ID, "preco": 0, "status": true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("produto preço 0: status %d, esperado 400", rec.Code)
	}

	// Produto válido.
	rec = doJSON(t, router, http.MethodPost, "/api/produtos", tok, map[string]interface{}{
		"codigo": "A1", "descricao": "Produto", "departamentoId": dep.ID, "preco": 10.0, "status": true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create produto: %d: %s", rec.Code, rec.Body.String())
	}
	var prod struct {
		ID               int64  `json:"id"`
		DepartamentoNome string `json:"departamentoNome"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &prod); err != nil {
		t.Fatalf("decode produto: %v", err)
	}
	if prod.DepartamentoNome != "Eletrônicos" {
		t.Errorf("departamentoNome = %q", prod.DepartamentoNome)
	}

	// Departamento com produto vinculado não pode ser excluído.
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/departamentos/%d", dep.ID), tok, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("delete departamento em uso: status %d, esperado 409", rec.Code)
	}

	// Após remover o produto, a exclusão passa.
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/produtos/%d", prod.ID), tok, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete produto: status %d, esperado 204", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/departamentos/%d", dep.ID), tok, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete departamento: status %d, esperado 204", rec.Code)
	}

	// Recursos removidos retornam 404.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/produtos/%d", prod.ID), tok, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get produto removido: status %d, esperado 404", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	api, _ := newTestAPI(t)
	router := api.NewRouter()
	if rec := doJSON(t, router, http.MethodGet, "/health", "", nil); rec.Code != http.StatusOK {
		t.Errorf("health: status %d", rec.Code)
	}
}
