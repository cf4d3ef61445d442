package departamentos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lfcontato/api_produtos/internal/db"
	"github.com/lfcontato/api_produtos/internal/domain"
)

var seq int

func newTestService(t *testing.T) *Service {
	t.Helper()
	seq++
	dsn := fmt.Sprintf("file:departamentos_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", seq)
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)
	t.Cleanup(func() { sqldb.Close() })
	if err := db.CreateSchema(context.Background(), sqldb); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	return New(sqldb)
}

func TestCreateAndListOrderedByNome(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, nome := range []string{"Vestuário", "Eletrônicos", "Informática"} {
		if _, err := svc.Create(ctx, nome); err != nil {
			t.Fatalf("Create(%q): %v", nome, err)
		}
	}

	deps, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := make([]string, len(deps))
	for i, d := range deps {
		got[i] = d.Nome
	}
	want := []string{"Eletrônicos", "Informática", "Vestuário"}
	if len(got) != len(want) {
		t.Fatalf("List retornou %d itens, esperado %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ordem errada na posição %d: %q, esperado %q", i, got[i], want[i])
		}
	}
}

func TestCreateDuplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Esportes"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, "Esportes"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("esperado ErrConflict, veio %v", err)
	}
}

func TestGetUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, "Livros")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.GetByID(ctx, d.ID)
	if err != nil || got.Nome != "Livros" {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}

	upd, err := svc.Update(ctx, d.ID, "Livros e Revistas")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if upd.Nome != "Livros e Revistas" {
		t.Errorf("nome não atualizado: %q", upd.Nome)
	}

	if _, err := svc.Update(ctx, 999, "X"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update inexistente: esperado ErrNotFound, veio %v", err)
	}
	if _, err := svc.GetByID(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID inexistente: esperado ErrNotFound, veio %v", err)
	}
}

func TestDeleteSemProdutos(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, "Automotivo")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, d.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("departamento ainda recuperável após delete: %v", err)
	}
	if err := svc.Delete(ctx, d.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("segundo delete: esperado ErrNotFound, veio %v", err)
	}
}

func TestDeleteEmUso(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, "Eletrônicos")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = svc.DB.ExecContext(ctx,
		`INSERT INTO produtos (codigo, descricao, departamento_id, preco, status) VALUES ('A1','Produto',?,10.00,true)`, d.ID)
	if err != nil {
		t.Fatalf("insert produto: %v", err)
	}

	if err := svc.Delete(ctx, d.ID); !errors.Is(err, domain.ErrInUse) {
		t.Fatalf("esperado ErrInUse, veio %v", err)
	}
	// Departamento permanece recuperável.
	if _, err := svc.GetByID(ctx, d.ID); err != nil {
		t.Errorf("departamento sumiu após delete recusado: %v", err)
	}
}
