// Caminho: internal/db/migrate.go
// Resumo: Migrações mínimas para criar as tabelas do catálogo e de usuários, com os
// dados iniciais de desenvolvimento (departamentos, produtos e usuário padrão).

package db

import (
	"context"
	"database/sql"
	"time"
)

// Migrate aplica o schema mínimo necessário e insere dados iniciais quando as tabelas
// estão vazias.
func Migrate(ctx context.Context, sqldb *sql.DB) error {
	if err := CreateSchema(ctx, sqldb); err != nil {
		return err
	}
	return Seed(ctx, sqldb)
}

// CreateSchema cria as tabelas do catálogo e de usuários. As constraints (UNIQUE, FK,
// CHECK preco > 0) são o ponto autoritativo de aplicação das invariantes do domínio.
func CreateSchema(ctx context.Context, sqldb *sql.DB) error {
	var stmts []string
	if IsPostgres() {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS departamentos (
				id BIGSERIAL PRIMARY KEY,
				nome VARCHAR(100) NOT NULL UNIQUE
			);`,
			`CREATE TABLE IF NOT EXISTS produtos (
				id BIGSERIAL PRIMARY KEY,
				codigo VARCHAR(50) NOT NULL UNIQUE,
				descricao VARCHAR(200) NOT NULL,
				departamento_id BIGINT NOT NULL REFERENCES departamentos(id),
				preco DECIMAL(18,2) NOT NULL CHECK (preco > 0),
				status BOOLEAN NOT NULL DEFAULT TRUE
			);`,
			`CREATE INDEX IF NOT EXISTS idx_produtos_departamento_id ON produtos(departamento_id);`,
			`CREATE TABLE IF NOT EXISTS usuarios (
				id BIGSERIAL PRIMARY KEY,
				nome VARCHAR(100) NOT NULL,
				email VARCHAR(100) NOT NULL UNIQUE,
				senha VARCHAR(255) NOT NULL,
				data_criacao TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				ativo BOOLEAN NOT NULL DEFAULT TRUE
			);`,
		}
	} else {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS departamentos (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				nome VARCHAR(100) NOT NULL UNIQUE
			);`,
			`CREATE TABLE IF NOT EXISTS produtos (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				codigo VARCHAR(50) NOT NULL UNIQUE,
				descricao VARCHAR(200) NOT NULL,
				departamento_id INTEGER NOT NULL,
				preco DECIMAL(18,2) NOT NULL CHECK (preco > 0),
				status BOOLEAN NOT NULL DEFAULT 1,
				FOREIGN KEY(departamento_id) REFERENCES departamentos(id)
			);`,
			`CREATE INDEX IF NOT EXISTS idx_produtos_departamento_id ON produtos(departamento_id);`,
			`CREATE TABLE IF NOT EXISTS usuarios (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				nome VARCHAR(100) NOT NULL,
				email VARCHAR(100) NOT NULL UNIQUE,
				senha VARCHAR(255) NOT NULL,
				data_criacao TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				ativo BOOLEAN NOT NULL DEFAULT 1
			);`,
		}
	}

	for _, s := range stmts {
		if _, err := sqldb.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Hash SHA-256 (base64) da senha "123456" do usuário padrão de desenvolvimento.
const defaultAdminSenha = "jGl25bVBBBW96Qi9Te4V37Fnqchz/Eu4qB9vKrRIqRg="

// Seed insere dados iniciais apenas quando as tabelas estão vazias.
func Seed(ctx context.Context, sqldb *sql.DB) error {
	var count int

	if err := sqldb.QueryRowContext(ctx, `SELECT COUNT(*) FROM departamentos`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		nomes := []string{
			"Eletrônicos", "Informática", "Vestuário", "Casa e Jardim",
			"Esportes", "Livros", "Automotivo", "Saúde e Beleza",
		}
		ins := Rebind(`INSERT INTO departamentos (nome) VALUES (?)`)
		for _, nome := range nomes {
			if _, err := sqldb.ExecContext(ctx, ins, nome); err != nil {
				return err
			}
		}
	}

	if err := sqldb.QueryRowContext(ctx, `SELECT COUNT(*) FROM produtos`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		ins := Rebind(`INSERT INTO produtos (codigo, descricao, departamento_id, preco, status) VALUES (?,?,?,?,?)`)
		seed := []struct {
			codigo, descricao string
			departamentoID    int64
			preco             float64
		}{
			{"ELET001", "Smartphone Samsung Galaxy S23", 1, 2999.99},
			{"INFO001", "Notebook Dell Inspiron 15", 2, 4599.99},
			{"VEST001", "Camiseta Básica Algodão", 3, 29.99},
		}
		for _, p := range seed {
			if _, err := sqldb.ExecContext(ctx, ins, p.codigo, p.descricao, p.departamentoID, p.preco, true); err != nil {
				return err
			}
		}
	}

	if err := sqldb.QueryRowContext(ctx, `SELECT COUNT(*) FROM usuarios`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		ins := Rebind(`INSERT INTO usuarios (nome, email, senha, data_criacao, ativo) VALUES (?,?,?,?,?)`)
		if _, err := sqldb.ExecContext(ctx, ins, "Administrador", "admin@produtos.com", defaultAdminSenha, time.Now().UTC(), true); err != nil {
			return err
		}
	}
	return nil
}
