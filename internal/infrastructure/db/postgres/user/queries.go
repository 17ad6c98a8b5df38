package user

// The usuarios table is provisioned outside the service:
//
//	CREATE TABLE usuarios (
//	    id        BIGINT PRIMARY KEY,
//	    nome      TEXT NOT NULL,
//	    sobrenome TEXT NOT NULL,
//	    email     TEXT NOT NULL UNIQUE,
//	    telefone  TEXT NOT NULL DEFAULT '',
//	    senha     TEXT NOT NULL
//	);
const (
	SelectUserByID = `
		SELECT id, nome, sobrenome, email, telefone, senha
		FROM usuarios
		WHERE id = $1
	`
	SelectUserByEmail = `
		SELECT id, nome, sobrenome, email, telefone, senha
		FROM usuarios
		WHERE email = $1
	`
	// id follows the same max+1 rule as the file store.
	InsertUser = `
		INSERT INTO usuarios (id, nome, sobrenome, email, telefone, senha)
		SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5
		FROM usuarios
		RETURNING id, nome, sobrenome, email, telefone, senha
	`
)
