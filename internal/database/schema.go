package database

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		user_id INTEGER NOT NULL REFERENCES users(id),
		UNIQUE (user_id, name)
	)`,
	// category is free text matched by value; there is no FK to categories.
	`CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT NOT NULL,
		is_done BOOLEAN NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT '전체',
		user_id INTEGER NOT NULL REFERENCES users(id),
		start_date TEXT,
		deadline TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_user ON todos (user_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(120) NOT NULL UNIQUE,
		password_hash VARCHAR(128) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users(id),
		UNIQUE (user_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS todos (
		id BIGSERIAL PRIMARY KEY,
		content VARCHAR(255) NOT NULL,
		is_done BOOLEAN NOT NULL DEFAULT FALSE,
		category VARCHAR(50) NOT NULL DEFAULT '전체',
		user_id BIGINT NOT NULL REFERENCES users(id),
		start_date VARCHAR(10),
		deadline VARCHAR(10)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_user ON todos (user_id)`,
}
