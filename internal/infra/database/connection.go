package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // Driver do Postgres
)

// NewDBConnection abre a conexão e testa o Ping
func NewDBConnection(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	// Pool único compartilhado por todos os requests
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err // Retorna erro se o Supabase não responder
	}

	return db, nil
}
