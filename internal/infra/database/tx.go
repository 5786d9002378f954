package database

import (
	"context"
	"database/sql"
	"fmt"
)

// querier é o subconjunto de *sql.DB / *sql.Tx que os repositórios usam.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// TxManager roda um bloco inteiro dentro de uma transação Postgres.
// Os repositórios enxergam a transação via context, então o mesmo código
// funciona dentro e fora de um RunInTx.
type TxManager struct {
	DB *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{DB: db}
}

func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao abrir transação: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// querierFrom devolve a transação do context, se houver, senão o pool.
func querierFrom(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
