package postgres

import "database/sql"

// Queryer é o contrato mínimo de execução de SQL. Tanto *Connection
// quanto *sql.Tx o satisfazem, permitindo que repositórios operem dentro
// ou fora de uma transação.
type Queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
