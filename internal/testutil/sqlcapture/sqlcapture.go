// Package sqlcapture is a database/sql driver for repository tests. It records
// every statement with its arguments and answers with queued responses, so the
// generated SQL, row scanning and driver error mapping can be checked without
// a running PostgreSQL.
package sqlcapture

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"sync"
)

// Statement executed statement with its bound arguments
type Statement struct {
	SQL  string
	Args []interface{}
}

// Response answer to the next statement. Err takes precedence over rows.
type Response struct {
	Columns      []string
	Rows         [][]driver.Value
	RowsAffected int64
	Err          error
}

// Recorder collects statements and hands out queued responses in order.
// Statements without a queued response get an empty result.
type Recorder struct {
	mu         sync.Mutex
	statements []Statement
	responses  []Response
	commits    int
	rollbacks  int
}

// Open returns a *sql.DB backed by a new Recorder
func Open() (*sql.DB, *Recorder) {
	rec := &Recorder{}
	return sql.OpenDB(connector{rec: rec}), rec
}

// Respond queues responses for the next statements
func (r *Recorder) Respond(responses ...Response) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, responses...)
}

// Statements returns the executed statements
func (r *Recorder) Statements() []Statement {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Statement(nil), r.statements...)
}

// Last returns the most recent statement
func (r *Recorder) Last() Statement {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statements) == 0 {
		return Statement{}
	}
	return r.statements[len(r.statements)-1]
}

// Commits and Rollbacks count finished transactions
func (r *Recorder) Commits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commits
}

func (r *Recorder) Rollbacks() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rollbacks
}

func (r *Recorder) record(query string, args []driver.NamedValue) Response {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := make([]interface{}, len(args))
	for i, a := range args {
		values[i] = a.Value
	}
	r.statements = append(r.statements, Statement{SQL: query, Args: values})

	if len(r.responses) == 0 {
		return Response{}
	}
	resp := r.responses[0]
	r.responses = r.responses[1:]
	return resp
}

type connector struct {
	rec *Recorder
}

func (c connector) Connect(context.Context) (driver.Conn, error) { return &conn{rec: c.rec}, nil }
func (c connector) Driver() driver.Driver                      { return drv{} }

type drv struct{}

func (drv) Open(string) (driver.Conn, error) { return nil, driver.ErrSkip }

type conn struct {
	rec *Recorder
}

func (c *conn) Prepare(string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (c *conn) Close() error                        { return nil }
func (c *conn) Begin() (driver.Tx, error)           { return &tx{rec: c.rec}, nil }

func (c *conn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return &tx{rec: c.rec}, nil
}

func (c *conn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	resp := c.rec.record(query, args)
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &rows{columns: resp.Columns, values: resp.Rows}, nil
}

func (c *conn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	resp := c.rec.record(query, args)
	if resp.Err != nil {
		return nil, resp.Err
	}
	return driver.RowsAffected(resp.RowsAffected), nil
}

type tx struct {
	rec *Recorder
}

func (t *tx) Commit() error {
	t.rec.mu.Lock()
	defer t.rec.mu.Unlock()
	t.rec.commits++
	return nil
}

func (t *tx) Rollback() error {
	t.rec.mu.Lock()
	defer t.rec.mu.Unlock()
	t.rec.rollbacks++
	return nil
}

type rows struct {
	columns []string
	values  [][]driver.Value
	pos     int
}

func (r *rows) Columns() []string { return r.columns }
func (r *rows) Close() error      { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.pos])
	r.pos++
	return nil
}
