package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ============================================================================
// SOURCES — Where posts come from
// ============================================================================

// Source yields the raw posts of a dataset.
type Source interface {
	Name() string
	Posts(ctx context.Context) ([]Post, error)
}

// ============================================================================
// SQL — SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq) tables
// ============================================================================
// Table layout (snake_case of the CSV header):
//
//	platform, region, content_type, engagement_level, hashtag  TEXT
//	likes, shares, comments, views                             INTEGER
//
// Rows are read in insertion order (rowid / id) so first-seen ordering of
// filter options matches the original CSV.
// ============================================================================

// Supported SQL drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultTable is the table name used when none is configured.
const DefaultTable = "posts"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// OpenDB opens and pings a database for driver.
func OpenDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			return nil, fmt.Errorf("sqlite: empty path")
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverPostgres {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// SQLSource reads posts from a table.
type SQLSource struct {
	DB     *sql.DB
	Driver string
	Table  string
}

func (s SQLSource) table() string {
	if s.Table == "" {
		return DefaultTable
	}
	return s.Table
}

func (s SQLSource) Name() string { return s.Driver + ":" + s.table() }

func (s SQLSource) Posts(ctx context.Context) ([]Post, error) {
	table := s.table()
	if !identRe.MatchString(table) {
		return nil, loadErr(s.Name(), 0, "", fmt.Errorf("%w: invalid table name %q", ErrMalformed, table))
	}
	if s.DB == nil {
		return nil, loadErr(s.Name(), 0, "", ErrSourceNotFound)
	}

	cols, err := s.tableColumns(ctx, table)
	if err != nil {
		return nil, loadErr(s.Name(), 0, "", fmt.Errorf("%w: %v", ErrSourceNotFound, err))
	}
	if _, missing := columnIndex(cols); missing != "" {
		return nil, loadErr(s.Name(), 0, missing, ErrMissingColumn)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s`,
		strings.Join(ColumnKeys(), ", "), table, s.orderBy(cols))
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, loadErr(s.Name(), 0, "", fmt.Errorf("query: %w", err))
	}
	defer rows.Close()

	var posts []Post
	line := 0
	for rows.Next() {
		line++
		var (
			platform, region, contentType, level, hashtag string
			likes, shares, comments, views                int64
		)
		if err := rows.Scan(&platform, &region, &contentType, &level, &hashtag,
			&likes, &shares, &comments, &views); err != nil {
			return nil, loadErr(s.Name(), line, "", fmt.Errorf("%w: %v", ErrInvalidValue, err))
		}
		p := NewPost(platform, region, contentType, level, hashtag, likes, shares, comments, views)
		if ce := checkPost(p); ce != nil {
			return nil, loadErr(s.Name(), line, ce.column, ce.err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, loadErr(s.Name(), line, "", fmt.Errorf("read rows: %w", err))
	}
	if len(posts) == 0 {
		return nil, loadErr(s.Name(), 0, "", ErrNoRows)
	}
	return posts, nil
}

// orderBy keeps insertion order: the id column when present, else
// SQLite's implicit rowid.
func (s SQLSource) orderBy(cols []string) string {
	for _, c := range cols {
		if strings.EqualFold(c, "id") {
			return " ORDER BY id"
		}
	}
	if s.Driver == DriverSQLite {
		return " ORDER BY rowid"
	}
	return ""
}

func (s SQLSource) tableColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %s LIMIT 0`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return rows.Columns()
}

// ============================================================================
// IMPORT — Writes posts into a table (CSV → SQL)
// ============================================================================

// CreateTable creates the posts table if it does not exist.
func CreateTable(ctx context.Context, db *sql.DB, driver, table string) error {
	if !identRe.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}

	id := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == DriverPostgres {
		id = "id SERIAL PRIMARY KEY"
	}
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %[1]s (
		%[2]s,
		platform         TEXT    NOT NULL,
		region           TEXT    NOT NULL,
		content_type     TEXT    NOT NULL,
		engagement_level TEXT    NOT NULL,
		hashtag          TEXT    NOT NULL,
		likes            BIGINT  NOT NULL DEFAULT 0 CHECK (likes >= 0),
		shares           BIGINT  NOT NULL DEFAULT 0 CHECK (shares >= 0),
		comments         BIGINT  NOT NULL DEFAULT 0 CHECK (comments >= 0),
		views            BIGINT  NOT NULL DEFAULT 0 CHECK (views >= 0)
	)`, table, id)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

// InsertPosts inserts posts into table in a single transaction and returns
// the number of rows written.
func InsertPosts(ctx context.Context, db *sql.DB, driver, table string, posts []Post) (n int, err error) {
	if len(posts) == 0 {
		return 0, nil
	}
	if !identRe.MatchString(table) {
		return 0, fmt.Errorf("invalid table name %q", table)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s)`,
		table, strings.Join(ColumnKeys(), ", "), placeholders(driver, len(columns))))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range posts {
		if _, err = stmt.ExecContext(ctx,
			p.Platform, p.Region, p.ContentType, p.EngagementLevel, p.Hashtag,
			p.Likes, p.Shares, p.Comments, p.Views); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(posts), nil
}

func placeholders(driver string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		if driver == DriverPostgres {
			parts[i] = fmt.Sprintf("$%d", i+1)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}
