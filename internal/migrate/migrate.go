// Package migrate applies embedded SQL migrations on startup.
package migrate

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"cookshelf/migrations"
)

// Up runs all pending migrations from the embedded filesystem. The table
// prefix is substituted into the migration SQL, and the goose version table
// is prefixed as well so environments sharing a database do not collide.
func Up(ctx context.Context, dsn, tablePrefix string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database for migrations: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(prefixFS{inner: migrations.FS, prefix: tablePrefix})
	goose.SetTableName(tablePrefix + "goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// placeholder marks table name positions in the embedded SQL.
const placeholder = "__prefix__"

// prefixFS serves the embedded migration files with the table prefix
// substituted into their contents. Directories and non-SQL files pass
// through untouched.
type prefixFS struct {
	inner  fs.FS
	prefix string
}

func (p prefixFS) Open(name string) (fs.File, error) {
	f, err := p.inner.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() || !strings.HasSuffix(name, ".sql") {
		return f, nil
	}

	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	rendered := strings.ReplaceAll(string(data), placeholder, p.prefix)
	return &memFile{
		Reader: bytes.NewReader([]byte(rendered)),
		name:   path.Base(name),
		size:   int64(len(rendered)),
		info:   info,
	}, nil
}

// memFile is an in-memory fs.File over rendered migration SQL.
type memFile struct {
	*bytes.Reader
	name string
	size int64
	info fs.FileInfo
}

func (f *memFile) Stat() (fs.FileInfo, error) { return memInfo{f: f}, nil }
func (f *memFile) Close() error               { return nil }

type memInfo struct {
	f *memFile
}

func (i memInfo) Name() string       { return i.f.name }
func (i memInfo) Size() int64        { return i.f.size }
func (i memInfo) Mode() fs.FileMode  { return i.f.info.Mode() }
func (i memInfo) ModTime() time.Time { return i.f.info.ModTime() }
func (i memInfo) IsDir() bool        { return false }
func (i memInfo) Sys() interface{}   { return nil }
