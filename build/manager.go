// Package build manages compiled artifacts: output path layout, atomic
// writes, and a sqlite index of everything written.
package build

import (
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS artifacts (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	target      TEXT NOT NULL,
	path        TEXT NOT NULL,
	source_size INTEGER NOT NULL,
	output_size INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
`

type Artifact struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Target     string    `json:"target"`
	Path       string    `json:"path"`
	SourceSize int       `json:"source_size"`
	OutputSize int       `json:"output_size"`
	CreatedAt  time.Time `json:"created_at"`
}

type Manager struct {
	dir string
	db  *sql.DB
	log *zap.Logger
}

// Open ensures the build directory structure exists and opens the artifact
// index.
func Open(dir string, log *zap.Logger) (*Manager, error) {
	for _, sub := range []string{"obj", "bin", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("cannot create the build directory %s: %w", filepath.Join(dir, sub), err)
		}
	}
	db, err := sql.Open("sqlite3", filepath.Join(dir, "build.db"))
	if err != nil {
		return nil, fmt.Errorf("cannot open the artifact index: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot initialize the artifact index: %w", err)
	}
	return &Manager{
		dir: dir,
		db:  db,
		log: log,
	}, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

// OutputPath returns the path a compiled file for the given source and
// target is written to. The source path is hashed into the file name to
// avoid collisions between same-named sources in different directories.
func (m *Manager) OutputPath(source, target, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	sum := md5.Sum([]byte(source))
	hash := hex.EncodeToString(sum[:])[:8]
	return filepath.Join(m.dir, "obj", target, fmt.Sprintf("%s_%s.%s", stem, hash, ext))
}

// WriteArtifact writes generated text for source and records it in the
// index. The write goes through a temporary file and a rename, so a failure
// never leaves a partial output file behind.
func (m *Manager) WriteArtifact(source, target, ext string, text string, sourceSize int) (*Artifact, error) {
	path := m.OutputPath(source, target, ext)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".ailang-*")
	if err != nil {
		return nil, err
	}
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}

	a := &Artifact{
		ID:         uuid.NewString(),
		Source:     source,
		Target:     target,
		Path:       path,
		SourceSize: sourceSize,
		OutputSize: len(text),
		CreatedAt:  time.Now().UTC(),
	}
	_, err = m.db.Exec(
		`INSERT INTO artifacts (id, source, target, path, source_size, output_size, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Source, a.Target, a.Path, a.SourceSize, a.OutputSize, a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot record the artifact: %w", err)
	}
	m.log.Info("wrote artifact",
		zap.String("source", a.Source),
		zap.String("target", a.Target),
		zap.String("path", a.Path),
		zap.Int("output_size", a.OutputSize),
	)
	return a, nil
}

// Artifacts lists recorded artifacts, newest first. target filters when
// non-empty.
func (m *Manager) Artifacts(target string) ([]*Artifact, error) {
	query := `SELECT id, source, target, path, source_size, output_size, created_at FROM artifacts`
	var args []interface{}
	if target != "" {
		query += ` WHERE target = ?`
		args = append(args, target)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []*Artifact
	for rows.Next() {
		a := &Artifact{}
		err := rows.Scan(&a.ID, &a.Source, &a.Target, &a.Path, &a.SourceSize, &a.OutputSize, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

// Clean removes compiled files and their index rows. target limits the
// sweep to one target's output directory; empty removes everything.
func (m *Manager) Clean(target string) error {
	if target != "" {
		if err := os.RemoveAll(filepath.Join(m.dir, "obj", target)); err != nil {
			return err
		}
		_, err := m.db.Exec(`DELETE FROM artifacts WHERE target = ?`, target)
		return err
	}
	for _, sub := range []string{"obj", "bin", "logs"} {
		if err := os.RemoveAll(filepath.Join(m.dir, sub)); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Join(m.dir, sub), 0755); err != nil {
			return err
		}
	}
	_, err := m.db.Exec(`DELETE FROM artifacts`)
	return err
}
