// Package storage persists simulation runs under a data directory: run
// metadata in a SQLite index, trajectory samples in one CSV file per run.
package storage

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/san-kum/gravsim/internal/world"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	scheme      TEXT NOT NULL,
	dt          REAL NOT NULL,
	duration    REAL NOT NULL,
	bodies      INTEGER NOT NULL,
	rest_frame  INTEGER NOT NULL,
	created_at  INTEGER NOT NULL,
	gms         TEXT NOT NULL,
	metrics     TEXT NOT NULL
);
`

// ErrNotFound indicates an unknown run id.
var ErrNotFound = errors.New("storage: run not found")

// RunMeta describes one saved run.
type RunMeta struct {
	ID        string             `json:"id"`
	Scheme    string             `json:"scheme"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Bodies    int                `json:"bodies"`
	RestFrame int                `json:"rest_frame"`
	CreatedAt time.Time          `json:"created_at"`
	GMs       []float64          `json:"gms"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Store is a run archive rooted at a directory. The SQLite index lives in
// runs.db; each run's frames live in <id>.csv alongside it.
type Store struct {
	dir string
	db  *sql.DB
}

// Open creates the data directory if needed, opens the index database, and
// bootstraps the schema.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	dsn := filepath.Join(dir, "runs.db") + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open index: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create schema: %w", err)
	}

	return &Store{dir: dir, db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save archives a run and returns its id.
func (s *Store) Save(scheme string, dt, duration float64, restFrame int, result *sim.Result) (string, error) {
	id := fmt.Sprintf("%s_%d", scheme, time.Now().UnixNano())

	bodies := 0
	var gms []float64
	if len(result.Frames) > 0 {
		bodies = len(result.Frames[0].Bodies)
		for _, b := range result.Frames[0].Bodies {
			gms = append(gms, b.GM)
		}
	}

	gmsJSON, err := json.Marshal(gms)
	if err != nil {
		return "", err
	}
	metricsJSON, err := json.Marshal(result.Metrics)
	if err != nil {
		return "", err
	}

	if err := s.writeFrames(id, result.Frames); err != nil {
		return "", err
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (id, scheme, dt, duration, bodies, rest_frame, created_at, gms, metrics)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, scheme, dt, duration, bodies, restFrame, time.Now().UnixMilli(), string(gmsJSON), string(metricsJSON),
	)
	if err != nil {
		os.Remove(s.framesPath(id))
		return "", fmt.Errorf("storage: index run: %w", err)
	}

	return id, nil
}

// List returns all runs, newest first.
func (s *Store) List() ([]RunMeta, error) {
	rows, err := s.db.Query(
		`SELECT id, scheme, dt, duration, bodies, rest_frame, created_at, gms, metrics
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("storage: list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunMeta
	for rows.Next() {
		meta, err := scanMeta(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, meta)
	}
	return runs, rows.Err()
}

// Load returns one run's metadata.
func (s *Store) Load(id string) (*RunMeta, error) {
	row := s.db.QueryRow(
		`SELECT id, scheme, dt, duration, bodies, rest_frame, created_at, gms, metrics
		 FROM runs WHERE id = ?`, id)

	meta, err := scanMeta(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads a run's trajectory back, reattaching the stored Gm
// values to each body.
func (s *Store) LoadFrames(id string) ([]sim.Frame, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.framesPath(id))
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	if _, err := cr.Read(); err != nil { // header
		return nil, fmt.Errorf("storage: frames header: %w", err)
	}

	var frames []sim.Frame
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("storage: read frames: %w", err)
		}

		fields := make([]float64, len(record))
		for i, v := range record {
			fields[i], err = strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: frame field %d: %w", i, err)
			}
		}

		frame := sim.Frame{Time: fields[0]}
		for b := 0; b < meta.Bodies; b++ {
			off := 1 + b*6
			gm := 0.0
			if b < len(meta.GMs) {
				gm = meta.GMs[b]
			}
			frame.Bodies = append(frame.Bodies, world.NewBody(
				vec.New(fields[off], fields[off+1], fields[off+2]),
				vec.New(fields[off+3], fields[off+4], fields[off+5]),
				gm,
			))
		}
		frames = append(frames, frame)
	}

	return frames, nil
}

// Delete removes a run from the index and its frame file.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("storage: delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return os.Remove(s.framesPath(id))
}

func (s *Store) framesPath(id string) string {
	return filepath.Join(s.dir, id+".csv")
}

func (s *Store) writeFrames(id string, frames []sim.Frame) error {
	f, err := os.Create(s.framesPath(id))
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"time"}
	bodies := 0
	if len(frames) > 0 {
		bodies = len(frames[0].Bodies)
	}
	for i := 0; i < bodies; i++ {
		prefix := fmt.Sprintf("b%d_", i)
		header = append(header,
			prefix+"pos_x", prefix+"pos_y", prefix+"pos_z",
			prefix+"vel_x", prefix+"vel_y", prefix+"vel_z")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, frame := range frames {
		row := make([]string, 0, 1+bodies*6)
		row = append(row, formatFloat(frame.Time))
		for _, b := range frame.Bodies {
			for i := 0; i < 3; i++ {
				row = append(row, formatFloat(b.Pos[i]))
			}
			for i := 0; i < 3; i++ {
				row = append(row, formatFloat(b.Vel[i]))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMeta(row scanner) (RunMeta, error) {
	var meta RunMeta
	var createdAt int64
	var gmsJSON, metricsJSON string

	err := row.Scan(&meta.ID, &meta.Scheme, &meta.Dt, &meta.Duration, &meta.Bodies,
		&meta.RestFrame, &createdAt, &gmsJSON, &metricsJSON)
	if err != nil {
		return meta, err
	}

	meta.CreatedAt = time.UnixMilli(createdAt).UTC()
	if err := json.Unmarshal([]byte(gmsJSON), &meta.GMs); err != nil {
		return meta, fmt.Errorf("storage: decode gms: %w", err)
	}
	if err := json.Unmarshal([]byte(metricsJSON), &meta.Metrics); err != nil {
		return meta, fmt.Errorf("storage: decode metrics: %w", err)
	}
	return meta, nil
}
