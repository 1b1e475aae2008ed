// Package transfer moves sessions between a ledger store and a portable .wclk file.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/balkashynov/workclock/internal/models"
)

const (
	// Extension is the suggested suffix for export files
	Extension = ".wclk"

	formatName    = "workclock"
	formatVersion = 1
)

// ErrUnsupportedFormat means the file is not a workclock export this version understands
var ErrUnsupportedFormat = errors.New("unsupported export file")

// File is the on-disk layout of an export
type File struct {
	Format     string    `yaml:"format"`
	Version    int       `yaml:"version"`
	ExportID   string    `yaml:"export_id"`
	ExportedAt time.Time `yaml:"exported_at"`
	Sessions   []Record  `yaml:"sessions"`
}

// Record is one exported session; IDs are not carried over
type Record struct {
	Start    int64  `yaml:"start"`
	Duration int64  `yaml:"duration"`
	Notes    string `yaml:"notes"`
}

// Source provides every stored session
type Source interface {
	ExportAll(ctx context.Context) ([]models.WorkSession, error)
}

// Sink accepts imported sessions
type Sink interface {
	BulkImport(ctx context.Context, sessions []models.WorkSessionInput, dedup bool) (int, error)
}

// Result summarizes an import
type Result struct {
	Read     int
	Inserted int
	Skipped  int
}

// NewFile wraps sessions in an export envelope stamped with now
func NewFile(sessions []models.WorkSession, now time.Time) File {
	f := File{
		Format:     formatName,
		Version:    formatVersion,
		ExportID:   uuid.NewString(),
		ExportedAt: now.UTC(),
		Sessions:   make([]Record, 0, len(sessions)),
	}
	for _, s := range sessions {
		f.Sessions = append(f.Sessions, Record{Start: s.Start, Duration: s.Duration, Notes: s.Notes})
	}
	return f
}

// Encode writes f as YAML
func Encode(w io.Writer, f File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}

// Decode reads and checks an export
func Decode(r io.Reader) (File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("%w: empty file", ErrUnsupportedFormat)
		}
		return File{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if f.Format != formatName {
		return File{}, fmt.Errorf("%w: format %q", ErrUnsupportedFormat, f.Format)
	}
	if f.Version != formatVersion {
		return File{}, fmt.Errorf("%w: version %d", ErrUnsupportedFormat, f.Version)
	}
	return f, nil
}

// Inputs converts the records to store inputs
func (f File) Inputs() []models.WorkSessionInput {
	out := make([]models.WorkSessionInput, 0, len(f.Sessions))
	for _, r := range f.Sessions {
		out = append(out, models.WorkSessionInput{Start: r.Start, Duration: r.Duration, Notes: r.Notes})
	}
	return out
}

// Export writes every session in src to path atomically and returns how many were written
func Export(ctx context.Context, src Source, path string) (int, error) {
	rows, err := src.ExportAll(ctx)
	if err != nil {
		return 0, err
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	defer pending.Cleanup()

	if err := Encode(pending, NewFile(rows, time.Now())); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return 0, fmt.Errorf("replace export file: %w", err)
	}
	return len(rows), nil
}

// Read loads an export file from path
func Read(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer fh.Close()
	return Decode(fh)
}

// Import reads path and adds its sessions to dst, skipping exact duplicates
func Import(ctx context.Context, dst Sink, path string) (Result, error) {
	f, err := Read(path)
	if err != nil {
		return Result{}, err
	}
	inputs := f.Inputs()
	n, err := dst.BulkImport(ctx, inputs, true)
	res := Result{Read: len(inputs), Inserted: n}
	if err != nil {
		return res, err
	}
	res.Skipped = len(inputs) - n
	return res, nil
}
