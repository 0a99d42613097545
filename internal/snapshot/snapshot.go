// Package snapshot stores a resolved and type-checked compilation unit on
// disk: the AST, the item table with method resolutions, and the type
// table. Snapshots are what the checker consumes; the front end that
// produces them is a separate tool.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"vischeck/internal/ast"
	"vischeck/internal/source"
	"vischeck/internal/symbols"
	"vischeck/internal/types"
)

// SchemaVersion is bumped whenever the encoded layout changes.
const SchemaVersion uint16 = 1

// Ext is the file extension of snapshot files.
const Ext = ".vsnap"

// ErrSchema is returned for snapshots written with another schema version.
var ErrSchema = errors.New("snapshot schema version mismatch")

// File is a source file referenced by the spans of the unit.
// Files are stored in FileID order.
type File struct {
	Path    string
	Content []byte
}

type Snapshot struct {
	Schema  uint16
	Unit    string
	Files   []File
	AST     *ast.Builder
	Symbols *symbols.Result
	Types   *types.Table
}

// New bundles the parts of a unit into a snapshot of the current schema.
func New(unit string, files []File, b *ast.Builder, syms *symbols.Result, tys *types.Table) *Snapshot {
	return &Snapshot{
		Schema:  SchemaVersion,
		Unit:    unit,
		Files:   files,
		AST:     b,
		Symbols: syms,
		Types:   tys,
	}
}

// Encode writes s to w.
func Encode(w io.Writer, s *Snapshot) error {
	if s == nil {
		return errors.New("nil snapshot")
	}
	enc := msgpack.NewEncoder(w)
	return enc.Encode(s)
}

// Decode reads a snapshot from r and prepares it for checking.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, s.Schema, SchemaVersion)
	}
	if err := s.Prepare(); err != nil {
		return nil, err
	}
	return &s, nil
}

// WriteFile atomically writes s to path.
func WriteFile(path string, s *Snapshot) error {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".vsnap-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после успешного Rename файла уже нет
		_ = os.Remove(tmp)
	}()
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadFile loads and prepares the snapshot at path.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Prepare validates a decoded snapshot, rebuilds lookup indexes and
// normalises identifiers to NFC.
func (s *Snapshot) Prepare() error {
	switch {
	case s.AST == nil || s.AST.Items == nil || s.AST.Stmts == nil || s.AST.Exprs == nil || s.AST.Pats == nil:
		return errors.New("snapshot has no AST")
	case s.Symbols == nil || s.Symbols.Table == nil:
		return errors.New("snapshot has no item table")
	case s.Types == nil || s.Types.Interner == nil:
		return errors.New("snapshot has no type table")
	}
	root := s.AST.Crate.Root
	if _, ok := s.AST.Items.Module(root); !ok {
		return fmt.Errorf("crate %q: root item %d is not a module", s.AST.Crate.Name, root)
	}
	if s.Symbols.ExprDefs == nil {
		s.Symbols.ExprDefs = make(map[ast.ExprID]symbols.DefID)
	}
	if s.Symbols.PatDefs == nil {
		s.Symbols.PatDefs = make(map[ast.PatID]symbols.DefID)
	}
	if s.Types.ExprTypes == nil {
		s.Types.ExprTypes = make(map[ast.ExprID]types.TypeID)
	}
	if s.Types.PatTypes == nil {
		s.Types.PatTypes = make(map[ast.PatID]types.TypeID)
	}
	normalize(s)
	if err := s.Symbols.Table.Reindex(); err != nil {
		return err
	}
	return nil
}

// FileSet rebuilds the source files so FileIDs match the stored spans.
func (s *Snapshot) FileSet() *source.FileSet {
	fs := source.NewFileSet()
	for _, f := range s.Files {
		fs.Add(f.Path, f.Content)
	}
	return fs
}

// LegacyExports reports whether the unit is in legacy-export mode.
func (s *Snapshot) LegacyExports() bool {
	return s.AST.Crate.HasLegacyExports()
}
