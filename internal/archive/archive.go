// Package archive reads and writes portable cube collections: one JSON
// document per line, zstd compressed.
package archive

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/SeamusWaldron/cubestate"
)

// Version is the document format version written by this package.
const Version = 1

// ErrInvalidDocument is returned for lines that fail validation.
var ErrInvalidDocument = errors.New("archive: invalid document")

const schemaURL = "https://github.com/SeamusWaldron/cubestate/document.schema.json"

//go:embed schema/document.schema.json
var documentSchemaJSON string

var documentSchema = jsonschema.MustCompileString(schemaURL, documentSchemaJSON)

// Document is the wire form of one archived cube.
type Document struct {
	Version   int       `json:"version"`
	Name      string    `json:"name,omitempty"`
	State     string    `json:"state"`           // solver string
	Moves     string    `json:"moves,omitempty"` // solution, space separated
	CreatedAt time.Time `json:"created_at"`
}

// Entry is a decoded document.
type Entry struct {
	Name      string
	State     *cubestate.State
	Moves     []cubestate.Move
	CreatedAt time.Time
}

// NewDocument builds the document for a cube and its optional solution.
func NewDocument(name string, s *cubestate.State, moves []cubestate.Move, createdAt time.Time) Document {
	return Document{
		Version:   Version,
		Name:      name,
		State:     s.SolverString(),
		Moves:     cubestate.FormatMoves(moves),
		CreatedAt: createdAt.UTC(),
	}
}

// Writer writes documents through a zstd encoder.
type Writer struct {
	enc *zstd.Encoder
	w   *bufio.Writer
	n   int
}

// NewWriter creates a writer on top of w. Close must be called to flush
// the compressed stream; it does not close w.
func NewWriter(w io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	return &Writer{
		enc: enc,
		w:   bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// Write appends one document.
func (w *Writer) Write(doc Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.n++
	return nil
}

// WriteCube appends the document for a cube and its optional solution.
func (w *Writer) WriteCube(name string, s *cubestate.State, moves []cubestate.Move, createdAt time.Time) error {
	return w.Write(NewDocument(name, s, moves, createdAt))
}

// Count returns the number of documents written.
func (w *Writer) Count() int {
	return w.n
}

// Close flushes buffered documents and ends the compressed stream.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		_ = w.enc.Close()
		return err
	}
	return w.enc.Close()
}

// Read decompresses r and decodes every document. Each line is checked
// against the document schema, then its state and moves are parsed. The
// first bad line fails the whole read.
func Read(r io.Reader) ([]Entry, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()

	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []Entry
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		entry, err := decodeLine(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	return entries, nil
}

func decodeLine(raw []byte) (Entry, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := documentSchema.Validate(v); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	state, err := cubestate.ParseSolverString(doc.State)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	moves, err := cubestate.ParseMoves(doc.Moves)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return Entry{
		Name:      doc.Name,
		State:     state,
		Moves:     moves,
		CreatedAt: doc.CreatedAt,
	}, nil
}
