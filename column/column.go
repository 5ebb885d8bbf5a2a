package column

import (
	"fmt"

	"github.com/hupe1980/colgo/array"
	"github.com/hupe1980/colgo/dtype"
)

// Column is an ordered sequence of chunks that together form one named
// logical column. A column may hold zero chunks; its total length is the sum
// of its chunk lengths. Columns are immutable after construction.
type Column struct {
	name   string
	typ    dtype.Type
	chunks []*array.Chunk
}

// New assembles a column from chunks under the given name and declared
// element type. Every chunk must carry exactly that type.
func New(name string, typ dtype.Type, chunks ...*array.Chunk) (*Column, error) {
	if !typ.IsNumeric() {
		return nil, fmt.Errorf("column: %s has no fixed native width", typ)
	}
	for i, c := range chunks {
		if c.Type() != typ {
			return nil, fmt.Errorf("column %q: chunk %d is %s, want %s", name, i, c.Type(), typ)
		}
	}
	return &Column{name: name, typ: typ, chunks: chunks}, nil
}

// FromChunks assembles a column whose type is taken from the first chunk.
// At least one chunk is required; use New for columns with zero chunks.
func FromChunks(name string, chunks ...*array.Chunk) (*Column, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("column %q: no chunks to infer a type from", name)
	}
	return New(name, chunks[0].Type(), chunks...)
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the declared element type shared by all chunks.
func (c *Column) Type() dtype.Type { return c.typ }

// NumChunks returns the number of chunks.
func (c *Column) NumChunks() int { return len(c.chunks) }

// Chunk returns the i-th chunk.
func (c *Column) Chunk(i int) *array.Chunk { return c.chunks[i] }

// Chunks returns the chunks in order. The returned slice must be treated as
// read-only.
func (c *Column) Chunks() []*array.Chunk { return c.chunks }

// Len returns the total logical length across all chunks.
func (c *Column) Len() int {
	n := 0
	for _, ch := range c.chunks {
		n += ch.Len()
	}
	return n
}

// Nulls returns the total number of null elements across all chunks.
func (c *Column) Nulls() int {
	n := 0
	for _, ch := range c.chunks {
		n += ch.Nulls()
	}
	return n
}

// Resolve maps a column-wide row index to (chunk index, local index).
func (c *Column) Resolve(row int) (chunk, local int, err error) {
	if row < 0 {
		return 0, 0, fmt.Errorf("column %q: negative row %d", c.name, row)
	}
	remaining := row
	for i, ch := range c.chunks {
		if remaining < ch.Len() {
			return i, remaining, nil
		}
		remaining -= ch.Len()
	}
	return 0, 0, fmt.Errorf("column %q: row %d out of range (%d rows)", c.name, row, c.Len())
}

// IsNull reports whether the element at the column-wide row index is null.
func (c *Column) IsNull(row int) bool {
	i, local, err := c.Resolve(row)
	if err != nil {
		panic(err)
	}
	return c.chunks[i].IsNull(local)
}
