package colgo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/colgo/blobstore"
	"github.com/hupe1980/colgo/column"
	"github.com/hupe1980/colgo/persistence"
)

// Dataset persists tables as column files in a BlobStore, tracked by a
// JSON manifest whose name the CURRENT pointer blob holds. Stores with
// stronger commit semantics (e.g. the DynamoDB commit store) make the
// pointer swap atomic across writers.
type Dataset struct {
	store  blobstore.BlobStore
	logger *Logger
}

// NewDataset creates a dataset over the given store.
func NewDataset(store blobstore.BlobStore, optFns ...Option) *Dataset {
	opts := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Dataset{store: store, logger: opts.logger}
}

// Save writes the table as one column file plus a new manifest, then
// swings the CURRENT pointer to it.
func (d *Dataset) Save(ctx context.Context, t *Table, opts persistence.WriteOptions) error {
	m, err := d.loadManifest(ctx)
	if err != nil {
		return err
	}
	m.ID++

	fileName := fmt.Sprintf("data-%06d.col", m.ID)

	w, err := d.store.Create(ctx, fileName)
	if err != nil {
		return err
	}
	if err := persistence.WriteColumns(w, t.cols, opts); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	m.Rows = uint64(t.NumRows())
	m.Schema = m.Schema[:0]
	for _, f := range t.Schema() {
		m.Schema = append(m.Schema, persistence.ColumnInfo{Name: f.Name, Type: f.Type})
	}
	m.Files = []persistence.FileInfo{{Path: fileName, Rows: uint64(t.NumRows())}}

	manifestName := fmt.Sprintf("%s-%06d.json", persistence.ManifestFileName, m.ID)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := d.store.Put(ctx, manifestName, data); err != nil {
		return err
	}

	if err := d.store.Put(ctx, persistence.CurrentFileName, []byte(manifestName)); err != nil {
		return err
	}

	d.logger.LogDatasetSave(ctx, fileName, t.NumRows())
	return nil
}

// Load reads the current manifest and reassembles the table.
func (d *Dataset) Load(ctx context.Context, optFns ...Option) (*Table, error) {
	m, err := d.loadManifest(ctx)
	if err != nil {
		return nil, err
	}
	if len(m.Files) == 0 {
		return nil, ErrEmptyTable
	}

	var cols []*column.Column
	for _, f := range m.Files {
		fileCols, err := d.readColumnFile(ctx, f.Path)
		if err != nil {
			return nil, fmt.Errorf("column file %q: %w", f.Path, err)
		}
		cols = append(cols, fileCols...)
	}
	return NewTable(cols, optFns...)
}

// Manifest returns the current dataset manifest.
func (d *Dataset) Manifest(ctx context.Context) (*persistence.Manifest, error) {
	return d.loadManifest(ctx)
}

func (d *Dataset) loadManifest(ctx context.Context) (*persistence.Manifest, error) {
	blob, err := d.store.Open(ctx, persistence.CurrentFileName)
	if err != nil {
		if err == blobstore.ErrNotFound {
			return &persistence.Manifest{Version: persistence.ManifestVersion}, nil
		}
		return nil, err
	}
	defer blob.Close()

	nameBytes, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		return nil, err
	}

	mblob, err := d.store.Open(ctx, string(nameBytes))
	if err != nil {
		return nil, err
	}
	defer mblob.Close()

	data, err := blobstore.ReadAll(ctx, mblob)
	if err != nil {
		return nil, err
	}

	var m persistence.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Version != persistence.ManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version: %d", m.Version)
	}
	return &m, nil
}

func (d *Dataset) readColumnFile(ctx context.Context, name string) ([]*column.Column, error) {
	blob, err := d.store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		return nil, err
	}
	return persistence.ReadColumns(bytes.NewReader(data))
}
