package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// The curated artifact keeps every column as an optional UTF8 string so
// that a read-back reproduces the staged table cell for cell. Empty
// cells are written as real parquet nulls.

// WriteParquet persists the Dataset as a snappy-compressed parquet file.
func WriteParquet(ds *Dataset, path string) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	schema := buildSchema(ds.Columns)

	// parquet groups order their fields by name, so cell values must be
	// emitted in the schema's leaf order, not the Dataset's column order.
	colIdx := make([]int, len(schema.Fields()))
	for i, field := range schema.Fields() {
		colIdx[i] = ds.ColumnIndex(field.Name())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[any](f, schema, parquet.Compression(&parquet.Snappy))

	rows := make([]parquet.Row, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		prow := make(parquet.Row, len(colIdx))
		for leaf, src := range colIdx {
			cell := ""
			if src >= 0 && src < len(row) {
				cell = row[src]
			}
			if cell == "" {
				prow[leaf] = parquet.ValueOf(nil).Level(0, 0, leaf)
			} else {
				prow[leaf] = parquet.ByteArrayValue([]byte(cell)).Level(0, 1, leaf)
			}
		}
		rows = append(rows, prow)
	}

	if _, err := w.WriteRows(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}

// ReadParquet loads a curated artifact back into a Dataset. Columns come
// back in the parquet schema's order (sorted by name).
func ReadParquet(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}

	fields := pf.Schema().Fields()
	cols := make([]string, len(fields))
	for i, field := range fields {
		cols[i] = field.Name()
	}

	ds := &Dataset{Columns: cols}
	buf := make([]parquet.Row, 128)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, prow := range buf[:n] {
				row := make([]string, len(cols))
				for _, v := range prow {
					if !v.IsNull() {
						row[v.Column()] = string(v.ByteArray())
					}
				}
				ds.Rows = append(ds.Rows, row)
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("read parquet rows: %w", err)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func buildSchema(columns []string) *parquet.Schema {
	group := parquet.Group{}
	for _, col := range columns {
		group[col] = parquet.Optional(parquet.String())
	}
	return parquet.NewSchema("curated", group)
}
