package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/Rana718/dataforge/internal/table"
)

type csvCodec struct{}

func (csvCodec) write(dir, _ string, tables []*table.Table) error {
	for _, t := range tables {
		if err := writeCSV(filepath.Join(dir, t.Name()+".csv"), t); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, t *table.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file for %s: %w", t.Name(), err)
	}
	defer file.Close()

	schema := t.Schema()
	writer := csv.NewWriter(file)
	if err := writer.Write(schema.ColumnNames()); err != nil {
		return err
	}

	record := make([]string, len(schema.Columns))
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		for j, col := range schema.Columns {
			record[j] = table.Format(col.Kind, row[j])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", t.Name(), i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}

func (csvCodec) read(dir, _ string, schemas []table.Schema) ([]*table.Table, error) {
	out := make([]*table.Table, 0, len(schemas))
	for _, schema := range schemas {
		t, err := readCSV(filepath.Join(dir, schema.Name+".csv"), schema)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func readCSV(path string, schema table.Schema) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, missing(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(schema.Columns)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	if !slices.Equal(header, schema.ColumnNames()) {
		return nil, fmt.Errorf("%s: header %v does not match table %s", path, header, schema.Name)
	}

	b := table.NewBuilder(schema)
	values := make([]any, len(schema.Columns))
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for i, col := range schema.Columns {
			v, err := table.Parse(col.Kind, record[i])
			if err != nil {
				return nil, fmt.Errorf("%s line %d column %s: %w", path, line, col.Name, err)
			}
			values[i] = v
		}
		b.Add(values...)
	}
	return b.Build()
}
