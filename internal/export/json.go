package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Rana718/dataforge/internal/table"
)

// jsonCodec writes each table as an array of objects whose keys follow the
// schema's column order.
type jsonCodec struct{}

func (jsonCodec) write(dir, _ string, tables []*table.Table) error {
	for _, t := range tables {
		if err := writeJSON(filepath.Join(dir, t.Name()+".json"), t); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, t *table.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file for %s: %w", t.Name(), err)
	}
	defer file.Close()

	schema := t.Schema()
	keys := make([][]byte, len(schema.Columns))
	for i, col := range schema.Columns {
		keys[i], _ = json.Marshal(col.Name)
	}

	w := bufio.NewWriter(file)
	w.WriteString("[")
	for i := 0; i < t.Len(); i++ {
		if i > 0 {
			w.WriteString(",")
		}
		w.WriteString("\n  {")
		row := t.Row(i)
		for j, col := range schema.Columns {
			if j > 0 {
				w.WriteString(", ")
			}
			val, err := marshalValue(col.Kind, row[j])
			if err != nil {
				return fmt.Errorf("%s row %d column %s: %w", t.Name(), i+1, col.Name, err)
			}
			w.Write(keys[j])
			w.WriteString(": ")
			w.Write(val)
		}
		w.WriteString("}")
	}
	if t.Len() > 0 {
		w.WriteString("\n")
	}
	w.WriteString("]\n")

	if err := w.Flush(); err != nil {
		return err
	}
	return file.Close()
}

func marshalValue(kind table.Kind, v any) ([]byte, error) {
	switch kind {
	case table.Date, table.DateTime:
		if v == nil {
			return []byte("null"), nil
		}
		return json.Marshal(table.Format(kind, v))
	default:
		return json.Marshal(v)
	}
}

func (jsonCodec) read(dir, _ string, schemas []table.Schema) ([]*table.Table, error) {
	out := make([]*table.Table, 0, len(schemas))
	for _, schema := range schemas {
		t, err := readJSON(filepath.Join(dir, schema.Name+".json"), schema)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func readJSON(path string, schema table.Schema) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, missing(path, err)
	}
	defer file.Close()

	var records []map[string]json.RawMessage
	if err := json.NewDecoder(bufio.NewReader(file)).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	b := table.NewBuilder(schema)
	values := make([]any, len(schema.Columns))
	for i, rec := range records {
		for j, col := range schema.Columns {
			raw, ok := rec[col.Name]
			if !ok {
				return nil, fmt.Errorf("%s record %d: missing %s", path, i+1, col.Name)
			}
			v, err := unmarshalValue(col.Kind, raw)
			if err != nil {
				return nil, fmt.Errorf("%s record %d column %s: %w", path, i+1, col.Name, err)
			}
			values[j] = v
		}
		b.Add(values...)
	}
	return b.Build()
}

func unmarshalValue(kind table.Kind, raw json.RawMessage) (any, error) {
	if string(raw) == "null" {
		return nil, nil
	}
	switch kind {
	case table.Int:
		var n int64
		err := json.Unmarshal(raw, &n)
		return n, err
	case table.Float:
		var f float64
		err := json.Unmarshal(raw, &f)
		return f, err
	case table.String:
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case table.Date, table.DateTime:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return table.Parse(kind, s)
	}
	return nil, fmt.Errorf("unknown kind %s", kind)
}
