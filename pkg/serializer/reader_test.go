package serializer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"body.json", FormatJSON},
		{"body.JSON", FormatJSON},
		{"body.yaml", FormatYAML},
		{"body.yml", FormatYAML},
		{"out.table", FormatTable},
		{"out.txt", FormatTable},
		{"body", FormatJSON},
		{"body.xml", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"table", FormatTable, true},
		{"unknown", Format("xml"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(tt.format, strings.NewReader("{}"))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewReader() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReader_Deserialize(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		r, err := NewReader(FormatJSON, strings.NewReader(`{"id": 5, "status": "paid"}`))
		if err != nil {
			t.Fatal(err)
		}
		var got testRecord
		if err := r.Deserialize(&got); err != nil {
			t.Fatalf("Deserialize failed: %v", err)
		}
		if got.ID != 5 || got.Status != "paid" {
			t.Errorf("unexpected data: %+v", got)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		r, err := NewReader(FormatYAML, strings.NewReader("id: 6\nstatus: ready\n"))
		if err != nil {
			t.Fatal(err)
		}
		var got testRecord
		if err := r.Deserialize(&got); err != nil {
			t.Fatalf("Deserialize failed: %v", err)
		}
		if got.ID != 6 || got.Status != "ready" {
			t.Errorf("unexpected data: %+v", got)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		r, err := NewReader(FormatJSON, strings.NewReader(`{"id":`))
		if err != nil {
			t.Fatal(err)
		}
		var got testRecord
		if err := r.Deserialize(&got); err == nil {
			t.Error("expected decode error")
		}
	})

	t.Run("nil reader", func(t *testing.T) {
		var r *Reader
		if err := r.Deserialize(&testRecord{}); err == nil {
			t.Error("expected error for nil reader")
		}
		if err := r.Close(); err != nil {
			t.Errorf("Close on nil reader failed: %v", err)
		}
	})

	t.Run("nil input", func(t *testing.T) {
		r, err := NewReader(FormatJSON, nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := r.Deserialize(&testRecord{}); err == nil {
			t.Error("expected error for nil input")
		}
	})
}

func TestNewFileReader(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewFileReader(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := NewFileReader(filepath.Join(dir, "out.table")); err == nil {
		t.Error("expected error for table format")
	}
}

func TestJSONFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.yaml")
	body := "table_number: 4\nitems:\n  - dish_id: 1\n    quantity: 2\n    price: 150\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	data, err := JSONFromFile(path)
	if err != nil {
		t.Fatalf("JSONFromFile failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["table_number"] != float64(4) {
		t.Errorf("table_number = %v", got["table_number"])
	}
	items, ok := got["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("items = %#v", got["items"])
	}
}
