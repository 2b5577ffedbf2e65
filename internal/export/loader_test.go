package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const categoriesDump = `[
{"type":"header","version":"5.2.1","comment":"Export to JSON plugin for PHPMyAdmin"},
{"type":"database","name":"piwigo"},
{"type":"table","name":"piwigo_categories","database":"piwigo","data":
[
{"id":"1","name":"Trips","id_uppercat":null},
{"id":"2","name":"2023","id_uppercat":"1"}
]
}
]`

func TestReadTable(t *testing.T) {
	tbl, err := ReadTable(strings.NewReader(categoriesDump))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if tbl.Name != "piwigo_categories" {
		t.Errorf("Name = %q", tbl.Name)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(tbl.Rows))
	}
	id, err := tbl.Rows[1].Int("id")
	if err != nil || id != 2 {
		t.Errorf("Rows[1].Int(id) = (%d, %v)", id, err)
	}
	name, err := tbl.Rows[0].String("name")
	if err != nil || name != "Trips" {
		t.Errorf("Rows[0].String(name) = (%q, %v)", name, err)
	}
}

func TestReadTable_NoTableSection(t *testing.T) {
	_, err := ReadTable(strings.NewReader(`[{"type":"header"},{"type":"database","name":"x"}]`))
	if !errors.Is(err, ErrTableNotFound) {
		t.Errorf("err = %v, want ErrTableNotFound", err)
	}
}

func TestReadTable_EmptyTable(t *testing.T) {
	tbl, err := ReadTable(strings.NewReader(`[{"type":"table","name":"t"}]`))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if tbl.Rows == nil || len(tbl.Rows) != 0 {
		t.Errorf("Rows = %#v, want empty non-nil", tbl.Rows)
	}
}

func TestReadTable_Malformed(t *testing.T) {
	if _, err := ReadTable(strings.NewReader(`{"type":"table"`)); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoadTable_WrapsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadTable(path)
	if !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("err = %v, want ErrTableNotFound", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name %s", err, path)
	}

	if _, err := LoadTable(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
}

func TestRecord_OptionalInt(t *testing.T) {
	tbl, err := ReadTable(strings.NewReader(`[{"type":"table","data":[
		{"a":"7","b":7,"c":null,"d":"","e":"x","f":true}
	]}]`))
	if err != nil {
		t.Fatal(err)
	}
	r := tbl.Rows[0]

	tests := []struct {
		key     string
		want    int
		wantOK  bool
		wantErr bool
	}{
		{"a", 7, true, false},
		{"b", 7, true, false},
		{"c", 0, false, false},
		{"d", 0, false, false},
		{"missing", 0, false, false},
		{"e", 0, false, true},
		{"f", 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			n, ok, err := r.OptionalInt(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if n != tt.want || ok != tt.wantOK {
				t.Errorf("OptionalInt(%q) = (%d, %v), want (%d, %v)", tt.key, n, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRecord_RequiredFields(t *testing.T) {
	r := Record{"name": nil}
	_, err := r.Int("id")
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("Int(missing) err = %v", err)
	}
	_, err = r.String("name")
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "name" {
		t.Errorf("String(null) err = %v", err)
	}
}
