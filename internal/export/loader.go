package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// ErrTableNotFound is returned when a dump has no "table" section.
var ErrTableNotFound = errors.New("table data not found in JSON export")

// Table is the row data of one exported table.
type Table struct {
	Name string
	Rows []Record
}

type section struct {
	Type string   `json:"type"`
	Name string   `json:"name"`
	Data []Record `json:"data"`
}

// LoadTable opens path and reads its table section.
func LoadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	t, err := ReadTable(bufio.NewReader(f))
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadTable decodes a dump from r and returns the first table section.
// Numbers are kept as json.Number so large ids survive intact.
func ReadTable(r io.Reader) (Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var sections []section
	if err := dec.Decode(&sections); err != nil {
		return Table{}, fmt.Errorf("decode export: %w", err)
	}
	for _, s := range sections {
		if s.Type != "table" {
			continue
		}
		if s.Data == nil {
			s.Data = []Record{}
		}
		return Table{Name: s.Name, Rows: s.Data}, nil
	}
	return Table{}, ErrTableNotFound
}
