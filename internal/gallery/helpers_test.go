package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/backmassage/gallerytree/internal/catalog"
)

// recordingLogger captures formatted lines per level.
type recordingLogger struct {
	mu    sync.Mutex
	lines map[string][]string
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{lines: make(map[string][]string)}
}

func (r *recordingLogger) add(level, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[level] = append(r.lines[level], fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Info(f string, a ...interface{})    { r.add("INFO", f, a...) }
func (r *recordingLogger) Success(f string, a ...interface{}) { r.add("SUCCESS", f, a...) }
func (r *recordingLogger) Warn(f string, a ...interface{})    { r.add("WARN", f, a...) }
func (r *recordingLogger) Error(f string, a ...interface{})   { r.add("ERROR", f, a...) }
func (r *recordingLogger) Debug(f string, a ...interface{})   { r.add("DEBUG", f, a...) }

func (r *recordingLogger) contains(level, substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines[level] {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

// registry builds categories from (id, name, parent) triples.
func registry(entries ...catalog.Category) catalog.Categories {
	cs := make(catalog.Categories, len(entries))
	for i := range entries {
		c := entries[i]
		cs[c.ID] = &c
	}
	return cs
}

func cat(id int, name string, parent int) catalog.Category {
	return catalog.Category{ID: id, Name: name, ParentID: parent}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

// listTree returns every path under root, relative and slash-separated.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if rel != "." {
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	return out
}
