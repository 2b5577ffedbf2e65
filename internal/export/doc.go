// Package export reads phpMyAdmin JSON table dumps.
//
// A dump is a JSON array of sections (header, database, table). The single
// section with "type": "table" carries the rows in its "data" array; each
// row is a flat object whose values are usually strings, even for numeric
// columns, with null for SQL NULL.
package export
