// Package naming turns free-form gallery category names into directory
// names and tracks which image owns each destination path during a run.
//
// Contents:
//   - Sanitizer / Sanitize: category name to filesystem-safe path segment
//     (ascii, unicode and slug modes).
//   - Claims: first-writer-wins ownership of destination paths.
package naming
