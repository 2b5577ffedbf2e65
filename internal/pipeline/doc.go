// Package pipeline orchestrates a migration run: load the category dump,
// resolve the forest, materialize the directory tree, load the images with
// their assignments, copy each image into its category directory, and
// report the batch summary.
//
// Files:
//   - runner.go: Run, batch header and summary logging.
//   - discover.go: Discover and FindOrphans over the export's upload tree.
//   - stats.go: RunStats.
package pipeline
