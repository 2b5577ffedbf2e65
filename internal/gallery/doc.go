// Package gallery rebuilds the category hierarchy from the flat registry
// and materializes it on disk.
//
// BuildForest attaches every category under its parent with a fixed-point
// pass loop, since exports do not list parents before children. Index wraps
// the forest with the sanitized directory name of every category and
// performs the filesystem work: creating the directory tree and copying
// each image into the directory of its category.
package gallery
