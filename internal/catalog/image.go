package catalog

import (
	"fmt"
	"path/filepath"

	"github.com/backmassage/gallerytree/internal/export"
	"github.com/backmassage/gallerytree/internal/validate"
)

// Image is one exported picture and the category it is filed under.
type Image struct {
	ID   int    `json:"id" validate:"gt=0"`
	File string `json:"file" validate:"required"`
	Name string `json:"name"`
	// Path is the source location relative to the export root, as recorded
	// by Piwigo (e.g. "./upload/2023/07/14/20230714-abc.jpg").
	Path string `json:"path" validate:"required,relpath"`

	// CategoryID is the category the image is placed under: the last
	// assignment row for the image. Zero when it has none.
	CategoryID int
	// CategoryIDs lists every assignment in export order.
	CategoryIDs []int
}

// Assigned reports whether the image has a category to be placed under.
func (img *Image) Assigned() bool { return img.CategoryID != 0 }

// FileName is the destination file name: the base of File, so a stray
// separator in the export cannot move the copy out of its directory.
func (img *Image) FileName() string {
	return filepath.Base(filepath.FromSlash(img.File))
}

// SourcePath joins the image's recorded path onto exportRoot.
func (img *Image) SourcePath(exportRoot string) string {
	return filepath.Join(exportRoot, filepath.FromSlash(img.Path))
}

func (img *Image) String() string {
	return fmt.Sprintf("image %d (%s)", img.ID, img.File)
}

// Assignments maps an image id to its category ids in export order.
type Assignments map[int][]int

// LoadImages reads the piwigo_images and piwigo_image_category dumps and
// returns the images in export order.
func LoadImages(imagesPath, assignmentsPath string) ([]*Image, error) {
	atbl, err := export.LoadTable(assignmentsPath)
	if err != nil {
		return nil, err
	}
	assignments, err := ParseAssignments(atbl)
	if err != nil {
		return nil, err
	}
	itbl, err := export.LoadTable(imagesPath)
	if err != nil {
		return nil, err
	}
	return ParseImages(itbl, assignments)
}

// ParseAssignments reads image_id/category_id rows.
func ParseAssignments(tbl export.Table) (Assignments, error) {
	as := make(Assignments)
	for i, row := range tbl.Rows {
		imageID, err := row.Int("image_id")
		if err != nil {
			return nil, &RowError{Table: tableName(tbl, "image_category"), Row: i, Err: err}
		}
		categoryID, err := row.Int("category_id")
		if err != nil {
			return nil, &RowError{Table: tableName(tbl, "image_category"), Row: i, Err: err}
		}
		as[imageID] = append(as[imageID], categoryID)
	}
	return as, nil
}

// ParseImages reads image rows and attaches their assignments.
func ParseImages(tbl export.Table, assignments Assignments) ([]*Image, error) {
	images := make([]*Image, 0, len(tbl.Rows))
	seen := make(map[int]bool, len(tbl.Rows))
	for i, row := range tbl.Rows {
		img, err := parseImage(row)
		if err != nil {
			return nil, &RowError{Table: tableName(tbl, "images"), Row: i, Err: err}
		}
		if seen[img.ID] {
			return nil, &RowError{Table: tableName(tbl, "images"), Row: i, Err: fmt.Errorf("%w %d", ErrDuplicateID, img.ID)}
		}
		seen[img.ID] = true

		if ids := assignments[img.ID]; len(ids) > 0 {
			img.CategoryIDs = append([]int(nil), ids...)
			img.CategoryID = ids[len(ids)-1]
		}
		images = append(images, img)
	}
	return images, nil
}

func parseImage(row export.Record) (*Image, error) {
	id, err := row.Int("id")
	if err != nil {
		return nil, err
	}
	file, err := row.String("file")
	if err != nil {
		return nil, err
	}
	path, err := row.String("path")
	if err != nil {
		return nil, err
	}
	// Piwigo leaves name NULL for untitled images.
	name, _ := row.String("name")

	img := &Image{ID: id, File: file, Name: name, Path: path}
	if err := validate.Struct(img); err != nil {
		return nil, err
	}
	return img, nil
}
