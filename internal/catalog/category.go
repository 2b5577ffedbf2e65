package catalog

import (
	"fmt"
	"sort"

	"github.com/backmassage/gallerytree/internal/export"
	"github.com/backmassage/gallerytree/internal/validate"
)

// Category is one node of the gallery taxonomy. ParentID is zero for root
// categories; otherwise it names another category in the same registry.
type Category struct {
	ID       int    `json:"id" validate:"gt=0"`
	Name     string `json:"name"`
	ParentID int    `json:"id_uppercat" validate:"gte=0"`
}

// IsRoot reports whether c has no parent.
func (c *Category) IsRoot() bool { return c.ParentID == 0 }

func (c *Category) String() string {
	return fmt.Sprintf("category %d (%q)", c.ID, c.Name)
}

// Categories is the category registry keyed by id.
type Categories map[int]*Category

// IDs returns every category id in ascending order.
func (cs Categories) IDs() []int {
	ids := make([]int, 0, len(cs))
	for id := range cs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// LoadCategories reads a piwigo_categories dump.
func LoadCategories(path string) (Categories, error) {
	tbl, err := export.LoadTable(path)
	if err != nil {
		return nil, err
	}
	return ParseCategories(tbl)
}

// ParseCategories builds the registry from category rows. Parent ids are not
// checked here; the forest reports references it cannot resolve.
func ParseCategories(tbl export.Table) (Categories, error) {
	cs := make(Categories, len(tbl.Rows))
	for i, row := range tbl.Rows {
		c, err := parseCategory(row)
		if err != nil {
			return nil, &RowError{Table: tableName(tbl, "categories"), Row: i, Err: err}
		}
		if _, dup := cs[c.ID]; dup {
			return nil, &RowError{Table: tableName(tbl, "categories"), Row: i, Err: fmt.Errorf("%w %d", ErrDuplicateID, c.ID)}
		}
		cs[c.ID] = c
	}
	return cs, nil
}

func parseCategory(row export.Record) (*Category, error) {
	id, err := row.Int("id")
	if err != nil {
		return nil, err
	}
	name, err := row.String("name")
	if err != nil {
		return nil, err
	}
	parent, _, err := row.OptionalInt("id_uppercat")
	if err != nil {
		return nil, err
	}
	c := &Category{ID: id, Name: name, ParentID: parent}
	if err := validate.Struct(c); err != nil {
		return nil, err
	}
	return c, nil
}

func tableName(tbl export.Table, fallback string) string {
	if tbl.Name != "" {
		return tbl.Name
	}
	return fallback
}
