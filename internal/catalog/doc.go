// Package catalog turns exported Piwigo rows into category and image
// entities.
//
//   - Categories: piwigo_categories rows keyed by id (id, name, id_uppercat).
//   - Images: piwigo_images rows (id, file, name, path) joined with the
//     piwigo_image_category assignment rows (image_id, category_id).
//
// Every entity is validated on construction; a bad row fails the whole
// table because nothing built on a partial catalog can be trusted.
package catalog
