package store

import (
	"context"
	"errors"

	"github.com/emrgen/sitepress/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) CreateSite(ctx context.Context, site *model.Site) error {
	return g.db.WithContext(ctx).Create(site).Error
}

func (g *GormStore) GetSite(ctx context.Context, id uuid.UUID) (*model.Site, error) {
	var site model.Site
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&site).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &site, nil
}

func (g *GormStore) ListSites(ctx context.Context) ([]*model.Site, error) {
	var sites []*model.Site
	err := g.db.WithContext(ctx).Find(&sites).Error
	return sites, err
}

func (g *GormStore) CreateFolder(ctx context.Context, folder *model.Folder) error {
	return g.db.WithContext(ctx).Create(folder).Error
}

func (g *GormStore) CreateFolders(ctx context.Context, folders []*model.Folder) error {
	if len(folders) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Create(&folders).Error
}

func (g *GormStore) ListFolders(ctx context.Context, siteID uuid.UUID, published bool) ([]*model.Folder, error) {
	var folders []*model.Folder
	err := g.db.WithContext(ctx).
		Where("site_id = ? AND published = ?", siteID.String(), published).
		Find(&folders).Error
	return folders, err
}

func (g *GormStore) ListDeletedFolders(ctx context.Context, siteID uuid.UUID) ([]*model.Folder, error) {
	var folders []*model.Folder
	err := g.db.WithContext(ctx).Unscoped().
		Where("site_id = ? AND published = ? AND deleted_at IS NOT NULL", siteID.String(), false).
		Find(&folders).Error
	return folders, err
}

func (g *GormStore) UpdateFolder(ctx context.Context, folder *model.Folder) error {
	return g.db.WithContext(ctx).Model(&model.Folder{}).
		Where("id = ? AND published = ?", folder.ID, folder.Published).
		Select("parent_id", "name", "slug", "content_hash").
		Updates(folder).Error
}

func (g *GormStore) DeleteFolder(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).
		Where("id = ? AND published = ?", id.String(), false).
		Delete(&model.Folder{}).Error
}

// EraseFoldersByLinkKey removes both state rows of the given folders and
// everything below them: subfolders, their pages and the layers under those
// pages. The schema has no DB level cascade.
func (g *GormStore) EraseFoldersByLinkKey(ctx context.Context, linkKeys []string) error {
	if len(linkKeys) == 0 {
		return nil
	}
	db := g.db.WithContext(ctx)

	var roots []*model.Folder
	if err := db.Unscoped().Where("link_key IN ?", linkKeys).Find(&roots).Error; err != nil {
		return err
	}

	seen := make(map[string]bool, len(roots))
	folderIDs := make([]string, 0, len(roots))
	for _, folder := range roots {
		seen[folder.ID] = true
		folderIDs = append(folderIDs, folder.ID)
	}

	frontier := folderIDs
	for len(frontier) > 0 {
		var children []*model.Folder
		if err := db.Unscoped().Where("parent_id IN ?", frontier).Find(&children).Error; err != nil {
			return err
		}

		var next []string
		for _, child := range children {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			next = append(next, child.ID)
		}
		folderIDs = append(folderIDs, next...)
		frontier = next
	}

	if len(folderIDs) == 0 {
		return nil
	}

	pages := db.Unscoped().Model(&model.Page{}).Select("id").Where("folder_id IN ?", folderIDs)
	if err := db.Unscoped().Where("page_id IN (?)", pages).Delete(&model.Layer{}).Error; err != nil {
		return err
	}
	if err := db.Unscoped().Where("folder_id IN ?", folderIDs).Delete(&model.Page{}).Error; err != nil {
		return err
	}

	return db.Unscoped().Where("id IN ?", folderIDs).Delete(&model.Folder{}).Error
}

func (g *GormStore) CreatePage(ctx context.Context, page *model.Page) error {
	return g.db.WithContext(ctx).Create(page).Error
}

func (g *GormStore) CreatePages(ctx context.Context, pages []*model.Page) error {
	if len(pages) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Create(&pages).Error
}

func (g *GormStore) ListPages(ctx context.Context, siteID uuid.UUID, published bool) ([]*model.Page, error) {
	var pages []*model.Page
	err := g.db.WithContext(ctx).
		Where("site_id = ? AND published = ?", siteID.String(), published).
		Find(&pages).Error
	return pages, err
}

func (g *GormStore) ListDeletedPages(ctx context.Context, siteID uuid.UUID) ([]*model.Page, error) {
	var pages []*model.Page
	err := g.db.WithContext(ctx).Unscoped().
		Where("site_id = ? AND published = ? AND deleted_at IS NOT NULL", siteID.String(), false).
		Find(&pages).Error
	return pages, err
}

func (g *GormStore) UpdatePage(ctx context.Context, page *model.Page) error {
	return g.db.WithContext(ctx).Model(&model.Page{}).
		Where("id = ? AND published = ?", page.ID, page.Published).
		Select("folder_id", "name", "slug", "meta", "content_hash").
		Updates(page).Error
}

func (g *GormStore) DeletePage(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).
		Where("id = ? AND published = ?", id.String(), false).
		Delete(&model.Page{}).Error
}

// ErasePagesByLinkKey removes both state rows of the given pages together
// with the layers stored under them.
func (g *GormStore) ErasePagesByLinkKey(ctx context.Context, linkKeys []string) error {
	if len(linkKeys) == 0 {
		return nil
	}
	db := g.db.WithContext(ctx)

	pages := db.Unscoped().Model(&model.Page{}).Select("id").Where("link_key IN ?", linkKeys)
	if err := db.Unscoped().Where("page_id IN (?)", pages).Delete(&model.Layer{}).Error; err != nil {
		return err
	}

	return db.Unscoped().Where("link_key IN ?", linkKeys).Delete(&model.Page{}).Error
}

func (g *GormStore) CreateLayer(ctx context.Context, layer *model.Layer) error {
	return g.db.WithContext(ctx).Create(layer).Error
}

func (g *GormStore) CreateLayers(ctx context.Context, layers []*model.Layer) error {
	if len(layers) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Create(&layers).Error
}

func (g *GormStore) ListLayers(ctx context.Context, siteID uuid.UUID, published bool) ([]*model.Layer, error) {
	var layers []*model.Layer
	err := g.db.WithContext(ctx).
		Where("site_id = ? AND published = ?", siteID.String(), published).
		Find(&layers).Error
	return layers, err
}

func (g *GormStore) ListDeletedLayers(ctx context.Context, siteID uuid.UUID) ([]*model.Layer, error) {
	var layers []*model.Layer
	err := g.db.WithContext(ctx).Unscoped().
		Where("site_id = ? AND published = ? AND deleted_at IS NOT NULL", siteID.String(), false).
		Find(&layers).Error
	return layers, err
}

func (g *GormStore) UpdateLayer(ctx context.Context, layer *model.Layer) error {
	return g.db.WithContext(ctx).Model(&model.Layer{}).
		Where("id = ? AND published = ?", layer.ID, layer.Published).
		Select("page_id", "content", "compression", "content_hash").
		Updates(layer).Error
}

func (g *GormStore) DeleteLayer(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).
		Where("id = ? AND published = ?", id.String(), false).
		Delete(&model.Layer{}).Error
}

func (g *GormStore) EraseLayersByLinkKey(ctx context.Context, linkKeys []string) error {
	if len(linkKeys) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Unscoped().
		Where("link_key IN ?", linkKeys).
		Delete(&model.Layer{}).Error
}

func (g *GormStore) CreateCollection(ctx context.Context, collection *model.Collection) error {
	return g.db.WithContext(ctx).Create(collection).Error
}

func (g *GormStore) GetCollection(ctx context.Context, id uuid.UUID, published bool) (*model.Collection, error) {
	var collection model.Collection
	err := g.db.WithContext(ctx).
		Where("id = ? AND published = ?", id.String(), published).
		First(&collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &collection, nil
}

func (g *GormStore) GetCollectionUnscoped(ctx context.Context, id uuid.UUID) (*model.Collection, error) {
	var collection model.Collection
	err := g.db.WithContext(ctx).Unscoped().
		Where("id = ? AND published = ?", id.String(), false).
		First(&collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &collection, nil
}

func (g *GormStore) ListCollections(ctx context.Context, siteID uuid.UUID, published bool) ([]*model.Collection, error) {
	var collections []*model.Collection
	err := g.db.WithContext(ctx).
		Where("site_id = ? AND published = ?", siteID.String(), published).
		Find(&collections).Error
	return collections, err
}

func (g *GormStore) ListDeletedCollections(ctx context.Context, siteID uuid.UUID) ([]*model.Collection, error) {
	var collections []*model.Collection
	err := g.db.WithContext(ctx).Unscoped().
		Where("site_id = ? AND published = ? AND deleted_at IS NOT NULL", siteID.String(), false).
		Find(&collections).Error
	return collections, err
}

func (g *GormStore) UpsertCollections(ctx context.Context, collections []*model.Collection) error {
	if len(collections) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}, {Name: "published"}},
		DoUpdates: clause.AssignmentColumns([]string{"site_id", "name", "slug", "content_hash", "updated_at"}),
	}).Create(&collections).Error
}

func (g *GormStore) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).
		Where("id = ? AND published = ?", id.String(), false).
		Delete(&model.Collection{}).Error
}

// EraseCollections removes the whole subtree of the given collections in both
// states. The order values -> items -> fields -> collections keeps no orphan
// behind when a later statement fails.
func (g *GormStore) EraseCollections(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	db := g.db.WithContext(ctx)

	items := db.Unscoped().Model(&model.Item{}).Select("id").Where("collection_id IN ?", ids)
	if err := db.Unscoped().Where("item_id IN (?)", items).Delete(&model.Value{}).Error; err != nil {
		return err
	}
	if err := db.Unscoped().Where("collection_id IN ?", ids).Delete(&model.Item{}).Error; err != nil {
		return err
	}
	if err := db.Unscoped().Where("collection_id IN ?", ids).Delete(&model.Field{}).Error; err != nil {
		return err
	}

	return db.Unscoped().Where("id IN ?", ids).Delete(&model.Collection{}).Error
}

func (g *GormStore) CreateField(ctx context.Context, field *model.Field) error {
	return g.db.WithContext(ctx).Create(field).Error
}

func (g *GormStore) ListFields(ctx context.Context, collectionID uuid.UUID, published bool) ([]*model.Field, error) {
	var fields []*model.Field
	err := g.db.WithContext(ctx).
		Where("collection_id = ? AND published = ?", collectionID.String(), published).
		Order("position asc").
		Find(&fields).Error
	return fields, err
}

func (g *GormStore) ListDeletedFields(ctx context.Context, collectionID uuid.UUID) ([]*model.Field, error) {
	var fields []*model.Field
	err := g.db.WithContext(ctx).Unscoped().
		Where("collection_id = ? AND published = ? AND deleted_at IS NOT NULL", collectionID.String(), false).
		Find(&fields).Error
	return fields, err
}

func (g *GormStore) UpsertFields(ctx context.Context, fields []*model.Field) error {
	if len(fields) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}, {Name: "published"}},
		DoUpdates: clause.AssignmentColumns([]string{"collection_id", "name", "kind", "position", "content_hash", "updated_at"}),
	}).Create(&fields).Error
}

func (g *GormStore) DeleteField(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).
		Where("id = ? AND published = ?", id.String(), false).
		Delete(&model.Field{}).Error
}

func (g *GormStore) EraseFields(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	db := g.db.WithContext(ctx)
	if err := db.Unscoped().Where("field_id IN ?", ids).Delete(&model.Value{}).Error; err != nil {
		return err
	}

	return db.Unscoped().Where("id IN ?", ids).Delete(&model.Field{}).Error
}

func (g *GormStore) CreateItem(ctx context.Context, item *model.Item) error {
	return g.db.WithContext(ctx).Create(item).Error
}

func (g *GormStore) ListItems(ctx context.Context, collectionID uuid.UUID, published bool) ([]*model.Item, error) {
	var items []*model.Item
	err := g.db.WithContext(ctx).
		Where("collection_id = ? AND published = ?", collectionID.String(), published).
		Order("position asc").
		Find(&items).Error
	return items, err
}

func (g *GormStore) ListItemsFromIDs(ctx context.Context, ids []string, published bool) ([]*model.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []*model.Item
	err := g.db.WithContext(ctx).
		Where("id IN ? AND published = ?", ids, published).
		Find(&items).Error
	return items, err
}

func (g *GormStore) ListDeletedItems(ctx context.Context, collectionID uuid.UUID) ([]*model.Item, error) {
	var items []*model.Item
	err := g.db.WithContext(ctx).Unscoped().
		Where("collection_id = ? AND published = ? AND deleted_at IS NOT NULL", collectionID.String(), false).
		Find(&items).Error
	return items, err
}

func (g *GormStore) UpsertItems(ctx context.Context, items []*model.Item) error {
	if len(items) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}, {Name: "published"}},
		DoUpdates: clause.AssignmentColumns([]string{"collection_id", "slug", "position", "content_hash", "updated_at"}),
	}).Create(&items).Error
}

func (g *GormStore) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).
		Where("id = ? AND published = ?", id.String(), false).
		Delete(&model.Item{}).Error
}

func (g *GormStore) EraseItems(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	db := g.db.WithContext(ctx)
	if err := db.Unscoped().Where("item_id IN ?", ids).Delete(&model.Value{}).Error; err != nil {
		return err
	}

	return db.Unscoped().Where("id IN ?", ids).Delete(&model.Item{}).Error
}

func (g *GormStore) CreateValue(ctx context.Context, value *model.Value) error {
	return g.db.WithContext(ctx).Create(value).Error
}

func (g *GormStore) ListValuesByItemIDs(ctx context.Context, itemIDs []string, published bool) ([]*model.Value, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var values []*model.Value
	err := g.db.WithContext(ctx).
		Where("item_id IN ? AND published = ?", itemIDs, published).
		Find(&values).Error
	return values, err
}

func (g *GormStore) ListDeletedValues(ctx context.Context, collectionID uuid.UUID) ([]*model.Value, error) {
	items := g.db.WithContext(ctx).Unscoped().Model(&model.Item{}).Select("id").
		Where("collection_id = ?", collectionID.String())

	var values []*model.Value
	err := g.db.WithContext(ctx).Unscoped().
		Where("item_id IN (?) AND published = ? AND deleted_at IS NOT NULL", items, false).
		Find(&values).Error
	return values, err
}

func (g *GormStore) UpsertValues(ctx context.Context, values []*model.Value) error {
	if len(values) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}, {Name: "published"}},
		DoUpdates: clause.AssignmentColumns([]string{"item_id", "field_id", "value", "content_hash", "updated_at"}),
	}).Create(&values).Error
}

func (g *GormStore) DeleteValue(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).
		Where("id = ? AND published = ?", id.String(), false).
		Delete(&model.Value{}).Error
}

func (g *GormStore) ErasePublishedValues(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Unscoped().
		Where("id IN ? AND published = ?", ids, true).
		Delete(&model.Value{}).Error
}

func (g *GormStore) EraseValues(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Unscoped().
		Where("id IN ?", ids).
		Delete(&model.Value{}).Error
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
