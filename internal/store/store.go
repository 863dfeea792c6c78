package store

import (
	"context"
	"errors"

	"github.com/emrgen/sitepress/internal/model"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a requested row does not exist in the
	// requested state.
	ErrNotFound = errors.New("record not found")
)

type Store interface {
	SiteStore
	FolderStore
	PageStore
	LayerStore
	CollectionStore
	FieldStore
	ItemStore
	ValueStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type SiteStore interface {
	// CreateSite creates a new site.
	CreateSite(ctx context.Context, site *model.Site) error
	// GetSite retrieves a site by ID.
	GetSite(ctx context.Context, id uuid.UUID) (*model.Site, error)
	// ListSites retrieves all sites.
	ListSites(ctx context.Context) ([]*model.Site, error)
}

type FolderStore interface {
	// CreateFolder creates a single folder row.
	CreateFolder(ctx context.Context, folder *model.Folder) error
	// CreateFolders creates a batch of folder rows in one round trip.
	CreateFolders(ctx context.Context, folders []*model.Folder) error
	// ListFolders retrieves the live folders of a site in one state.
	ListFolders(ctx context.Context, siteID uuid.UUID, published bool) ([]*model.Folder, error)
	// ListDeletedFolders retrieves the soft deleted draft folders of a site.
	ListDeletedFolders(ctx context.Context, siteID uuid.UUID) ([]*model.Folder, error)
	// UpdateFolder overwrites the payload columns of an existing folder row.
	UpdateFolder(ctx context.Context, folder *model.Folder) error
	// DeleteFolder soft deletes a draft folder.
	DeleteFolder(ctx context.Context, id uuid.UUID) error
	// EraseFoldersByLinkKey hard deletes both state rows of the given link keys.
	EraseFoldersByLinkKey(ctx context.Context, linkKeys []string) error
}

type PageStore interface {
	// CreatePage creates a single page row.
	CreatePage(ctx context.Context, page *model.Page) error
	// CreatePages creates a batch of page rows in one round trip.
	CreatePages(ctx context.Context, pages []*model.Page) error
	// ListPages retrieves the live pages of a site in one state.
	ListPages(ctx context.Context, siteID uuid.UUID, published bool) ([]*model.Page, error)
	// ListDeletedPages retrieves the soft deleted draft pages of a site.
	ListDeletedPages(ctx context.Context, siteID uuid.UUID) ([]*model.Page, error)
	// UpdatePage overwrites the payload columns of an existing page row.
	UpdatePage(ctx context.Context, page *model.Page) error
	// DeletePage soft deletes a draft page.
	DeletePage(ctx context.Context, id uuid.UUID) error
	// ErasePagesByLinkKey hard deletes both state rows of the given link keys.
	ErasePagesByLinkKey(ctx context.Context, linkKeys []string) error
}

type LayerStore interface {
	// CreateLayer creates a single layer row.
	CreateLayer(ctx context.Context, layer *model.Layer) error
	// CreateLayers creates a batch of layer rows in one round trip.
	CreateLayers(ctx context.Context, layers []*model.Layer) error
	// ListLayers retrieves the live layers of a site in one state.
	ListLayers(ctx context.Context, siteID uuid.UUID, published bool) ([]*model.Layer, error)
	// ListDeletedLayers retrieves the soft deleted draft layers of a site.
	ListDeletedLayers(ctx context.Context, siteID uuid.UUID) ([]*model.Layer, error)
	// UpdateLayer overwrites the payload columns of an existing layer row.
	UpdateLayer(ctx context.Context, layer *model.Layer) error
	// DeleteLayer soft deletes a draft layer.
	DeleteLayer(ctx context.Context, id uuid.UUID) error
	// EraseLayersByLinkKey hard deletes both state rows of the given link keys.
	EraseLayersByLinkKey(ctx context.Context, linkKeys []string) error
}

type CollectionStore interface {
	// CreateCollection creates a new draft collection.
	CreateCollection(ctx context.Context, collection *model.Collection) error
	// GetCollection retrieves a live collection in one state.
	GetCollection(ctx context.Context, id uuid.UUID, published bool) (*model.Collection, error)
	// GetCollectionUnscoped retrieves a draft collection even when it is
	// soft deleted.
	GetCollectionUnscoped(ctx context.Context, id uuid.UUID) (*model.Collection, error)
	// ListCollections retrieves the live collections of a site in one state.
	ListCollections(ctx context.Context, siteID uuid.UUID, published bool) ([]*model.Collection, error)
	// ListDeletedCollections retrieves the soft deleted draft collections of a site.
	ListDeletedCollections(ctx context.Context, siteID uuid.UUID) ([]*model.Collection, error)
	// UpsertCollections writes collection rows, replacing on (id, published).
	UpsertCollections(ctx context.Context, collections []*model.Collection) error
	// DeleteCollection soft deletes a draft collection.
	DeleteCollection(ctx context.Context, id uuid.UUID) error
	// EraseCollections hard deletes both state rows of the given collections
	// together with their whole subtree of fields, items and values.
	EraseCollections(ctx context.Context, ids []string) error
}

type FieldStore interface {
	// CreateField creates a new draft field.
	CreateField(ctx context.Context, field *model.Field) error
	// ListFields retrieves the live fields of a collection in one state.
	ListFields(ctx context.Context, collectionID uuid.UUID, published bool) ([]*model.Field, error)
	// ListDeletedFields retrieves the soft deleted draft fields of a collection.
	ListDeletedFields(ctx context.Context, collectionID uuid.UUID) ([]*model.Field, error)
	// UpsertFields writes field rows, replacing on (id, published).
	UpsertFields(ctx context.Context, fields []*model.Field) error
	// DeleteField soft deletes a draft field.
	DeleteField(ctx context.Context, id uuid.UUID) error
	// EraseFields hard deletes both state rows of the given fields together
	// with all values stored under them.
	EraseFields(ctx context.Context, ids []string) error
}

type ItemStore interface {
	// CreateItem creates a new draft item.
	CreateItem(ctx context.Context, item *model.Item) error
	// ListItems retrieves the live items of a collection in one state.
	ListItems(ctx context.Context, collectionID uuid.UUID, published bool) ([]*model.Item, error)
	// ListItemsFromIDs retrieves live items by IDs in one state.
	ListItemsFromIDs(ctx context.Context, ids []string, published bool) ([]*model.Item, error)
	// ListDeletedItems retrieves the soft deleted draft items of a collection.
	ListDeletedItems(ctx context.Context, collectionID uuid.UUID) ([]*model.Item, error)
	// UpsertItems writes item rows, replacing on (id, published).
	UpsertItems(ctx context.Context, items []*model.Item) error
	// DeleteItem soft deletes a draft item.
	DeleteItem(ctx context.Context, id uuid.UUID) error
	// EraseItems hard deletes both state rows of the given items together
	// with all their values.
	EraseItems(ctx context.Context, ids []string) error
}

type ValueStore interface {
	// CreateValue creates a new draft value.
	CreateValue(ctx context.Context, value *model.Value) error
	// ListValuesByItemIDs retrieves the live values of the given items in one state.
	ListValuesByItemIDs(ctx context.Context, itemIDs []string, published bool) ([]*model.Value, error)
	// ListDeletedValues retrieves the soft deleted draft values of a collection.
	ListDeletedValues(ctx context.Context, collectionID uuid.UUID) ([]*model.Value, error)
	// UpsertValues writes value rows, replacing on (id, published).
	UpsertValues(ctx context.Context, values []*model.Value) error
	// DeleteValue soft deletes a draft value.
	DeleteValue(ctx context.Context, id uuid.UUID) error
	// ErasePublishedValues hard deletes published value rows only. Used to
	// sweep stale values when an item is republished with fewer fields.
	ErasePublishedValues(ctx context.Context, ids []string) error
	// EraseValues hard deletes both state rows of the given values.
	EraseValues(ctx context.Context, ids []string) error
}
