package publish

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SweepCollection hard deletes soft deleted draft rows below a collection
// together with their published twins. Best effort: a failure is logged and
// skipped so siblings are still cleaned and the next run retries the rest.
// A soft deleted field removes its values even when the owning items are
// untouched.
func (p *Publisher) SweepCollection(ctx context.Context, collectionID uuid.UUID) {
	fields, err := p.store.ListDeletedFields(ctx, collectionID)
	if err != nil {
		logrus.Errorf("listing deleted fields of collection %s: %v", collectionID, err)
	}
	for _, field := range fields {
		if err := p.store.EraseFields(ctx, []string{field.ID}); err != nil {
			logrus.Errorf("removing deleted field %s: %v", field.ID, err)
		}
	}

	items, err := p.store.ListDeletedItems(ctx, collectionID)
	if err != nil {
		logrus.Errorf("listing deleted items of collection %s: %v", collectionID, err)
	}
	for _, item := range items {
		if err := p.store.EraseItems(ctx, []string{item.ID}); err != nil {
			logrus.Errorf("removing deleted item %s: %v", item.ID, err)
		}
	}

	values, err := p.store.ListDeletedValues(ctx, collectionID)
	if err != nil {
		logrus.Errorf("listing deleted values of collection %s: %v", collectionID, err)
	}
	for _, value := range values {
		if err := p.store.EraseValues(ctx, []string{value.ID}); err != nil {
			logrus.Errorf("removing deleted value %s: %v", value.ID, err)
		}
	}
}

// SweepSite hard deletes soft deleted draft rows of a site's page tree and
// their published twins, deepest kind first. Soft deleted collections below
// the site are torn down whole.
func (p *Publisher) SweepSite(ctx context.Context, siteID uuid.UUID) {
	layers, err := p.store.ListDeletedLayers(ctx, siteID)
	if err != nil {
		logrus.Errorf("listing deleted layers of site %s: %v", siteID, err)
	}
	for _, layer := range layers {
		if err := p.store.EraseLayersByLinkKey(ctx, []string{layer.LinkKey}); err != nil {
			logrus.Errorf("removing deleted layer %s: %v", layer.ID, err)
		}
	}

	pages, err := p.store.ListDeletedPages(ctx, siteID)
	if err != nil {
		logrus.Errorf("listing deleted pages of site %s: %v", siteID, err)
	}
	for _, page := range pages {
		if err := p.store.ErasePagesByLinkKey(ctx, []string{page.LinkKey}); err != nil {
			logrus.Errorf("removing deleted page %s: %v", page.ID, err)
		}
	}

	folders, err := p.store.ListDeletedFolders(ctx, siteID)
	if err != nil {
		logrus.Errorf("listing deleted folders of site %s: %v", siteID, err)
	}
	for _, folder := range folders {
		if err := p.store.EraseFoldersByLinkKey(ctx, []string{folder.LinkKey}); err != nil {
			logrus.Errorf("removing deleted folder %s: %v", folder.ID, err)
		}
	}

	collections, err := p.store.ListDeletedCollections(ctx, siteID)
	if err != nil {
		logrus.Errorf("listing deleted collections of site %s: %v", siteID, err)
	}
	for _, collection := range collections {
		if err := p.store.EraseCollections(ctx, []string{collection.ID}); err != nil {
			logrus.Errorf("removing deleted collection %s: %v", collection.ID, err)
		}
	}
}
