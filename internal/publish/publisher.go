package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emrgen/sitepress/internal/model"
	"github.com/emrgen/sitepress/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CountCache caches publishable counts per root so status queries do not hit
// the store on every call. Implemented by cache.Redis; a nil cache disables
// caching.
type CountCache interface {
	GetInt(ctx context.Context, key string) (int, error)
	SetInt(ctx context.Context, key string, value int, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const countCacheTTL = time.Minute

// NewPublisher creates a new Publisher. cache may be nil.
func NewPublisher(store store.Store, cache CountCache) *Publisher {
	return &Publisher{
		store: store,
		cache: cache,
	}
}

// Publisher promotes draft content into the published state. Each root is
// published inside a single store transaction; cleanup of soft deleted rows
// runs afterwards and is best effort.
type Publisher struct {
	store store.Store
	cache CountCache
}

// Options control a single collection publish run.
type Options struct {
	// ItemIDs restricts the run to the given items. Fields and the
	// collection meta are still published in full.
	ItemIDs []uuid.UUID
}

// Request names one collection of a batch publish call.
type Request struct {
	CollectionID uuid.UUID
	Options      *Options
}

// PublishCollection publishes one collection root: meta, fields, items and
// their values. A soft deleted draft root short circuits to a hard delete of
// the whole subtree in both states.
func (p *Publisher) PublishCollection(ctx context.Context, id uuid.UUID, opts *Options) (*Result, error) {
	result := newResult(id.String())

	draft, err := p.store.GetCollection(ctx, id, false)
	if errors.Is(err, store.ErrNotFound) {
		deleted, derr := p.store.GetCollectionUnscoped(ctx, id)
		if derr == nil && deleted.DeletedAt.Valid {
			if terr := p.store.EraseCollections(ctx, []string{deleted.ID}); terr != nil {
				result.fail(terr)
				return result, terr
			}
			logrus.Infof("collection %s was deleted in draft, removed both states", id)
			return result, nil
		}

		verr := fmt.Errorf("%w: collection %s", ErrDraftNotFound, id)
		result.fail(verr)
		return result, verr
	}
	if err != nil {
		result.fail(err)
		return result, err
	}

	var selected []*model.Item
	if opts != nil && len(opts.ItemIDs) > 0 {
		selected, err = p.validateSelection(ctx, draft, opts.ItemIDs)
		if err != nil {
			result.fail(err)
			return result, err
		}
	}

	err = p.store.Transaction(ctx, func(tx store.Store) error {
		plan, err := p.buildCollectionPlan(ctx, tx, draft, selected)
		if err != nil {
			return err
		}
		return p.applyCollectionPlan(ctx, tx, plan, result)
	})
	if err != nil {
		logrus.Errorf("publishing collection %s failed: %v", id, err)
		result.fail(err)
		return result, err
	}

	p.SweepCollection(ctx, id)
	p.invalidateCount(ctx, id)

	return result, nil
}

// PublishCollections publishes several independent roots sequentially. One
// root's failure never blocks the others; failures are collected per root.
func (p *Publisher) PublishCollections(ctx context.Context, requests []Request) *BatchResult {
	batch := &BatchResult{Total: len(requests)}

	for _, request := range requests {
		result, _ := p.PublishCollection(ctx, request.CollectionID, request.Options)
		if result.Success {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
		batch.Results = append(batch.Results, result)
	}

	return batch
}

// PublishSite publishes the page tree of a site: folders by depth, then
// pages, then layer trees.
func (p *Publisher) PublishSite(ctx context.Context, siteID uuid.UUID) (*Result, error) {
	result := newResult(siteID.String())

	if _, err := p.store.GetSite(ctx, siteID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = fmt.Errorf("%w: site %s", ErrDraftNotFound, siteID)
		}
		result.fail(err)
		return result, err
	}

	err := p.store.Transaction(ctx, func(tx store.Store) error {
		plan, err := p.buildSitePlan(ctx, tx, siteID)
		if err != nil {
			return err
		}
		return p.applySitePlan(ctx, tx, plan, result)
	})
	if err != nil {
		logrus.Errorf("publishing site %s failed: %v", siteID, err)
		result.fail(err)
		return result, err
	}

	p.SweepSite(ctx, siteID)

	return result, nil
}

// PublishNeeded reports whether an unscoped publish of the collection would
// write anything.
func (p *Publisher) PublishNeeded(ctx context.Context, collectionID uuid.UUID) (bool, error) {
	count, err := p.PublishableCount(ctx, collectionID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PublishableCount is the number of rows an unscoped publish of the
// collection would create, update or remove.
func (p *Publisher) PublishableCount(ctx context.Context, collectionID uuid.UUID) (int, error) {
	if p.cache != nil {
		if count, err := p.cache.GetInt(ctx, countKey(collectionID)); err == nil {
			return count, nil
		}
	}

	draft, err := p.store.GetCollection(ctx, collectionID, false)
	if errors.Is(err, store.ErrNotFound) {
		return 0, fmt.Errorf("%w: collection %s", ErrDraftNotFound, collectionID)
	}
	if err != nil {
		return 0, err
	}

	plan, err := p.buildCollectionPlan(ctx, p.store, draft, nil)
	if err != nil {
		return 0, err
	}
	count := plan.pending()

	if p.cache != nil {
		if err := p.cache.SetInt(ctx, countKey(collectionID), count, countCacheTTL); err != nil {
			logrus.Errorf("caching publishable count of collection %s: %v", collectionID, err)
		}
	}

	return count, nil
}

// PublishableCounts is the batched variant of PublishableCount over many
// collection roots.
func (p *Publisher) PublishableCounts(ctx context.Context, collectionIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(collectionIDs))
	for _, id := range collectionIDs {
		count, err := p.PublishableCount(ctx, id)
		if err != nil {
			return nil, err
		}
		counts[id] = count
	}

	return counts, nil
}

// SitePublishableCount is the number of rows a publish of the site's page
// tree would create or update.
func (p *Publisher) SitePublishableCount(ctx context.Context, siteID uuid.UUID) (int, error) {
	if _, err := p.store.GetSite(ctx, siteID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, fmt.Errorf("%w: site %s", ErrDraftNotFound, siteID)
		}
		return 0, err
	}

	plan, err := p.buildSitePlan(ctx, p.store, siteID)
	if err != nil {
		return 0, err
	}

	return plan.pending(), nil
}

func (p *Publisher) invalidateCount(ctx context.Context, collectionID uuid.UUID) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Delete(ctx, countKey(collectionID)); err != nil {
		logrus.Errorf("invalidating publishable count of collection %s: %v", collectionID, err)
	}
}

func countKey(collectionID uuid.UUID) string {
	return "publishable:collection:" + collectionID.String()
}
