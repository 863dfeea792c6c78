package publish

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/emrgen/sitepress/internal/model"
	"github.com/emrgen/sitepress/internal/store"
	"github.com/google/uuid"
)

// collectionPlan is the set of create or update decisions for one collection
// publish run. Building a plan only reads; applying it only writes, so the
// same plan backs both publishing and the publishable count queries.
type collectionPlan struct {
	counts countSet

	collection *model.Collection // published twin to write, nil when unchanged
	fields     []*model.Field
	items      []*model.Item
	values     []*model.Value

	// published values whose draft counterpart is gone, removed together
	// with the republished item
	staleValueIDs []string
}

func newCollectionPlan() *collectionPlan {
	return &collectionPlan{counts: make(countSet)}
}

func (pl *collectionPlan) pending() int {
	return pl.counts.pending() + len(pl.staleValueIDs)
}

// buildCollectionPlan decides per entity whether it is created, updated or
// skipped. Levels are planned in dependency order: collection meta, then
// fields (always the full set), then items with their value sets.
func (p *Publisher) buildCollectionPlan(ctx context.Context, s store.Store, draft *model.Collection, selected []*model.Item) (*collectionPlan, error) {
	plan := newCollectionPlan()
	cid := uuid.MustParse(draft.ID)

	twin, err := s.GetCollection(ctx, cid, true)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	switch {
	case twin == nil:
		plan.collection = draft.IntoPublished()
		plan.counts.at(KindCollection).Created++
	case needsPublish(draft.ContentHash, twin.ContentHash):
		plan.collection = draft.IntoPublished()
		plan.counts.at(KindCollection).Updated++
	default:
		plan.counts.at(KindCollection).Unchanged++
	}

	if err := p.planFields(ctx, s, cid, plan); err != nil {
		return nil, err
	}
	if err := p.planItems(ctx, s, cid, selected, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// planFields stages the full field set. Fields are never selectively
// published.
func (p *Publisher) planFields(ctx context.Context, s store.Store, cid uuid.UUID, plan *collectionPlan) error {
	draftFields, err := s.ListFields(ctx, cid, false)
	if err != nil {
		return err
	}
	publishedFields, err := s.ListFields(ctx, cid, true)
	if err != nil {
		return err
	}

	twinByID := make(map[string]*model.Field, len(publishedFields))
	for _, field := range publishedFields {
		twinByID[field.ID] = field
	}

	for _, field := range draftFields {
		twin := twinByID[field.ID]
		switch {
		case twin == nil:
			plan.fields = append(plan.fields, field.IntoPublished())
			plan.counts.at(KindField).Created++
		case needsPublish(field.ContentHash, twin.ContentHash):
			plan.fields = append(plan.fields, field.IntoPublished())
			plan.counts.at(KindField).Updated++
		default:
			plan.counts.at(KindField).Unchanged++
		}
	}

	return nil
}

// planItems stages the selected items, or every item that needs publishing
// when no selection is given. Publishing an item always stages its whole
// value set; unselected items are left completely untouched.
func (p *Publisher) planItems(ctx context.Context, s store.Store, cid uuid.UUID, selected []*model.Item, plan *collectionPlan) error {
	var err error
	draftItems := selected
	if len(draftItems) == 0 {
		draftItems, err = s.ListItems(ctx, cid, false)
		if err != nil {
			return err
		}
	}

	publishedItems, err := s.ListItems(ctx, cid, true)
	if err != nil {
		return err
	}
	twinByID := make(map[string]*model.Item, len(publishedItems))
	for _, item := range publishedItems {
		twinByID[item.ID] = item
	}

	itemIDs := make([]string, 0, len(draftItems))
	for _, item := range draftItems {
		itemIDs = append(itemIDs, item.ID)
	}

	draftValues, err := s.ListValuesByItemIDs(ctx, itemIDs, false)
	if err != nil {
		return err
	}
	publishedValues, err := s.ListValuesByItemIDs(ctx, itemIDs, true)
	if err != nil {
		return err
	}

	draftByItem := groupValues(draftValues)
	publishedByItem := groupValues(publishedValues)

	for _, item := range draftItems {
		twin := twinByID[item.ID]
		dvals := draftByItem[item.ID]
		pvals := publishedByItem[item.ID]

		metaChanged := twin == nil || needsPublish(item.ContentHash, twin.ContentHash)
		if !metaChanged && !valueSetChanged(dvals, pvals) {
			plan.counts.at(KindItem).Unchanged++
			plan.counts.at(KindValue).Unchanged += len(dvals)
			continue
		}

		switch {
		case twin == nil:
			plan.items = append(plan.items, item.IntoPublished())
			plan.counts.at(KindItem).Created++
		case metaChanged:
			plan.items = append(plan.items, item.IntoPublished())
			plan.counts.at(KindItem).Updated++
		default:
			plan.counts.at(KindItem).Unchanged++
		}

		twinValByID := make(map[string]*model.Value, len(pvals))
		for _, v := range pvals {
			twinValByID[v.ID] = v
		}
		draftValIDs := make(map[string]bool, len(dvals))

		for _, value := range dvals {
			draftValIDs[value.ID] = true
			vt := twinValByID[value.ID]
			switch {
			case vt == nil:
				plan.values = append(plan.values, value.IntoPublished())
				plan.counts.at(KindValue).Created++
			case needsPublish(value.ContentHash, vt.ContentHash):
				plan.values = append(plan.values, value.IntoPublished())
				plan.counts.at(KindValue).Updated++
			default:
				plan.counts.at(KindValue).Unchanged++
			}
		}

		for _, pv := range pvals {
			if !draftValIDs[pv.ID] {
				plan.staleValueIDs = append(plan.staleValueIDs, pv.ID)
			}
		}
	}

	return nil
}

// applyCollectionPlan writes the staged rows, one batched round trip per
// entity kind, in dependency order.
func (p *Publisher) applyCollectionPlan(ctx context.Context, s store.Store, plan *collectionPlan, result *Result) error {
	if plan.collection != nil {
		if err := s.UpsertCollections(ctx, []*model.Collection{plan.collection}); err != nil {
			return err
		}
	}
	if err := s.UpsertFields(ctx, plan.fields); err != nil {
		return err
	}
	if err := s.UpsertItems(ctx, plan.items); err != nil {
		return err
	}
	if err := s.UpsertValues(ctx, plan.values); err != nil {
		return err
	}
	if err := s.ErasePublishedValues(ctx, plan.staleValueIDs); err != nil {
		return err
	}

	result.merge(plan.counts)

	return nil
}

// validateSelection checks every explicitly requested item before any write
// happens: it must exist as a live draft and belong to the stated collection.
func (p *Publisher) validateSelection(ctx context.Context, draft *model.Collection, itemIDs []uuid.UUID) ([]*model.Item, error) {
	ids := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		ids = append(ids, id.String())
	}

	items, err := p.store.ListItemsFromIDs(ctx, ids, false)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: item %s has no draft", ErrItemNotFound, id)
		}
		if item.CollectionID != draft.ID {
			return nil, fmt.Errorf("%w: item %s is not part of collection %s", ErrItemNotInCollection, id, draft.ID)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})

	return items, nil
}

func groupValues(values []*model.Value) map[string][]*model.Value {
	grouped := make(map[string][]*model.Value)
	for _, v := range values {
		grouped[v.ItemID] = append(grouped[v.ItemID], v)
	}
	return grouped
}
