package publish

import (
	"context"
	"sort"

	"github.com/emrgen/sitepress/internal/model"
	"github.com/emrgen/sitepress/internal/store"
	"github.com/google/uuid"
)

// sitePlan is the set of create or update decisions for one site publish run.
// Twin row kinds keep creates and updates apart: creates share one batched
// insert, updates go row by row since draft and published rows have no shared
// conflict key.
type sitePlan struct {
	counts countSet

	folderCreates []*model.Folder
	folderUpdates []*model.Folder
	pageCreates   []*model.Page
	pageUpdates   []*model.Page
	layerCreates  []*model.Layer
	layerUpdates  []*model.Layer
}

func newSitePlan() *sitePlan {
	return &sitePlan{counts: make(countSet)}
}

func (pl *sitePlan) pending() int {
	return pl.counts.pending()
}

// buildSitePlan walks the three levels in dependency order: folders sorted by
// ascending depth, then pages, then layers. Published ids for created twin
// rows are assigned while planning, so each level's identity map is complete
// before the next level resolves its parent references.
func (p *Publisher) buildSitePlan(ctx context.Context, s store.Store, siteID uuid.UUID) (*sitePlan, error) {
	plan := newSitePlan()

	folderIDs, err := p.planFolders(ctx, s, siteID, plan)
	if err != nil {
		return nil, err
	}
	pageIDs, err := p.planPages(ctx, s, siteID, folderIDs, plan)
	if err != nil {
		return nil, err
	}
	if err := p.planLayers(ctx, s, siteID, pageIDs, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

func (p *Publisher) planFolders(ctx context.Context, s store.Store, siteID uuid.UUID, plan *sitePlan) (IdentityMap, error) {
	drafts, err := s.ListFolders(ctx, siteID, false)
	if err != nil {
		return nil, err
	}
	published, err := s.ListFolders(ctx, siteID, true)
	if err != nil {
		return nil, err
	}

	twinByLink := make(map[string]*model.Folder, len(published))
	for _, folder := range published {
		twinByLink[folder.LinkKey] = folder
	}

	byID := make(map[string]*model.Folder, len(drafts))
	for _, folder := range drafts {
		byID[folder.ID] = folder
	}

	// parents must be resolved before their children reference them
	sort.SliceStable(drafts, func(i, j int) bool {
		return folderDepth(drafts[i], byID) < folderDepth(drafts[j], byID)
	})

	ids := IdentityMap{}
	for _, folder := range drafts {
		twin := twinByLink[folder.LinkKey]
		parentID := ids.ResolveRef(folder.ParentID)

		if twin == nil {
			pub := folder.IntoPublished(uuid.New().String(), parentID)
			ids[folder.ID] = pub.ID
			plan.folderCreates = append(plan.folderCreates, pub)
			plan.counts.at(KindFolder).Created++
			continue
		}

		ids[folder.ID] = twin.ID
		if needsPublish(folder.ContentHash, twin.ContentHash) {
			plan.folderUpdates = append(plan.folderUpdates, folder.IntoPublished(twin.ID, parentID))
			plan.counts.at(KindFolder).Updated++
		} else {
			plan.counts.at(KindFolder).Unchanged++
		}
	}

	return ids, nil
}

func (p *Publisher) planPages(ctx context.Context, s store.Store, siteID uuid.UUID, folderIDs IdentityMap, plan *sitePlan) (IdentityMap, error) {
	drafts, err := s.ListPages(ctx, siteID, false)
	if err != nil {
		return nil, err
	}
	published, err := s.ListPages(ctx, siteID, true)
	if err != nil {
		return nil, err
	}

	twinByLink := make(map[string]*model.Page, len(published))
	for _, page := range published {
		twinByLink[page.LinkKey] = page
	}

	ids := IdentityMap{}
	for _, page := range drafts {
		twin := twinByLink[page.LinkKey]
		folderID := folderIDs.ResolveRef(page.FolderID)

		if twin == nil {
			pub := page.IntoPublished(uuid.New().String(), folderID)
			ids[page.ID] = pub.ID
			plan.pageCreates = append(plan.pageCreates, pub)
			plan.counts.at(KindPage).Created++
			continue
		}

		ids[page.ID] = twin.ID
		if needsPublish(page.ContentHash, twin.ContentHash) {
			plan.pageUpdates = append(plan.pageUpdates, page.IntoPublished(twin.ID, folderID))
			plan.counts.at(KindPage).Updated++
		} else {
			plan.counts.at(KindPage).Unchanged++
		}
	}

	return ids, nil
}

func (p *Publisher) planLayers(ctx context.Context, s store.Store, siteID uuid.UUID, pageIDs IdentityMap, plan *sitePlan) error {
	drafts, err := s.ListLayers(ctx, siteID, false)
	if err != nil {
		return err
	}
	published, err := s.ListLayers(ctx, siteID, true)
	if err != nil {
		return err
	}

	twinByLink := make(map[string]*model.Layer, len(published))
	for _, layer := range published {
		twinByLink[layer.LinkKey] = layer
	}

	for _, layer := range drafts {
		twin := twinByLink[layer.LinkKey]
		pageID := pageIDs.Resolve(layer.PageID)

		if twin == nil {
			plan.layerCreates = append(plan.layerCreates, layer.IntoPublished(uuid.New().String(), pageID))
			plan.counts.at(KindLayer).Created++
			continue
		}

		if layerChanged(layer, twin) {
			plan.layerUpdates = append(plan.layerUpdates, layer.IntoPublished(twin.ID, pageID))
			plan.counts.at(KindLayer).Updated++
		} else {
			plan.counts.at(KindLayer).Unchanged++
		}
	}

	return nil
}

// applySitePlan writes the staged rows level by level: a level completes
// fully before the next one starts, so published parent rows always exist
// before children referencing them.
func (p *Publisher) applySitePlan(ctx context.Context, s store.Store, plan *sitePlan, result *Result) error {
	if err := s.CreateFolders(ctx, plan.folderCreates); err != nil {
		return err
	}
	for _, folder := range plan.folderUpdates {
		if err := s.UpdateFolder(ctx, folder); err != nil {
			return err
		}
	}

	if err := s.CreatePages(ctx, plan.pageCreates); err != nil {
		return err
	}
	for _, page := range plan.pageUpdates {
		if err := s.UpdatePage(ctx, page); err != nil {
			return err
		}
	}

	if err := s.CreateLayers(ctx, plan.layerCreates); err != nil {
		return err
	}
	for _, layer := range plan.layerUpdates {
		if err := s.UpdateLayer(ctx, layer); err != nil {
			return err
		}
	}

	result.merge(plan.counts)

	return nil
}

// folderDepth walks the draft parent chain. A missing parent or a cycle
// terminates the walk so bad tree data still orders deterministically.
func folderDepth(folder *model.Folder, byID map[string]*model.Folder) int {
	depth := 0
	seen := map[string]bool{folder.ID: true}
	for folder.ParentID != nil {
		parent, ok := byID[*folder.ParentID]
		if !ok || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		depth++
		folder = parent
	}
	return depth
}
