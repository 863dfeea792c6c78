package job

import (
	"context"

	"github.com/emrgen/sitepress/internal/publish"
	"github.com/emrgen/sitepress/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// OrphanSweeper periodically retries garbage collection of soft deleted
// draft rows. A publish run already sweeps its own root; this job picks up
// the rows whose cleanup failed there, so no published orphan outlives its
// draft for long.
type OrphanSweeper struct {
	store     store.Store
	publisher *publish.Publisher
}

func NewOrphanSweeper(store store.Store, publisher *publish.Publisher) *OrphanSweeper {
	return &OrphanSweeper{
		store:     store,
		publisher: publisher,
	}
}

func (s *OrphanSweeper) Schedule() string {
	return "@every 1m"
}

func (s *OrphanSweeper) Run() {
	ctx := context.Background()

	sites, err := s.store.ListSites(ctx)
	if err != nil {
		logrus.Errorf("orphan sweep: listing sites: %v", err)
		return
	}

	for _, site := range sites {
		siteID, err := uuid.Parse(site.ID)
		if err != nil {
			logrus.Errorf("orphan sweep: site %s has an invalid id: %v", site.ID, err)
			continue
		}

		s.publisher.SweepSite(ctx, siteID)

		collections, err := s.store.ListCollections(ctx, siteID, false)
		if err != nil {
			logrus.Errorf("orphan sweep: listing collections of site %s: %v", siteID, err)
			continue
		}
		for _, collection := range collections {
			cid, err := uuid.Parse(collection.ID)
			if err != nil {
				continue
			}
			s.publisher.SweepCollection(ctx, cid)
		}
	}
}
