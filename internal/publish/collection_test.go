package publish

import (
	"context"
	"testing"

	"github.com/emrgen/sitepress/internal/model"
	"github.com/emrgen/sitepress/internal/store"
	"github.com/emrgen/sitepress/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blogFixture struct {
	store      store.Store
	publisher  *Publisher
	siteID     uuid.UUID
	collection *model.Collection
	title      *model.Field
	body       *model.Field
	item       *model.Item
	values     []*model.Value
}

// seedBlog creates a draft collection with two fields, one item and a value
// per field. Nothing is published yet.
func seedBlog(t *testing.T) *blogFixture {
	t.Helper()
	tester.RemoveDBFile()
	tester.Setup()

	ctx := context.TODO()
	gormStore := store.NewGormStore(tester.TestDB())

	fixture := &blogFixture{
		store:     gormStore,
		publisher: NewPublisher(gormStore, nil),
		siteID:    uuid.New(),
	}

	site := &model.Site{ID: fixture.siteID.String(), Name: "test site"}
	require.NoError(t, gormStore.CreateSite(ctx, site))

	fixture.collection = &model.Collection{
		ID:     uuid.New().String(),
		SiteID: fixture.siteID.String(),
		Name:   "Blog",
		Slug:   "blog",
	}
	fixture.collection.ComputeContentHash()
	require.NoError(t, gormStore.CreateCollection(ctx, fixture.collection))

	fixture.title = &model.Field{
		ID:           uuid.New().String(),
		CollectionID: fixture.collection.ID,
		Name:         "Title",
		Kind:         "text",
		Position:     0,
	}
	fixture.body = &model.Field{
		ID:           uuid.New().String(),
		CollectionID: fixture.collection.ID,
		Name:         "Body",
		Kind:         "richtext",
		Position:     1,
	}
	for _, field := range []*model.Field{fixture.title, fixture.body} {
		field.ComputeContentHash()
		require.NoError(t, gormStore.CreateField(ctx, field))
	}

	fixture.item = seedItem(t, fixture, "first-post", "First Post", "Hello World")

	return fixture
}

func seedItem(t *testing.T, fixture *blogFixture, slug, title, body string) *model.Item {
	t.Helper()
	ctx := context.TODO()

	item := &model.Item{
		ID:           uuid.New().String(),
		CollectionID: fixture.collection.ID,
		Slug:         slug,
	}
	item.ComputeContentHash()
	require.NoError(t, fixture.store.CreateItem(ctx, item))

	for fieldID, content := range map[string]string{
		fixture.title.ID: title,
		fixture.body.ID:  body,
	} {
		value := &model.Value{
			ID:      uuid.New().String(),
			ItemID:  item.ID,
			FieldID: fieldID,
			Value:   content,
		}
		value.ComputeContentHash()
		require.NoError(t, fixture.store.CreateValue(ctx, value))
		fixture.values = append(fixture.values, value)
	}

	return item
}

func (f *blogFixture) collectionID() uuid.UUID {
	return uuid.MustParse(f.collection.ID)
}

func TestPublisher_PublishCollection(t *testing.T) {
	fixture := seedBlog(t)
	ctx := context.TODO()

	result, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)

	assert.Equal(t, Counts{Created: 1}, result.Count(KindCollection))
	assert.Equal(t, Counts{Created: 2}, result.Count(KindField))
	assert.Equal(t, Counts{Created: 1}, result.Count(KindItem))
	assert.Equal(t, Counts{Created: 2}, result.Count(KindValue))

	published, err := fixture.store.GetCollection(ctx, fixture.collectionID(), true)
	require.NoError(t, err)
	assert.Equal(t, fixture.collection.ID, published.ID)
	assert.Equal(t, "Blog", published.Name)
	assert.Equal(t, fixture.collection.ContentHash, published.ContentHash)

	fields, err := fixture.store.ListFields(ctx, fixture.collectionID(), true)
	require.NoError(t, err)
	assert.Len(t, fields, 2)

	values, err := fixture.store.ListValuesByItemIDs(ctx, []string{fixture.item.ID}, true)
	require.NoError(t, err)
	assert.Len(t, values, 2)
}

func TestPublisher_PublishCollection_Idempotent(t *testing.T) {
	fixture := seedBlog(t)
	ctx := context.TODO()

	_, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), nil)
	require.NoError(t, err)

	result, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), nil)
	require.NoError(t, err)

	assert.Equal(t, Counts{Unchanged: 1}, result.Count(KindCollection))
	assert.Equal(t, Counts{Unchanged: 2}, result.Count(KindField))
	assert.Equal(t, Counts{Unchanged: 1}, result.Count(KindItem))
	assert.Equal(t, Counts{Unchanged: 2}, result.Count(KindValue))
}

func TestPublisher_PublishCollection_ValueEdit(t *testing.T) {
	fixture := seedBlog(t)
	ctx := context.TODO()

	_, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), nil)
	require.NoError(t, err)

	edited := fixture.values[0]
	edited.Value = "Hello Again"
	edited.ComputeContentHash()
	require.NoError(t, fixture.store.UpsertValues(ctx, []*model.Value{edited}))

	result, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), nil)
	require.NoError(t, err)

	assert.Equal(t, Counts{Unchanged: 1}, result.Count(KindCollection))
	assert.Equal(t, Counts{Unchanged: 2}, result.Count(KindField))
	assert.Equal(t, Counts{Unchanged: 1}, result.Count(KindItem))
	assert.Equal(t, Counts{Updated: 1, Unchanged: 1}, result.Count(KindValue))

	values, err := fixture.store.ListValuesByItemIDs(ctx, []string{fixture.item.ID}, true)
	require.NoError(t, err)
	byID := make(map[string]*model.Value)
	for _, v := range values {
		byID[v.ID] = v
	}
	assert.Equal(t, "Hello Again", byID[edited.ID].Value)
}

func TestPublisher_PublishCollection_Selective(t *testing.T) {
	fixture := seedBlog(t)
	ctx := context.TODO()

	second := seedItem(t, fixture, "second-post", "Second Post", "More Words")

	_, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), nil)
	require.NoError(t, err)

	// edit one value of each item, then publish only the first item
	for _, value := range fixture.values {
		if value.FieldID != fixture.title.ID {
			continue
		}
		value.Value = value.Value + " (edited)"
		value.ComputeContentHash()
		require.NoError(t, fixture.store.UpsertValues(ctx, []*model.Value{value}))
	}

	result, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), &Options{
		ItemIDs: []uuid.UUID{uuid.MustParse(fixture.item.ID)},
	})
	require.NoError(t, err)
	assert.Equal(t, Counts{Updated: 1, Unchanged: 1}, result.Count(KindValue))

	published, err := fixture.store.ListValuesByItemIDs(ctx, []string{fixture.item.ID, second.ID}, true)
	require.NoError(t, err)
	for _, value := range published {
		if value.FieldID != fixture.title.ID {
			continue
		}
		switch value.ItemID {
		case fixture.item.ID:
			assert.Equal(t, "First Post (edited)", value.Value)
		case second.ID:
			assert.Equal(t, "Second Post", value.Value)
		}
	}
}

func TestPublisher_PublishCollection_SelectionValidation(t *testing.T) {
	fixture := seedBlog(t)
	ctx := context.TODO()

	_, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), &Options{
		ItemIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, ErrItemNotFound)

	other := &model.Collection{
		ID:     uuid.New().String(),
		SiteID: fixture.siteID.String(),
		Name:   "Authors",
		Slug:   "authors",
	}
	other.ComputeContentHash()
	require.NoError(t, fixture.store.CreateCollection(ctx, other))

	_, err = fixture.publisher.PublishCollection(ctx, uuid.MustParse(other.ID), &Options{
		ItemIDs: []uuid.UUID{uuid.MustParse(fixture.item.ID)},
	})
	assert.ErrorIs(t, err, ErrItemNotInCollection)

	// nothing was written for the other collection
	_, err = fixture.store.GetCollection(ctx, uuid.MustParse(other.ID), true)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPublisher_PublishCollection_DeletedItem(t *testing.T) {
	fixture := seedBlog(t)
	ctx := context.TODO()

	_, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), nil)
	require.NoError(t, err)

	require.NoError(t, fixture.store.DeleteItem(ctx, uuid.MustParse(fixture.item.ID)))

	result, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)

	for _, published := range []bool{false, true} {
		items, err := fixture.store.ListItemsFromIDs(ctx, []string{fixture.item.ID}, published)
		require.NoError(t, err)
		assert.Empty(t, items)

		values, err := fixture.store.ListValuesByItemIDs(ctx, []string{fixture.item.ID}, published)
		require.NoError(t, err)
		assert.Empty(t, values)
	}
}

func TestPublisher_PublishCollection_DeletedValue(t *testing.T) {
	fixture := seedBlog(t)
	ctx := context.TODO()

	_, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), nil)
	require.NoError(t, err)

	removed := fixture.values[0]
	require.NoError(t, fixture.store.DeleteValue(ctx, uuid.MustParse(removed.ID)))

	result, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), nil)
	require.NoError(t, err)
	assert.True(t, result.Success)

	values, err := fixture.store.ListValuesByItemIDs(ctx, []string{fixture.item.ID}, true)
	require.NoError(t, err)
	assert.Len(t, values, 1)
	assert.NotEqual(t, removed.ID, values[0].ID)
}

func TestPublisher_PublishCollection_DeletedRoot(t *testing.T) {
	fixture := seedBlog(t)
	ctx := context.TODO()

	_, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), nil)
	require.NoError(t, err)

	require.NoError(t, fixture.store.DeleteCollection(ctx, fixture.collectionID()))

	result, err := fixture.publisher.PublishCollection(ctx, fixture.collectionID(), nil)
	require.NoError(t, err)
	assert.True(t, result.Success)

	_, err = fixture.store.GetCollectionUnscoped(ctx, fixture.collectionID())
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = fixture.store.GetCollection(ctx, fixture.collectionID(), true)
	assert.ErrorIs(t, err, store.ErrNotFound)

	items, err := fixture.store.ListItemsFromIDs(ctx, []string{fixture.item.ID}, true)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPublisher_PublishCollection_MissingDraft(t *testing.T) {
	fixture := seedBlog(t)

	_, err := fixture.publisher.PublishCollection(context.TODO(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestPublisher_PublishCollections(t *testing.T) {
	fixture := seedBlog(t)
	ctx := context.TODO()

	batch := fixture.publisher.PublishCollections(ctx, []Request{
		{CollectionID: fixture.collectionID()},
		{CollectionID: uuid.New()},
	})

	assert.Equal(t, 2, batch.Total)
	assert.Equal(t, 1, batch.Succeeded)
	assert.Equal(t, 1, batch.Failed)
	require.Len(t, batch.Results, 2)
	assert.True(t, batch.Results[0].Success)
	assert.False(t, batch.Results[1].Success)

	// the failed root never blocks the healthy one
	_, err := fixture.store.GetCollection(ctx, fixture.collectionID(), true)
	assert.NoError(t, err)
}

func TestPublisher_PublishableCount(t *testing.T) {
	fixture := seedBlog(t)
	ctx := context.TODO()

	count, err := fixture.publisher.PublishableCount(ctx, fixture.collectionID())
	require.NoError(t, err)
	assert.Equal(t, 6, count) // collection + 2 fields + item + 2 values

	needed, err := fixture.publisher.PublishNeeded(ctx, fixture.collectionID())
	require.NoError(t, err)
	assert.True(t, needed)

	_, err = fixture.publisher.PublishCollection(ctx, fixture.collectionID(), nil)
	require.NoError(t, err)

	count, err = fixture.publisher.PublishableCount(ctx, fixture.collectionID())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	needed, err = fixture.publisher.PublishNeeded(ctx, fixture.collectionID())
	require.NoError(t, err)
	assert.False(t, needed)

	edited := fixture.values[0]
	edited.Value = "changed"
	edited.ComputeContentHash()
	require.NoError(t, fixture.store.UpsertValues(ctx, []*model.Value{edited}))

	count, err = fixture.publisher.PublishableCount(ctx, fixture.collectionID())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	counts, err := fixture.publisher.PublishableCounts(ctx, []uuid.UUID{fixture.collectionID()})
	require.NoError(t, err)
	assert.Equal(t, 1, counts[fixture.collectionID()])
}
