package service

import (
	"context"
	"testing"
	"time"

	"github.com/besmartbusiness/lawyer-app/internal/dto"
	"github.com/besmartbusiness/lawyer-app/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrievalService_CreateThenLookup(t *testing.T) {
	factory := newFakeFactory()
	svc := NewRetrievalService(factory, nopLogger{})
	ownerId := uuid.New()

	created, err := svc.Create(context.Background(), ownerId, &dto.CreateRetrievalEntryRequest{
		Kind:    "text_block",
		Name:    "HAFTUNG",
		Content: "Die Haftung ist auf Vorsatz und grobe Fahrlässigkeit beschränkt.",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.Id)

	result := svc.Lookup(context.Background(), ownerId, entity.RetrievalKindTextBlock, "HAFTUNG")
	assert.True(t, result.Found)
	assert.Equal(t, "Die Haftung ist auf Vorsatz und grobe Fahrlässigkeit beschränkt.", result.Content)
	assert.Empty(t, result.Message)
}

func TestRetrievalService_LookupMissReturnsMessageNotError(t *testing.T) {
	factory := newFakeFactory()
	svc := NewRetrievalService(factory, nopLogger{})

	result := svc.Lookup(context.Background(), uuid.New(), entity.RetrievalKindTemplate, "Klageerwiderung")
	assert.False(t, result.Found)
	assert.Empty(t, result.Content)
	assert.Contains(t, result.Message, "Klageerwiderung")
	assert.Contains(t, result.Message, "Vorlage")
}

func TestRetrievalService_LookupIsCaseSensitive(t *testing.T) {
	factory := newFakeFactory()
	svc := NewRetrievalService(factory, nopLogger{})
	ownerId := uuid.New()

	_, err := svc.Create(context.Background(), ownerId, &dto.CreateRetrievalEntryRequest{
		Kind:    "text_block",
		Name:    "HAFTUNG",
		Content: "Inhalt",
	})
	require.NoError(t, err)

	result := svc.Lookup(context.Background(), ownerId, entity.RetrievalKindTextBlock, "haftung")
	assert.False(t, result.Found)
}

func TestRetrievalService_LookupScopedToOwner(t *testing.T) {
	factory := newFakeFactory()
	svc := NewRetrievalService(factory, nopLogger{})
	ownerA := uuid.New()
	ownerB := uuid.New()

	_, err := svc.Create(context.Background(), ownerA, &dto.CreateRetrievalEntryRequest{
		Kind:    "template",
		Name:    "Mahnung",
		Content: "Vorlage von A",
	})
	require.NoError(t, err)

	result := svc.Lookup(context.Background(), ownerB, entity.RetrievalKindTemplate, "Mahnung")
	assert.False(t, result.Found)
}

func TestRetrievalService_DuplicateNamesResolveOldestFirst(t *testing.T) {
	factory := newFakeFactory()
	svc := NewRetrievalService(factory, nopLogger{})
	ownerId := uuid.New()

	older := entity.RetrievalEntry{
		Id:        uuid.New(),
		OwnerId:   ownerId,
		Kind:      entity.RetrievalKindTextBlock,
		Name:      "GERICHTSSTAND",
		Content:   "Alte Fassung",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := entity.RetrievalEntry{
		Id:        uuid.New(),
		OwnerId:   ownerId,
		Kind:      entity.RetrievalKindTextBlock,
		Name:      "GERICHTSSTAND",
		Content:   "Neue Fassung",
		CreatedAt: time.Now(),
	}
	// Insertion order newest first, so the test actually exercises the
	// created_at ordering.
	require.NoError(t, factory.uow.retrievalRepo.Create(context.Background(), &newer))
	require.NoError(t, factory.uow.retrievalRepo.Create(context.Background(), &older))

	result := svc.Lookup(context.Background(), ownerId, entity.RetrievalKindTextBlock, "GERICHTSSTAND")
	require.True(t, result.Found)
	assert.Equal(t, "Alte Fassung", result.Content)
}

func TestRetrievalService_UpdateUnknownEntryReturnsNil(t *testing.T) {
	factory := newFakeFactory()
	svc := NewRetrievalService(factory, nopLogger{})

	updated, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateRetrievalEntryRequest{
		Id:      uuid.New(),
		Name:    "X",
		Content: "Y",
	})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestRetrievalService_ListFiltersByKind(t *testing.T) {
	factory := newFakeFactory()
	svc := NewRetrievalService(factory, nopLogger{})
	ownerId := uuid.New()

	for _, e := range []struct{ kind, name string }{
		{"template", "Klage"},
		{"text_block", "HAFTUNG"},
		{"text_block", "GERICHTSSTAND"},
	} {
		_, err := svc.Create(context.Background(), ownerId, &dto.CreateRetrievalEntryRequest{
			Kind:    e.kind,
			Name:    e.name,
			Content: "Inhalt",
		})
		require.NoError(t, err)
	}

	blocks, err := svc.List(context.Background(), ownerId, "text_block")
	require.NoError(t, err)
	assert.Len(t, blocks, 2)

	all, err := svc.List(context.Background(), ownerId, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
