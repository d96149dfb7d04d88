// internal/service/customer/customer_test.go
package customer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"crm-service/internal/domain/customer"
	"crm-service/internal/domain/docstore"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore is an in-memory docstore.Store with the same not-found and
// merge semantics as the Postgres implementation.
type memStore struct {
	partitions map[string]map[string]map[string]interface{}
	order      map[string][]string
	nextID     int
}

func newMemStore() *memStore {
	return &memStore{
		partitions: make(map[string]map[string]map[string]interface{}),
		order:      make(map[string][]string),
	}
}

func (m *memStore) Insert(_ context.Context, partition string, doc map[string]interface{}) (string, error) {
	m.nextID++
	id := fmt.Sprintf("doc-%d", m.nextID)
	if m.partitions[partition] == nil {
		m.partitions[partition] = make(map[string]map[string]interface{})
	}
	stored := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		stored[k] = v
	}
	m.partitions[partition][id] = stored
	m.order[partition] = append(m.order[partition], id)
	return id, nil
}

func (m *memStore) Put(_ context.Context, partition, id string, doc map[string]interface{}) error {
	if m.partitions[partition] == nil {
		m.partitions[partition] = make(map[string]map[string]interface{})
	}
	if _, ok := m.partitions[partition][id]; !ok {
		m.order[partition] = append(m.order[partition], id)
	}
	stored := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		stored[k] = v
	}
	m.partitions[partition][id] = stored
	return nil
}

func (m *memStore) ListAll(_ context.Context, partition string) ([]docstore.Document, error) {
	var docs []docstore.Document
	for _, id := range m.order[partition] {
		if doc, ok := m.partitions[partition][id]; ok {
			docs = append(docs, docstore.Document{ID: id, Data: doc})
		}
	}
	return docs, nil
}

func (m *memStore) GetOne(_ context.Context, partition, id string) (map[string]interface{}, error) {
	doc, ok := m.partitions[partition][id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return doc, nil
}

func (m *memStore) MergeUpdate(_ context.Context, partition, id string, partial map[string]interface{}) error {
	doc, ok := m.partitions[partition][id]
	if !ok {
		return xerrors.ErrNotFound
	}
	for k, v := range partial {
		doc[k] = v
	}
	return nil
}

func (m *memStore) Delete(_ context.Context, partition, id string) error {
	delete(m.partitions[partition], id)
	return nil
}

type recordingPublisher struct {
	events []customer.Event
}

func (p *recordingPublisher) PublishCustomerEvent(e customer.Event) {
	p.events = append(p.events, e)
}

func newTestService() (*CustomerService, *memStore, *recordingPublisher) {
	store := newMemStore()
	pub := &recordingPublisher{}
	svc := NewCustomerService(store, pub, zap.NewNop())
	return svc, store, pub
}

func TestCreateRoundTrip(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "customers_public", &customer.CreateCustomerRequest{
		Type:        customer.TypeCompany,
		CompanyName: "Acme",
		Country:     "DE",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, "customers_public", created.ID)
	require.NoError(t, err)

	assert.Equal(t, customer.TypeCompany, got.Type)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "DE", got.Country)
	assert.Equal(t, customer.StatusActive, got.Status)
	assert.NotZero(t, got.CreatedAt)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestCreateDefaultsStatusBeforePersisting(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "p", &customer.CreateCustomerRequest{
		Type:   customer.TypePrivate,
		Status: "bogus",
	})
	require.NoError(t, err)

	// The stored document itself carries the defaulted status.
	raw, err := store.GetOne(ctx, "p", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", raw["status"])

	inactive, err := svc.Create(ctx, "p", &customer.CreateCustomerRequest{
		Type:   customer.TypePrivate,
		Status: "inactive",
	})
	require.NoError(t, err)
	assert.Equal(t, customer.StatusInactive, inactive.Status)
}

func TestGetNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Get(context.Background(), "p", "missing")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestListNormalizesDriftedDocuments(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	// A document written by an older version: no status, no timestamps.
	_, err := store.Insert(ctx, "p", map[string]interface{}{
		"type":      "private",
		"firstName": "Ana",
	})
	require.NoError(t, err)

	records, err := svc.List(ctx, "p")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, customer.StatusActive, records[0].Status)
	assert.Zero(t, records[0].CreatedAt)
	assert.Zero(t, records[0].UpdatedAt)
}

func TestUpdateMergesAndBumpsUpdatedAt(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "p", &customer.CreateCustomerRequest{
		Type:        customer.TypeCompany,
		CompanyName: "Acme",
		City:        "Berlin",
	})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.UnixMilli(created.CreatedAt).Add(time.Minute) }

	country := "X"
	updated, err := svc.Update(ctx, "p", created.ID, &customer.UpdateCustomerRequest{
		Country: &country,
	})
	require.NoError(t, err)
	assert.Equal(t, "X", updated.Country)

	got, err := svc.Get(ctx, "p", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "X", got.Country)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "Berlin", got.City)
	assert.Greater(t, got.UpdatedAt, got.CreatedAt)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	country := "X"
	_, err := svc.Update(context.Background(), "p", "missing", &customer.UpdateCustomerRequest{Country: &country})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "p", &customer.CreateCustomerRequest{Type: customer.TypePrivate})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "p", created.ID))
	require.NoError(t, svc.Delete(ctx, "p", created.ID))

	_, err = svc.Get(ctx, "p", created.ID)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestPartitionsAreIsolated(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "customers_alice", &customer.CreateCustomerRequest{Type: customer.TypePrivate, FirstName: "A"})
	require.NoError(t, err)

	records, err := svc.List(ctx, "customers_bob")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearchAndStats(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "p", &customer.CreateCustomerRequest{
		Type: customer.TypeCompany, CompanyName: "Acme", Country: "DE",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "p", &customer.CreateCustomerRequest{
		Type: customer.TypePrivate, FirstName: "Ana", LastName: "Li", Country: "FR", Status: "inactive",
	})
	require.NoError(t, err)

	got, err := svc.Search(ctx, "p", customer.ListFilters{Status: "active"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].CompanyName)

	got, err = svc.Search(ctx, "p", customer.ListFilters{Country: "FR"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana Li", customer.DisplayName(got[0]))

	stats, err := svc.Stats(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 2, stats.NewThisMonth)

	countries, err := svc.Countries(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, []string{"DE", "FR"}, countries)
}

func TestEventsArePublishedPerPartition(t *testing.T) {
	svc, _, pub := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "customers_x", &customer.CreateCustomerRequest{Type: customer.TypePrivate})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "customers_x", created.ID))

	require.Len(t, pub.events, 2)
	assert.Equal(t, customer.EventCreated, pub.events[0].Action)
	assert.Equal(t, "customers_x", pub.events[0].Partition)
	assert.Equal(t, created.ID, pub.events[0].ID)
	require.NotNil(t, pub.events[0].Record)
	assert.Equal(t, created.ID, pub.events[0].Record.ID)
	assert.Equal(t, customer.EventDeleted, pub.events[1].Action)
	assert.Nil(t, pub.events[1].Record)
}
