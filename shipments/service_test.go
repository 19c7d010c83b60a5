package shipments

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"invoice-service/config"
	"invoice-service/core"
	invoicemodels "invoice-service/invoices/models"
	"invoice-service/shipments/models"
	"invoice-service/shipments/repositories"
	"sort"
	"testing"
	"time"
)

type memoryStore struct {
	rows   map[int64]models.Shipment
	nextID int64
	txs    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: map[int64]models.Shipment{}, nextID: 1}
}

func (m *memoryStore) Create(_ context.Context, s *models.Shipment) error {
	s.ID = m.nextID
	m.nextID++
	m.rows[s.ID] = *s
	return nil
}

func (m *memoryStore) Update(_ context.Context, s *models.Shipment) error {
	if _, ok := m.rows[s.ID]; !ok {
		return core.ErrNotFound
	}
	m.rows[s.ID] = *s
	return nil
}

func (m *memoryStore) FindByID(_ context.Context, id int64) (*models.Shipment, error) {
	s, ok := m.rows[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &s, nil
}

func (m *memoryStore) FindAllBy(context.Context, *core.Pageable) ([]models.Shipment, error) {
	out := make([]models.Shipment, 0, len(m.rows))
	for _, s := range m.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) FindAll(ctx context.Context) ([]models.Shipment, error) {
	return m.FindAllBy(ctx, nil)
}

func (m *memoryStore) FindOneWithEagerRelationships(ctx context.Context, id int64) (*models.Shipment, error) {
	return m.FindByID(ctx, id)
}

func (m *memoryStore) FindAllWithEagerRelationships(ctx context.Context, page *core.Pageable) ([]models.Shipment, error) {
	return m.FindAllBy(ctx, page)
}

func (m *memoryStore) Count(context.Context) (int64, error) {
	return int64(len(m.rows)), nil
}

func (m *memoryStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.rows[id]
	return ok, nil
}

func (m *memoryStore) Delete(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func (m *memoryStore) Transaction(_ context.Context, fn func(repositories.Store) error) error {
	m.txs++
	return fn(m)
}

func ptr[T any](v T) *T {
	return &v
}

func newTestService(t *testing.T, store repositories.Store) *Service {
	return NewService(zaptest.NewLogger(t), nil, store, time.Second)
}

func TestSaveResolvesInvoiceID(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(t, store)

	saved, err := svc.Save(context.Background(), &models.Shipment{
		TrackingCode: ptr("TRK-1"),
		Date:         time.Now(),
		Invoice:      &invoicemodels.Invoice{ID: 9},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, int64(9), store.rows[1].InvoiceID)
}

func TestSaveValidation(t *testing.T) {
	svc := newTestService(t, newMemoryStore())

	_, err := svc.Save(context.Background(), &models.Shipment{Date: time.Now()})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.Save(context.Background(), &models.Shipment{InvoiceID: 1})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateMissingShipment(t *testing.T) {
	svc := newTestService(t, newMemoryStore())

	_, err := svc.Update(context.Background(), &models.Shipment{ID: 5, Date: time.Now(), InvoiceID: 1})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestPartialUpdateKeepsUnsetFields(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	saved, err := svc.Save(ctx, &models.Shipment{
		TrackingCode: ptr("TRK-1"),
		Date:         date,
		Details:      ptr("leave at door"),
		InvoiceID:    2,
	})
	require.NoError(t, err)

	updated, err := svc.PartialUpdate(ctx, &models.ShipmentPatch{ID: saved.ID, Details: ptr("ring twice")})
	require.NoError(t, err)

	assert.Equal(t, "TRK-1", *updated.TrackingCode)
	assert.Equal(t, date, updated.Date)
	assert.Equal(t, "ring twice", *updated.Details)
	assert.Equal(t, int64(2), updated.InvoiceID)
	assert.Equal(t, "ring twice", *store.rows[saved.ID].Details)
	assert.Equal(t, 1, store.txs)
}

func TestPartialUpdateMissingShipment(t *testing.T) {
	svc := newTestService(t, newMemoryStore())

	_, err := svc.PartialUpdate(context.Background(), &models.ShipmentPatch{ID: 77, TrackingCode: ptr("X")})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFindCountDelete(t *testing.T) {
	svc := newTestService(t, newMemoryStore())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Save(ctx, &models.Shipment{Date: time.Now(), InvoiceID: 1})
		require.NoError(t, err)
	}

	all, err := svc.FindAll(ctx, core.NewPageable(0, 20))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	eager, err := svc.FindAllWithEagerRelationships(ctx, core.NewPageable(0, 20))
	require.NoError(t, err)
	assert.Equal(t, all, eager)

	require.NoError(t, svc.Delete(ctx, 2))

	count, err := svc.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	exists, err := svc.Exists(ctx, 2)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.FindOne(ctx, 2)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestServiceTracedInDevProfile(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(obsCore)
	svc := NewService(logger, core.NewLoggingAspect(config.ProfileDev, logger), newMemoryStore(), 0)

	_, err := svc.FindOne(context.Background(), 1)
	require.ErrorIs(t, err, core.ErrNotFound)

	assert.Equal(t, 1, logs.FilterMessage("Request to get Shipment").Len())
	assert.Equal(t, 1, logs.FilterMessage("Enter: ShipmentService.FindOne() with argument[s]").Len())
	assert.Equal(t, 1, logs.FilterMessage("Exception in ShipmentService.FindOne() with cause").Len())
}
