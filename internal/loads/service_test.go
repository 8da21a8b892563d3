package loads

import (
	"context"
	"sync"
	"testing"
	"time"

	"gesla-logistics-api-server/internal/models"
	"gesla-logistics-api-server/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test doubles ---

type fakeStore struct {
	mu    sync.Mutex
	order []string
	data  map[string]models.Load
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]models.Load{}}
}

func (s *fakeStore) GetAll(ctx context.Context) ([]models.Load, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Load, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id])
	}
	return out, nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*models.Load, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	load, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	copied := load
	return &copied, nil
}

func (s *fakeStore) Create(ctx context.Context, load *models.Load) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order, load.LoadID)
	s.data[load.LoadID] = *load
	return nil
}

func (s *fakeStore) Update(ctx context.Context, id string, load *models.Load) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = *load
	return nil
}

func (s *fakeStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.data)), nil
}

type dispatched struct {
	load models.Load
	prev *models.LoadStatus
}

type recordingDispatcher struct {
	events []dispatched
}

func (d *recordingDispatcher) Dispatch(load models.Load, prev *models.LoadStatus) {
	d.events = append(d.events, dispatched{load: load, prev: prev})
}

type recordingNotifier struct {
	notifications []notify.Notification
}

func (n *recordingNotifier) AddNotification(notification notify.Notification) {
	n.notifications = append(n.notifications, notification)
}

func (n *recordingNotifier) byType(t string) []notify.Notification {
	var out []notify.Notification
	for _, notification := range n.notifications {
		if notification.Type == t {
			out = append(out, notification)
		}
	}
	return out
}

type recordingAlerts struct {
	calls    int
	lastLink string
}

func (a *recordingAlerts) SendAlert(ctx context.Context, message, link string) error {
	a.calls++
	a.lastLink = link
	return nil
}

type fixture struct {
	svc        *Service
	store      *fakeStore
	dispatcher *recordingDispatcher
	notifier   *recordingNotifier
	alerts     *recordingAlerts
	clock      *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFakeStore()
	dispatcher := &recordingDispatcher{}
	notifier := &recordingNotifier{}
	alerts := &recordingAlerts{}
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	svc := NewService(store, dispatcher, notifier, alerts, "https://app.gesla.local")
	svc.Now = func() time.Time { return now }

	return &fixture{svc: svc, store: store, dispatcher: dispatcher, notifier: notifier, alerts: alerts, clock: &now}
}

func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func validLoad() models.Load {
	return models.Load{
		ShippingType: models.ShippingCIF,
		Carrier:      "TransNorte",
		CarrierID:    "carrier-1",
		Deliveries: []models.Delivery{{
			ClientID:        "client-1",
			Client:          "Acme Ltda",
			ClientType:      models.ClientContributor,
			DestinationCity: "Curitiba",
			DestinationUF:   "PR",
			Items:           []models.DeliveryItem{{Description: "Steel coils", Quantity: 10, Unit: "un", Weight: 1000}},
		}},
	}
}

// --- Save: creation ---

func TestSaveCreateDefaults(t *testing.T) {
	f := newFixture(t)

	input := validLoad()
	input.FreightValue = 6000 // legacy root only, no financial sub-object

	load, err := f.svc.Save(context.Background(), input, "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, load.LoadID)
	assert.Equal(t, "GSL-26-001", load.PortCode)
	assert.Equal(t, models.StatusTransit, load.Status)
	assert.True(t, load.Active)
	assert.Equal(t, "user-1", load.CreatedBy)

	require.NotNil(t, load.Financial)
	assert.Equal(t, 6000.0, load.Financial.FreightValue)
	assert.Equal(t, 0.0, load.Financial.CustomerFreightValue)
	assert.Equal(t, 6000.0, load.FreightValue)
	require.NotNil(t, load.Vehicle)

	require.Len(t, load.History, 1)
	assert.Equal(t, models.StatusTransit, load.History[0].Status)
	assert.Equal(t, "user-1", load.History[0].UserID)

	require.Len(t, f.dispatcher.events, 1)
	assert.Nil(t, f.dispatcher.events[0].prev)
	assert.Len(t, f.notifier.byType("created"), 1)
}

func TestSaveCreatePortCodeSequence(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Save(context.Background(), validLoad(), "user-1")
	require.NoError(t, err)
	second, err := f.svc.Save(context.Background(), validLoad(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "GSL-26-001", first.PortCode)
	assert.Equal(t, "GSL-26-002", second.PortCode)
}

func TestSaveValidation(t *testing.T) {
	f := newFixture(t)

	noDeliveries := validLoad()
	noDeliveries.Deliveries = nil
	_, err := f.svc.Save(context.Background(), noDeliveries, "user-1")
	assert.ErrorIs(t, err, ErrNoDeliveries)

	emptyItems := validLoad()
	emptyItems.Deliveries[0].Items = nil
	_, err = f.svc.Save(context.Background(), emptyItems, "user-1")
	assert.ErrorIs(t, err, ErrDeliveryWithoutItems)
}

func TestSaveMultiDeliverySynthesis(t *testing.T) {
	f := newFixture(t)

	input := validLoad()
	input.Deliveries = append(input.Deliveries, models.Delivery{
		ClientID:        "client-2",
		Client:          "Beta SA",
		ClientType:      models.ClientNonContributor,
		DestinationCity: "Londrina",
		DestinationUF:   "PR",
		Items:           []models.DeliveryItem{{Description: "Pipes", Quantity: 5, Unit: "un", Weight: 400}},
	})

	load, err := f.svc.Save(context.Background(), input, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "Acme Ltda +1", load.Client)
	assert.Equal(t, "client-1", load.ClientID)
	assert.Equal(t, models.ClientContributor, load.ClientType)
	assert.Equal(t, "Curitiba", load.DestinationCity)
	assert.Equal(t, 1400.0, load.TotalWeight)
}

// --- Save: update ---

func TestSaveUpdatePreservesHistory(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Save(context.Background(), validLoad(), "user-1")
	require.NoError(t, err)

	f.advance(time.Hour)
	update := validLoad()
	update.LoadID = created.LoadID
	// A hostile or buggy caller sends its own history; it must be ignored.
	update.History = []models.HistoryEvent{{Status: models.StatusCancelled}}
	update.Financial = &models.LoadFinancial{FreightValue: 7000, CustomerFreightValue: 10000}

	updated, err := f.svc.Save(context.Background(), update, "user-2")
	require.NoError(t, err)

	require.Len(t, updated.History, 1)
	assert.Equal(t, created.History[0], updated.History[0])
	assert.Equal(t, created.PortCode, updated.PortCode)
	assert.Equal(t, created.CreatedBy, updated.CreatedBy)
	assert.Equal(t, 7000.0, updated.FreightValue)

	require.Len(t, f.dispatcher.events, 2)
	require.NotNil(t, f.dispatcher.events[1].prev)
	assert.Equal(t, models.StatusTransit, *f.dispatcher.events[1].prev)
}

func TestSaveUpdateMissingLoad(t *testing.T) {
	f := newFixture(t)

	input := validLoad()
	input.LoadID = "does-not-exist"
	_, err := f.svc.Save(context.Background(), input, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

// --- UpdateStatus ---

func TestUpdateStatusHistoryMonotonicity(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Save(context.Background(), validLoad(), "user-1")
	require.NoError(t, err)

	sequence := []models.LoadStatus{
		models.StatusArrived,
		models.StatusIdentified,
		models.StatusBilled,
		models.StatusDispatched,
	}
	var snapshots [][]models.HistoryEvent
	for i, status := range sequence {
		f.advance(time.Hour)
		load, err := f.svc.UpdateStatus(context.Background(), created.LoadID, status, "user-1", "")
		require.NoError(t, err)
		assert.Len(t, load.History, i+2)
		snapshots = append(snapshots, load.History)
	}

	// No earlier entry was mutated by later transitions.
	final := snapshots[len(snapshots)-1]
	for i, snap := range snapshots {
		assert.Equal(t, snap, final[:i+2])
	}
}

func TestUpdateStatusMissingLoadIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), "missing", models.StatusArrived, "user-1", "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.dispatcher.events)
	assert.Empty(t, f.notifier.notifications)
}

func TestCompletedStampsActualDeliveryDateOnce(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Save(context.Background(), validLoad(), "user-1")
	require.NoError(t, err)

	f.advance(48 * time.Hour)
	firstCompletion := *f.clock
	load, err := f.svc.UpdateStatus(context.Background(), created.LoadID, models.StatusCompleted, "user-1", "")
	require.NoError(t, err)
	require.NotNil(t, load.ActualDeliveryDate)
	assert.Equal(t, firstCompletion, *load.ActualDeliveryDate)

	// A second COMPLETED transition appends history but leaves the date alone.
	f.advance(24 * time.Hour)
	load, err = f.svc.UpdateStatus(context.Background(), created.LoadID, models.StatusCompleted, "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, firstCompletion, *load.ActualDeliveryDate)
	assert.Len(t, load.History, 3)
}

func TestLifecycleScenario(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Save(context.Background(), validLoad(), "user-1")
	require.NoError(t, err)

	sequence := []models.LoadStatus{models.StatusArrived, models.StatusDispatched, models.StatusCompleted}
	for _, status := range sequence {
		f.advance(time.Hour)
		_, err = f.svc.UpdateStatus(context.Background(), created.LoadID, status, "user-1", "")
		require.NoError(t, err)
	}

	load, err := f.svc.GetByID(context.Background(), created.LoadID)
	require.NoError(t, err)

	require.Len(t, load.History, 4)
	expected := []models.LoadStatus{models.StatusTransit, models.StatusArrived, models.StatusDispatched, models.StatusCompleted}
	for i, status := range expected {
		assert.Equal(t, status, load.History[i].Status)
	}
	require.NotNil(t, load.ActualDeliveryDate)
	assert.Equal(t, load.History[3].Timestamp, *load.ActualDeliveryDate)
}

// --- Fiscal gating ---

func TestFiscalGatingOnDispatch(t *testing.T) {
	f := newFixture(t)

	input := validLoad()
	input.Deliveries[0].ClientType = models.ClientNonContributor
	input.PaymentProof = "proof.pdf"
	// difalGuide intentionally empty

	created, err := f.svc.Save(context.Background(), input, "user-1")
	require.NoError(t, err)

	load, err := f.svc.UpdateStatus(context.Background(), created.LoadID, models.StatusDispatched, "user-1", "")
	require.NoError(t, err)

	// Advisory gate: exactly one notification, no rollback.
	assert.Equal(t, models.StatusDispatched, load.Status)
	assert.Len(t, f.notifier.byType("fiscal_blocked"), 1)
	assert.Equal(t, 1, f.alerts.calls)
	assert.Contains(t, f.alerts.lastLink, load.LoadID)
}

func TestFiscalGateSilentWhenCompliant(t *testing.T) {
	f := newFixture(t)

	input := validLoad()
	input.Deliveries[0].ClientType = models.ClientNonContributor
	input.PaymentProof = "proof.pdf"
	input.DifalGuide = "guide.pdf"

	created, err := f.svc.Save(context.Background(), input, "user-1")
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), created.LoadID, models.StatusBilled, "user-1", "")
	require.NoError(t, err)

	assert.Empty(t, f.notifier.byType("fiscal_blocked"))
	assert.Equal(t, 0, f.alerts.calls)
}

// --- Archive / restore ---

func TestArchiveRestore(t *testing.T) {
	f := newFixture(t)

	input := validLoad()
	input.Deliveries[0].ClientType = models.ClientNonContributor // fiscal problem while non-terminal

	created, err := f.svc.Save(context.Background(), input, "user-1")
	require.NoError(t, err)

	for _, status := range []models.LoadStatus{models.StatusArrived, models.StatusDispatched, models.StatusCompleted} {
		f.advance(time.Hour)
		_, err = f.svc.UpdateStatus(context.Background(), created.LoadID, status, "user-1", "")
		require.NoError(t, err)
	}

	// Terminal: out of the pending-fiscal view despite missing documents.
	pending, err := f.svc.PendingFiscal(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)

	archived, err := f.svc.ListArchive(context.Background())
	require.NoError(t, err)
	require.Len(t, archived, 1)

	f.advance(time.Hour)
	restored, err := f.svc.Restore(context.Background(), created.LoadID, "user-2")
	require.NoError(t, err)

	require.Len(t, restored.History, 5)
	assert.Equal(t, models.StatusTransit, restored.History[4].Status)
	assert.Equal(t, "user-2", restored.History[4].UserID)

	// Back in TRANSIT the same load shows up again: only the current
	// status matters, not past history.
	pending, err = f.svc.PendingFiscal(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

// --- Soft delete ---

func TestSoftDeleteExcludesFromListings(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Save(context.Background(), validLoad(), "user-1")
	require.NoError(t, err)

	require.NoError(t, f.svc.SoftDelete(context.Background(), created.LoadID))

	active, err := f.svc.ListActive(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, active)

	// Still addressable by id.
	load, err := f.svc.GetByID(context.Background(), created.LoadID)
	require.NoError(t, err)
	assert.False(t, load.Active)
}

// --- Documents ---

func TestAttachDocument(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Save(context.Background(), validLoad(), "user-1")
	require.NoError(t, err)
	historyLen := len(created.History)

	load, err := f.svc.AttachDocument(context.Background(), created.LoadID, DocDifalGuide, "https://cdn/guide.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/guide.pdf", load.DifalGuide)
	assert.Len(t, load.History, historyLen)

	_, err = f.svc.AttachDocument(context.Background(), created.LoadID, DocumentKind("bogus"), "x")
	assert.Error(t, err)
}
