// server/internal/loads/service.go
package loads

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gesla-logistics-api-server/internal/models"
	"gesla-logistics-api-server/internal/notify"

	"github.com/google/uuid"
)

var (
	ErrNotFound             = errors.New("load not found")
	ErrNoDeliveries         = errors.New("load must have at least one delivery")
	ErrDeliveryWithoutItems = errors.New("every delivery must have at least one item")
)

// Store is the slice of the entity store the load engine consumes.
// The Mongo implementation lives in internal/store; tests use an
// in-memory fake.
type Store interface {
	GetAll(ctx context.Context) ([]models.Load, error)
	GetByID(ctx context.Context, id string) (*models.Load, error)
	Create(ctx context.Context, load *models.Load) error
	Update(ctx context.Context, id string, load *models.Load) error
	Count(ctx context.Context) (int64, error)
}

// EventDispatcher receives the (updatedLoad, previousStatus) pair after
// every persisted save or transition. prev is nil on creation.
type EventDispatcher interface {
	Dispatch(load models.Load, prev *models.LoadStatus)
}

// Notifier is the fire-and-forget notification sink.
type Notifier interface {
	AddNotification(n notify.Notification)
}

// AlertChannel is the optional WhatsApp-bot style side channel for
// fiscal alerts. Failures are logged, never propagated.
type AlertChannel interface {
	SendAlert(ctx context.Context, message, link string) error
}

// Service is the load lifecycle engine. All side effects run after the
// authoritative state mutation has been persisted; none of them roll a
// transition back.
type Service struct {
	Store      Store
	Events     EventDispatcher
	Notifier   Notifier
	Alerts     AlertChannel // nil when no bot gateway is configured
	AppBaseURL string
	Now        func() time.Time
}

func NewService(store Store, events EventDispatcher, notifier Notifier, alerts AlertChannel, appBaseURL string) *Service {
	return &Service{
		Store:      store,
		Events:     events,
		Notifier:   notifier,
		Alerts:     alerts,
		AppBaseURL: appBaseURL,
		Now:        time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Save creates the load when input.LoadID is empty, otherwise updates it.
// Stored history is never replaced by caller-supplied history.
func (s *Service) Save(ctx context.Context, input models.Load, actingUserID string) (*models.Load, error) {
	if err := validateDeliveries(input); err != nil {
		return nil, err
	}

	NormalizeFinancial(&input)
	NormalizeVehicle(&input)
	SynthesizeDisplayFields(&input)

	now := s.now()

	if input.LoadID == "" {
		return s.create(ctx, input, actingUserID, now)
	}
	return s.update(ctx, input, now)
}

func (s *Service) create(ctx context.Context, load models.Load, actingUserID string, now time.Time) (*models.Load, error) {
	load.LoadID = uuid.New().String()

	count, err := s.Store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count loads for port code: %w", err)
	}
	load.PortCode = GeneratePortCode(now, count+1)

	if load.Status == "" {
		load.Status = models.StatusTransit
	}
	if load.Date.IsZero() {
		load.Date = now
	}
	load.History = []models.HistoryEvent{{
		Status:    load.Status,
		Timestamp: now,
		UserID:    actingUserID,
		Notes:     "Load created",
	}}
	load.Active = true
	load.CreatedBy = actingUserID
	load.CreatedAt = now
	load.UpdatedAt = now

	if err := s.Store.Create(ctx, &load); err != nil {
		return nil, err
	}

	s.Notifier.AddNotification(notify.Notification{
		Title:       "Load created",
		Description: fmt.Sprintf("Load %s created for %s", load.PortCode, load.Client),
		Type:        "created",
		Link:        s.loadLink(load.LoadID),
	})
	s.Events.Dispatch(load, nil)

	return &load, nil
}

func (s *Service) update(ctx context.Context, input models.Load, now time.Time) (*models.Load, error) {
	existing, err := s.Store.GetByID(ctx, input.LoadID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	prev := existing.Status

	// Fields the caller can never overwrite.
	input.ID = existing.ID
	input.History = existing.History
	input.PortCode = existing.PortCode
	input.Active = existing.Active
	input.CreatedBy = existing.CreatedBy
	input.CreatedAt = existing.CreatedAt

	if input.Status == "" {
		input.Status = existing.Status
	}
	if input.ActualDeliveryDate == nil {
		input.ActualDeliveryDate = existing.ActualDeliveryDate
	}
	if input.Date.IsZero() {
		input.Date = existing.Date
	}
	input.UpdatedAt = now

	if err := s.Store.Update(ctx, input.LoadID, &input); err != nil {
		return nil, err
	}

	s.Events.Dispatch(input, &prev)
	return &input, nil
}

// UpdateStatus appends a history event, persists the new status and fires
// the side effects. Transitioning into COMPLETED stamps actualDeliveryDate
// the first time only.
func (s *Service) UpdateStatus(ctx context.Context, id string, newStatus models.LoadStatus, actingUserID, notes string) (*models.Load, error) {
	load, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, ErrNotFound
	}
	prev := load.Status
	now := s.now()

	load.History = append(load.History, models.HistoryEvent{
		Status:    newStatus,
		Timestamp: now,
		UserID:    actingUserID,
		Notes:     notes,
	})
	if newStatus == models.StatusCompleted && load.ActualDeliveryDate == nil {
		load.ActualDeliveryDate = &now
	}
	load.Status = newStatus
	load.UpdatedAt = now

	if err := s.Store.Update(ctx, id, load); err != nil {
		return nil, err
	}

	// Everything below is best-effort: the transition is already committed.
	s.Events.Dispatch(*load, &prev)

	if newStatus == models.StatusDispatched || newStatus == models.StatusBilled {
		s.checkFiscal(ctx, *load)
	}

	return load, nil
}

// checkFiscal raises the advisory fiscal-blocked alerts. The transition is
// deliberately not prevented.
func (s *Service) checkFiscal(ctx context.Context, load models.Load) {
	if !IsFiscalProblem(load) {
		return
	}

	link := s.loadLink(load.LoadID)
	s.Notifier.AddNotification(notify.Notification{
		Title:       "Fiscal pending",
		Description: fmt.Sprintf("Load %s moved to %s without DIFAL documents", load.PortCode, load.Status),
		Type:        "fiscal_blocked",
		Link:        link,
	})

	if s.Alerts != nil {
		msg := fmt.Sprintf("Fiscal alert: load %s (%s) is missing DIFAL guide or payment proof", load.PortCode, load.Client)
		if err := s.Alerts.SendAlert(ctx, msg, link); err != nil {
			log.Printf("WhatsApp alert failed for load %s: %v", load.PortCode, err)
		}
	}
}

// Restore brings an archived load back to TRANSIT.
func (s *Service) Restore(ctx context.Context, id, actingUserID string) (*models.Load, error) {
	return s.UpdateStatus(ctx, id, models.StatusTransit, actingUserID, "Restored from archive")
}

// SoftDelete flips active to false. The record stays addressable by id.
func (s *Service) SoftDelete(ctx context.Context, id string) error {
	load, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if load == nil {
		return ErrNotFound
	}
	load.Active = false
	load.UpdatedAt = s.now()
	return s.Store.Update(ctx, id, load)
}

// GetByID returns a load regardless of its active flag.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Load, error) {
	load, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, ErrNotFound
	}
	return load, nil
}

// ListActive returns active loads, optionally filtered by status.
func (s *Service) ListActive(ctx context.Context, status models.LoadStatus) ([]models.Load, error) {
	all, err := s.Store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	loads := []models.Load{}
	for _, l := range all {
		if !l.Active {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		loads = append(loads, l)
	}
	return loads, nil
}

// ListArchive returns active loads in a terminal status.
func (s *Service) ListArchive(ctx context.Context) ([]models.Load, error) {
	all, err := s.Store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	archived := []models.Load{}
	for _, l := range all {
		if l.Active && l.Status.IsArchived() {
			archived = append(archived, l)
		}
	}
	return archived, nil
}

// PendingFiscal returns active, non-terminal loads with an outstanding
// DIFAL obligation. Only the current status matters, not past history.
func (s *Service) PendingFiscal(ctx context.Context) ([]models.Load, error) {
	all, err := s.Store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	pending := []models.Load{}
	for _, l := range all {
		if IsPendingFiscal(l) {
			pending = append(pending, l)
		}
	}
	return pending, nil
}

// DocumentKind selects which attachment field of a load to set.
type DocumentKind string

const (
	DocPaymentProof  DocumentKind = "payment-proof"
	DocDifalGuide    DocumentKind = "difal-guide"
	DocDeliveryProof DocumentKind = "delivery-proof"
)

// AttachDocument records an uploaded document name on the load. It does not
// append history; attaching paperwork is not a lifecycle transition.
func (s *Service) AttachDocument(ctx context.Context, id string, kind DocumentKind, name string) (*models.Load, error) {
	load, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, ErrNotFound
	}

	switch kind {
	case DocPaymentProof:
		load.PaymentProof = name
	case DocDifalGuide:
		load.DifalGuide = name
	case DocDeliveryProof:
		load.DeliveryProof = name
	default:
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}
	load.UpdatedAt = s.now()

	if err := s.Store.Update(ctx, id, load); err != nil {
		return nil, err
	}
	return load, nil
}

func (s *Service) loadLink(id string) string {
	if s.AppBaseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/loads/%s", s.AppBaseURL, id)
}

func validateDeliveries(load models.Load) error {
	if len(load.Deliveries) == 0 {
		return ErrNoDeliveries
	}
	for _, d := range load.Deliveries {
		if len(d.Items) == 0 {
			return ErrDeliveryWithoutItems
		}
	}
	return nil
}
