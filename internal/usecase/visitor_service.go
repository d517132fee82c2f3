package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/harbourview/aptly/internal/adapter/metrics"
	"github.com/harbourview/aptly/internal/domain"
)

// ErrBadAction is returned when a resolution action is neither approve nor
// reject.
var ErrBadAction = errors.New(`action must be "approve" or "reject"`)

// QRPayload is the JSON a client encodes into the QR image. The verify URL
// carries the tenant out-of-band: at scan time no token exists, so the
// apartment name rides on the link itself. Anyone holding the link can
// resolve the pass; this is a deliberate low-security convenience flow.
type QRPayload struct {
	PassID        uuid.UUID `json:"pass_id"`
	Apartment     string    `json:"apartment_complex_name"`
	ResidentName  string    `json:"resident_name"`
	ApartmentCode string    `json:"apartment_code"`
	NumOfVisitors int       `json:"num_of_visitors"`
	VisitorNames  []string  `json:"visitor_names"`
	Phone         string    `json:"phone"`
	CreatedAt     time.Time `json:"created_at"`
	VerifyURL     string    `json:"verify_url"`
}

// VisitorService owns the visitor pass lifecycle: Pending is the only
// non-terminal state, and the Pending -> Approved|Rejected transition happens
// exactly once.
type VisitorService struct {
	stores  domain.StoreProvider
	baseURL string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewVisitorService creates a new VisitorService.
func NewVisitorService(stores domain.StoreProvider, baseURL string, logger *slog.Logger, m *metrics.Metrics) *VisitorService {
	return &VisitorService{
		stores:  stores,
		baseURL: baseURL,
		logger:  logger.With("component", "visitor_service"),
		metrics: m,
	}
}

// CreatePass creates a Pending pass for an authenticated resident, copying
// name, apartment code and phone from the resident's profile. Later profile
// edits do not touch the pass.
func (s *VisitorService) CreatePass(ctx context.Context, apartment string, residentID uuid.UUID, numOfVisitors int, visitorNames []string) (*domain.VisitorPass, *QRPayload, error) {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return nil, nil, err
	}

	resident, err := store.Residents().FindByID(ctx, residentID)
	if err != nil {
		return nil, nil, err
	}

	pass := &domain.VisitorPass{
		ID:            uuid.New(),
		ResidentID:    resident.ID,
		ResidentName:  resident.Name,
		ApartmentCode: resident.ApartmentCode,
		NumOfVisitors: numOfVisitors,
		VisitorNames:  visitorNames,
		Phone:         resident.Phone,
		Status:        domain.VisitorPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := store.VisitorPasses().Store(ctx, pass); err != nil {
		return nil, nil, err
	}

	payload := &QRPayload{
		PassID:        pass.ID,
		Apartment:     apartment,
		ResidentName:  pass.ResidentName,
		ApartmentCode: pass.ApartmentCode,
		NumOfVisitors: pass.NumOfVisitors,
		VisitorNames:  pass.VisitorNames,
		Phone:         pass.Phone,
		CreatedAt:     pass.CreatedAt,
		VerifyURL:     fmt.Sprintf("%s/api/visitor/verify/%s?apartment=%s", s.baseURL, pass.ID, apartment),
	}

	s.logger.Info("visitor pass created", "apartment", apartment, "pass_id", pass.ID)
	return pass, payload, nil
}

// GetPass is the side-effect-free read behind the verification page. A pass
// in a terminal state yields AlreadyProcessedError carrying that state.
func (s *VisitorService) GetPass(ctx context.Context, apartment string, id uuid.UUID) (*domain.VisitorPass, error) {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return nil, err
	}

	pass, err := store.VisitorPasses().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pass.Status != domain.VisitorPending {
		return nil, &domain.AlreadyProcessedError{Status: pass.Status}
	}
	return pass, nil
}

// ResolvePass transitions a Pending pass to Approved or Rejected. The Pending
// precondition is enforced by the store's conditional update, not by a prior
// read, so two concurrent resolutions cannot both win.
func (s *VisitorService) ResolvePass(ctx context.Context, apartment string, id uuid.UUID, action string) (domain.VisitorStatus, error) {
	ctx, span := otel.Tracer("visitor-service").Start(ctx, "ResolvePass")
	defer span.End()

	var to domain.VisitorStatus
	switch action {
	case "approve":
		to = domain.VisitorApproved
	case "reject":
		to = domain.VisitorRejected
	default:
		return "", ErrBadAction
	}

	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return "", err
	}

	changed, err := store.VisitorPasses().Resolve(ctx, id, to)
	if err != nil {
		return "", err
	}
	if changed {
		s.countResolution(string(to))
		s.logger.Info("visitor pass resolved", "apartment", apartment, "pass_id", id, "status", to)
		return to, nil
	}

	// The conditional update did not fire: either the pass is unknown or it
	// is already terminal. Re-read to tell the two apart.
	pass, err := store.VisitorPasses().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.countResolution("not_found")
		}
		return "", err
	}
	s.countResolution("already_processed")
	return "", &domain.AlreadyProcessedError{Status: pass.Status}
}

func (s *VisitorService) countResolution(outcome string) {
	if s.metrics != nil {
		s.metrics.VisitorResolutionsTotal.WithLabelValues(outcome).Inc()
	}
}
