// Package mocks provides in-memory fakes for the domain repository
// interfaces, keyed by tenant so tests can assert isolation without a real
// store behind them.
package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

// MemResidentRepository is an in-memory domain.ResidentRepository.
type MemResidentRepository struct {
	mu        sync.Mutex
	Residents map[uuid.UUID]*domain.Resident
	StoreErr  error
}

func NewMemResidentRepository() *MemResidentRepository {
	return &MemResidentRepository{Residents: make(map[uuid.UUID]*domain.Resident)}
}

func (m *MemResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Resident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.Residents[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MemResidentRepository) FindByEmail(ctx context.Context, email string) (*domain.Resident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Residents {
		if r.Email == email {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MemResidentRepository) Store(ctx context.Context, r *domain.Resident) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErr != nil {
		return m.StoreErr
	}
	for _, existing := range m.Residents {
		if existing.Email == r.Email {
			return domain.ErrAlreadyExists
		}
	}
	cp := *r
	m.Residents[r.ID] = &cp
	return nil
}

func (m *MemResidentRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.Residents[id]
	if !ok || r.Status != domain.StatusPending {
		return false, nil
	}
	r.Status = status
	return true, nil
}

// MemManagerRepository is an in-memory domain.ManagerRepository. It doubles
// as the central-manager fake, which adds SetStatus.
type MemManagerRepository struct {
	mu       sync.Mutex
	Managers map[uuid.UUID]*domain.Manager
	StoreErr error
}

func NewMemManagerRepository() *MemManagerRepository {
	return &MemManagerRepository{Managers: make(map[uuid.UUID]*domain.Manager)}
}

func (m *MemManagerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Manager, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mgr, ok := m.Managers[id]; ok {
		cp := *mgr
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MemManagerRepository) FindByEmail(ctx context.Context, email string) (*domain.Manager, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mgr := range m.Managers {
		if mgr.Email == email {
			cp := *mgr
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MemManagerRepository) Store(ctx context.Context, mgr *domain.Manager) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErr != nil {
		return m.StoreErr
	}
	for _, existing := range m.Managers {
		if existing.Email == mgr.Email {
			return domain.ErrAlreadyExists
		}
	}
	cp := *mgr
	m.Managers[mgr.ID] = &cp
	return nil
}

func (m *MemManagerRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mgr, ok := m.Managers[id]
	if !ok || mgr.Status != domain.StatusPending {
		return false, nil
	}
	mgr.Status = status
	return true, nil
}

// MemServiceProviderRepository is an in-memory domain.ServiceProviderRepository.
type MemServiceProviderRepository struct {
	mu        sync.Mutex
	Providers map[uuid.UUID]*domain.ServiceProvider
}

func NewMemServiceProviderRepository() *MemServiceProviderRepository {
	return &MemServiceProviderRepository{Providers: make(map[uuid.UUID]*domain.ServiceProvider)}
}

func (m *MemServiceProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ServiceProvider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Providers[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MemServiceProviderRepository) FindByEmail(ctx context.Context, email string) (*domain.ServiceProvider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Providers {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MemServiceProviderRepository) Store(ctx context.Context, p *domain.ServiceProvider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Providers {
		if existing.Email == p.Email {
			return domain.ErrAlreadyExists
		}
	}
	cp := *p
	m.Providers[p.ID] = &cp
	return nil
}

// MemApartmentRepository is an in-memory domain.ApartmentRepository that
// preserves insertion order for ListNames.
type MemApartmentRepository struct {
	mu         sync.Mutex
	Apartments []*domain.Apartment
}

func NewMemApartmentRepository() *MemApartmentRepository {
	return &MemApartmentRepository{}
}

func (m *MemApartmentRepository) FindByName(ctx context.Context, name string) (*domain.Apartment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Apartments {
		if a.Name == name {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MemApartmentRepository) ListNames(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.Apartments))
	for _, a := range m.Apartments {
		names = append(names, a.Name)
	}
	return names, nil
}

func (m *MemApartmentRepository) Store(ctx context.Context, a *domain.Apartment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Apartments {
		if existing.Name == a.Name {
			return domain.ErrAlreadyExists
		}
	}
	cp := *a
	m.Apartments = append(m.Apartments, &cp)
	return nil
}

// MemVisitorPassRepository is an in-memory domain.VisitorPassRepository with
// the same compare-and-swap Resolve semantics as the real store.
type MemVisitorPassRepository struct {
	mu     sync.Mutex
	Passes map[uuid.UUID]*domain.VisitorPass
}

func NewMemVisitorPassRepository() *MemVisitorPassRepository {
	return &MemVisitorPassRepository{Passes: make(map[uuid.UUID]*domain.VisitorPass)}
}

func (m *MemVisitorPassRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.VisitorPass, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Passes[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MemVisitorPassRepository) Store(ctx context.Context, p *domain.VisitorPass) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.Passes[p.ID] = &cp
	return nil
}

func (m *MemVisitorPassRepository) Resolve(ctx context.Context, id uuid.UUID, to domain.VisitorStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Passes[id]
	if !ok || p.Status != domain.VisitorPending {
		return false, nil
	}
	p.Status = to
	return true, nil
}

// MemComplaintRepository is an in-memory domain.ComplaintRepository.
type MemComplaintRepository struct {
	mu         sync.Mutex
	Complaints []*domain.Complaint
}

func NewMemComplaintRepository() *MemComplaintRepository { return &MemComplaintRepository{} }

func (m *MemComplaintRepository) Store(ctx context.Context, c *domain.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.Complaints = append([]*domain.Complaint{&cp}, m.Complaints...)
	return nil
}

func (m *MemComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Complaints {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MemComplaintRepository) List(ctx context.Context) ([]*domain.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Complaint, len(m.Complaints))
	copy(out, m.Complaints)
	return out, nil
}

func (m *MemComplaintRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ComplaintStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Complaints {
		if c.ID == id && c.Status != status {
			c.Status = status
			return true, nil
		}
	}
	return false, nil
}

// MemResourceRepository is an in-memory domain.ResourceRepository.
type MemResourceRepository struct {
	mu       sync.Mutex
	Requests []*domain.ResourceRequest
}

func NewMemResourceRepository() *MemResourceRepository { return &MemResourceRepository{} }

func (m *MemResourceRepository) Store(ctx context.Context, r *domain.ResourceRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.Requests = append([]*domain.ResourceRequest{&cp}, m.Requests...)
	return nil
}

func (m *MemResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ResourceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Requests {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MemResourceRepository) ListActive(ctx context.Context) ([]*domain.ResourceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ResourceRequest
	for _, r := range m.Requests {
		if r.Status == domain.ResourceActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemResourceRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ResourceStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Requests {
		if r.ID == id && r.Status != status {
			r.Status = status
			return true, nil
		}
	}
	return false, nil
}

// MemMaintenanceRepository is an in-memory domain.MaintenanceRepository.
type MemMaintenanceRepository struct {
	mu       sync.Mutex
	Requests []*domain.MaintenanceRequest
}

func NewMemMaintenanceRepository() *MemMaintenanceRepository { return &MemMaintenanceRepository{} }

func (m *MemMaintenanceRepository) Store(ctx context.Context, r *domain.MaintenanceRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.Requests = append([]*domain.MaintenanceRequest{&cp}, m.Requests...)
	return nil
}

func (m *MemMaintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MaintenanceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Requests {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MemMaintenanceRepository) List(ctx context.Context) ([]*domain.MaintenanceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.MaintenanceRequest, len(m.Requests))
	copy(out, m.Requests)
	return out, nil
}

func (m *MemMaintenanceRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.MaintenanceStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Requests {
		if r.ID == id && r.Status != status {
			r.Status = status
			return true, nil
		}
	}
	return false, nil
}

// MemNotificationRepository is an in-memory domain.NotificationRepository.
type MemNotificationRepository struct {
	mu            sync.Mutex
	Notifications []*domain.Notification
	Dismissals    map[uuid.UUID]map[uuid.UUID]bool
}

func NewMemNotificationRepository() *MemNotificationRepository {
	return &MemNotificationRepository{Dismissals: make(map[uuid.UUID]map[uuid.UUID]bool)}
}

func (m *MemNotificationRepository) Store(ctx context.Context, n *domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *n
	m.Notifications = append([]*domain.Notification{&cp}, m.Notifications...)
	return nil
}

func (m *MemNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.Notifications {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MemNotificationRepository) List(ctx context.Context, kind domain.NotificationKind, excludeDismissedBy uuid.UUID) ([]*domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Notification
	for _, n := range m.Notifications {
		if n.Kind != kind {
			continue
		}
		if m.Dismissals[n.ID][excludeDismissedBy] {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *MemNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.Notifications {
		if n.ID == id {
			m.Notifications = append(m.Notifications[:i], m.Notifications[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MemNotificationRepository) Dismiss(ctx context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Dismissals[id] == nil {
		m.Dismissals[id] = make(map[uuid.UUID]bool)
	}
	m.Dismissals[id][userID] = true
	return nil
}

// MemSafetyAlertRepository is an in-memory domain.SafetyAlertRepository.
type MemSafetyAlertRepository struct {
	mu     sync.Mutex
	Alerts []*domain.SafetyAlert
}

func NewMemSafetyAlertRepository() *MemSafetyAlertRepository { return &MemSafetyAlertRepository{} }

func (m *MemSafetyAlertRepository) Store(ctx context.Context, a *domain.SafetyAlert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.Alerts = append([]*domain.SafetyAlert{&cp}, m.Alerts...)
	return nil
}

func (m *MemSafetyAlertRepository) List(ctx context.Context) ([]*domain.SafetyAlert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.SafetyAlert, len(m.Alerts))
	copy(out, m.Alerts)
	return out, nil
}

// MemServiceListingRepository is an in-memory domain.ServiceListingRepository.
type MemServiceListingRepository struct {
	mu       sync.Mutex
	Listings []*domain.ServiceListing
}

func NewMemServiceListingRepository() *MemServiceListingRepository {
	return &MemServiceListingRepository{}
}

func (m *MemServiceListingRepository) Store(ctx context.Context, s *domain.ServiceListing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.Listings = append([]*domain.ServiceListing{&cp}, m.Listings...)
	return nil
}

func (m *MemServiceListingRepository) List(ctx context.Context) ([]*domain.ServiceListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.ServiceListing, len(m.Listings))
	copy(out, m.Listings)
	return out, nil
}

// MemTenantStore bundles in-memory repositories for one tenant.
type MemTenantStore struct {
	ResidentRepo     *MemResidentRepository
	ManagerRepo      *MemManagerRepository
	PassRepo         *MemVisitorPassRepository
	ComplaintRepo    *MemComplaintRepository
	ResourceRepo     *MemResourceRepository
	MaintenanceRepo  *MemMaintenanceRepository
	NotificationRepo *MemNotificationRepository
	AlertRepo        *MemSafetyAlertRepository
}

func NewMemTenantStore() *MemTenantStore {
	return &MemTenantStore{
		ResidentRepo:     NewMemResidentRepository(),
		ManagerRepo:      NewMemManagerRepository(),
		PassRepo:         NewMemVisitorPassRepository(),
		ComplaintRepo:    NewMemComplaintRepository(),
		ResourceRepo:     NewMemResourceRepository(),
		MaintenanceRepo:  NewMemMaintenanceRepository(),
		NotificationRepo: NewMemNotificationRepository(),
		AlertRepo:        NewMemSafetyAlertRepository(),
	}
}

func (s *MemTenantStore) Residents() domain.ResidentRepository         { return s.ResidentRepo }
func (s *MemTenantStore) Managers() domain.ManagerRepository           { return s.ManagerRepo }
func (s *MemTenantStore) VisitorPasses() domain.VisitorPassRepository  { return s.PassRepo }
func (s *MemTenantStore) Complaints() domain.ComplaintRepository       { return s.ComplaintRepo }
func (s *MemTenantStore) Resources() domain.ResourceRepository         { return s.ResourceRepo }
func (s *MemTenantStore) Maintenance() domain.MaintenanceRepository    { return s.MaintenanceRepo }
func (s *MemTenantStore) Notifications() domain.NotificationRepository { return s.NotificationRepo }
func (s *MemTenantStore) SafetyAlerts() domain.SafetyAlertRepository   { return s.AlertRepo }

// MemStoreProvider is an in-memory domain.StoreProvider that creates empty
// tenant stores on demand and records every tenant it was asked for.
type MemStoreProvider struct {
	mu          sync.Mutex
	Stores      map[string]*MemTenantStore
	TenantCalls []string
	Err         error
}

func NewMemStoreProvider() *MemStoreProvider {
	return &MemStoreProvider{Stores: make(map[string]*MemTenantStore)}
}

// Tenant returns the named tenant's store, creating it on first use.
func (p *MemStoreProvider) Tenant(ctx context.Context, apartment string) (domain.TenantStore, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.TenantCalls = append(p.TenantCalls, apartment)
	if p.Err != nil {
		return nil, p.Err
	}
	store, ok := p.Stores[apartment]
	if !ok {
		store = NewMemTenantStore()
		p.Stores[apartment] = store
	}
	return store, nil
}

// Store returns the named tenant's store for direct seeding in tests.
func (p *MemStoreProvider) Store(apartment string) *MemTenantStore {
	p.mu.Lock()
	defer p.mu.Unlock()
	store, ok := p.Stores[apartment]
	if !ok {
		store = NewMemTenantStore()
		p.Stores[apartment] = store
	}
	return store
}

// MemProvisioner is an in-memory domain.TenantProvisioner.
type MemProvisioner struct {
	mu          sync.Mutex
	Provisioned []string
	Err         error
}

func (m *MemProvisioner) Provision(ctx context.Context, apartment string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Provisioned = append(m.Provisioned, apartment)
	return nil
}
