package postgres

import (
	"database/sql"

	"github.com/harbourview/aptly/internal/domain"
)

// TenantStore bundles the repositories bound to one tenant database. All
// repositories share the same *sql.DB, so the whole bundle reuses one
// connection pool per tenant.
type TenantStore struct {
	db *sql.DB

	residents     *residentRepository
	managers      *managerRepository
	passes        *visitorPassRepository
	complaints    *complaintRepository
	resources     *resourceRepository
	maintenance   *maintenanceRepository
	notifications *notificationRepository
	alerts        *safetyAlertRepository
}

func newTenantStore(db *sql.DB) *TenantStore {
	return &TenantStore{
		db:            db,
		residents:     &residentRepository{db: db},
		managers:      &managerRepository{db: db},
		passes:        &visitorPassRepository{db: db},
		complaints:    &complaintRepository{db: db},
		resources:     &resourceRepository{db: db},
		maintenance:   &maintenanceRepository{db: db},
		notifications: &notificationRepository{db: db},
		alerts:        &safetyAlertRepository{db: db},
	}
}

func (s *TenantStore) Residents() domain.ResidentRepository         { return s.residents }
func (s *TenantStore) Managers() domain.ManagerRepository           { return s.managers }
func (s *TenantStore) VisitorPasses() domain.VisitorPassRepository  { return s.passes }
func (s *TenantStore) Complaints() domain.ComplaintRepository       { return s.complaints }
func (s *TenantStore) Resources() domain.ResourceRepository         { return s.resources }
func (s *TenantStore) Maintenance() domain.MaintenanceRepository    { return s.maintenance }
func (s *TenantStore) Notifications() domain.NotificationRepository { return s.notifications }
func (s *TenantStore) SafetyAlerts() domain.SafetyAlertRepository   { return s.alerts }
