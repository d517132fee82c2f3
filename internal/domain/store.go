package domain

import "context"

// TenantStore bundles the repositories bound to one apartment complex's
// isolated store. A handle is reachable only through the tenant identifier it
// was created for; there is no cross-tenant access through it.
type TenantStore interface {
	Residents() ResidentRepository
	Managers() ManagerRepository
	VisitorPasses() VisitorPassRepository
	Complaints() ComplaintRepository
	Resources() ResourceRepository
	Maintenance() MaintenanceRepository
	Notifications() NotificationRepository
	SafetyAlerts() SafetyAlertRepository
}

// StoreProvider hands out tenant store handles. Implementations memoize: the
// same apartment name yields the same handle for the process lifetime, and
// the underlying connection is established at most once.
type StoreProvider interface {
	Tenant(ctx context.Context, apartment string) (TenantStore, error)
}

// TenantProvisioner creates the isolated store backing a new apartment
// complex. Invoked exactly once per tenant, by apartment registration.
type TenantProvisioner interface {
	Provision(ctx context.Context, apartment string) error
}
