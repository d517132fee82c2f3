package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
	"github.com/harbourview/aptly/internal/domain/mocks"
	"github.com/harbourview/aptly/internal/pkg/config"
	"github.com/harbourview/aptly/internal/usecase"
	"github.com/harbourview/aptly/pkg/util"
)

type routerFixture struct {
	handler    http.Handler
	cfg        *config.Config
	apartments *mocks.MemApartmentRepository
	stores     *mocks.MemStoreProvider
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		JWTExpiry:       time.Hour,
		BaseURL:         "http://localhost:8080",
		LoginRatePerMin: 600,
	}

	apartments := mocks.NewMemApartmentRepository()
	providers := mocks.NewMemServiceProviderRepository()
	centralManagers := mocks.NewMemManagerRepository()
	stores := mocks.NewMemStoreProvider()
	listings := mocks.NewMemServiceListingRepository()

	apartmentService := usecase.NewApartmentService(apartments, &mocks.MemProvisioner{}, logger)
	svc := Services{
		Auth:          usecase.NewAuthService(providers, apartments, centralManagers, stores, cfg.JWTSecret, cfg.JWTExpiry, logger, nil),
		Apartments:    apartmentService,
		Registration:  usecase.NewRegistrationService(apartmentService, centralManagers, providers, stores, logger),
		Visitors:      usecase.NewVisitorService(stores, cfg.BaseURL, logger, nil),
		Complaints:    usecase.NewComplaintService(stores, logger),
		Resources:     usecase.NewResourceService(stores, logger),
		Maintenance:   usecase.NewMaintenanceService(stores, logger),
		Notifications: usecase.NewNotificationService(stores, logger),
		SafetyAlerts:  usecase.NewSafetyAlertService(stores, notifierStub{}, logger),
		Listings:      usecase.NewListingService(providers, listings, logger),
	}

	return &routerFixture{
		handler:    NewRouter(cfg, logger, svc),
		cfg:        cfg,
		apartments: apartments,
		stores:     stores,
	}
}

type notifierStub struct{}

func (notifierStub) Broadcast(ctx context.Context, apartment string, alert *domain.SafetyAlert) error {
	return nil
}

func (f *routerFixture) seedResident(t *testing.T, apartment, email, password string) uuid.UUID {
	t.Helper()
	hash, err := util.HashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	f.apartments.Store(context.Background(), &domain.Apartment{ID: uuid.New(), Name: apartment})

	id := uuid.New()
	f.stores.Store(apartment).ResidentRepo.Residents[id] = &domain.Resident{
		ID:            id,
		Name:          "Amara",
		Email:         email,
		PasswordHash:  hash,
		Phone:         "555-0101",
		ApartmentCode: "B-204",
		Status:        domain.StatusApproved,
	}
	return id
}

func (f *routerFixture) token(t *testing.T, id *domain.Identity) string {
	t.Helper()
	token, err := util.GenerateToken(id, f.cfg.JWTSecret, f.cfg.JWTExpiry)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Login(t *testing.T) {
	f := newRouterFixture(t)
	f.seedResident(t, "Lakeview", "amara@example.com", "secret123")

	t.Run("Successful Login Returns Token", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"amara@example.com","password":"secret123"}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}

		var result usecase.LoginResult
		if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if result.Token == "" {
			t.Error("expected a token in the response")
		}
		if result.User.Apartment != "Lakeview" {
			t.Errorf("expected apartment %q, got %q", "Lakeview", result.User.Apartment)
		}
	})

	t.Run("Wrong Password Is 401", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"amara@example.com","password":"wrong"}`)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("Missing Fields Is 400", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"amara@example.com"}`)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})
}

func TestRouter_AuthGates(t *testing.T) {
	f := newRouterFixture(t)
	residentID := f.seedResident(t, "Lakeview", "amara@example.com", "secret123")

	residentToken := f.token(t, &domain.Identity{
		ID: residentID, Role: domain.RoleResident, Apartment: "Lakeview", Status: domain.StatusApproved,
	})
	managerToken := f.token(t, &domain.Identity{
		ID: uuid.New(), Role: domain.RoleManager, Apartment: "Lakeview", Status: domain.StatusApproved,
	})

	t.Run("Missing Token Is 401", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, "/api/complaints", "", "")
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("Garbage Token Is 401", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, "/api/complaints", "not-a-token", "")
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("Manager Cannot Use Resident Routes", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/complaints", managerToken, `{"title":"x","description":""}`)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rr.Code)
		}
	})

	t.Run("Resident Cannot Use Manager Routes", func(t *testing.T) {
		rr := f.do(t, http.MethodPatch, "/api/complaints/"+uuid.NewString()+"/resolve", residentToken, "")
		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rr.Code)
		}
	})

	t.Run("Complaint Round Trip", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/complaints", residentToken, `{"title":"Leaky tap","description":"Kitchen"}`)
		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
		}

		rr = f.do(t, http.MethodGet, "/api/complaints", managerToken, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var complaints []*domain.Complaint
		if err := json.Unmarshal(rr.Body.Bytes(), &complaints); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(complaints) != 1 || complaints[0].Title != "Leaky tap" {
			t.Errorf("unexpected complaints: %+v", complaints)
		}
	})
}

func TestRouter_VisitorFlow(t *testing.T) {
	f := newRouterFixture(t)
	residentID := f.seedResident(t, "Lakeview", "amara@example.com", "secret123")
	residentToken := f.token(t, &domain.Identity{
		ID: residentID, Role: domain.RoleResident, Apartment: "Lakeview", Status: domain.StatusApproved,
	})

	// Resident generates the pass.
	rr := f.do(t, http.MethodPost, "/api/visitor/generate-qr", residentToken, `{"numOfVisitors":2,"visitorNames":["Ravi","Mei"]}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("generate-qr: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var generated struct {
		PassID uuid.UUID `json:"passId"`
		QRData struct {
			VerifyURL string `json:"verify_url"`
		} `json:"qrData"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &generated); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	verifyPath := strings.TrimPrefix(generated.QRData.VerifyURL, f.cfg.BaseURL)

	t.Run("Verification Page Shows Pending Pass", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, verifyPath, "", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		page := rr.Body.String()
		if !strings.Contains(page, "Amara") || !strings.Contains(page, "Ravi") {
			t.Errorf("verification page missing pass details: %s", page)
		}
	})

	t.Run("Form Approval Resolves Once", func(t *testing.T) {
		form := url.Values{"id": {generated.PassID.String()}, "action": {"approve"}}
		req := httptest.NewRequest(http.MethodPost, "/api/visitor/update-status?apartment=Lakeview", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		// The second scan hits a terminal pass.
		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPost, "/api/visitor/update-status?apartment=Lakeview", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		f.handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409 on second resolution, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "already been processed") {
			t.Errorf("expected already-processed message, got %s", rec.Body.String())
		}
	})

	t.Run("JSON Resolution Path", func(t *testing.T) {
		// Fresh pass for the API-client shape.
		rr := f.do(t, http.MethodPost, "/api/visitor/generate-qr", residentToken, `{"numOfVisitors":1,"visitorNames":["Noor"]}`)
		if rr.Code != http.StatusCreated {
			t.Fatalf("generate-qr: expected 201, got %d", rr.Code)
		}
		var second struct {
			PassID uuid.UUID `json:"passId"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &second); err != nil {
			t.Fatalf("decoding response: %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/visitor/update-status",
			strings.NewReader(`{"id":"`+second.PassID.String()+`","action":"reject"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Apartment", "Lakeview")
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), string(domain.VisitorRejected)) {
			t.Errorf("expected rejected status in body, got %s", rec.Body.String())
		}
	})

	t.Run("Unknown Pass Is 404", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, "/api/visitor/verify/"+uuid.NewString()+"?apartment=Lakeview", "", "")
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
	})
}

func TestRouter_Apartments(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("Create And List", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/apartments", "", `{"apartmentName":"Lakeview"}`)
		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
		}

		rr = f.do(t, http.MethodGet, "/api/apartments", "", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Lakeview") {
			t.Errorf("expected Lakeview in listing, got %s", rr.Body.String())
		}
	})

	t.Run("Invalid Name Is 400", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/apartments", "", `{"apartmentName":"bad name"}`)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("Duplicate Is 409", func(t *testing.T) {
		if rr := f.do(t, http.MethodPost, "/api/apartments", "", `{"apartmentName":"Sunset"}`); rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rr.Code)
		}
		rr := f.do(t, http.MethodPost, "/api/apartments", "", `{"apartmentName":"Sunset"}`)
		if rr.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rr.Code)
		}
	})
}
