//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests:
//   T-E2E-1: Full invoice cycle (login → catalog → draft → send → payment → paid)
//   T-E2E-2: Overdue derivation and the reminder query
//   T-E2E-3: Async PDF round-trip through the Redis worker pool
//   T-E2E-4: Role guards (reception cannot manage the doctor roster)

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/config"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/country"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/infra"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/repository"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/router"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	db     *gorm.DB
	rdb    *redis.Client
	cfg    *config.Config
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	// Start Postgres container
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("clinicdesk_test"),
		tcPostgres.WithUsername("clinicdesk"),
		tcPostgres.WithPassword("clinicdesk"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start Redis container
	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		ClinicName:         "ClinicDesk E2E",
		ClinicCountry:      "US",
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	require.NoError(t, infra.RunMigrations(db))

	seedStaff(t, db, "admin@e2e.test", "admin")

	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	r := router.New(cfg, db, rdb, smtpCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{
		server: srv,
		token:  login(t, srv, "admin@e2e.test"),
		db:     db,
		rdb:    rdb,
		cfg:    cfg,
	}
}

// seedStaff inserts a user directly; the password is always "e2e-password".
func seedStaff(t *testing.T, db *gorm.DB, username, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("e2e-password"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{
		Username:     username,
		Name:         "E2E " + role,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}).Error)
}

func login(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()
	resp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": username, "password": "e2e-password"}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

type idResp struct {
	ID string `json:"id"`
}

// assertAmount compares money fields by numeric value, not string form,
// so "0" and "0.00" both pass.
func assertAmount(t *testing.T, want, got string) {
	t.Helper()
	w := decimal.RequireFromString(want)
	g := decimal.RequireFromString(got)
	assert.True(t, w.Equal(g), "want %s, got %s", want, got)
}

// seedBillingGraph creates a patient, a doctor and a catalog service over the
// API and returns their ids. The patient carries no email so that send
// never chains a PDF job into an email job against a real SMTP host.
func seedBillingGraph(t *testing.T, env *testEnv) (patientID, doctorID, serviceID string) {
	t.Helper()

	pResp := do(t, env.server, "POST", "/v1/patients",
		jsonBody(t, map[string]any{"first_name": "Ana", "last_name": "Morales"}), env.token)
	require.Equal(t, http.StatusCreated, pResp.StatusCode)
	var patient idResp
	decodeJSON(t, pResp, &patient)

	dResp := do(t, env.server, "POST", "/v1/doctors",
		jsonBody(t, map[string]any{
			"first_name": "Luis", "last_name": "Vega",
			"specialty": "Cardiology", "license_number": fmt.Sprintf("MD-%d", time.Now().UnixNano()),
		}), env.token)
	require.Equal(t, http.StatusCreated, dResp.StatusCode)
	var doctor idResp
	decodeJSON(t, dResp, &doctor)

	sResp := do(t, env.server, "POST", "/v1/services",
		jsonBody(t, map[string]any{
			"name": "General Consultation", "type": "consultation",
			"category": "Consultations", "base_price": "150",
		}), env.token)
	require.Equal(t, http.StatusCreated, sResp.StatusCode)
	var svc idResp
	decodeJSON(t, sResp, &svc)

	return patient.ID, doctor.ID, svc.ID
}

type invoiceResp struct {
	ID           string  `json:"id"`
	Number       string  `json:"number"`
	Status       string  `json:"status"`
	StoredStatus string  `json:"stored_status"`
	Subtotal     string  `json:"subtotal"`
	TaxTotal     string  `json:"tax_total"`
	Total        string  `json:"total"`
	PaidAmount   string  `json:"paid_amount"`
	Balance      string  `json:"balance"`
	PDFUrl       *string `json:"pdf_url"`
}

func createInvoice(t *testing.T, env *testEnv, patientID, doctorID, serviceID, issueDate, terms string) invoiceResp {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/invoices",
		jsonBody(t, map[string]any{
			"patient_id":    patientID,
			"doctor_id":     doctorID,
			"issue_date":    issueDate,
			"payment_terms": terms,
			"items":         []map[string]any{{"service_id": serviceID, "quantity": 1}},
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var inv invoiceResp
	decodeJSON(t, resp, &inv)
	return inv
}

// ── Tests ────────────────────────────────────────────────────────────────────

// T-E2E-1: login → catalog → draft → send → payment → derived paid status.
func TestE2E_FullInvoiceCycle(t *testing.T) {
	env := setupTestEnv(t)
	patientID, doctorID, serviceID := seedBillingGraph(t, env)

	today := time.Now().Format("2006-01-02")
	inv := createInvoice(t, env, patientID, doctorID, serviceID, today, "Net 30")

	// Number comes from the Postgres sequence: first invoice of the year.
	assert.Equal(t, fmt.Sprintf("INV-%d-000001", time.Now().Year()), inv.Number)
	assert.Equal(t, "draft", inv.Status)
	assertAmount(t, "150", inv.Subtotal)
	// US country default tax 8.5% on the discounted subtotal.
	assertAmount(t, "12.75", inv.TaxTotal)
	assertAmount(t, "162.75", inv.Total)

	// Second invoice takes the next sequence value.
	second := createInvoice(t, env, patientID, doctorID, serviceID, today, "Net 30")
	assert.Equal(t, fmt.Sprintf("INV-%d-000002", time.Now().Year()), second.Number)

	// Send the first one.
	sendResp := do(t, env.server, "POST", "/v1/invoices/"+inv.ID+"/send", nil, env.token)
	require.Equal(t, http.StatusOK, sendResp.StatusCode)
	var sent invoiceResp
	decodeJSON(t, sendResp, &sent)
	assert.Equal(t, "sent", sent.StoredStatus)

	// Sending twice violates the transition table.
	resendResp := do(t, env.server, "POST", "/v1/invoices/"+inv.ID+"/send", nil, env.token)
	defer resendResp.Body.Close()
	assert.Equal(t, http.StatusConflict, resendResp.StatusCode)

	// Pay in full; the effective status flips to paid while the stored
	// status column still reads sent.
	payResp := do(t, env.server, "POST", "/v1/invoices/"+inv.ID+"/payments",
		jsonBody(t, map[string]any{"amount": "162.75", "method": "cash"}), env.token)
	require.Equal(t, http.StatusOK, payResp.StatusCode)
	var paid invoiceResp
	decodeJSON(t, payResp, &paid)
	assert.Equal(t, "paid", paid.Status)
	assert.Equal(t, "sent", paid.StoredStatus)
	assertAmount(t, "162.75", paid.PaidAmount)
	assertAmount(t, "0", paid.Balance)
}

// T-E2E-2: a sent invoice past its due date lists as overdue and is picked
// up by the reminder query.
func TestE2E_OverdueDerivationAndReminderQuery(t *testing.T) {
	env := setupTestEnv(t)
	patientID, doctorID, serviceID := seedBillingGraph(t, env)

	inv := createInvoice(t, env, patientID, doctorID, serviceID, "2024-01-10", "Net 15")
	sendResp := do(t, env.server, "POST", "/v1/invoices/"+inv.ID+"/send", nil, env.token)
	require.Equal(t, http.StatusOK, sendResp.StatusCode)
	sendResp.Body.Close()

	listResp := do(t, env.server, "GET", "/v1/invoices?status=overdue", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Data []invoiceResp `json:"data"`
	}
	decodeJSON(t, listResp, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, inv.ID, list.Data[0].ID)
	assert.Equal(t, "overdue", list.Data[0].Status)

	// The reminder cron's query sees the same invoice, once.
	repo := repository.NewInvoiceRepository(env.db)
	due, err := repo.ListDueForReminder(context.Background(), time.Now(), 25)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, inv.ID, due[0].ID.String())

	require.NoError(t, repo.SetReminderSent(context.Background(), due[0].ID, time.Now()))
	due, err = repo.ListDueForReminder(context.Background(), time.Now(), 25)
	require.NoError(t, err)
	assert.Empty(t, due)
}

// T-E2E-3: sending an invoice enqueues a PDF job on Redis; the worker pool
// dequeues it, renders the document and stores its path.
func TestE2E_PDFWorkerRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	patientID, doctorID, serviceID := seedBillingGraph(t, env)

	workerCtx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	loc := country.SettingsFor(env.cfg.ClinicCountry)
	dispatcher := worker.NewDispatcher(env.rdb)
	invoiceRepo := repository.NewInvoiceRepository(env.db)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	handlers := &worker.Handlers{
		InvoicePDF: worker.NewInvoicePDFWorker(invoiceRepo, dispatcher, env.cfg.ClinicName, loc, env.cfg.PDFStoragePath),
		Email:      worker.NewEmailWorker(infra.NewMailer(env.cfg), smtpCB, env.rdb),
	}
	worker.StartWorkerPool(workerCtx, env.rdb, handlers, env.cfg.WorkerPoolSize)

	inv := createInvoice(t, env, patientID, doctorID, serviceID, time.Now().Format("2006-01-02"), "Net 30")
	sendResp := do(t, env.server, "POST", "/v1/invoices/"+inv.ID+"/send", nil, env.token)
	require.Equal(t, http.StatusOK, sendResp.StatusCode)
	sendResp.Body.Close()

	client := env.server.Client()
	require.Eventually(t, func() bool {
		req, err := http.NewRequest("GET", env.server.URL+"/v1/invoices/"+inv.ID, nil)
		if err != nil {
			return false
		}
		req.Header.Set("Authorization", "Bearer "+env.token)
		resp, err := client.Do(req)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var fetched invoiceResp
		if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
			return false
		}
		return fetched.PDFUrl != nil
	}, 20*time.Second, 250*time.Millisecond, "PDF path never set by the worker")

	pdfResp := do(t, env.server, "GET", "/v1/invoices/"+inv.ID+"/pdf", nil, env.token)
	defer pdfResp.Body.Close()
	assert.Equal(t, http.StatusOK, pdfResp.StatusCode)

	// No failed jobs left behind.
	dlqLen, err := worker.DLQLength(context.Background(), env.rdb, worker.QueueInvoicePDF)
	require.NoError(t, err)
	assert.Zero(t, dlqLen)
}

// T-E2E-4: reception staff can bill but cannot manage the doctor roster.
func TestE2E_RoleGuards(t *testing.T) {
	env := setupTestEnv(t)
	seedStaff(t, env.db, "reception@e2e.test", "reception")
	receptionToken := login(t, env.server, "reception@e2e.test")

	resp := do(t, env.server, "POST", "/v1/doctors",
		jsonBody(t, map[string]any{
			"first_name": "Eva", "last_name": "Nix",
			"specialty": "Dermatology", "license_number": "MD-GUARD-1",
		}), receptionToken)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Reading the roster is allowed.
	listResp := do(t, env.server, "GET", "/v1/doctors", nil, receptionToken)
	defer listResp.Body.Close()
	assert.Equal(t, http.StatusOK, listResp.StatusCode)

	// No token at all → 401 from the JWT middleware.
	anonResp := do(t, env.server, "GET", "/v1/invoices", nil, "")
	defer anonResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, anonResp.StatusCode)
}
