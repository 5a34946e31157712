package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/famtrack/vaxtrack/internal/auth"
	"github.com/famtrack/vaxtrack/internal/common"
	"github.com/famtrack/vaxtrack/internal/models"
)

// fakeRecordsService implements RecordsService for testing.
type fakeRecordsService struct {
	member    *models.FamilyMember
	members   []models.FamilyMember
	record    *models.VaccineRecord
	records   []models.VaccineRecord
	vaccines  []models.Vaccine
	err       error
	gotUserID string
	gotMember string
}

func (f *fakeRecordsService) CreateMember(_ context.Context, userID string, m *models.FamilyMember) (*models.FamilyMember, error) {
	f.gotUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.member, nil
}

func (f *fakeRecordsService) ListMembers(_ context.Context, userID string) ([]models.FamilyMember, error) {
	f.gotUserID = userID
	return f.members, f.err
}

func (f *fakeRecordsService) ListVaccines(_ context.Context) ([]models.Vaccine, error) {
	return f.vaccines, f.err
}

func (f *fakeRecordsService) CreateRecord(_ context.Context, userID, memberID string, r *models.VaccineRecord) (*models.VaccineRecord, error) {
	f.gotUserID, f.gotMember = userID, memberID
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func (f *fakeRecordsService) ListRecords(_ context.Context, userID, memberID string) ([]models.VaccineRecord, error) {
	f.gotUserID, f.gotMember = userID, memberID
	return f.records, f.err
}

// okResolver always resolves to the same account.
type okResolver struct {
	account *models.User
}

func (o *okResolver) CurrentAccount(_ context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	return o.account, nil
}

// newTestRouter mounts real routes around the fake records service so the
// tests exercise URL params, the session middleware and status mapping.
func newTestRouter(svc *fakeRecordsService) http.Handler {
	authHandler := &AuthHandler{AuthService: &fakeAuthService{}, TokenTTL: time.Hour}
	recordsHandler := &RecordsHandler{RecordsService: svc}
	resolver := &okResolver{account: &models.User{ID: "u1", Username: "alice"}}
	return NewRouter(authHandler, recordsHandler, resolver, zap.NewNop(), nil)
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "valid-token"})
	return req
}

func TestProtectedRoutes_RequireSession(t *testing.T) {
	router := newTestRouter(&fakeRecordsService{})

	for _, target := range []string{
		"/api/user",
		"/api/family_members",
		"/api/vaccines",
		"/api/family_members/m1/vaccine_records",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status got %d want %d", target, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestCreateMember(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		svc          *fakeRecordsService
		expectedCode int
	}{
		{
			name:         "invalid birthdate",
			body:         `{"name":"Bo","birthdate":"01/01/2020"}`,
			svc:          &fakeRecordsService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing name",
			body:         `{"birthdate":"2020-01-01"}`,
			svc:          &fakeRecordsService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "duplicate",
			body:         `{"name":"Bo","birthdate":"2020-01-01"}`,
			svc:          &fakeRecordsService{err: common.ErrorConflict},
			expectedCode: http.StatusConflict,
		},
		{
			name: "success",
			body: `{"name":"Bo","birthdate":"2020-01-01","sex":"m"}`,
			svc: &fakeRecordsService{
				member: &models.FamilyMember{ID: "m1", UserID: "u1", Name: "Bo", Birthdate: "2020-01-01"},
			},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.svc)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest("POST", "/api/family_members", tt.body))

			if rec.Code != tt.expectedCode {
				t.Errorf("status: got %d want %d, body %q", rec.Code, tt.expectedCode, rec.Body.String())
			}
			if tt.expectedCode == http.StatusOK {
				if tt.svc.gotUserID != "u1" {
					t.Errorf("service called with user %q, want u1", tt.svc.gotUserID)
				}
				var member models.FamilyMember
				if err := json.Unmarshal(rec.Body.Bytes(), &member); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if member.UserID != "u1" {
					t.Errorf("member owner: got %q want u1", member.UserID)
				}
			}
		})
	}
}

func TestListMembers_EmptyIsArray(t *testing.T) {
	router := newTestRouter(&fakeRecordsService{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("GET", "/api/family_members", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %q", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestCreateRecord_StatusMapping(t *testing.T) {
	body := `{"vaccine_id":"v1","date":"2024-03-01","location":"City Clinic"}`

	tests := []struct {
		name         string
		svc          *fakeRecordsService
		expectedCode int
	}{
		{
			// Absent member and someone else's member report identically.
			name:         "not owned or absent",
			svc:          &fakeRecordsService{err: common.ErrorNotFound},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "duplicate vaccine",
			svc:          &fakeRecordsService{err: common.ErrorConflict},
			expectedCode: http.StatusConflict,
		},
		{
			name: "success",
			svc: &fakeRecordsService{
				record: &models.VaccineRecord{ID: "r1", FamilyMemberID: "m1", VaccineID: "v1", Date: "2024-03-01", Location: "City Clinic"},
			},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.svc)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest("POST", "/api/family_members/m1/vaccine_records", body))

			if rec.Code != tt.expectedCode {
				t.Errorf("status: got %d want %d, body %q", rec.Code, tt.expectedCode, rec.Body.String())
			}
			if tt.svc.gotMember != "m1" {
				t.Errorf("service called with member %q, want m1", tt.svc.gotMember)
			}
		})
	}
}

func TestCreateRecord_InvalidBody(t *testing.T) {
	svc := &fakeRecordsService{}
	router := newTestRouter(svc)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("POST", "/api/family_members/m1/vaccine_records",
		`{"vaccine_id":"","date":"2024-03-01","location":"City Clinic"}`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestListRecords_NotOwned(t *testing.T) {
	router := newTestRouter(&fakeRecordsService{err: common.ErrorNotFound})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("GET", "/api/family_members/m9/vaccine_records", ""))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d want %d", rec.Code, http.StatusNotFound)
	}
}

func TestListVaccines(t *testing.T) {
	router := newTestRouter(&fakeRecordsService{
		vaccines: []models.Vaccine{{ID: "v1", Name: "MMR"}},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("GET", "/api/vaccines", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %q", rec.Code, rec.Body.String())
	}
	var vaccines []models.Vaccine
	if err := json.Unmarshal(rec.Body.Bytes(), &vaccines); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(vaccines) != 1 || vaccines[0].Name != "MMR" {
		t.Errorf("unexpected catalog: %+v", vaccines)
	}
}

func TestMe(t *testing.T) {
	router := newTestRouter(&fakeRecordsService{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("GET", "/api/user", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %q", rec.Code, rec.Body.String())
	}
	var user models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username: got %q want alice", user.Username)
	}
}
