package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/famtrack/vaxtrack/internal/common"
	"github.com/famtrack/vaxtrack/internal/middleware"
	"github.com/famtrack/vaxtrack/internal/models"
)

// dateLayout is the wire format for birthdates and administration dates.
const dateLayout = "2006-01-02"

// RecordsService defines the interface for the ownership-scoped family
// member and vaccination record operations required by the handlers.
type RecordsService interface {
	CreateMember(ctx context.Context, userID string, member *models.FamilyMember) (*models.FamilyMember, error)
	ListMembers(ctx context.Context, userID string) ([]models.FamilyMember, error)
	ListVaccines(ctx context.Context) ([]models.Vaccine, error)
	CreateRecord(ctx context.Context, userID, memberID string, record *models.VaccineRecord) (*models.VaccineRecord, error)
	ListRecords(ctx context.Context, userID, memberID string) ([]models.VaccineRecord, error)
}

// RecordsHandler handles HTTP requests for family members, the vaccine
// catalog and vaccination records. All routes require an authenticated
// account in the request context.
type RecordsHandler struct {
	RecordsService RecordsService
}

// MemberRequest represents the JSON payload for creating a family member.
type MemberRequest struct {
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
	Sex       string `json:"sex"`
}

// RecordRequest represents the JSON payload for creating a vaccination
// record.
type RecordRequest struct {
	VaccineID string `json:"vaccine_id"`
	Date      string `json:"date"`
	Location  string `json:"location"`
	Dosage    string `json:"dosage"`
}

// CreateMember handles POST /api/family_members. The created member is
// attached to the calling account; a duplicate (name, birthdate) under the
// same account produces 409.
func (h *RecordsHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromContext(r.Context())
	if account == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Name == "" || !validDate(req.Birthdate) {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	member, err := h.RecordsService.CreateMember(r.Context(), account.ID, &models.FamilyMember{
		Name:      req.Name,
		Birthdate: req.Birthdate,
		Sex:       req.Sex,
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			http.Error(w, "family member already exists", http.StatusConflict)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, member)
}

// ListMembers handles GET /api/family_members and returns only the calling
// account's members.
func (h *RecordsHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromContext(r.Context())
	if account == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	members, err := h.RecordsService.ListMembers(r.Context(), account.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if members == nil {
		members = []models.FamilyMember{}
	}

	writeJSON(w, members)
}

// ListVaccines handles GET /api/vaccines. The catalog is shared across all
// accounts.
func (h *RecordsHandler) ListVaccines(w http.ResponseWriter, r *http.Request) {
	vaccines, err := h.RecordsService.ListVaccines(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if vaccines == nil {
		vaccines = []models.Vaccine{}
	}

	writeJSON(w, vaccines)
}

// CreateRecord handles POST /api/family_members/{memberID}/vaccine_records.
// A member that does not exist and a member owned by another account both
// produce the same 404; a second record for the same vaccine produces 409.
func (h *RecordsHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromContext(r.Context())
	if account == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	memberID := chi.URLParam(r, "memberID")

	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.VaccineID == "" || req.Location == "" || !validDate(req.Date) {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	record, err := h.RecordsService.CreateRecord(r.Context(), account.ID, memberID, &models.VaccineRecord{
		VaccineID: req.VaccineID,
		Date:      req.Date,
		Location:  req.Location,
		Dosage:    req.Dosage,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, common.ErrorConflict):
			http.Error(w, "vaccine record already exists", http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, record)
}

// ListRecords handles GET /api/family_members/{memberID}/vaccine_records
// under the same ownership rule as CreateRecord.
func (h *RecordsHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromContext(r.Context())
	if account == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	memberID := chi.URLParam(r, "memberID")

	records, err := h.RecordsService.ListRecords(r.Context(), account.ID, memberID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.VaccineRecord{}
	}

	writeJSON(w, records)
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
