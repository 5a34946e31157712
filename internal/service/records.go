package service

import (
	"context"

	"github.com/famtrack/vaxtrack/internal/models"
)

// MemberRepository defines the persistence operations on family members
// required by the records service.
type MemberRepository interface {
	Create(ctx context.Context, member *models.FamilyMember) (*models.FamilyMember, error)
	ListByUser(ctx context.Context, userID string) ([]models.FamilyMember, error)
	// GetOwned returns common.ErrorNotFound both when the member does not
	// exist and when it belongs to another account.
	GetOwned(ctx context.Context, memberID, userID string) (*models.FamilyMember, error)
}

// RecordRepository defines the persistence operations on vaccination
// records required by the records service.
type RecordRepository interface {
	Create(ctx context.Context, record *models.VaccineRecord) (*models.VaccineRecord, error)
	ListByMember(ctx context.Context, memberID string) ([]models.VaccineRecord, error)
}

// VaccineRepository reads the shared vaccine catalog.
type VaccineRepository interface {
	List(ctx context.Context) ([]models.Vaccine, error)
}

// RecordsService implements ownership-scoped access to family members and
// their vaccination records. Every operation takes the authenticated
// account id and never touches rows outside that account's chain.
type RecordsService struct {
	members  MemberRepository
	records  RecordRepository
	vaccines VaccineRepository
}

// NewRecordsService constructs a RecordsService over the given repositories.
func NewRecordsService(members MemberRepository, records RecordRepository, vaccines VaccineRepository) *RecordsService {
	return &RecordsService{members: members, records: records, vaccines: vaccines}
}

// CreateMember attaches the member to the calling account and persists it.
// A duplicate (account, name, birthdate) yields common.ErrorConflict.
func (s *RecordsService) CreateMember(ctx context.Context, userID string, member *models.FamilyMember) (*models.FamilyMember, error) {
	member.UserID = userID
	return s.members.Create(ctx, member)
}

// ListMembers returns the calling account's family members.
func (s *RecordsService) ListMembers(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	return s.members.ListByUser(ctx, userID)
}

// ListVaccines returns the shared catalog; no ownership filter applies.
func (s *RecordsService) ListVaccines(ctx context.Context) ([]models.Vaccine, error) {
	return s.vaccines.List(ctx)
}

// CreateRecord inserts a vaccination record under memberID after checking
// that the member is owned by the calling account. An absent member and a
// member owned by someone else both yield common.ErrorNotFound; a second
// record for the same vaccine yields common.ErrorConflict.
func (s *RecordsService) CreateRecord(ctx context.Context, userID, memberID string, record *models.VaccineRecord) (*models.VaccineRecord, error) {
	if _, err := s.members.GetOwned(ctx, memberID, userID); err != nil {
		return nil, err
	}

	record.FamilyMemberID = memberID
	return s.records.Create(ctx, record)
}

// ListRecords returns the vaccination records of memberID under the same
// ownership rule as CreateRecord.
func (s *RecordsService) ListRecords(ctx context.Context, userID, memberID string) ([]models.VaccineRecord, error) {
	if _, err := s.members.GetOwned(ctx, memberID, userID); err != nil {
		return nil, err
	}
	return s.records.ListByMember(ctx, memberID)
}
