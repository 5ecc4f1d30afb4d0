package repositories

import (
	"errors"
	"time"

	"hela9_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound  = errors.New("deplacement request not found")
	ErrProposalNotFound = errors.New("price proposal not found")
	ErrProposalExists   = errors.New("price proposal already exists")
)

// ProposalRow - предложение цены для дашборда клиента.
type ProposalRow struct {
	ID               string
	RequestID        string
	StylistID        string
	StylistName      string
	ServiceRequested string
	ProposedPrice    decimal.Decimal
	Notes            string
	CreatedAt        time.Time
}

type DeplacementRepository interface {
	CreateRequest(db *gorm.DB, request *models.DeplacementRequest) error
	FindRequest(db *gorm.DB, id string) (*models.DeplacementRequest, error)
	AcceptRequest(db *gorm.DB, requestID, stylistID string) error
	FindOpenBroadcastsWithoutProposalFrom(db *gorm.DB, stylistID string) ([]models.DeplacementRequest, error)

	CreateProposal(db *gorm.DB, proposal *models.PriceProposal) error
	HasProposal(db *gorm.DB, requestID, stylistID string) (bool, error)
	FindPendingProposalForClient(db *gorm.DB, proposalID, clientID string) (*models.PriceProposal, error)
	SetProposalStatus(db *gorm.DB, proposalID string, status models.ProposalStatus) error
	RefusePendingSiblings(db *gorm.DB, requestID, acceptedID string) ([]string, error)
	ListPendingProposalsForClient(db *gorm.DB, clientID string) ([]ProposalRow, error)
}

type DeplacementRepositoryImpl struct{}

func NewDeplacementRepository() DeplacementRepository {
	return &DeplacementRepositoryImpl{}
}

// --- Requests ---

func (r *DeplacementRepositoryImpl) CreateRequest(db *gorm.DB, request *models.DeplacementRequest) error {
	return db.Create(request).Error
}

func (r *DeplacementRepositoryImpl) FindRequest(db *gorm.DB, id string) (*models.DeplacementRequest, error) {
	var request models.DeplacementRequest
	if err := db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// AcceptRequest переводит запрос в Accepted и фиксирует выбранного стилиста.
// Текущий статус запроса не проверяется.
func (r *DeplacementRepositoryImpl) AcceptRequest(db *gorm.DB, requestID, stylistID string) error {
	result := db.Model(&models.DeplacementRequest{}).Where("id = ?", requestID).Updates(map[string]interface{}{
		"status":            models.DeplacementStatusAccepted,
		"target_stylist_id": stylistID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// FindOpenBroadcastsWithoutProposalFrom - открытые широковещательные запросы,
// на которые стилист еще не отвечал, от новых к старым.
func (r *DeplacementRepositoryImpl) FindOpenBroadcastsWithoutProposalFrom(db *gorm.DB, stylistID string) ([]models.DeplacementRequest, error) {
	proposed := db.Model(&models.PriceProposal{}).Select("request_id").Where("stylist_id = ?", stylistID)

	var requests []models.DeplacementRequest
	err := db.Where("status = ? AND target_stylist_id IS NULL", models.DeplacementStatusPending).
		Where("id NOT IN (?)", proposed).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// --- Proposals ---

func (r *DeplacementRepositoryImpl) CreateProposal(db *gorm.DB, proposal *models.PriceProposal) error {
	if err := db.Create(proposal).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrProposalExists
		}
		return err
	}
	return nil
}

func (r *DeplacementRepositoryImpl) HasProposal(db *gorm.DB, requestID, stylistID string) (bool, error) {
	var count int64
	err := db.Model(&models.PriceProposal{}).
		Where("request_id = ? AND stylist_id = ?", requestID, stylistID).
		Count(&count).Error
	return count > 0, err
}

// FindPendingProposalForClient находит предложение, адресованное клиенту и еще не обработанное.
func (r *DeplacementRepositoryImpl) FindPendingProposalForClient(db *gorm.DB, proposalID, clientID string) (*models.PriceProposal, error) {
	var proposal models.PriceProposal
	err := db.Where("id = ? AND client_id = ? AND status = ?", proposalID, clientID, models.ProposalStatusPending).
		First(&proposal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *DeplacementRepositoryImpl) SetProposalStatus(db *gorm.DB, proposalID string, status models.ProposalStatus) error {
	result := db.Model(&models.PriceProposal{}).Where("id = ?", proposalID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProposalNotFound
	}
	return nil
}

// RefusePendingSiblings одним UPDATE отклоняет остальные Pending-предложения запроса.
// Возвращает id стилистов, чьи предложения были отклонены.
func (r *DeplacementRepositoryImpl) RefusePendingSiblings(db *gorm.DB, requestID, acceptedID string) ([]string, error) {
	var stylistIDs []string
	siblings := db.Model(&models.PriceProposal{}).
		Where("request_id = ? AND id <> ? AND status = ?", requestID, acceptedID, models.ProposalStatusPending).
		Session(&gorm.Session{})

	if err := siblings.Pluck("stylist_id", &stylistIDs).Error; err != nil {
		return nil, err
	}
	if len(stylistIDs) == 0 {
		return stylistIDs, nil
	}

	err := siblings.Update("status", models.ProposalStatusRefused).Error
	return stylistIDs, err
}

func (r *DeplacementRepositoryImpl) ListPendingProposalsForClient(db *gorm.DB, clientID string) ([]ProposalRow, error) {
	var rows []ProposalRow
	err := db.Table("price_proposals").
		Select(`price_proposals.id, price_proposals.request_id, price_proposals.stylist_id, users.name AS stylist_name,
			deplacement_requests.service_requested, price_proposals.proposed_price, price_proposals.notes, price_proposals.created_at`).
		Joins("JOIN users ON users.id = price_proposals.stylist_id").
		Joins("JOIN deplacement_requests ON deplacement_requests.id = price_proposals.request_id").
		Where("price_proposals.client_id = ? AND price_proposals.status = ?", clientID, models.ProposalStatusPending).
		Order("price_proposals.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
