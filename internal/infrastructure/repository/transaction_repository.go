package repository

import (
	"context"
	"errors"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	domainRepo "github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/internal/infrastructure/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// transactionSortColumns whitelists the columns accepted from the sort_by
// query param; anything else falls back to the default order.
var transactionSortColumns = map[string]bool{
	"transaction_date":   true,
	"transaction_number": true,
	"final_amount":       true,
	"created_at":         true,
}

type transactionRepository struct {
	db *database.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.Conn(ctx).Create(transaction).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := r.db.Conn(ctx).
		Preload("Items").Preload("Customer").
		First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) GetByNumber(ctx context.Context, umkmID uuid.UUID, number string) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := r.db.Conn(ctx).
		Preload("Items").
		First(&transaction, "umkm_id = ? AND transaction_number = ?", umkmID, number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.Conn(ctx).Omit("Items", "Customer", "Umkm").Save(transaction).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	conn := r.db.Conn(ctx)
	if err := conn.Delete(&entity.TransactionItem{}, "transaction_id = ?", id).Error; err != nil {
		return err
	}
	return conn.Delete(&entity.Transaction{}, "id = ?", id).Error
}

func (r *transactionRepository) List(ctx context.Context, umkmID uuid.UUID, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var transactions []entity.Transaction
	var total int64

	query := r.db.Conn(ctx).Model(&entity.Transaction{}).Where("umkm_id = ?", umkmID)

	if params.TransactionType != "" {
		query = query.Where("transaction_type = ?", params.TransactionType)
	}

	if params.PaymentStatus != "" {
		query = query.Where("payment_status = ?", params.PaymentStatus)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("transaction_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("transaction_date < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "transaction_date"
	sortOrder := "DESC"
	if transactionSortColumns[params.SortBy] {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Preload("Items").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&transactions).Error

	return transactions, total, err
}

type sequenceRepository struct {
	db *database.DB
}

// NewSequenceRepository creates a new transaction sequence repository
func NewSequenceRepository(db *database.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next reserves the next counter value for (umkmID, seqDate). The row is
// created on first use, then bumped with an atomic UPDATE so concurrent
// callers inside separate database transactions serialize on it.
func (r *sequenceRepository) Next(ctx context.Context, umkmID uuid.UUID, seqDate string) (int, error) {
	conn := r.db.Conn(ctx)

	seq := entity.TransactionSequence{UmkmID: umkmID, SeqDate: seqDate, LastValue: 0}
	err := conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "umkm_id"}, {Name: "seq_date"}},
		DoNothing: true,
	}).Create(&seq).Error
	if err != nil {
		return 0, err
	}

	result := conn.Model(&entity.TransactionSequence{}).
		Where("umkm_id = ? AND seq_date = ?", umkmID, seqDate).
		Update("last_value", gorm.Expr("last_value + 1"))
	if result.Error != nil {
		return 0, result.Error
	}

	var reserved entity.TransactionSequence
	if err := conn.First(&reserved, "umkm_id = ? AND seq_date = ?", umkmID, seqDate).Error; err != nil {
		return 0, err
	}
	return reserved.LastValue, nil
}
