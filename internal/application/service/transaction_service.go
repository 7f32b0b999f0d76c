package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	"github.com/garudaai/umkm-api/internal/domain/enum"
	"github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/internal/infrastructure/database"
	"github.com/garudaai/umkm-api/pkg/apperror"
	"github.com/garudaai/umkm-api/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxNumberingAttempts bounds the retry loop around duplicate transaction
// numbers. The sequence row makes duplicates near-impossible; the unique
// column is the backstop.
const maxNumberingAttempts = 3

// TransactionService handles the transaction recording workflow
type TransactionService struct {
	db              *database.DB
	transactionRepo repository.TransactionRepository
	sequenceRepo    repository.SequenceRepository
	productRepo     repository.ProductRepository
	customerRepo    repository.CustomerRepository
	umkmRepo        repository.UmkmRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	db *database.DB,
	transactionRepo repository.TransactionRepository,
	sequenceRepo repository.SequenceRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	umkmRepo repository.UmkmRepository,
) *TransactionService {
	return &TransactionService{
		db:              db,
		transactionRepo: transactionRepo,
		sequenceRepo:    sequenceRepo,
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		umkmRepo:        umkmRepo,
	}
}

// TransactionItemInput represents a line item in a transaction
type TransactionItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice float64
	Discount  float64
}

// CreateTransactionInput represents the create transaction input
type CreateTransactionInput struct {
	UmkmID          uuid.UUID
	CustomerID      *uuid.UUID
	CustomerName    *string
	TransactionType enum.TransactionType
	PaymentMethod   enum.PaymentMethod
	PaymentStatus   enum.PaymentStatus
	DiscountAmount  float64
	TaxAmount       float64
	Notes           *string
	CreatedBy       uuid.UUID
	Items           []TransactionItemInput
}

// UpdateTransactionInput represents the sparse header update input. Only
// fields whose pointer is non-nil are applied; items are immutable.
type UpdateTransactionInput struct {
	CustomerID     *uuid.UUID
	CustomerName   *string
	PaymentMethod  *enum.PaymentMethod
	PaymentStatus  *enum.PaymentStatus
	DiscountAmount *float64
	TaxAmount      *float64
	Notes          *string
}

func toCents(v float64) int64 {
	return int64(v*100 + 0.5)
}

// Create records a new transaction: validates items, snapshots product data,
// decrements stock and persists header plus items in one database
// transaction. The transaction number is reserved from the per-day sequence
// inside the same unit, so a failure releases it with everything else.
func (s *TransactionService) Create(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Transaksi harus memiliki minimal 1 item")
	}

	if input.TransactionType == "" {
		input.TransactionType = enum.TransactionTypeSale
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = enum.PaymentMethodCash
	}
	if input.PaymentStatus == "" {
		input.PaymentStatus = enum.PaymentStatusPending
	}
	if !input.TransactionType.IsValid() {
		return nil, apperror.NewBadRequestError("Jenis transaksi tidak valid")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Metode pembayaran tidak valid")
	}
	if !input.PaymentStatus.IsValid() {
		return nil, apperror.NewBadRequestError("Status pembayaran tidak valid")
	}
	if input.DiscountAmount < 0 || input.TaxAmount < 0 {
		return nil, apperror.NewBadRequestError("Diskon dan pajak tidak boleh negatif")
	}

	umkm, err := s.umkmRepo.GetByID(ctx, input.UmkmID)
	if err != nil {
		return nil, err
	}
	if umkm == nil {
		return nil, apperror.NewNotFoundError("UMKM")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.UmkmID != input.UmkmID {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// Validate items and compute totals. Stock is pre-checked here for a
	// friendly error; the conditional decrement below is what actually
	// guards against races.
	var totalAmount int64
	items := make([]entity.TransactionItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists || product.UmkmID != input.UmkmID {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product dengan ID %s", item.ProductID))
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Quantity harus lebih dari 0")
		}
		if item.UnitPrice <= 0 {
			return nil, apperror.NewBadRequestError("Harga satuan harus lebih dari 0")
		}
		if item.Discount < 0 {
			return nil, apperror.NewBadRequestError("Diskon item tidak boleh negatif")
		}

		unitPrice := toCents(item.UnitPrice)
		discount := toCents(item.Discount)
		if discount > unitPrice*int64(item.Quantity) {
			return nil, apperror.NewBadRequestError("Diskon item melebihi nilai item")
		}
		if product.Stock < item.Quantity {
			return nil, apperror.NewInsufficientStockError(product.Name, product.Stock)
		}

		subtotal := unitPrice*int64(item.Quantity) - discount
		totalAmount += subtotal

		items = append(items, entity.TransactionItem{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			Discount:    discount,
			Subtotal:    subtotal,
		})
	}

	discountAmount := toCents(input.DiscountAmount)
	taxAmount := toCents(input.TaxAmount)
	finalAmount := totalAmount - discountAmount + taxAmount

	var created *entity.Transaction
	for attempt := 1; attempt <= maxNumberingAttempts; attempt++ {
		created, err = s.createOnce(ctx, input, items, totalAmount, discountAmount, taxAmount, finalAmount)
		if err == nil {
			return created, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Warn("duplicate transaction number, retrying",
				"umkm_id", input.UmkmID, "attempt", attempt)
			continue
		}
		return nil, err
	}

	return nil, apperror.NewConflictError("Nomor transaksi bentrok, silakan ulangi permintaan")
}

// createOnce runs a single attempt of the atomic create unit. A duplicated
// transaction number surfaces as gorm.ErrDuplicatedKey and rolls the whole
// unit back, including the stock decrements and the sequence bump.
func (s *TransactionService) createOnce(
	ctx context.Context,
	input *CreateTransactionInput,
	items []entity.TransactionItem,
	totalAmount, discountAmount, taxAmount, finalAmount int64,
) (*entity.Transaction, error) {
	var created *entity.Transaction

	err := s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now()
		seq, err := s.sequenceRepo.Next(txCtx, input.UmkmID, now.Format("2006-01-02"))
		if err != nil {
			return err
		}
		number := fmt.Sprintf("TRX-%s-%s-%04d",
			input.UmkmID, now.Format("20060102"), seq)

		// Decrement stock in the submitted item order
		for i := range items {
			ok, err := s.productRepo.DecrementStock(txCtx, items[i].ProductID, items[i].Quantity)
			if err != nil {
				return err
			}
			if !ok {
				product, err := s.productRepo.GetByID(txCtx, items[i].ProductID)
				if err != nil {
					return err
				}
				available := 0
				if product != nil {
					available = product.Stock
				}
				return apperror.NewInsufficientStockError(items[i].ProductName, available)
			}
		}

		transaction := &entity.Transaction{
			UmkmID:            input.UmkmID,
			TransactionNumber: number,
			TransactionDate:   now,
			CustomerID:        input.CustomerID,
			CustomerName:      input.CustomerName,
			TransactionType:   input.TransactionType,
			PaymentMethod:     input.PaymentMethod,
			TotalAmount:       totalAmount,
			DiscountAmount:    discountAmount,
			TaxAmount:         taxAmount,
			FinalAmount:       finalAmount,
			PaymentStatus:     input.PaymentStatus,
			Notes:             input.Notes,
			CreatedBy:         input.CreatedBy,
			Items:             items,
		}
		if err := s.transactionRepo.Create(txCtx, transaction); err != nil {
			return err
		}

		created = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a transaction with its items
func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaksi")
	}
	return transaction, nil
}

// List retrieves transactions with filters and pagination
func (s *TransactionService) List(ctx context.Context, umkmID uuid.UUID, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	return s.transactionRepo.List(ctx, umkmID, params)
}

// Update applies a sparse header update. Items and quantities are immutable;
// when discount or tax change, final_amount is recomputed from the stored
// total_amount.
func (s *TransactionService) Update(ctx context.Context, id uuid.UUID, input *UpdateTransactionInput) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaksi")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.UmkmID != transaction.UmkmID {
			return nil, apperror.NewNotFoundError("Customer")
		}
		transaction.CustomerID = input.CustomerID
	}
	if input.CustomerName != nil {
		transaction.CustomerName = input.CustomerName
	}
	if input.PaymentMethod != nil {
		if !input.PaymentMethod.IsValid() {
			return nil, apperror.NewBadRequestError("Metode pembayaran tidak valid")
		}
		transaction.PaymentMethod = *input.PaymentMethod
	}
	if input.PaymentStatus != nil {
		if !input.PaymentStatus.IsValid() {
			return nil, apperror.NewBadRequestError("Status pembayaran tidak valid")
		}
		transaction.PaymentStatus = *input.PaymentStatus
	}
	if input.DiscountAmount != nil {
		if *input.DiscountAmount < 0 {
			return nil, apperror.NewBadRequestError("Diskon tidak boleh negatif")
		}
		transaction.DiscountAmount = toCents(*input.DiscountAmount)
	}
	if input.TaxAmount != nil {
		if *input.TaxAmount < 0 {
			return nil, apperror.NewBadRequestError("Pajak tidak boleh negatif")
		}
		transaction.TaxAmount = toCents(*input.TaxAmount)
	}
	if input.Notes != nil {
		transaction.Notes = input.Notes
	}

	transaction.FinalAmount = transaction.TotalAmount - transaction.DiscountAmount + transaction.TaxAmount

	if err := s.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

// Delete removes a transaction and restores the stock its items consumed.
// Products that no longer exist are skipped; their stock cannot be restored.
func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if transaction == nil {
		return apperror.NewNotFoundError("Transaksi")
	}

	return s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, item := range transaction.Items {
			product, err := s.productRepo.GetByID(txCtx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				logger.Warn("skipping restock for missing product",
					"product_id", item.ProductID, "transaction_id", transaction.ID)
				continue
			}
			if err := s.productRepo.IncrementStock(txCtx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return s.transactionRepo.Delete(txCtx, transaction.ID)
	})
}
