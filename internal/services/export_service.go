package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/h4ks-com/farmstead/internal/repository"
)

var ErrInvalidExport = errors.New("invalid export data")

// LedgerExport is a signed snapshot of an item and every transaction recorded against it.
type LedgerExport struct {
	ItemID          uint          `json:"item_id"`
	Name            string        `json:"name"`
	Type            string        `json:"type"`
	CurrentQuantity int           `json:"current_quantity"`
	PricePerUnit    float64       `json:"price_per_unit"`
	Transactions    []LedgerEntry `json:"transactions"`
	ExportedBy      string        `json:"exported_by"`
	ExportedAt      time.Time     `json:"exported_at"`
	Signature       string        `json:"signature"`
}

type LedgerEntry struct {
	ID           uint      `json:"id"`
	Type         string    `json:"type"`
	Quantity     int       `json:"quantity"`
	PricePerUnit float64   `json:"price_per_unit"`
	TotalPrice   float64   `json:"total_price"`
	BuyerName    *string   `json:"buyer_name,omitempty"`
	Date         time.Time `json:"date"`
}

type ExportService struct {
	itemRepo        *repository.ItemRepository
	transactionRepo *repository.TransactionRepository
	signingKey      string
	now             func() time.Time
}

func NewExportService(itemRepo *repository.ItemRepository, transactionRepo *repository.TransactionRepository, signingKey string) *ExportService {
	return &ExportService{
		itemRepo:        itemRepo,
		transactionRepo: transactionRepo,
		signingKey:      signingKey,
		now:             time.Now,
	}
}

func (s *ExportService) ExportLedger(ctx context.Context, itemID uint, exportedBy string) (*LedgerExport, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	transactions, err := s.transactionRepo.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	entries := make([]LedgerEntry, len(transactions))
	for i, tx := range transactions {
		entries[i] = LedgerEntry{
			ID:           tx.ID,
			Type:         tx.Type,
			Quantity:     tx.Quantity,
			PricePerUnit: tx.PricePerUnit,
			TotalPrice:   tx.TotalPrice,
			BuyerName:    tx.BuyerName,
			Date:         tx.Date.UTC(),
		}
	}

	export := &LedgerExport{
		ItemID:          item.ID,
		Name:            item.Name,
		Type:            item.Type,
		CurrentQuantity: item.Quantity,
		PricePerUnit:    item.Price,
		Transactions:    entries,
		ExportedBy:      exportedBy,
		ExportedAt:      s.now().UTC(),
	}

	signature, err := s.sign(export)
	if err != nil {
		return nil, err
	}
	export.Signature = signature

	return export, nil
}

// VerifyExportData checks an export that carries its own signature.
func (s *ExportService) VerifyExportData(export *LedgerExport) (bool, error) {
	if export.Signature == "" {
		return false, ErrInvalidExport
	}

	computed, err := s.sign(export)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(computed), []byte(export.Signature)), nil
}

func (s *ExportService) sign(export *LedgerExport) (string, error) {
	unsigned := *export
	unsigned.Signature = ""

	data, err := json.Marshal(unsigned)
	if err != nil {
		return "", err
	}

	h := hmac.New(sha256.New, []byte(s.signingKey))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
