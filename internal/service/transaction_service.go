package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/stocktrade-simulator/internal/export"
	"github.com/stocktrade-simulator/internal/models"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/pkg/apperror"
)

const dateLayout = "2006-01-02"

// TransactionService reads and exports a user's trade history
type TransactionService struct {
	ledgerRepo *repository.LedgerRepository
	userRepo   *repository.UserRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(ledgerRepo *repository.LedgerRepository, userRepo *repository.UserRepository) *TransactionService {
	return &TransactionService{
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
	}
}

// ListTransactionsRequest represents transaction query parameters
type ListTransactionsRequest struct {
	Type         string `form:"type"`
	InstrumentID uint   `form:"instrumentId"`
	Search       string `form:"search" binding:"omitempty,max=100"`
	FromDate     string `form:"fromDate"`
	ToDate       string `form:"toDate"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Filter converts the request into a ledger filter. A toDate without a time
// component covers the whole day.
func (r *ListTransactionsRequest) Filter() (repository.LedgerFilter, error) {
	f := repository.LedgerFilter{
		Side:         models.TradeSide(strings.ToUpper(r.Type)),
		InstrumentID: r.InstrumentID,
		Search:       strings.TrimSpace(r.Search),
		Page:         r.Page,
		PageSize:     r.Limit,
	}
	if f.Side != "" && !f.Side.Valid() {
		return f, apperror.InvalidArgument("type must be either BUY or SELL")
	}

	if r.FromDate != "" {
		from, _, err := parseDate(r.FromDate)
		if err != nil {
			return f, apperror.InvalidArgument("invalid fromDate %q", r.FromDate)
		}
		f.From = &from
	}
	if r.ToDate != "" {
		to, dateOnly, err := parseDate(r.ToDate)
		if err != nil {
			return f, apperror.InvalidArgument("invalid toDate %q", r.ToDate)
		}
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, apperror.InvalidArgument("fromDate must not be after toDate")
	}

	f.Normalize()
	return f, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), false, nil
}

// TransactionPage is one page of history
type TransactionPage struct {
	Items    []models.LedgerEntry
	Total    int64
	Page     int
	PageSize int
}

// List returns one page of the user's history, newest first
func (s *TransactionService) List(ctx context.Context, userID uint, req *ListTransactionsRequest) (*TransactionPage, error) {
	f, err := req.Filter()
	if err != nil {
		return nil, err
	}

	entries, total, err := s.ledgerRepo.QueryByUser(ctx, userID, f)
	if err != nil {
		return nil, apperror.Internal("", err)
	}
	return &TransactionPage{Items: entries, Total: total, Page: f.Page, PageSize: f.PageSize}, nil
}

// Export returns every entry matching the request, ignoring paging
func (s *TransactionService) Export(ctx context.Context, userID uint, req *ListTransactionsRequest) ([]models.LedgerEntry, error) {
	f, err := req.Filter()
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.ExportByUser(ctx, userID, f)
	if err != nil {
		return nil, apperror.Internal("", err)
	}
	return entries, nil
}

// ExportCSV writes the matching history as CSV
func (s *TransactionService) ExportCSV(ctx context.Context, userID uint, req *ListTransactionsRequest, w io.Writer) error {
	entries, err := s.Export(ctx, userID, req)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(w, entries); err != nil {
		return apperror.Internal("", err)
	}
	return nil
}

// ExportPDF writes the matching history as a PDF statement
func (s *TransactionService) ExportPDF(ctx context.Context, userID uint, req *ListTransactionsRequest, w io.Writer) error {
	entries, err := s.Export(ctx, userID, req)
	if err != nil {
		return err
	}

	var accountName string
	user, err := s.userRepo.GetByID(ctx, userID)
	switch {
	case err == nil:
		accountName = user.Name
	case !errors.Is(err, repository.ErrUserNotFound):
		return apperror.Internal("", err)
	}

	st := export.Statement{
		Title:       "Transaction History",
		AccountName: accountName,
		GeneratedAt: time.Now(),
	}
	if err := export.WritePDF(w, st, entries); err != nil {
		return apperror.Internal("", err)
	}
	return nil
}
