package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/patrimonio/api/internal/models"
)

var (
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrNoTransactions  = errors.New("transaction not found")
	ErrInvalidTradeArg = errors.New("quantity and price must be greater than zero")
)

// validFilters is the exhaustive set of recognized history query parameters.
// Anything else is a hard input error, not silently ignored.
var validFilters = map[string]struct{}{
	"assetSymbol": {},
	"actionType":  {},
	"date":        {},
}

// TransactionService serves the append-only buy/sell history
type TransactionService struct {
	users UserStore
	log   TransactionStore
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(users UserStore, log TransactionStore) *TransactionService {
	return &TransactionService{users: users, log: log}
}

// History translates query parameters into an exact-match filter scoped to
// the authenticated user. The date filter requires a full DD-MM-YYYY triple.
func (s *TransactionService) History(ctx context.Context, userID int64, params url.Values) ([]models.Transaction, error) {
	var invalid []string
	for key := range params {
		if _, ok := validFilters[key]; !ok {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: params %s are invalid", ErrInvalidFilter, strings.Join(invalid, ", "))
	}

	filter := models.TransactionFilter{UserID: userID}
	if v := params.Get("assetSymbol"); v != "" {
		filter.AssetSymbol = v
	}
	if v := params.Get("actionType"); v != "" {
		action := models.ActionType(v)
		if !action.Valid() {
			return nil, fmt.Errorf("%w: actionType must be BUY or SELL", ErrInvalidFilter)
		}
		filter.ActionType = action
	}
	if v := params.Get("date"); v != "" {
		date, err := models.ParseDate(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		filter.Date = &date
	}

	txs, err := s.log.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, ErrNoTransactions
	}
	return txs, nil
}

// Get retrieves one transaction by id
func (s *TransactionService) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	return s.log.GetByID(ctx, id)
}

// Create appends a transaction record directly. The referenced user must
// exist; field ranges are validated but no ledger bookkeeping happens here.
func (s *TransactionService) Create(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}
	if !req.ActionType.Valid() {
		return nil, fmt.Errorf("%w: actionType must be BUY or SELL", ErrInvalidFilter)
	}
	if !req.Quantity.IsPositive() || !req.Price.IsPositive() {
		return nil, ErrInvalidTradeArg
	}
	date, err := models.NewDate(req.Date.Day, req.Date.Month, req.Date.Year)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	t := &models.Transaction{
		UserID:      req.UserID,
		AssetSymbol: req.AssetSymbol,
		ActionType:  req.ActionType,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Date:        date,
	}
	if err := s.log.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
