package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bankledger/pkg/identity"
	"bankledger/pkg/ledger"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type registerHolderRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	ID        string `json:"id"`
	Address   string `json:"address"`
}

type openAccountRequest struct {
	HolderID string `json:"holder_id"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// accountView is the JSON shape accounts are rendered as.
// NumberDisplay carries the zero-padded 6-digit form.
type accountView struct {
	Agency        string          `json:"agency"`
	Number        int             `json:"number"`
	NumberDisplay string          `json:"number_display"`
	HolderID      string          `json:"holder_id"`
	Balance       decimal.Decimal `json:"balance"`
}

func viewOf(a *ledger.Account) accountView {
	return accountView{
		Agency:        a.Agency,
		Number:        a.Number,
		NumberDisplay: ledger.FormatNumber(a.Number),
		HolderID:      a.HolderID,
		Balance:       a.Balance(),
	}
}

func (s *Server) handleRegisterHolder(w http.ResponseWriter, r *http.Request) {
	var req registerHolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	h, err := s.holders.Register(req.Name, req.BirthDate, req.ID, req.Address)
	s.metrics.RecordHolderRegistered(ledger.ClassifyError(err))
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	s.logger.Info("holder registered", zap.String("holder", h.ID))
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) handleGetHolder(w http.ResponseWriter, r *http.Request) {
	h, ok := s.holders.Lookup(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, ledger.ErrHolderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleOpenAccount(w http.ResponseWriter, r *http.Request) {
	var req openAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	a, err := s.accounts.Open(req.HolderID)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(a))
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := s.accounts.List()
	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, viewOf(a))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	a, ok := s.account(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(a))
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	a, ok := s.account(w, r)
	if !ok {
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, err := a.Deposit(req.Amount)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	a, ok := s.account(w, r)
	if !ok {
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, err := a.Withdraw(ledger.WithdrawalRequest{
		Amount: req.Amount,
		Limits: s.config.Limits,
	})
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	a, ok := s.account(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(a.Statement()))
}

// account resolves the {number} path variable. Writes the error response
// itself and returns ok=false when the account cannot be resolved.
func (s *Server) account(w http.ResponseWriter, r *http.Request) (*ledger.Account, bool) {
	number, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("account number must be an integer"))
		return nil, false
	}
	a, err := s.accounts.Get(number)
	if err != nil {
		writeError(w, statusOf(err), err)
		return nil, false
	}
	return a, true
}

// statusOf maps domain errors to HTTP status codes:
// validation 400, duplicate 409, not found 404, business-rule rejections
// (insufficient funds, limits) 422, anything else 500.
func statusOf(err error) int {
	switch {
	case ledger.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, identity.ErrDuplicateHolder):
		return http.StatusConflict
	case ledger.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientFunds), ledger.IsLimit(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]interface{}{"error": err.Error()})
}
