package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/finance-ledger/internal/adapter/http/models"
	"github.com/api-sage/finance-ledger/internal/commons"
	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/api-sage/finance-ledger/internal/logger"
	"github.com/api-sage/finance-ledger/internal/usecase/service_interfaces"
)

type TransferController struct {
	transferService service_interfaces.TransferService
	nationalService service_interfaces.NationalTransferService
}

func NewTransferController(
	transferService service_interfaces.TransferService,
	nationalService service_interfaces.NationalTransferService,
) *TransferController {
	return &TransferController{
		transferService: transferService,
		nationalService: nationalService,
	}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	transfer := http.Handler(http.HandlerFunc(c.transfer))
	national := http.Handler(http.HandlerFunc(c.transferToNationalID))
	if authMiddleware != nil {
		transfer = authMiddleware(transfer)
		national = authMiddleware(national)
	}

	mux.Handle("/transfer-funds", transfer)
	mux.Handle("/transfer-to-national-id", national)
}

func (c *TransferController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.TransferResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		response := commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	date, _ := req.ParsedDate()
	entry, err := c.transferService.TransferFunds(r.Context(), req.CustomerID, req.FromAccountID, req.ToAccountID, req.Amount, date, req.Memo)
	if err != nil {
		status, response := transferErrorResponse(err)
		logError(r, err, logger.Fields{"message": response.Message})
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	response := commons.SuccessResponse("transfer completed successfully", models.TransferResponse{
		JournalEntryID: entry.ID,
		Amount:         req.Amount.StringFixed(2),
		Date:           entry.Date.Format("2006-01-02"),
		Memo:           entry.Memo,
	})
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransferController) transferToNationalID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.TransferResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.NationalTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		response := commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	date, _ := req.ParsedDate()
	err := c.nationalService.TransferToNationalID(r.Context(), req.CustomerID, req.FromAccountID, req.RecipientNationalID, req.Amount, date, req.Memo)
	if err != nil {
		status, response := transferErrorResponse(err)
		logError(r, err, logger.Fields{"message": response.Message})
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	response := commons.SuccessResponse("transfer completed successfully", models.TransferResponse{
		Amount: req.Amount.StringFixed(2),
	})
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

// transferErrorResponse maps each workflow error to a distinct,
// non-leaking message. Insufficient-funds responses echo only the
// caller's own balance; recipient identifiers never appear raw.
func transferErrorResponse(err error) (int, commons.Response[models.TransferResponse]) {
	var insufficient *domain.InsufficientFundsError
	if errors.As(err, &insufficient) {
		return http.StatusUnprocessableEntity, commons.ErrorResponse[models.TransferResponse](
			"Insufficient funds", insufficient.Error())
	}

	switch {
	case errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrRecipientRequired),
		errors.Is(err, domain.ErrSelfTransfer),
		errors.Is(err, domain.ErrAccountNotLedgerLinked),
		errors.Is(err, domain.ErrEntryNotBalanced),
		errors.Is(err, domain.ErrEmptyEntry):
		return http.StatusBadRequest, commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error())
	case errors.Is(err, domain.ErrAccountNotOwned):
		return http.StatusForbidden, commons.ErrorResponse[models.TransferResponse]("not authorized", err.Error())
	case errors.Is(err, domain.ErrRecipientNotFound),
		errors.Is(err, domain.ErrNoActiveRecipientAccount),
		errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, commons.ErrorResponse[models.TransferResponse]("not found", err.Error())
	default:
		return http.StatusInternalServerError, commons.ErrorResponse[models.TransferResponse](
			"failed to process transfer", "Unable to process transfer right now")
	}
}
