// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
	"github.com/ledgerkeep/backend/internal/integration/entrypoint/dto"
)

// respondError maps a domain error to an HTTP status and writes the JSON
// error body. Untyped errors become a generic 500.
func respondError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		status := http.StatusBadRequest
		switch txnErr.Code {
		case domainerror.ErrCodeTransactionNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeDuplicateTransactionID:
			status = http.StatusConflict
		}
		ctx.JSON(status, dto.ErrorResponse{Error: txnErr.Message, Code: string(txnErr.Code)})
		return
	}

	var accErr *domainerror.AccountError
	if errors.As(err, &accErr) {
		status := http.StatusBadRequest
		switch accErr.Code {
		case domainerror.ErrCodeAccountNotFound, domainerror.ErrCodeBalanceNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeAccountNameTaken:
			status = http.StatusConflict
		case domainerror.ErrCodeReservedAccount:
			status = http.StatusUnprocessableEntity
		}
		ctx.JSON(status, dto.ErrorResponse{Error: accErr.Message, Code: string(accErr.Code)})
		return
	}

	var expErr *domainerror.ExpenseError
	if errors.As(err, &expErr) {
		status := http.StatusBadRequest
		switch expErr.Code {
		case domainerror.ErrCodeExpenseNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeExpenseNameTaken:
			status = http.StatusConflict
		}
		ctx.JSON(status, dto.ErrorResponse{Error: expErr.Message, Code: string(expErr.Code)})
		return
	}

	var prfErr *domainerror.ProfileError
	if errors.As(err, &prfErr) {
		status := http.StatusBadRequest
		switch prfErr.Code {
		case domainerror.ErrCodeProfileNotFound, domainerror.ErrCodeSnapshotNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeCurrencyNotFound:
			status = http.StatusUnprocessableEntity
		}
		ctx.JSON(status, dto.ErrorResponse{Error: prfErr.Message, Code: string(prfErr.Code)})
		return
	}

	var convErr *domainerror.ConversionError
	if errors.As(err, &convErr) {
		status := http.StatusUnprocessableEntity
		if convErr.Code == domainerror.ErrCodeRateTableUnavailable {
			status = http.StatusInternalServerError
		}
		ctx.JSON(status, dto.ErrorResponse{Error: convErr.Message, Code: string(convErr.Code)})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Internal server error",
	})
}

// respondUnauthenticated writes the standard missing-authentication body.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Profile not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
