// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/application/usecase/expense"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
	"github.com/ledgerkeep/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerkeep/backend/internal/integration/entrypoint/middleware"
)

// ExpenseController handles planned-expense endpoints.
type ExpenseController struct {
	listUseCase   *expense.ListExpensesUseCase
	getUseCase    *expense.GetExpenseUseCase
	createUseCase *expense.CreateExpenseUseCase
	updateUseCase *expense.UpdateExpenseUseCase
	deleteUseCase *expense.DeleteExpenseUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	listUseCase *expense.ListExpensesUseCase,
	getUseCase *expense.GetExpenseUseCase,
	createUseCase *expense.CreateExpenseUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
) *ExpenseController {
	return &ExpenseController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	profileID, ok := middleware.GetProfileIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := expense.ListExpensesInput{
		ProfileID: profileID,
	}

	if startStr := ctx.Query("startDate"); startStr != "" {
		if start, err := time.Parse(dateLayout, startStr); err == nil {
			input.Filter.Start = &start
		}
	}
	if endStr := ctx.Query("endDate"); endStr != "" {
		if end, err := time.Parse(dateLayout, endStr); err == nil {
			input.Filter.End = &end
		}
	}

	if recurringStr := ctx.Query("recurring"); recurringStr != "" {
		recurring := recurringStr == "true"
		input.Filter.Recurring = &recurring
	}
	if paidStr := ctx.Query("paid"); paidStr != "" {
		paid := paidStr == "true"
		input.Filter.PaidFlag = &paid
	}

	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.ExpenseStatus(statusStr)
		if !status.Valid() {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid expense status filter",
				Code:  string(domainerror.ErrCodeInvalidExpenseStatus),
			})
			return
		}
		input.Filter.Status = &status
	}

	input.Filter.Currency = ctx.Query("currency")
	input.Filter.OnlyUpcoming = ctx.Query("upcoming") == "true"

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output))
}

// Get handles GET /expenses/:expenseId requests.
func (c *ExpenseController) Get(ctx *gin.Context) {
	profileID, ok := middleware.GetProfileIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	expenseID, err := parseExpenseID(ctx)
	if err != nil {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), expense.GetExpenseInput{
		ProfileID: profileID,
		ExpenseID: expenseID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	profileID, ok := middleware.GetProfileIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	cost, err := decimal.NewFromString(req.EstimatedCost)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid estimated cost format",
			Code:  string(domainerror.ErrCodeInvalidExpenseCost),
		})
		return
	}

	input := expense.CreateExpenseInput{
		ProfileID:     profileID,
		Name:          req.Name,
		EstimatedCost: cost,
		Currency:      req.Currency,
		IsRecurring:   req.IsRecurring,
	}

	if input.DueDate, err = parseOptionalDate(ctx, req.DueDate); err != nil {
		return
	}
	if input.StartDate, err = parseOptionalDate(ctx, req.StartDate); err != nil {
		return
	}
	if input.EndDate, err = parseOptionalDate(ctx, req.EndDate); err != nil {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense))
}

// Update handles PUT /expenses/:expenseId requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	profileID, ok := middleware.GetProfileIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	expenseID, err := parseExpenseID(ctx)
	if err != nil {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := expense.UpdateExpenseInput{
		ProfileID:    profileID,
		ExpenseID:    expenseID,
		Name:         req.Name,
		Currency:     req.Currency,
		ClearDueDate: req.ClearDueDate,
		ClearEndDate: req.ClearEndDate,
		PaidFlag:     req.PaidFlag,
		IsRecurring:  req.IsRecurring,
	}

	if req.EstimatedCost != nil {
		cost, err := decimal.NewFromString(*req.EstimatedCost)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid estimated cost format",
				Code:  string(domainerror.ErrCodeInvalidExpenseCost),
			})
			return
		}
		input.EstimatedCost = &cost
	}

	if input.DueDate, err = parseOptionalDate(ctx, req.DueDate); err != nil {
		return
	}
	if input.StartDate, err = parseOptionalDate(ctx, req.StartDate); err != nil {
		return
	}
	if input.EndDate, err = parseOptionalDate(ctx, req.EndDate); err != nil {
		return
	}

	if req.Status != nil {
		status := entity.ExpenseStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Delete handles DELETE /expenses/:expenseId requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	profileID, ok := middleware.GetProfileIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	expenseID, err := parseExpenseID(ctx)
	if err != nil {
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		ProfileID: profileID,
		ExpenseID: expenseID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseExpenseID parses the expense id path parameter, writing the error
// response itself on failure.
func parseExpenseID(ctx *gin.Context) (int64, error) {
	expenseID, err := strconv.ParseInt(ctx.Param("expenseId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid expense id",
		})
		return 0, err
	}
	return expenseID, nil
}

// parseOptionalDate parses an optional YYYY-MM-DD string, writing the error
// response itself on failure.
func parseOptionalDate(ctx *gin.Context, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
		})
		return nil, err
	}
	return &parsed, nil
}
