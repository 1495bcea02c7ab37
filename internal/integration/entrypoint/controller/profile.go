// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/application/usecase/profile"
	"github.com/ledgerkeep/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerkeep/backend/internal/integration/entrypoint/middleware"
)

// ProfileController handles profile, snapshot, and currency endpoints.
type ProfileController struct {
	createUseCase         *profile.CreateProfileUseCase
	getUseCase            *profile.GetProfileUseCase
	updateUseCase         *profile.UpdateProfileUseCase
	getSnapshotUseCase    *profile.GetSnapshotUseCase
	listCurrenciesUseCase *profile.ListCurrenciesUseCase
}

// NewProfileController creates a new profile controller instance.
func NewProfileController(
	createUseCase *profile.CreateProfileUseCase,
	getUseCase *profile.GetProfileUseCase,
	updateUseCase *profile.UpdateProfileUseCase,
	getSnapshotUseCase *profile.GetSnapshotUseCase,
	listCurrenciesUseCase *profile.ListCurrenciesUseCase,
) *ProfileController {
	return &ProfileController{
		createUseCase:         createUseCase,
		getUseCase:            getUseCase,
		updateUseCase:         updateUseCase,
		getSnapshotUseCase:    getSnapshotUseCase,
		listCurrenciesUseCase: listCurrenciesUseCase,
	}
}

// Create handles POST /profiles requests. This is the only unauthenticated
// write endpoint; the response carries the bearer token for all later calls.
func (c *ProfileController) Create(ctx *gin.Context) {
	var req dto.CreateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), profile.CreateProfileInput{
		BaseCurrency: req.BaseCurrency,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateProfileResponse{
		Profile: dto.ToProfileResponse(output.Profile),
		Token:   output.Token,
	})
}

// Get handles GET /profile requests.
func (c *ProfileController) Get(ctx *gin.Context) {
	profileID, ok := middleware.GetProfileIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), profile.GetProfileInput{
		ProfileID: profileID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(output.Profile))
}

// Update handles PUT /profile requests.
func (c *ProfileController) Update(ctx *gin.Context) {
	profileID, ok := middleware.GetProfileIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := profile.UpdateProfileInput{
		ProfileID:    profileID,
		BaseCurrency: req.BaseCurrency,
	}

	if req.SpendAccountIDs != nil {
		// A present empty list clears the spend-account set.
		input.SpendAccountIDs = make([]uuid.UUID, 0, len(req.SpendAccountIDs))
		for _, idStr := range req.SpendAccountIDs {
			id, err := uuid.Parse(idStr)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
					Error: "Invalid spend account id",
				})
				return
			}
			input.SpendAccountIDs = append(input.SpendAccountIDs, id)
		}
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(output.Profile))
}

// GetSnapshot handles GET /snapshot requests.
func (c *ProfileController) GetSnapshot(ctx *gin.Context) {
	profileID, ok := middleware.GetProfileIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.getSnapshotUseCase.Execute(ctx.Request.Context(), profile.GetSnapshotInput{
		ProfileID: profileID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSnapshotResponse(output))
}

// ListCurrencies handles GET /currencies requests.
func (c *ProfileController) ListCurrencies(ctx *gin.Context) {
	output, err := c.listCurrenciesUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCurrencyResponses(output.Currencies))
}
