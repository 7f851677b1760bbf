package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liconlabs/corporate-legends/backend/internal/collection"
	"github.com/liconlabs/corporate-legends/backend/internal/models"
	"github.com/liconlabs/corporate-legends/backend/internal/services"
)

type TradeHandler struct {
	albumService *services.AlbumService
	offerService *services.TradeOfferService
}

func NewTradeHandler(album *services.AlbumService, offers *services.TradeOfferService) *TradeHandler {
	return &TradeHandler{
		albumService: album,
		offerService: offers,
	}
}

// BurnTrade spends the selected duplicates for one guaranteed new card.
func (h *TradeHandler) BurnTrade(c *gin.Context) {
	var req models.BurnTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	granted, unlocks, err := h.albumService.BurnTrade(c.Request.Context(), req.CardIDs)
	if err != nil {
		switch {
		case errors.Is(err, collection.ErrNotRegistered):
			c.JSON(http.StatusForbidden, gin.H{"error": "register before trading"})
		case errors.Is(err, collection.ErrInvalidSelection):
			c.JSON(http.StatusBadRequest, gin.H{"error": "selection must name exactly the required duplicates you own"})
		case errors.Is(err, collection.ErrNothingToGrant):
			c.JSON(http.StatusConflict, gin.H{"error": "you already own every card"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, models.BurnTradeResponse{
		GrantedCard: granted,
		NewUnlocks:  unlocks,
	})
}

func (h *TradeHandler) ListOffers(c *gin.Context) {
	offers, err := h.offerService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *TradeHandler) CreateOffer(c *gin.Context) {
	var req models.CreateTradeOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.offerService.Create(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (h *TradeHandler) DeleteOffer(c *gin.Context) {
	id := c.Param("id")

	if err := h.offerService.Delete(id); err != nil {
		if errors.Is(err, services.ErrOfferNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
