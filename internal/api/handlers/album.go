package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/liconlabs/corporate-legends/backend/internal/collection"
	"github.com/liconlabs/corporate-legends/backend/internal/models"
	"github.com/liconlabs/corporate-legends/backend/internal/services"
)

type AlbumHandler struct {
	albumService  *services.AlbumService
	rosterService services.RosterProvider
}

func NewAlbumHandler(album *services.AlbumService, rosterSvc services.RosterProvider) *AlbumHandler {
	return &AlbumHandler{
		albumService:  album,
		rosterService: rosterSvc,
	}
}

func (h *AlbumHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.albumService.Register(req.Name, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyRegistered) {
			c.JSON(http.StatusConflict, gin.H{"error": "already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, state)
}

func (h *AlbumHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.albumService.State())
}

func (h *AlbumHandler) GetStats(c *gin.Context) {
	stats, err := h.albumService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AlbumHandler) GetRoster(c *gin.Context) {
	cards, err := h.rosterService.Roster(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *AlbumHandler) OpenPack(c *gin.Context) {
	cards, source, unlocks, err := h.albumService.OpenPack(c.Request.Context(), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, collection.ErrNotRegistered):
			c.JSON(http.StatusForbidden, gin.H{"error": "register before opening packs"})
		case errors.Is(err, collection.ErrNotEligible):
			c.JSON(http.StatusConflict, gin.H{"error": "no pack available, come back later"})
		case errors.Is(err, collection.ErrEmptyRoster):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "roster is not loaded yet"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, models.OpenPackResponse{
		Cards:      cards,
		Source:     string(source),
		NewUnlocks: unlocks,
	})
}

// GetAchievements returns the fixed catalog annotated with unlock status.
func (h *AlbumHandler) GetAchievements(c *gin.Context) {
	state := h.albumService.State()
	unlocked := make(map[string]bool, len(state.UnlockedAchievements))
	for _, id := range state.UnlockedAchievements {
		unlocked[id] = true
	}

	type achievementStatus struct {
		models.Achievement
		Unlocked bool `json:"unlocked"`
	}

	catalog := collection.AchievementCatalog()
	out := make([]achievementStatus, 0, len(catalog))
	for _, ach := range catalog {
		out = append(out, achievementStatus{Achievement: ach, Unlocked: unlocked[ach.ID]})
	}
	c.JSON(http.StatusOK, out)
}
