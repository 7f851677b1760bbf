package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/liconlabs/corporate-legends/backend/internal/models"
	"github.com/liconlabs/corporate-legends/backend/internal/services"
	"github.com/liconlabs/corporate-legends/backend/internal/store"
)

// AdminHandler manages card overrides and global branding assets. Overrides
// are persisted as blobs and merged into the roster by the roster service,
// so nothing downstream ever special-cases an edited card.
type AdminHandler struct {
	store        services.StateStore
	imageService *services.CardImageService
}

func NewAdminHandler(st services.StateStore, images *services.CardImageService) *AdminHandler {
	return &AdminHandler{
		store:        st,
		imageService: images,
	}
}

func (h *AdminHandler) UpsertCardOverride(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return
	}

	var req models.UpsertCardOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	override := req.CardOverride
	if req.ImageData != "" && h.imageService != nil {
		imageData, err := base64.StdEncoding.DecodeString(req.ImageData)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image data"})
			return
		}
		filename, err := h.imageService.SaveImage(imageData)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		imageURL := "/images/cards/" + filename
		override.ImageURL = &imageURL
	}

	overrides, err := h.loadOverrides()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	overrides[id] = override

	if err := h.saveOverrides(overrides); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist override, try a smaller image: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"card_id": id, "override": override})
}

func (h *AdminHandler) DeleteCardOverride(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return
	}

	overrides, err := h.loadOverrides()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if _, ok := overrides[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no override for card"})
		return
	}
	delete(overrides, id)

	if err := h.saveOverrides(overrides); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *AdminHandler) GetGlobalAssets(c *gin.Context) {
	raw, err := h.store.Get(store.KeyGlobalAssets)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, models.GlobalAssets{})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var assets models.GlobalAssets
	if err := json.Unmarshal([]byte(raw), &assets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored assets are corrupt"})
		return
	}
	c.JSON(http.StatusOK, assets)
}

func (h *AdminHandler) UpdateGlobalAssets(c *gin.Context) {
	var req models.UpdateGlobalAssetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assets := models.GlobalAssets{
		LogoURL:       req.LogoURL,
		CoverURL:      req.CoverURL,
		BackgroundURL: req.BackgroundURL,
	}

	fields := []struct {
		data string
		dest *string
	}{
		{req.LogoData, &assets.LogoURL},
		{req.CoverData, &assets.CoverURL},
		{req.BackgroundData, &assets.BackgroundURL},
	}
	for _, f := range fields {
		if f.data == "" || h.imageService == nil {
			continue
		}
		imageData, err := base64.StdEncoding.DecodeString(f.data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image data"})
			return
		}
		filename, err := h.imageService.SaveImage(imageData)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		*f.dest = "/images/cards/" + filename
	}

	raw, err := json.Marshal(assets)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.Set(store.KeyGlobalAssets, string(raw)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist assets, try a smaller image: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, assets)
}

func (h *AdminHandler) loadOverrides() (map[int]models.CardOverride, error) {
	raw, err := h.store.Get(store.KeyCardOverrides)
	if errors.Is(err, store.ErrNotFound) {
		return map[int]models.CardOverride{}, nil
	}
	if err != nil {
		return nil, err
	}

	var overrides map[int]models.CardOverride
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return nil, err
	}
	if overrides == nil {
		overrides = map[int]models.CardOverride{}
	}
	return overrides, nil
}

func (h *AdminHandler) saveOverrides(overrides map[int]models.CardOverride) error {
	raw, err := json.Marshal(overrides)
	if err != nil {
		return err
	}
	return h.store.Set(store.KeyCardOverrides, string(raw))
}
