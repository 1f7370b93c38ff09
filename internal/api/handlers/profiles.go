package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
	"github.com/stitts-dev/weather-caddie/internal/profile"
	"github.com/stitts-dev/weather-caddie/internal/utils"
)

// ProfileHandler reads and edits player bags.
type ProfileHandler struct {
	profiles profile.Source
	aliases  profile.AliasTable
}

func NewProfileHandler(profiles profile.Source) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, aliases: profile.DefaultAliases()}
}

// GetProfile handles GET /api/v1/profiles/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.profiles.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendCaddieError(c, err)
		return
	}
	utils.SendSuccess(c, p)
}

// AddClub handles POST /api/v1/profiles/:id/clubs. A club with the same
// canonical name replaces the existing entry; a missing profile is created
// but an unreadable one is left alone.
func (h *ProfileHandler) AddClub(c *gin.Context) {
	var club caddie.ClubProfile
	if err := c.ShouldBindJSON(&club); err != nil {
		utils.SendBadRequest(c, "invalid club: "+err.Error())
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()
	p, err := h.profiles.Load(ctx, id)
	switch {
	case errors.Is(err, profile.ErrInvalidID):
		utils.SendBadRequest(c, err.Error())
		return
	case errors.Is(err, profile.ErrNotFound):
		p = &profile.Profile{Owner: id}
	case err != nil:
		utils.SendCaddieError(c, err)
		return
	}

	if err := p.AddClub(h.aliases, club); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	if err := h.profiles.Save(ctx, id, p); err != nil {
		utils.SendCaddieError(c, err)
		return
	}
	utils.SendCreated(c, p)
}
