package controllers

import (
	"net/http"
	"strings"

	"evol-jewels-io/stylist/pkg/models"
	"evol-jewels-io/stylist/pkg/services"
	"evol-jewels-io/stylist/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type StylistController struct {
	stylistService services.StylistService
}

func InitStylistController(stylistService services.StylistService) *StylistController {
	return &StylistController{stylistService: stylistService}
}

// SubmitSurvey scores a survey and records a passport.
func (sc *StylistController) SubmitSurvey() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		var survey models.SurveyInput
		if !BindJSONAndValidate(c, &survey) {
			return
		}

		resp, err := sc.stylistService.SubmitSurvey(ctx, survey)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ClassifyVibe returns only the vibe for a survey.
func (sc *StylistController) ClassifyVibe() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		var survey models.SurveyInput
		if !BindJSONAndValidate(c, &survey) {
			return
		}

		c.JSON(http.StatusOK, sc.stylistService.ClassifyVibe(ctx, survey))
	}
}

// GetPassport returns a recorded session by id.
func (sc *StylistController) GetPassport() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		sessionID := strings.TrimSpace(c.Param("session_id"))
		if sessionID == "" {
			util.HandleError(c, http.StatusBadRequest, errors.New("session id is required"))
			return
		}

		passport, err := sc.stylistService.GetPassport(ctx, sessionID)
		if err != nil {
			if errors.Is(err, services.ErrSessionNotFound) {
				util.HandleError(c, http.StatusNotFound, errors.New("Passport not found"))
				return
			}
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		c.JSON(http.StatusOK, passport)
	}
}
