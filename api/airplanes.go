package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Domenick1991/airplanes/internal/domain"
	"github.com/Domenick1991/airplanes/internal/service/airplanes"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AirplaneHandler struct {
	service airplanes.AirplaneUseCase
	log     logrus.FieldLogger
}

type createAirplaneRequest struct {
	ID         int64 `json:"id"`
	Passengers int64 `json:"passengers"`
}

type airplaneResponse struct {
	ID                            int64  `json:"id"`
	Passengers                    int64  `json:"passengers"`
	TotalFuelConsumptionPerMinute string `json:"total_fuel_consumption_per_minute"`
	MaxFlightMinutes              string `json:"max_flight_minutes"`
}

func toAirplaneResponse(a domain.Airplane) airplaneResponse {
	return airplaneResponse{
		ID:                            a.ID,
		Passengers:                    a.Passengers,
		TotalFuelConsumptionPerMinute: domain.FormatFuelConsumption(a.TotalFuelConsumption()),
		MaxFlightMinutes:              domain.FormatFlightMinutes(a.MaxFlightMinutes()),
	}
}

func NewAirplaneHandler(service airplanes.AirplaneUseCase, log logrus.FieldLogger) *AirplaneHandler {
	return &AirplaneHandler{service: service, log: log}
}

func (h *AirplaneHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
}

func (h *AirplaneHandler) create(c *gin.Context) {
	var req createAirplaneRequest
	// An empty body behaves like {} so the missing id is reported as a field error.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && (typeErr.Field == domain.FieldID || typeErr.Field == domain.FieldPassengers) {
			c.JSON(http.StatusBadRequest, gin.H{typeErr.Field: domain.MsgInvalidInteger})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
		return
	}

	airplane, err := h.service.Create(c.Request.Context(), airplanes.CreateAirplaneInput{
		ID:         req.ID,
		Passengers: req.Passengers,
	})
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, verr.Fields)
		case errors.Is(err, domain.ErrLimitReached):
			c.JSON(http.StatusBadRequest, gin.H{"detail": domain.LimitMessage(h.service.MaxAirplanes())})
		default:
			h.log.WithError(err).Error("unexpected error occurred while creating airplane")
			c.JSON(http.StatusInternalServerError, gin.H{"detail": domain.MsgUnexpected})
		}
		return
	}

	c.JSON(http.StatusCreated, toAirplaneResponse(*airplane))
}

func (h *AirplaneHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("unexpected error occurred while fetching airplane list")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": domain.MsgUnexpected})
		return
	}
	if len(list) == 0 {
		h.log.Info("no airplanes found in the database")
		c.JSON(http.StatusNotFound, gin.H{"message": domain.MsgNoAirplanes})
		return
	}

	resp := make([]airplaneResponse, 0, len(list))
	for _, a := range list {
		resp = append(resp, toAirplaneResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}
