package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mitsides06/TubeMap/logging"
	"github.com/mitsides06/TubeMap/models"
	"github.com/mitsides06/TubeMap/services"
)

const apiVersion = "v1"

type RouteHandler struct {
	routeService *services.RouteService
	logger       *slog.Logger
}

func NewRouteHandler(routeService *services.RouteService, logger *slog.Logger) *RouteHandler {
	if logger == nil {
		logger = logging.L()
	}
	return &RouteHandler{
		routeService: routeService,
		logger:       logger,
	}
}

func (h *RouteHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	api.GET("/stations", h.ListStations)
	api.GET("/stations/:id", h.GetStation)
	api.GET("/lines", h.ListLines)
	api.GET("/path", h.GetPath)
	api.POST("/path", h.PostPath)
}

func (h *RouteHandler) ListStations(c *gin.Context) {
	filter := services.StationFilter{Name: c.Query("name")}
	if raw := c.Query("zone"); raw != "" {
		zone, err := strconv.Atoi(raw)
		if err != nil || zone < 1 {
			h.badRequest(c, "zone must be a positive integer", fmt.Errorf("zone %q", raw))
			return
		}
		filter.Zone = zone
	}

	stations := h.routeService.Stations(filter)
	count := len(stations)
	h.ok(c, stations, &count, false)
}

func (h *RouteHandler) GetStation(c *gin.Context) {
	detail, err := h.routeService.Station(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, detail, nil, false)
}

func (h *RouteHandler) ListLines(c *gin.Context) {
	lines := h.routeService.Lines()
	count := len(lines)
	h.ok(c, lines, &count, false)
}

func (h *RouteHandler) GetPath(c *gin.Context) {
	var req models.PathRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, "from and to are required", err)
		return
	}
	h.path(c, req)
}

func (h *RouteHandler) PostPath(c *gin.Context) {
	var req models.PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "from and to are required", err)
		return
	}
	h.path(c, req)
}

func (h *RouteHandler) path(c *gin.Context, req models.PathRequest) {
	res, err := h.routeService.ShortestPath(c.Request.Context(), req.From, req.To)
	if err != nil {
		h.fail(c, err)
		return
	}
	count := len(res.Journey.Stations)
	h.ok(c, models.FromJourney(res.Journey), &count, res.Cached)
}

func (h *RouteHandler) ok(c *gin.Context, data interface{}, count *int, cached bool) {
	c.JSON(http.StatusOK, models.ApiResponse{
		Success:   true,
		Data:      data,
		Meta:      meta(c, count, cached),
		RequestID: RequestID(c),
	})
}

func (h *RouteHandler) badRequest(c *gin.Context, message string, err error) {
	h.logger.Info("request.invalid", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusBadRequest, models.ApiResponse{
		Error: &models.ApiError{
			Code:    models.CodeInvalidRequest,
			Message: message,
			Details: err.Error(),
		},
		Meta:      meta(c, nil, false),
		RequestID: RequestID(c),
	})
}

func (h *RouteHandler) fail(c *gin.Context, err error) {
	status, apiErr := http.StatusInternalServerError, &models.ApiError{Code: models.CodeInternal, Message: "internal error"}

	var qe *services.QueryError
	switch {
	case errors.As(err, &qe) && qe.Kind == services.KindStationNotFound:
		status = http.StatusNotFound
		apiErr = &models.ApiError{
			Code:    models.CodeStationNotFound,
			Message: fmt.Sprintf("unknown station %q", qe.Station),
		}
	case errors.As(err, &qe) && qe.Kind == services.KindNoRoute:
		status = http.StatusNotFound
		apiErr = &models.ApiError{
			Code:    models.CodeNoRoute,
			Message: "no route between the requested stations",
		}
	default:
		h.logger.Error("request.failed", "path", c.Request.URL.Path, "error", err)
	}

	c.JSON(status, models.ApiResponse{
		Error:     apiErr,
		Meta:      meta(c, nil, false),
		RequestID: RequestID(c),
	})
}

func meta(c *gin.Context, count *int, cached bool) *models.MetaData {
	elapsed := time.Duration(0)
	if started, ok := c.Get(startedKey); ok {
		elapsed = time.Since(started.(time.Time))
	}
	return &models.MetaData{
		ProcessTime: fmt.Sprintf("%.3f", float64(elapsed.Microseconds())/1000),
		ApiVersion:  apiVersion,
		ResultCount: count,
		Cached:      cached,
	}
}
