package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Use case ports of the server. The application handlers satisfy them.
type (
	CreateShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.CreateShipmentCommand) (tracking.Code, error)
	}
	UpdateShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateShipmentCommand) error
	}
	AdvanceRouteHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceRouteCommand) error
	}
	DeleteShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteShipmentCommand) error
	}
	GetShipmentHandler interface {
		Handle(ctx context.Context, query queries.GetShipmentQuery) (*queries.GetShipmentQueryResponse, error)
	}
	ListOwnerShipmentsHandler interface {
		Handle(ctx context.Context, query queries.ListOwnerShipmentsQuery) ([]queries.ShipmentSummary, error)
	}
	TrackShipmentHandler interface {
		Handle(ctx context.Context, query queries.TrackShipmentQuery) (*queries.TrackShipmentQueryResponse, error)
	}
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateShipment     CreateShipmentHandler
	UpdateShipment     UpdateShipmentHandler
	AdvanceRoute       AdvanceRouteHandler
	DeleteShipment     DeleteShipmentHandler
	GetShipment        GetShipmentHandler
	ListOwnerShipments ListOwnerShipmentsHandler
	TrackShipment      TrackShipmentHandler
}

// Server translates HTTP requests into commands and queries.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{handlers: handlers, logger: logger.With("component", "http")}
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(c echo.Context) error {
	owner := ownerFrom(c)

	var body NewShipment
	if err := c.Bind(&body); err != nil {
		return badRequest(c, errInvalidBody)
	}

	service, err := tracking.ParseServiceClass(body.Service)
	if err != nil {
		return respondError(c, s.logger, err)
	}
	details, err := body.details(shipment.MatchLanguage(c.Request().Header.Get(HeaderAcceptLanguage)))
	if err != nil {
		return respondError(c, s.logger, err)
	}
	points, err := pointsToDomain(body.Route)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	cmd, err := commands.NewCreateShipmentCommand(owner, service, details, points)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	code, err := s.handlers.CreateShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/v1/shipments/%s", code))
	return c.JSON(http.StatusCreated, CreatedShipment{Code: code.String(), FormattedCode: code.Formatted()})
}

// ListShipments handles GET /api/v1/shipments?limit=&offset=.
func (s *Server) ListShipments(c echo.Context) error {
	// Optional parameters bind into pointers; nil means absent.
	var limit, offset *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &limit); err != nil {
		return badRequest(c, fmt.Errorf("invalid limit: %w", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", c.QueryParams(), &offset); err != nil {
		return badRequest(c, fmt.Errorf("invalid offset: %w", err))
	}

	query, err := queries.NewListOwnerShipmentsQuery(ownerFrom(c), valueOrZero(limit), valueOrZero(offset))
	if err != nil {
		return respondError(c, s.logger, err)
	}

	rows, err := s.handlers.ListOwnerShipments.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, summariesFromQuery(rows))
}

// GetShipment handles GET /api/v1/shipments/:code.
func (s *Server) GetShipment(c echo.Context) error {
	code, err := tracking.ParseAny(c.Param("code"))
	if err != nil {
		return badRequest(c, err)
	}

	query, err := queries.NewGetShipmentQuery(ownerFrom(c), code)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	view, err := s.handlers.GetShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, shipmentFromQuery(view))
}

// UpdateShipment handles PUT /api/v1/shipments/:code.
func (s *Server) UpdateShipment(c echo.Context) error {
	code, err := tracking.ParseAny(c.Param("code"))
	if err != nil {
		return badRequest(c, err)
	}

	var body ShipmentUpdate
	if err = c.Bind(&body); err != nil {
		return badRequest(c, errInvalidBody)
	}

	var service tracking.ServiceClass
	if body.Service != "" {
		if service, err = tracking.ParseServiceClass(body.Service); err != nil {
			return respondError(c, s.logger, err)
		}
	}
	details, err := body.details(shipment.MatchLanguage(c.Request().Header.Get(HeaderAcceptLanguage)))
	if err != nil {
		return respondError(c, s.logger, err)
	}

	cmd, err := commands.NewUpdateShipmentCommand(ownerFrom(c), code, service, details, body.Version)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	if err = s.handlers.UpdateShipment.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, s.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AdvanceRoute handles PUT /api/v1/shipments/:code/route.
func (s *Server) AdvanceRoute(c echo.Context) error {
	code, err := tracking.ParseAny(c.Param("code"))
	if err != nil {
		return badRequest(c, err)
	}

	var body RouteUpdate
	if err = c.Bind(&body); err != nil {
		return badRequest(c, errInvalidBody)
	}
	if body.CurrentIndex == nil {
		return badRequest(c, fmt.Errorf("%w: currentIndex is required", errInvalidBody))
	}

	cmd, err := commands.NewAdvanceRouteCommand(ownerFrom(c), code, *body.CurrentIndex, body.Version)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	if err = s.handlers.AdvanceRoute.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, s.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteShipment handles DELETE /api/v1/shipments/:code.
func (s *Server) DeleteShipment(c echo.Context) error {
	code, err := tracking.ParseAny(c.Param("code"))
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewDeleteShipmentCommand(ownerFrom(c), code)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	if err = s.handlers.DeleteShipment.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, s.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TrackShipment handles GET /api/v1/track/:code. It is public and accepts
// the code as printed on the label.
func (s *Server) TrackShipment(c echo.Context) error {
	query, err := queries.NewTrackShipmentQuery(c.Param("code"))
	if err != nil {
		return badRequest(c, err)
	}

	view, err := s.handlers.TrackShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, view)
}

const ownerKey = "owner"

// RequireOwner reads the owner identity set by the authentication layer.
func RequireOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(HeaderUserID)
		if header == "" {
			return c.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: ErrOwnerIsRequired.Error(),
			})
		}
		owner, err := kernel.UUIDFromString(header)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: fmt.Sprintf("invalid %s header", HeaderUserID),
			})
		}
		c.Set(ownerKey, owner)
		return next(c)
	}
}

func ownerFrom(c echo.Context) kernel.UUID {
	owner, _ := c.Get(ownerKey).(kernel.UUID)
	return owner
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
