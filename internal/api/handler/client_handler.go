package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
)

// ClientHandler handles HTTP requests for client CRUD.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// clientRequest is the body for both create and update. Tags and
// CustomFields are pointers so an update can distinguish "field absent"
// (leave the stored set alone) from "supplied empty" (clear the set).
type clientRequest struct {
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	Company      string             `json:"company"`
	Address      string             `json:"address"`
	Notes        string             `json:"notes"`
	Tags         *[]string          `json:"tags"`
	CustomFields *map[string]string `json:"customFields"`
}

// clientResponse is the detail shape: customFields is always present, even
// when empty.
type clientResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	Company      string            `json:"company"`
	Address      string            `json:"address"`
	Notes        string            `json:"notes"`
	UserID       int64             `json:"user_id"`
	CreatedAt    time.Time         `json:"created_at"`
	Tags         []string          `json:"tags"`
	CustomFields map[string]string `json:"customFields"`
}

func newClientResponse(client *domain.Client) clientResponse {
	resp := clientResponse{
		ID:           client.ID,
		Name:         client.Name,
		Email:        client.Email,
		Phone:        client.Phone,
		Company:      client.Company,
		Address:      client.Address,
		Notes:        client.Notes,
		UserID:       client.UserID,
		CreatedAt:    client.CreatedAt,
		Tags:         client.Tags,
		CustomFields: client.CustomFields,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if resp.CustomFields == nil {
		resp.CustomFields = map[string]string{}
	}
	return resp
}

func (req clientRequest) toInput() ports.ClientInput {
	return ports.ClientInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Company:      req.Company,
		Address:      req.Address,
		Notes:        req.Notes,
		Tags:         req.Tags,
		CustomFields: req.CustomFields,
	}
}

// clientIDParam parses the :id path segment. A non-numeric id cannot match
// any client, so it reports not-found rather than bad-request.
func clientIDParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}

// List returns the caller's clients with aggregated tags.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Client
// @Failure      500  {object}  map[string]string
// @Router       /api/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	clients, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error fetching clients."})
	}

	return c.JSON(http.StatusOK, clients)
}

// Get returns one client with its tags and custom-field map.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Client id"
// @Success      200  {object}  clientResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Client not found."})
	}

	client, err := h.service.Get(c.Request().Context(), userID, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Client not found."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error fetching client details."})
	}

	return c.JSON(http.StatusOK, newClientResponse(client))
}

// Create inserts a client with optional tags and custom fields, all in one
// transaction.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request payload."})
	}

	client, err := h.service.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error creating client."})
	}

	return c.JSON(http.StatusCreated, newClientResponse(client))
}

// Update replaces the client's scalar fields and, when supplied, its tag and
// custom-field sets.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Client id"
// @Param        body  body      clientRequest  true  "Client details"
// @Success      200   {object}  clientResponse
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Client not found."})
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request payload."})
	}

	client, err := h.service.Update(c.Request().Context(), userID, clientID, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Client not found."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error updating client."})
	}

	return c.JSON(http.StatusOK, newClientResponse(client))
}

// Delete removes a client and, via cascade, its tags, custom fields, tasks,
// and meetings.
//
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Client id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Client not found."})
	}

	if err := h.service.Delete(c.Request().Context(), userID, clientID); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Client not found."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error deleting client."})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Client deleted successfully."})
}
