package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
)

// MeetingHandler handles meeting listing and creation. Meetings have no
// update or delete endpoints.
type MeetingHandler struct {
	service ports.MeetingService
}

func NewMeetingHandler(service ports.MeetingService) *MeetingHandler {
	return &MeetingHandler{service: service}
}

type createMeetingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	ClientID    *int64 `json:"clientId"`
}

type meetingResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Location    string    `json:"location"`
	Client      clientRef `json:"client"`
}

func newMeetingResponse(meeting domain.Meeting) meetingResponse {
	return meetingResponse{
		ID:          meeting.ID,
		Title:       meeting.Title,
		Description: meeting.Description,
		Date:        meeting.Date,
		Type:        meeting.Type,
		Location:    meeting.Location,
		Client:      clientRef{ID: meeting.ClientID, Name: meeting.ClientName},
	}
}

func newMeetingResponses(meetings []domain.Meeting) []meetingResponse {
	resp := make([]meetingResponse, 0, len(meetings))
	for _, meeting := range meetings {
		resp = append(resp, newMeetingResponse(meeting))
	}
	return resp
}

// List returns the caller's meetings joined with their client name, ordered
// by meeting date.
//
// @Summary      List meetings
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   meetingResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/meetings [get]
func (h *MeetingHandler) List(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	meetings, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error fetching meetings."})
	}

	return c.JSON(http.StatusOK, newMeetingResponses(meetings))
}

// ListForClient returns the caller's meetings referencing one client.
//
// @Summary      List a client's meetings
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Client id"
// @Success      200  {array}   meetingResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/clients/{id}/meetings [get]
func (h *MeetingHandler) ListForClient(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Client not found."})
	}

	meetings, err := h.service.ListForClient(c.Request().Context(), userID, clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error fetching client meetings."})
	}

	return c.JSON(http.StatusOK, newMeetingResponses(meetings))
}

// Create inserts a meeting.
//
// @Summary      Create a meeting
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMeetingRequest  true  "Meeting details"
// @Success      201   {object}  meetingResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/meetings [post]
func (h *MeetingHandler) Create(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	var req createMeetingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request payload."})
	}

	date, ok := parseDate(req.Date)
	if !ok || date == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request payload."})
	}

	meeting, err := h.service.Create(c.Request().Context(), userID, ports.MeetingInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        *date,
		Type:        req.Type,
		Location:    req.Location,
		ClientID:    req.ClientID,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error creating meeting."})
	}

	return c.JSON(http.StatusCreated, newMeetingResponse(*meeting))
}
