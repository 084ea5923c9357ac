package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loomra/crm-api/internal/core/ports"
)

// TransferHandler handles CSV import and export of clients.
type TransferHandler struct {
	service ports.TransferService
}

func NewTransferHandler(service ports.TransferService) *TransferHandler {
	return &TransferHandler{service: service}
}

type importResponse struct {
	Message       string `json:"message"`
	ImportedCount int    `json:"importedCount"`
}

// Import ingests a multipart CSV upload. The whole file commits or rolls
// back as one unit; rows whose email already exists are skipped silently.
//
// @Summary      Import clients from CSV
// @Tags         clients
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "CSV file with a header row"
// @Success      200   {object}  importResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/clients/import [post]
func (h *TransferHandler) Import(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No file uploaded."})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error importing clients."})
	}
	defer file.Close()

	imported, err := h.service.Import(c.Request().Context(), userID, file)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error importing clients."})
	}

	return c.JSON(http.StatusOK, importResponse{
		Message:       fmt.Sprintf("Successfully imported %d clients.", imported),
		ImportedCount: imported,
	})
}

// Export streams the caller's clients as a CSV attachment.
//
// @Summary      Export clients to CSV
// @Tags         clients
// @Produce      text/csv
// @Security     BearerAuth
// @Param        includeNotes            query  string  false  "Include the notes column when 'true'"
// @Param        includeCustomFields     query  string  false  "Include custom_* columns when 'true'"
// @Param        includeInactiveClients  query  string  false  "Exclude clients tagged 'inactive' when 'false'"
// @Success      200  {file}    file
// @Failure      500  {object}  map[string]string
// @Router       /api/clients/export [get]
func (h *TransferHandler) Export(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	opts := ports.ExportOptions{
		IncludeNotes:        c.QueryParam("includeNotes") == "true",
		IncludeCustomFields: c.QueryParam("includeCustomFields") == "true",
		ExcludeInactive:     c.QueryParam("includeInactiveClients") == "false",
	}

	data, err := h.service.Export(c.Request().Context(), userID, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error exporting clients."})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="loomra_clients.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}
