package patient

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wardwatch/wardwatch/pkg/pagination"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.POST("/patients", h.CreatePatient)
	api.PUT("/patients/:id", h.UpdatePatient)
	api.DELETE("/patients/:id", h.DeletePatient)
	api.POST("/patients/refresh", h.RefreshPatients)

	api.GET("/dashboard", h.GetDashboard)
	api.GET("/dashboard/stats", h.GetStats)
	api.GET("/dashboard/charts", h.GetCharts)
}

func validateDraft(p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 0 {
		return fmt.Errorf("age must not be negative")
	}
	if p.Status == "" {
		p.Status = StatusAdmitted
	}
	if !validStatuses[p.Status] {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	if p.Gender != "" && !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	return nil
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)

	filter := ListFilter{
		Search:     c.QueryParam("search"),
		Status:     Status(c.QueryParam("status")),
		Department: c.QueryParam("department"),
	}
	patients := h.store.List(filter)

	total := len(patients)
	start := pg.Offset
	if start > total {
		start = total
	}
	end := start + pg.Limit
	if end > total {
		end = total
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(patients[start:end], total, pg.Limit, pg.Offset))
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, ok := h.store.Get(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var draft Patient
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validateDraft(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created := h.store.Create(draft)
	return c.JSON(http.StatusCreated, created)
}

// UpdatePatient replaces the record whose id matches the path. An unknown
// id is a no-op on the collection and still answers 200, preserving the
// silent-ignore contract of the dashboard.
func (h *Handler) UpdatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = c.Param("id")
	if err := validateDraft(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.store.Update(p)
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	h.store.Delete(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RefreshPatients(c echo.Context) error {
	if err := h.store.Refresh(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, h.store.LastError())
	}
	return c.JSON(http.StatusOK, map[string]int{
		"total": h.store.Stats().TotalPatients,
	})
}

// GetDashboard bundles everything the dashboard UI renders from.
func (h *Handler) GetDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"stats":   h.store.Stats(),
		"charts":  h.store.Charts(),
		"loading": h.store.Loading(),
		"error":   h.store.LastError(),
	})
}

func (h *Handler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Stats())
}

func (h *Handler) GetCharts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Charts())
}
