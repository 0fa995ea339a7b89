package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/analysis"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/auth"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/pipeline"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/service"
)

type handler struct {
	svcs *service.Services
	auth *auth.Authenticator
	log  zerolog.Logger
}

func Register(app *fiber.App, svcs *service.Services, authn *auth.Authenticator, log zerolog.Logger) {
	h := &handler{svcs: svcs, auth: authn, log: log.With().Str("component", "http").Logger()}

	app.Use(Metrics())
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/api/auth/login", h.login)
	app.Post("/api/auth/logout", h.logout)

	g := app.Group("/api", authn.Middleware())

	g.Get("/devices", h.listDevices)
	g.Get("/devices/:id", h.getDevice)
	g.Get("/devices/:id/alerts", h.deviceAlerts)
	g.Get("/devices/:id/alerts/export.pdf", h.deviceAlertsPDF)
	g.Get("/devices/:id/maintenance", h.maintenance)

	g.Get("/alerts", h.listAlerts)
	g.Get("/alerts/export.csv", h.alertsCSV)
	g.Get("/alerts/export.pdf", h.alertsPDF)
	g.Post("/alerts/:id/resolve", h.resolveAlert)

	g.Get("/analysis/:type", h.analysis)
	g.Get("/analysis/:type/export.csv", h.analysisCSV)

	g.Get("/insights", h.insights)
	g.Post("/insights/live", h.setLive)
	g.Get("/energy/live", h.energy)

	g.Get("/reports", h.reports)
}

func alertQuery(c *fiber.Ctx) (pipeline.Query, error) {
	return pipeline.ParseQuery(c.Query("search"), c.Query("severity"), c.Query("status"), c.Query("sort"), c.Query("order"))
}

func deviceID(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, fmt.Errorf("device id %q: %w", c.Params("id"), domain.ErrInvalid)
	}
	return id, nil
}

func analysisRequest(c *fiber.Ctx) (analysis.Kind, analysis.Filter, error) {
	kind, err := analysis.ParseKind(c.Params("type"))
	if err != nil {
		return "", analysis.Filter{}, err
	}
	f, err := analysis.ParseFilter(c.Query("start"), c.Query("end"), c.Query("efficiency_min"), c.Query("device"))
	return kind, f, err
}

// download sends f as an attachment, or archives it and returns the link when
// archive=true.
func (h *handler) download(c *fiber.Ctx, f service.File) error {
	if c.QueryBool("archive") {
		url, err := h.svcs.Exports.Archive(c.UserContext(), f)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"file": f.Name, "url": url})
	}
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.Name))
	return c.Send(f.Data)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *handler) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("login body: %w", domain.ErrInvalid)
	}
	s, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{Name: auth.CookieToken, Value: s.Token, HTTPOnly: true, SameSite: fiber.CookieSameSiteLaxMode})
	c.Cookie(&fiber.Cookie{Name: auth.CookieRole, Value: s.Role, SameSite: fiber.CookieSameSiteLaxMode})
	return c.JSON(s)
}

func (h *handler) logout(c *fiber.Ctx) error {
	token, _ := auth.Credentials(c)
	if err := h.auth.Logout(c.UserContext(), token); err != nil {
		return err
	}
	c.ClearCookie(auth.CookieToken, auth.CookieRole)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handler) listDevices(c *fiber.Ctx) error {
	q, err := pipeline.ParseDeviceQuery(c.Query("search"), c.Query("status"), c.Query("type"))
	if err != nil {
		return err
	}
	return c.JSON(h.svcs.Devices.List(q))
}

func (h *handler) getDevice(c *fiber.Ctx) error {
	id, err := deviceID(c)
	if err != nil {
		return err
	}
	d, err := h.svcs.Devices.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(d)
}

func (h *handler) deviceAlerts(c *fiber.Ctx) error {
	id, err := deviceID(c)
	if err != nil {
		return err
	}
	q, err := alertQuery(c)
	if err != nil {
		return err
	}
	d, res, err := h.svcs.Alerts.ForDevice(id, q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"device": d.Name, "alerts": res.Alerts, "summary": res.Summary})
}

func (h *handler) deviceAlertsPDF(c *fiber.Ctx) error {
	id, err := deviceID(c)
	if err != nil {
		return err
	}
	q, err := alertQuery(c)
	if err != nil {
		return err
	}
	f, err := h.svcs.Exports.DevicePDF(id, q)
	if err != nil {
		return err
	}
	return h.download(c, f)
}

func (h *handler) maintenance(c *fiber.Ctx) error {
	id, err := deviceID(c)
	if err != nil {
		return err
	}
	p, err := h.svcs.Maintenance.Forecast(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *handler) listAlerts(c *fiber.Ctx) error {
	q, err := alertQuery(c)
	if err != nil {
		return err
	}
	return c.JSON(h.svcs.Alerts.List(q))
}

func (h *handler) alertsCSV(c *fiber.Ctx) error {
	q, err := alertQuery(c)
	if err != nil {
		return err
	}
	f, err := h.svcs.Exports.AlertsCSV(q)
	if err != nil {
		return err
	}
	return h.download(c, f)
}

func (h *handler) alertsPDF(c *fiber.Ctx) error {
	q, err := alertQuery(c)
	if err != nil {
		return err
	}
	f, err := h.svcs.Exports.AlertsPDF(q)
	if err != nil {
		return err
	}
	return h.download(c, f)
}

func (h *handler) resolveAlert(c *fiber.Ctx) error {
	a, err := h.svcs.Alerts.Resolve(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(a)
}

func (h *handler) analysis(c *fiber.Ctx) error {
	kind, f, err := analysisRequest(c)
	if err != nil {
		return err
	}
	return c.JSON(h.svcs.Analysis.Report(kind, f))
}

func (h *handler) analysisCSV(c *fiber.Ctx) error {
	kind, f, err := analysisRequest(c)
	if err != nil {
		return err
	}
	file, err := h.svcs.Exports.AnalysisCSV(kind, f)
	if err != nil {
		return err
	}
	return h.download(c, file)
}

func (h *handler) insights(c *fiber.Ctx) error {
	return c.JSON(h.svcs.Live.Insights())
}

type liveRequest struct {
	Enabled *bool `json:"enabled"`
}

func (h *handler) setLive(c *fiber.Ctx) error {
	var req liveRequest
	if err := c.BodyParser(&req); err != nil || req.Enabled == nil {
		return fmt.Errorf(`body must be {"enabled": bool}: %w`, domain.ErrInvalid)
	}
	h.log.Info().Bool("enabled", *req.Enabled).Msg("live insights toggled")
	return c.JSON(h.svcs.Live.SetLive(*req.Enabled))
}

func (h *handler) energy(c *fiber.Ctx) error {
	return c.JSON(h.svcs.Live.Energy())
}

func (h *handler) reports(c *fiber.Ctx) error {
	names, err := h.svcs.Exports.Archived(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"reports": names})
}
