package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ahashem12/LaunchpadX-sub001/internal/agreement"
	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
	"github.com/ahashem12/LaunchpadX-sub001/internal/metrics"
	"github.com/ahashem12/LaunchpadX-sub001/internal/present/rest/middleware"
	"github.com/ahashem12/LaunchpadX-sub001/internal/present/rest/presenter"
	"github.com/ahashem12/LaunchpadX-sub001/internal/usecase"
)

// RealtimeSource streams application events for a changing set of roles.
type RealtimeSource interface {
	Realtime(ctx context.Context, input <-chan []string, output chan<- domain.ApplicationEvent)
}

type Handler struct {
	config    domain.Config
	projects  *usecase.ProjectUsecase
	members   *usecase.MemberUsecase
	roles     *usecase.RoleUsecase
	steps     *usecase.NextStepUsecase
	profiles  *usecase.ProfileUsecase
	ecosystem *usecase.EcosystemUsecase
	signal    RealtimeSource
}

func NewHandler(
	config domain.Config,
	projects *usecase.ProjectUsecase,
	members *usecase.MemberUsecase,
	roles *usecase.RoleUsecase,
	steps *usecase.NextStepUsecase,
	profiles *usecase.ProfileUsecase,
	ecosystem *usecase.EcosystemUsecase,
	signal RealtimeSource,
) *Handler {
	return &Handler{
		config:    config,
		projects:  projects,
		members:   members,
		roles:     roles,
		steps:     steps,
		profiles:  profiles,
		ecosystem: ecosystem,
		signal:    signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.GET("/healthz", h.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/realtime", h.handleRealtime, requireAuth)

	api := e.Group("/api")

	api.GET("/projects", h.handleListProjects)
	api.POST("/projects", h.handleCreateProject, requireAuth)
	api.GET("/projects/:id", h.handleGetProject)
	api.PUT("/projects/:id", h.handleUpdateProject, requireAuth)
	api.DELETE("/projects/:id", h.handleDeleteProject, requireAuth)

	api.GET("/projects/:id/members", h.handleListMembers)
	api.POST("/projects/:id/members", h.handleAddMember, requireAuth)
	api.DELETE("/projects/:id/members/:userId", h.handleRemoveMember, requireAuth)

	api.GET("/projects/:id/roles", h.handleListRoles)
	api.POST("/projects/:id/roles", h.handleCreateRole, requireAuth)
	api.GET("/roles/:id", h.handleGetRole)
	api.GET("/roles/:id/application", h.handleGetApplication, requireAuth)
	api.POST("/roles/:id/apply", h.handleApply, requireAuth)
	api.GET("/roles/:id/applications", h.handleListApplications, requireAuth)
	api.PUT("/applications/:id", h.handleReviewApplication, requireAuth)

	api.GET("/projects/:id/next-steps", h.handleListNextSteps)
	api.POST("/projects/:id/next-steps", h.handleCreateNextStep, requireAuth)
	api.PUT("/next-steps/:id", h.handleUpdateNextStep, requireAuth)
	api.DELETE("/next-steps/:id", h.handleDeleteNextStep, requireAuth)

	api.GET("/profile", h.handleGetProfile, requireAuth)
	api.PUT("/profile", h.handleSaveProfile, requireAuth)

	api.GET("/ecosystem", h.handleListEcosystem)
	api.POST("/agreements/validate", h.handleValidateAgreement)
}

func (h *Handler) handleHealth(c echo.Context) error {
	return presenter.OK(c, echo.Map{
		"status":   "ok",
		"site":     h.config.SiteName,
		"mockData": h.config.MockData,
	})
}

func (h *Handler) handleListProjects(c echo.Context) error {
	ctx := c.Request().Context()

	filter := domain.ProjectFilter{
		OwnerID:  c.QueryParam("owner"),
		Category: c.QueryParam("category"),
		Query:    c.QueryParam("q"),
	}
	if filter.OwnerID == "me" {
		filter.OwnerID = middleware.RequesterID(ctx)
		if filter.OwnerID == "" {
			return presenter.Unauthorized(c)
		}
	}

	projects, err := h.projects.List(ctx, filter)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, projects)
}

func (h *Handler) handleCreateProject(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.ProjectInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	project, err := h.projects.Create(ctx, middleware.RequesterID(ctx), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, project)
}

func (h *Handler) handleGetProject(c echo.Context) error {
	project, err := h.projects.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, project)
}

func (h *Handler) handleUpdateProject(c echo.Context) error {
	ctx := c.Request().Context()

	var patch usecase.ProjectPatch
	if err := c.Bind(&patch); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	project, err := h.projects.Update(ctx, middleware.RequesterID(ctx), c.Param("id"), patch)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, project)
}

func (h *Handler) handleDeleteProject(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.projects.Delete(ctx, middleware.RequesterID(ctx), c.Param("id")); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleListMembers(c echo.Context) error {
	members, err := h.members.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, members)
}

type addMemberRequest struct {
	UserID string            `json:"userId"`
	Role   domain.MemberRole `json:"role"`
}

func (h *Handler) handleAddMember(c echo.Context) error {
	ctx := c.Request().Context()

	var req addMemberRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	member, err := h.members.Add(ctx, middleware.RequesterID(ctx), c.Param("id"), req.UserID, req.Role)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, member)
}

func (h *Handler) handleRemoveMember(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.members.Remove(ctx, middleware.RequesterID(ctx), c.Param("id"), c.Param("userId"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleListRoles(c echo.Context) error {
	roles, err := h.roles.ListByProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, roles)
}

func (h *Handler) handleCreateRole(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.RoleInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	role, err := h.roles.Create(ctx, middleware.RequesterID(ctx), c.Param("id"), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, role)
}

func (h *Handler) handleGetRole(c echo.Context) error {
	role, err := h.roles.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, role)
}

// ApplicationResponse wraps the requester's application, which is null when
// they have not applied.
type ApplicationResponse struct {
	Application *domain.RoleApplication `json:"application"`
}

func (h *Handler) handleGetApplication(c echo.Context) error {
	ctx := c.Request().Context()

	app, err := h.roles.GetApplication(ctx, middleware.RequesterID(ctx), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, ApplicationResponse{Application: app})
}

type applyRequest struct {
	Message string `json:"message"`
}

func (h *Handler) handleApply(c echo.Context) error {
	ctx := c.Request().Context()

	var req applyRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return presenter.BadRequestMessage(c, "invalid request body")
		}
	}

	app, err := h.roles.Apply(ctx, middleware.RequesterID(ctx), c.Param("id"), req.Message)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, app)
}

func (h *Handler) handleListApplications(c echo.Context) error {
	ctx := c.Request().Context()

	apps, err := h.roles.ListApplications(ctx, middleware.RequesterID(ctx), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, apps)
}

type reviewRequest struct {
	Status domain.ApplicationStatus `json:"status"`
}

func (h *Handler) handleReviewApplication(c echo.Context) error {
	ctx := c.Request().Context()

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	app, err := h.roles.Review(ctx, middleware.RequesterID(ctx), c.Param("id"), req.Status)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, app)
}

func (h *Handler) handleListNextSteps(c echo.Context) error {
	steps, err := h.steps.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, steps)
}

func (h *Handler) handleCreateNextStep(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.NextStepInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	step, err := h.steps.Create(ctx, middleware.RequesterID(ctx), c.Param("id"), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, step)
}

func (h *Handler) handleUpdateNextStep(c echo.Context) error {
	ctx := c.Request().Context()

	var patch usecase.NextStepPatch
	if err := c.Bind(&patch); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	step, err := h.steps.Update(ctx, middleware.RequesterID(ctx), c.Param("id"), patch)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, step)
}

func (h *Handler) handleDeleteNextStep(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.steps.Delete(ctx, middleware.RequesterID(ctx), c.Param("id")); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleGetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	profile, err := h.profiles.Get(ctx, middleware.RequesterID(ctx))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, profile)
}

func (h *Handler) handleSaveProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.ProfileInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	profile, err := h.profiles.Save(ctx, middleware.RequesterID(ctx), middleware.RequesterEmail(ctx), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, profile)
}

func (h *Handler) handleListEcosystem(c echo.Context) error {
	kind := domain.EcosystemKind(strings.ToLower(c.QueryParam("kind")))

	entries, err := h.ecosystem.List(c.Request().Context(), kind, c.QueryParam("q"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, entries)
}

// ValidationResponse is the result of validating an agreement draft.
type ValidationResponse struct {
	Valid  bool             `json:"valid"`
	Errors agreement.Errors `json:"errors"`
}

func (h *Handler) handleValidateAgreement(c echo.Context) error {
	if !h.config.FeatureEnabled(domain.FeatureAgreements) {
		return presenter.FeatureDisabled(c, domain.FeatureAgreements)
	}

	var data agreement.Data
	if err := c.Bind(&data); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	errs, err := agreement.ValidateStep(c.QueryParam("step"), data)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if errs == nil {
		errs = agreement.Errors{}
	}
	return presenter.OK(c, ValidationResponse{Valid: errs.Valid(), Errors: errs})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Request is a message sent by realtime clients.
type Request struct {
	Type  string   `json:"type"`
	Roles []string `json:"roles"`
}

// handleRealtime streams status changes of the requester's own applications
// for the roles named in the latest listen request.
func (h *Handler) handleRealtime(c echo.Context) error {
	requesterID := middleware.RequesterID(c.Request().Context())

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		zap.L().Error("failed to upgrade websocket", zap.Error(err), zap.String("module", "socket"))
		return nil
	}
	defer ws.Close()

	metrics.RealtimeConnections.Inc()
	defer metrics.RealtimeConnections.Dec()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	input := make(chan []string)
	output := make(chan domain.ApplicationEvent)
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.signal.Realtime(ctx, input, output)
	}()
	defer func() {
		cancel()
		<-done
	}()

	quit := make(chan struct{})

	go func() {
		defer close(quit)
		for {
			var req Request
			err := ws.ReadJSON(&req)
			if err != nil {
				var closeErr *websocket.CloseError
				if errors.As(err, &closeErr) {
					if closeErr.Code != websocket.CloseNormalClosure && closeErr.Code != websocket.CloseGoingAway {
						zap.L().Debug("websocket closed", zap.Error(err), zap.String("module", "socket"))
					}
				} else if ctx.Err() == nil {
					zap.L().Warn("error reading message", zap.Error(err), zap.String("module", "socket"))
				}
				return
			}

			switch req.Type {
			case "listen":
				select {
				case input <- req.Roles:
				case <-ctx.Done():
					return
				}
				zap.L().Debug("socket subscribe",
					zap.Strings("roles", req.Roles),
					zap.String("module", "socket"),
				)
			case "h": // heartbeat
			default:
				zap.L().Info("unknown request type", zap.String("type", req.Type), zap.String("module", "socket"))
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			if event.Application.ApplicantID != requesterID {
				continue
			}
			if err := ws.WriteJSON(event); err != nil {
				zap.L().Warn("error writing message", zap.Error(err), zap.String("module", "socket"))
				return nil
			}
		}
	}
}
