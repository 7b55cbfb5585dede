package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jobsight/backend/internal/infrastructure/auth"
	"github.com/jobsight/backend/internal/interfaces/http/handler"
	"github.com/jobsight/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler wired into the router
type Handlers struct {
	Auth          *handler.AuthHandler
	Business      *handler.BusinessHandler
	Client        *handler.ClientHandler
	Project       *handler.ProjectHandler
	Milestone     *handler.MilestoneHandler
	Issue         *handler.IssueHandler
	Crew          *handler.CrewHandler
	Equipment     *handler.EquipmentHandler
	DailyLog      *handler.DailyLogHandler
	Media         *handler.MediaHandler
	Invoice       *handler.InvoiceHandler
	Subscription  *handler.SubscriptionHandler
	StripeWebhook *handler.StripeWebhookHandler
	Notification  *handler.NotificationHandler
}

// Router registers the API routes and their middleware
type Router struct {
	engine     *gin.Engine
	apiVersion string
	jwtService *auth.JWTService
	resolver   middleware.BusinessResolver
	logger     *zap.Logger
	handlers   Handlers
}

// Option is a functional option for Router configuration
type Option func(*Router)

// WithAPIVersion sets the API version prefix (default "v1")
func WithAPIVersion(version string) Option {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// New creates a Router
func New(
	engine *gin.Engine,
	jwtService *auth.JWTService,
	resolver middleware.BusinessResolver,
	handlers Handlers,
	logger *zap.Logger,
	opts ...Option,
) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		jwtService: jwtService,
		resolver:   resolver,
		logger:     logger,
		handlers:   handlers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Setup registers all routes. Three tiers of access:
// public (register, login, webhooks), authenticated (account and business
// onboarding) and business-scoped (everything else, behind RequireBusiness).
func (r *Router) Setup() {
	base := "/api/" + r.apiVersion
	api := r.engine.Group(base)

	api.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService: r.jwtService,
		SkipPaths: []string{
			base + "/auth/register",
			base + "/auth/login",
		},
		SkipPathPrefixes: []string{
			base + "/webhooks",
		},
		Logger: r.logger,
	}))

	r.registerPublic(api)
	r.registerAccount(api)

	scoped := api.Group("", middleware.RequireBusiness(r.resolver))
	r.registerDirectory(scoped)
	r.registerProjects(scoped)
	r.registerCrews(scoped)
	r.registerEquipment(scoped)
	r.registerDailyLogs(scoped)
	r.registerMedia(scoped)
	r.registerBilling(scoped)
	r.registerNotifications(scoped)
}

func (r *Router) registerPublic(api *gin.RouterGroup) {
	h := r.handlers
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/webhooks/stripe", h.StripeWebhook.Handle)
}

// registerAccount wires routes that need authentication but not a business:
// the profile endpoint and business onboarding itself.
func (r *Router) registerAccount(api *gin.RouterGroup) {
	h := r.handlers
	api.GET("/auth/me", h.Auth.Me)

	api.POST("/business", h.Business.Create)
	api.GET("/business", h.Business.Get)
	api.PUT("/business", h.Business.Update)
	api.DELETE("/business", h.Business.Cancel)
}

func (r *Router) registerDirectory(g *gin.RouterGroup) {
	h := r.handlers
	g.POST("/clients", h.Client.Create)
	g.GET("/clients", h.Client.List)
	g.GET("/clients/search", h.Client.Search)
	g.GET("/clients/:id", h.Client.GetByID)
	g.PUT("/clients/:id", h.Client.Update)
	g.POST("/clients/:id/archive", h.Client.Archive)
	g.DELETE("/clients/:id", h.Client.Delete)

	g.POST("/clients/:id/contacts", h.Client.CreateContact)
	g.GET("/clients/:id/contacts", h.Client.ListContacts)
	g.PUT("/clients/:id/contacts/:contact_id", h.Client.UpdateContact)
	g.DELETE("/clients/:id/contacts/:contact_id", h.Client.DeleteContact)

	g.POST("/clients/:id/interactions", h.Client.LogInteraction)
	g.GET("/clients/:id/interactions", h.Client.ListInteractions)
}

func (r *Router) registerProjects(g *gin.RouterGroup) {
	h := r.handlers
	g.POST("/projects", h.Project.Create)
	g.GET("/projects", h.Project.List)
	g.GET("/projects/:id", h.Project.GetByID)
	g.PUT("/projects/:id", h.Project.Update)
	g.POST("/projects/:id/transition", h.Project.Transition)
	g.DELETE("/projects/:id", h.Project.Delete)

	g.POST("/projects/:id/milestones", h.Milestone.Create)
	g.GET("/projects/:id/milestones", h.Milestone.ListByProject)
	g.PUT("/projects/:id/milestones/:milestone_id", h.Milestone.Update)
	g.POST("/projects/:id/milestones/:milestone_id/complete", h.Milestone.Complete)
	g.DELETE("/projects/:id/milestones/:milestone_id", h.Milestone.Delete)

	g.POST("/projects/:id/issues", h.Issue.Create)
	g.GET("/projects/:id/issues", h.Issue.ListByProject)
	g.GET("/issues/open", h.Issue.ListOpen)
	g.GET("/issues/:issue_id", h.Issue.GetByID)
	g.PUT("/issues/:issue_id", h.Issue.Update)
	g.POST("/issues/:issue_id/resolve", h.Issue.Resolve)
	g.POST("/issues/:issue_id/close", h.Issue.Close)
	g.DELETE("/issues/:issue_id", h.Issue.Delete)
}

func (r *Router) registerCrews(g *gin.RouterGroup) {
	h := r.handlers
	g.POST("/crews", h.Crew.Create)
	g.GET("/crews", h.Crew.List)
	g.GET("/crews/:id", h.Crew.GetByID)
	g.PUT("/crews/:id", h.Crew.Update)
	g.POST("/crews/:id/deactivate", h.Crew.Deactivate)
	g.DELETE("/crews/:id", h.Crew.Delete)

	g.POST("/crews/:id/members", h.Crew.AddMember)
	g.GET("/crews/:id/members", h.Crew.ListMembers)
	g.PUT("/crews/:id/members/:member_id", h.Crew.UpdateMember)
	g.DELETE("/crews/:id/members/:member_id", h.Crew.RemoveMember)

	g.POST("/projects/:id/crews", h.Crew.AssignToProject)
	g.GET("/projects/:id/crews", h.Crew.ListProjectCrews)
	g.DELETE("/crew-assignments/:assignment_id", h.Crew.UnassignFromProject)
}

func (r *Router) registerEquipment(g *gin.RouterGroup) {
	h := r.handlers
	g.POST("/equipment", h.Equipment.Create)
	g.GET("/equipment", h.Equipment.List)
	g.GET("/equipment/assignments", h.Equipment.ListOpenAssignments)
	g.GET("/equipment/:id", h.Equipment.GetByID)
	g.PUT("/equipment/:id", h.Equipment.Update)
	g.POST("/equipment/:id/transition", h.Equipment.Transition)
	g.DELETE("/equipment/:id", h.Equipment.Delete)

	g.POST("/equipment/:id/specifications", h.Equipment.AddSpecification)
	g.GET("/equipment/:id/specifications", h.Equipment.ListSpecifications)
	g.PUT("/equipment/specifications/:spec_id", h.Equipment.UpdateSpecification)
	g.DELETE("/equipment/specifications/:spec_id", h.Equipment.RemoveSpecification)

	g.POST("/equipment/:id/assignments", h.Equipment.Assign)
	g.GET("/equipment/:id/assignments", h.Equipment.AssignmentHistory)
	g.POST("/equipment/assignments/:assignment_id/return", h.Equipment.Return)

	g.POST("/equipment/:id/maintenance", h.Equipment.LogMaintenance)
	g.GET("/equipment/:id/maintenance", h.Equipment.MaintenanceHistory)
}

func (r *Router) registerDailyLogs(g *gin.RouterGroup) {
	h := r.handlers
	g.POST("/projects/:id/logs", h.DailyLog.Create)
	g.GET("/projects/:id/logs", h.DailyLog.ListByProject)
	g.GET("/logs/:log_id", h.DailyLog.Get)
	g.PUT("/logs/:log_id", h.DailyLog.Update)
	g.DELETE("/logs/:log_id", h.DailyLog.Delete)

	g.POST("/logs/:log_id/equipment", h.DailyLog.AddEquipmentUsage)
	g.POST("/logs/:log_id/materials", h.DailyLog.AddMaterialUsage)
	g.DELETE("/logs/:log_id/equipment/:usage_id", h.DailyLog.RemoveEquipmentUsage)
	g.DELETE("/logs/:log_id/materials/:usage_id", h.DailyLog.RemoveMaterialUsage)
}

func (r *Router) registerMedia(g *gin.RouterGroup) {
	h := r.handlers
	g.POST("/documents", h.Media.CreateDocument)
	g.GET("/documents", h.Media.ListDocuments)
	g.GET("/documents/:id", h.Media.GetDocument)
	g.DELETE("/documents/:id", h.Media.DeleteDocument)
	g.GET("/projects/:id/documents", h.Media.ListProjectDocuments)

	g.POST("/media", h.Media.CreateMediaItem)
	g.GET("/media/:id", h.Media.GetMediaItem)
	g.PUT("/media/:id", h.Media.UpdateMediaItem)
	g.DELETE("/media/:id", h.Media.DeleteMediaItem)
	g.GET("/projects/:id/media", h.Media.ListProjectMedia)
	g.GET("/logs/:log_id/media", h.Media.ListDailyLogMedia)
}

func (r *Router) registerBilling(g *gin.RouterGroup) {
	h := r.handlers
	g.POST("/invoices", h.Invoice.Create)
	g.GET("/invoices", h.Invoice.List)
	g.GET("/invoices/:id", h.Invoice.GetByID)
	g.DELETE("/invoices/:id", h.Invoice.Delete)
	g.POST("/invoices/:id/items", h.Invoice.AddItem)
	g.DELETE("/invoices/:id/items/:item_id", h.Invoice.RemoveItem)
	g.POST("/invoices/:id/send", h.Invoice.Send)
	g.POST("/invoices/:id/pay", h.Invoice.MarkPaid)
	g.POST("/invoices/:id/overdue", h.Invoice.MarkOverdue)
	g.POST("/invoices/:id/void", h.Invoice.Void)

	g.GET("/subscription", h.Subscription.GetCurrent)
	g.POST("/subscription/checkout", h.Subscription.StartCheckout)
	g.POST("/subscription/portal", h.Subscription.Portal)
	g.POST("/subscription/cancel", h.Subscription.Cancel)
}

func (r *Router) registerNotifications(g *gin.RouterGroup) {
	h := r.handlers
	g.GET("/notifications", h.Notification.List)
	g.GET("/notifications/unread-count", h.Notification.UnreadCount)
	g.POST("/notifications/:id/read", h.Notification.MarkRead)
	g.DELETE("/notifications/:id", h.Notification.Delete)

	g.GET("/notifications/preferences", h.Notification.ListPreferences)
	g.PUT("/notifications/preferences", h.Notification.UpsertPreference)

	g.POST("/notifications/push", h.Notification.RegisterPush)
	g.GET("/notifications/push", h.Notification.ListPush)
	g.DELETE("/notifications/push/:id", h.Notification.UnregisterPush)
}
