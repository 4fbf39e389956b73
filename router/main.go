package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AradGolbaghi/new-hw-planner/config"
	"github.com/AradGolbaghi/new-hw-planner/database"
	"github.com/AradGolbaghi/new-hw-planner/handlers"
	assignment_handlers "github.com/AradGolbaghi/new-hw-planner/handlers/assignment"
	attachment_handlers "github.com/AradGolbaghi/new-hw-planner/handlers/attachment"
	comment_handlers "github.com/AradGolbaghi/new-hw-planner/handlers/comment"
	export_handlers "github.com/AradGolbaghi/new-hw-planner/handlers/export"
	stats_handlers "github.com/AradGolbaghi/new-hw-planner/handlers/stats"
	template_handlers "github.com/AradGolbaghi/new-hw-planner/handlers/template"
	"github.com/AradGolbaghi/new-hw-planner/services"
	"github.com/AradGolbaghi/new-hw-planner/services/storage"
	"github.com/AradGolbaghi/new-hw-planner/utils/auth"
	"github.com/AradGolbaghi/new-hw-planner/utils/middleware"
)

// SetupRoutes wires services, middleware and route groups onto the app
func SetupRoutes(app *fiber.App, store database.Storage, env *config.EnvironmentVariable) {
	if env.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := env.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "hw-planner-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: env.JWT_SECRET,
		Expiry: 24 * time.Hour,
		Issuer: jwtIssuer,
	})
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// Object storage is optional. Without it, attachment uploads are
	// rejected with 503 but everything else works.
	var spacesClient *storage.SpacesClient
	if env.SPACES_ACCESS_KEY != "" && env.SPACES_ENDPOINT != "" {
		client, err := storage.NewSpacesClient(storage.SpacesConfig{
			AccessKey: env.SPACES_ACCESS_KEY,
			SecretKey: env.SPACES_SECRET_KEY,
			Bucket:    env.SPACES_BUCKET,
			Region:    env.SPACES_REGION,
			Endpoint:  env.SPACES_ENDPOINT,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize object storage: %v. Attachment uploads are disabled.", err)
		} else {
			spacesClient = client
		}
	}

	// Services
	assignmentService := services.NewAssignmentService(store)
	commentService := services.NewCommentService(store)
	attachmentService := services.NewAttachmentService(store)
	templateService := services.NewTemplateService(store)
	statsService := services.NewStatsService(store)
	exportService := services.NewExportService(store)

	// Handlers
	healthHandler := handlers.NewHealthHandler(store)
	assignmentHandler := assignment_handlers.NewAssignmentHandler(assignmentService)
	commentHandler := comment_handlers.NewCommentHandler(commentService)
	attachmentHandler := attachment_handlers.NewAttachmentHandler(attachmentService, spacesClient)
	templateHandler := template_handlers.NewTemplateHandler(templateService)
	statsHandler := stats_handlers.NewStatsHandler(statsService)
	exportHandler := export_handlers.NewExportHandler(exportService)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health endpoints (public)
	app.Get("/health", healthHandler.Liveness)
	app.Get("/health/ready", healthHandler.Readiness)

	// API v1 group
	api := app.Group("/api/v1")

	// Assignment routes. Reads are open to any authenticated caller,
	// writes check ownership inside the services.
	assignments := api.Group("/assignments", authMiddleware.Required())
	assignments.Get("/", assignmentHandler.ListAssignments)
	assignments.Post("/", assignmentHandler.CreateAssignment)
	assignments.Post("/bulk-delete", assignmentHandler.BulkDelete)
	assignments.Post("/bulk-update", assignmentHandler.BulkUpdate)
	assignments.Get("/:id", assignmentHandler.GetAssignment)
	assignments.Put("/:id", assignmentHandler.UpdateAssignment)
	assignments.Delete("/:id", assignmentHandler.DeleteAssignment)
	assignments.Patch("/:id/toggle", assignmentHandler.ToggleComplete)

	// Comments
	assignments.Post("/:id/comments", commentHandler.AddComment)

	// Attachments
	assignments.Post("/:id/attachments", attachmentHandler.UploadAttachment)
	assignments.Get("/:id/attachments/:attachmentId", attachmentHandler.DownloadAttachment)
	assignments.Delete("/:id/attachments/:attachmentId", attachmentHandler.RemoveAttachment)

	// Templates
	templates := api.Group("/templates", authMiddleware.Required())
	templates.Get("/", templateHandler.ListTemplates)
	templates.Post("/", templateHandler.CreateTemplate)
	templates.Delete("/:id", templateHandler.DeleteTemplate)

	// Stats dashboard
	api.Get("/stats", authMiddleware.Required(), statsHandler.GetStats)

	// Backup export / import
	exportGroup := api.Group("/export", authMiddleware.Required())
	exportGroup.Get("/", exportHandler.ExportAssignments)
	exportGroup.Post("/import", exportHandler.ImportAssignments)
}
