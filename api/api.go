package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// APIServer wraps the Fiber app and its listen address
type APIServer struct {
	app           *fiber.App
	listenAddress string
}

// NewAPIServer creates an API server listening on the given address
func NewAPIServer(listenAddress string) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName: "hw-planner",
		}),
		listenAddress: listenAddress,
	}
}

// GetEngine exposes the underlying Fiber app for route registration
func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

// Run starts the server and blocks until it exits
func (s *APIServer) Run() error {
	log.Println("Starting API Server")
	log.Printf("Listening on %s", s.listenAddress)

	return s.app.Listen(s.listenAddress)
}

// Shutdown gracefully drains in-flight requests
func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}
