package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/dmcosta/shelfmark/internal/api"
	"github.com/dmcosta/shelfmark/internal/core"
)

// A minimal server entrypoint without first-user provisioning, for running
// against an already-initialized database.
func main() {
	// Initialize the core application components
	app, err := core.New("dev")
	if err != nil {
		log.Fatalf("Fatal error during application setup: %v", err)
	}
	defer app.Close()

	// Setup the API server
	server := api.NewServer(app)
	addr := fmt.Sprintf(":%d", app.Config.Port)
	log.Printf("Starting web server on %s", addr)

	// Start the HTTP server
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
