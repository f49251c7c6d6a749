// Package web serves the scene inspector over HTTP.
package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mogaika/heliview/inspect"
	"github.com/mogaika/heliview/mesh"
	"github.com/mogaika/heliview/status"
)

type Server struct {
	Store *inspect.Store
	Hub   *status.Hub
	// Meshes are embedded into glb dumps by geometry name.
	Meshes map[string]mesh.Mesh
	// StaticDir, when set, is served under /.
	StaticDir string

	upgrader websocket.Upgrader
}

func NewServer(store *inspect.Store, hub *status.Hub, meshes map[string]mesh.Mesh) *Server {
	return &Server{Store: store, Hub: hub, Meshes: meshes}
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/json/scene", s.HandlerJsonScene).Methods(http.MethodGet)
	r.HandleFunc("/json/scene/{id:[0-9]+}", s.HandlerJsonNode).Methods(http.MethodGet)
	r.HandleFunc("/json/camera", s.HandlerJsonCamera).Methods(http.MethodGet)
	r.HandleFunc("/dump/scene.glb", s.HandlerDumpGlb).Methods(http.MethodGet)
	r.HandleFunc("/dump/scene.txt", s.HandlerDumpText).Methods(http.MethodGet)
	r.HandleFunc("/ws/status", s.HandlerStatus)

	if s.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.StaticDir)))
	}

	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(r)
	return handlers.LoggingHandler(os.Stdout, h)
}

func (s *Server) ListenAndServe(addr string) error {
	log.Printf("[web] Starting server %v", addr)
	return http.ListenAndServe(addr, s.Router())
}
