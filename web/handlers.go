package web

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/heliview/inspect"
	"github.com/mogaika/heliview/mesh"
	"github.com/mogaika/heliview/utils"
	"github.com/mogaika/heliview/webutils"
)

var errNoFrame = errors.New("no frame rendered yet")

func (s *Server) latest(w http.ResponseWriter) *inspect.Snapshot {
	snap := s.Store.Latest()
	if snap == nil {
		webutils.WriteErrorCode(w, http.StatusServiceUnavailable, errNoFrame)
	}
	return snap
}

func (s *Server) HandlerJsonScene(w http.ResponseWriter, r *http.Request) {
	if snap := s.latest(w); snap != nil {
		webutils.WriteJson(w, snap)
	}
}

func (s *Server) HandlerJsonNode(w http.ResponseWriter, r *http.Request) {
	snap := s.latest(w)
	if snap == nil {
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		webutils.WriteErrorCode(w, http.StatusBadRequest, errors.Wrapf(err, "node id"))
		return
	}
	for _, n := range snap.Nodes {
		if n.ID == id {
			webutils.WriteJson(w, n)
			return
		}
	}
	webutils.WriteErrorCode(w, http.StatusNotFound, errors.Errorf("node %d not found", id))
}

func (s *Server) HandlerJsonCamera(w http.ResponseWriter, r *http.Request) {
	if snap := s.latest(w); snap != nil {
		webutils.WriteJson(w, snap.Camera)
	}
}

func (s *Server) HandlerDumpGlb(w http.ResponseWriter, r *http.Request) {
	snap := s.latest(w)
	if snap == nil {
		return
	}
	var buf bytes.Buffer
	if err := mesh.ExportNodes(&buf, snap.ExportNodes(), s.Meshes); err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "Failed to export frame %d", snap.Frame))
		return
	}
	webutils.WriteFile(w, &buf, "scene.glb")
}

func (s *Server) HandlerDumpText(w http.ResponseWriter, r *http.Request) {
	if snap := s.latest(w); snap != nil {
		webutils.WriteText(w, utils.SDump(snap))
	}
}

func (s *Server) HandlerStatus(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the request
		return
	}
	s.Hub.Serve(conn)
}
