package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/BoltzExchange/lnaddress/internal/build"
	"github.com/BoltzExchange/lnaddress/internal/logger"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const maxRequestSize = 1 << 20

const shutdownTimeout = 5 * time.Second

type Server struct {
	toolset *Toolset
	handler http.Handler
}

type errorResponse struct {
	Error   string         `json:"error"`
	Kind    string         `json:"kind"`
	Details map[string]any `json:"details,omitempty"`
}

type toolsResponse struct {
	Tools []Definition `json:"tools"`
}

type callResponse struct {
	Result any `json:"result"`
}

type versionResponse struct {
	Version string `json:"version"`
}

// NewServer exposes a toolset over HTTP. Cross origin requests are only allowed from allowedOrigins.
func NewServer(toolset *Toolset, allowedOrigins []string) *Server {
	server := &Server{toolset: toolset}

	router := mux.NewRouter()
	router.HandleFunc("/v1/tools", server.handleDefinitions).Methods(http.MethodGet)
	router.HandleFunc("/v1/tools/{name}", server.handleCall).Methods(http.MethodPost)
	router.HandleFunc("/v1/version", server.handleVersion).Methods(http.MethodGet)

	server.handler = cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	return server
}

func (server *Server) Handler() http.Handler {
	return server.handler
}

// Serve blocks until the context is done or the listener fails
func (server *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           server.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.Serve(listener)
	}()
	logger.Infof("Tool API listening on %s", listener.Addr())

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down tool API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not shut down tool API: %w", err)
	}
	if err := <-errChan; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (server *Server) ListenAndServe(ctx context.Context, address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	return server.Serve(ctx, listener)
}

func (server *Server) handleDefinitions(w http.ResponseWriter, _ *http.Request) {
	writeJson(w, http.StatusOK, toolsResponse{Tools: server.toolset.Definitions()})
}

func (server *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJson(w, http.StatusOK, versionResponse{Version: build.GetVersion()})
}

func (server *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	args, err := readArgs(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := server.toolset.Call(r.Context(), name, args)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, callResponse{Result: result})
}

// readArgs accepts an empty body as no arguments
func readArgs(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestSize))
	if err != nil {
		return nil, fmt.Errorf("%w: could not read body: %w", ErrInvalidArguments, err)
	}

	args := map[string]any{}
	if len(body) == 0 {
		return args, nil
	}
	if err := json.Unmarshal(body, &args); err != nil {
		return nil, fmt.Errorf("%w: body has to be a JSON object: %w", ErrInvalidArguments, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func writeError(w http.ResponseWriter, err error) {
	status := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Warnf("Tool call failed: %v", err)
	}
	writeJson(w, status, errorResponse{
		Error:   err.Error(),
		Kind:    ErrorKind(err),
		Details: ErrorDetails(err),
	})
}

func writeJson(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(response); err != nil {
		logger.Errorf("Could not write response: %v", err)
	}
}
