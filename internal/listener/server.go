// Package listener exposes the HTTP endpoint PayPal posts IPN callbacks to.
package listener

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/payment"
)

// PayPal callbacks are small form bodies. Anything bigger is not an IPN.
const maxBodySize = 64 << 10

// Handler is the part of payment.IPNService the listener needs.
type Handler interface {
	HandleIPN(ctx context.Context, payload []byte) (*payment.Outcome, error)
}

// Server is the IPN listener
type Server struct {
	handler Handler
	router  *gin.Engine
	srv     *http.Server
}

// NewServer creates the listener and registers its routes.
func NewServer(addr string, handler Handler) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		handler: handler,
		router:  router,
	}
	s.srv = &http.Server{Addr: addr, Handler: router}

	router.POST("/ipn", s.handleIPN)
	router.GET("/healthz", s.handleHealth)

	return s
}

// Handler returns the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until Shutdown is called.
func (s *Server) Run() error {
	log.Printf("[Listener] Listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting callbacks and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// handleIPN answers 200 once the callback is settled so PayPal stops resending.
// A callback PayPal rejected, or one that can never be handled, is settled too.
// Everything else gets a 500 and PayPal will retry it later.
func (s *Server) handleIPN(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		log.Printf("[Listener] Could not read callback body: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	out, err := s.handler.HandleIPN(c.Request.Context(), body)
	switch {
	case err == nil:
		log.Printf("[Listener] Handled callback log=%s events=%d shared=%t", out.LogID, len(out.Events), out.Shared)
		c.Status(http.StatusOK)
	case errors.Is(err, payment.ErrNotVerified):
		log.Printf("[Listener] Dropping unverified callback: %v", err)
		c.Status(http.StatusOK)
	case errors.Is(err, payment.ErrUnprocessable):
		// Kept in the notification log; a redelivery would fail the same way.
		log.Printf("[Listener] Accepting unprocessable callback: %v", err)
		c.Status(http.StatusOK)
	default:
		log.Printf("[Listener] Callback failed, PayPal will retry: %v", err)
		c.Status(http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
