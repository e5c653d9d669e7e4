package internal

import (
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"paygate/config"
	"paygate/entity"
	"paygate/services"
)

const (
	ipnNotify   = "/ipn"
	healthCheck = "/health"
)

// maxNotificationSize bounds the body read from the notification endpoint.
const maxNotificationSize = 64 << 10

// Server receives instant payment notifications and verifies them with the
// gateway.
type Server struct {
	conf       *config.Config
	httpServer *http.Server
	gateway    services.Gateway
	logger     services.LogHandler
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf:   conf,
		logger: NewNopLogger(),
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(ipnNotify, s.ipnNotify)
	router.GET(healthCheck, s.health)
}

func (s *Server) SetGateway(gateway services.Gateway) {
	s.gateway = gateway
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}
	if s.gateway == nil {
		return fmt.Errorf("gateway not set")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

// ipnNotify verifies the posted notification. It answers 200 in every case,
// otherwise the gateway keeps resending the same notification.
func (s *Server) ipnNotify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxNotificationSize))
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] ipn notify: read body", reqID), err)
		w.WriteHeader(http.StatusOK)
		return
	}

	notification, err := entity.ParsePayload(string(body))
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] ipn notify: parse body", reqID), err)
		w.WriteHeader(http.StatusOK)
		return
	}
	txnId, _ := notification.Get("txn_id")

	outcome := s.gateway.VerifyIPN(ctx, notification)
	if outcome.IsError() {
		s.logger.Error(fmt.Sprintf("[%s] ipn notify: verify txn %s", reqID, secret(txnId)), outcome.Err)
	} else if outcome.Raw != "VERIFIED" {
		s.logger.Warn(fmt.Sprintf("[%s] ipn notify: txn %s not verified: %s", reqID, secret(txnId), outcome.Raw))
	} else {
		s.logger.Info(fmt.Sprintf("[%s] ipn notify: txn %s verified", reqID, secret(txnId)))
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
}
