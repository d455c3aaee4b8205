package app

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"shopsync_api/config"
	"shopsync_api/internal/shopify/business/services"
	"shopsync_api/internal/shopify/business/services/grouping"
	"shopsync_api/internal/shopify/business/services/parse"
	"shopsync_api/internal/shopify/business/services/sync"
	"shopsync_api/internal/shopify/business/services/transform"
	"shopsync_api/internal/shopify/pkg/clients"
	"shopsync_api/internal/shopify/storage"
	shopifymigrations "shopsync_api/migrations/marketplaces/shopify"
	"shopsync_api/metrics"
	"shopsync_api/pkg/business/service"
	"shopsync_api/pkg/dbconnect"
	"shopsync_api/pkg/dbconnect/migration"
	"shopsync_api/pkg/logger"
)

const (
	defaultListenAddr = ":8082"
	syncWorkerCount   = 4
)

// ShopifyServer wires the sync services for every configured account and
// serves the operational endpoints.
type ShopifyServer struct {
	dbconnect.Database
	config.ShopifyConfig
	orchestrators map[int]*sync.Orchestrator
	log           logger.Logger
	writer        io.Writer
	listenAddr    string
}

func NewShopifyServer(connector dbconnect.Database, shopifyConfig config.ShopifyConfig, writer io.Writer) *ShopifyServer {
	_log := logger.NewLogger(writer, "[ShopifyServer]")
	return &ShopifyServer{
		Database:      connector,
		ShopifyConfig: shopifyConfig,
		orchestrators: make(map[int]*sync.Orchestrator),
		log:           _log,
		writer:        writer,
		listenAddr:    defaultListenAddr,
	}
}

// Orchestrator returns the sync orchestrator for an account id, if the
// account is configured.
func (s *ShopifyServer) Orchestrator(accountID int) (*sync.Orchestrator, bool) {
	o, ok := s.orchestrators[accountID]
	return o, ok
}

func (s *ShopifyServer) Run() {
	db, err := s.Connect()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %s", err)
	}
	defer db.Close()

	migrationApply := []migration.MigrationInterface{
		&shopifymigrations.CreateShopifySchema{},
		&shopifymigrations.CreateSyncLinksTable{},
		&shopifymigrations.CreateSyncLinksStatusIndex{},
	}
	if err := migration.Apply(db, migrationApply); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	s.log.Log("Shopify migrations applied successfully!")

	linkStore := storage.NewSyncLinkRepository(db)
	grouper := grouping.NewEngine(s.Colors.Known, s.Values.DefaultColor)
	skuEngine := parse.NewSkuEngine(s.Colors.Abbreviations, s.Values.DefaultColor)
	transformer := transform.NewTransformer(service.NewTextService(), s.Values)

	for _, account := range s.Accounts {
		auth := services.NewTokenAuth(account.AccessToken)
		if auth == nil {
			s.log.Log("account %d (%s): empty access token, skipped", account.ID, account.Name)
			continue
		}
		gateway := clients.NewShopifyClient(account.ShopDomain, auth, s.writer)
		s.orchestrators[account.ID] = sync.NewOrchestrator(
			gateway,
			linkStore,
			grouper,
			transformer,
			skuEngine,
			s.writer,
			syncWorkerCount,
		)
		s.log.Log("account %d (%s): orchestrator ready for %s", account.ID, account.Name, account.ShopDomain)
	}

	s.serve()
}

func (s *ShopifyServer) serve() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", s.handleHealthz)

	server := &http.Server{
		Addr:         s.listenAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.log.Log("listening on %s", s.listenAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP server failed: %v", err)
	}
}

func (s *ShopifyServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	if err := s.Ping(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, "db unreachable: %v", err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
