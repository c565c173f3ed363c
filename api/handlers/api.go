package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/legalbridge/legalbridge-api/api"
	"github.com/legalbridge/legalbridge-api/api/scheduler"
	"github.com/legalbridge/legalbridge-api/catalog"
	"github.com/legalbridge/legalbridge-api/chat"
	"github.com/legalbridge/legalbridge-api/config"
	"github.com/legalbridge/legalbridge-api/databases"
	"github.com/legalbridge/legalbridge-api/docgen"
	"github.com/legalbridge/legalbridge-api/gemini"
	"github.com/legalbridge/legalbridge-api/models"
	"github.com/legalbridge/legalbridge-api/notify"
	"github.com/legalbridge/legalbridge-api/reveal"
	"github.com/legalbridge/legalbridge-api/store"
)

// Code requests allowed per visitor: a burst of codeBurst, then one per codeEvery
const (
	codeEvery = time.Minute
	codeBurst = 5
)

// App stores the router and the services behind it, so they can be reused
type App struct {
	Router *mux.Router
	Config config.Config

	Catalog     *catalog.Catalog
	Issuer      *api.TokenIssuer
	Collections *store.Collections
	Contacts    databases.ContactDatabase
	Blogs       databases.BlogDatabase
	Reveal      *reveal.Service
	Chat        *chat.Service
	Limiter     *api.VisitorLimiter

	dbHelper  databases.DatabaseHelper
	sqlDB     *gorm.DB
	scheduler *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	if a.Catalog == nil {
		a.Catalog = catalog.MustLoad()
	}
	if a.Issuer == nil {
		a.Issuer = api.NewTokenIssuer(a.Config.VisitorTokenSecret, a.Config.VisitorTokenTTL)
	}
	if a.Collections == nil {
		a.Collections = store.NewCollections(store.NewMemoryBackend())
	}
	if a.Chat == nil {
		a.Chat = chat.NewService(nil, a.Collections.ChatHistory)
	}

	r := mux.NewRouter()
	r.Use(api.MetricsMiddleware(api.GetMetrics()))
	if a.Config.RequestTimeout > 0 {
		// chat replies wait on the model for as long as it takes
		r.Use(api.TimeoutMiddleware(a.Config.RequestTimeout, "POST /api/chat"))
	}

	v := Visitor{Issuer: a.Issuer}
	contact := Contact{DB: a.Contacts}
	blog := Blog{DB: a.Blogs}
	doc := Document{Catalog: a.Catalog, Collections: a.Collections, Layout: docgen.DefaultLayout}
	org := Organization{Orgs: a.Catalog.Organizations, Collections: a.Collections}
	rv := Reveal{Service: a.Reveal}
	c := Chat{Service: a.Chat}
	col := Collection{Collections: a.Collections}
	m := MetricsHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	apiCreate := r.PathPrefix("/api").Subrouter()

	apiCreate.Handle("/visitor", api.Middleware(http.HandlerFunc(v.CreateVisitorHandler))).Methods("POST", "OPTIONS")

	apiCreate.Handle("/contact", api.Middleware(http.HandlerFunc(contact.CreateContactHandler))).Methods("POST", "OPTIONS")

	apiCreate.Handle("/blogs", api.Middleware(http.HandlerFunc(blog.BlogsHandler))).Methods("GET", "OPTIONS")
	apiCreate.Handle("/blogs", api.Middleware(http.HandlerFunc(blog.CreateBlogHandler))).Methods("POST")
	apiCreate.Handle("/blogs/{id}", api.Middleware(http.HandlerFunc(blog.BlogByIDHandler))).Methods("GET", "OPTIONS")

	apiCreate.Handle("/templates", api.Middleware(http.HandlerFunc(doc.TemplatesHandler))).Methods("GET", "OPTIONS")
	apiCreate.Handle("/chat/quick-questions", api.Middleware(http.HandlerFunc(c.QuickQuestionsHandler))).Methods("GET", "OPTIONS")

	apiCreate.Handle("/metrics/summary", api.Middleware(http.HandlerFunc(m.GetMetricsSummary))).Methods("GET")
	apiCreate.Handle("/metrics/routes", api.Middleware(http.HandlerFunc(m.GetRouteMetrics))).Methods("GET")

	// everything below is scoped to the visitor of the bearer token
	visitor := func(h http.HandlerFunc) http.Handler {
		return api.Middleware(a.Issuer.VisitorMiddleware(h))
	}

	apiCreate.Handle("/organizations", visitor(org.OrganizationsHandler)).Methods("GET", "OPTIONS")

	apiCreate.Handle("/reveal", visitor(rv.StartRevealHandler)).Methods("POST", "OPTIONS")
	apiCreate.Handle("/reveal/{session_id}/details", visitor(rv.RevealDetailsHandler)).Methods("POST", "OPTIONS")
	apiCreate.Handle("/reveal/{session_id}/confirm", visitor(rv.ConfirmRevealHandler)).Methods("POST", "OPTIONS")
	apiCreate.Handle("/reveal/{session_id}", visitor(rv.CancelRevealHandler)).Methods("DELETE", "OPTIONS")

	apiCreate.Handle("/chat", visitor(c.ChatHandler)).Methods("GET", "OPTIONS")
	apiCreate.Handle("/chat", visitor(c.SendChatHandler)).Methods("POST")
	apiCreate.Handle("/chat", visitor(c.ClearChatHandler)).Methods("DELETE")

	apiCreate.Handle("/documents", visitor(doc.DocumentsHandler)).Methods("GET", "OPTIONS")
	apiCreate.Handle("/documents", visitor(doc.CreateDocumentHandler)).Methods("POST")
	apiCreate.Handle("/documents/{document_id}/export", visitor(doc.ExportDocumentHandler)).Methods("GET", "OPTIONS")

	apiCreate.Handle("/collections/{key}", visitor(col.CollectionHandler)).Methods("GET", "OPTIONS")
	apiCreate.Handle("/collections/{key}", visitor(col.UpdateCollectionHandler)).Methods("PUT")

	// websocket handshakes carry the token as ?token=
	r.Handle("/ws/chat", a.Issuer.VisitorMiddleware(http.HandlerFunc(c.ChatWebSocketHandler))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect the stores, build the services and
// create a router
func (a *App) Initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cat, err := catalog.Load()
	if err != nil {
		zap.S().Errorw("failed to load catalog", "error", err)
		return err
	}
	a.Catalog = cat

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().Errorw("failed to create new client", "error", err)
		return err
	}
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	if err := client.Connect(); err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().Errorw("failed to connect to database", "error", err)
		return err
	}
	zap.S().Info("legalbridge-api has connected to the database")

	a.sqlDB, err = databases.OpenRelational(&a.Config)
	if err != nil {
		zap.S().Errorw("failed to open relational database", "driver", a.Config.SQLDriver, "error", err)
		return err
	}
	if err := databases.SeedBlogs(ctx, a.sqlDB, cat.Blogs); err != nil {
		return err
	}
	a.Contacts = databases.NewContactDatabase(a.sqlDB)
	a.Blogs = databases.NewBlogDatabase(a.sqlDB)

	backend, err := a.storeBackend(ctx)
	if err != nil {
		return err
	}
	a.Collections = store.NewCollections(backend)

	notifier, err := notify.New(ctx, &a.Config)
	if err != nil {
		zap.S().Errorw("failed to set up code delivery", "error", err)
		return err
	}

	a.Limiter = api.NewVisitorLimiter(codeEvery, codeBurst)
	a.Reveal = reveal.NewService(
		cat,
		databases.NewPendingVerificationDatabase(a.dbHelper),
		a.Contacts,
		a.Collections,
		notifier,
		a.Limiter,
		a.Config.CodeTTL,
	)

	gen, err := gemini.New(ctx, a.Config.GeminiAPIKey, a.Config.GeminiModel)
	if err != nil {
		zap.S().Errorw("failed to create gemini client", "error", err)
		return err
	}
	a.Chat = chat.NewService(gen, a.Collections.ChatHistory)

	a.scheduler = scheduler.NewScheduler(a.Reveal, a.Limiter, api.GetMetrics())
	a.scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil
}

// storeBackend picks the collection store selected by STORE_DRIVER
func (a *App) storeBackend(ctx context.Context) (store.Backend, error) {
	switch a.Config.StoreDriver {
	case "mongo", "":
		return store.NewMongoBackend(databases.NewVisitorStateDatabase(a.dbHelper)), nil
	case "redis":
		rb := store.NewRedisBackend(store.NewRedisClient(a.Config.RedisAddr, a.Config.RedisPassword, a.Config.RedisDB))
		if err := rb.Ping(ctx); err != nil {
			zap.S().Errorw("failed to connect to redis", "addr", a.Config.RedisAddr, "error", err)
			return nil, err
		}
		return rb, nil
	case "memory":
		zap.S().Warn("visitor collections are kept in memory and lost on restart")
		return store.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", a.Config.StoreDriver)
	}
}

// Shutdown stops the background jobs and waits for pending code deliveries
func (a *App) Shutdown() {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.Reveal != nil {
		a.Reveal.Wait()
	}
	if a.sqlDB != nil {
		if db, err := a.sqlDB.DB(); err == nil {
			_ = db.Close()
		}
	}
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
