package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/rollfit/internal/activity"
	"github.com/2beens/rollfit/internal/auth"
	"github.com/2beens/rollfit/internal/config"
	"github.com/2beens/rollfit/internal/db"
	"github.com/2beens/rollfit/internal/fbapp"
	"github.com/2beens/rollfit/internal/middleware"
	"github.com/2beens/rollfit/internal/misc"
	"github.com/2beens/rollfit/internal/notify"
	"github.com/2beens/rollfit/internal/streak"
	"github.com/2beens/rollfit/internal/telemetry/metrics"
	"github.com/2beens/rollfit/internal/telemetry/tracing"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config        *config.Config
	versionInfo   string
	dbPool        *pgxpool.Pool
	redisClient   *redis.Client
	firebaseApp   *firebase.App
	firestore     *firestore.Client
	authResolver  auth.Resolver
	streakTracker *streak.Tracker
	activitySvc   *activity.Service
	healthChecks  []misc.HealthCheck
	rateLimiter   middleware.RequestRateLimiter

	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry

	otelShutdown func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	DBPassword              string
	JWTSecret               string
	HoneycombTracingEnabled bool
}

func NewServer(ctx context.Context, params NewServerParams) (_ *Server, err error) {
	cfg := params.Config
	s := &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
	}
	// release whatever got opened if a later step fails
	defer func() {
		if err != nil {
			s.closeBackends()
		}
	}()

	var collectors []prometheus.Collector
	if cfg.NeedsPostgres() {
		s.dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBPassword:     params.DBPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}

		if err := s.dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		if err := db.EnsureSchema(ctx, s.dbPool); err != nil {
			return nil, err
		}

		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			s.dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
		s.healthChecks = append(s.healthChecks, postgresHealthCheck{pool: s.dbPool})
	}

	s.promRegistry = metrics.SetupPrometheus(collectors...)
	s.metricsManager = metrics.NewManager("rollfit", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	s.redisClient = redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := s.redisClient.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}
	s.healthChecks = append(s.healthChecks, redisHealthCheck{rdb: s.redisClient})
	s.rateLimiter = redis_rate.NewLimiter(s.redisClient)

	// use honeycomb distro to setup OpenTelemetry SDK
	s.otelShutdown, err = tracing.HoneycombSetup(params.HoneycombTracingEnabled, "rollfit-backend", s.redisClient)
	if err != nil {
		return nil, fmt.Errorf("honeycomb setup: %w", err)
	}

	if cfg.NeedsFirebase() {
		s.firebaseApp, err = fbapp.NewApp(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("firebase app: %w", err)
		}
	}

	s.authResolver, err = newAuthResolver(cfg, params.JWTSecret, s.redisClient)
	if err != nil {
		return nil, err
	}

	store, err := s.newStreakStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("streak store: %w", err)
	}

	trackerOpts := []streak.TrackerOption{streak.WithMetrics(s.metricsManager)}

	notifier, err := s.newNotifier(ctx)
	if err != nil {
		return nil, fmt.Errorf("notifier: %w", err)
	}
	trackerOpts = append(trackerOpts, streak.WithNotifier(notifier))

	if cfg.ActivityLogEnabled {
		s.activitySvc = activity.NewService(activity.NewRepo(s.dbPool))
		trackerOpts = append(trackerOpts, streak.WithActivityRecorder(s.activitySvc))
	}

	s.streakTracker = streak.NewTracker(store, trackerOpts...)

	log.Infof("streak store: [%s], auth mode: [%s], activity log: %t, notifications: %t",
		cfg.StreakStore, cfg.AuthMode, cfg.ActivityLogEnabled, cfg.NotificationsEnabled)

	return s, nil
}

func newAuthResolver(cfg *config.Config, jwtSecret string, rdb *redis.Client) (auth.Resolver, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		if jwtSecret == "" {
			return nil, errors.New("jwt auth mode requires a signing secret")
		}
		return auth.NewJWTVerifier(jwtSecret, cfg.JWTIssuer), nil
	case config.AuthModeSession:
		return auth.NewSessionChecker(time.Duration(cfg.SessionTTLHours)*time.Hour, rdb), nil
	default:
		return nil, fmt.Errorf("unknown auth mode: %s", cfg.AuthMode)
	}
}

func (s *Server) newStreakStore(ctx context.Context) (streak.Store, error) {
	switch s.config.StreakStore {
	case config.StoreRedis:
		return streak.NewRedisStore(s.redisClient), nil
	case config.StorePostgres:
		return streak.NewPgStore(s.dbPool), nil
	case config.StoreFirestore:
		client, err := s.firebaseApp.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("firestore client: %w", err)
		}
		s.firestore = client
		s.healthChecks = append(s.healthChecks, firestoreHealthCheck{client: client})
		return streak.NewFirestoreStore(client), nil
	case config.StoreMemory:
		log.Warnln("using in-memory streak store, records will not survive a restart")
		return streak.NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown streak store: %s", s.config.StreakStore)
	}
}

func (s *Server) newNotifier(ctx context.Context) (streak.Notifier, error) {
	if !s.config.NotificationsEnabled {
		return notify.LogNotifier{}, nil
	}
	client, err := s.firebaseApp.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("messaging client: %w", err)
	}
	return notify.NewFCMNotifier(client), nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("rollfit-router"))

	misc.NewHandler(s.versionInfo, s.healthChecks...).SetupRoutes(r)

	streakHandler := streak.NewHandler(
		s.streakTracker,
		s.config.StreakCacheSizeMB*1024*1024,
		s.config.StreakCacheTTLSeconds,
	)

	r.HandleFunc("/streak/goal/{streak}", streakHandler.HandleNextGoal).Methods("GET").Name("streak-goal")

	streakRouter := r.PathPrefix("/streak").Subrouter()
	streakRouter.HandleFunc("", streakHandler.HandleGet).Methods("GET", "OPTIONS").Name("streak-get")
	streakRouter.HandleFunc("/login", streakHandler.HandleEvaluateLogin).Methods("POST", "OPTIONS").Name("streak-login")
	streakRouter.HandleFunc("/workout", streakHandler.HandleRecordWorkout).Methods("POST", "OPTIONS").Name("streak-workout")
	streakRouter.Use(middleware.RateLimit(s.rateLimiter, "streak", s.config.RequestsAllowedPerMin, s.metricsManager))

	if s.activitySvc != nil {
		activityHandler := activity.NewHandler(s.activitySvc)
		r.HandleFunc("/activity/list/page/{page}/size/{size}", activityHandler.HandleList).
			Methods("GET", "OPTIONS").Name("activity-list")
	}

	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		log.Tracef("unknown path: [%s]", r.URL.Path)
		http.Error(w, "there's no such thing here", http.StatusNotFound)
	})

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authResolver)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the backends go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.closeBackends()

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) closeBackends() {
	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	var err error
	if s.redisClient != nil {
		err = multierr.Append(err, s.redisClient.Close())
	}
	if s.firestore != nil {
		err = multierr.Append(err, s.firestore.Close())
	}
	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
	if err != nil {
		log.Errorf("failed to close backends: %s", err)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
