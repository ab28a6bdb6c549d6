package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/rollfit/internal/config"
	"github.com/2beens/rollfit/internal/db"
	"github.com/2beens/rollfit/internal/fbapp"
	"github.com/2beens/rollfit/internal/logging"
	"github.com/2beens/rollfit/internal/streak"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// streak_fix scans every stored streak record and repairs the ones whose
// streak counters and goal disagree, e.g. after a manual edit or a bad deploy.
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development | ddev | dockerdev ]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("env-file", ".env", "optional dotenv file with secrets")
	dryRun := flag.Bool("dry-run", true, "only report, do not write the repaired records")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Debugf("no env file loaded [%s]: %s", *envFile, err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("open streak store [%s]: %s", cfg.StreakStore, err)
	}
	defer closeStore()

	if *dryRun {
		log.Warnln("dry run, nothing will be written")
	}

	report, err := streak.Fix(ctx, store, *dryRun)
	if err != nil {
		log.Errorf("streak fix stopped early: %s", err)
	}
	log.Infof("streak fix done: %s", report)
}

func openStore(ctx context.Context, cfg *config.Config) (streak.Store, func(), error) {
	switch cfg.StreakStore {
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: os.Getenv("ROLLFIT_REDIS_PASS"),
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return streak.NewRedisStore(rdb), func() {
			if err := rdb.Close(); err != nil {
				log.Errorf("close redis: %s", err)
			}
		}, nil
	case config.StorePostgres:
		pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBPassword: os.Getenv("ROLLFIT_DB_PASS"),
		})
		if err != nil {
			return nil, nil, err
		}
		return streak.NewPgStore(pool), pool.Close, nil
	case config.StoreFirestore:
		app, err := fbapp.NewApp(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("firestore client: %w", err)
		}
		return streak.NewFirestoreStore(client), func() {
			if err := client.Close(); err != nil {
				log.Errorf("close firestore: %s", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("nothing to fix for streak store [%s]", cfg.StreakStore)
	}
}
