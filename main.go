package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/drone-maze/api"
	flightapi "github.com/beka-birhanu/drone-maze/api/flight"
	api_i "github.com/beka-birhanu/drone-maze/api/i"
	"github.com/beka-birhanu/drone-maze/api/identity"
	levelapi "github.com/beka-birhanu/drone-maze/api/level"
	"github.com/beka-birhanu/drone-maze/config"
	"github.com/beka-birhanu/drone-maze/infrastruture/cache"
	logger "github.com/beka-birhanu/drone-maze/infrastruture/log"
	"github.com/beka-birhanu/drone-maze/infrastruture/physics"
	"github.com/beka-birhanu/drone-maze/infrastruture/repo"
	"github.com/beka-birhanu/drone-maze/infrastruture/sortedstorage"
	"github.com/beka-birhanu/drone-maze/infrastruture/token"
	"github.com/beka-birhanu/drone-maze/level"
	"github.com/beka-birhanu/drone-maze/service"
	"github.com/beka-birhanu/drone-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/gookit/color"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient      *mongo.Client
	redisClient      *redis.Client
	pilotRepo        *repo.PilotRepo
	levelRepo        *repo.LevelRepo
	levelService     *service.LevelService
	leaderboard      *service.Leaderboard
	levelController  api_i.Controller
	flightController api_i.Controller
	jwtTokenizer     i.Tokenizer
	authService      i.Authenticator
	authController   api_i.Controller
	router           *api.Router
	appLogger        i.Logger
)

func newLogger(prefix string, c color.Color) i.Logger {
	l, err := logger.New(prefix, c, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(ctx context.Context) {
	pilotRepo = repo.NewPilotRepo(mongoClient, config.Envs.DBName, "pilots")
	if err := pilotRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating pilot indexes: %v", err))
		os.Exit(1)
	}

	levelRepo = repo.NewLevelRepo(mongoClient, config.Envs.DBName, "levels")
	if err := levelRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating level indexes: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Repositories initialized")
}

func initLevelService() {
	levelLogger := newLogger("LEVEL", config.ColorCyan)
	levelCache := cache.NewRedisLevelCache(redisClient, config.Envs.LevelCacheTTL)

	var err error
	levelService, err = service.NewLevelService(levelRepo, levelCache, levelLogger,
		func() level.PhysicsWorld { return physics.NewWorld() },
		&service.LevelOptions{
			Dimension: config.Envs.MazeDimension,
			Algorithm: config.Envs.MazeAlgorithm,
			Level: level.Config{
				GridSize:    config.Envs.GridSize,
				LevelSize:   config.Envs.LevelSize,
				CoverBorder: config.Envs.CoverBorder,
			},
		})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating level service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Level service initialized")
}

func initLeaderboard() {
	lbLogger := newLogger("LEADERBOARD", config.ColorMagenta)
	store := sortedstorage.NewRedisSortedStore(redisClient, config.Envs.LeaderboardTTL)

	var err error
	leaderboard, err = service.NewLeaderboard(store, levelRepo, pilotRepo, lbLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Leaderboard initialized")
}

func initLevelControllers() {
	var err error
	levelController, err = levelapi.NewController(levelService)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating level controller: %v", err))
		os.Exit(1)
	}

	flightController, err = flightapi.NewController(leaderboard)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating flight controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Level controllers initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(pilotRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, levelController, flightController},
		AuthorizationMiddleware: identity.Authorize(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	gin.SetMode(config.Envs.GinMode)
	appLogger = newLogger("APP", config.ColorGreen)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initRepos(ctx)
	initLevelService()
	initLeaderboard()
	initLevelControllers()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
