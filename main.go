package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/micromouse-api/api"
	api_i "github.com/beka-birhanu/micromouse-api/api/i"
	"github.com/beka-birhanu/micromouse-api/api/identity"
	simapi "github.com/beka-birhanu/micromouse-api/api/sim"
	"github.com/beka-birhanu/micromouse-api/config"
	general_i "github.com/beka-birhanu/micromouse-api/i"
	logger "github.com/beka-birhanu/micromouse-api/infrastruture/log"
	"github.com/beka-birhanu/micromouse-api/infrastruture/repo"
	"github.com/beka-birhanu/micromouse-api/infrastruture/sortedstorage"
	"github.com/beka-birhanu/micromouse-api/infrastruture/token"
	"github.com/beka-birhanu/micromouse-api/service"
	"github.com/beka-birhanu/micromouse-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	userRepo       i.UserRepo
	runRepo        i.RunRepo
	scoreBoard     i.ScoreBoard
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	authController api_i.Controller
	simManager     i.SimulationManager
	simController  api_i.Controller
	router         *api.Router
	appLogger      general_i.Logger
)

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
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initUserRepo(client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	appLogger.Info("User repository initialized")
}

func initRunRepo(client *mongo.Client) {
	runRepo = repo.NewRunRepo(client, config.Envs.DBName, "runs")
	appLogger.Info("Run repository initialized")
}

func initScoreBoard() {
	var err error
	scoreBoard, err = sortedstorage.NewRedisScoreBoard(redisClient, int64(config.Envs.LeaderboardSize))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating score board: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Score board initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
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

func initSimulationManager() {
	simLogger, err := logger.New("SIMULATION", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating simulation logger: %v", err))
		os.Exit(1)
	}

	simManager, err = service.NewSimulationManager(&service.Config{
		RunRepo:    runRepo,
		ScoreBoard: scoreBoard,
		Logger:     simLogger,
		Options: &service.Options{
			MaxLiveRuns:   config.Envs.MaxLiveRuns,
			DefaultWidth:  config.Envs.MazeWidth,
			DefaultHeight: config.Envs.MazeHeight,
		},
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating simulation manager: %v", err))
		os.Exit(1)
	}

	appLogger.Info("Simulation manager initialized")
}

func initSimController() {
	var err error
	simController, err = simapi.NewSimulationController(simManager)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating simulation controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Simulation controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, simController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initUserRepo(mongoClient)
	initRunRepo(mongoClient)
	initScoreBoard()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initSimulationManager()
	initSimController()

	gin.SetMode(config.Envs.GinMode)
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}

	// Allow time for cleanup operations (TODO: use WaitGroups instead)
	time.Sleep(2 * time.Second)
}
