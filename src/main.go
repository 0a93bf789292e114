package main

import (
	"context"
	"ctoc/src/bookings"
	"ctoc/src/catalog"
	"ctoc/src/common"
	"ctoc/src/config"
	"ctoc/src/db"
	"ctoc/src/inquiries"
	"ctoc/src/lib"
	"ctoc/src/middlewares"
	"ctoc/src/notify"
	"ctoc/src/types"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"strconv"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	apiPrefix string = "/api/v1"
)

var itemTypeValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(types.ItemType)
	if !ok {
		return false
	}
	return value.Valid()
}

var channelValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(types.NotifyChannel)
	if !ok {
		return false
	}
	switch value {
	case types.CHANNEL_SMS, types.CHANNEL_WHATSAPP, types.CHANNEL_EMAIL:
		return true
	}
	return false
}

// API bundles the components every handler group needs. Everything is
// constructed once in newAPI and passed by reference; optional collaborators
// (media, notifier, broker) may be nil when their backing service is not
// configured.
type API struct {
	cfg         *config.Config
	db          *gorm.DB
	catalog     *catalog.Catalog
	coordinator *bookings.Coordinator
	ledger      *bookings.Ledger
	inquiries   *inquiries.Store
	notifier    *notify.Notifier
	media       *lib.MediaStore
	rdb         *redis.Client
	fauth       *fbauth.Client
	producer    *kafka.Producer
}

func newAPI(cfg *config.Config, gdb *gorm.DB) *API {
	api := &API{cfg: cfg, db: gdb}

	api.catalog = catalog.NewCatalog(gdb)
	api.coordinator = bookings.NewCoordinator(gdb, bookings.NewTxIDGenerator())
	api.ledger = bookings.NewLedger(gdb, api.catalog)

	rdb, err := lib.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache: %s\n", err.Error())
	}
	api.rdb = rdb
	api.inquiries = inquiries.NewStore(gdb, rdb)

	s3Client, err := lib.NewS3Client(context.Background(), cfg.AWSRegion)
	if err != nil {
		log.Printf("S3 unavailable, listing images disabled: %s\n", err.Error())
	} else {
		api.media = lib.NewMediaStore(s3Client, cfg.S3AssetsBucket)
	}

	snsClient, snsErr := lib.NewSNSClient(context.Background(), cfg.AWSRegion)
	mailClient, mailErr := lib.NewSMTPClient(cfg)
	if snsErr != nil || mailErr != nil {
		log.Println("Notification channels not fully configured, notifier disabled")
	} else {
		api.notifier = notify.NewNotifier(snsClient, mailClient, cfg)
	}

	fauth, err := lib.NewFirebaseAuth(context.Background(), cfg)
	if err != nil {
		log.Printf("Firebase Auth unavailable, registration disabled: %s\n", err.Error())
	}
	api.fauth = fauth

	if cfg.KafkaBroker != "" {
		producer, err := lib.NewKafkaProducer(cfg.KafkaBroker, "bookingsProducer")
		if err != nil {
			log.Printf("Kafka unavailable, booking events disabled: %s\n", err.Error())
		}
		api.producer = producer
	}

	return api
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm := os.Getenv("MAINTENANCE_MODE")
		atoi, err := strconv.ParseBool(mm)
		if err == nil && atoi {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, err.Error())
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func publicRoutes(g *gin.Engine, api *API) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.
		GET("/share/:filename", func(ctx *gin.Context) {
			var params struct {
				Filename string `uri:"filename" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			filePath := path.Join(api.cfg.TempDir, params.Filename+".png")
			ctx.File(filePath)
		})
	return apiv1
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("itemtype", itemTypeValidatorFunc)
		v.RegisterValidation("channel", channelValidatorFunc)
	}
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func startStatsRefresher(api *API) {
	sched, err := lib.NewScheduler()
	if err != nil {
		return
	}
	_, err = lib.ScheduleEvery(sched, 10*time.Minute, func() {
		if _, err := api.inquiries.RefreshStats(context.Background()); err != nil {
			log.Printf("Error refreshing inquiry stats: %s\n", err.Error())
		}
	})
	if err != nil {
		log.Printf("Error scheduling stats refresh: %s\n", err.Error())
		return
	}
	sched.Start()
}

func main() {
	// API_ENV is read once before Load so a local .env can supply the rest
	if os.Getenv("API_ENV") == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	cfg := config.Load()
	gdb, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("Error connecting to database: %s\n", err.Error())
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	api := newAPI(cfg, gdb)

	router := setupRouter()
	if cfg.APIEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowAllOrigins = true
		router.Use(cors.New(cc))
	}

	registerValidators()
	router = maintenanceModeMiddleware(router)

	publicRoutes(router, api)

	apiv1 := apiv1Group(router)
	itemHandlers(apiv1, api)
	bookingHandlers(apiv1, api)
	inquiryHandlers(apiv1, api)
	notifyHandlers(apiv1, api)
	authHandlers(apiv1, api)

	admin := router.Group(apiPrefix)
	admin.Use(middlewares.RequireAuth(gdb, []byte(cfg.JWTSecret)))
	adminHandlers(admin, api)

	startStatsRefresher(api)

	if cfg.KafkaBroker != "" && api.notifier != nil {
		consumer, err := lib.NewKafkaConsumer(cfg.KafkaBroker, "bookingsNotifier")
		if err != nil {
			log.Printf("Error creating consumer: %s\n", err.Error())
		} else {
			go common.BookingsConfirmedConsumer(consumer, api.notifier)
		}
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server exited: %s\n", err.Error())
	}
}
