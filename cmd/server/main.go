package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"axiapac.com/attendance/attendance"
	v1 "axiapac.com/attendance/attendanceapi/v1"
	"axiapac.com/attendance/config"
	"axiapac.com/attendance/infrastructure/communication"
	"axiapac.com/attendance/infrastructure/devops"
	"axiapac.com/attendance/location"
	"axiapac.com/attendance/security"
	"axiapac.com/attendance/store"
	"axiapac.com/attendance/utils"
	"axiapac.com/attendance/web/handlers/punch"
	"axiapac.com/attendance/web/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func loadConfig(ctx context.Context) (*config.Config, error) {
	if param := os.Getenv("CONFIG_PARAMETER"); param != "" {
		return devops.LoadConfig(ctx, param)
	}
	return config.Load(os.Getenv("CONFIG_FILE"))
}

// newAttendanceClient signs requests with the identity the dashboard uses
// towards the attendance service. An empty secret means no token is sent.
func newAttendanceClient(cfg config.AttendanceConfig) (*v1.AttendanceClient, error) {
	if cfg.SigningSecret == "" {
		return v1.NewAttendanceClient(cfg.BaseURL, ""), nil
	}
	tokens, err := security.NewTokenSource(security.Identity{
		UniqueName: security.Issuer,
		Admin:      true,
	}, cfg.SigningSecret, cfg.TokenTTLSeconds)
	if err != nil {
		return nil, err
	}
	return v1.NewAttendanceClientWithTokens(cfg.BaseURL, tokens), nil
}

func newAcquirer(cfg config.LocationConfig) *location.Acquirer {
	var provider location.Provider
	if d := cfg.Device; d != nil {
		provider = &location.StaticProvider{Position: location.Coordinates{
			Latitude:  d.Latitude,
			Longitude: d.Longitude,
			Accuracy:  d.Accuracy,
		}}
	}
	var geocoder location.Geocoder
	if cfg.GeocoderURL != "" {
		geocoder = location.NewNominatimGeocoder(cfg.GeocoderURL, cfg.UserAgent)
	}
	acquirer := location.NewAcquirer(provider, geocoder)
	acquirer.Timeout = cfg.Timeout()
	return acquirer
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	ctx := context.Background()
	cfg, err := loadConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	loc, err := utils.LoadLocation(cfg.Store.TimeZone)
	if err != nil {
		log.Fatal(err)
	}

	secret, err := security.DecodeSecret(cfg.Server.SigningSecret)
	if err != nil {
		log.Fatalf("invalid signing secret: %v", err)
	}

	client, err := newAttendanceClient(cfg.Attendance)
	if err != nil {
		log.Fatalf("invalid attendance signing secret: %v", err)
	}
	service := v1.NewService(client)
	acquirer := newAcquirer(cfg.Location)

	snapshots, err := store.NewFileStore(cfg.Store.Dir)
	if err != nil {
		log.Fatal(err)
	}

	var listeners []attendance.Listener
	if cfg.Store.DSN != "" {
		db, err := store.Open(cfg.Store.DSN, store.ParseLogLevel(cfg.Store.LogLevel))
		if err != nil {
			log.Fatal(err)
		}
		journal := store.NewJournal(db, loc)
		if err := journal.Migrate(); err != nil {
			log.Fatalf("failed to migrate punch log: %v", err)
		}
		listeners = append(listeners, journal)
	}
	if cfg.Slack.Token != "" {
		listeners = append(listeners, communication.NewSlack(cfg.Slack.Token, communication.SlackOption{
			InfoChannelID:  cfg.Slack.InfoChannelID,
			ErrorChannelID: cfg.Slack.ErrorChannelID,
		}))
	}

	registry := punch.NewRegistry(snapshots, func(employeeID int64) *attendance.Session {
		return attendance.NewSession(employeeID, service, acquirer,
			attendance.WithBreakType(cfg.Attendance.BreakType),
			attendance.WithListeners(listeners...),
		)
	})

	r := gin.Default()
	r.Use(middlewares.RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(secret))
	punch.Register(protected, registry)

	log.Printf("punchclock listening on %s", cfg.Server.Addr)
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatal(err)
	}
}
