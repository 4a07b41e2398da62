package main

import (
	"context"
	"log"
	"os"

	"axiapac.com/attendance/config"
	"axiapac.com/attendance/infrastructure/communication"
	"axiapac.com/attendance/infrastructure/devops"
	"axiapac.com/attendance/infrastructure/filesystem"
	"axiapac.com/attendance/lambdas/punchexport/export"
	"axiapac.com/attendance/store"
	"axiapac.com/attendance/utils"
	"github.com/aws/aws-lambda-go/lambda"
)

func loadConfig(ctx context.Context) (*config.Config, error) {
	if param := os.Getenv("CONFIG_PARAMETER"); param != "" {
		return devops.LoadConfig(ctx, param)
	}
	return config.Load(os.Getenv("CONFIG_FILE"))
}

func main() {
	ctx := context.Background()
	cfg, err := loadConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	loc, err := utils.LoadLocation(cfg.Store.TimeZone)
	if err != nil {
		log.Fatal(err)
	}

	db, err := store.Open(cfg.Store.DSN, store.ParseLogLevel(cfg.Store.LogLevel))
	if err != nil {
		log.Fatal(err)
	}

	fs, err := filesystem.NewS3FileSystem(ctx, cfg.Export.Bucket)
	if err != nil {
		log.Fatal(err)
	}

	slack := communication.NewSlack(cfg.Slack.Token, communication.SlackOption{
		InfoChannelID:  cfg.Slack.InfoChannelID,
		ErrorChannelID: cfg.Slack.ErrorChannelID,
	})

	exporter := &export.Exporter{
		Source: store.NewJournal(db, loc),
		Sink:   fs,
		Prefix: cfg.Export.Prefix,
		Loc:    loc,
	}

	lambda.Start(func(ctx context.Context, ev export.Event) (export.Result, error) {
		res, err := exporter.Run(ctx, ev)
		if err != nil {
			log.Printf("punchexport: %v", err)
			if serr := slack.Error(ctx, "attendance export failed: "+err.Error()); serr != nil {
				log.Printf("punchexport: %v", serr)
			}
			return res, err
		}
		log.Printf("punchexport: wrote %d rows to %s", res.Rows, res.Key)
		if serr := slack.Info(ctx, "attendance export written to "+res.Key); serr != nil {
			log.Printf("punchexport: %v", serr)
		}
		return res, nil
	})
}
