package main

import (
	"os"

	httpServices "tour-booking/httpServices/alerts"
	"tour-booking/logger"
	"tour-booking/services/notifier"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

// Runs the notification worker: go run ./tools/worker
func main() {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		logger.Fatal("REDIS_ADDR is required to run the notification worker")
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				notifier.NotificationQueue: 1,
			},
		},
	)

	var sender notifier.AlertSender = notifier.LogAlertSender{}
	if gateway := os.Getenv("ALERT_GATEWAY_URL"); gateway != "" {
		sender = httpServices.NewClient(gateway, os.Getenv("ALERT_GATEWAY_API_KEY"))
		logger.Info("Alerts go to " + gateway)
	}

	logger.Success("Notification worker listening on " + redisAddr)
	if err := srv.Run(notifier.NewServeMux(sender)); err != nil {
		logger.Fatal("Notification worker stopped: " + err.Error())
	}
}
