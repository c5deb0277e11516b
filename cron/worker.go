package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"mindease/config"
	therapistRepo "mindease/database/repository/therapist"
	"mindease/services/scheduling"
)

const TypeScheduleRefresh = "schedule:refresh"

// ScheduleRefreshPayload asks the worker to re-materialize one therapist's
// rolling availability window.
type ScheduleRefreshPayload struct {
	TherapistID string `json:"therapistId"`
	Days        int    `json:"days"`
}

// InitScheduleWorker runs the async worker in background. It keeps every
// therapist's schedule materialized over a rolling horizon; refresh runs are
// idempotent, so re-delivery is harmless.
func InitScheduleWorker(svc scheduling.Service, therapists therapistRepo.Repository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeScheduleRefresh, handleScheduleRefresh(svc))

	go func() {
		log.Println("[ScheduleWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[ScheduleWorker] failed to start worker: %v", err)
		}
	}()

	go enqueueHorizonRefreshes(asynq.NewClient(redisOpts), therapists)
}

func handleScheduleRefresh(svc scheduling.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ScheduleRefreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ScheduleWorker] invalid payload: %v", err)
			return err
		}
		if p.Days <= 0 {
			p.Days = config.AppConfig.ScheduleHorizonDays
		}

		result, err := svc.GenerateSlots(ctx, p.TherapistID, time.Now(), p.Days)
		if err != nil {
			log.Printf("[ScheduleWorker] refresh failed for %s: %v", p.TherapistID, err)
			return err
		}
		log.Printf("[ScheduleWorker] refreshed %s: inserted=%d modified=%d", p.TherapistID, result.InsertedCount, result.ModifiedCount)
		return nil
	}
}

// enqueueHorizonRefreshes queues one refresh task per therapist at startup
// and then once a day, keeping the rolling window extended.
func enqueueHorizonRefreshes(client *asynq.Client, therapists therapistRepo.Repository) {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		ids, err := therapists.ListIDs(ctx)
		cancel()
		if err != nil {
			log.Printf("[ScheduleWorker] failed to list therapists: %v", err)
		}
		for _, id := range ids {
			payload, _ := json.Marshal(ScheduleRefreshPayload{TherapistID: id, Days: config.AppConfig.ScheduleHorizonDays})
			if _, err := client.Enqueue(asynq.NewTask(TypeScheduleRefresh, payload)); err != nil {
				log.Printf("[ScheduleWorker] failed to enqueue refresh for %s: %v", id, err)
			}
		}
		time.Sleep(24 * time.Hour)
	}
}
