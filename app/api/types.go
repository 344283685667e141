package api

import (
	"time"

	"github.com/debtofwar/tracker/app/database"
	"github.com/debtofwar/tracker/app/feed"
	"github.com/debtofwar/tracker/app/store"
	"github.com/debtofwar/tracker/app/tasks"
)

type Handler struct {
	store     *store.Store
	sources   []feed.Source
	fetcher   *feed.Fetcher
	eventRepo database.EventRepository
	runRepo   database.RunRepository
	scheduler tasks.TaskSchedulerInterface
	startedAt time.Time
}
