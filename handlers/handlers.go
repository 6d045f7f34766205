package handlers

import (
	"github.com/yasshp/Mr-System/database"
	"github.com/yasshp/Mr-System/services"
)

var (
	DB              *database.DB
	scheduleService *services.ScheduleService
	generator       *services.GeneratorService
)

// InitializeHandlers wires the shared database handle and services into the
// handler package.
func InitializeHandlers(db *database.DB) {
	DB = db
	scheduleService = services.NewScheduleService(db.DB)
	generator = services.NewGeneratorService(db.DB)
}
