package setup

import (
	"fmt"

	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"taskboard/go-backend/internal/adapters/metrics"
	"taskboard/go-backend/internal/adapters/persistence"
	"taskboard/go-backend/internal/application/logging"
	"taskboard/go-backend/internal/application/mediator"
	projectCommands "taskboard/go-backend/internal/application/projects/commands"
	projectListeners "taskboard/go-backend/internal/application/projects/listeners"
	"taskboard/go-backend/internal/application/tasks"
	taskCommands "taskboard/go-backend/internal/application/tasks/commands"
	taskListeners "taskboard/go-backend/internal/application/tasks/listeners"
	taskQueries "taskboard/go-backend/internal/application/tasks/queries"
	"taskboard/go-backend/internal/domain/shared"
	"taskboard/go-backend/internal/infrastructure/config"
	"taskboard/go-backend/internal/infrastructure/database"
)

// Dependencies holds everything the wiring needs to build the pipeline
type Dependencies struct {
	DB       *gorm.DB
	Logger   logging.Logger
	TxConfig config.TransactionConfig

	// Metrics enables the telemetry middleware when non-nil
	Metrics *metrics.RequestMetricsCollector

	// Limiter enables the throttle middleware when non-nil
	Limiter *rate.Limiter

	// Clock defaults to the real clock when nil
	Clock shared.Clock
}

// BuildMediator wires the whole dispatch pipeline: repositories, unit-of-work
// factory, every handler/validator/listener binding, and the canonical
// middleware chain (Logging → Validation → Telemetry → handler). This is the
// single registration source; the registry is read-only once it returns.
func BuildMediator(deps Dependencies) (mediator.Mediator, error) {
	if deps.Clock == nil {
		deps.Clock = shared.NewRealClock()
	}

	registry := mediator.NewRegistry()

	middleware := []mediator.Middleware{
		mediator.LoggingMiddleware(deps.Logger),
		mediator.ValidationMiddleware(registry),
		metrics.TelemetryMiddleware(deps.Metrics),
	}
	if deps.Limiter != nil {
		middleware = append(middleware, mediator.ThrottleMiddleware(deps.Limiter))
	}

	m := mediator.New(registry, deps.Logger, middleware...)

	uowFactory := database.NewUnitOfWorkFactory(deps.DB, deps.TxConfig)
	taskRepo := persistence.NewGormTaskRepository(deps.DB)
	projectRepo := persistence.NewGormProjectRepository(deps.DB)
	auditRepo := persistence.NewGormAuditRepository(deps.DB)

	structValidator := mediator.NewStructValidator()
	auditListener := taskListeners.NewAuditListener(auditRepo)
	statsListener := projectListeners.NewStatsListener(uowFactory, projectRepo)

	bindings := []struct {
		name string
		bind func() error
	}{
		{"CreateProjectCommand handler", func() error {
			return mediator.RegisterHandler[*projectCommands.CreateProjectCommand](registry,
				projectCommands.NewCreateProjectHandler(uowFactory, projectRepo, deps.Clock))
		}},
		{"CreateProjectCommand validator", func() error {
			return mediator.RegisterValidator[*projectCommands.CreateProjectCommand](registry, structValidator)
		}},
		{"CreateTaskCommand handler", func() error {
			return mediator.RegisterHandler[*taskCommands.CreateTaskCommand](registry,
				taskCommands.NewCreateTaskHandler(uowFactory, taskRepo, projectRepo, m, deps.Clock))
		}},
		{"CreateTaskCommand validator", func() error {
			return mediator.RegisterValidator[*taskCommands.CreateTaskCommand](registry, structValidator)
		}},
		{"CompleteTaskCommand handler", func() error {
			return mediator.RegisterHandler[*taskCommands.CompleteTaskCommand](registry,
				taskCommands.NewCompleteTaskHandler(uowFactory, taskRepo, m, deps.Clock))
		}},
		{"CompleteTaskCommand validator", func() error {
			return mediator.RegisterValidator[*taskCommands.CompleteTaskCommand](registry, structValidator)
		}},
		{"GetTaskQuery handler", func() error {
			return mediator.RegisterHandler[*taskQueries.GetTaskQuery](registry,
				taskQueries.NewGetTaskHandler(taskRepo))
		}},
		{"GetTaskQuery validator", func() error {
			return mediator.RegisterValidator[*taskQueries.GetTaskQuery](registry, structValidator)
		}},
		{"ListTasksQuery handler", func() error {
			return mediator.RegisterHandler[*taskQueries.ListTasksQuery](registry,
				taskQueries.NewListTasksHandler(taskRepo))
		}},
		{"ListTasksQuery validator", func() error {
			return mediator.RegisterValidator[*taskQueries.ListTasksQuery](registry, structValidator)
		}},
		{"TaskCreated audit listener", func() error {
			return mediator.RegisterListener[*tasks.TaskCreatedNotification](registry, auditListener)
		}},
		{"TaskCompleted audit listener", func() error {
			return mediator.RegisterListener[*tasks.TaskCompletedNotification](registry, auditListener)
		}},
		{"TaskCreated stats listener", func() error {
			return mediator.RegisterListener[*tasks.TaskCreatedNotification](registry, statsListener)
		}},
		{"TaskCompleted stats listener", func() error {
			return mediator.RegisterListener[*tasks.TaskCompletedNotification](registry, statsListener)
		}},
	}

	for _, b := range bindings {
		if err := b.bind(); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", b.name, err)
		}
	}

	return m, nil
}
