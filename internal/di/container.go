// Package di provides dependency injection configuration for the rememdia server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/rememdia/rememdia-server/internal/config"
	"github.com/rememdia/rememdia-server/internal/di/providers"
	"github.com/rememdia/rememdia-server/internal/fetcher"
	"github.com/rememdia/rememdia-server/internal/logger"
	"github.com/rememdia/rememdia-server/internal/notify"
	"github.com/rememdia/rememdia-server/internal/service"
	"github.com/rememdia/rememdia-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Collaborators
	do.Provide(injector, providers.ProvideFetcher)
	do.Provide(injector, providers.ProvideNotifier)

	// Business services
	do.Provide(injector, providers.ProvideNoteService)
	do.Provide(injector, providers.ProvideLinkService)
	do.Provide(injector, providers.ProvideTagService)

	// Workers
	do.Provide(injector, providers.ProvideScheduler)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[fetcher.Fetcher](injector)
	_ = do.MustInvoke[notify.Notifier](injector)

	// Business services
	_ = do.MustInvoke[*service.NoteService](injector)
	_ = do.MustInvoke[*service.LinkService](injector)
	_ = do.MustInvoke[*service.TagService](injector)

	// Workers
	_ = do.MustInvoke[*providers.SchedulerHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
