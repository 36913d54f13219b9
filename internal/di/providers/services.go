package providers

import (
	"github.com/samber/do/v2"

	"github.com/rememdia/rememdia-server/internal/config"
	"github.com/rememdia/rememdia-server/internal/fetcher"
	"github.com/rememdia/rememdia-server/internal/logger"
	"github.com/rememdia/rememdia-server/internal/notify"
	"github.com/rememdia/rememdia-server/internal/service"
	"github.com/rememdia/rememdia-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideFetcher provides the link metadata fetcher.
func ProvideFetcher(i do.Injector) (fetcher.Fetcher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return fetcher.NewClient(cfg.Fetch.Timeout, log.Logger), nil
}

// ProvideNotifier provides the notification sink. Without a configured
// webhook URL notifications are discarded.
func ProvideNotifier(i do.Injector) (notify.Notifier, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Notify.WebhookURL == "" {
		log.Info("No webhook URL configured, notifications disabled")
		return notify.NewNoop(log.Logger), nil
	}

	return notify.NewWebhook(cfg.Notify.WebhookURL, log.Logger), nil
}

// ProvideNoteService provides the note service.
func ProvideNoteService(i do.Injector) (*service.NoteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNoteService(storeHandle.Store, v, log.Logger), nil
}

// ProvideLinkService provides the link service.
func ProvideLinkService(i do.Injector) (*service.LinkService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	f := do.MustInvoke[fetcher.Fetcher](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLinkService(storeHandle.Store, f, v, log.Logger), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, log.Logger), nil
}
