// Package console holds the admin console state and the operations that keep
// it in sync with the catalog API. Every collection is the last full snapshot
// the API returned; nothing is merged or patched locally.
package console

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/AbdulKus/jshop-admin/internal/clients"
	"github.com/AbdulKus/jshop-admin/internal/domain"
	"github.com/AbdulKus/jshop-admin/internal/forms"
	"github.com/AbdulKus/jshop-admin/internal/settings"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultHost = "127.0.0.1"

type SettingsStore interface {
	Get(key string) string
	Set(key, value string) error
}

type Options struct {
	// APIBaseOverride replaces the host-derived default API base.
	APIBaseOverride string
	// APIPort is the port of the host-derived default API base.
	APIPort string
}

type State struct {
	APIBase    string
	Dashboard  *domain.Dashboard
	Categories []domain.Category
	Contacts   []domain.Contact
	Lots       []domain.Lot
	Filter     domain.LotFilter

	EditingLotSlug      string
	EditingCategoryCode string
	EditingContactCode  string

	LotForm      forms.LotForm
	CategoryForm forms.CategoryForm
	ContactForm  forms.ContactForm
	BulkJSON     string

	Status Status
}

type Console struct {
	mu      sync.RWMutex
	state   State
	started bool

	client   clients.CatalogClient
	settings SettingsStore
	opts     Options
	log      *logrus.Entry
}

func New(client clients.CatalogClient, store SettingsStore, opts Options, logger *logrus.Logger) *Console {
	if opts.APIPort == "" {
		opts.APIPort = "8000"
	}
	return &Console{
		state: State{
			Filter:       domain.LotFilter{Category: domain.CategoryAll},
			LotForm:      forms.NewLotForm(),
			CategoryForm: forms.NewCategoryForm(),
			ContactForm:  forms.NewContactForm(),
		},
		client:   client,
		settings: store,
		opts:     opts,
		log:      logger.WithField("component", "console"),
	}
}

// Snapshot returns a copy of the state for rendering. Collections are only
// ever replaced, never modified in place, so sharing their backing arrays is safe.
func (c *Console) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// DefaultAPIBase is the stored API base, else the configured override, else
// the page's own scheme and host on the API port.
func (c *Console) DefaultAPIBase(scheme, host string) string {
	if stored := c.settings.Get(settings.KeyAPIBase); stored != "" {
		return stored
	}
	if c.opts.APIBaseOverride != "" {
		return clients.NormalizeAPIBase(c.opts.APIBaseOverride)
	}

	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}
	hostname = strings.Trim(hostname, "[]")
	if hostname == "" {
		hostname = defaultHost
	}
	if scheme != "https" {
		scheme = "http"
	}
	return scheme + "://" + net.JoinHostPort(hostname, c.opts.APIPort)
}

// Start connects to the default API base the first time a page is served.
func (c *Console) Start(ctx context.Context, scheme, host string) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	base := c.DefaultAPIBase(scheme, host)
	_ = c.Connect(ctx, base, base)
}

// Connect switches to a new API base, persists it and reloads everything.
// An empty raw value falls back to fallback.
func (c *Console) Connect(ctx context.Context, raw, fallback string) error {
	base := clients.NormalizeAPIBase(raw)
	if base == "" {
		base = clients.NormalizeAPIBase(fallback)
	}

	c.client.SetBaseURL(base)
	if err := c.settings.Set(settings.KeyAPIBase, base); err != nil {
		c.log.Warnf("Could not persist API base %s: %v", base, err)
	}

	c.mu.Lock()
	c.state.APIBase = base
	c.started = true
	c.mu.Unlock()

	c.setStatus("Подключение к API...", StatusNone)
	c.log.Infof("Connecting to catalog API at %s", base)

	if err := c.FullReload(ctx); err != nil {
		c.fail("Ошибка API", err)
		return err
	}

	c.ResetLotForm()
	c.ResetCategoryForm()
	c.ResetContactForm()
	c.succeed(fmt.Sprintf("Подключено к %s", base))
	return nil
}

// FullReload fetches dashboard, categories and contacts concurrently, then lots.
func (c *Console) FullReload(ctx context.Context) error {
	if err := c.parallel(ctx, c.refreshDashboard, c.refreshCategories, c.refreshContacts); err != nil {
		return err
	}
	return c.refreshLots(ctx)
}

// parallel runs every refresh to completion and reports the first failure.
// A failing refresh does not cancel its siblings.
func (c *Console) parallel(ctx context.Context, refreshers ...func(context.Context) error) error {
	var g errgroup.Group
	for _, refresh := range refreshers {
		g.Go(func() error { return refresh(ctx) })
	}
	return g.Wait()
}

func (c *Console) refreshDashboard(ctx context.Context) error {
	dashboard, err := c.client.Dashboard(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state.Dashboard = dashboard
	c.mu.Unlock()
	return nil
}

func (c *Console) refreshCategories(ctx context.Context) error {
	categories, err := c.client.ListCategories(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Categories = categories
	if !hasCategory(categories, c.state.Filter.Category) {
		c.state.Filter.Category = domain.CategoryAll
	}
	return nil
}

func (c *Console) refreshContacts(ctx context.Context) error {
	contacts, err := c.client.ListContacts(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state.Contacts = contacts
	c.mu.Unlock()
	return nil
}

func (c *Console) refreshLots(ctx context.Context) error {
	c.mu.RLock()
	filter := c.state.Filter
	c.mu.RUnlock()

	lots, err := c.client.ListLots(ctx, filter)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state.Lots = lots
	c.mu.Unlock()
	return nil
}

func hasCategory(categories []domain.Category, code string) bool {
	if code == "" || code == domain.CategoryAll {
		return true
	}
	for _, category := range categories {
		if category.Code == code {
			return true
		}
	}
	return false
}
