package manager

import (
	"net/url"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/gcristian/sqoop/pkg/config"
	"github.com/gcristian/sqoop/pkg/errors"
	"github.com/gcristian/sqoop/pkg/logger"
)

// VendorFactory creates a vendor instance for a job configuration.
type VendorFactory func(cfg *config.JobConfig) (Vendor, error)

// Registry maps connect-string schemes to vendor factories. Vendor packages
// register themselves in init and are pulled in with blank imports.
type Registry struct {
	factories map[string]VendorFactory
	mu        sync.RWMutex
	logger    *zap.Logger
}

var globalRegistry = NewRegistry()

// NewRegistry creates an empty vendor registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]VendorFactory),
		logger:    logger.With(zap.String("component", "vendor_registry")),
	}
}

// Register binds a connect-string scheme to a factory.
func (r *Registry) Register(scheme string, factory VendorFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[scheme]; exists {
		return errors.Newf(errors.ErrorTypeConfig, "vendor scheme %s already registered", scheme)
	}

	r.factories[scheme] = factory
	r.logger.Info("vendor registered", zap.String("scheme", scheme))
	return nil
}

// Create instantiates the vendor for the configuration's connect string.
func (r *Registry) Create(cfg *config.JobConfig) (Vendor, error) {
	u, err := url.Parse(cfg.Connection.URL)
	if err != nil || u.Scheme == "" {
		return nil, errors.Newf(errors.ErrorTypeConfig, "connect string %q has no recognizable scheme", cfg.Connection.URL)
	}

	r.mu.RLock()
	factory, exists := r.factories[u.Scheme]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrorTypeConfig, "no vendor registered for scheme %s", u.Scheme)
	}

	vendor, err := factory(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to create vendor for scheme "+u.Scheme)
	}

	return vendor, nil
}

// Schemes returns the registered schemes, sorted.
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemes := make([]string, 0, len(r.factories))
	for s := range r.factories {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

// Register registers a vendor factory with the global registry.
func Register(scheme string, factory VendorFactory) error {
	return globalRegistry.Register(scheme, factory)
}

// CreateVendor resolves the vendor for a job configuration from the global
// registry.
func CreateVendor(cfg *config.JobConfig) (Vendor, error) {
	return globalRegistry.Create(cfg)
}

// Schemes lists the schemes registered with the global registry.
func Schemes() []string {
	return globalRegistry.Schemes()
}
