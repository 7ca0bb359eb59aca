// Package classes materializes class literals and resolves super property
// access on top of the runtime object model.
//
// A front end calls DefineClass once per class literal, BindHomeObject for
// every method installed outside a class body that refers to super, and the
// LoadSuper*/StoreSuper* entry points whenever it evaluates super.name.
package classes

import (
	"log/slog"

	"github.com/example/jsclass/access"
	"github.com/example/jsclass/runtime"
)

// Config is fixed when the Core is created.
type Config struct {
	// Gate is consulted for home objects flagged NeedsAccessCheck.
	// Nil allows everything.
	Gate access.Gate
	// Reporter is invoked after a denial. Nil fails closed silently.
	Reporter access.Reporter
	Logger   *slog.Logger
}

// Core holds no state of its own beyond its configuration; every object it
// touches is passed in or created during the call.
type Core struct {
	realm  *runtime.Realm
	gate   access.Gate
	report access.Reporter
	log    *slog.Logger
}

// New returns a Core bound to realm. Unset Config fields take defaults.
func New(realm *runtime.Realm, cfg Config) *Core {
	c := &Core{
		realm:  realm,
		gate:   cfg.Gate,
		report: cfg.Reporter,
		log:    cfg.Logger,
	}
	if c.gate == nil {
		c.gate = access.AllowAll
	}
	if c.report == nil {
		c.report = access.Silent
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Realm returns the realm the core allocates in.
func (c *Core) Realm() *runtime.Realm {
	return c.realm
}
