package assets

import (
	"turntable/internal/logger"
	"turntable/internal/sockets"
)

// Library holds the assets that finished loading. It is owned by the main loop; the
// Loader only hands results over through Drain.
type Library struct {
	primary string
	assets  map[string]*Asset
	sockets *sockets.Registry
	log     logger.Logger
}

// NewLibrary returns an empty library whose primary object is the asset with id primary.
func NewLibrary(primary string, reg *sockets.Registry, log logger.Logger) *Library {
	if reg == nil {
		reg = sockets.New()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Library{
		primary: primary,
		assets:  make(map[string]*Asset),
		sockets: reg,
		log:     log.WithField("component", "assets"),
	}
}

// Put stores a loaded asset and registers its sockets, replacing any earlier load of
// the same id.
func (l *Library) Put(a *Asset) {
	l.assets[a.ID] = a
	n := l.sockets.Collect(a.Node, a.ID)
	l.log.Infof("loaded %s (%d sockets, radius %.3f)", a.ID, n, a.Meta.BoundingRadius)
}

// Remove forgets an asset and its sockets.
func (l *Library) Remove(id string) {
	delete(l.assets, id)
	l.sockets.Remove(id)
}

// Asset returns a loaded asset.
func (l *Library) Asset(id string) (*Asset, bool) {
	a, ok := l.assets[id]
	return a, ok
}

// Primary returns the primary asset once it has loaded.
func (l *Library) Primary() (*Asset, bool) {
	return l.Asset(l.primary)
}

// PrimaryID is the id of the primary asset.
func (l *Library) PrimaryID() string {
	return l.primary
}

// Loaded reports whether id has finished loading.
func (l *Library) Loaded(id string) bool {
	_, ok := l.assets[id]
	return ok
}

// Sockets is the registry the library registers into.
func (l *Library) Sockets() *sockets.Registry {
	return l.sockets
}
