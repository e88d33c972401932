// Package app wires the credential store, the session and the task cache
// into the explicit application state the commands operate on.
package app

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"todo/internal/auth"
	"todo/internal/notify"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/taskcache"
)

// Options configures an App. Nil fields get no-op defaults.
type Options struct {
	Notifier  notify.Notifier
	Confirmer taskcache.Confirmer
	Renderer  taskcache.Renderer
	Log       *logrus.Entry
}

// App is the state of one client process.
type App struct {
	Creds   *auth.CredentialStore
	Session *auth.Session
	Tasks   *taskcache.Cache
	Service service.Service

	notifier notify.Notifier
	log      *logrus.Entry
}

// New creates an App persisting identities in st and talking to svc.
func New(st store.Store, svc service.Service, opts Options) *App {
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard
	}
	if opts.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Log = logrus.NewEntry(l)
	}

	session := auth.NewSession(st)
	session.SetLog(opts.Log)
	return &App{
		Creds:   auth.NewCredentialStore(st),
		Session: session,
		Service: svc,
		Tasks: taskcache.New(svc, session, taskcache.Options{
			Notifier:  opts.Notifier,
			Confirmer: opts.Confirmer,
			Renderer:  opts.Renderer,
			Log:       opts.Log,
		}),
		notifier: opts.Notifier,
		log:      opts.Log.WithField("component", "app"),
	}
}

// Register creates a new identity. It does not log in.
func (a *App) Register(username, email, password, confirm string) (auth.Identity, error) {
	id, err := a.Creds.Register(username, email, password, confirm)
	if err != nil {
		a.log.WithError(err).WithField("username", username).Debug("registration rejected")
		notify.Fail(a.notifier, err.Error())
		return auth.Identity{}, err
	}
	notify.OK(a.notifier, "registered "+id.Username+", you can now log in")
	return id, nil
}

// Login authenticates, persists the session and loads the user's tasks.
// A failed load keeps the session; the load error is returned.
func (a *App) Login(ctx context.Context, username, password string) (auth.Identity, error) {
	id, err := a.Creds.Authenticate(username, password)
	if err != nil {
		a.log.WithError(err).WithField("username", username).Debug("login rejected")
		notify.Fail(a.notifier, err.Error())
		return auth.Identity{}, err
	}
	if err := a.Session.Set(id); err != nil {
		a.log.WithError(err).Warn("could not persist session")
		notify.Fail(a.notifier, "could not save session: "+err.Error())
		return auth.Identity{}, err
	}
	notify.OK(a.notifier, "logged in as "+id.Username)
	return id, a.Tasks.LoadAll(ctx)
}

// Logout forgets the session and empties the cache. No request is made.
func (a *App) Logout() error {
	if err := a.Session.Clear(); err != nil {
		a.log.WithError(err).Warn("could not remove session")
		notify.Fail(a.notifier, "could not remove session: "+err.Error())
		return err
	}
	a.Tasks.Clear()
	notify.Info(a.notifier, "logged out")
	return nil
}

// Restore re-establishes a persisted session and loads its tasks.
// It reports false when no session is stored.
func (a *App) Restore(ctx context.Context) (bool, error) {
	id, ok, err := a.Session.Restore()
	if err != nil {
		a.log.WithError(err).Warn("could not read session")
		notify.Fail(a.notifier, "could not read session: "+err.Error())
		return false, err
	}
	if !ok {
		return false, nil
	}
	a.log.WithField("username", id.Username).Debug("session restored")
	return true, a.Tasks.LoadAll(ctx)
}
