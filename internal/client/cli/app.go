package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"

	"pubkeeper/internal/client/api"
	"pubkeeper/internal/client/config"
	"pubkeeper/internal/client/publications"
	"pubkeeper/internal/client/repositories/metadata"
	"pubkeeper/internal/client/session"
	"pubkeeper/internal/client/storage"
	"pubkeeper/internal/logging"
)

// App wires the pubkeeper CLI together: config, logging, the session store,
// the REST client, the list controller and the interactive forms.
type App struct {
	config     *config.Config
	log        logging.Logger
	session    *session.Store
	client     api.Client
	controller *publications.Controller
	notifier   *publications.Notifier
	reader     *bufio.Reader

	// userEmail is read by the REPL prompt and written both by auth
	// commands and by the session watcher goroutine.
	emailMu   sync.Mutex
	userEmail string

	closeDB func() error
}

func (a *App) email() string {
	a.emailMu.Lock()
	defer a.emailMu.Unlock()
	return a.userEmail
}

func (a *App) setEmail(email string) {
	a.emailMu.Lock()
	defer a.emailMu.Unlock()
	a.userEmail = email
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.New(c.Debug, os.Stderr)

	db, err := storage.Open(ctx, c.DataFile)
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	sess := session.NewStore(metadata.NewSQLiteRepository(db), log)

	client, err := api.NewHTTPClient(c.BackendURL, c.RequestTimeout, sess.Token)
	if err != nil {
		db.Close()
		return nil, err
	}

	notifier := publications.NewNotifier(publications.DefaultDismissAfter)
	controller := publications.NewController(client, notifier, log)

	app := &App{
		config:     c,
		log:        log,
		session:    sess,
		client:     client,
		controller: controller,
		notifier:   notifier,
		reader:     bufio.NewReader(os.Stdin),
		closeDB:    db.Close,
	}

	app.wireEvents()
	return app, nil
}

// wireEvents subscribes the terminal to notification banners and to session
// transitions made outside this process.
func (a *App) wireEvents() {
	a.notifier.Subscribe(func(ev publications.NotificationEvent) {
		if ev.Dismissed {
			return
		}
		printlnFn(fmt.Sprintf("[%s] %s", ev.Kind, ev.Message))
	})

	// External logout (another process cleared the persisted token).
	a.session.Subscribe(func(ev session.Event) {
		if ev.External && !ev.LoggedIn {
			a.setEmail("")
			printlnFn("Session ended in another window, logging out")
		}
	})
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}

// Run restores any persisted session, starts the session watcher and enters
// the REPL. Blocks until the user exits or ctx is canceled.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.closeDB() }()

	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "could not restore session", "err", err)
	}
	if a.isLoggedIn() {
		a.fetchIdentity(ctx)
		_ = a.controller.Load(ctx)
	}

	go a.session.Watch(ctx, a.config.SessionPollInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// status renders the prompt decoration: the user's email when known.
func (a *App) status() string {
	if !a.isLoggedIn() {
		return ""
	}
	if email := a.email(); email != "" {
		return fmt.Sprintf("(%s)", email)
	}
	return "(logged in)"
}

// fetchIdentity resolves the account behind the restored token. Failure is
// non-fatal; the prompt just stays anonymous.
func (a *App) fetchIdentity(ctx context.Context) {
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		a.log.Debug(ctx, "could not fetch current user", "err", err)
		return
	}
	a.setEmail(user.Email)
}
