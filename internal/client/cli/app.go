package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	_ "modernc.org/sqlite"

	"github.com/johnbekele/yohans-blog/internal/client/api"
	"github.com/johnbekele/yohans-blog/internal/client/config"
	"github.com/johnbekele/yohans-blog/internal/client/credstore"
	"github.com/johnbekele/yohans-blog/internal/client/session"
	"github.com/johnbekele/yohans-blog/internal/logging"
)

// App wires configuration, the credential store, the API client and the
// session manager behind the interactive REPL.
type App struct {
	config  *config.Config
	db      *sql.DB
	store   *credstore.Failover
	api     *api.Client
	session *session.Manager
	reader  *bufio.Reader
	log     logging.Logger
}

// NewApp builds the full client stack: the local credential database
// (degrading to in-memory storage when it cannot be opened), the API client
// with the refreshing gateway, and the session manager hydrated from
// whatever session the previous run left behind.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) *App {
	var store *credstore.Failover
	var db *sql.DB

	db, err := credstore.Open(ctx, c.DatabaseDSN)
	if err != nil {
		log.Warn(ctx, "credential database unavailable, session will not persist", "error", err.Error())
		store = credstore.NewFailover(credstore.NewMemory(), log)
	} else {
		store = credstore.NewFailover(credstore.NewSQLite(db), log)
	}

	apiClient := api.New(c.APIBaseURL, store, log, api.WithTimeout(c.RequestTimeout))

	manager := session.NewManager(apiClient, store, log)
	manager.Init(ctx)

	return &App{
		config:  c,
		db:      db,
		store:   store,
		api:     apiClient,
		session: manager,
		reader:  bufio.NewReader(os.Stdin),
		log:     log,
	}
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the credential database handle.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) guard(adminOnly bool) session.GuardDecision {
	return a.session.Guard(adminOnly)
}
