package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"notes-hub/middleware"
	"notes-hub/store"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

// NotesAPI serves users, folders and notes. Writes go through the typed
// stores; single-row and folder-scoped reads go through Rows.
type NotesAPI struct {
	Users   store.UserStore
	Folders store.FolderStore
	Notes   store.NoteStore
	Rows    store.Reader
	DB      Pinger

	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	Log zerolog.Logger
}

func baseRouter(log zerolog.Logger, db Pinger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS)

	r.Get("/healthz", healthz(db))
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (a *NotesAPI) Routes() http.Handler {
	r := baseRouter(a.Log, a.DB)

	r.Post("/api/register", a.Register)
	r.Post("/api/login", a.Login)
	r.Post("/api/refresh-token", a.RefreshToken)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(a.Secret))

		r.Get("/notes/", a.ListNotes)
		r.Post("/notes/", a.CreateNote)
		r.Get("/notes/{id}/", a.GetNote)
		r.Put("/notes/{id}/", a.UpdateNote)
		r.Delete("/notes/{id}/", a.DeleteNote)

		r.Get("/folders/", a.ListFolders)
		r.Post("/folders/", a.CreateFolder)
		r.Get("/folders/{id}/", a.GetFolder)
		r.Put("/folders/{id}/", a.UpdateFolder)
		r.Delete("/folders/{id}/", a.DeleteFolder)
		r.Get("/folders/{id}/notes/", a.ListFolderNotes)
	})
	return r
}

func (c *CompanyAPI) Routes() http.Handler {
	r := baseRouter(c.Log, c.DB)

	r.Get("/data/", c.ListCompanies)
	r.Post("/data/", c.CreateCompany)
	r.Put("/data_update/{id}/", c.UpdateCompany)
	r.Delete("/data_update/{id}/", c.DeleteCompany)
	return r
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
