package router

import (
	"database/sql"
	"net/http"
	"strings"

	_ "pet-adoption/docs" // registra el documento OpenAPI en swag

	"pet-adoption/internal/adapters/storage/flatfile"
	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // puede ser nil

	// Selección de storage, en este orden:
	// Repo explícito > DB (Postgres) > DataFile (CSV) > in-memory.
	Repo     pets.Repository
	DB       *sql.DB
	DataFile string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	petsSvc := pets.NewService(selectRepo(opts, log), pets.WithGeneratedIDs())
	pets.RegisterRoutes(r, petsSvc)

	return r
}

func selectRepo(opts Options, log logger.Logger) pets.Repository {
	if opts.Repo != nil {
		return opts.Repo
	}
	if opts.DB != nil {
		log.Info("using postgres storage", nil)
		return pg.NewPetsRepo(opts.DB)
	}
	if strings.TrimSpace(opts.DataFile) != "" {
		store, err := flatfile.New(opts.DataFile, log)
		if err == nil {
			log.Info("using flat file storage", map[string]any{"path": opts.DataFile})
			return store
		}
		log.Warn("flat file storage unavailable", map[string]any{"error": err.Error()})
	}
	log.Warn("using in-memory storage (data is not persisted)", nil)
	return mem.NewPetRepo()
}
