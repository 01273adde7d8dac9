package setup

import (
	"context"
	"html/template"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/hanzawa-dev/gobbs/internal/config"
	"github.com/hanzawa-dev/gobbs/internal/handler"
	"github.com/hanzawa-dev/gobbs/internal/markdown"
	"github.com/hanzawa-dev/gobbs/internal/service"
	"github.com/hanzawa-dev/gobbs/internal/session"
	"github.com/hanzawa-dev/gobbs/internal/storage/pg"
	"github.com/hanzawa-dev/gobbs/internal/validation"
)

const (
	baseTemplate = "base.html"

	defaultTemplatesPath   = "templates"
	defaultSessionTTL      = 24 * time.Hour
	defaultSessionGCPeriod = 10 * time.Minute
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config     *config.Config
	Storage    *pg.Storage
	Sessions   *session.Store
	Handler    *handler.Handler
	CancelFunc context.CancelFunc
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	ctx, cancel := context.WithCancel(context.Background())

	storage, err := pg.New(cfg)
	if err != nil {
		cancel()
		return nil, err
	}

	sessions := session.NewStore(cfg.Public.SecureCookies)
	ttl := time.Duration(cfg.Public.SessionTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	gcPeriod := time.Duration(cfg.Public.SessionGCIntervalSeconds) * time.Second
	if gcPeriod <= 0 {
		gcPeriod = defaultSessionGCPeriod
	}
	sessions.StartGC(ctx, gcPeriod, ttl)

	tmplPath := cfg.Public.TemplatesPath
	if tmplPath == "" {
		tmplPath = defaultTemplatesPath
	}
	templates := mustLoadTemplates(tmplPath)

	posts := service.NewPost(storage, storage)
	boards := service.NewBoard(storage)

	h := handler.New(templates, posts, boards, validation.NewPostValidator(), markdown.New())

	return &Dependencies{
		Config:     cfg,
		Storage:    storage,
		Sessions:   sessions,
		Handler:    h,
		CancelFunc: cancel,
	}, nil
}

func sub(a, b int) int { return a - b }
func add(a, b int) int { return a + b }

// seq is used by pagination links: seq 0 (n-1) -> [0..n-1]
func seq(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func mustLoadTemplates(tmplPath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) == ".html" && f.Name() != baseTemplate {
			templates[f.Name()] = template.Must(template.New(baseTemplate).Funcs(
				template.FuncMap{
					"sub": sub,
					"add": add,
					"seq": seq,
				},
			).ParseFiles(
				path.Join(tmplPath, baseTemplate),
				path.Join(tmplPath, f.Name()),
			))
		}
	}
	return templates
}
