package serverapp

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/AutumnThyme/PumpkinSnatcher/internal/config"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/httpmw"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/tracker"
	staticfiles "github.com/AutumnThyme/PumpkinSnatcher/static"
)

type Options struct {
	Config        *config.Config
	Snapshot      tracker.Snapshot
	StaticDir     string
	UseDiskStatic bool
	Logger        *log.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	if err := os.MkdirAll(opts.Config.Data.Dir, 0o755); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	var staticFS fs.FS = staticfiles.EmbeddedFS()
	if opts.UseDiskStatic {
		staticFS = os.DirFS(opts.StaticDir)
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		b, err := fs.ReadFile(staticFS, "index.html")
		if err != nil {
			http.Error(w, "index page unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(b)
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "pumpkinsnatcher",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, err := os.Stat(opts.Config.Data.Dir); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "data directory unavailable",
			})
			return
		}
		if opts.Snapshot.FetchedAt.IsZero() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "no fetched snapshot",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":       true,
			"service":  "pumpkinsnatcher",
			"time":     time.Now().UTC().Format(time.RFC3339),
			"pumpkins": len(opts.Snapshot.Data),
		})
	})

	th := tracker.NewHandler(opts.Snapshot, opts.Config, opts.Logger)
	mux.HandleFunc("/api/state", th.State)
	mux.HandleFunc("/get_initial_data", th.InitialData)
	mux.HandleFunc("/update_pumpkins", th.UpdatePumpkins)

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PUMPKINSNATCHER_DEV_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
