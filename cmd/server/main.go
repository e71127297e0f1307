// Command server exposes the mukhtar analysis engine as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/analyze?word=<word>&class=noun|verb
//	GET  /api/convert?pattern=<pattern>[&target=<form>]
//	GET  /api/cache/stats
//	POST /api/cache/clear
//	POST /api/reload
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/cors"

	"github.com/mukhtar-sarfi/mukhtar"
	"github.com/mukhtar-sarfi/mukhtar/loader"
)

// config is read from the environment, with flags taking precedence.
type config struct {
	Addr      string `env:"MUKHTAR_ADDR" env-default:":8080"`
	DataDir   string `env:"MUKHTAR_DATA" env-default:"data"`
	CacheSize int    `env:"MUKHTAR_CACHE_SIZE" env-default:"16384"`
	Origins   string `env:"MUKHTAR_CORS_ORIGINS" env-default:"*"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type convertResponse struct {
	Pattern string   `json:"pattern"`
	Target  string   `json:"target,omitempty"`
	Forms   []string `json:"forms"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func parseClass(name string) (mukhtar.WordClass, bool) {
	switch name {
	case "noun":
		return mukhtar.Noun, true
	case "verb":
		return mukhtar.Verb, true
	default:
		return 0, false
	}
}

func handleAnalyze(eng *mukhtar.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		class, ok := parseClass(r.URL.Query().Get("class"))
		if !ok {
			writeError(w, http.StatusBadRequest, "class must be 'noun' or 'verb'")
			return
		}

		result, err := eng.Analyze(word, class)
		if errors.Is(err, mukhtar.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		status := http.StatusOK
		if !result.Matched {
			status = http.StatusNotFound
		}
		writeJSON(w, status, result)
	}
}

func handleConvert(eng *mukhtar.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		pattern := r.URL.Query().Get("pattern")
		if pattern == "" {
			writeError(w, http.StatusBadRequest, "missing 'pattern' query parameter")
			return
		}
		target := r.URL.Query().Get("target")

		forms := eng.ConvertPattern(pattern, target)
		status := http.StatusOK
		if len(forms) == 0 {
			// Not convertible is an expected outcome, reported as an
			// empty set with 404 rather than an error body.
			status = http.StatusNotFound
			forms = []string{}
		}
		writeJSON(w, status, convertResponse{Pattern: pattern, Target: target, Forms: forms})
	}
}

func handleCacheStats(eng *mukhtar.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(w, http.StatusOK, eng.CacheStats())
	}
}

func handleCacheClear(eng *mukhtar.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		eng.ClearCache()
		writeJSON(w, http.StatusOK, statusResponse{Status: "cleared"})
	}
}

// handleReload rebuilds the lexicon from the data directory and swaps it in.
// A failed load leaves the previously active lexicon in effect.
func handleReload(eng *mukhtar.Engine, dataDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		lex, err := loader.LoadDir(dataDir)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		eng.Reload(lex)
		log.Printf("lexicon reloaded: %s", lex.Stats())
		writeJSON(w, http.StatusOK, statusResponse{Status: "reloaded"})
	}
}

func main() {
	var cfg config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("read config: %v", err)
	}
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "path to lexicon data directory")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.Parse()

	log.Printf("loading lexicon from %s …", cfg.DataDir)
	lex, err := loader.LoadDir(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to load lexicon: %v", err)
	}
	log.Printf("lexicon loaded: %s", lex.Stats())

	eng := mukhtar.NewEngine(lex, mukhtar.WithCacheSize(cfg.CacheSize))

	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", handleAnalyze(eng))
	mux.HandleFunc("/api/convert", handleConvert(eng))
	mux.HandleFunc("/api/cache/stats", handleCacheStats(eng))
	mux.HandleFunc("/api/cache/clear", handleCacheClear(eng))
	mux.HandleFunc("/api/reload", handleReload(eng, cfg.DataDir))

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.Origins},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(mux)

	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
