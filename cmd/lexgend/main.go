/*
Lexgend runs lexgen's regex-to-DFA compiler as an HTTP service.

Usage:

	lexgend [flags]

The flags are:

	-a, --addr ADDR
		Address to listen on. Defaults to ":8080".

	-d, --db FILE
		Path to the SQLite database storing API keys and the compile
		audit log. Defaults to "lexgend.db".

Routes:

	POST /api/v1/keys            mint a new API key (id + secret)
	POST /api/v1/auth            exchange an API key for a bearer JWT
	POST /api/v1/compile         compile a rule file (requires Bearer JWT)
	GET  /api/v1/compile/{id}    look up a past compile job's outcome (requires Bearer JWT)

lexgend holds no DFA in memory between requests; every /compile call runs
the full pipeline from rule-file text to minimized DFA to emitted source,
and only the outcome (not the generated source) is persisted to the audit
log.
*/
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/pflag"

	"github.com/dekarrin/lexgen/cmd/lexgend/store"
)

const apiPrefix = "/api/v1"

type daemon struct {
	store     *store.Store
	jwtSecret []byte
}

func main() {
	addr := pflag.StringP("addr", "a", ":8080", "address to listen on")
	dbPath := pflag.StringP("db", "d", "lexgend.db", "path to the SQLite database")
	pflag.Parse()

	secret := []byte(os.Getenv("LEXGEND_JWT_SECRET"))
	if len(secret) == 0 {
		log.Println("WARNING: LEXGEND_JWT_SECRET not set, using an insecure development default")
		secret = []byte("lexgend-dev-secret-do-not-use-in-production")
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	defer st.Close()

	d := &daemon{store: st, jwtSecret: secret}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route(apiPrefix, func(api chi.Router) {
		api.Post("/keys", d.handleCreateAPIKey)
		api.Post("/auth", d.handleAuth)

		api.Group(func(authed chi.Router) {
			authed.Use(func(next http.Handler) http.Handler {
				return RequireAPIKeyAuth(d.store, d.jwtSecret, next)
			})
			authed.Post("/compile", d.handleCompile)
			authed.Get("/compile/{id}", d.handleJobStatus)
		})
	})

	log.Printf("lexgend: listening on %s (db: %s)", *addr, *dbPath)
	if err := http.ListenAndServe(*addr, r); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}
