package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dekarrin/lexgen/cmd/lexgend/authstore"
	"github.com/dekarrin/lexgen/cmd/lexgend/store"
	"github.com/dekarrin/lexgen/emit"
	"github.com/dekarrin/lexgen/internal/dfacache"
)

// jsonError matches result.Result's wire shape in tunaq's server/result
// package (status implied by the HTTP status code itself, message for the
// client, no internal detail leaked).
type jsonError struct {
	Error string `json:"error"`
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(jsonError{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseJSONBody(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// createAPIKeyResponse backs POST /api/v1/keys, the daemon's
// bootstrap endpoint for minting a new credential. A production deployment
// would gate this behind its own operator authentication; this driver
// exposes it unauthenticated for local/demo use, matching the scope of
// "compile-as-a-service daemon" in SPEC_FULL.md rather than a full
// multi-tenant identity system.
type createAPIKeyResponse struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
}

func (d *daemon) handleCreateAPIKey(w http.ResponseWriter, r *http.Request) {
	id := uuid.New()
	secret := uuid.New().String()

	hash, err := authstore.Hash(secret)
	if err != nil {
		log.Printf("ERROR: hashing new api key: %s", err)
		writeJSONError(w, http.StatusInternalServerError, "could not create api key")
		return
	}

	if err := d.store.CreateAPIKey(id, hash); err != nil {
		log.Printf("ERROR: storing new api key: %s", err)
		writeJSONError(w, http.StatusInternalServerError, "could not create api key")
		return
	}

	writeJSON(w, http.StatusCreated, createAPIKeyResponse{ID: id.String(), Secret: secret})
}

// authRequest/authResponse back POST /api/v1/auth: exchange an API key
// id+secret for a bearer JWT to use on /compile.
type authRequest struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
}

type authResponse struct {
	Token string `json:"token"`
}

func (d *daemon) handleAuth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	key, err := d.store.GetAPIKey(id)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !authstore.Verify(key.SecretHash, req.Secret) {
		writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tok, err := IssueToken(d.jwtSecret, id, key.SecretHash)
	if err != nil {
		log.Printf("ERROR: issuing token: %s", err)
		writeJSONError(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: tok})
}

// compileRequest/compileResponse back POST /api/v1/compile.
type compileRequest struct {
	Source   string `json:"source"`
	Package  string `json:"package"`
	EmitMain bool   `json:"emit_main"`
}

type compileResponse struct {
	JobID  string `json:"job_id"`
	Source string `json:"source"`
}

func (d *daemon) handleCompile(w http.ResponseWriter, r *http.Request) {
	jobID := uuid.New()

	var req compileRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if req.Package == "" {
		req.Package = "lexer"
	}

	hash := dfacache.HashSource(req.Source)

	result, err := compileSourceText(req.Source)
	if err != nil {
		d.logCompile(jobID, hash, false, err.Error())
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var buf bytes.Buffer
	opts := emit.Options{Package: req.Package, EmitMain: req.EmitMain}
	if err := emit.Generate(&buf, result.dfa, result.rules, opts); err != nil {
		d.logCompile(jobID, hash, false, err.Error())
		writeJSONError(w, http.StatusInternalServerError, "could not emit scanner source")
		return
	}

	d.logCompile(jobID, hash, true, "ok")
	writeJSON(w, http.StatusOK, compileResponse{JobID: jobID.String(), Source: buf.String()})
}

func (d *daemon) logCompile(jobID uuid.UUID, hash string, success bool, message string) {
	err := d.store.LogCompile(store.CompileRecord{
		ID:         jobID,
		SourceHash: hash,
		Success:    success,
		Message:    message,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		log.Printf("ERROR: logging compile record: %s", err)
	}
}

// requireJobID panics if the id URL param is missing or malformed; the
// calling handler's deferred recoverBadRequest converts this to a 400,
// following the panic-and-recover split tunaq's requireIDParam uses.
func requireJobID(r *http.Request) uuid.UUID {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		panic(fmt.Sprintf("invalid job id: %s", err))
	}
	return id
}

type jobStatusResponse struct {
	JobID      string `json:"job_id"`
	SourceHash string `json:"source_hash"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
}

func (d *daemon) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	defer d.recoverBadRequest(w)

	id := requireJobID(r)
	rec, err := d.store.GetCompileRecord(id)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "no such compile job")
		return
	}

	writeJSON(w, http.StatusOK, jobStatusResponse{
		JobID:      rec.ID.String(),
		SourceHash: rec.SourceHash,
		Success:    rec.Success,
		Message:    rec.Message,
	})
}

func (d *daemon) recoverBadRequest(w http.ResponseWriter) {
	if p := recover(); p != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("%v", p))
	}
}
