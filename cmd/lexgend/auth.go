package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dekarrin/lexgen/cmd/lexgend/store"
)

// ctxKey is a context key for values AuthMiddleware populates, mirroring
// tunaq's server.AuthKey.
type ctxKey int

const ctxAPIKeyID ctxKey = iota

// AuthMiddleware requires a valid bearer JWT on every request, grounded on
// tunaq's server.AuthHandler/validateAndLookupJWTUser: the token's subject
// is looked up in the API key store and its stored secret hash is folded
// into the signing key, so rotating a key's secret invalidates every JWT
// issued under the old one without needing a revocation list.
type AuthMiddleware struct {
	db     *store.Store
	secret []byte
	next   http.Handler
}

func RequireAPIKeyAuth(db *store.Store, secret []byte, next http.Handler) *AuthMiddleware {
	return &AuthMiddleware{db: db, secret: secret, next: next}
}

func (am *AuthMiddleware) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	tok, err := bearerToken(req)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, err.Error())
		return
	}

	keyID, err := am.validate(req.Context(), tok)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, err.Error())
		return
	}

	ctx := context.WithValue(req.Context(), ctxAPIKeyID, keyID)
	am.next.ServeHTTP(w, req.WithContext(ctx))
}

func (am *AuthMiddleware) validate(ctx context.Context, tok string) (uuid.UUID, error) {
	var keyID uuid.UUID

	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}

		id, err := uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("cannot parse subject uuid: %w", err)
		}

		key, err := am.db.GetAPIKey(id)
		if err != nil {
			return nil, fmt.Errorf("subject does not exist")
		}
		keyID = id

		var signKey []byte
		signKey = append(signKey, am.secret...)
		signKey = append(signKey, []byte(key.SecretHash)...)
		return signKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("lexgend"), jwt.WithLeeway(time.Minute))

	if err != nil {
		return uuid.UUID{}, err
	}
	return keyID, nil
}

// IssueToken signs a short-lived JWT for the API key identified by id,
// provided secretHash matches the stored hash for that key (checked by the
// caller via authstore.Verify before calling this).
func IssueToken(secret []byte, id uuid.UUID, secretHash string) (string, error) {
	claims := jwt.MapClaims{
		"iss": "lexgend",
		"sub": id.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	var signKey []byte
	signKey = append(signKey, secret...)
	signKey = append(signKey, []byte(secretHash)...)

	return tok.SignedString(signKey)
}

func bearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return strings.TrimSpace(parts[1]), nil
}
