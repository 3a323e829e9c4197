package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/shadyar-bakr/storefront/internal/data"
	"github.com/shadyar-bakr/storefront/internal/errlog"
	"github.com/shadyar-bakr/storefront/internal/validator"
	"github.com/tomasen/realip"
	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// correlate copies chi's request id into the context read by the error
// logger.
func (app *application) correlate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(errlog.WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("panic: %v", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) rateLimit(next http.Handler) http.Handler {
	if !app.config.limiter.enabled {
		return next
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
		cleanup = app.config.limiter.cleanup
	)

	if cleanup <= 0 {
		cleanup = 3 * time.Minute
	}

	go func() {
		for {
			time.Sleep(cleanup)

			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > cleanup {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := app.clientIP(r)

		mu.Lock()
		c, exists := clients[ip]
		if !exists {
			c = &client{
				limiter: rate.NewLimiter(
					rate.Limit(app.config.limiter.rps),
					app.config.limiter.burst,
				),
			}
			clients[ip] = c
		}
		c.lastSeen = time.Now()

		allow := c.limiter.Allow()
		mu.Unlock()

		if !allow {
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP keys the rate limiter. Forwarding headers are only honoured
// when the server is configured to sit behind a trusted proxy.
func (app *application) clientIP(r *http.Request) string {
	if app.config.limiter.trustProxy {
		return realip.FromRequest(r)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorizationHeader := r.Header.Get("Authorization")
		if authorizationHeader == "" {
			r = app.contextSetUser(r, data.AnonymousUser)
			next.ServeHTTP(w, r)
			return
		}

		headerParts := strings.Split(authorizationHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			app.invalidAuthenticationTokenResponse(w, r)
			return
		}

		token := headerParts[1]

		v := validator.New()
		if data.ValidateTokenPlaintext(v, token); !v.Valid() {
			app.invalidAuthenticationTokenResponse(w, r)
			return
		}

		userID, err := app.models.Tokens.UserID(data.ScopeAuthentication, token)
		if err != nil {
			switch {
			case errors.Is(err, data.ErrExpiredToken):
				app.expiredAuthenticationTokenResponse(w, r)
			default:
				app.invalidAuthenticationTokenResponse(w, r)
			}
			return
		}

		user, err := app.models.Users.Get(userID)
		if err != nil {
			switch {
			case errors.Is(err, data.ErrRecordNotFound):
				app.invalidAuthenticationTokenResponse(w, r)
			default:
				app.serverErrorResponse(w, r, err)
			}
			return
		}

		r = app.contextSetUser(r, user)
		r = r.WithContext(errlog.WithUserID(r.Context(), strconv.FormatInt(user.ID, 10)))

		next.ServeHTTP(w, r)
	})
}

func (app *application) requireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := app.contextGetUser(r)

		if user.IsAnonymous() {
			app.authenticationRequiredResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) requirePermission(code string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			user := app.contextGetUser(r)

			if !user.Permissions().Include(code) {
				app.notPermittedResponse(w, r)
				return
			}

			next.ServeHTTP(w, r)
		}

		return app.requireAuthenticatedUser(http.HandlerFunc(fn))
	}
}
