package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/insurance-advisor/internal/advisor"
	"github.com/sells-group/insurance-advisor/internal/estimate"
	"github.com/sells-group/insurance-advisor/internal/model"
	"github.com/sells-group/insurance-advisor/internal/refdata"
	"github.com/sells-group/insurance-advisor/internal/scorer"
	"github.com/sells-group/insurance-advisor/internal/store"
	"github.com/sells-group/insurance-advisor/pkg/anthropic"
)

var servePort int

// chatter is the slice of the advisor the server needs.
type chatter interface {
	Chat(ctx context.Context, history []advisor.ChatMessage) (*advisor.ChatResponse, error)
}

// serverEnv bundles the dependencies the HTTP handlers use. Fields may be nil
// when the corresponding feature was not configured (no API key, no store).
type serverEnv struct {
	snap        *refdata.Snapshot
	ranker      *scorer.Ranker
	st          store.Store
	bot         chatter
	chatLimiter *rate.Limiter
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the advisor HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		snap, err := loadSnapshot(ctx)
		if err != nil {
			return err
		}
		ranker := scorer.NewRanker(snap, scorer.DefaultConfig())

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		env := &serverEnv{
			snap:        snap,
			ranker:      ranker,
			st:          st,
			chatLimiter: rate.NewLimiter(rate.Limit(cfg.Server.ChatRatePerSec), cfg.Server.ChatRateBurst),
		}
		if cfg.Anthropic.Key != "" {
			env.bot = advisor.New(
				anthropic.NewClient(cfg.Anthropic.Key),
				snap, ranker,
				cfg.Anthropic.Model, cfg.Anthropic.MaxTokens,
			)
		} else {
			zap.L().Warn("no anthropic API key configured, /chat disabled")
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(env *serverEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	// The original deployment fronts a browser app on a different origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/needs", env.handleNeeds)
	r.Post("/api/recommend", env.handleRecommend)
	r.Get("/api/eligibility", env.handleEligibility)
	r.Get("/api/runs", env.handleRuns)

	r.Group(func(r chi.Router) {
		if env.chatLimiter != nil {
			r.Use(rateLimit(env.chatLimiter))
		}
		r.Post("/chat", env.handleChat)
	})

	return r
}

// rateLimit rejects requests above the configured chat rate. The limit is
// global, not per client; the deployment sits behind a single frontend.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				httpError(w, http.StatusTooManyRequests, "rate limit exceeded, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type needsRequest struct {
	Income      float64 `json:"income"`
	Liabilities float64 `json:"liabilities"`
	Assets      float64 `json:"assets"`
	Age         int     `json:"age"`
	DOB         string  `json:"dob"`
}

func (env *serverEnv) handleNeeds(w http.ResponseWriter, r *http.Request) {
	var req needsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	age := req.Age
	if req.DOB != "" {
		d, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			httpError(w, http.StatusBadRequest, "dob must be YYYY-MM-DD")
			return
		}
		age = estimate.AgeFromDOB(d, time.Now())
	}
	if age <= 0 {
		httpError(w, http.StatusBadRequest, "age or dob is required")
		return
	}

	cover := estimate.RecommendedCover(req.Income, req.Liabilities, age, req.Assets)
	writeJSON(w, http.StatusOK, map[string]any{
		"recommended_cover": cover,
		"calculated_age":    age,
	})
}

func (env *serverEnv) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var profile model.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	advice, err := env.ranker.Recommend(profile)
	if err != nil {
		if errors.Is(err, refdata.ErrNoData) {
			httpError(w, http.StatusServiceUnavailable, "insurer reference data unavailable")
			return
		}
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Audit trail; recommendation still succeeds if persistence fails.
	if env.st != nil {
		if _, err := scorer.SaveRun(r.Context(), env.st, profile, advice); err != nil {
			zap.L().Error("save run failed", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, advice)
}

func (env *serverEnv) handleEligibility(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"rules":   env.snap.Eligibility,
		"context": env.snap.EligibilityContext(),
	})
}

func (env *serverEnv) handleRuns(w http.ResponseWriter, r *http.Request) {
	if env.st == nil {
		httpError(w, http.StatusServiceUnavailable, "run store not configured")
		return
	}

	filter := store.RunFilter{
		Status: model.RunStatus(r.URL.Query().Get("status")),
		Limit:  50,
	}
	runs, err := env.st.ListRuns(r.Context(), filter)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "list runs failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

type chatRequest struct {
	Messages []advisor.ChatMessage `json:"messages"`
}

func (env *serverEnv) handleChat(w http.ResponseWriter, r *http.Request) {
	if env.bot == nil {
		httpError(w, http.StatusServiceUnavailable, "advisor is not configured")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		httpError(w, http.StatusBadRequest, "no messages provided")
		return
	}

	resp, err := env.bot.Chat(r.Context(), req.Messages)
	if err != nil {
		zap.L().Error("chat turn failed", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "chat failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
