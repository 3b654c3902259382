package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shahiilr/roadmap/internal/cache"
	"github.com/shahiilr/roadmap/internal/config"
	"github.com/shahiilr/roadmap/internal/genai"
	"github.com/shahiilr/roadmap/internal/httpserver"
	"github.com/shahiilr/roadmap/internal/keypool"
	"github.com/shahiilr/roadmap/internal/metrics"
	"github.com/shahiilr/roadmap/internal/recommend"
	"github.com/shahiilr/roadmap/internal/render"
	"github.com/shahiilr/roadmap/internal/store"
	"github.com/shahiilr/roadmap/pkg/logging/logging"
)

type flags struct {
	interests  string
	skills     string
	goals      string
	quick      string
	out        string
	noImage    bool
	noStore    bool
	clearCache bool
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.interests, "interests", "", "learning interests or preferred subjects")
	flag.StringVar(&f.skills, "skills", "", "current skills (optional)")
	flag.StringVar(&f.goals, "goals", "", "career goals (optional)")
	flag.StringVar(&f.quick, "quick", "", "generate a plan for a subject without prompting")
	flag.StringVar(&f.out, "out", "", "roadmap image output path (default roadmap_<subject>.png)")
	flag.BoolVar(&f.noImage, "no-image", false, "skip roadmap image rendering")
	flag.BoolVar(&f.noStore, "no-store", false, "skip persisting the generated plan")
	flag.BoolVar(&f.clearCache, "clear-cache", false, "clear the response cache and exit")
	flag.Parse()
	return f
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("roadmap exited with error: %v", err)
	}
}

func run() error {
	// ----- Logger -----
	logger := logging.DefaultLogger()
	defer logger.Sync()

	// ----- Metrics -----
	metrics.Register()

	// ----- Config -----
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Info("loaded config",
		zap.String("model", cfg.Model),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.String("store_backend", cfg.StoreBackend),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("retry_delay", cfg.RetryDelay),
	)

	f := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ----- Credential pool -----
	keys := cfg.APIKeys()
	pool, err := keypool.New(keys)
	if err != nil {
		return fmt.Errorf("no API keys found: set GEMINI_API_KEY_1 and/or GEMINI_API_KEY_2: %w", err)
	}
	logger.Info("API keys loaded", zap.Int("count", pool.Len()))

	// ----- Redis client (only if needed) -----
	var redisClient *redis.Client
	if cfg.CacheBackend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})

		// Fail fast if Redis is misconfigured
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("redis connection failed", zap.Error(err))
			return err
		}
		logger.Info("redis connection established", zap.String("addr", cfg.RedisAddr))
	}

	// ----- Response cache -----
	responseCache := cache.NewResponseCache(cache.Config{
		Backend:  cfg.CacheBackend,
		Capacity: cfg.CacheSize,
		TTL:      cfg.CacheTTL,
		Prefix:   "roadmap",
	}, redisClient)
	responseCache = cache.NewLoggingCache(responseCache)

	// ----- Gemini transport + executor -----
	transport, err := genai.NewHTTPTransport(genai.Config{
		BaseURL:        cfg.BaseURL,
		Model:          cfg.Model,
		RequestTimeout: cfg.RequestTimeout,
	}, logger)
	if err != nil {
		return err
	}
	defer transport.Close()

	executor := genai.NewExecutor(pool, transport, cfg.MaxRetries, cfg.RetryDelay, logger)

	// ----- Service, store, renderer -----
	svc := recommend.NewService(executor, responseCache, logger)

	if f.clearCache {
		if err := svc.ClearCache(ctx); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Println("Response cache cleared.")
		return nil
	}

	var planStore store.Store
	if !f.noStore && cfg.StoreBackend != "none" {
		planStore, err = store.New(store.Config{
			Backend: cfg.StoreBackend,
			DataDir: cfg.DataDir,
		})
		if err != nil {
			return err
		}
		defer planStore.Close()
	}

	var renderer *render.Renderer
	if !f.noImage {
		renderer, err = render.New(cfg.RoadmapFont, logger)
		if err != nil {
			return err
		}
	}

	// ----- Optional diagnostics listener -----
	var diagSrv *http.Server
	if cfg.MetricsAddr != "" {
		r := chi.NewRouter()
		httpserver.SetupRouter(r, logger)
		diagSrv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("diagnostics listener starting", zap.String("addr", cfg.MetricsAddr))
			if err := diagSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("diagnostics listener error", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = diagSrv.Shutdown(shutdownCtx)
		}()
	}

	// ----- Gather the query -----
	q := recommend.Query{Interests: f.interests, Skills: f.skills, Goals: f.goals}
	if f.quick != "" {
		q.Interests = f.quick
	}
	if strings.TrimSpace(q.Interests) == "" {
		q, err = promptQuery(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
	}
	if err := q.Validate(); err != nil {
		return err
	}

	// ----- Generate the plan -----
	fmt.Printf("\nGenerating learning plan for: %s\n", q.Interests)
	fmt.Println("This may take 30-60 seconds for comprehensive results...")

	start := time.Now()

	courses, err := svc.Recommend(ctx, q)
	if err != nil {
		return fmt.Errorf("course recommendation failed: %w", err)
	}

	roadmap, err := svc.Roadmap(ctx, q.Interests)
	if err != nil {
		return fmt.Errorf("roadmap generation failed: %w", err)
	}

	var imagePath string
	if renderer != nil {
		imagePath = f.out
		if imagePath == "" {
			imagePath = "roadmap_" + safeFilename(q.Interests) + ".png"
		}
		if err := renderer.RenderToFile(roadmap, imagePath); err != nil {
			// The plan is still useful without the picture.
			logger.Warn("roadmap image rendering failed", zap.Error(err))
			imagePath = ""
		}
	}

	if planStore != nil {
		profile := store.Profile{Interests: q.Interests, Skills: q.Skills, Goals: q.Goals}
		if _, err := store.SavePlan(ctx, planStore, profile, courses); err != nil {
			logger.Warn("failed to persist plan", zap.Error(err))
		}
	}

	elapsed := time.Since(start)

	// ----- Display -----
	printPlan(os.Stdout, q, courses, roadmap, imagePath, elapsed)
	printStats(os.Stdout, executor.Stats(), pool.Len())

	return nil
}

// promptQuery reads the learning profile interactively, like the flags
// but for humans.
func promptQuery(in *os.File, out *os.File) (recommend.Query, error) {
	scanner := bufio.NewScanner(in)

	readLine := func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("input closed")
		}
		return strings.TrimSpace(scanner.Text()), nil
	}

	interests, err := readLine("What would you like to learn? (e.g., 'Machine Learning', 'Web Development'): ")
	if err != nil {
		return recommend.Query{}, err
	}
	if interests == "" {
		return recommend.Query{}, fmt.Errorf("please enter your learning interests")
	}

	skills, err := readLine("What are your current skills? (optional): ")
	if err != nil {
		return recommend.Query{}, err
	}
	goals, err := readLine("What are your career goals? (optional): ")
	if err != nil {
		return recommend.Query{}, err
	}

	return recommend.Query{Interests: interests, Skills: skills, Goals: goals}, nil
}

// safeFilename lowercases the subject and replaces anything outside
// [a-z0-9] with underscores.
func safeFilename(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, s)
}
