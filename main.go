package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"contract-compare/internal/compare/application"
	comparehttp "contract-compare/internal/compare/interfaces/http"
	"contract-compare/internal/extraction"
	"contract-compare/internal/extraction/ai"
	"contract-compare/internal/extraction/xlsx"
	"contract-compare/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	metrics.Init()

	extractCfg, err := extraction.LoadConfig()
	if err != nil {
		logger.Fatalf("extraction config error: %v", err)
	}

	openaiCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		openaiCfg.BaseURL = cfg.OpenAIBaseURL
	}
	aiClient, err := ai.NewClient(openai.NewClientWithConfig(openaiCfg), extractCfg)
	if err != nil {
		logger.Fatalf("ai client error: %v", err)
	}

	router, err := extraction.NewRouter(xlsx.NewParser(), aiClient)
	if err != nil {
		logger.Fatalf("extraction router error: %v", err)
	}

	service, err := application.NewComparisonService(router, application.SystemClock{})
	if err != nil {
		logger.Fatalf("comparison service error: %v", err)
	}
	handler, err := comparehttp.NewHandler(service, cfg.MaxUploadBytes)
	if err != nil {
		logger.Fatalf("comparison handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/comparisons", handler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(mux, logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	HTTPAddr       string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	MaxUploadBytes int64
}

func loadConfig() config {
	cfg := config{
		HTTPAddr:       getenvDefault("HTTP_ADDR", ":8080"),
		OpenAIAPIKey:   getenvDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getenvDefault("OPENAI_BASE_URL", ""),
		MaxUploadBytes: int64(getenvIntDefault("MAX_UPLOAD_BYTES", 10<<20)),
	}
	if cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
