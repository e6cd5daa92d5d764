// Command dashrag is a one-shot driver for the DashScope adapters: it runs a
// single completion, structured completion, or embedding call and prints the
// result. It exists for smoke-testing credentials and models outside the
// pipeline.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/scrypster/dashrag/internal/config"
	"github.com/scrypster/dashrag/internal/dashscope"
	"github.com/scrypster/dashrag/internal/llm"
)

var (
	configPath = flag.String("config", "", "Path to YAML config file (optional, uses env vars by default)")
	complete   = flag.String("complete", "", "Run a completion for the given prompt")
	embed      = flag.String("embed", "", "Embed the given text (additional texts may follow as positional args)")
	chat       = flag.Bool("chat", false, "Use chat mode for completions")
	structured = flag.Bool("json", false, "Run the structured completion path and print the extracted JSON")
	model      = flag.String("model", "", "Model name (overrides config)")
	verbose    = flag.Bool("verbose", false, "Enable debug logging")
)

// varsFlag collects repeatable -var key=value pairs for placeholder
// substitution.
type varsFlag map[string]string

func (v varsFlag) String() string {
	return fmt.Sprintf("%v", map[string]string(v))
}

func (v varsFlag) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	v[key] = value
	return nil
}

func main() {
	vars := varsFlag{}
	flag.Var(vars, "var", "Placeholder substitution as key=value (repeatable)")
	flag.Parse()

	_ = godotenv.Load(".env")

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client := dashscope.NewClient(dashscope.ClientConfig{
		BaseURL:           cfg.Client.BaseURL,
		Timeout:           time.Duration(cfg.Client.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.Client.RequestsPerSecond,
		Burst:             cfg.Client.Burst,
	}, logger)

	ctx := context.Background()

	switch {
	case *complete != "":
		runCompletion(ctx, cfg, client, logger, vars)
	case *embed != "":
		runEmbedding(ctx, cfg, client, logger)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// loadConfig reads configuration from the environment, overlaid with the YAML
// file when -config is given and with the -model flag.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}
	if *model != "" {
		cfg.LLM.Model = *model
		cfg.LLM.EmbeddingModel = *model
	}
	return cfg, nil
}

func runCompletion(ctx context.Context, cfg *config.Config, client *dashscope.Client, logger *slog.Logger, vars map[string]string) {
	llmType := llm.LLMType(cfg.LLM.Type)
	if *chat {
		llmType = llm.TypeChat
	}

	adapter := llm.NewCompletionAdapter(llm.Config{
		APIKey: cfg.LLM.APIKey,
		Model:  cfg.LLM.Model,
		Type:   llmType,
	}, client, logger)

	if *structured {
		result := adapter.ExecuteJSON(ctx, *complete, vars, nil)
		if result.Output == nil {
			log.Fatalf("Completion produced no JSON object")
		}
		fmt.Println(*result.Output)
		return
	}

	text, err := adapter.Execute(ctx, *complete, vars, nil)
	if err != nil {
		log.Fatalf("Completion failed: %v", err)
	}
	fmt.Println(text)
}

func runEmbedding(ctx context.Context, cfg *config.Config, client *dashscope.Client, logger *slog.Logger) {
	adapter := llm.NewEmbeddingAdapter(llm.Config{
		APIKey: cfg.LLM.APIKey,
		Model:  cfg.LLM.EmbeddingModel,
	}, client, logger)

	texts := append([]string{*embed}, flag.Args()...)
	vectors, err := adapter.Embed(ctx, texts)
	if err != nil {
		log.Fatalf("Embedding failed: %v", err)
	}

	out, err := json.Marshal(vectors)
	if err != nil {
		log.Fatalf("Failed to encode vectors: %v", err)
	}
	fmt.Println(string(out))
}
