package main

import (
	"fmt"
	"os"

	"github.com/openparley/parley/internal/debate"
	"github.com/openparley/parley/internal/gateway"
	"github.com/openparley/parley/internal/notebook"
	"github.com/openparley/parley/internal/persona"
	"github.com/openparley/parley/internal/projectconfig"
)

// The model API key is read from the environment only; it is kept out of
// .parley.yaml so config files stay safe to commit. PARLEY_API_KEY wins
// over the conventional OPENAI_API_KEY when both are set.
var apiKeyEnvs = []string{"PARLEY_API_KEY", "OPENAI_API_KEY"}

// app bundles the wired-up dependencies every command needs.
type app struct {
	cfg      *projectconfig.ProjectConfig
	registry *persona.Registry
	store    *notebook.FileStore
	engine   *debate.Engine
}

// newApp loads project configuration and wires the engine. Commands that
// never call the model (persona and notebook listings) use newOfflineApp
// instead so they work without an API key.
func newApp() (*app, error) {
	a, err := newOfflineApp()
	if err != nil {
		return nil, err
	}

	apiKey := lookupAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("%s is not set; export it or add it to a .env file", apiKeyEnvs[0])
	}

	completer := gateway.NewOpenAIClient(gateway.Options{
		BaseURL:             a.cfg.Gateway.BaseURL,
		APIKey:              apiKey,
		Model:               a.cfg.Gateway.Model,
		TurnMaxTokens:       a.cfg.Gateway.TurnMaxTokens,
		ReflectionMaxTokens: a.cfg.Gateway.ReflectionMaxTokens,
		Temperature:         a.cfg.Gateway.Temperature,
	})

	opts := []debate.Option{debate.WithThreshold(a.cfg.Notebook.Threshold)}
	if a.cfg.Notebook.Retries != nil {
		opts = append(opts, debate.WithRetries(*a.cfg.Notebook.Retries))
	}
	a.engine = debate.NewEngine(completer, a.store, a.registry, opts...)
	return a, nil
}

func lookupAPIKey() string {
	for _, env := range apiKeyEnvs {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return ""
}

// newOfflineApp wires everything except the model gateway.
func newOfflineApp() (*app, error) {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return nil, err
	}

	registry, err := persona.LoadRegistry(cfg.Paths.Personas)
	if err != nil {
		return nil, fmt.Errorf("loading personas: %w", err)
	}

	return &app{
		cfg:      cfg,
		registry: registry,
		store:    notebook.NewFileStore(cfg.Paths.Notebooks, cfg.Paths.Knowledge),
	}, nil
}
