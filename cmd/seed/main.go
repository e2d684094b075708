// Команда seed загружает стартовый каталог (пользователи и вещи) из YAML в базу.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"lendit/internal/config"
	"lendit/internal/database"
	"lendit/internal/logging"
	"lendit/internal/models"

	"gopkg.in/yaml.v2"
)

type catalog struct {
	Users []seedUser `yaml:"users"`
	Items []seedItem `yaml:"items"`
}

type seedUser struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type seedItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Available   bool   `yaml:"available"`
	OwnerEmail  string `yaml:"owner_email"`
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	catalogPath := flag.String("catalog", "configs/catalog.yaml", "path to the seed catalog")
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	data, err := os.ReadFile(*catalogPath)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	var cat catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	owners := make(map[string]int64, len(cat.Users))

	for _, u := range cat.Users {
		user := models.User{Name: u.Name, Email: u.Email}
		if err := db.CreateUser(ctx, &user); err != nil {
			return fmt.Errorf("seed user %q: %w", u.Email, err)
		}
		owners[u.Email] = user.ID
		logger.Info().Int64("user_id", user.ID).Str("email", u.Email).Msg("user seeded")
	}

	for _, i := range cat.Items {
		ownerID, ok := owners[i.OwnerEmail]
		if !ok {
			return fmt.Errorf("item %q references unknown owner %q", i.Name, i.OwnerEmail)
		}
		item := models.Item{
			Name:        i.Name,
			Description: i.Description,
			Available:   i.Available,
			OwnerID:     ownerID,
		}
		if err := db.CreateItem(ctx, &item); err != nil {
			return fmt.Errorf("seed item %q: %w", i.Name, err)
		}
		logger.Info().Int64("item_id", item.ID).Str("name", i.Name).Msg("item seeded")
	}

	logger.Info().Int("users", len(cat.Users)).Int("items", len(cat.Items)).Msg("catalog imported")
	return nil
}
