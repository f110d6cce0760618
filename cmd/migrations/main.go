package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/wellnest/api/internal/adapters/repository/postgres"
	"github.com/wellnest/api/internal/adapters/repository/sqlite"
	"github.com/wellnest/api/internal/adapters/repository/sqlstore"
	"github.com/wellnest/api/internal/config"
	"github.com/wellnest/api/internal/core/ports"
	"github.com/wellnest/api/internal/core/services"
)

const usage = `usage: migrations <command>

commands:
  up                     apply pending migrations
  down                   revert every migration
  create-org NAME CODE   create an organization (bootstraps the first admin)`

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	switch os.Args[1] {
	case "up":
		store, err := open(context.Background(), cfg)
		if err != nil {
			log.Fatal(err)
		}
		store.Close()
		fmt.Printf("Migrations applied to %s store.\n", cfg.DatabaseKind())
	case "down":
		if err := down(cfg); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Migrations reverted on %s store.\n", cfg.DatabaseKind())
	case "create-org":
		if len(os.Args) != 4 {
			log.Fatal(usage)
		}
		if err := createOrganization(cfg, os.Args[2], os.Args[3]); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatal(usage)
	}
}

// open applies pending migrations as a side effect.
func open(ctx context.Context, cfg *config.Config) (*sqlstore.Store, error) {
	if cfg.DatabaseKind() == config.DatabasePostgres {
		return postgres.Open(ctx, cfg.DatabaseURL)
	}
	return sqlite.Open(ctx, cfg.SQLitePath)
}

func down(cfg *config.Config) error {
	if cfg.DatabaseKind() == config.DatabasePostgres {
		return postgres.Down(cfg.DatabaseURL)
	}
	return sqlite.Down(cfg.SQLitePath)
}

func createOrganization(cfg *config.Config, name, code string) error {
	ctx := context.Background()
	store, err := open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	org, err := services.NewOrganizationService(store.Organizations(), nil).Create(ctx, ports.CreateOrganizationInput{
		Name: name,
		Code: code,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Organization %q created with id %s.\n", org.Name, org.ID)
	return nil
}
