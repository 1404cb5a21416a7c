package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vanshika/worldsporta/backend/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		news          = flag.Int("news", cfg.NumNews, "number of news articles to generate")
		scores        = flag.Int("scores", cfg.NumScores, "number of match scores to generate")
		products      = flag.Int("products", cfg.NumProducts, "number of products to generate")
		users         = flag.Int("users", cfg.NumUsers, "number of users to generate")
		orders        = flag.Int("orders", cfg.NumOrders, "number of orders to generate")
		seed          = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		defaults      = flag.Bool("defaults", false, "write the built-in seed collections instead of a generated dataset")
		adminPassword = flag.String("admin-password", "admin", "password of the seeded admin account (with -defaults)")
		outputDir     = flag.String("output-dir", "data", "directory to write one JSON file per collection")
		writeStdout   = flag.Bool("stdout", false, "write combined dataset to stdout instead of files")
	)
	flag.Parse()

	var dataset generator.Dataset
	if *defaults {
		snap := generator.Defaults(time.Now(), *adminPassword)
		dataset = generator.Dataset{
			News:     snap.News,
			Scores:   snap.Scores,
			Products: snap.Products,
			Users:    snap.Users,
			Orders:   snap.Orders,
		}
	} else {
		genCfg := generator.Config{
			NumNews:     nonNegative(*news),
			NumScores:   nonNegative(*scores),
			NumProducts: nonNegative(*products),
			NumUsers:    nonNegative(*users),
			NumOrders:   nonNegative(*orders),
			Seed:        *seed,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		var err error
		dataset, err = generator.New(genCfg).Generate(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
			os.Exit(1)
		}
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d news, %d scores, %d products, %d users and %d orders into %s\n",
		len(dataset.News), len(dataset.Scores), len(dataset.Products), len(dataset.Users), len(dataset.Orders), *outputDir)
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
