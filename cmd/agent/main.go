package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jaredmarko/worldly-demo/internal/agent"
	"github.com/jaredmarko/worldly-demo/internal/agent/chart"
	"github.com/jaredmarko/worldly-demo/internal/agent/external"
	"github.com/jaredmarko/worldly-demo/internal/agent/insight"
	"github.com/jaredmarko/worldly-demo/internal/agent/keywords"
	"github.com/jaredmarko/worldly-demo/internal/agent/resolver"
	"github.com/jaredmarko/worldly-demo/internal/agent/weather"
	"github.com/jaredmarko/worldly-demo/internal/cache"
	"github.com/jaredmarko/worldly-demo/internal/common/config"
	"github.com/jaredmarko/worldly-demo/internal/common/database"
	"github.com/jaredmarko/worldly-demo/internal/common/logger"
	"github.com/jaredmarko/worldly-demo/internal/models"
	"github.com/jaredmarko/worldly-demo/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	ctx := context.Background()

	sqlite, err := database.NewSQLite(cfg.Database.SQLite)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlite.Close()
	if err := sqlite.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	dataStore := store.New(sqlite.GetDB(), log)
	if err := dataStore.InitSchema(ctx); err != nil {
		return err
	}
	if err := dataStore.Seed(ctx); err != nil {
		return err
	}

	redisClient, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		return fmt.Errorf("build redis client: %w", err)
	}
	defer redisClient.Close()

	responseCache := cache.New(redisClient.GetClient(), cfg.CacheTTL(), log)
	if err := redisClient.Ping(ctx); err != nil {
		log.Warn("redis unavailable, caching disabled", map[string]interface{}{
			"address": cfg.Database.Redis.Address,
			"error":   err.Error(),
		})
		responseCache = cache.New(nil, cfg.CacheTTL(), log)
	}

	weatherClient, err := weather.NewClient(&weather.Config{
		BaseURL: cfg.Weather.BaseURL,
		APIKey:  cfg.Weather.APIKey,
		Timeout: cfg.WeatherTimeout(),
	}, log)
	if err != nil {
		return err
	}

	names, err := dataStore.SupplierNames(ctx)
	if err != nil {
		return fmt.Errorf("load supplier names: %w", err)
	}

	worldly := agent.New(
		resolver.New(keywords.NewExtractor(names)),
		dataStore,
		insight.NewComposer(dataStore, log),
		chart.NewRenderer(),
		external.NewFetcher(dataStore, weatherClient, log),
		responseCache,
		log,
	)

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.Metrics.ListenAddress, nil); err != nil {
			log.Warn("metrics listener stopped", map[string]interface{}{
				"address": cfg.Metrics.ListenAddress,
				"error":   err.Error(),
			})
		}
	}()

	return interact(ctx, worldly)
}

func interact(ctx context.Context, worldly *agent.Agent) error {
	bold := color.New(color.Bold)
	bold.Println("Worldly Sustainability Risk Agent")
	fmt.Println("Ask about suppliers, products, or trends (or type 'exit' to quit)")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Your question: ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		question := scanner.Text()
		if strings.TrimSpace(question) == "" {
			fmt.Println("\nPlease enter a valid question or type 'exit' to quit.")
			fmt.Println()
			continue
		}
		if strings.EqualFold(strings.TrimSpace(question), "exit") {
			return nil
		}

		render(worldly.Run(ctx, question))
	}
}

func render(response *models.Response) {
	fmt.Println()
	if response.IsError() {
		color.Red("Error: %s", response.Error)
		if response.Query != "" {
			fmt.Printf("Query: %s\n", response.Query)
		}
		fmt.Println()
		return
	}

	if response.Message != "" {
		color.Yellow("%s", response.Message)
	}
	fmt.Printf("Query: %s\n", response.Query)
	renderRows(response.Results)
	color.Green("Insight: %s", response.Insight)
	if response.Visualization != "" {
		fmt.Printf("Visualization: %s\n", response.Visualization)
	}
	renderSummary(response.ExternalDataSummary)
	fmt.Println()
}

func renderRows(rows []models.Row) {
	if len(rows) == 0 {
		return
	}

	columns := make([]string, 0, len(rows[0]))
	for col := range rows[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(columns)
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = fmt.Sprintf("%v", row[col])
		}
		table.Append(record)
	}
	table.Render()
}

func renderSummary(summary *models.ExternalSummary) {
	if summary == nil {
		return
	}

	fmt.Println("Weather conditions:")
	for _, name := range sortedKeys(summary.WeatherConditions) {
		fmt.Printf("  %s: %s\n", name, summary.WeatherConditions[name])
	}
	fmt.Println("Emissions risks:")
	for _, name := range sortedKeys(summary.EmissionsRisks) {
		fmt.Printf("  %s: %s\n", name, summary.EmissionsRisks[name])
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
