package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/nazeru/larek-storefront-go/internal/storefront/api"
	"github.com/nazeru/larek-storefront-go/internal/storefront/app"
	"github.com/nazeru/larek-storefront-go/internal/storefront/view"
	"github.com/nazeru/larek-storefront-go/pkg/logging"
)

type cfg struct {
	APIBase        string
	CDNBase        string
	RequestTimeout time.Duration
	SubmitTimeout  time.Duration
	LogPath        string
}

func readCfg() (cfg, error) {
	origin := strings.TrimRight(strings.TrimSpace(os.Getenv("API_ORIGIN")), "/")
	if origin == "" {
		return cfg{}, errors.New("API_ORIGIN is required")
	}
	reqMS, _ := strconv.Atoi(getenv("REQUEST_TIMEOUT_MS", "2500"))
	subMS, _ := strconv.Atoi(getenv("SUBMIT_TIMEOUT_MS", "10000"))

	return cfg{
		APIBase:        origin + "/api/weblarek",
		CDNBase:        origin + "/content/weblarek",
		RequestTimeout: time.Duration(reqMS) * time.Millisecond,
		SubmitTimeout:  time.Duration(subMS) * time.Millisecond,
		LogPath:        getenv("STOREFRONT_LOG", "storefront.log"),
	}, nil
}

func main() {
	_ = godotenv.Load()

	dumpCatalog := flag.Bool("dump-catalog", false, "fetch the catalog, print it and exit")
	flag.Parse()

	cfg, err := readCfg()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	client := api.New(&http.Client{Timeout: cfg.RequestTimeout}, cfg.APIBase, cfg.CDNBase)

	if *dumpCatalog {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()
		products, err := client.GetProducts(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, "catalog error:", err)
			os.Exit(1)
		}
		for i, p := range products {
			fmt.Printf("%d. %s [%s] — %s\n", i+1, p.Title, p.Category, view.FormatPrice(p.Price))
		}
		return
	}

	// Журнал пишем в файл: stdout занят интерфейсом.
	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "log file error:", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logging.SetOutput(logFile)

	program := tea.NewProgram(app.New(app.Config{
		RequestTimeout: cfg.RequestTimeout,
		SubmitTimeout:  cfg.SubmitTimeout,
	}, client))
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
