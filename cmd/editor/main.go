package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	config "github.com/DRSN-tech/product-admin/internal/cfg"
	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/internal/editor/console"
	"github.com/DRSN-tech/product-admin/internal/infrastructure/catalogapi"
	"github.com/DRSN-tech/product-admin/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	// stdout занят формой, логи уходят в stderr
	log := logger.NewSlogLoggerWithWriter(os.Stderr, slog.LevelInfo)

	var productID string
	cmd := &cobra.Command{
		Use:           "editor",
		Short:         "Консольный редактор товаров каталога",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.LoadEditor(log)
			if err != nil {
				return err
			}

			client := catalogapi.NewClient(catalogapi.Config{
				BaseURL:    cfg.APIURL,
				Timeout:    cfg.Timeout,
				MaxRetries: cfg.MaxRetries,
			}, log)

			var existing *domain.Product
			if productID != "" {
				if existing, err = client.Product(ctx, productID); err != nil {
					return err
				}
			}

			return console.New(client, existing, cmd.OutOrStdout(), log).Run(ctx, cmd.InOrStdin())
		},
	}
	cmd.Flags().StringVar(&productID, "id", "", "id товара для редактирования; без флага создаётся новый товар")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		log.Errorf(err, "editor stopped")
		os.Exit(1)
	}
}
