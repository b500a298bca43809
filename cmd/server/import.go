package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/h4ks-com/farmstead/internal/repository"
	"github.com/h4ks-com/farmstead/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type ItemImport struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

var (
	importFile  string
	skipZero    bool
	skipInvalid bool
	strictMode  bool
)

var importItemsCmd = &cobra.Command{
	Use:   "import-items",
	Short: "Import inventory items from JSON file",
	Long: `Import inventory items from a JSON file.

Expected JSON format:
[
  {"name": "Maize seed", "type": "seed", "quantity": 40, "price": 2.5},
  {"name": "Hoe", "type": "tool", "quantity": 3, "price": 12}
]

Items are matched by name: an existing item has the quantity added and its
type and price replaced, otherwise a new item is created.

By default, the import will skip zero quantities and invalid entries.
Use --strict to fail on any validation error instead.`,
	Example: `  farmstead import-items -f items.json
  farmstead import-items --file items.json --skip-zero=false
  farmstead import-items -f items.json --strict`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runImport(); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	importItemsCmd.Flags().StringVarP(&importFile, "file", "f", "", "JSON file to import (required)")
	importItemsCmd.Flags().BoolVar(&skipZero, "skip-zero", true, "Skip items with zero quantity")
	importItemsCmd.Flags().BoolVar(&skipInvalid, "skip-invalid", true, "Skip entries that fail validation")
	importItemsCmd.Flags().BoolVar(&strictMode, "strict", false, "Fail on any validation error")
	importItemsCmd.MarkFlagRequired("file")
}

func runImport() error {
	if importFile == "" {
		return fmt.Errorf("file path is required")
	}

	data, err := os.ReadFile(importFile)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var items []ItemImport
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	itemService := services.NewItemService(repository.NewItemRepository(env.db))

	env.logger.Info("Starting item import", zap.Int("count", len(items)), zap.String("file", importFile))

	created, updated, skipped := 0, 0, 0
	for _, item := range items {
		if skipZero && item.Quantity == 0 {
			env.logger.Info("Skipped item with zero quantity", zap.String("name", item.Name))
			skipped++
			continue
		}

		isNew, err := importItem(context.Background(), itemService, item)
		if err != nil {
			if strictMode || !skipInvalid {
				return fmt.Errorf("import failed for %q: %w", item.Name, err)
			}
			env.logger.Warn("Skipped item", zap.String("name", item.Name), zap.Error(err))
			skipped++
			continue
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}

	env.logger.Info("Import complete",
		zap.Int("created", created),
		zap.Int("updated", updated),
		zap.Int("skipped", skipped),
	)
	return nil
}

func validateItem(item ItemImport) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("empty name")
	}
	if item.Quantity < 0 {
		return fmt.Errorf("negative quantity not allowed")
	}
	if item.Price < 0 {
		return fmt.Errorf("negative price not allowed")
	}
	return nil
}

func importItem(ctx context.Context, itemService *services.ItemService, item ItemImport) (bool, error) {
	if err := validateItem(item); err != nil {
		return false, err
	}

	_, created, err := itemService.ImportItem(ctx, services.ItemInput{
		Name:     strings.TrimSpace(item.Name),
		Type:     item.Type,
		Quantity: item.Quantity,
		Price:    item.Price,
	})
	if err != nil {
		return false, fmt.Errorf("failed to import item: %w", err)
	}
	return created, nil
}
