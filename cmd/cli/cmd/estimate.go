// Package cmd - estimate command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sudheer128/cloud4india-sub003/core/cart"
	"github.com/Sudheer128/cloud4india-sub003/core/pricing"
	"github.com/Sudheer128/cloud4india-sub003/internal/config"
)

var (
	estimateCycle    string
	estimateCurrency string
)

// estimateCmd prices a cart file.
var estimateCmd = &cobra.Command{
	Use:   "estimate [cart.json]",
	Short: "Price a cart configuration",
	Long: `Read cart line items from a JSON file and print the estimate:
per-line totals, subtotal, GST and grand total.

The file holds an array of line items:
  [{"service": {"slug": "virtual-machines", "name": "Virtual Machines"},
    "plan": {"id": "42", "name": "VM 4GB", "monthly_price": 500},
    "quantity": 2}]`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&estimateCycle, "cycle", "b", "monthly", "billing cycle (hourly, monthly, quarterly, semi-annually, yearly, bi-annually, tri-annually)")
	estimateCmd.Flags().StringVarP(&estimateCurrency, "currency", "c", "", "display currency (INR, USD, EUR, GBP)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	items, err := loadCartFile(args[0])
	if err != nil {
		return err
	}

	basket := cart.New()
	for _, item := range items {
		basket.AddItem(item)
	}

	cfg := config.Get()
	currency := estimateCurrency
	if currency == "" {
		currency = cfg.Pricing.DefaultCurrency
	}

	engine := pricing.NewEngine(cfg.PricingSettings())
	est := cart.ComputeEstimate(basket, engine, pricing.CycleID(estimateCycle), currency)
	return printJSON(est)
}

func loadCartFile(path string) ([]cart.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}
	var items []cart.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("invalid cart file: %w", err)
	}
	return items, nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
