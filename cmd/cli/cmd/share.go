// Package cmd - share commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sudheer128/cloud4india-sub003/core/cart"
	"github.com/Sudheer128/cloud4india-sub003/core/pricing"
)

var shareCycle string

// shareCmd groups the share token operations.
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Encode and decode shareable cart tokens",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var shareEncodeCmd = &cobra.Command{
	Use:   "encode [cart.json]",
	Short: "Encode a cart file into a share token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := loadCartFile(args[0])
		if err != nil {
			return err
		}

		basket := cart.New()
		for _, item := range items {
			basket.AddItem(item)
		}

		token, err := cart.EncodeShareable(basket, pricing.CycleID(shareCycle))
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

var shareDecodeCmd = &cobra.Command{
	Use:   "decode [token]",
	Short: "Decode a share token back into its line items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := cart.DecodeShareable(args[0])
		if err != nil {
			return err
		}
		return printJSON(items)
	},
}

func init() {
	shareEncodeCmd.Flags().StringVarP(&shareCycle, "cycle", "b", "monthly", "default billing cycle recorded in the token")
	shareCmd.AddCommand(shareEncodeCmd)
	shareCmd.AddCommand(shareDecodeCmd)
}
