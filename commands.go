package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/tournevent/shipit/pkg/shipit"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var shippingsDate string

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List Shipit regions",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, c *shipit.Client, args []string) (any, error) {
		return c.GetRegions(cmd.Context())
	}),
}

var communesCmd = &cobra.Command{
	Use:   "communes",
	Short: "List Shipit communes",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, c *shipit.Client, args []string) (any, error) {
		return c.GetCommunes(cmd.Context())
	}),
}

var shippingsCmd = &cobra.Command{
	Use:   "shippings",
	Short: "List the packages of a day (default today)",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, c *shipit.Client, args []string) (any, error) {
		var day time.Time
		if shippingsDate != "" {
			var err error
			day, err = time.ParseInLocation("2006-01-02", shippingsDate, time.Local)
			if err != nil {
				return nil, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", shippingsDate)
			}
		}
		return c.GetAllShippings(cmd.Context(), day)
	}),
}

var shippingCmd = &cobra.Command{
	Use:   "shipping <id>",
	Short: "Show one package",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(cmd *cobra.Command, c *shipit.Client, args []string) (any, error) {
		s, err := c.GetShipping(cmd.Context(), args[0])
		if err != nil {
			return nil, err
		}
		return s.ToMap(), nil
	}),
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory <sku>",
	Short: "Show the stock of a SKU",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(cmd *cobra.Command, c *shipit.Client, args []string) (any, error) {
		inv, err := c.GetInventoryBySKU(cmd.Context(), args[0])
		if err != nil {
			return nil, err
		}
		return inv.ToMap(), nil
	}),
}

var ordersCmd = &cobra.Command{
	Use:   "orders <query>",
	Short: "Search orders",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(cmd *cobra.Command, c *shipit.Client, args []string) (any, error) {
		return c.QueryOrders(cmd.Context(), args[0])
	}),
}

var quotationCmd = &cobra.Command{
	Use:   "quotation <json>",
	Short: "Quote a parcel; prints the cheapest rate",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(cmd *cobra.Command, c *shipit.Client, args []string) (any, error) {
		var data any
		if err := json.Unmarshal([]byte(args[0]), &data); err != nil {
			return nil, fmt.Errorf("invalid quotation payload: %w", err)
		}
		return c.GetBestQuotation(cmd.Context(), data)
	}),
}

var packageSizeCmd = &cobra.Command{
	Use:   "package-size <width> <height> <length>",
	Short: "Print the size label for dimensions in cm",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		label, ok := shipit.PackageSize(args[0], args[1], args[2])
		if !ok {
			return fmt.Errorf("no size for %s x %s x %s", args[0], args[1], args[2])
		}
		fmt.Fprintln(cmd.OutOrStdout(), label)
		return nil
	},
}

var trackingURLCmd = &cobra.Command{
	Use:   "tracking-url <provider> <number>",
	Short: "Print the courier tracking page of a package",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, ok := shipit.TrackingURL(args[0], args[1])
		if !ok {
			return fmt.Errorf("unknown provider %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), u)
		return nil
	},
}

func init() {
	shippingsCmd.Flags().StringVar(&shippingsDate, "date", "", "day to list, YYYY-MM-DD")

	rootCmd.AddCommand(
		regionsCmd,
		communesCmd,
		shippingsCmd,
		shippingCmd,
		inventoryCmd,
		ordersCmd,
		quotationCmd,
		packageSizeCmd,
		trackingURLCmd,
	)
}

// withClient builds a client from the environment, runs fn and prints its
// result as indented JSON.
func withClient(fn func(cmd *cobra.Command, c *shipit.Client, args []string) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := initShipitClient(cfg, otelzap.New(zap.NewNop()), nil)

		out, err := fn(cmd, client, args)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
