package main

import (
	"context"
	"errors"
	"fmt"

	"kisan_unnati/internal/client"

	"github.com/spf13/cobra"
)

var predictPriceCmd = &cobra.Command{
	Use:   "predict-price",
	Short: "Forecast the mandi price of a crop",
	Long: `Forecast the mandi price of a crop in a district.

Examples:
  kisanctl predict-price --crop wheat --district Indore
  kisanctl predict-price --crop onion --district Nashik --arrival-quantity 4500`,
	RunE: runPredictPrice,
}

var priceHistoryCmd = &cobra.Command{
	Use:   "price-history",
	Short: "Show monthly price history of a crop",
	RunE:  runPriceHistory,
}

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Show the selling risk for a crop",
	RunE:  runRisk,
}

func init() {
	for _, cmd := range []*cobra.Command{predictPriceCmd, priceHistoryCmd, riskCmd} {
		cmd.Flags().String("crop", "", "crop name")
		cmd.Flags().String("district", "", "district")
		_ = cmd.MarkFlagRequired("crop")
		_ = cmd.MarkFlagRequired("district")
	}
	predictPriceCmd.Flags().Float64("arrival-quantity", client.DefaultArrivalQuantity, "expected mandi arrivals in quintals")
	priceHistoryCmd.Flags().Int("months", 12, "number of months")

	rootCmd.AddCommand(predictPriceCmd, priceHistoryCmd, riskCmd)
}

// enterProtected runs load behind the session gate for any logged-in role
func enterProtected(a *app, name string, load func(ctx context.Context) error) error {
	gate := client.NewGate(a.store, printNavigator{})
	err := gate.Enter(context.Background(), client.View{
		Name:       name,
		RedirectTo: client.RouteLogin,
		Load:       func(ctx context.Context, _ string) error { return load(ctx) },
	})
	if errors.Is(err, client.ErrUnauthenticated) {
		return fmt.Errorf("login required: kisanctl login <farmer|shopkeeper|admin> <id>")
	}
	return err
}

func cropFlags(cmd *cobra.Command) (string, string) {
	crop, _ := cmd.Flags().GetString("crop")
	district, _ := cmd.Flags().GetString("district")
	return crop, district
}

func runPredictPrice(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	crop, district := cropFlags(cmd)
	qty, _ := cmd.Flags().GetFloat64("arrival-quantity")

	return enterProtected(a, "price prediction", func(ctx context.Context) error {
		p, err := a.client.PredictPrice(ctx, crop, district, qty)
		if err != nil {
			printError(err)
			return err
		}
		if jsonOut {
			return printJSON(p)
		}

		fmt.Printf("Predicted price: Rs %.2f/quintal\n", p.PredictedPrice)
		fmt.Printf("Risk level:      %s\n", p.RiskLevel)
		fmt.Printf("Confidence:      %.0f%%\n", p.Confidence*100)
		if p.HistoricalAvg != nil {
			fmt.Printf("Historical avg:  Rs %.2f\n", *p.HistoricalAvg)
		}
		if p.ForecastRange != nil {
			fmt.Printf("Forecast range:  Rs %.2f - %.2f\n", p.ForecastRange.Min, p.ForecastRange.Max)
		}
		if p.Note != "" {
			fmt.Printf("\n%s\n", p.Note)
		}
		return nil
	})
}

func runPriceHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	crop, district := cropFlags(cmd)
	months, _ := cmd.Flags().GetInt("months")

	return enterProtected(a, "price history", func(ctx context.Context) error {
		history := a.client.PriceHistory(ctx, crop, district, months)
		if jsonOut {
			return printJSON(history)
		}
		w := newTable()
		printTableHeader(w, "MONTH", "PRICE")
		for _, h := range history {
			fmt.Fprintf(w, "%s\t%.2f\n", h.Month, h.Price)
		}
		return w.Flush()
	})
}

func runRisk(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	crop, district := cropFlags(cmd)

	return enterProtected(a, "risk assessment", func(ctx context.Context) error {
		risk, err := a.client.RiskAssessment(ctx, crop, district)
		if err != nil {
			printError(err)
			return err
		}
		if jsonOut {
			return printJSON(risk)
		}
		fmt.Printf("Risk level: %s\n", risk.RiskLevel)
		for _, f := range risk.Factors {
			fmt.Printf("  - %s\n", f)
		}
		return nil
	})
}
