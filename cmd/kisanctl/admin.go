package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"kisan_unnati/internal/client"
	"kisan_unnati/internal/model"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Dashboard and marketplace moderation (admin only)",
}

var adminDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show account and listing counts",
	RunE:  runAdminDashboard,
}

var adminProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "List and moderate marketplace listings",
}

var adminProductsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all marketplace listings",
	RunE:  runAdminProductsList,
}

var adminProductsSetStatusCmd = &cobra.Command{
	Use:   "set-status <product-id> <approved|pending|rejected>",
	Short: "Change a listing's moderation status",
	Long: `Change a listing's moderation status and print the refreshed list.

The list is always re-fetched from the server, so a failed update shows
up as the listing keeping its previous status.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdminProductsSetStatus,
}

func init() {
	adminProductsCmd.AddCommand(adminProductsListCmd, adminProductsSetStatusCmd)
	adminCmd.AddCommand(adminDashboardCmd, adminProductsCmd)
	rootCmd.AddCommand(adminCmd)
}

// enterAdmin runs an admin view through the session gate
func enterAdmin(a *app, name string, load func(ctx context.Context, token string) error) error {
	gate := client.NewGate(a.store, printNavigator{})
	err := gate.Enter(context.Background(), client.View{
		Name:     name,
		Roles:    []string{model.RoleAdmin},
		TokenKey: client.KeyAdminToken,
		Load:     load,
	})
	switch {
	case errors.Is(err, client.ErrUnauthenticated):
		return fmt.Errorf("admin login required: kisanctl login admin <email>")
	case errors.Is(err, client.ErrForbiddenRole):
		return fmt.Errorf("logged in as %s, admin role required", a.store.Role())
	}
	return err
}

func runAdminProductsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	return enterAdmin(a, "marketplace moderation", func(ctx context.Context, token string) error {
		return printProducts(a.client.ListProducts(ctx, token))
	})
}

func runAdminProductsSetStatus(cmd *cobra.Command, args []string) error {
	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	status, err := client.ParseProductStatus(args[1])
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	return enterAdmin(a, "marketplace moderation", func(ctx context.Context, token string) error {
		return printProducts(a.client.SetStatus(ctx, productID, status, token))
	})
}

func runAdminDashboard(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	return enterAdmin(a, "admin dashboard", func(ctx context.Context, token string) error {
		stats, err := a.client.DashboardStats(ctx, token)
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(stats)
		}
		w := newTable()
		printTableHeader(w, "GROUP", "TOTAL", "BREAKDOWN")
		fmt.Fprintf(w, "users\t%d\tfarmers %d, buyers %d, admins %d\n",
			stats.Users.Total, stats.Users.Farmers, stats.Users.Buyers, stats.Users.Admins)
		fmt.Fprintf(w, "shops\t%d\tactive %d\n", stats.Shopkeepers.Total, stats.Shopkeepers.Active)
		fmt.Fprintf(w, "products\t%d\tapproved %d, pending %d, rejected %d\n",
			stats.Products.Total, stats.Products.Approved, stats.Products.Pending, stats.Products.Rejected)
		return w.Flush()
	})
}

func printProducts(products []model.Product) error {
	if jsonOut {
		return printJSON(map[string]any{"products": products, "count": len(products)})
	}
	if len(products) == 0 {
		fmt.Println("No products found")
		return nil
	}

	w := newTable()
	printTableHeader(w, "ID", "NAME", "CATEGORY", "FARMER", "PRICE", "STOCK", "STATUS")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%d\t%s\n",
			p.ID, p.Name, p.Category, p.Farmer.Name, p.Price, p.Stock, p.Status)
	}
	return w.Flush()
}
