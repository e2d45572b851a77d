package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"kisan_unnati/internal/client"
	"kisan_unnati/internal/model"

	"github.com/spf13/cobra"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Shopkeeper dashboard: your shop and its stock",
	Long: `Show the logged-in shopkeeper's shop, stock and stock summary.

Examples:
  kisanctl login shopkeeper 9876543210
  kisanctl shop
  kisanctl shop stock add --name DAP --category खाद --price 1350 --quantity 40 --unit बोरी`,
	RunE: runShop,
}

var shopStockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Manage the items your shop carries",
}

var shopStockAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item",
	RunE:  runShopStockAdd,
}

var shopStockUpdateCmd = &cobra.Command{
	Use:   "update <item-id>",
	Short: "Replace an item's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopStockUpdate,
}

var shopStockDeleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopStockDelete,
}

var shopSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stock across all shops (no login needed)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShopSearch,
}

func init() {
	for _, cmd := range []*cobra.Command{shopStockAddCmd, shopStockUpdateCmd} {
		cmd.Flags().String("name", "", "item name")
		cmd.Flags().String("category", "", "खाद, बीज, कीटनाशक, उर्वरक, उपकरण or अन्य")
		cmd.Flags().Float64("price", 0, "price per unit in rupees")
		cmd.Flags().Int("quantity", 0, "units in stock")
		cmd.Flags().String("unit", "", "kg, लीटर, बोरी, पैक, थैली, बॉक्स or अन्य")
		cmd.Flags().Float64("discount", 0, "discount percent")
		cmd.Flags().String("description", "", "description")
		for _, name := range []string{"name", "category", "price", "quantity", "unit"} {
			_ = cmd.MarkFlagRequired(name)
		}
	}
	shopSearchCmd.Flags().String("category", "", "only this category")

	shopStockCmd.AddCommand(shopStockAddCmd, shopStockUpdateCmd, shopStockDeleteCmd)
	shopCmd.AddCommand(shopStockCmd, shopSearchCmd)
	rootCmd.AddCommand(shopCmd)
}

// shopView wraps load as the shopkeeper-only view
func shopView(load func(ctx context.Context, token string) error) client.View {
	return client.View{
		Name:       "shopkeeper dashboard",
		Roles:      []string{model.RoleShopkeeper},
		RedirectTo: client.RouteLogin,
		Load:       load,
	}
}

func enterShop(a *app, v client.View) error {
	err := client.NewGate(a.store, printNavigator{}).Enter(context.Background(), v)
	switch {
	case errors.Is(err, client.ErrUnauthenticated):
		return fmt.Errorf("shopkeeper login required: kisanctl login shopkeeper <phone>")
	case errors.Is(err, client.ErrForbiddenRole):
		return fmt.Errorf("logged in as %s, shopkeeper role required", a.store.Role())
	}
	return err
}

func stockRequestFromFlags(cmd *cobra.Command) model.StockRequest {
	name, _ := cmd.Flags().GetString("name")
	category, _ := cmd.Flags().GetString("category")
	price, _ := cmd.Flags().GetFloat64("price")
	quantity, _ := cmd.Flags().GetInt("quantity")
	unit, _ := cmd.Flags().GetString("unit")
	discount, _ := cmd.Flags().GetFloat64("discount")
	description, _ := cmd.Flags().GetString("description")
	return model.StockRequest{
		Name:        name,
		Category:    category,
		Price:       &price,
		Quantity:    &quantity,
		Unit:        unit,
		Discount:    discount,
		Description: description,
	}
}

func runShop(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	var dash client.ShopDashboard
	if err := enterShop(a, a.client.ShopDashboardView(&dash)); err != nil {
		return err
	}
	return printShopDashboard(dash)
}

func runShopStockAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	req := stockRequestFromFlags(cmd)
	return enterShop(a, shopView(func(ctx context.Context, token string) error {
		item, err := a.client.AddStock(ctx, token, req)
		if err != nil {
			return err
		}
		return printStock([]model.StockItem{*item})
	}))
}

func runShopStockUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	req := stockRequestFromFlags(cmd)
	return enterShop(a, shopView(func(ctx context.Context, token string) error {
		item, err := a.client.UpdateStock(ctx, token, id, req)
		if err != nil {
			return err
		}
		return printStock([]model.StockItem{*item})
	}))
}

func runShopStockDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	return enterShop(a, shopView(func(ctx context.Context, token string) error {
		if err := a.client.DeleteStock(ctx, token, id); err != nil {
			return err
		}
		if !jsonOut {
			fmt.Printf("Item %d removed\n", id)
		}
		return nil
	}))
}

func runShopSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	category, _ := cmd.Flags().GetString("category")

	results, err := a.client.SearchStock(context.Background(), query, category)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(map[string]any{"results": results, "count": len(results)})
	}
	if len(results) == 0 {
		fmt.Println("No items found")
		return nil
	}
	w := newTable()
	printTableHeader(w, "SHOP", "LOCATION", "ITEM", "CATEGORY", "PRICE", "QTY")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%d %s\n",
			r.ShopName, r.Location, r.Name, r.Category, r.Price, r.Quantity, r.Unit)
	}
	return w.Flush()
}

func printShopDashboard(dash client.ShopDashboard) error {
	if jsonOut {
		return printJSON(dash)
	}
	fmt.Printf("%s (%s)\n", dash.Shop.ShopName, dash.Shop.OwnerName)
	if loc := strings.Trim(strings.Join([]string{dash.Shop.Location, dash.Shop.District, dash.Shop.State}, ", "), ", "); loc != "" {
		fmt.Println(loc)
	}
	fmt.Printf("Items: %d  Value: ₹%.2f  Low stock: %d  Avg price: ₹%.2f\n\n",
		dash.Summary.TotalItems, dash.Summary.TotalValue, dash.Summary.LowStock, dash.Summary.AvgPrice)
	return printStock(dash.Stock)
}

func printStock(items []model.StockItem) error {
	if jsonOut {
		return printJSON(map[string]any{"stock": items, "count": len(items)})
	}
	if len(items) == 0 {
		fmt.Println("No stock yet")
		return nil
	}
	w := newTable()
	printTableHeader(w, "ID", "NAME", "CATEGORY", "PRICE", "DISCOUNT", "QTY", "")
	for _, item := range items {
		low := ""
		if item.Quantity < client.LowStockThreshold {
			low = "low"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.0f%%\t%d %s\t%s\n",
			item.ID, item.Name, item.Category, item.Price, item.Discount, item.Quantity, item.Unit, low)
	}
	return w.Flush()
}
