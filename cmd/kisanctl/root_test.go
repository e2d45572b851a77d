package main

import (
	"path/filepath"
	"testing"
	"time"

	"kisan_unnati/internal/client"
	"kisan_unnati/internal/model"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("KISAN_API_URL", "http://api.kisan.test")
	t.Setenv("KISAN_TIMEOUT", "5s")
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")

	initConfig()
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://api.kisan.test", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "store.json", filepath.Base(cfg.StorePath))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Suresh, Krishi Kendra", displayName(client.User{Name: "Suresh", ShopName: "Krishi Kendra"}))
	assert.Equal(t, "(unnamed)", displayName(client.User{}))
}

func TestPrintProducts_Empty(t *testing.T) {
	assert.NoError(t, printProducts([]model.Product{}))
}

func TestStockRequestFromFlags(t *testing.T) {
	cmd := shopStockAddCmd
	require.NoError(t, cmd.Flags().Set("name", "DAP"))
	require.NoError(t, cmd.Flags().Set("category", "खाद"))
	require.NoError(t, cmd.Flags().Set("price", "1350"))
	require.NoError(t, cmd.Flags().Set("quantity", "0"))
	require.NoError(t, cmd.Flags().Set("unit", "बोरी"))

	req := stockRequestFromFlags(cmd)
	assert.Equal(t, "DAP", req.Name)
	require.NotNil(t, req.Quantity)
	assert.Equal(t, 0, *req.Quantity)
	assert.Equal(t, 1350.0, *req.Price)
}

func TestShopView_ShopkeeperOnly(t *testing.T) {
	v := shopView(nil)
	assert.Equal(t, []string{model.RoleShopkeeper}, v.Roles)
	assert.Equal(t, client.RouteLogin, v.RedirectTo)
}

func TestPrintStock(t *testing.T) {
	assert.NoError(t, printStock(nil))
	assert.NoError(t, printStock([]model.StockItem{{ID: 1, Name: "Urea", Quantity: 3, Unit: "बोरी"}}))
}
