package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"kisan_unnati/internal/client"
	"kisan_unnati/internal/model"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login <farmer|shopkeeper|admin> <email-or-phone>",
	Short: "Log in and store the session",
	Long: `Log in and store the session for every kisanctl command.

Farmers and admins log in with their email, shopkeepers with their
10 digit phone number.

Examples:
  kisanctl login farmer ramesh@example.com
  kisanctl login shopkeeper 9876543210 --password secret1`,
	Args: cobra.ExactArgs(2),
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a farmer account",
	RunE:  runRegister,
}

var registerShopCmd = &cobra.Command{
	Use:   "register-shop",
	Short: "Register a shop",
	RunE:  runRegisterShop,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored session",
	RunE:  runWhoami,
}

func init() {
	for _, cmd := range []*cobra.Command{loginCmd, registerCmd, registerShopCmd} {
		cmd.Flags().StringP("password", "p", "", "password (prompted when omitted, or use KISAN_PASSWORD)")
	}

	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("email", "", "email address")
	registerCmd.Flags().String("phone", "", "phone number")
	registerCmd.Flags().String("address", "", "address")
	registerCmd.Flags().String("district", "", "district")
	registerCmd.Flags().String("state", "", "state")
	registerCmd.Flags().String("pincode", "", "pincode")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("phone")

	registerShopCmd.Flags().String("shop-name", "", "shop name")
	registerShopCmd.Flags().String("owner", "", "owner name")
	registerShopCmd.Flags().String("phone", "", "10 digit phone number")
	registerShopCmd.Flags().String("location", "", "shop address")
	registerShopCmd.Flags().String("district", "", "district")
	registerShopCmd.Flags().String("state", "", "state")

	rootCmd.AddCommand(loginCmd, registerCmd, registerShopCmd, logoutCmd, whoamiCmd)
}

func readPassword(cmd *cobra.Command) (string, error) {
	if pw, _ := cmd.Flags().GetString("password"); pw != "" {
		return pw, nil
	}
	if pw := os.Getenv("KISAN_PASSWORD"); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	role, identifier := strings.ToLower(args[0]), args[1]

	a, err := newApp()
	if err != nil {
		return err
	}
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	session, err := a.client.Login(context.Background(), role, identifier, password)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		if err := printJSON(map[string]any{"role": session.Role, "user": session.User}); err != nil {
			return err
		}
	} else {
		fmt.Printf("Logged in as %s (%s)\n", displayName(session.User), session.Role)
	}
	a.client.WaitNavigation()
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	req := client.RegisterRequest{Password: password, Role: model.RoleFarmer}
	req.Name, _ = flags.GetString("name")
	req.Email, _ = flags.GetString("email")
	req.Phone, _ = flags.GetString("phone")
	req.Location.Address, _ = flags.GetString("address")
	req.Location.District, _ = flags.GetString("district")
	req.Location.State, _ = flags.GetString("state")
	req.Location.Pincode, _ = flags.GetString("pincode")

	session, err := a.client.Register(context.Background(), req)
	if err != nil {
		printError(err)
		return err
	}
	if session == nil {
		fmt.Println("Registered. Log in to continue.")
		return nil
	}
	fmt.Printf("Registered and logged in as %s (%s)\n", displayName(session.User), session.Role)
	a.client.WaitNavigation()
	return nil
}

func runRegisterShop(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	req := client.ShopkeeperRegistration{Password: password, ConfirmPassword: password}
	req.ShopName, _ = flags.GetString("shop-name")
	req.OwnerName, _ = flags.GetString("owner")
	req.Phone, _ = flags.GetString("phone")
	req.Location, _ = flags.GetString("location")
	req.District, _ = flags.GetString("district")
	req.State, _ = flags.GetString("state")

	if err := a.client.RegisterShopkeeper(context.Background(), req); err != nil {
		printError(err)
		return err
	}
	fmt.Printf("Shop %q registered. Log in with: kisanctl login shopkeeper %s\n", req.ShopName, req.Phone)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	a.client.Logout(context.Background())
	fmt.Println("Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	session, ok := a.store.Session()
	if !ok {
		if jsonOut {
			return printJSON(map[string]any{"authenticated": false})
		}
		fmt.Println("Not logged in")
		return nil
	}
	if jsonOut {
		return printJSON(map[string]any{"authenticated": true, "role": session.Role, "user": session.User})
	}

	w := newTable()
	printTableHeader(w, "NAME", "ROLE", "EMAIL", "PHONE")
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", displayName(session.User), session.Role, session.User.Email, session.User.Phone)
	return w.Flush()
}

func displayName(u client.User) string {
	if u.ShopName != "" {
		return fmt.Sprintf("%s, %s", u.Name, u.ShopName)
	}
	if u.Name == "" {
		return "(unnamed)"
	}
	return u.Name
}
