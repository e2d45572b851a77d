package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kisan_unnati/internal/client"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow login and logout from other kisanctl processes",
	Long: `Print the session state whenever it changes. Logins and logouts made by
other kisanctl processes sharing the same store are picked up as they
happen.`,
	RunE: runWatch,
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Save first-run preferences",
	RunE:  runOnboard,
}

func init() {
	onboardCmd.Flags().String("language", "hi", "preferred language")
	onboardCmd.Flags().String("name", "", "name")
	onboardCmd.Flags().String("state", "", "state")
	onboardCmd.Flags().String("district", "", "district")
	onboardCmd.Flags().String("pincode", "", "pincode")
	onboardCmd.Flags().Bool("skip", false, "skip onboarding without saving preferences")

	rootCmd.AddCommand(watchCmd, onboardCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	header, unsubHeader := client.NewAuthState(a.store, a.notifier)
	defer unsubHeader()
	banner, unsubBanner := client.NewOnboardingGate(client.NewPreferences(a.store), a.notifier)
	defer unsubBanner()

	report := func() {
		if jsonOut {
			_ = printJSON(map[string]any{
				"authenticated":  header.Authenticated(),
				"role":           header.Role(),
				"name":           header.Name(),
				"showOnboarding": banner.ShowOnboarding(),
			})
			return
		}
		if header.Authenticated() {
			fmt.Printf("logged in: %s (%s)\n", header.Name(), header.Role())
		} else {
			fmt.Println("logged out")
		}
		if banner.ShowOnboarding() {
			fmt.Println("onboarding pending: run kisanctl onboard")
		}
	}
	// subscribed after the observers so they re-evaluate first
	unsubReport := a.notifier.Subscribe(report)
	defer unsubReport()

	if err := a.notifier.WatchFile(ctx, a.storage); err != nil {
		return err
	}
	report()
	<-ctx.Done()
	return nil
}

func runOnboard(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	prefs := client.NewPreferences(a.store)

	if skip, _ := cmd.Flags().GetBool("skip"); skip {
		if err := prefs.Skip(); err != nil {
			return err
		}
		fmt.Println("Onboarding skipped")
		return nil
	}

	flags := cmd.Flags()
	p := client.UserPreferences{IsLoggedIn: a.store.IsAuthenticated()}
	p.Language, _ = flags.GetString("language")
	p.Name, _ = flags.GetString("name")
	p.State, _ = flags.GetString("state")
	p.District, _ = flags.GetString("district")
	p.Pincode, _ = flags.GetString("pincode")

	if err := prefs.Complete(p); err != nil {
		return err
	}
	if jsonOut {
		return printJSON(p)
	}
	fmt.Println("Preferences saved")
	return nil
}
