// Command kisanctl is the Kisan Unnati client for farmers, shopkeepers and
// admins. It keeps the session in a local store file shared by every
// kisanctl process of the same user.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
