package cmd

import (
	"fmt"

	"github.com/jon4hz/quotevault/internal/notify/webpush"
	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Web push helpers",
}

var generateKeysCmd = &cobra.Command{
	Use:   "generate-keys",
	Short: "Generate VAPID keys for web push notifications",
	Long: `Generate VAPID keys for web push notifications.

Browsers subscribe with the public key and the daily quote is signed with the private key.
Add the generated keys to your configuration file under the webpush section.`,
	RunE: generateVAPIDKeys,
}

func init() {
	pushCmd.AddCommand(generateKeysCmd)
	rootCmd.AddCommand(pushCmd)
}

func generateVAPIDKeys(cmd *cobra.Command, _ []string) error {
	privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		return fmt.Errorf("failed to generate VAPID keys: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Private Key: %s\n", privateKey)
	fmt.Fprintf(w, "Public Key:  %s\n", publicKey)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "webpush:")
	fmt.Fprintln(w, "  enabled: true")
	fmt.Fprintln(w, "  vapid_email: \"your-email@example.com\"")
	fmt.Fprintf(w, "  private_key: \"%s\"\n", privateKey)
	fmt.Fprintf(w, "  public_key: \"%s\"\n", publicKey)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Keep the private key secret.")
	return nil
}
