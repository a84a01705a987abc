package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	gadsextractor "github.com/kataras/gads-extractor"
	"github.com/kataras/gads-extractor/pkg/formatter"
	"github.com/kataras/gads-extractor/pkg/googleads"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = googleads.Version

var (
	configPath    string
	outputFile    string
	customerID    string
	campaignID    int64
	generateToken bool
	port          int
	dryRun        bool
	quiet         bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gads-extractor",
		Short: "Extract campaigns, ad groups, ads and keywords from Google Ads",
		Long:  "A tool to extract campaign structure and performance metrics from a Google Ads account via the Google Ads API into a single JSON document",
		Run:   run,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", gadsextractor.DefaultConfigPath, "Path to the google-ads.yaml credentials file")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "google-ads-data.json", "Output JSON file")
	rootCmd.Flags().StringVar(&customerID, "customer-id", "", "Customer ID to extract (optional, defaults to login_customer_id)")
	rootCmd.Flags().Int64Var(&campaignID, "campaign-id", 0, "Restrict extraction to a single campaign (optional)")
	rootCmd.Flags().BoolVar(&generateToken, "generate-token", false, "Generate an OAuth2 refresh token and exit")
	rootCmd.Flags().IntVar(&port, "port", 8080, "Local port for the OAuth2 callback when generating a token")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the GAQL queries without calling the API")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors and the final result")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gads-extractor version %s\n", version)
		},
	}

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the customer accounts the credentials can access",
		Run:   listAccounts,
	}

	rootCmd.AddCommand(versionCmd, accountsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if generateToken {
		runGenerateToken(ctx)
		return
	}

	if dryRun {
		queries, err := gadsextractor.Queries(campaignID)
		if err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		for _, q := range queries {
			cyan.Printf("-- %s (%s)\n", q.Kind.Plural(), q.Resource)
			fmt.Printf("%s\n\n", q.Text)
		}
		return
	}

	cyan.Println("\n📈 Google Ads Data Extractor")
	cyan.Println("=============================")
	cyan.Println()

	opts := gadsextractor.Options{
		ConfigPath: configPath,
		CustomerID: customerID,
		CampaignID: campaignID,
	}
	if !quiet {
		opts.Logger = &cliLogger{}
	}

	result, err := gadsextractor.Run(ctx, opts)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Failed kinds were already reported through the logger.
	if quiet {
		for _, o := range result.Failed() {
			red.Printf("✗ %v\n", o.Err)
		}
	}

	green.Printf("\n💾 Writing to %s... ", outputFile)
	if err := formatter.WriteFile(outputFile, result.Snapshot); err != nil {
		red.Printf("✗\n")
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	green.Println("✓")

	green.Printf("\n✨ Data saved to %s\n\n", outputFile)
	fmt.Print(formatter.Summary(result.Snapshot))
}

func runGenerateToken(ctx context.Context) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🔑 Google Ads OAuth2 Token Generator")
	cyan.Println("=====================================")
	cyan.Println()

	token, err := gadsextractor.GenerateToken(ctx, gadsextractor.TokenOptions{
		ConfigPath: configPath,
		Port:       port,
		Logger:     &cliLogger{},
	})
	if err != nil {
		red.Printf("Error: %v\n", err)
		fmt.Println("\nMake sure you:")
		fmt.Println("- Created OAuth2 credentials in Google Cloud Console")
		fmt.Printf("- Added http://localhost:%d as an authorized redirect URI\n", port)
		fmt.Println("- Enabled the Google Ads API")
		os.Exit(1)
	}

	green.Println("\n✅ Success! Your refresh token is:")
	fmt.Printf("\n%s\n\n", token.RefreshToken)
	fmt.Printf("Add this to %s under 'refresh_token'\n\n", configPath)
}

func listAccounts(cmd *cobra.Command, args []string) {
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	opts := gadsextractor.Options{ConfigPath: configPath}
	if !quiet {
		opts.Logger = &cliLogger{}
	}

	accounts, err := gadsextractor.ListAccounts(cmd.Context(), opts)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cyan.Printf("\nAccessible customers (%d):\n", len(accounts))
	for _, id := range accounts {
		fmt.Printf("  • %s\n", id.Display())
	}
}

// cliLogger implements gadsextractor.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
