package commands

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"zoomgrab/lib/cliutil"
	"zoomgrab/lib/configutil"
	"zoomgrab/lib/gophish"
	"zoomgrab/lib/restyutil"
	"zoomgrab/lib/scrapers/zoominfo"
	"zoomgrab/lib/sinks"
	"zoomgrab/lib/telemetry"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

const banner = `
███████╗ ██████╗  ██████╗ ███╗   ███╗ ██████╗ ██████╗  █████╗ ██████╗
╚══███╔╝██╔═══██╗██╔═══██╗████╗ ████║██╔════╝ ██╔══██╗██╔══██╗██╔══██╗
  ███╔╝ ██║   ██║██║   ██║██╔████╔██║██║  ███╗██████╔╝███████║██████╔╝
 ███╔╝  ██║   ██║██║   ██║██║╚██╔╝██║██║   ██║██╔══██╗██╔══██║██╔══██╗
███████╗╚██████╔╝╚██████╔╝██║ ╚═╝ ██║╚██████╔╝██║  ██║██║  ██║██████╔╝
╚══════╝ ╚═════╝  ╚═════╝ ╚═╝     ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝

An OSINT tool designed to scrape employee data from zoominfo.com.
Results may be delayed due to bypassing Cloudflare's anti-bot protection.
`

// Config carries the knobs that used to be hard-coded: an outbound
// proxy, extra request headers and the results-banner wording, which
// has changed under the site's feet before.
type Config struct {
	Proxy         string            `json:"proxy"`
	Headers       map[string]string `json:"headers"`
	BannerPattern string            `json:"banner_pattern"`
}

var (
	domain         *string
	usernameFormat *string
	outputDir      *string
	outputFormat   *string
	quiet          *bool
	verbose        *bool
	gophishUrl     *string
	gophishApiKey  *string
	debugHttpDir   *string
)

func init() {
	domain = rootCmd.Flags().StringP("domain", "d", "", "The domain of the targeted company")
	usernameFormat = rootCmd.Flags().StringP("username-format", "u", "", "firstlast|firstmlast|flast|lastf|first.last|first_last|fmlast|full")
	outputDir = rootCmd.Flags().StringP("output-dir", "o", "", "Save results to path")
	outputFormat = rootCmd.Flags().StringP("output-format", "f", "", "flat|csv|json|sqlite")
	quiet = rootCmd.Flags().BoolP("quiet", "q", false, "Hide banner at runtime")
	verbose = rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")
	gophishUrl = rootCmd.Flags().String("gophish-url", "", "Admin url of a gophish instance to import results into")
	gophishApiKey = rootCmd.Flags().String("gophish-api-key", "", "Api key for the gophish instance")
	debugHttpDir = rootCmd.Flags().String("debug-http", "", "Dump every HTTP exchange to this directory")

	rootCmd.MarkFlagRequired("domain")
	rootCmd.MarkFlagRequired("username-format")
}

var rootCmd = &cobra.Command{
	Use:   "zoomgrab <company name or listing url>",
	Short: "zoomgrab scrapes employee directories and synthesizes corporate email addresses.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
		if !*quiet {
			fmt.Println(text.FgRed.Sprint(banner))
		}

		run(cmd.Context(), args[0])
	},
}

func run(ctx context.Context, target string) {
	convention, err := zoominfo.ParseConvention(*usernameFormat)
	if err != nil {
		cliutil.Fatal("invalid --username-format", err)
	}

	cfg, err := configutil.ReadRecursively[Config]("zoomgrab.json5")
	if err != nil && !os.IsNotExist(err) {
		cliutil.Fatal("failed to read zoomgrab.json5", err)
	}

	bannerPattern := zoominfo.DefaultBannerPattern
	if cfg.BannerPattern != "" {
		bannerPattern, err = regexp.Compile(cfg.BannerPattern)
		if err != nil {
			cliutil.Fatal("invalid banner_pattern in config", err)
		}
	}

	if *debugHttpDir != "" {
		zoominfo.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(*debugHttpDir))
	}

	link := target
	if !zoominfo.IsListingUrl(target) {
		resolver := zoominfo.NewResolver(zoominfo.ResolverOptions{
			Proxy:   cfg.Proxy,
			Headers: cfg.Headers,
			Chooser: promptChooser{},
		})
		link, err = resolver.Resolve(ctx, target)
		if err != nil {
			cliutil.Fatal("failed to resolve target", err)
		}
	}

	var output *sinks.Writer
	if *outputDir != "" && *outputFormat != "" {
		format, err := sinks.ParseFormat(*outputFormat)
		if err != nil {
			cliutil.Fatal("invalid --output-format", err)
		}
		output, err = sinks.NewWriter(*outputDir, *domain, convention, format)
		if err != nil {
			cliutil.Fatal("failed to open output", err)
		}
		defer output.Close()
	}

	var gophishClient *gophish.Client
	if *gophishUrl != "" && *gophishApiKey != "" {
		gophishClient = gophish.NewClient(gophish.ClientOptions{
			AdminUrl:      *gophishUrl,
			ApiKey:        *gophishApiKey,
			SkipTlsVerify: true,
		})
	}

	client, err := zoominfo.NewClient(ctx, zoominfo.ClientOptions{
		BaseUrl: link,
		Proxy:   cfg.Proxy,
		Headers: cfg.Headers,
	})
	if err != nil {
		cliutil.Fatal("failed to retrieve scrape page", err)
	}

	scraper := zoominfo.NewScraper(client, zoominfo.ScraperOptions{
		Convention:    convention,
		Domain:        *domain,
		BannerPattern: bannerPattern,
		Output:        sink(output),
		Gophish:       gophishClient,
	})
	_, err = scraper.Run(ctx)
	if err != nil {
		cliutil.Fatal("scrape failed", err)
	}
}

// keeps a nil *sinks.Writer from turning into a non-nil Sink interface
func sink(w *sinks.Writer) zoominfo.Sink {
	if w == nil {
		return nil
	}
	return w
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
