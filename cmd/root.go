package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/glitchub/sscan/localnet"
	"github.com/glitchub/sscan/scan"
	"github.com/glitchub/sscan/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var port = 22
var vnc bool
var connectMS = 250
var bannerMS = 2000
var workers = 64
var debug bool
var versionRequested bool

func init() {
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", port, "TCP port to probe")
	rootCmd.PersistentFlags().BoolVarP(&vnc, "vnc", "v", vnc, "Probe for VNC (port 5900, overrides -p)")
	rootCmd.PersistentFlags().IntVarP(&connectMS, "connect-ms", "c", connectMS, "Connect timeout in MS")
	rootCmd.PersistentFlags().IntVarP(&bannerMS, "banner-ms", "b", bannerMS, "Banner read timeout in MS, 0 to skip the banner read")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "n", workers, "Maximum concurrent probes")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", debug, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&versionRequested, "version", "", versionRequested, "Output version information and exit")
}

func validateOptions() error {
	if vnc {
		port = 5900
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be in 1..65535, got %d", port)
	}
	if connectMS <= 0 {
		return fmt.Errorf("connect timeout must be > 0 MS, got %d", connectMS)
	}
	if bannerMS < 0 {
		return fmt.Errorf("banner timeout must be >= 0 MS, got %d", bannerMS)
	}
	if workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", workers)
	}
	return nil
}

// resolveSubnets parses the subnet args, or auto-detects the host's own
// subnets when none were given.
func resolveSubnets(args []string) ([]scan.CIDRBlock, error) {
	specs := args
	if len(specs) == 0 {
		log.Debugf("no subnets given, auto-detecting...")
		detected, err := localnet.Discover()
		if err != nil {
			return nil, err
		}
		specs = detected
	}

	blocks := make([]scan.CIDRBlock, 0, len(specs))
	for _, spec := range specs {
		block, err := scan.ParseCIDR(spec)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func blockList(blocks []scan.CIDRBlock) string {
	strs := make([]string, len(blocks))
	for i, b := range blocks {
		strs[i] = b.String()
	}
	return strings.Join(strs, " ")
}

var rootCmd = &cobra.Command{
	Use:   "sscan [flags] [subnet ...]",
	Short: "sscan probes subnets for listening TCP services",
	Long:  `Scans one or more IPv4 subnets for hosts with an open TCP port, reporting each responder and the first line of any service banner.`,
	Run: func(cmd *cobra.Command, args []string) {

		if versionRequested {
			v := version.Version
			if v == "" {
				v = "development version"
			}
			fmt.Printf("sscan %s\n", v)
			return
		}

		if debug {
			log.SetLevel(log.DebugLevel)
		}

		if err := validateOptions(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			_ = cmd.Usage()
			os.Exit(1)
		}

		blocks, err := resolveSubnets(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			var specErr *scan.InvalidSpecError
			if errors.As(err, &specErr) {
				_ = cmd.Usage()
			}
			os.Exit(1)
		}

		addrs := scan.Expand(blocks)
		log.Debugf("scanning %d addresses with %d workers", len(addrs), workers)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		interrupted := make(chan os.Signal, 1)
		signal.Notify(interrupted, os.Interrupt)
		go func() {
			<-interrupted
			fmt.Fprintln(os.Stderr, "\nInterrupted")
			os.Exit(1)
		}()

		service := scan.DescribeService(port)
		fmt.Fprintf(os.Stderr, "Scanning %s (%d hosts) for %s servers...\n", blockList(scan.Compress(addrs)), len(addrs), service)

		prober := &scan.TCPProber{
			ConnectTimeout: time.Duration(connectMS) * time.Millisecond,
			BannerTimeout:  time.Duration(bannerMS) * time.Millisecond,
		}
		scanner := scan.New(prober, workers, os.Stdout)

		summary := scanner.Run(ctx, addrs, port)

		if summary.Found == 0 {
			fmt.Fprintln(os.Stderr, "No servers found")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "%d server(s) found\n", summary.Found)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
