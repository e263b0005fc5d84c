package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tusharlock10/sentinel-hwreq/internal/collect"
	"github.com/tusharlock10/sentinel-hwreq/internal/config"
	"github.com/tusharlock10/sentinel-hwreq/internal/hwid"
	"github.com/tusharlock10/sentinel-hwreq/internal/hwinfo"
	"github.com/tusharlock10/sentinel-hwreq/internal/request"
)

// exitMissingIdentity is the reserved exit code for a machine on which a
// mandatory identity facet cannot be determined.
const exitMissingIdentity = 3

// version is set at build time via -ldflags "-X main.version=<version>"
var version string

func main() {
	rootCmd := &cobra.Command{
		Use:          "hwreq",
		Short:        "Collect a hardware ID and write a license request (no MACs)",
		Version:      version,
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().String("out", "", "Output filename (default: derived from the HWID)")
	rootCmd.Flags().StringSlice("features", []string{"AutoDrive"}, "Requested features")
	rootCmd.Flags().String("customer", "", "Customer label")
	rootCmd.Flags().String("profile", string(collect.ProfileGPU), `Identity profile: "gpu" or "machine"`)

	if err := rootCmd.Execute(); err != nil {
		var missing *collect.MissingIdentityError
		if errors.As(err, &missing) {
			os.Exit(exitMissingIdentity)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")
	features, _ := cmd.Flags().GetStringSlice("features")
	customer, _ := cmd.Flags().GetString("customer")
	profile, _ := cmd.Flags().GetString("profile")

	cfg := &config.Config{
		OutPath:  outPath,
		Features: features,
		Customer: customer,
		Profile:  collect.Profile(profile),
		Version:  version,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sys := hwinfo.New()
	res, err := collect.Run(sys, cfg.Profile)
	if err != nil {
		return err
	}

	tokens, digest := hwid.Canonicalize(res.Components)

	env := request.Env{
		Uname:        hwinfo.Uname(),
		InDockerHint: sys.InDocker(),
	}
	if cfg.Profile == collect.ProfileGPU {
		n := res.GPUCount
		env.GPUCount = &n
	}

	req := request.New(tokens, digest, cfg.Features, cfg.Customer, env)

	path := cfg.OutPath
	if path == "" {
		path = request.DefaultFilename(digest)
	}
	return req.Write(path, cmd.OutOrStdout())
}
