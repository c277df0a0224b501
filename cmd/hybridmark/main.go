// Command hybridmark embeds and extracts invisible watermarks in raster
// images from the command line.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/tastefully-stained/hybridmark"
	"github.com/tastefully-stained/hybridmark/internal/cliconfig"
)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "hybridmark",
		Short:   "Invisible image watermarking with hybrid DCT/DWT embedding",
		Version: getVersion(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default ~/.hybridmark/config.toml),
			// then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			cmd.InheritedFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cliconfig.ApplyFileConfig(&cfg, fc, changed)
			}
			cliconfig.ApplyEnvConfig(&cfg, changed)

			if err := cfg.Validate(); err != nil {
				return err
			}
			cliconfig.SetLevel(cfg.LogLevel)
			return nil
		},
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to TOML config file")
	pf.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "embedding strategy: auto, dct, dwt, hybrid")
	pf.Float64Var(&cfg.Strength, "strength", cfg.Strength, "embedding strength in (0,1]")
	pf.IntVar(&cfg.BlockSize, "block-size", cfg.BlockSize, "DCT block edge length")
	pf.IntVar(&cfg.PyramidLevels, "levels", cfg.PyramidLevels, "wavelet decomposition depth")
	pf.IntVar(&cfg.Redundancy, "redundancy", cfg.Redundancy, "carrier slots per coded bit")
	pf.Float64Var(&cfg.ConfidenceThreshold, "confidence-threshold", cfg.ConfidenceThreshold, "minimum confidence for recovery")
	pf.Float64Var(&cfg.EdgeThreshold, "edge-threshold", cfg.EdgeThreshold, "auto selection: edge density threshold")
	pf.Float64Var(&cfg.VarianceThreshold, "variance-threshold", cfg.VarianceThreshold, "auto selection: region variance threshold")
	pf.Int64Var(&cfg.ShuffleSeed, "seed", cfg.ShuffleSeed, "payload shuffle seed (0 uses the default)")
	pf.IntVar(&cfg.JPEGQuality, "jpeg-quality", cfg.JPEGQuality, "quality for JPEG output in [1,100]")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: trace..error")

	root.AddCommand(
		newEmbedCmd(&cfg, log),
		newExtractCmd(&cfg, log),
		newCapacityCmd(&cfg),
		newAnalyzeCmd(&cfg),
	)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// codecOptions converts CLI config into library options.
func codecOptions(cfg *cliconfig.Config) ([]hybridmark.Option, error) {
	strat, err := hybridmark.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	opts := []hybridmark.Option{
		hybridmark.WithStrategy(strat),
		hybridmark.WithStrength(cfg.Strength),
		hybridmark.WithBlockSize(cfg.BlockSize),
		hybridmark.WithPyramidLevels(cfg.PyramidLevels),
		hybridmark.WithRedundancy(cfg.Redundancy),
		hybridmark.WithConfidenceThreshold(cfg.ConfidenceThreshold),
		hybridmark.WithSelectionThresholds(cfg.EdgeThreshold, cfg.VarianceThreshold),
	}
	if cfg.ShuffleSeed != 0 {
		opts = append(opts, hybridmark.WithShuffleSeed(cfg.ShuffleSeed))
	}
	return opts, nil
}

func newEmbedCmd(cfg *cliconfig.Config, log zerolog.Logger) *cobra.Command {
	var in, out, payloadStr, payloadFile string
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Embed a payload into an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := []byte(payloadStr)
			if payloadFile != "" {
				var err error
				data, err = os.ReadFile(payloadFile)
				if err != nil {
					return fmt.Errorf("read payload: %w", err)
				}
			}
			if len(data) == 0 {
				return fmt.Errorf("empty payload: set --payload or --payload-file")
			}

			src, err := loadImage(in)
			if err != nil {
				return err
			}
			src = capEdge(src, cfg.MaxEdge)

			opts, err := codecOptions(cfg)
			if err != nil {
				return err
			}
			marked, err := hybridmark.Embed(context.Background(), src, data, opts...)
			if err != nil {
				return err
			}
			if err := saveImage(out, marked, cfg.JPEGQuality); err != nil {
				return err
			}
			log.Info().
				Str("out", out).
				Int("payload_bytes", len(data)).
				Float64("psnr_db", hybridmark.PSNR(src, marked)).
				Float64("mean_delta", hybridmark.MeanAbsDelta(src, marked)).
				Msg("embedded")
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "input image (png or jpeg)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image path")
	cmd.Flags().StringVarP(&payloadStr, "payload", "p", "", "payload string")
	cmd.Flags().StringVar(&payloadFile, "payload-file", "", "read payload from file")
	cmd.Flags().IntVar(&cfg.MaxEdge, "max-edge", cfg.MaxEdge, "downscale inputs whose longest edge exceeds this (0 disables)")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newExtractCmd(cfg *cliconfig.Config, log zerolog.Logger) *cobra.Command {
	var in string
	var raw bool
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a payload from an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadImage(in)
			if err != nil {
				return err
			}
			opts, err := codecOptions(cfg)
			if err != nil {
				return err
			}
			out, err := hybridmark.Extract(context.Background(), src, opts...)
			if err != nil {
				return err
			}
			log.Info().
				Bool("recovered", out.Recovered).
				Str("strategy", out.StrategyUsed.String()).
				Float64("confidence", out.Confidence).
				Msg("extracted")
			if out.Payload != nil {
				if raw {
					_, _ = os.Stdout.Write(out.Payload)
				} else {
					fmt.Printf("payload: %q\nhex: %s\n", out.Payload, hex.EncodeToString(out.Payload))
				}
			}
			if !out.Recovered {
				return fmt.Errorf("no recoverable watermark (confidence %.3f)", out.Confidence)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "input image (png or jpeg)")
	cmd.Flags().BoolVar(&raw, "raw", false, "write raw payload bytes to stdout")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newCapacityCmd(cfg *cliconfig.Config) *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Report payload capacity per strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadImage(in)
			if err != nil {
				return err
			}
			opts, err := codecOptions(cfg)
			if err != nil {
				return err
			}
			for _, s := range []hybridmark.Strategy{
				hybridmark.StrategyDCT, hybridmark.StrategyDWT, hybridmark.StrategyHybrid,
			} {
				bits, err := hybridmark.EstimateCapacity(src, s, opts...)
				if err != nil {
					return err
				}
				fmt.Printf("%-7s %6d bits (%d bytes)\n", s, bits, bits/8)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "input image (png or jpeg)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newAnalyzeCmd(cfg *cliconfig.Config) *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report image characteristics and the auto-selected strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadImage(in)
			if err != nil {
				return err
			}
			opts, err := codecOptions(cfg)
			if err != nil {
				return err
			}
			o, err := hybridmark.New(opts...)
			if err != nil {
				return err
			}
			c := hybridmark.Analyze(src)
			fmt.Printf("variance:      %.2f\n", c.Variance)
			fmt.Printf("edge density:  %.4f\n", c.EdgeDensity)
			fmt.Printf("dynamic range: %.3f\n", c.DynamicRange)
			fmt.Printf("selected:      %s\n", o.SelectStrategy(c))
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "input image (png or jpeg)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
