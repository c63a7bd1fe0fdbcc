package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgpai22/sbv2srt/internal/convert"
	"github.com/mgpai22/sbv2srt/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// set at build time via ldflags
var version = "dev"

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cfg := viper.New()
	var logger *logging.Logger

	cmd := &cobra.Command{
		Use:   "sbv2srt [input.sbv]",
		Short: "Convert SBV captions to SRT subtitles",
		Long: `sbv2srt converts SubViewer/YouTube caption files (.sbv) into
SubRip subtitles (.srt).

Cues are renumbered from 1 and timestamps are rewritten from h:mm:ss.ttt to
hh:mm:ss,ttt. Lines that are not part of a cue are skipped.

Settings can also come from environment variables prefixed with SBV2SRT_
(e.g. SBV2SRT_CRLF=true) or from a sbv2srt.yaml config file.

Examples:
  sbv2srt --input captions.sbv
  sbv2srt -i captions.sbv -o subtitles/captions.srt
  sbv2srt captions.sbv --crlf --bom`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(cmd, cfg); err != nil {
				return err
			}
			logger = logging.NewLogger(cfg.GetBool("verbose"))
			if used := cfg.ConfigFileUsed(); used != "" {
				logger.Debugw("Using config file", "path", used)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, cfg, logger)
		},
	}

	cmd.PersistentFlags().
		BoolP("verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().
		String("config", "", "Config file (default: ./sbv2srt.yaml or ~/.config/sbv2srt/sbv2srt.yaml)")

	cmd.Flags().StringP("input", "i", "", "Input SBV file (or pass it as the only argument)")
	cmd.Flags().StringP("output", "o", "", "Output SRT file (default: input with .srt extension)")
	cmd.Flags().Bool("crlf", false, "Write CRLF line endings")
	cmd.Flags().Bool("bom", false, "Prefix the output with a UTF-8 byte order mark")

	_ = cfg.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
	_ = cfg.BindPFlag("crlf", cmd.Flags().Lookup("crlf"))
	_ = cfg.BindPFlag("bom", cmd.Flags().Lookup("bom"))

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func initConfig(cmd *cobra.Command, cfg *viper.Viper) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		cfg.SetConfigFile(cfgFile)
	} else {
		cfg.SetConfigName("sbv2srt")
		cfg.SetConfigType("yaml")
		cfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			cfg.AddConfigPath(filepath.Join(home, ".config", "sbv2srt"))
		}
	}

	cfg.SetEnvPrefix("SBV2SRT")
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func runConvert(cmd *cobra.Command, args []string, cfg *viper.Viper, logger *logging.Logger) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	if len(args) == 1 {
		if inputPath != "" && inputPath != args[0] {
			return fmt.Errorf(
				"input given twice: --input %q and argument %q",
				inputPath,
				args[0],
			)
		}
		inputPath = args[0]
	}

	opts := convert.Options{
		Input:  inputPath,
		Output: outputPath,
		CRLF:   cfg.GetBool("crlf"),
		BOM:    cfg.GetBool("bom"),
	}

	logger.Debugw("Starting conversion",
		"input", opts.Input,
		"output", opts.Output,
		"crlf", opts.CRLF,
		"bom", opts.BOM,
	)

	result, err := convert.Run(cmd.Context(), opts, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully converted %s to %s\n",
		filepath.Base(result.Input),
		filepath.Base(result.Output),
	)
	return nil
}

// Execute runs the root command and reports any failure on stderr.
func Execute() error {
	return execute(context.Background(), rootCmd)
}

func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}
