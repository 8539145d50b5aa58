// Package generate implements the configuration generation subcommand.
package generate

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ojiudezue/frigate-config-builder/internal/builder"
	"github.com/ojiudezue/frigate-config-builder/internal/conf"
	"github.com/ojiudezue/frigate-config-builder/internal/mqtt"
	"github.com/ojiudezue/frigate-config-builder/internal/observability"
)

// Command creates the generate command, which runs the full pipeline:
// discovery, generation, file write and optional push.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Discover cameras and generate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, settings)
		},
	}

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
	}

	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().BoolVar(&settings.Output.AutoPush, "push", viper.GetBool("output.autopush"), "Push the generated configuration to Frigate")
	cmd.Flags().StringVar(&settings.Output.FrigateURL, "frigate-url", viper.GetString("output.frigateurl"), "Frigate API base URL for pushing")
	cmd.Flags().Bool("check-broker", false, "Probe the resolved MQTT broker before generating")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}

func runGenerate(cmd *cobra.Command, settings *conf.Settings) error {
	ctx := cmd.Context()

	svc, err := builder.DirectoryService(settings)
	if err != nil {
		return err
	}

	var opts []builder.Option
	if settings.Observability.Enabled {
		metrics, err := observability.NewMetrics()
		if err != nil {
			return err
		}
		go func() {
			if err := metrics.Serve(ctx, settings.Observability.Listen); err != nil {
				fmt.Printf("metrics endpoint error: %v\n", err)
			}
		}()
		opts = append(opts, builder.WithMetrics(metrics))
	}

	if checkBroker, _ := cmd.Flags().GetBool("check-broker"); checkBroker {
		broker := mqtt.Resolve(svc, settings)
		if err := mqtt.Probe(ctx, broker); err != nil {
			return err
		}
	}

	b := builder.New(svc, settings, opts...)
	defer func() { _ = b.Close() }()

	result, err := b.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s with %d cameras in %s\n",
		settings.Output.Path, len(result.Catalog), result.Duration)
	return nil
}
