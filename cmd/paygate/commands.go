package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"paygate/config"
	"paygate/entity"
	"paygate/internal"
	"paygate/services"
)

type rootFlags struct {
	configPath string
	provider   string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "paygate",
		Short:         "Client for the legacy NVP payment gateway API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "conf", "config.yml", "path to config file")
	root.PersistentFlags().StringVar(&flags.provider, "provider", "express_checkout", "gateway provider: express_checkout or adaptive_payments")

	root.AddCommand(newCallCommand(flags), newVerifyCommand(flags), newServeCommand(flags))
	return root
}

func newCallCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "call METHOD [KEY=VALUE...]",
		Short: "Execute a gateway operation and print the outcome",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := parseOptions(args[1:])
			if err != nil {
				return err
			}
			client, _, err := setup(flags)
			if err != nil {
				return err
			}
			outcome := client.Execute(context.Background(), args[0], options)
			return printOutcome(cmd.OutOrStdout(), outcome)
		},
	}
}

func newVerifyCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-ipn",
		Short: "Verify a notification body read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			notification, err := entity.ParsePayload(strings.TrimSpace(string(body)))
			if err != nil {
				return fmt.Errorf("parse notification: %w", err)
			}
			client, _, err := setup(flags)
			if err != nil {
				return err
			}
			outcome := client.VerifyIPN(context.Background(), notification)
			return printOutcome(cmd.OutOrStdout(), outcome)
		},
	}
}

func newServeCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Listen for instant payment notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, conf, err := setup(flags)
			if err != nil {
				return err
			}
			server := internal.NewServer(conf)
			server.SetLogger(internal.NewLogger("server", conf.IsDebug, nil))
			server.SetGateway(client)
			return server.Start()
		},
	}
}

func setup(flags *rootFlags) (*internal.Client, *config.Config, error) {
	logger := internal.NewLogger("internal", false, nil)
	logger.Info("using config file: " + flags.configPath)

	conf, err := config.GetConfig(flags.configPath)
	if err != nil {
		logger.Error("boot", err)
		return nil, nil, err
	}

	var database services.Database
	if conf.Mongo.Enabled {
		mongo, err := internal.NewMongoClient(conf)
		if err != nil {
			logger.Error("mongo client", err)
			return nil, nil, err
		}
		database = mongo
		logger.Info("mongo client initialized")
	}

	provider := entity.ParseProvider(flags.provider)
	client, err := internal.NewClient(conf, provider,
		internal.WithLogger(internal.NewLogger("client", conf.IsDebug, database)),
		internal.WithDatabase(database),
	)
	if err != nil {
		logger.Error("client", err)
		return nil, nil, err
	}
	return client, conf, nil
}

func parseOptions(args []string) (entity.Options, error) {
	options := entity.Options{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q, expected KEY=VALUE", arg)
		}
		options[key] = value
	}
	return options, nil
}

func printOutcome(w io.Writer, outcome entity.Outcome) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(outcome); err != nil {
		return err
	}
	if outcome.IsError() {
		return fmt.Errorf("gateway call failed")
	}
	return nil
}
