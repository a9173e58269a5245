package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"manifiesto_bot/internal/adapter/http/routes"
	"manifiesto_bot/internal/app"
	"manifiesto_bot/internal/config"
	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/domain/validation"
	"manifiesto_bot/internal/usecase"
)

func newChatCmd() *cobra.Command {
	var sessionID string
	var outputDir string
	var realPayments bool
	var verbose bool
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Run a conversation in the terminal with in-memory storage",
		Long: `Each input line is one turn: an event name followed by optional field=value pairs
separated by ';'. For example:

  inform vehicle_plate=ABC123; weight=500 kg
  confirm
  payment_confirmed
  generate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.SessionStore = config.SessionStoreMemory
			cfg.Generator = config.GeneratorLocal
			if outputDir != "" {
				cfg.LocalOutputDir = outputDir
			}
			if !realPayments {
				cfg.PaymentGatewayMock = true
			}
			if !verbose {
				log.SetOutput(io.Discard)
			}

			c, err := app.Build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer c.Close()
			return runChat(cmd, c.Lifecycle, sessionID)
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "terminal", "Session id used for every turn")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for generated PDFs (defaults to LOCAL_OUTPUT_DIR)")
	cmd.Flags().BoolVar(&realPayments, "real-payments", false, "Send payments to Mercado Pago instead of the mock gateway")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print service logs")
	return cmd
}

func runChat(cmd *cobra.Command, uc usecase.ILifecycleUseCase, sessionID string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		in, err := parseTurnLine(sessionID, line)
		if err != nil {
			fmt.Fprintf(out, "! %v\n", err)
			continue
		}
		res, err := uc.HandleTurn(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "[%s] %s\n", res.Stage, res.Message)
		if res.DocumentRef != "" {
			fmt.Fprintf(out, "document: %s\n", res.DocumentRef)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// parseTurnLine reads "event field=value; field=value".
func parseTurnLine(sessionID, line string) (usecase.TurnInput, error) {
	event, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	event = strings.ToLower(strings.TrimSpace(event))
	if event == "" {
		return usecase.TurnInput{}, fmt.Errorf("missing event")
	}
	in := usecase.TurnInput{SessionID: sessionID, Event: usecase.Event(event)}
	for _, part := range strings.Split(rest, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field, value, ok := strings.Cut(part, "=")
		if !ok {
			return usecase.TurnInput{}, fmt.Errorf("expected field=value, got %q", part)
		}
		in.Entities = append(in.Entities, entities.Entity{
			Field: strings.TrimSpace(field),
			Value: strings.TrimSpace(value),
		})
	}
	return in, nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <field> <value>",
		Short: "Check one value against the rule of a field",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := entities.ParseFieldName(args[0])
			if !ok {
				return fmt.Errorf("unknown field %q", args[0])
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			v := validation.NewValidator(validation.WithLocation(cfg.Location()))
			res := v.Validate(field, strings.Join(args[1:], " "))
			if !res.OK() {
				return res.Err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field, res.Normalized)
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return routes.Run(cmd.Context(), cfg)
		},
	}
}

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Start the PDF generation worker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return app.RunWorker(cmd.Context(), cfg)
		},
	}
}
