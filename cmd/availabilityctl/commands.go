package main

import (
	"context"
	"fmt"
	"io"
	"medirdv-service/internal/app/config"
	"medirdv-service/internal/app/drivers/logger"
	"medirdv-service/internal/app/services/backend"
	"medirdv-service/internal/app/services/backend/physicians"
	"medirdv-service/internal/pkg/availability"
	"medirdv-service/internal/pkg/dto/responses"
	"medirdv-service/internal/pkg/utils"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	verbose bool
	jsonLog bool
	log     *logrus.Logger
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "availabilityctl",
		Short:         "Resolve physician and clinic availability from weekly schedules",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.log = logger.NewLogrusLogger(cmd.ErrOrStderr(), opts.verbose, opts.jsonLog)
		},
	}
	cmd.SetOut(out)
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.jsonLog, "json-log", false, "log as JSON")

	cmd.AddCommand(
		newResolveCommand(opts),
		newPhysicianCommand(opts),
		newHookTokenCommand(opts),
	)
	return cmd
}

type resolveOptions struct {
	file   string
	now    string
	locale string
	policy string
}

func newResolveCommand(root *rootOptions) *cobra.Command {
	opts := &resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a working_hours document read from a file or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), opts.file)
			if err != nil {
				root.log.WithError(err).Error("cannot read schedule")
				return err
			}

			now := time.Now()
			if opts.now != "" {
				now, err = time.Parse(time.RFC3339, opts.now)
				if err != nil {
					root.log.WithError(err).WithField("now", opts.now).Error("invalid --now")
					return err
				}
			}

			names := availability.NamesForLocale(opts.locale)
			policy := availability.ParseOpeningPolicy(opts.policy)
			schedule := availability.ParseWorkingHours(raw)
			root.log.WithFields(logrus.Fields{
				"entries": len(schedule),
				"now":     now.Format(time.RFC3339),
				"policy":  policy,
			}).Debug("resolving schedule")

			status := availability.Resolve(now, schedule, availability.WithNames(names), availability.WithPolicy(policy))
			return writeJSON(cmd.OutOrStdout(), responses.ResolvedSchedule{
				Status:     status,
				ResolvedAt: now,
				Locale:     opts.locale,
				Policy:     string(policy),
			})
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "-", "schedule file, - for stdin")
	cmd.Flags().StringVar(&opts.now, "now", "", "instant to resolve at (RFC3339), defaults to the current time")
	cmd.Flags().StringVar(&opts.locale, "locale", "fr", "weekday naming of the schedule (fr or en)")
	cmd.Flags().StringVar(&opts.policy, "policy", string(availability.FirstListed), "opening policy (first_listed or earliest)")
	return cmd
}

func newPhysicianCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "physician <id>",
		Short: "Fetch a physician from the backend and resolve its availability now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInternalConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.BackendTimeout()+5*time.Second)
			defer cancel()

			client := backend.NewClient(zap.NewNop(), cfg.Backend.BaseUrl, cfg.BackendTimeout(), cfg.Backend.MaxRequestsPerSecond)
			client.MaxResponseBytes = cfg.BackendMaxResponseBytes()
			physician, err := physicians.NewPhysicianBackendClient(client).FindPhysicianByID(ctx, args[0])
			if err != nil {
				root.log.WithError(err).WithField("physician_id", args[0]).Error("cannot fetch physician")
				return err
			}

			resolver := availability.NewResolver(cfg.Location(), cfg.WeekdayNames(), cfg.OpeningPolicy())
			now := resolver.Now()
			subject := responses.SubjectFromPhysician(physician)
			return writeJSON(cmd.OutOrStdout(), responses.Availability{
				SubjectType: subject.Type,
				SubjectID:   subject.ID,
				DisplayName: subject.DisplayName,
				Status:      resolver.At(now, subject.WorkingHours),
				ResolvedAt:  now,
			})
		},
	}
}

func newHookTokenCommand(root *rootOptions) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "hook-token",
		Short: "Sign a bearer token for the working-hours webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInternalConfig()
			if err != nil {
				return err
			}
			if cfg.Backend.HookSecret == "" {
				err := fmt.Errorf("BACKEND_HOOK_SECRET is not set")
				root.log.Error(err)
				return err
			}

			token, err := utils.GenerateHookJWT(cfg.Backend.HookIssuer, cfg.Backend.HookSecret, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(file)
}

func writeJSON(out io.Writer, value interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
