// Package cli binds the search trigger to a command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"mediguide/internal/searchtrigger/service"
	"mediguide/platform/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix lets SEARCHTRIGGER_PINCODE and SEARCHTRIGGER_HOSPITAL stand in for the flags.
const EnvPrefix = "SEARCHTRIGGER"

// NewCommand builds the searchtrigger root command. Both notification kinds
// exit with status 0.
func NewCommand(log *logger.Logger) *cobra.Command {
	v := viper.New()
	svc := service.New(log)

	cmd := &cobra.Command{
		Use:   "searchtrigger",
		Short: "Describe the hospital search a pincode and hospital name would run",
		Long: `searchtrigger reads a city/pincode and a hospital name and prints the
notification the search button shows: a warning when both are empty, otherwise
the search that would run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := service.Query{
				Location: v.GetString("pincode"),
				Facility: v.GetString("hospital"),
			}
			_, err := svc.Trigger(cmd.Context(), query, WriterNotifier{W: cmd.OutOrStdout()})
			return err
		},
	}

	cmd.Flags().String("pincode", "", "City name or pincode")
	cmd.Flags().String("hospital", "", "Full or partial hospital name")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(cmd.Flags())

	return cmd
}

// WriterNotifier prints a notification as "WARNING: ..." or "INFO: ...".
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(_ context.Context, notification service.Notification) error {
	_, err := fmt.Fprintf(n.W, "%s: %s\n", strings.ToUpper(string(notification.Kind)), notification.Message)
	return err
}
