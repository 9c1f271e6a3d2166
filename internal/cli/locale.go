package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitechrome/internal/domain"
)

func newLocaleCommand(a *app) *cobra.Command {
	localeCmd := &cobra.Command{
		Use:   "locale",
		Short: "Read or change the persisted display language",
	}
	localeCmd.AddCommand(newLocaleGetCommand(a))
	localeCmd.AddCommand(newLocaleSetCommand(a))
	return localeCmd
}

func newLocaleGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the persisted language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bridge, _, err := a.openBridge()
			if err != nil {
				return err
			}
			l, ok := bridge.Read()
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (default)\n", a.cfg.Locale())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), l)
			return nil
		},
	}
}

func newLocaleSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "set <locale>",
		Short:     "Persist a language; running UIs sharing the storage file follow it",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.LocaleID), string(domain.LocaleEN)},
		Example:   "  sitechrome locale set en",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, ok := domain.ParseLocale(args[0])
			if !ok {
				return fmt.Errorf("unsupported locale %q (want id or en): %w", args[0], domain.ErrInvalidLocale)
			}
			bridge, _, err := a.openBridge()
			if err != nil {
				return err
			}
			if err := bridge.Write(l); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), l)
			return nil
		},
	}
}
