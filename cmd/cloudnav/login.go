package main

import (
	"fmt"

	"cloudnav/internal/storage"

	"github.com/spf13/cobra"
)

func newLoginCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authorize cloudnav to access Google Drive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := s.cfg.Drive
			if err := storage.DriveLogin(cmd.Context(), d.Credentials, d.Token, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			s.log.Info().Str("token", d.Token).Msg("drive token saved")
			fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", d.Token)
			return nil
		},
	}
}
