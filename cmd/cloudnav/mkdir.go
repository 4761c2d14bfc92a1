package main

import (
	"context"
	"fmt"

	"cloudnav/internal/names"
	"cloudnav/internal/storage"

	"github.com/spf13/cobra"
)

func newMkdirCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir PATH",
		Short: "Create a folder without opening the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, release, err := s.openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			ctx, cancel := context.WithTimeout(cmd.Context(), s.cfg.Timeout)
			defer cancel()
			f, err := makeFolder(ctx, m, names.New(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.Path)
			return nil
		},
	}
}

// makeFolder validates the last segment of path and creates it. Paths with
// ".." segments are refused.
func makeFolder(ctx context.Context, m storage.Manager, v names.Validator, path string) (storage.File, error) {
	if storage.HasParentRef(path) {
		return storage.File{}, fmt.Errorf("%q: %w", path, storage.ErrInvalidPath)
	}
	p := storage.CleanFolderPath(path)
	name := storage.BaseName(p)
	if code := v.Check(name); code != names.OK {
		return storage.File{}, fmt.Errorf("%q: %s", name, code.Message())
	}
	f, err := m.CreateFolder(ctx, p)
	if err != nil {
		return storage.File{}, fmt.Errorf("create %s: %w", p, err)
	}
	return f, nil
}
