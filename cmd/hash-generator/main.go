// Command hash-generator prints bcrypt hashes for the given passwords, for
// seeding users directly into the database.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/genops-api/internal/service/auth"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:           "hash-generator PASSWORD...",
		Short:         "Print bcrypt hashes compatible with genops-api logins",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeHashes(cmd.OutOrStdout(), auth.NewBcryptHasher(cost), args)
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost factor")
	return cmd
}

func writeHashes(w io.Writer, hasher auth.PasswordHasher, passwords []string) error {
	for i, password := range passwords {
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password #%d: %w", i+1, err)
		}
		if _, err := fmt.Fprintln(w, hash); err != nil {
			return err
		}
	}
	return nil
}
