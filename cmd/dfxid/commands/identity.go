package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dfxid/internal/domain"
)

func identityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage identities",
	}
	cmd.AddCommand(
		identityNewCmd(),
		identityListCmd(),
		identityUseCmd(),
		identityRenameCmd(),
		identityRemoveCmd(),
		identityWhoamiCmd(),
		identityPrincipalCmd(),
		identityFingerprintCmd(),
		identityImportCmd(),
		identityExportCmd(),
	)
	return cmd
}

func identityNewCmd() *cobra.Command {
	var libPath, keyID string
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var params domain.CreationParameters
			switch {
			case libPath != "" && keyID != "":
				params.Hardware = &domain.HardwareIdentityConfiguration{PKCS11LibPath: libPath, KeyID: keyID}
			case libPath != "" || keyID != "":
				return errors.New("--hsm-pkcs11-lib-path and --hsm-key-id must be given together")
			}
			if err := appCtx.Identities.CreateNewIdentity(args[0], params); err != nil {
				return err
			}
			success(cmd.ErrOrStderr(), "Created identity: %q.", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&libPath, "hsm-pkcs11-lib-path", "", "PKCS#11 module holding the key")
	cmd.Flags().StringVar(&keyID, "hsm-key-id", "", "hex id of the key in the PKCS#11 module")
	return cmd
}

func identityListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List identities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := appCtx.Identities.IdentityNames()
			if err != nil {
				return err
			}
			selected := appCtx.Identities.SelectedIdentityName()
			for _, name := range names {
				if name == selected {
					fmt.Fprintf(cmd.OutOrStdout(), "%s *\n", name)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func identityUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Make an identity the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Identities.UseIdentityNamed(args[0]); err != nil {
				return err
			}
			success(cmd.ErrOrStderr(), "Using identity: %q.", args[0])
			return nil
		},
	}
}

func identityRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <from> <to>",
		Short: "Rename an identity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := args[0], args[1]
			defaultChanged, err := appCtx.Identities.Rename(from, to)
			if err != nil {
				return err
			}
			success(cmd.ErrOrStderr(), "Renamed identity %q to %q.", from, to)
			if defaultChanged {
				notice(cmd.ErrOrStderr(), "Now using identity: %q.", to)
			}
			return nil
		},
	}
}

func identityRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Identities.Remove(args[0]); err != nil {
				return err
			}
			success(cmd.ErrOrStderr(), "Removed identity %q.", args[0])
			return nil
		},
	}
}

func identityWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the selected identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), appCtx.Identities.SelectedIdentityName())
			return nil
		},
	}
}

func identityPrincipalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-principal",
		Short: "Print the principal of the selected identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := appCtx.Identities.InstantiateSelectedIdentity()
			if err != nil {
				return err
			}
			p, err := id.Principal()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func identityFingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the public key fingerprint of the selected identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := appCtx.Identities.InstantiateSelectedIdentity()
			if err != nil {
				return err
			}
			fp, err := id.Fingerprint()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", fp)
			return nil
		},
	}
}

func identityImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <name> <pem-file>",
		Short: "Create an identity from a PEM file (- reads stdin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[1])
			if err != nil {
				return err
			}
			if err := appCtx.Identities.Import(args[0], data); err != nil {
				return err
			}
			success(cmd.ErrOrStderr(), "Imported identity: %q.", args[0])
			return nil
		},
	}
}

func identityExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name>",
		Short: "Print the PEM file of a software identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := appCtx.Identities.ExportPEM(args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
