package commands

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dfxid/internal/domain"
	"dfxid/internal/services/sign"
)

// sign [canister-id] [method]: sign a call and write it to --file.
func signCmd() *cobra.Command {
	var (
		update   bool
		query    bool
		argHex   string
		file     string
		network  string
		expiry   time.Duration
		template string
	)
	cmd := &cobra.Command{
		Use:   "sign [canister-id] [method]",
		Short: "Sign a canister call for offline submission",
		Long: "Sign a canister call with the selected identity and write the signed message\n" +
			"to a file instead of sending it. Canister and method may come from --template.",
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := sign.Request{
				CallType: domain.CallQuery,
				Network:  network,
				Expiry:   expiry,
				Output:   file,
				Template: template,
			}
			if update {
				req.CallType = domain.CallUpdate
			}
			if len(args) > 0 {
				req.CanisterID = args[0]
			}
			if len(args) > 1 {
				req.MethodName = args[1]
			}
			if argHex != "" {
				arg, err := hex.DecodeString(argHex)
				if err != nil {
					return fmt.Errorf("--arg-hex: %w", err)
				}
				req.Arg = arg
			}

			res, err := appCtx.Sign.Sign(cmd.Context(), req)
			if err != nil {
				return err
			}
			success(cmd.ErrOrStderr(), "%s", res.Message())
			if res.CallType == domain.CallUpdate {
				fmt.Fprintf(cmd.OutOrStdout(), "Request ID: 0x%s\n", res.RequestID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&query, "query", false, "sign a query call (default)")
	cmd.Flags().BoolVar(&update, "update", false, "sign an update call")
	cmd.MarkFlagsMutuallyExclusive("query", "update")
	cmd.Flags().StringVar(&argHex, "arg-hex", "", "hex-encoded call argument")
	cmd.Flags().StringVar(&file, "file", "message.json", "output file for the signed message")
	cmd.Flags().StringVar(&network, "network", "", "network name recorded in the message (default local)")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "ingress expiry from now (default 5m)")
	cmd.Flags().StringVar(&template, "template", "", "YAML file with message defaults")
	return cmd
}
