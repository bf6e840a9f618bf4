// Package commands defines the dfxid CLI and wires dependencies for subcommands.
//
// Commands
//
//   - identity new        Create an identity (software key or PKCS#11 delegation)
//   - identity list       List identities, marking the selected one
//   - identity use        Persist the default identity
//   - identity rename     Rename an identity
//   - identity remove     Remove a non-default identity
//   - identity whoami     Print the selected identity
//   - identity get-principal, fingerprint
//   - identity import, export
//   - sign                Sign a canister call and write it for offline submission
//
// # Implementation
//
// The root command resolves the configuration root and builds the app
// (logger, identity manager, sign service) before any subcommand runs.
// Status lines go to stderr, results to stdout.
package commands
