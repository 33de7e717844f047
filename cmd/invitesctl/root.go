package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aussiebroadwan/invites/pkg/invitesdk"
	"github.com/spf13/cobra"
)

var version = "dev"

// options holds the resolved global flags. Flags win over the environment.
type options struct {
	host   string
	token  string
	output string
}

func (o *options) client() *invitesdk.Client {
	return invitesdk.NewClient(o.host)
}

func (o *options) session() (*invitesdk.Session, error) {
	if o.token == "" {
		return nil, errors.New("an access token is required (--token or INVITES_TOKEN)")
	}
	return o.client().NewSession(o.token), nil
}

func execute(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		var apiErr *invitesdk.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 500 {
			return 2
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "invitesctl",
		Short:         "Manage invitations",
		Long:          "Command-line client for the invitation service API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("host") {
				if v := os.Getenv("INVITES_URL"); v != "" {
					opts.host = v
				}
			}
			if !cmd.Flags().Changed("token") {
				if v := os.Getenv("INVITES_TOKEN"); v != "" {
					opts.token = v
				}
			}
			if opts.output != "table" && opts.output != "json" {
				return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", opts.output)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.host, "host", "http://localhost:8080", "invitation service URL")
	root.PersistentFlags().StringVar(&opts.token, "token", "", "bearer access token")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format (table, json)")

	root.AddCommand(newIssueCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newGetCmd(opts))
	root.AddCommand(newResendCmd(opts))
	root.AddCommand(newInspectCmd(opts))
	root.AddCommand(newGroupsCmd(opts))
	root.AddCommand(newHealthCmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "invitesctl %s\n", version)
			return err
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
