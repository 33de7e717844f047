package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aussiebroadwan/invites/pkg/invitesdk"
	"github.com/spf13/cobra"
)

func newGroupsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage groups",
	}
	cmd.AddCommand(newGroupsListCmd(opts))
	cmd.AddCommand(newGroupsCreateCmd(opts))
	return cmd
}

func newGroupsListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			groups, err := session.ListGroups(cmd.Context())
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), groups)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tTITLE\tID")
			for _, g := range groups {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", g.Code, g.Title, g.ID)
			}
			return tw.Flush()
		},
	}
}

func newGroupsCreateCmd(opts *options) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "create <code>",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			g, err := session.CreateGroup(cmd.Context(), invitesdk.CreateGroupRequest{Code: args[0], Title: title})
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), g)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created group %s (%s)\n", g.Code, g.ID)
			return err
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "display title (defaults to the code)")
	return cmd
}

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := opts.client().GetReadiness(cmd.Context())
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (version %s, uptime %s)\n", resp.Status, resp.Version, resp.Uptime)
			return err
		},
	}
}
