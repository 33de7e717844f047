package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/invites/pkg/invitesdk"
	"github.com/spf13/cobra"
)

func newIssueCmd(opts *options) *cobra.Command {
	var req invitesdk.IssueInvitationRequest

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Invite a new user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			resp, err := session.IssueInvitation(cmd.Context(), req)
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			return printIssued(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name of the invitee")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address of the invitee")
	cmd.Flags().StringSliceVar(&req.Groups, "group", nil, "group code to join on acceptance (repeatable)")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List outstanding invitations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			invitations, err := session.ListInvitations(cmd.Context())
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), invitations)
			}
			return printInvitations(cmd.OutOrStdout(), invitations)
		},
	}
}

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			inv, err := session.GetInvitation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), inv)
			}
			return printInvitations(cmd.OutOrStdout(), []invitesdk.Invitation{*inv})
		},
	}
}

func newResendCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resend <id>",
		Short: "Send the invitation email again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			resp, err := session.ResendInvitation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			return printIssued(cmd.OutOrStdout(), resp)
		},
	}
}

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token>",
		Short: "Show the invitation behind an accept token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := opts.client().Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s, expires %s\n",
				resp.FirstName, resp.Email, resp.State, resp.ExpiresAt.Format(time.RFC3339))
			return err
		},
	}
}

func printIssued(w io.Writer, resp *invitesdk.IssueInvitationResponse) error {
	fmt.Fprintf(w, "Invitation %s for %s <%s>\n", resp.ID, resp.FirstName, resp.Email)
	fmt.Fprintf(w, "Expires:    %s\n", resp.ExpiresAt.Format(time.RFC3339))
	if resp.AcceptURL != "" {
		fmt.Fprintf(w, "Accept URL: %s\n", resp.AcceptURL)
	}
	if !resp.EmailSent {
		fmt.Fprintln(w, "Warning: the invitation email could not be sent")
	}
	return nil
}

func printInvitations(w io.Writer, invitations []invitesdk.Invitation) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tFIRST NAME\tGROUPS\tSTATE\tEXPIRES")
	for _, inv := range invitations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			inv.ID, inv.Email, inv.FirstName, strings.Join(inv.Groups, ","),
			inv.State, inv.ExpiresAt.Format(time.DateOnly))
	}
	return tw.Flush()
}
