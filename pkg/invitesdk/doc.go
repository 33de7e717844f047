// Package invitesdk is a Go client for the invitation service.
//
// A Client performs the public calls an invitee makes while accepting an
// invitation, plus the health probes:
//
//	client := invitesdk.NewClient("https://invites.example.org")
//	inv, err := client.Inspect(ctx, token)
//	acct, err := client.Accept(ctx, token, invitesdk.AcceptRequest{
//		FirstName:       "Ada",
//		Surname:         "Lovelace",
//		Password:        "S3cure!Pass",
//		PasswordConfirm: "S3cure!Pass",
//	})
//
// Administrative calls need an access token issued by the auth service and
// go through a Session:
//
//	session := client.NewSession(accessToken)
//	issued, err := session.IssueInvitation(ctx, invitesdk.IssueInvitationRequest{
//		FirstName: "Ada",
//		Email:     "ada@example.org",
//		Groups:    []string{"editors"},
//	})
//
// Failed calls return an *APIError. Use errors.Is with the sentinel errors
// (ErrNotFound, ErrExpired, ErrConflict, ...) to branch on the failure kind.
package invitesdk
