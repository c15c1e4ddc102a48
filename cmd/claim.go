package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tigawane/internal/bootstrap"
	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/errs"
	"tigawane/internal/usecase/sharing"
)

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "File and manage claims",
}

var claimFileCmd = &cobra.Command{
	Use:   "file <item-id>",
	Short: "Claim an item",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *sharing.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		claimant, _ := cmd.Flags().GetString("as")
		quantity, _ := cmd.Flags().GetInt("quantity")
		message, _ := cmd.Flags().GetString("message")

		claim, err := svc.ClaimItem(ctx, sharing.ClaimItemInput{
			ItemID:     cmd.Flags().Arg(0),
			ClaimantID: claimant,
			Quantity:   quantity,
			Message:    message,
		})
		if err != nil {
			return errs.Wrap(err, "claim item")
		}
		return printJSON(cmd, claim)
	}),
}

var claimMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your claims",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *sharing.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		claimant, _ := cmd.Flags().GetString("as")

		claims, err := svc.ListMyClaims(ctx, claimant)
		if err != nil {
			return errs.Wrap(err, "list claims")
		}
		for _, claim := range claims {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] item=%s qty=%d\n",
				claim.ClaimID, claim.Status, claim.ItemID, claim.Quantity); err != nil {
				return errs.Wrap(err, "write claim line")
			}
		}
		return nil
	}),
}

var claimRespondCmd = &cobra.Command{
	Use:   "respond <claim-id>",
	Short: "Approve or reject a claim on your item",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *sharing.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		actor, _ := cmd.Flags().GetString("as")
		approve, _ := cmd.Flags().GetBool("approve")

		claim, err := svc.RespondToClaim(ctx, sharing.RespondToClaimInput{
			ClaimID: cmd.Flags().Arg(0),
			ActorID: actor,
			Approve: approve,
		})
		if err != nil {
			return errs.Wrap(err, "respond to claim")
		}
		return printJSON(cmd, claim)
	}),
}

var claimCompleteCmd = &cobra.Command{
	Use:   "complete <claim-id>",
	Short: "Mark an approved claim as handed over",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *sharing.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		actor, _ := cmd.Flags().GetString("as")

		claim, err := svc.CompleteClaim(ctx, sharing.CompleteClaimInput{
			ClaimID: cmd.Flags().Arg(0),
			ActorID: actor,
		})
		if err != nil {
			return errs.Wrap(err, "complete claim")
		}
		return printJSON(cmd, claim)
	}),
}

var claimCancelCmd = &cobra.Command{
	Use:   "cancel <claim-id>",
	Short: "Withdraw a pending or approved claim",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *sharing.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		actor, _ := cmd.Flags().GetString("as")

		claim, err := svc.CancelClaim(ctx, sharing.CancelClaimInput{
			ClaimID: cmd.Flags().Arg(0),
			ActorID: actor,
		})
		if err != nil {
			return errs.Wrap(err, "cancel claim")
		}
		return printJSON(cmd, claim)
	}),
}

func init() {
	rootCmd.AddCommand(claimCmd)
	claimCmd.AddCommand(claimFileCmd, claimMineCmd, claimRespondCmd, claimCompleteCmd, claimCancelCmd)

	claimFileCmd.Flags().String("as", "", "Acting user id")
	claimFileCmd.Flags().Int("quantity", 1, "Quantity to claim")
	claimFileCmd.Flags().String("message", "", "Message to the owner")

	claimMineCmd.Flags().String("as", "", "Acting user id")
	claimRespondCmd.Flags().String("as", "", "Acting user id")
	claimRespondCmd.Flags().Bool("approve", false, "Approve instead of reject")
	claimCompleteCmd.Flags().String("as", "", "Acting user id")
	claimCancelCmd.Flags().String("as", "", "Acting user id")
}
