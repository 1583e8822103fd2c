package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
	"github.com/carlsburger/gastrocore/utils"
)

var absenceCmd = &cobra.Command{
	Use:   "absence",
	Short: "Submit and list absence requests",
}

var absenceSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an absence request",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			fail(err)
			return
		}
		kind, _ := cmd.Flags().GetString("kind")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		reason, _ := cmd.Flags().GetString("reason")
		if from == "" || to == "" {
			fmt.Println("Error: --from and --to are required (YYYY-MM-DD)")
			return
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()

		dto, err := client.Absences.Submit(ctx, v1.AbsenceDTO{
			Kind:   kind,
			From:   common.DateOnly{Time: utils.MustParseDate(from)},
			To:     common.DateOnly{Time: utils.MustParseDate(to)},
			Reason: reason,
		})
		if err != nil {
			fail(err)
			return
		}
		fmt.Printf("Submitted %s absence %s, status %s\n", dto.Kind, dto.ID, dto.Status)
	},
}

var absenceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List absence requests",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			fail(err)
			return
		}
		status, _ := cmd.Flags().GetString("status")

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()

		result, err := client.Absences.Search(ctx, v1.AbsenceSearchRequest{Status: status, Take: 50})
		if err != nil {
			fail(err)
			return
		}
		if len(result.Data) == 0 {
			fmt.Println("No absence requests")
			return
		}
		for _, a := range result.Data {
			fmt.Printf("%-10s %s  %s → %s  %s\n",
				a.Status, a.Kind, a.From.Format("2006-01-02"), a.To.Format("2006-01-02"), a.Reason)
		}
	},
}

func init() {
	absenceSubmitCmd.Flags().String("kind", v1.AbsenceVacation, "vacation, sick or unpaid")
	absenceSubmitCmd.Flags().String("from", "", "first day of absence (YYYY-MM-DD)")
	absenceSubmitCmd.Flags().String("to", "", "last day of absence (YYYY-MM-DD)")
	absenceSubmitCmd.Flags().String("reason", "", "optional note for the approver")
	absenceListCmd.Flags().String("status", "", "filter by status (pending, approved, rejected)")

	absenceCmd.AddCommand(absenceSubmitCmd)
	absenceCmd.AddCommand(absenceListCmd)
}
