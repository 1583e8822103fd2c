package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
	"github.com/carlsburger/gastrocore/utils"
)

var reservationsCmd = &cobra.Command{
	Use:   "reservations",
	Short: "List reservations for a day",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			fail(err)
			return
		}
		day, _ := cmd.Flags().GetString("date")
		status, _ := cmd.Flags().GetString("status")

		req := v1.ReservationSearchRequest{Status: status, Take: 100}
		if day == "" {
			day = utils.VenueNow().Format("2006-01-02")
		}
		req.Date = &common.DateOnly{Time: utils.MustParseDate(day)}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()

		result, err := client.Reservations.Search(ctx, req)
		if err != nil {
			fail(err)
			return
		}
		if len(result.Data) == 0 {
			fmt.Printf("No reservations on %s\n", day)
			return
		}
		fmt.Printf("%d reservation(s) on %s:\n", result.Pagination.Total, day)
		for _, r := range result.Data {
			table := r.TableCode
			if table == "" {
				table = "-"
			}
			fmt.Printf("%s  %-20s %2d pax  table %-4s %s\n",
				r.TimeSlot, r.GuestName, r.PartySize, table, r.Status)
		}
	},
}

func init() {
	reservationsCmd.Flags().String("date", "", "day to list (YYYY-MM-DD, default today)")
	reservationsCmd.Flags().String("status", "", "filter by status")
}
