package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/utils"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List staff documents and acknowledgement status",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			fail(err)
			return
		}
		pending, _ := cmd.Flags().GetBool("pending")

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()

		docs, err := client.Documents.List(ctx)
		if err != nil {
			fail(err)
			return
		}
		if pending {
			docs = utils.Filter(docs, func(d v1.DocumentDTO) bool {
				return d.RequiresAck && d.AcknowledgedAt == nil
			})
		}
		if len(docs) == 0 {
			fmt.Println("No documents")
			return
		}
		for _, d := range docs {
			status := utils.FormatBoolean(d.RequiresAck, "ack required", "info only")
			if d.AcknowledgedAt != nil {
				status = "acknowledged " + d.AcknowledgedAt.In(utils.VenueTZ).Format("2006-01-02 15:04")
			}
			fmt.Printf("%s  %s  v%-2d  %-12s  %s\n",
				d.ID, d.PublishedAt.Format("2006-01-02"), d.Version, status, d.Title)
		}
	},
}

var ackCmd = &cobra.Command{
	Use:   "ack <document-id>",
	Short: "Acknowledge a staff document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			fail(err)
			return
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()

		if err := client.Documents.Acknowledge(ctx, args[0]); err != nil {
			fail(err)
			return
		}
		fmt.Println("Acknowledged")
	},
}

func init() {
	documentsCmd.Flags().Bool("pending", false, "only documents still needing acknowledgement")
	documentsCmd.AddCommand(ackCmd)
}
