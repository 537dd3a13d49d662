package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <message.yaml>",
	Short: "Send a single email",
	Long: `Send one email described by a YAML message file.

The file carries from, to, subject, body and attachment fields; empty
fields are filled from the --defaults file when one is given. Attachments
reference local files by path and are base64-encoded on the fly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := loadMessage(args[0])
		if err != nil {
			return err
		}

		mail, err := msg.mail()
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		log.Debug("sending message", "subject", mail.Subject, "recipients", len(mail.To))

		result, err := client.Send(cmd.Context(), mail)
		if err != nil {
			return fmt.Errorf("send failed: %w", err)
		}

		for _, id := range result.MessageIDs {
			fmt.Println(id)
		}
		log.Info("message sent", "ids", len(result.MessageIDs))
		return nil
	},
}
