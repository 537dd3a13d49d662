package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// batchFile is the YAML shape of a batch description: a shared base
// message plus one request object per recipient group.
type batchFile struct {
	Base     messageFile      `yaml:"base"`
	Requests []map[string]any `yaml:"requests"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <batch.yaml>",
	Short: "Send a batch of emails",
	Long: `Send up to 500 emails in one request.

The YAML file holds a base section with the shared fields (sender,
subject, body, attachments) and a requests list with the per-recipient
objects. Batch sending requires the bulk stream (--bulk) or a sandbox
inbox (--sandbox-inbox).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read batch file: %w", err)
		}

		var batch batchFile
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		baseMail, err := batch.Base.mail()
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		log.Debug("sending batch", "requests", len(batch.Requests))

		result, err := client.SendBatch(cmd.Context(), baseMail.ToBatch(), batch.Requests)
		if err != nil {
			return fmt.Errorf("batch failed: %w", err)
		}

		failed := 0
		for i, entry := range result.Responses {
			if entry.Success {
				fmt.Printf("#%d ok %v\n", i+1, entry.MessageIDs)
				continue
			}
			failed++
			fmt.Printf("#%d failed %v\n", i+1, entry.Errors)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d batch requests failed", failed, len(result.Responses))
		}
		log.Info("batch sent", "requests", len(result.Responses))
		return nil
	},
}
