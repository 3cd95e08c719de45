package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stroomai/leadgen/modules/brief"
	"github.com/stroomai/leadgen/modules/brief/transport"
)

const defaultEndpoint = "http://localhost:8080/api/submit-brief"

type clientFlags struct {
	endpoint string
	timeout  time.Duration
}

func (f *clientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.endpoint, "endpoint", defaultEndpoint, "intake endpoint URL")
	cmd.Flags().DurationVar(&f.timeout, "timeout", transport.DefaultTimeout, "request deadline")
}

func (f *clientFlags) client() *transport.Client {
	return transport.New(f.endpoint, transport.WithTimeout(f.timeout), transport.WithLogger(appLog))
}

// submit <file>: post a brief in wire format. "-" reads stdin.
func submitCmd() *cobra.Command {
	var flags clientFlags
	cmd := &cobra.Command{
		Use:   "submit <brief.json>",
		Short: "Post a project brief from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			var p brief.Payload
			if err := json.NewDecoder(r).Decode(&p); err != nil {
				return fmt.Errorf("decode brief: %w", err)
			}

			res, err := flags.client().Submit(cmd.Context(), p.Submission())
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(res); encErr != nil {
				return encErr
			}
			if err != nil {
				return err
			}
			if !res.Accepted() {
				return fmt.Errorf("brief not accepted: %s", res.Kind)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
