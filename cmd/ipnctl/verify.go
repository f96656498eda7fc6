package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/ipn"
	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/paypal"
)

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Post a raw IPN body back to PayPal and print VERIFIED or INVALID",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readBody(cmd, args)
			if err != nil {
				return err
			}
			mode, _ := cmd.Flags().GetString("mode")
			endpoint, _ := cmd.Flags().GetString("url")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			if endpoint == "" {
				endpoint, err = paypal.EndpointFor(mode)
				if err != nil {
					return err
				}
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			v := ipn.NewValidator(endpoint, paypal.NewClient(timeout))
			n, err := ipn.Parse(strings.TrimRight(raw, "\r\n"), v)
			if err != nil {
				return err
			}
			ok, err := n.Acknowledge(ctx)
			if err != nil {
				if paypal.IsRetryableError(err) {
					return fmt.Errorf("PayPal unreachable, try again: %w", err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.Acknowledgement())
			if !ok {
				return fmt.Errorf("notification was not verified")
			}
			return nil
		},
	}

	cmd.Flags().StringP("mode", "m", paypal.ModeSandbox, "PayPal environment (sandbox, production)")
	cmd.Flags().String("url", "", "Validation endpoint, overrides --mode")
	cmd.Flags().Duration("timeout", 30*time.Second, "Postback timeout")

	return cmd
}
