package main

import (
	"fmt"
	"strconv"

	"github.com/go-can-types/cantypes"
	"github.com/go-can-types/cantypes/addressmapper"
	"github.com/spf13/cobra"
)

func newRequestCmd(opts *rootOptions) *cobra.Command {
	destination := uint8(cantypes.AddressGlobal)
	sendTo := ""
	cmd := &cobra.Command{
		Use:   "request <pgn>",
		Short: "Create ISO Request (PGN 59904) frame for given PGN",
		Long: `Create ISO Request (PGN 59904) frame for given PGN. Request is sent from null address (254). Use 'hex'
output format to get frame in cansend format, for example: cansend can0 $(candecode request 60928 -o hex)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pgn, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid pgn given: %w", err)
			}
			msg, length, err := addressmapper.ISORequest(cantypes.PGN(pgn), destination)
			if err != nil {
				return err
			}
			rec, err := decodeFrame(frame{
				extended: true,
				id:       msg.ID().IntoBits(),
				length:   length,
				data:     msg.PDU(),
			})
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), opts.outputFormat)
			if err := p.print(rec); err != nil {
				return err
			}
			if sendTo == "" {
				return nil
			}
			if err := sendSocketCAN(sendTo, msg, length); err != nil {
				return fmt.Errorf("failed to send request to %v: %w", sendTo, err)
			}
			p.comment("Request sent to interface %v", sendTo)
			return nil
		},
	}
	cmd.Flags().StringVar(&sendTo, "send", sendTo, "SocketCAN interface name (can0, vcan0) to send request to")
	cmd.Flags().Uint8Var(&destination, "destination", destination, "destination address, 255 sends request to all nodes")
	return cmd
}
