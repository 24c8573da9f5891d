package main

import (
	"fmt"

	"github.com/go-can-types/cantypes"
	"github.com/go-can-types/cantypes/internal/utils"
	"github.com/spf13/cobra"
)

func newIDCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "id <hex>...",
		Short: "Decode identifiers given as hex",
		Long: `Decode identifiers given as hex. Identifiers up to 3 hex digits are decoded as 11bit (CAN 2.0A)
identifiers, longer ones as 29bit J1939 identifiers.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout(), opts.outputFormat)
			errCount := 0
			for _, arg := range args {
				rec, err := decodeIDHex(arg)
				if err != nil {
					errCount++
					p.printError(err)
					continue
				}
				if err := p.print(rec); err != nil {
					return err
				}
			}
			if errCount > 0 {
				return fmt.Errorf("%v of %v identifiers could not be decoded", errCount, len(args))
			}
			return nil
		},
	}
}

func decodeIDHex(raw string) (record, error) {
	idHex := utils.NormalizeHex(raw)
	if len(idHex) <= cantypes.CAN2A.Digits() {
		id, err := cantypes.CAN2A.TryFromHex(idHex)
		if err != nil {
			return record{}, err
		}
		return decodeStandard(id), nil
	}
	id, err := cantypes.J1939.TryFromHex(idHex)
	if err != nil {
		return record{}, err
	}
	return decodeExtended(id), nil
}
