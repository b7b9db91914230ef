package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ev-chart-station/pkg/station"
	"ev-chart-station/pkg/validator"
)

// ErrInvalidStation 校验未通过，进程以 1 退出
var ErrInvalidStation = errors.New("station record is invalid")

func newValidateCmd() *cobra.Command {
	var (
		nonFed    bool
		srAdds    bool
		duplicate bool
	)

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a station record JSON file and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var r station.Record
			if err := json.Unmarshal(data, &r); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if errs := validator.Validate(&r, validator.SceneCreate); len(errs) > 0 {
				return fmt.Errorf("%s: %w", args[0], errs[0])
			}

			res := station.Check(&r, station.Options{
				Features: station.Features{
					RegisterNonFedFundedStation: nonFed,
					SRAddsStation:               srAdds,
				},
				DuplicateStationError: duplicate,
			})

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if !res.Valid() {
				return ErrInvalidStation
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&nonFed, "non-fed", false, "allow registering non-federally funded stations")
	cmd.Flags().BoolVar(&srAdds, "sr-adds", false, "subrecipients may add stations (direct recipient required)")
	cmd.Flags().BoolVar(&duplicate, "duplicate", false, "previous submission returned a duplicate station conflict")
	return cmd
}
