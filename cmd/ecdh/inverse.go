package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rharkanson/go-ecc-dh/internal/config"
	"github.com/rharkanson/go-ecc-dh/internal/crypto/field"
)

func inverseCommand() *cobra.Command {
	var n, mod string
	cmd := &cobra.Command{
		Use:   "inverse",
		Short: "Compute a modular inverse with the extended Euclidean algorithm",
		RunE: func(cmd *cobra.Command, args []string) error {
			nv, err := config.ParseInt("n", n)
			if err != nil {
				return err
			}
			pv, err := config.ParseInt("modulus", mod)
			if err != nil {
				return err
			}

			inv, err := field.ModInverse(nv, pv)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s^-1 mod %s = %s\n", nv, pv, inv)
			return nil
		},
	}
	cmd.Flags().StringVar(&n, "n", "", "Value to invert")
	cmd.Flags().StringVar(&mod, "modulus", "", "Modulus")
	_ = cmd.MarkFlagRequired("n")
	_ = cmd.MarkFlagRequired("modulus")
	return cmd
}
