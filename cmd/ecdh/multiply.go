package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rharkanson/go-ecc-dh/internal/config"
	"github.com/rharkanson/go-ecc-dh/internal/crypto/curves"
)

func multiplyCommand(s *settings) *cobra.Command {
	var x, y string
	var n int
	var trace bool
	cmd := &cobra.Command{
		Use:   "multiply",
		Short: "Fold a point n times (the generator unless --x/--y are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, g, err := s.conf.CurveParams()
			if err != nil {
				return err
			}
			if x != "" || y != "" {
				xv, err := config.ParseInt("x", x)
				if err != nil {
					return err
				}
				yv, err := config.ParseInt("y", y)
				if err != nil {
					return err
				}
				g = params.Point(xv, yv)
			}

			c := curves.NewCurveFromParams(params)
			c.AddPoint(g.X(), g.Y())
			out := cmd.OutOrStdout()

			if trace {
				steps, err := c.MultiplyStepwise(0, n)
				if err != nil {
					return err
				}
				for i, pt := range steps {
					fmt.Fprintf(out, "%d * %s = %s\n", i+2, g, pt)
				}
				return nil
			}

			pt, err := c.Multiply(0, n)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d * %s = %s\n", n+1, g, pt)
			return nil
		},
	}
	cmd.Flags().StringVar(&x, "x", "", "x coordinate of the base point")
	cmd.Flags().StringVar(&y, "y", "", "y coordinate of the base point")
	cmd.Flags().IntVar(&n, "n", 1, "Number of fold steps")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print and store every intermediate point")
	return cmd
}
