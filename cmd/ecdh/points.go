package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rharkanson/go-ecc-dh/internal/crypto/curves"
)

func pointsCommand(s *settings) *cobra.Command {
	var points, ops []string
	cmd := &cobra.Command{
		Use:   "points",
		Short: "Apply point operations to a curve and list the result",
		Long: `Builds a curve from --a, --b and --p, adds every --point x,y and then
applies each --op in order:

  add:x,y          append a point
  double[:i]       double point i (default: last)
  sum[:i[,j]]      add points i (default: first) and j (default: last)
  multiply:i,n     fold point i n times, storing the final point
  stepwise:i,n     fold point i n times, storing every intermediate point
  delete[:k]       remove all points, or all but point k

A failing operation is reported and the remaining ones still run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, _, err := s.conf.CurveParams()
			if err != nil {
				return err
			}
			c := curves.NewCurveFromParams(params)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Curve: %s\n", c)

			for _, p := range points {
				msg, err := applyOp(c, "add:"+p)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, msg)
			}

			for _, op := range ops {
				msg, err := applyOp(c, op)
				if err != nil {
					log.WithField("op", op).Debug("operation failed")
					fmt.Fprintf(out, "%s: %v\n", op, err)
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", op, msg)
			}

			listPoints(out, c)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&points, "point", nil, "Point x,y to add (repeatable)")
	cmd.Flags().StringArrayVar(&ops, "op", nil, "Operation to apply (repeatable)")
	return cmd
}
