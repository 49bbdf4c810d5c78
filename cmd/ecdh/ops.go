package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rharkanson/go-ecc-dh/internal/config"
	"github.com/rharkanson/go-ecc-dh/internal/crypto/curves"
	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

// parsePoint parses "x,y".
func parsePoint(c *curves.Curve, s string) (curves.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return curves.Point{}, fmt.Errorf("point %q is not x,y: %w", s, ecdh.ErrMalformedInput)
	}
	x, err := config.ParseInt("x", parts[0])
	if err != nil {
		return curves.Point{}, err
	}
	y, err := config.ParseInt("y", parts[1])
	if err != nil {
		return curves.Point{}, err
	}
	return c.Params().Point(x, y), nil
}

// parseIndices parses a comma separated list of at most count indices.
// Missing entries are curves.NoIndex.
func parseIndices(s string, count int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = curves.NoIndex
	}
	if s == "" {
		return out, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) > count {
		return nil, fmt.Errorf("too many arguments in %q: %w", s, ecdh.ErrMalformedInput)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q is not an index: %w", p, ecdh.ErrMalformedInput)
		}
		out[i] = n
	}
	return out, nil
}

// applyOp runs one "name[:args]" operation against c and describes the
// outcome. Parse failures never reach the curve.
func applyOp(c *curves.Curve, op string) (string, error) {
	name, args, _ := strings.Cut(op, ":")

	switch name {
	case "add":
		pt, err := parsePoint(c, args)
		if err != nil {
			return "", err
		}
		pt = c.AddPoint(pt.X(), pt.Y())
		return fmt.Sprintf("Point %s added to curve.", pt), nil

	case "double":
		idx, err := parseIndices(args, 1)
		if err != nil {
			return "", err
		}
		return added(c.Duplicate(idx[0]))

	case "sum":
		idx, err := parseIndices(args, 2)
		if err != nil {
			return "", err
		}
		return added(c.Sum(idx[0], idx[1]))

	case "multiply", "stepwise":
		idx, err := parseIndices(args, 2)
		if err != nil {
			return "", err
		}
		if idx[1] == curves.NoIndex {
			return "", fmt.Errorf("%s needs index,n: %w", name, ecdh.ErrMalformedInput)
		}
		if name == "multiply" {
			return added(c.Multiply(idx[0], idx[1]))
		}
		trace, err := c.MultiplyStepwise(idx[0], idx[1])
		if err != nil {
			return "", err
		}
		return added(trace[len(trace)-1], nil)

	case "delete":
		idx, err := parseIndices(args, 1)
		if err != nil {
			return "", err
		}
		if err := c.DeletePoints(idx[0]); err != nil {
			return "", err
		}
		if idx[0] == curves.NoIndex {
			return "All points removed from curve!", nil
		}
		kept, _ := c.Last()
		return fmt.Sprintf("All points except %s removed from curve.", kept), nil

	default:
		return "", fmt.Errorf("unknown operation %q: %w", name, ecdh.ErrMalformedInput)
	}
}

func added(pt curves.Point, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Point %s added to curve.", pt), nil
}

// listPoints prints the sequence the way the demo menu listed it.
func listPoints(out io.Writer, c *curves.Curve) {
	fmt.Fprintln(out, "Points on curve:")
	for i, pt := range c.Points() {
		note := ""
		if !c.Params().IsOnCurve(pt) {
			note = "\t(not on curve)"
		}
		fmt.Fprintf(out, "\t[%d]\t%s%s\n", i, pt, note)
	}
}
