package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rharkanson/go-ecc-dh/internal/protocol/exchange"
)

type exchangeOptions struct {
	alice    string
	bob      string
	noFold   bool
	stepwise bool
	keyBytes int
	info     string
	sessions int
	workers  int
}

func exchangeCommand(s *settings) *cobra.Command {
	opts := &exchangeOptions{}
	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Run a Diffie-Hellman exchange between Alice and Bob",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExchange(cmd, s, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.alice, "alice", "", "Alice's private integer (random when empty)")
	f.StringVar(&opts.bob, "bob", "", "Bob's private integer (random when empty)")
	f.BoolVar(&opts.noFold, "no-fold", false, "Multiply by k instead of folding the generator k times")
	f.BoolVar(&opts.stepwise, "stepwise", false, "Store every intermediate point while multiplying (toy curves)")
	f.IntVar(&opts.keyBytes, "key-bytes", 0, "Also derive this many bytes of key material")
	f.StringVar(&opts.info, "info", "ecdh demo", "HKDF info string for --key-bytes")
	f.IntVar(&opts.sessions, "sessions", 1, "Number of independent sessions to run")
	f.IntVar(&opts.workers, "workers", 4, "Concurrent sessions when --sessions > 1")
	return cmd
}

func runExchange(cmd *cobra.Command, s *settings, opts *exchangeOptions) error {
	conf := *s.conf
	flags := cmd.Flags()
	if flags.Changed("alice") {
		conf.AlicePrivate = opts.alice
	}
	if flags.Changed("bob") {
		conf.BobPrivate = opts.bob
	}
	if flags.Changed("no-fold") {
		conf.Fold = !opts.noFold
	}
	if flags.Changed("stepwise") {
		conf.Stepwise = opts.stepwise
	}

	cfg, err := conf.SessionConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if opts.sessions > 1 {
		cfgs := make([]exchange.SessionConfig, opts.sessions)
		for i := range cfgs {
			cfgs[i] = cfg
			cfgs[i].AlicePrivate, cfgs[i].BobPrivate = nil, nil
		}
		outcomes, err := exchange.RunBatch(context.Background(), cfgs, opts.workers)
		if err != nil {
			return err
		}
		for i, o := range outcomes {
			fmt.Fprintf(out, "session %d: shared secret %s\n", i, o.Alice.SharedSecret)
		}
		return nil
	}

	if cfg.P != nil {
		fmt.Fprintf(out, "Curve: y^2 = x^3 + (%s)x + (%s) %% %s\n", cfg.A, cfg.B, cfg.P)
	} else {
		fmt.Fprintf(out, "Group: %s\n", cfg.Group)
	}

	o, err := exchange.RunSession(cfg)
	if err != nil {
		return err
	}
	log.WithField("group", cfg.Group).Info("exchange complete")
	return printOutcome(out, o, opts)
}

func printOutcome(out io.Writer, o *exchange.Outcome, opts *exchangeOptions) error {
	fmt.Fprintf(out, "Alice's public key: %s\n", o.Alice.PublicKey)
	fmt.Fprintf(out, "Bob's public key: %s\n", o.Bob.PublicKey)
	fmt.Fprintf(out, "Alice finds the shared secret to be: %s\n", o.Alice.SharedSecret)
	fmt.Fprintf(out, "Bob finds the shared secret to be: %s\n", o.Bob.SharedSecret)

	if opts.keyBytes > 0 {
		key, err := o.Alice.Key([]byte(opts.info), opts.keyBytes)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Derived key: %s\n", hex.EncodeToString(key))
	}
	return nil
}
