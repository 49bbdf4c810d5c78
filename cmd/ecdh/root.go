package main

import (
	"github.com/spf13/cobra"

	"github.com/rharkanson/go-ecc-dh/internal/config"
	"github.com/rharkanson/go-ecc-dh/internal/logging"
)

const (
	configFileFlag = "config"
	groupFlag      = "group"
	aFlag          = "a"
	bFlag          = "b"
	pFlag          = "p"
	gxFlag         = "gx"
	gyFlag         = "gy"
	logLevelFlag   = "log-level"
	logFormatFlag  = "log-format"
)

// settings collects the values shared by every subcommand.
type settings struct {
	cfgFilePath string
	flags       config.Config
	conf        *config.Config
}

func GetRootCmd() *cobra.Command {
	s := &settings{}

	rootCmd := &cobra.Command{
		Use:           "ecdh",
		Short:         "Elliptic curve arithmetic and Diffie-Hellman demo",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load(cmd)
		},
	}
	setPersistentFlags(rootCmd, s)

	rootCmd.AddCommand(exchangeCommand(s))
	rootCmd.AddCommand(multiplyCommand(s))
	rootCmd.AddCommand(inverseCommand())
	rootCmd.AddCommand(pointsCommand(s))
	rootCmd.AddCommand(versionCommand())
	return rootCmd
}

func setPersistentFlags(cmd *cobra.Command, s *settings) {
	d := config.GetDefaultConfig()
	f := cmd.PersistentFlags()
	f.StringVar(&s.cfgFilePath, configFileFlag, "", "Used to specify JSON config file path")
	f.StringVar(&s.flags.Group, groupFlag, d.Group, "Group to use: toy, secp256k1 or ed25519")
	f.StringVar(&s.flags.A, aFlag, d.A, "Curve coefficient a")
	f.StringVar(&s.flags.B, bFlag, d.B, "Curve coefficient b")
	f.StringVar(&s.flags.P, pFlag, d.P, "Curve modulus p")
	f.StringVar(&s.flags.Gx, gxFlag, d.Gx, "Generator x coordinate")
	f.StringVar(&s.flags.Gy, gyFlag, d.Gy, "Generator y coordinate")
	f.StringVar(&s.flags.LogLevel, logLevelFlag, d.LogLevel, "Log level")
	f.StringVar(&s.flags.LogFormat, logFormatFlag, d.LogFormat, "Log format: text or json")
}

// load reads the config file, if any, lets explicitly set flags override
// it and configures logging.
func (s *settings) load(cmd *cobra.Command) error {
	conf := config.GetDefaultConfig()
	if s.cfgFilePath != "" {
		var err error
		if conf, err = config.ConfigFromFile(s.cfgFilePath); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	override(groupFlag, &conf.Group, s.flags.Group)
	override(aFlag, &conf.A, s.flags.A)
	override(bFlag, &conf.B, s.flags.B)
	override(pFlag, &conf.P, s.flags.P)
	override(gxFlag, &conf.Gx, s.flags.Gx)
	override(gyFlag, &conf.Gy, s.flags.Gy)
	override(logLevelFlag, &conf.LogLevel, s.flags.LogLevel)
	override(logFormatFlag, &conf.LogFormat, s.flags.LogFormat)

	if err := logging.Setup(conf.LogLevel, conf.LogFormat, cmd.ErrOrStderr()); err != nil {
		return err
	}
	s.conf = conf
	return nil
}
