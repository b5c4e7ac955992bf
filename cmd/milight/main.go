// Command milight runs the MiLight node server, or performs basic operations
// on MiLight v6 bridges over the LAN
package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/therealmysteryman/udi-milight-pg3/common"
)

var (
	flagTimeout  time.Duration
	flagLogLevel string

	logger = logrus.New()
	app    = &cobra.Command{
		Use:   `milight`,
		Short: `MiLight node server`,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			setLogger()
		},
	}

	cmdGenerateBashComp = &cobra.Command{
		Use:   `bashcomp <filename>`,
		Short: "generate bash completion at <file>",
		Run:   generateBashComp,
	}

	cmdGenerateDocs = &cobra.Command{
		Use:   `docs <path>`,
		Short: "generate markdown documentation at <path>",
		Run:   generateDocs,
	}
)

func init() {
	app.PersistentFlags().DurationVarP(&flagTimeout, `timeout`, `t`, common.DefaultTimeout, `timeout for bridge and broker operations`)
	app.PersistentFlags().StringVarP(&flagLogLevel, `log-level`, `L`, `info`, `log level, one of: [debug,info,warn,error]`)

	app.AddCommand(cmdServe)
	app.AddCommand(cmdSend)
	app.AddCommand(cmdMac)
	app.AddCommand(cmdGenerateBashComp)
	app.AddCommand(cmdGenerateDocs)
}

func main() {
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateBashComp(c *cobra.Command, args []string) {
	if len(args) != 1 {
		_ = c.Usage()
		fmt.Println()
		logger.Fatalln(`Missing filename`)
	}

	buf := new(bytes.Buffer)
	f, err := os.Create(args[0])
	if err != nil {
		logger.WithFields(logrus.Fields{
			`filename`: args[0],
			`error`:    err,
		}).Fatalln(`Could not open file`)
	}
	defer f.Close()
	if err := app.GenBashCompletion(buf); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not generate completion`)
	}
	if _, err := buf.WriteTo(f); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not write completion`)
	}
}

func generateDocs(c *cobra.Command, args []string) {
	if len(args) != 1 {
		_ = c.Usage()
		fmt.Println()
		logger.Fatalln(`Missing output path`)
	}

	if err := writeDocs(args[0]); err != nil {
		logger.WithFields(logrus.Fields{
			`path`:  args[0],
			`error`: err,
		}).Fatalln(`Could not generate documentation`)
	}
}

func writeDocs(path string) error {
	if path[len(path)-1] != os.PathSeparator {
		path += string(os.PathSeparator)
	}
	return doc.GenMarkdownTree(app, path)
}

func setLogger() {
	switch flagLogLevel {
	case `debug`:
		logger.Level = logrus.DebugLevel
	case `info`:
		logger.Level = logrus.InfoLevel
	case `warn`:
		logger.Level = logrus.WarnLevel
	case `error`:
		logger.Level = logrus.ErrorLevel
	default:
		logger.Level = logrus.InfoLevel
	}
}
