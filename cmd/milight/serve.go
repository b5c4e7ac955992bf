package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/therealmysteryman/udi-milight-pg3"
	"github.com/therealmysteryman/udi-milight-pg3/api"
	"github.com/therealmysteryman/udi-milight-pg3/config"
	"github.com/therealmysteryman/udi-milight-pg3/host"
	"github.com/therealmysteryman/udi-milight-pg3/host/mqtt"
	"github.com/therealmysteryman/udi-milight-pg3/protocol"
)

var cmdServe = &cobra.Command{
	Use:   `serve`,
	Short: `run the node server until interrupted`,
	Run:   serve,
}

func init() {
	config.RegisterFlags(cmdServe.Flags())
}

func serve(c *cobra.Command, args []string) {
	settings, err := config.Load(c.Flags(), `.env`)
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Invalid configuration`)
	}
	if !c.Flags().Changed(`log-level`) {
		flagLogLevel = settings.LogLevel
		setLogger()
	}

	rt := host.NewRuntime(settings.ShortPoll, settings.LongPoll, logger)

	var hostAdapter host.Interface
	if settings.MQTTBroker != `` {
		client, err := mqtt.Dial(settings.MQTTBroker, flagTimeout, logger)
		if err != nil {
			logger.WithField(`error`, err).Fatalln(`Failed connecting to the MQTT broker`)
		}
		h := mqtt.New(client, settings.MQTTPrefix, logger)
		defer h.Close()
		if err := h.Listen(rt); err != nil {
			logger.WithField(`error`, err).Fatalln(`Failed subscribing to commands`)
		}
		hostAdapter = h
	} else {
		hostAdapter = host.NewMemory(logger)
	}

	v6 := &protocol.V6{Logger: logger}
	controller := milight.NewController(milight.Config{
		Logger:   logger,
		Protocol: v6,
		Host:     hostAdapter,
	})
	controller.Register(rt)

	if err := rt.Post(host.Event{Type: host.EventCustomParams, Params: settings.CustomParams()}); err != nil {
		logger.WithField(`error`, err).Fatalln(`Failed queueing the custom parameters`)
	}

	if settings.Listen != `` {
		server := &http.Server{
			Addr:         settings.Listen,
			Handler:      api.New(controller, rt, logger).Router(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 45 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			logger.Infof("HTTP API listening on %s", settings.Listen)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithField(`error`, err).Errorln(`HTTP API stopped`)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rt.Run(ctx); err != nil {
		logger.WithField(`error`, err).Warnln(`Shutdown incomplete`)
	}
	_ = v6.Close()
}
