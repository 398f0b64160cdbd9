package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/anicoll/esp32-status/cmd"
)

func main() {
	listenFlag := &cli.StringFlag{
		Name:  "listen",
		Usage: "address the status page listens on, overrides LISTEN_ADDR",
	}

	app := &cli.App{
		Name:  "esp32-status",
		Usage: "sensor driven status page for an ESP32 board",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "INFO",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "rgb-server",
				Usage:  "serve the RGB LED page from a soft access point",
				Action: cmd.RGBServerCommand,
				Flags:  []cli.Flag{listenFlag},
			},
			{
				Name:   "alarm-server",
				Usage:  "serve the temperature and humidity alarm page on a wifi network",
				Action: cmd.AlarmServerCommand,
				Flags:  []cli.Flag{listenFlag},
			},
			{
				Name:   "monitor",
				Usage:  "poll the sensor onto the display; each line on stdin is a button press",
				Action: cmd.MonitorCommand,
			},
			{
				Name:   "i2c-scan",
				Usage:  "list the devices answering on the I2C bus",
				Action: cmd.ScanCommand,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
