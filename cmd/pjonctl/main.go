// Command pjonctl drives a Bus from the command line: acquire a device
// id, send one frame, or listen and print every frame received. Grounded
// on tamzrod-modbus-replicator's config-driven cmd/replicator, restyled
// around urfave/cli/v2 subcommands instead of a single positional arg.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/isuruh15/PJON/bus"
	"github.com/isuruh15/PJON/config"
	"github.com/isuruh15/PJON/internal/telemetry"
	"github.com/isuruh15/PJON/protocol"
	"github.com/isuruh15/PJON/strategies/serial"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "pjonctl",
		Usage: "drive a bus device over a serial Strategy",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Required: true, Usage: "path to config.yaml"},
		},
		Commands: []*cli.Command{
			acquireIDCommand,
			sendCommand,
			listenCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		telemetry.GetLogger().Errorf("pjonctl: %v", err)
		os.Exit(1)
	}
}

var acquireIDCommand = &cli.Command{
	Name:  "acquire-id",
	Usage: "probe the bus and print the first free device id",
	Action: func(c *cli.Context) error {
		b, closeFn, err := openBus(c)
		if err != nil {
			return err
		}
		defer closeFn()

		id, err := b.AcquireID()
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var sendCommand = &cli.Command{
	Name:  "send",
	Usage: "send one frame to a destination device id",
	Flags: []cli.Flag{
		&cli.UintFlag{Name: "to", Required: true},
		&cli.StringFlag{Name: "payload", Required: true},
	},
	Action: func(c *cli.Context) error {
		b, closeFn, err := openBus(c)
		if err != nil {
			return err
		}
		defer closeFn()

		destination := protocol.DeviceID(c.Uint("to"))
		if _, err := b.Send(destination, []byte(c.String("payload"))); err != nil {
			return err
		}

		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			b.Update()
			time.Sleep(5 * time.Millisecond)
		}
		return nil
	},
}

var listenCommand = &cli.Command{
	Name:  "listen",
	Usage: "print every frame received until interrupted",
	Action: func(c *cli.Context) error {
		b, closeFn, err := openBus(c)
		if err != nil {
			return err
		}
		defer closeFn()

		b.SetReceiver(func(payload []byte, info protocol.PacketInfo) {
			fmt.Printf("from=%d payload=%q\n", info.SenderID, payload)
		})

		for {
			b.Receive()
		}
	},
}

// openBus builds a Bus from the --config flag: loads and validates the
// YAML document, opens the serial Strategy it describes, and applies the
// device/bus knobs.
func openBus(c *cli.Context) (*bus.Bus, func(), error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	port, err := serial.Open(serial.Options{
		PortName:        cfg.Serial.Port,
		BaudRate:        cfg.Serial.BaudRate,
		ResponseTimeout: time.Duration(cfg.Serial.ResponseTimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	b := bus.New(protocol.DeviceID(cfg.Device.ID), port)
	b.SetBusID(protocol.BusID(cfg.Device.BusID))
	b.SetSharedNetwork(cfg.Device.SharedNetwork)
	b.SetIncludeSenderInfo(cfg.Device.IncludeSenderInfo)
	b.SetRouter(cfg.Device.Router)
	b.SetAcknowledge(cfg.Bus.Acknowledge)
	b.SetAutoDelete(cfg.Bus.AutoDelete)
	if cfg.Bus.CommunicationMode == "simplex" {
		b.SetCommunicationMode(protocol.Simplex)
	}

	if cfg.Device.AcquireID {
		if _, err := b.AcquireID(); err != nil {
			port.Close()
			return nil, nil, err
		}
	}

	return b, func() { port.Close() }, nil
}
