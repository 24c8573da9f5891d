package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-can-types/cantypes"
	"github.com/go-can-types/cantypes/addressmapper"
	"github.com/spf13/cobra"
	"github.com/tarm/serial"
)

type dumpOptions struct {
	device      string
	baud        int
	isFile      bool
	isInterface bool
	inputFormat string
	noNodes     bool
}

func newDumpCmd(rootOpts *rootOptions, cfg envConfig) *cobra.Command {
	opts := &dumpOptions{}
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Decode frames from candump log, serial logger or SocketCAN frame dump",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if opts.isInterface {
				opts.inputFormat = "socketcan"
			}
			switch opts.inputFormat {
			case "candump", "socketcan":
			default:
				return fmt.Errorf("unknown input format type given: %v", opts.inputFormat)
			}
			p := newPrinter(cmd.OutOrStdout(), rootOpts.outputFormat)

			rc, err := openInput(ctx, cmd, opts)
			if err != nil {
				return err
			}
			input := &onceCloser{ReadCloser: rc}
			defer input.Close()
			if !opts.isInterface {
				// unblocks reads from serial device or STDIN on SIGINT/SIGTERM. Socket reads time out and check
				// context on their own.
				go func() {
					<-ctx.Done()
					input.Close()
				}()
			}

			var reader frameReader
			if opts.inputFormat == "socketcan" {
				reader, err = newSocketCANReader(input)
				if err != nil {
					return err
				}
			} else {
				reader = newLineReader(input)
			}
			var mapper *addressmapper.AddressMapper
			if !opts.noNodes {
				mapper = addressmapper.NewAddressMapper()
			}
			return dump(ctx, reader, p, mapper)
		},
	}
	cmd.Flags().StringVar(&opts.device, "device", cfg.Device, "path to serial device or file, - reads from STDIN")
	cmd.Flags().IntVar(&opts.baud, "baud", cfg.Baud, "device baud rate")
	cmd.Flags().BoolVar(&opts.isFile, "is-file", false, "consider device as ordinary file")
	cmd.Flags().BoolVar(&opts.isInterface, "interface", false, "consider device as SocketCAN interface name (can0, vcan0), implies socketcan input format")
	cmd.Flags().StringVar(&opts.inputFormat, "input-format", cfg.InputFormat, "in which format frames are read (candump, socketcan)")
	cmd.Flags().BoolVar(&opts.noNodes, "no-nodes", false, "do not track nodes from ISO address claims")
	return cmd
}

func openInput(ctx context.Context, cmd *cobra.Command, opts *dumpOptions) (io.ReadCloser, error) {
	if opts.device == "" || opts.device == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	if opts.isFile {
		return os.Open(opts.device)
	}
	if opts.isInterface {
		return openSocketCANInterface(opts.device)
	}

	var port *serial.Port
	err := retry.Do(func() error {
		p, err := serial.OpenPort(&serial.Config{
			Name: opts.device,
			Baud: opts.baud,
			Size: 8,
		})
		if err != nil {
			return fmt.Errorf("failed to open device %q: %w", opts.device, err)
		}
		port = p
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "# retry #%d: %v\n", n, err)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return port, nil
}

func dump(ctx context.Context, reader frameReader, p *printer, mapper *addressmapper.AddressMapper) error {
	frameCount := uint64(0)
	errorCount := uint64(0)
	for {
		if ctx.Err() != nil {
			break
		}
		f, err := reader.ReadFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, errNoFrame) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			var inErr *inputError
			if !errors.As(err, &inErr) {
				return err
			}
			errorCount++
			p.printError(err)
			continue
		}
		frameCount++

		rec, err := decodeFrame(f)
		if err != nil {
			errorCount++
			p.printError(err)
			continue
		}
		if mapper != nil && f.extended {
			at := time.Now()
			if f.time != nil {
				at = *f.time
			}
			msg := cantypes.NewMessage(cantypes.J1939.FromBits(f.id), f.data)
			changed, err := mapper.Process(msg, at)
			if err != nil {
				p.printError(err)
			}
			printNodeChanges(p, changed)
		}
		if err := p.print(rec); err != nil {
			return err
		}
	}
	p.comment("Finishing, number of processed frames: %v, errors: %v", frameCount, errorCount)
	if mapper != nil {
		printNodes(p, mapper.Nodes())
	}
	return nil
}

func printNodeChanges(p *printer, nodes addressmapper.Nodes) {
	for _, n := range nodes {
		if n.HasAddress() {
			p.comment("New or changed node: NAME: %v, source: %v (%v)", n.NAME, n.Source, cantypes.Addr(n.Source))
		} else {
			p.comment("Node lost its address, NAME: %v", n.NAME)
		}
	}
}

func printNodes(p *printer, nodes addressmapper.Nodes) {
	if len(nodes) == 0 {
		return
	}
	p.comment("Known nodes: %v", len(nodes))
	for _, n := range nodes {
		if n.HasAddress() {
			p.comment("node: NAME: %v, source: %v", n.NAME, n.Source)
		} else {
			p.comment("node: NAME: %v, no address", n.NAME)
		}
	}
}

// onceCloser closes underlying input only once, input can be closed by signal handler and by deferred cleanup.
type onceCloser struct {
	io.ReadCloser
	once sync.Once
	err  error
}

func (c *onceCloser) Close() error {
	c.once.Do(func() {
		c.err = c.ReadCloser.Close()
	})
	return c.err
}
