// Command fat16tool is an operator convenience for exercising the engine
// against a real file-backed volume image: format it, inspect it, list its
// root directory, and move file contents in and out. It is a thin CLI layer
// over the public Engine surface, grounded on cmd/main.go's urfave/cli/v2
// application shape, and is not part of the core filesystem logic.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/urfave/cli/v2"

	"github.com/embeddedfat/fat16core"
	"github.com/embeddedfat/fat16core/clock"
	"github.com/embeddedfat/fat16core/geometry"
	"github.com/embeddedfat/fat16core/posixflash"
)

func main() {
	app := cli.App{
		Name:  "fat16tool",
		Usage: "inspect and manipulate FAT16 volume images",
		Commands: []*cli.Command{
			formatCommand(),
			infoCommand(),
			fsckCommand(),
			lsCommand(),
			catCommand(),
			putCommand(),
			rmCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fat16tool: %s", err.Error())
	}
}

func formatCommand() *cli.Command {
	return &cli.Command{
		Name:      "format",
		Usage:     "create a new volume image and format it",
		ArgsUsage: "IMAGE_PATH",
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("missing IMAGE_PATH", 1)
			}
			dev, err := posixflash.Create(path, geometry.TotalSectors)
			if err != nil {
				return err
			}
			defer dev.Close()
			return fat16.Format(dev)
		},
	}
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "report whether a volume image is formatted",
		ArgsUsage: "IMAGE_PATH",
		Action: func(c *cli.Context) error {
			dev, err := openDevice(c)
			if err != nil {
				return err
			}
			defer dev.Close()

			status, err := fat16.GetFormatStatus(dev)
			if err != nil {
				return err
			}
			if status.Formatted {
				fmt.Println("formatted")
				return nil
			}
			fmt.Println("not formatted:")
			return status.Mismatches.ErrorOrNil()
		},
	}
}

func fsckCommand() *cli.Command {
	return &cli.Command{
		Name:      "fsck",
		Usage:     "walk live directory entries and their cluster chains for corruption",
		ArgsUsage: "IMAGE_PATH",
		Action: func(c *cli.Context) error {
			engine, dev, err := mount(c)
			if err != nil {
				return err
			}
			defer dev.Close()

			violations, err := engine.CheckInvariants()
			if err != nil {
				return err
			}
			if violations.ErrorOrNil() == nil {
				fmt.Println("consistent")
				return nil
			}
			fmt.Println("inconsistent:")
			return violations.ErrorOrNil()
		},
	}
}

// listingRow is one root-directory entry, shaped for CSV export via
// github.com/gocarina/gocsv the same way disks/disks.go's DiskGeometry is.
type listingRow struct {
	Slot      uint8  `csv:"slot"`
	Name      string `csv:"name"`
	Extension string `csv:"extension"`
	Size      uint32 `csv:"size"`
	Cluster   uint16 `csv:"first_cluster"`
}

func lsCommand() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list the root directory",
		ArgsUsage: "IMAGE_PATH",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "csv", Usage: "emit the listing as CSV"},
		},
		Action: func(c *cli.Context) error {
			engine, dev, err := mount(c)
			if err != nil {
				return err
			}
			defer dev.Close()

			var rows []listingRow
			for slot := 0; slot < geometry.RootEntries; slot++ {
				entry, _, err := engine.GetFileInformation(uint8(slot))
				if err != nil {
					continue
				}
				rows = append(rows, listingRow{
					Slot:      uint8(slot),
					Name:      strings.TrimRight(string(entry.Name[:]), " "),
					Extension: strings.TrimRight(string(entry.Extension[:]), " "),
					Size:      entry.FileSize,
					Cluster:   entry.FirstCluster,
				})
			}

			if c.Bool("csv") {
				out, err := gocsv.MarshalString(&rows)
				if err != nil {
					return err
				}
				fmt.Print(out)
				return nil
			}

			for _, row := range rows {
				fmt.Printf("%3d  %-8s.%-3s  %8d bytes  cluster %d\n", row.Slot, row.Name, row.Extension, row.Size, row.Cluster)
			}
			return nil
		},
	}
}

func catCommand() *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "print a file's contents",
		ArgsUsage: "IMAGE_PATH SLOT",
		Action: func(c *cli.Context) error {
			engine, dev, err := mount(c)
			if err != nil {
				return err
			}
			defer dev.Close()

			slot, err := slotArg(c, 1)
			if err != nil {
				return err
			}

			info, _, err := engine.GetFileInformation(slot)
			if err != nil {
				return err
			}
			buf := make([]byte, info.FileSize)
			if _, err := engine.ReadFromFile(slot, 0, buf); err != nil {
				return err
			}
			os.Stdout.Write(buf)
			return nil
		},
	}
}

func putCommand() *cli.Command {
	return &cli.Command{
		Name:      "put",
		Usage:     "create a file from a local file's contents",
		ArgsUsage: "IMAGE_PATH NAME EXT LOCAL_PATH",
		Action: func(c *cli.Context) error {
			engine, dev, err := mount(c)
			if err != nil {
				return err
			}
			defer dev.Close()

			if c.Args().Len() < 4 {
				return cli.Exit("usage: put IMAGE_PATH NAME EXT LOCAL_PATH", 1)
			}
			name, ext, localPath := c.Args().Get(1), c.Args().Get(2), c.Args().Get(3)

			data, err := os.ReadFile(localPath)
			if err != nil {
				return err
			}

			slot, _, err := engine.CreateFile(padded(name, 8), padded(ext, 3), uint32(len(data)))
			if err != nil {
				return err
			}
			_, err = engine.ModifyFile(slot, 0, data)
			return err
		},
	}
}

func rmCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "delete a file by slot",
		ArgsUsage: "IMAGE_PATH SLOT",
		Action: func(c *cli.Context) error {
			engine, dev, err := mount(c)
			if err != nil {
				return err
			}
			defer dev.Close()

			slot, err := slotArg(c, 1)
			if err != nil {
				return err
			}
			_, err = engine.DeleteFile(slot)
			return err
		},
	}
}

func openDevice(c *cli.Context) (*posixflash.Device, error) {
	path := c.Args().First()
	if path == "" {
		return nil, cli.Exit("missing IMAGE_PATH", 1)
	}
	return posixflash.Open(path)
}

func mount(c *cli.Context) (*fat16.Engine, *posixflash.Device, error) {
	dev, err := openDevice(c)
	if err != nil {
		return nil, nil, err
	}
	engine, err := fat16.New(dev, clock.System{})
	if err != nil {
		dev.Close()
		return nil, nil, err
	}
	return engine, dev, nil
}

func slotArg(c *cli.Context, index int) (uint8, error) {
	if c.Args().Len() <= index {
		return 0, cli.Exit("missing SLOT argument", 1)
	}
	var slot int
	if _, err := fmt.Sscanf(c.Args().Get(index), "%d", &slot); err != nil {
		return 0, err
	}
	return uint8(slot), nil
}

func padded(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
