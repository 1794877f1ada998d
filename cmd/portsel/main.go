package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/glideconf/portsel/internal/choice"
	"github.com/glideconf/portsel/internal/devconf"
	"github.com/glideconf/portsel/internal/enumerate"
	"github.com/glideconf/portsel/internal/probe"
)

var (
	conffile  = flag.String("c", "portsel.yaml", "Device configuration file")
	baud      = flag.Int("b", devconf.DefaultBaudRate, "Baud rate")
	show_vers = flag.Bool("v", false, "Shows version")
)

var GitCommit = "local"
var GitTag = "0.0.0"

func GetVersion() string {
	return fmt.Sprintf("portsel %s, commit: %s", GitTag, GitCommit)
}

func load_config() *devconf.DeviceConfig {
	cfg, err := devconf.Load(*conffile)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func do_list() {
	cfg := load_config()
	var l choice.List
	choice.FillPorts(&l, cfg, enumerate.System())
	sel, ok := l.Selected()
	for _, e := range l.Entries() {
		mark := ' '
		if ok && e.ID == sel.ID {
			mark = '*'
		}
		fmt.Printf("%c %08x  %-32s %s\n", mark, uint32(e.ID), e.Label, e.Key)
	}
}

func do_show() {
	cfg := load_config()
	fmt.Printf("%s (%s)\n", cfg.Descriptor(), cfg.DeviceString())
}

func do_set(value string) {
	cfg, err := devconf.ParseDeviceString(value, *baud)
	if err != nil {
		log.Fatal(err)
	}
	if _, err = devconf.Validate(&cfg); err != nil {
		log.Fatal(err)
	}

	// run the parsed value through a rebuilt choice list so the stored
	// record is exactly what the settings screen would hand back
	var l choice.List
	choice.FillPorts(&l, &cfg, enumerate.System())
	choice.UpdateConfig(&l, &cfg)

	if err = devconf.Save(&cfg, *conffile); err != nil {
		log.Fatal(err)
	}
	log.Printf("Configured %s\n", cfg.Descriptor())
}

func do_probe() {
	cfg := load_config()
	if cfg.PortType == devconf.Disabled {
		log.Fatalln("No device configured")
	}
	log.Printf("Using device [%v]\n", cfg.DeviceString())
	s, err := probe.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	s.Close()
	log.Println("Port opened OK")
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of portsel [options] command [value]\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "  command\n\tAction required (list|show|set|probe)\n\n")
		fmt.Fprintln(os.Stderr, GetVersion())
	}

	flag.Parse()

	if *show_vers {
		fmt.Fprintf(os.Stderr, "%s\n", GitTag)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		log.Fatal("No command given")
	}

	switch args[0] {
	case "help":
		flag.Usage()
		os.Exit(0)
	case "list", "ls":
		do_list()
	case "show":
		do_show()
	case "set":
		if len(args) < 2 {
			log.Fatal("set needs a device string")
		}
		do_set(args[1])
	case "probe", "test":
		do_probe()
	case "version":
		fmt.Fprintln(os.Stderr, GetVersion())
	default:
		fmt.Fprintf(os.Stderr, "portsel: unrecognised command \"%s\"\n", args[0])
	}
}
