package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/prior-it/mdxpress/bootstrap"
	"github.com/prior-it/mdxpress/config"
	"github.com/prior-it/mdxpress/content"
)

var (
	debug     bool
	configDir string
	runCheck  bool
	printCSS  bool
)

func parseFlags() {
	args := os.Args[1:]
	flag.Usage = helpMessage
	flag.BoolVar(&debug, "d", false, "Debug mode")
	flag.StringVar(&configDir, "config", ".", "Directory containing config.toml")
	flag.BoolVar(&runCheck, "check", false, "Check the content tree and exit")
	flag.BoolVar(&printCSS, "css", false, "Print the stylesheet for highlighted code blocks and exit")
	if err := flag.CommandLine.Parse(args); err != nil {
		log.Fatal(err)
	}
}

func helpMessage() {
	cmdName := os.Args[0]
	output := flag.CommandLine.Output()
	fmt.Fprintf(output, "Usage of %s:\n\n", cmdName)
	fmt.Fprintln(
		output,
		"This tool serves a personal site with a homepage and blog posts written in Markdown.",
	)

	fmt.Fprintln(output, "Flags:")
	flag.PrintDefaults()
}

func main() {
	parseFlags()
	cfg, err := config.Load(os.DirFS(configDir))
	if err != nil {
		log.Fatalf("Could not load the configuration: %v\n", err)
	}
	if debug {
		cfg.App.Debug = true
	}

	switch {
	case printCSS:
		if err := bootstrap.NewRenderer(cfg).WriteCSS(os.Stdout); err != nil {
			log.Fatalf("Could not write the stylesheet: %v\n", err)
		}
	case runCheck:
		report := content.Check(context.Background(), content.Open(cfg.Content), bootstrap.NewRenderer(cfg))
		fmt.Fprintln(os.Stdout, renderReport(cfg.Content.Root, report))
		if !report.OK() {
			os.Exit(1)
		}
	default:
		s := bootstrap.New(cfg)
		if err := s.Start(context.Background(), nil); err != nil {
			fmt.Fprintln(os.Stderr, StyleError.Render(err.Error()))
			os.Exit(1)
		}
	}
}
