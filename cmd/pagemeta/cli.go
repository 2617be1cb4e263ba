package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemeta"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Parser    pagemeta.Parser
	Rules     pagemeta.Group
	Previews  pagemeta.PreviewService
	Extractor pagemeta.PreviewExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose      bool   `short:"v" help:"Log every fetch and store at debug level"`
	Rules        string `type:"existingfile" help:"YAML rule file merged over the default rules"`
	ReplaceRules bool   `help:"Use the rule file instead of merging it over the defaults"`

	Extract ExtractCmd `cmd:"" help:"Fetch pages and extract their metadata"`
	Parse   ParseCmd   `cmd:"" help:"Extract metadata from a local HTML file"`
	List    ListCmd    `cmd:"" help:"List stored previews"`
	Show    ShowCmd    `cmd:"" help:"Show the stored preview for a URL"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored preview"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Page URLs"`
	Render      bool          `short:"r" help:"Render pages in a headless browser before extracting"`
	Timeout     time.Duration `default:"10s" help:"Per-page fetch timeout"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent page limit"`
	RPS         float64       `name:"rps" default:"1" help:"Requests per second per domain (0 disables limiting)"`
	NoRetry     bool          `help:"Fail on the first fetch error"`
	NoStore     bool          `help:"Do not save previews to the database"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File string `arg:"" help:"HTML file, or - for stdin"`
	URL  string `short:"u" name:"url" help:"Page URL used to resolve relative links"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit  int  `short:"n" help:"Maximum number of previews"`
	Offset int  `help:"Number of previews to skip"`
	JSON   bool `name:"json" help:"Print previews as JSON"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Preview ID"`
}
