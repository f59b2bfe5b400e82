// Command tbjson converts Perseus dependency treebank XML into JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/FocuswithJustin/treebank/core/builder"
	"github.com/FocuswithJustin/treebank/core/metadata"
	"github.com/FocuswithJustin/treebank/core/morph"
	"github.com/FocuswithJustin/treebank/core/sqlite"
	"github.com/FocuswithJustin/treebank/core/urn"
	"github.com/FocuswithJustin/treebank/internal/catalog"
	"github.com/FocuswithJustin/treebank/internal/logging"
)

const version = "0.1.0"

// App carries what every command needs at run time.
type App struct {
	Ctx    context.Context
	Stdout io.Writer
}

// CLI defines the command-line interface for tbjson.
type CLI struct {
	LogLevel  string `name:"log-level" help:"Log level" default:"info" enum:"debug,info,warn,error" env:"TBJSON_LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format" default:"text" enum:"text,json" env:"TBJSON_LOG_FORMAT"`

	Convert   ConvertCmd   `cmd:"" help:"Convert treebank files to JSON"`
	Decode    DecodeCmd    `cmd:"" help:"Decode a single postag"`
	Languages LanguagesCmd `cmd:"" help:"List feature tables"`
	Catalog   CatalogGroup `cmd:"" help:"Conversion catalog operations"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// ConvertCmd converts one or more treebank files.
type ConvertCmd struct {
	Paths   []string `arg:"" help:"Treebank XML files (plain, .gz or .xz)" type:"path"`
	Lang    string   `help:"Feature table: latin, greek, an alias, or auto (from xml:lang)" default:"latin"`
	Mode    string   `help:"Output shape" default:"flat" enum:"flat,subdoc"`
	Syntax  bool     `help:"Copy head and relation into each word"`
	NFC     bool     `name:"nfc" help:"Normalize form and lemma to Unicode NFC"`
	Strict  bool     `help:"Fail on unrecognised postag codes"`
	Meta    string   `help:"CSV table of URN metadata" type:"existingfile"`
	MetaID  string   `name:"meta-id" help:"Identifier column of the metadata table" default:"urn"`
	Catalog string   `help:"Record conversions in this SQLite database" type:"path" env:"TBJSON_CATALOG"`
}

func (c *ConvertCmd) Run(app *App) error {
	mode, err := builder.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	b, err := builder.New(builder.Options{
		Language:      c.Lang,
		Mode:          mode,
		IncludeSyntax: c.Syntax,
		Normalize:     c.NFC,
		Strict:        c.Strict,
	})
	if err != nil {
		return err
	}

	var meta *metadata.Table
	if c.Meta != "" {
		if meta, err = metadata.LoadFile(c.Meta, c.MetaID); err != nil {
			return err
		}
	}

	var cat *catalog.Catalog
	if c.Catalog != "" {
		if cat, err = catalog.Open(c.Catalog); err != nil {
			return err
		}
		defer cat.Close()
	}

	failed := 0
	for _, path := range c.Paths {
		if err := app.Ctx.Err(); err != nil {
			return err
		}
		runID := uuid.NewString()
		ctx := logging.WithRunID(app.Ctx, runID)

		res, err := b.Convert(ctx, path)
		if err != nil {
			failed++
			continue
		}

		id := resolveURN(res.DocumentID, path)
		var rec metadata.Record
		if meta != nil && id != "" {
			var ok bool
			if rec, ok = lookupMetadata(meta, id); !ok {
				logging.WarnContext(ctx, "no metadata for urn", "urn", id)
			}
		}

		fmt.Fprintf(app.Stdout, "%s -> %s (%d sentences, %d words", res.Source, res.Output,
			res.Stats.Sentences, res.Stats.Words)
		if res.Replaced > 0 {
			fmt.Fprintf(app.Stdout, ", %d replaced by duplicate ids", res.Replaced)
		}
		fmt.Fprintln(app.Stdout, ")")
		if rec.ID != "" {
			fmt.Fprintf(app.Stdout, "  %s, %s\n", rec.Author(), rec.Title())
		}

		if cat != nil {
			_, err := cat.Record(ctx, catalog.Entry{
				RunID:     runID,
				Source:    res.Source,
				Output:    res.Output,
				SHA256:    res.Digest.SHA256,
				BLAKE3:    res.Digest.BLAKE3,
				Language:  res.Language,
				Mode:      res.Mode.String(),
				Sentences: res.Stats.Sentences,
				Words:     res.Stats.Words,
				URN:       id,
				Author:    rec.Author(),
				Title:     rec.Title(),
			})
			if err != nil {
				logging.ErrorContext(ctx, "catalog record failed", "path", path, "error", err)
				failed++
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(c.Paths))
	}
	return nil
}

// resolveURN prefers the document_id attribute and falls back to the
// work identifier in the file name.
func resolveURN(documentID, path string) string {
	if u, err := urn.Parse(documentID); err == nil {
		return u.String()
	}
	if w, ok := urn.FromFilename(path); ok {
		if u, ok := w.URN(); ok {
			return u.String()
		}
		return w.String()
	}
	return ""
}

// lookupMetadata tries the full URN first and then its bare work id, so
// tables keyed either way match.
func lookupMetadata(meta *metadata.Table, id string) (metadata.Record, bool) {
	if rec, ok := meta.Lookup(id); ok {
		return rec, true
	}
	if u, err := urn.Parse(id); err == nil {
		return meta.Lookup(u.Work.String())
	}
	return metadata.Record{}, false
}

// DecodeCmd decodes one postag.
type DecodeCmd struct {
	Postag string `arg:"" help:"Nine-position postag, e.g. n-s---fa-"`
	Lang   string `help:"Feature table" default:"latin"`
	Strict bool   `help:"Fail on unrecognised codes"`
	JSON   bool   `name:"json" help:"Print JSON"`
}

func (c *DecodeCmd) Run(app *App) error {
	table, err := morph.Lookup(c.Lang)
	if err != nil {
		return err
	}
	var m morph.Morphology
	if c.Strict {
		if m, err = morph.DecodeStrict(c.Postag, table); err != nil {
			return err
		}
	} else {
		m = morph.Decode(c.Postag, table)
	}

	if c.JSON {
		enc := json.NewEncoder(app.Stdout)
		enc.SetEscapeHTML(false)
		return enc.Encode(m)
	}
	for _, f := range m {
		fmt.Fprintf(app.Stdout, "%-7s %s\n", f.Category.String()+":", f.Value)
	}
	return nil
}

// LanguagesCmd lists the registered feature tables.
type LanguagesCmd struct{}

func (c *LanguagesCmd) Run(app *App) error {
	for _, name := range morph.Languages() {
		table, err := morph.Lookup(name)
		if err != nil {
			return err
		}
		line := name
		if aliases := table.Aliases(); len(aliases) > 0 {
			line += " (" + strings.Join(aliases, ", ") + ")"
		}
		if name == morph.DefaultLanguage {
			line += " [default]"
		}
		fmt.Fprintln(app.Stdout, line)
	}
	return nil
}

// CatalogGroup contains catalog operations.
type CatalogGroup struct {
	List CatalogListCmd `cmd:"" help:"List recorded conversions"`
}

// CatalogListCmd lists catalog entries.
type CatalogListCmd struct {
	Catalog string `help:"Catalog database" type:"existingfile" required:"" env:"TBJSON_CATALOG"`
	JSON    bool   `name:"json" help:"Print JSON"`
}

func (c *CatalogListCmd) Run(app *App) error {
	cat, err := catalog.Open(c.Catalog)
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.List(app.Ctx)
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(app.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []catalog.Entry{}
		}
		return enc.Encode(entries)
	}
	for _, e := range entries {
		fmt.Fprintf(app.Stdout, "%s  %s  %-6s %-6s %5d %6d  %s\n",
			e.CreatedAt.Format("2006-01-02T15:04:05Z"), shortID(e.RunID), e.Language, e.Mode,
			e.Sentences, e.Words, e.Source)
	}
	return nil
}

func shortID(id string) string {
	return id[:min(8, len(id))]
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(app *App) error {
	info := sqlite.GetInfo()
	fmt.Fprintf(app.Stdout, "tbjson %s\n", version)
	fmt.Fprintf(app.Stdout, "  sqlite: %s (%s)\n", info.Package, info.DriverType)
	return nil
}

func configureLogging(cli *CLI, w io.Writer) error {
	level, err := logging.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cli.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLoggerTo(w, level, format)
	return nil
}

// run parses args, executes the selected command and returns the exit
// status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("tbjson"),
		kong.Description("Convert Perseus dependency treebanks to JSON"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "tbjson: %v\n", err)
		return 2
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "tbjson: %v\n", err)
		return 2
	}
	if err := configureLogging(&cli, stderr); err != nil {
		fmt.Fprintf(stderr, "tbjson: %v\n", err)
		return 2
	}
	if err := kctx.Run(&App{Ctx: ctx, Stdout: stdout}); err != nil {
		fmt.Fprintf(stderr, "tbjson: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
