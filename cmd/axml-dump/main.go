package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/axml"
	"github.com/lestrrat-go/axml/internal/cliutil"
	"github.com/lestrrat-go/axml/internal/report"
	"github.com/lestrrat-go/axml/s11n"
)

type cmdopts struct {
	Format   string `long:"format" choice:"xml" choice:"yaml" choice:"cbor" default:"xml"`
	NoIndent bool   `long:"no-indent"`
	Check    bool   `long:"check"`
	Trace    bool   `long:"trace"`
	Version  bool   `long:"version"`
}

// input is one file to decode. Results are written in input order.
type input struct {
	name string
	buf  []byte
	out  bytes.Buffer
	err  error
	bad  bool
}

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("axml-dump: using axml version %s\n", axml.Version)
}

func showUsage() {
	fmt.Printf(`Usage : axml-dump [options] files ...
	Decode Android binary XML files and print them
	--format=xml|yaml|cbor : output format (default xml)
	--no-indent : do not indent the XML output
	--check : exit with status 2 if a document is invalid
	--trace : write a JSON trace of the decoding to stderr
	--version : display the version of the axml library used
`)
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}

	var inputs []*input
	switch {
	case len(args) > 0:
		for _, f := range args {
			buf, err := os.ReadFile(f)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s\n", err)
				return 1
			}
			inputs = append(inputs, &input{name: f, buf: buf})
		}
	case !cliutil.IsTty(os.Stdin.Fd()):
		buf, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		inputs = append(inputs, &input{name: "-", buf: buf})
	default:
		showUsage()
		return 1
	}

	ctx := context.Background()
	if opts.Trace {
		ctx = axml.WithTraceLogger(ctx, slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var s11nopts []s11n.Option
	if opts.NoIndent {
		s11nopts = append(s11nopts, s11n.WithIndent(""))
	}

	p := axml.NewParser()
	var wg sync.WaitGroup
	for _, in := range inputs {
		wg.Add(1)
		go func(in *input) {
			defer wg.Done()
			in.err = decode(ctx, p, in, opts.Format, s11nopts)
		}(in)
	}
	wg.Wait()

	status := 0
	for _, in := range inputs {
		if _, err := io.Copy(os.Stdout, &in.out); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		if in.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", in.name, in.err)
			status = 1
			continue
		}
		if in.bad && opts.Check && status == 0 {
			status = 2
		}
	}
	return status
}

func decode(ctx context.Context, p *axml.Parser, in *input, format string, s11nopts []s11n.Option) error {
	doc, err := p.Parse(ctx, in.buf)
	if err != nil {
		var fe *axml.FatalError
		if format != "xml" && errors.As(err, &fe) {
			if encErr := encode(report.Failed(in.name, err), format, &in.out); encErr != nil {
				return encErr
			}
		}
		return err
	}
	in.bad = !doc.IsValid()

	if format == "xml" {
		if !doc.IsValid() {
			for _, a := range doc.Anomalies() {
				if a.Invalid {
					fmt.Fprintf(os.Stderr, "%s: %s\n", in.name, a)
				}
			}
			return nil
		}
		out, err := doc.XML(s11nopts...)
		if err != nil {
			return err
		}
		in.out.Write(out)
		return nil
	}

	r, err := report.New(in.name, doc, s11nopts...)
	if err != nil {
		return err
	}
	return encode(r, format, &in.out)
}

func encode(r *report.Report, format string, w io.Writer) error {
	switch format {
	case "yaml":
		return r.EncodeYAML(w)
	case "cbor":
		return r.EncodeCBOR(w)
	}
	return fmt.Errorf("unknown format %q", format)
}
