package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	jsondrift "github.com/reoring/jsondrift"
	"github.com/reoring/jsondrift/i18n"
	"github.com/reoring/jsondrift/manifest"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "jsondrift CLI\n\nUsage:\n  jsondrift check -schema manifest.yaml [doc.json ...]\n\nReads JSON documents (stdin when no files given), decodes them against the\nmanifest, and prints one diagnostic per line as JSON.")
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var schemaPath string
	var lang string
	var strict bool
	fs.StringVar(&schemaPath, "schema", "", "path to the YAML/JSON model manifest")
	fs.StringVar(&lang, "lang", "en", "diagnostic message language (en/ja)")
	fs.BoolVar(&strict, "strict", false, "exit non-zero when any diagnostic is recorded")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	i18n.SetLanguage(lang)

	md, err := manifest.LoadFile(schemaPath)
	if err != nil {
		fatalf("load schema: %v", err)
	}

	opt := jsondrift.ParseOpt{Strictness: jsondrift.Strictness{OnDuplicateKey: jsondrift.Warn}}
	total := 0
	if fs.NArg() == 0 {
		total += checkStream(os.Stdin, "<stdin>", md, opt)
	}
	for _, path := range fs.Args() {
		f, err := os.Open(path)
		if err != nil {
			fatalf("open %s: %v", path, err)
		}
		total += checkStream(f, path, md, opt)
		f.Close()
	}
	if strict && total > 0 {
		os.Exit(1)
	}
}

func checkStream(r io.Reader, name string, md *jsondrift.ModelDescriptor, opt jsondrift.ParseOpt) int {
	data, err := io.ReadAll(r)
	if err != nil {
		fatalf("read %s: %v", name, err)
	}
	m, ds, err := jsondrift.DecodeBytes(data, md, opt)
	if err != nil {
		emit(name, ds)
		fatalf("parse %s: %v", name, err)
	}
	emit(name, ds)
	fmt.Fprintf(os.Stderr, "%s: model %s, %d/%d fields decoded, %d diagnostics\n",
		name, m.ModelName(), presentCount(m), m.Len(), ds.Count())
	return ds.Count()
}

func presentCount(m jsondrift.DecodedModel) int {
	n := 0
	for _, f := range m.Fields() {
		if f.Present() {
			n++
		}
	}
	return n
}

func emit(name string, ds jsondrift.Diagnostics) {
	enc := json.NewEncoder(os.Stdout)
	for _, d := range ds {
		fields := d.LogFields()
		fields["doc"] = name
		_ = enc.Encode(fields)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "jsondrift: "+format+"\n", args...)
	os.Exit(1)
}
