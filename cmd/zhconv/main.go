// Command zhconv converts Chinese text between script and regional
// variants on the command line. It is a thin binding over the zhconv
// package: argument parsing and I/O live here, conversion semantics do
// not.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/zhconv/zhconv"
	"github.com/zhconv/zhconv/convline"
	"github.com/zhconv/zhconv/rulepack"
)

var cli struct {
	Convert  ConvertCmd  `cmd:"" default:"withargs" help:"Convert text to a Chinese variant"`
	Detect   DetectCmd   `cmd:"" help:"Guess the script and regional variant of text"`
	Variants VariantsCmd `cmd:"" help:"List the supported conversion targets"`
	Pack     PackCmd     `cmd:"" help:"Compile a TSV rule table into a rule-pack artifact"`
	Unpack   UnpackCmd   `cmd:"" help:"Dump a rule-pack artifact as TSV"`
}

// ConvertCmd converts files (or stdin) to the requested variant.
type ConvertCmd struct {
	To       string   `short:"t" required:"" help:"Target variant, e.g. zh-Hant, zh-TW, zh-CN"`
	Rules    []string `short:"r" help:"Conversion-rule files in conv-line format" type:"existingfile"`
	Priority int      `default:"100" help:"Priority for rules loaded via --rules"`
	Paths    []string `arg:"" optional:"" help:"Input files (default: stdin)" type:"existingfile"`
}

func (c *ConvertCmd) Run() error {
	variant, err := zhconv.ParseVariant(c.To)
	if err != nil {
		return err
	}
	converters := zhconv.Default()
	for _, path := range c.Rules {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = convline.Register(converters, variant, c.Priority, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("loading rules from %s: %w", path, err)
		}
	}
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	convert := func(r io.Reader) error {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)
		for scanner.Scan() {
			line, err := converters.Convert(scanner.Text(), variant)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, line)
		}
		return scanner.Err()
	}
	if len(c.Paths) == 0 {
		return convert(os.Stdin)
	}
	for _, path := range c.Paths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = convert(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// DetectCmd reports the inferred variant of the input.
type DetectCmd struct {
	Path string `arg:"" optional:"" help:"Input file (default: stdin)" type:"existingfile"`
}

func (c *DetectCmd) Run() error {
	var data []byte
	var err error
	if c.Path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(c.Path)
	}
	if err != nil {
		return err
	}
	text := string(data)
	fmt.Printf("variant: %s\n", zhconv.InferVariant(text))
	fmt.Printf("simplified probability: %.2f\n", zhconv.IsHansProbability(text))
	for _, s := range zhconv.InferVariantConfidence(text) {
		fmt.Printf("  %-8s %.2f\n", s.Variant, s.Confidence)
	}
	return nil
}

// VariantsCmd lists the supported targets.
type VariantsCmd struct{}

func (c *VariantsCmd) Run() error {
	for _, v := range []zhconv.Variant{
		zhconv.Zh, zhconv.ZhHans, zhconv.ZhHant,
		zhconv.ZhCN, zhconv.ZhSG, zhconv.ZhMY,
		zhconv.ZhTW, zhconv.ZhHK, zhconv.ZhMO,
	} {
		fmt.Println(v)
	}
	return nil
}

// PackCmd compiles a tab-separated rule table (stage, scope, source,
// target per line) into a compressed rule pack plus a BLAKE3
// fingerprint sidecar.
type PackCmd struct {
	Input  string `arg:"" help:"TSV rule table" type:"existingfile"`
	Output string `arg:"" help:"Rule-pack artifact to write"`
}

func (c *PackCmd) Run() error {
	in, err := os.Open(c.Input)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	w, err := rulepack.NewWriter(out)
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	n := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return fmt.Errorf("%s: line %d: want 4 tab-separated fields, got %d", c.Input, n+1, len(fields))
		}
		err := w.Write(rulepack.Record{
			Stage:  fields[0],
			Scope:  fields[1],
			Source: fields[2],
			Target: fields[3],
		})
		if err != nil {
			return err
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	blob, err := os.ReadFile(c.Output)
	if err != nil {
		return err
	}
	fp := rulepack.Fingerprint(blob)
	if err := os.WriteFile(c.Output+".b3", []byte(fp+"\n"), 0o644); err != nil {
		return err
	}
	fmt.Printf("packed %d records into %s (blake3 %s)\n", n, c.Output, fp)
	return nil
}

// UnpackCmd dumps a rule pack as TSV on stdout.
type UnpackCmd struct {
	Input string `arg:"" help:"Rule-pack artifact" type:"existingfile"`
}

func (c *UnpackCmd) Run() error {
	blob, err := os.ReadFile(c.Input)
	if err != nil {
		return err
	}
	records, err := rulepack.Decode(blob)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for _, r := range records {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", r.Stage, r.Scope, r.Source, r.Target)
	}
	return nil
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("zhconv"),
		kong.Description("Convert Chinese text between script and regional variants."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
