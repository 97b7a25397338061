package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"example.com/rt130gate/internal/rt130"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	var err error
	cmd := os.Args[1]
	switch cmd {
	case "bcd":
		err = runBCD(os.Args[2:], os.Stdout)
	case "flags":
		err = runFlags(os.Args[2:], os.Stdout)
	case "time":
		err = runTime(os.Args[2:], os.Stdout)
	case "table":
		err = runTable(os.Args[2:], os.Stdout)
	case "block":
		err = runBlock(os.Args[2:], os.Stdout)
	default:
		usage()
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf(`rt130ctl %s (built %s) <command> [options]

Commands:
  bcd    --hex <bytes> [--mode digits|string|hex|int]
  flags  --hex <byte>
  time   (--long <YYYYDDDHHMMSSmmm> | --short <YYDDDHHMMSSmmm> | --bcd <7 hex bytes>) [--year <n>] [--config <file>]
  table  --text <fixed-width string> [--int]
  block  --in <file,...> [--out <records.jsonl>] [--summary <summary.json>] [--pdf <report.pdf>] [--samples] [--metrics] [--concurrency <n>] [--config <file>]
`, version, buildDate)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func decodeHexArg(s string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ':', '-', '_':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	cleaned = strings.TrimPrefix(strings.TrimPrefix(cleaned, "0x"), "0X")
	return hex.DecodeString(cleaned)
}

type bcdResult struct {
	Input string      `json:"input"`
	Mode  string      `json:"mode"`
	Value interface{} `json:"value"`
}

func runBCD(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("bcd", flag.ContinueOnError)
	hexIn := fs.String("hex", "", "field bytes as hex")
	mode := fs.String("mode", "string", "digits, string, hex or int")
	if err := fs.Parse(args); err != nil {
		return err
	}
	raw, err := decodeHexArg(*hexIn)
	if err != nil {
		return fmt.Errorf("--hex: %w", err)
	}
	res := bcdResult{Input: strings.ToUpper(hex.EncodeToString(raw)), Mode: *mode}
	switch *mode {
	case "digits":
		digits, err := rt130.DecodeBCDDigits(raw)
		if err != nil {
			return err
		}
		ints := make([]int, len(digits))
		for i, d := range digits {
			ints[i] = int(d)
		}
		res.Value = ints
	case "string":
		s, err := rt130.DecodeBCDString(raw)
		if err != nil {
			return err
		}
		res.Value = s
	case "hex":
		res.Value = rt130.DecodeBCDHex(raw)
	case "int":
		v, err := rt130.DecodeBCDInt(raw)
		if err != nil {
			return err
		}
		res.Value = v
	default:
		return fmt.Errorf("unknown --mode %q", *mode)
	}
	return writeJSON(stdout, res)
}

func runFlags(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("flags", flag.ContinueOnError)
	hexIn := fs.String("hex", "", "flag byte as hex")
	if err := fs.Parse(args); err != nil {
		return err
	}
	raw, err := decodeHexArg(*hexIn)
	if err != nil {
		return fmt.Errorf("--hex: %w", err)
	}
	flags, err := rt130.DecodeFlags(raw)
	if err != nil {
		return err
	}
	return writeJSON(stdout, flags)
}

type timeResult struct {
	Input string  `json:"input"`
	Time  *string `json:"time"`
}

func runTime(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("time", flag.ContinueOnError)
	long := fs.String("long", "", "16 character YYYYDDDHHMMSSmmm field")
	short := fs.String("short", "", "14 character YYDDDHHMMSSmmm field")
	bcd := fs.String("bcd", "", "7 byte BCD packet time as hex")
	year := fs.Int("year", 0, "reference year for two-digit years (default: config, then clock)")
	cfgPath := fs.String("config", "", "configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	set := 0
	for _, v := range []string{*long, *short, *bcd} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return errors.New("exactly one of --long, --short or --bcd is required")
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *year > 0 {
		cfg.ReferenceYear = *year
	}

	var (
		ts    *time.Time
		input string
	)
	switch {
	case *long != "":
		input = *long
		ts, err = rt130.ParseLongTime([]byte(*long))
	case *short != "":
		input = *short
		ts, err = rt130.ParseShortTime(cfg.currentYear(), []byte(*short))
	default:
		raw, herr := decodeHexArg(*bcd)
		if herr != nil {
			return fmt.Errorf("--bcd: %w", herr)
		}
		input = strings.ToUpper(hex.EncodeToString(raw))
		ts, err = rt130.ParseBCDTime(cfg.currentYear(), raw)
	}
	if err != nil {
		return err
	}
	res := timeResult{Input: input}
	if ts != nil {
		s := ts.UTC().Format("2006-01-02T15:04:05.000Z")
		res.Time = &s
	}
	return writeJSON(stdout, res)
}

type tableResult struct {
	Width  int         `json:"width"`
	Fields interface{} `json:"fields"`
}

func runTable(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("table", flag.ContinueOnError)
	text := fs.String("text", "", "fixed-width field text")
	asInt := fs.Bool("int", false, "parse every field as an integer")
	if err := fs.Parse(args); err != nil {
		return err
	}
	raw := []byte(*text)
	res := tableResult{Width: len(raw) / rt130.TableFields}
	if *asInt {
		values, err := rt130.DecodeTable16Int(raw)
		if err != nil {
			return err
		}
		res.Fields = values
	} else {
		fields, err := rt130.DecodeTable16(raw)
		if err != nil {
			return err
		}
		res.Fields = fields
	}
	return writeJSON(stdout, res)
}
