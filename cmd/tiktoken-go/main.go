package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-tiktoken/tiktoken-go"
)

func die(err error) { fmt.Fprintln(os.Stderr, err); os.Exit(1) }

func loadEncoding(encoding, model string) (*tiktoken.Encoding, error) {
	if model != "" {
		return tiktoken.CreateByModelName(model, nil)
	}
	if encoding == "" {
		encoding = "cl100k_base"
	}
	return tiktoken.CreateByEncoderName(tiktoken.EncoderName(encoding))
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("tiktoken-go [encode|decode|count]")
		return
	}
	switch os.Args[1] {
	case "encode":
		fs := flag.NewFlagSet("encode", flag.ExitOnError)
		encoding := fs.String("encoding", "", "encoder name (default cl100k_base)")
		model := fs.String("model", "", "model name, overrides -encoding")
		_ = fs.Parse(os.Args[2:])
		enc, err := loadEncoding(*encoding, *model)
		if err != nil {
			die(err)
		}
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			die(err)
		}
		ids, err := enc.Encode(string(text), enc.AllSpecialTokens())
		if err != nil {
			die(err)
		}
		_ = json.NewEncoder(os.Stdout).Encode(ids)
	case "decode":
		fs := flag.NewFlagSet("decode", flag.ExitOnError)
		encoding := fs.String("encoding", "", "encoder name (default cl100k_base)")
		model := fs.String("model", "", "model name, overrides -encoding")
		_ = fs.Parse(os.Args[2:])
		enc, err := loadEncoding(*encoding, *model)
		if err != nil {
			die(err)
		}
		var ids []tiktoken.Rank
		if err := json.NewDecoder(os.Stdin).Decode(&ids); err != nil {
			die(err)
		}
		text, err := enc.Decode(ids)
		if err != nil {
			die(err)
		}
		fmt.Println(text)
	case "count":
		fs := flag.NewFlagSet("count", flag.ExitOnError)
		encoding := fs.String("encoding", "", "encoder name (default cl100k_base)")
		model := fs.String("model", "", "model name, overrides -encoding")
		_ = fs.Parse(os.Args[2:])
		enc, err := loadEncoding(*encoding, *model)
		if err != nil {
			die(err)
		}
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			die(err)
		}
		n, err := enc.Count(string(text), enc.AllSpecialTokens())
		if err != nil {
			die(err)
		}
		fmt.Println(n)
	default:
		fmt.Fprintln(os.Stderr, "unimplemented")
		os.Exit(2)
	}
}
