package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"minicc/internal/compile"
	"minicc/internal/web"
)

func main() {
	app := &cli.App{
		Name:  "minicc",
		Usage: "mini-C compiler front end and playground",
		Commands: []*cli.Command{
			{
				Name:      "build",
				Usage:     "compile a file and print its three-address code",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "tokens",
						Usage: "print the token list",
					},
					&cli.BoolFlag{
						Name:  "ast",
						Usage: "print the syntax tree",
					},
					&cli.BoolFlag{
						Name:  "symbols",
						Usage: "print the symbol table",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "dump raw structures instead of rendered text",
					},
				},
				Action: buildAction,
			},
			{
				Name:  "serve",
				Usage: "start the web playground",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "minicc.yaml",
						Usage: "server config file",
					},
				},
				Action: serveAction,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("no input file provided", 1)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		tracerr.PrintSourceColor(tracerr.Wrap(err))
		return cli.Exit("", 1)
	}

	res := compile.Compile(string(source))
	for _, msg := range res.Errors() {
		fmt.Fprintln(os.Stderr, msg)
	}

	if c.Bool("dump") {
		repr.Println(res.Tokens)
		if res.Program != nil {
			repr.Println(res.Program)
		}
		repr.Println(res.TAC)
	} else {
		if c.Bool("tokens") {
			for _, tok := range res.Tokens {
				fmt.Printf("%s\t%q\tline %d\n", tok.Kind, tok.Text, tok.Line)
			}
		}
		if c.Bool("ast") {
			fmt.Print(res.ASTDump)
		}
		if c.Bool("symbols") && res.Symbols != nil {
			for _, name := range res.Symbols.Names() {
				entry, _ := res.Symbols.Lookup(name)
				fmt.Printf("%s\t%s\t%s\n", name, entry.Kind, entry.Type)
			}
		}
		for _, line := range res.TACLines {
			fmt.Println(line)
		}
	}

	if len(res.Diagnostics) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func serveAction(c *cli.Context) error {
	cfg, err := web.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	srv, err := web.NewServer(cfg, log.New(os.Stderr, "minicc: ", log.LstdFlags))
	if err != nil {
		return err
	}
	return srv.ListenAndServe()
}
