// Command webringctl queries a webring API from the terminal.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"github.com/dkeye/webring/embed"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Error().Err(err).Msg("webringctl failed")
		os.Exit(1)
	}
}

func defaultCookieFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "webringctl", "cookies.json")
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "webringctl"
	app.Usage = "inspect a webring and toggle the embed preference"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "api",
			Value:  "http://localhost:8080/api/v1",
			Usage:  "base URL of the webring API",
			EnvVar: "WEBRING_API",
		},
		cli.StringFlag{
			Name:  "origin",
			Usage: "Origin to present, identifies the member site for embed",
		},
		cli.StringFlag{
			Name:   "cookies",
			Value:  defaultCookieFile(),
			Usage:  "file keeping the preference cookie between runs, empty to disable",
			EnvVar: "WEBRING_COOKIES",
		},
		cli.DurationFlag{
			Name:  "timeout",
			Value: 10 * time.Second,
			Usage: "per-command timeout",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "members",
			Usage: "list members in ring order",
			Action: run(func(ctx context.Context, c *embed.Client, _ *cli.Context) (interface{}, error) {
				return c.Members(ctx)
			}),
		},
		{
			Name:      "member",
			Usage:     "show a member and its neighbors",
			ArgsUsage: "<id>",
			Action: run(func(ctx context.Context, c *embed.Client, cc *cli.Context) (interface{}, error) {
				if cc.NArg() != 1 {
					return nil, errors.New("member requires exactly one id")
				}
				return c.Member(ctx, cc.Args().First())
			}),
		},
		{
			Name:  "embed",
			Usage: "show the embed payload for --origin",
			Action: run(func(ctx context.Context, c *embed.Client, _ *cli.Context) (interface{}, error) {
				return c.GetEmbed(ctx)
			}),
		},
		{
			Name:  "status",
			Usage: "show the widget preference",
			Action: run(func(ctx context.Context, c *embed.Client, _ *cli.Context) (interface{}, error) {
				return c.GetStatus(ctx)
			}),
		},
		{
			Name:   "enable",
			Usage:  "turn the widget on and show the resulting preference",
			Action: run(setStatus(true)),
		},
		{
			Name:   "disable",
			Usage:  "turn the widget off and show the resulting preference",
			Action: run(setStatus(false)),
		},
	}
	return app
}

type command func(ctx context.Context, c *embed.Client, cc *cli.Context) (interface{}, error)

// setStatus flips the preference, then reads it back through the same
// cookie jar to show what the server now reports.
func setStatus(enabled bool) command {
	return func(ctx context.Context, c *embed.Client, _ *cli.Context) (interface{}, error) {
		if err := c.SetStatus(ctx, enabled); err != nil {
			return nil, err
		}
		return c.GetStatus(ctx)
	}
}

// run builds a client whose jar is loaded from --cookies and written back
// once the command succeeds.
func run(fn command) func(*cli.Context) error {
	return func(cc *cli.Context) error {
		api := cc.GlobalString("api")
		client, err := embed.NewClient(api, embed.WithOrigin(cc.GlobalString("origin")))
		if err != nil {
			return err
		}

		jarFile := cc.GlobalString("cookies")
		if jarFile != "" {
			saved, err := loadCookies(jarFile)
			if err != nil {
				return err
			}
			client.SetCookies(saved.get(api))
		}

		ctx, cancel := context.WithTimeout(context.Background(), cc.GlobalDuration("timeout"))
		defer cancel()

		out, err := fn(ctx, client, cc)
		if err != nil {
			return err
		}

		if jarFile != "" {
			saved, err := loadCookies(jarFile)
			if err != nil {
				return err
			}
			saved.put(api, client.Cookies())
			if err := saved.save(jarFile); err != nil {
				return err
			}
		}

		enc := json.NewEncoder(cc.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
}
