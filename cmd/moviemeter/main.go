package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/moviemeter/internal/client"
)

const usage = `usage: moviemeter [global flags] <command> [flags]

commands:
  signup  -username U -email E -password P -dob YYYY-MM-DD -phone N
  login   -username U -password P
  logout
  movies  [-q title] [-decade 1990s] [-posters]
  rate    <movieId> <1-5>
  health

global flags:
`

type cli struct {
	api    *client.API
	cache  *client.TokenCache
	logger *logrus.Logger
	out    io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("moviemeter", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() {
		fmt.Fprint(stderr, usage)
		global.PrintDefaults()
	}
	var (
		apiURL  = global.String("api", envOr("MOVIEMETER_API_URL", "http://localhost:3001/api"), "API base URL")
		session = global.String("session", "", "session file (defaults to the user config dir)")
		timeout = global.Duration("timeout", 10*time.Second, "per-request timeout")
		verbose = global.Bool("v", false, "debug logging")
	)
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	path := *session
	if path == "" {
		p, err := client.DefaultTokenPath()
		if err != nil {
			logger.Error(err)
			return 1
		}
		path = p
	}
	api, err := client.NewAPI(*apiURL, *timeout, logger)
	if err != nil {
		logger.Error(err)
		return 1
	}
	c := &cli{api: api, cache: client.NewTokenCache(path), logger: logger, out: stdout}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "signup":
		err = c.signup(ctx, rest)
	case "login":
		err = c.login(ctx, rest)
	case "logout":
		err = c.logout()
	case "movies":
		err = c.movies(ctx, rest)
	case "rate":
		err = c.rate(ctx, rest)
	case "health":
		err = c.health(ctx)
	default:
		global.Usage()
		return 2
	}
	if err != nil {
		if errors.Is(err, client.ErrLoginRequired) {
			logger.Error("Please login first: moviemeter login -username U -password P")
			return 1
		}
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		logger.Error(err)
		return 1
	}
	return 0
}

func (c *cli) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	var req client.SignupRequest
	fs.StringVar(&req.Username, "username", "", "username")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Password, "password", "", "password, at least 6 characters")
	fs.StringVar(&req.DOB, "dob", "", "date of birth")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := client.ValidateSignup(&req); err != nil {
		return err
	}

	session, err := c.api.Signup(ctx, req)
	if err != nil {
		return err
	}
	if err := c.cache.Save(session); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Account created. Logged in as %s.\n", session.Username)
	return nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := client.ValidateLogin(*username, *password); err != nil {
		return err
	}

	session, err := c.api.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	if err := c.cache.Save(session); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Welcome back, %s!\n", session.Username)
	return nil
}

func (c *cli) logout() error {
	if err := c.cache.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Logged out.")
	return nil
}

func (c *cli) renderer(posters bool) *client.Renderer {
	return client.NewRenderer(c.api, c.cache, client.RendererOptions{
		Out:           c.out,
		Notifier:      client.LogNotifier{Logger: c.logger},
		Stagger:       client.DefaultStagger,
		ResolvePoster: posters,
	})
}

func (c *cli) movies(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("movies", flag.ContinueOnError)
	query := fs.String("q", "", "title search, case-insensitive")
	decade := fs.String("decade", "", "decade bucket such as 1990s")
	posters := fs.Bool("posters", false, "resolve a loadable poster URL per movie")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r := c.renderer(*posters)
	r.Catalog().SetFilter(*query, *decade)
	return r.Load(ctx)
}

func (c *cli) rate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: moviemeter rate <movieId> <1-5>")
	}
	value, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("rating must be a number: %q", args[1])
	}
	return c.renderer(false).Rate(ctx, args[0], value)
}

func (c *cli) health(ctx context.Context) error {
	h, err := c.api.Health(ctx)
	if err != nil {
		return fmt.Errorf("server is currently unavailable: %w", err)
	}
	fmt.Fprintf(c.out, "status=%s environment=%s uptime=%.0fs\n", h.Status, h.Environment, h.Uptime)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
