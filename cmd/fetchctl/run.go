package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"

	"github.com/kbukum/gofetch/codec"
	"github.com/kbukum/gofetch/config"
	"github.com/kbukum/gofetch/fetch"
	"github.com/kbukum/gofetch/httpclient"
	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/observability"
	"github.com/kbukum/gofetch/version"
)

const (
	exitOK    = 0
	exitFetch = 1
	exitUsage = 2
)

type flags struct {
	method     string
	data       string
	headers    []string
	form       []string
	caseName   string
	noBody     bool
	configFile string
	verbose    bool
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, []string, error) {
	f := &flags{}
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&f.method, "method", "X", "", "HTTP method (default GET, or POST with -F)")
	fs.StringVarP(&f.data, "data", "d", "", "JSON request body")
	fs.StringArrayVarP(&f.headers, "header", "H", nil, `request header "Name: value" (repeatable)`)
	fs.StringArrayVarP(&f.form, "form", "F", nil, "multipart field name=value or file name=@path (repeatable)")
	fs.StringVar(&f.caseName, "case", "", "field naming for derived codecs: preserve, camel or snake")
	fs.BoolVar(&f.noBody, "no-body", false, "expect an empty response body")
	fs.StringVarP(&f.configFile, "config", "c", "", "config file (default: search standard locations)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every call at debug level")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] URL\n", appName)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, rest, err := parseFlags(args, stderr)
	if err != nil {
		if err == pflag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}
	if f.version {
		fmt.Fprintf(stdout, "%s %s\n", appName, version.Full())
		return exitOK
	}
	if len(rest) != 1 {
		fmt.Fprintf(stderr, "%s: expected exactly one URL\n", appName)
		return exitUsage
	}

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return exitUsage
	}
	logger.Init(cfg.Logging)
	log := logger.Get(appName)

	shutdown, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		fmt.Fprintf(stderr, "%s: telemetry: %v\n", appName, err)
		return exitUsage
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			log.Warn("telemetry shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	client, err := fetch.New(cfg.Fetch)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return exitUsage
	}
	opts, err := callOptions(f)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return exitUsage
	}

	if f.noBody {
		if err := fetch.FetchUnit(ctx, client, rest[0], opts...); err != nil {
			return report(stderr, err)
		}
		return exitOK
	}
	value, err := fetch.FetchAs[any](ctx, client, rest[0], opts...)
	if err != nil {
		return report(stderr, err)
	}
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return exitFetch
	}
	fmt.Fprintln(stdout, string(out))
	return exitOK
}

func loadConfig(f *flags) (*Config, error) {
	cfg := &Config{}
	var opts []config.LoaderOption
	if f.configFile != "" {
		opts = append(opts, config.WithConfigFile(f.configFile))
	}
	if err := config.LoadConfig(appName, cfg, opts...); err != nil {
		return nil, err
	}
	if f.caseName != "" {
		cfg.Fetch.CaseStrategy = f.caseName
	}
	if f.verbose {
		cfg.Logging.Level = "debug"
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func callOptions(f *flags) ([]fetch.Option, error) {
	var opts []fetch.Option
	if f.method != "" {
		opts = append(opts, fetch.WithMethod(strings.ToUpper(f.method)))
	}
	for _, h := range f.headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q, expected \"Name: value\"", h)
		}
		opts = append(opts, fetch.WithHeader(strings.TrimSpace(name), strings.TrimSpace(value)))
	}

	switch {
	case f.data != "" && len(f.form) > 0:
		return nil, fmt.Errorf("-d and -F are mutually exclusive")
	case f.data != "":
		data, err := codec.Decode[any]([]byte(f.data), codec.Options{})
		if err != nil {
			return nil, fmt.Errorf("invalid -d JSON: %w", err)
		}
		if f.method == "" {
			opts = append(opts, fetch.WithMethod(http.MethodPost))
		}
		opts = append(opts, fetch.WithData(data))
	case len(f.form) > 0:
		body, err := multipartBody(f.form)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fetch.WithMultipart(body))
	}
	return opts, nil
}

func multipartBody(form []string) (*httpclient.MultipartBody, error) {
	body := &httpclient.MultipartBody{Fields: map[string]string{}}
	for _, entry := range form {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid form entry %q, expected name=value or name=@path", entry)
		}
		path, isFile := strings.CutPrefix(value, "@")
		if !isFile {
			body.Fields[name] = value
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("form file %s: %w", name, err)
		}
		body.Files = append(body.Files, httpclient.FileField{
			FieldName:   name,
			FileName:    path[strings.LastIndexAny(path, `/\`)+1:],
			ContentType: http.DetectContentType(data),
			Data:        data,
		})
	}
	return body, nil
}

// report prints a failed call. FetchFailed responses include their body.
func report(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "%s: %v\n", appName, err)
	if e, ok := fetch.AsError(err); ok && e.Kind == fetch.FetchFailed {
		if body, rerr := e.Response.Text(); rerr == nil && strings.TrimSpace(body) != "" {
			fmt.Fprintln(stderr, strings.TrimSpace(body))
		}
	}
	return exitFetch
}
