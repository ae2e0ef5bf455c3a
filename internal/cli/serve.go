package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tipmark/pkg/buildinfo"
	"github.com/matzehuels/tipmark/pkg/cache"
	"github.com/matzehuels/tipmark/pkg/config"
	"github.com/matzehuels/tipmark/pkg/errors"
	"github.com/matzehuels/tipmark/pkg/pipeline"
)

const (
	defaultAddr    = "127.0.0.1:8080"
	maxRequestBody = 8 << 20
	requestTimeout = time.Minute
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

type serveOpts struct {
	addr    string
	surface string
	cache   string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr, surface: pipeline.DefaultSurface}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tip rendering over HTTP",
		Long: `Serve accepts plot documents on POST /render and responds with the
rendered tips. The body is TOML unless Content-Type is application/json.
Query parameters format, memory and hide_dots mirror the render flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateSurface(opts.surface); err != nil {
				return err
			}
			runner := c.newRunner()
			if opts.cache != "" {
				cc, err := c.serveCache(cmd.Context(), opts.cache)
				if err != nil {
					return err
				}
				defer cc.Close()
				runner.Cache = cc
			}
			srv := &http.Server{
				Addr:              opts.addr,
				Handler:           c.router(runner, opts.surface),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			c.Logger.Info("listening", "addr", opts.addr, "surface", opts.surface)

			select {
			case err := <-errc:
				return err
			case <-cmd.Context().Done():
				c.Logger.Info("shutting down")
				return srv.Close()
			}
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.surface, "surface", opts.surface, "measurement surface: estimate, chrome")
	cmd.Flags().StringVar(&opts.cache, "cache", "", `artifact cache: "local", a directory, redis://... or mongodb://...`)

	return cmd
}

// serveCache opens the cache named by target; "local" is the CLI cache
// directory.
func (c *CLI) serveCache(ctx context.Context, target string) (cache.Cache, error) {
	if target == "local" {
		return c.openCache()
	}
	cc, err := cache.Open(ctx, target)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOption, err, "open cache %s", target)
	}
	return cc, nil
}

// router builds the HTTP routes.
func (c *CLI) router(runner *pipeline.Runner, surface string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			l := c.Logger.With("request", middleware.GetReqID(req.Context()))
			next.ServeHTTP(w, req.WithContext(withLogger(req.Context(), l)))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, buildinfo.Get())
	})
	r.Post("/render", handleRender(runner, surface))
	return r
}

func handleRender(runner *pipeline.Runner, surface string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logger := loggerFromContext(req.Context())

		body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxRequestBody))
		if err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
			return
		}
		format := config.FormatTOML
		if strings.HasPrefix(req.Header.Get("Content-Type"), "application/json") {
			format = config.FormatJSON
		}
		doc, err := config.Parse(body, format)
		if err != nil {
			writeError(w, err)
			return
		}

		q := req.URL.Query()
		out := q.Get("format")
		if out == "" {
			out = pipeline.FormatSVG
		}
		result, hit, err := runner.ExecuteCached(req.Context(), doc, pipeline.Options{
			Formats:  []string{out},
			Surface:  surface,
			Memory:   q.Get("memory"),
			HideDots: q.Get("hide_dots") == "true",
			Logger:   logger,
		})
		if err != nil {
			logger.Warn("render failed", "error", err)
			writeError(w, err)
			return
		}

		logger.Debug("rendered", "format", out, "cached", hit, "items", result.Stats.Items)
		w.Header().Set("Content-Type", contentTypes[out])
		w.WriteHeader(http.StatusOK)
		w.Write(result.Artifacts[out])
	}
}

type errorBody struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, code.HTTPStatus(), errorBody{Code: code, Error: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
