package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	flowerrors "github.com/matzehuels/flowplot/pkg/errors"
	"github.com/matzehuels/flowplot/pkg/flow"
	"github.com/matzehuels/flowplot/pkg/plot"
)

// serveCommand renders a flow definition and serves it over HTTP for
// browser preview. The artifact is re-rendered on every page load so
// edits to the flow file show up on refresh.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		theme string
		title string
	)

	cmd := &cobra.Command{
		Use:   "serve <flow.json>",
		Short: "Preview a flow diagram in the browser",
		Long: `Serve renders a flow definition to HTML and serves it on a local
address. The flow file is re-read and re-rendered on each request, so
refreshing the browser picks up changes.`,
		Example: `  flowplot serve examples/email_flow.json
  flowplot serve flow.json --addr :3000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr, theme, title)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&theme, "theme", "", "TOML theme override file")
	cmd.Flags().StringVar(&title, "title", "", "document title (default flow name)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, path, addr, theme, title string) error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		data, err := c.renderPreview(req.Context(), path, theme, title)
		if err != nil {
			c.Logger.Error("render preview", "error", err)
			http.Error(w, flowerrors.UserMessage(err), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(data)
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printSuccess("Serving %s on http://%s", path, addr)
	c.Logger.Info("preview server started", "addr", addr, "flow", path)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// renderPreview renders the flow into a scratch directory and returns the
// HTML bytes. The scratch directory keeps the atomic-write path identical
// to the plot command while leaving the working tree untouched.
func (c *CLI) renderPreview(ctx context.Context, path, theme, title string) ([]byte, error) {
	def, err := flow.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "flowplot-serve-")
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			c.Logger.Warn("cleanup failed", "dir", dir, "error", rmErr)
		}
	}()

	res, err := plot.Render(ctx, def, plot.Options{
		OutputBase: filepath.Join(dir, "preview"),
		Formats:    []string{plot.FormatHTML},
		ThemePath:  theme,
		Title:      title,
		Logger:     c.Logger,
	})
	if err != nil {
		return nil, err
	}
	return os.ReadFile(res.Path)
}
